package reviewrpc

import "github.com/dmitrijs2005/vendorrisk/internal/assessment"

type SubmitRequest struct {
	Form assessment.IntakeForm `json:"form"`
}

// Upload is a presigned PUT URL for one declared document.
type Upload struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type SubmitResponse struct {
	Assessment *assessment.Assessment `json:"assessment"`
	Uploads    []Upload               `json:"uploads"`
	Replayed   bool                   `json:"replayed"`
}

// ListRequest carries the dashboard query. Status is a status literal or
// "all"; Sort is a column name and Order one of asc, desc or none.
type ListRequest struct {
	Search string `json:"search,omitempty"`
	Status string `json:"status,omitempty"`
	Sort   string `json:"sort,omitempty"`
	Order  string `json:"order,omitempty"`
}

type ListResponse struct {
	Assessments []*assessment.Assessment `json:"assessments"`
	Total       int                      `json:"total"`
}

type GetRequest struct {
	ID string `json:"id"`
}

type GetResponse struct {
	Assessment *assessment.Assessment `json:"assessment"`
	Badge      assessment.Badge       `json:"badge"`
}

type UpdateStatusRequest struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	ReviewerNotes string `json:"reviewerNotes"`
}

type UpdateStatusResponse struct {
	Assessment *assessment.Assessment `json:"assessment"`
}

type DocumentURLRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DocumentURLResponse struct {
	URL string `json:"url"`
}
