package assessment

import (
	"database/sql/driver"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/vendorrisk/internal/common"
)

type statusCode uint8

const (
	pending statusCode = iota
	approved
	rejected
	needsInfo
	statusCount
)

// Status is the lifecycle stage of an assessment. The type is closed: the
// only values are the four package-level variables below, and the zero value
// is StatusPending.
type Status struct {
	code statusCode
}

var (
	StatusPending   = Status{pending}
	StatusApproved  = Status{approved}
	StatusRejected  = Status{rejected}
	StatusNeedsInfo = Status{needsInfo}
)

var statusNames = [statusCount]string{
	pending:   "pending",
	approved:  "approved",
	rejected:  "rejected",
	needsInfo: "needs_info",
}

// Badge is the display form of a status: a CSS class list and a label.
type Badge struct {
	Class string `json:"class"`
	Label string `json:"label"`
}

var badges = [statusCount]Badge{
	pending:   {Class: "bg-yellow-100 text-yellow-800", Label: "Pending Review"},
	approved:  {Class: "bg-green-100 text-green-800", Label: "Approved"},
	rejected:  {Class: "bg-red-100 text-red-800", Label: "Rejected"},
	needsInfo: {Class: "bg-blue-100 text-blue-800", Label: "Needs Info"},
}

// Statuses returns all four statuses in declaration order.
func Statuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected, StatusNeedsInfo}
}

// ParseStatus converts the wire literal into a Status.
func ParseStatus(s string) (Status, error) {
	for i, name := range statusNames {
		if name == s {
			return Status{statusCode(i)}, nil
		}
	}
	return Status{}, fmt.Errorf("%w: %q", common.ErrorInvalidStatus, s)
}

func (s Status) String() string {
	return statusNames[s.code]
}

// Badge maps the status to its badge. It is total over the closed set.
func (s Status) Badge() Badge {
	return badges[s.code]
}

// IsReviewDecision reports whether a reviewer may move an assessment into s.
// Pending is the intake state only.
func (s Status) IsReviewDecision() bool {
	return s != StatusPending
}

func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

func (s *Status) UnmarshalJSON(data []byte) error {
	raw, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: %s", common.ErrorInvalidStatus, string(data))
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer.
func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// Scan implements sql.Scanner.
func (s *Status) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", common.ErrorInvalidStatus, src)
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
