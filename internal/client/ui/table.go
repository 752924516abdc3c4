package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
)

type column struct {
	key    assessment.Column
	header string
	cell   func(*assessment.Assessment) string
}

var tableColumns = []column{
	{assessment.ColumnSubmittedAt, "Submitted", func(a *assessment.Assessment) string { return ShortDate(a.SubmittedAt) }},
	{assessment.ColumnVendorName, "Vendor", func(a *assessment.Assessment) string { return a.VendorName }},
	{assessment.ColumnServiceName, "Service", func(a *assessment.Assessment) string { return a.ServiceName }},
	{assessment.ColumnDeploymentType, "Type", func(a *assessment.Assessment) string { return a.DeploymentType }},
	{assessment.ColumnStatus, "Status", func(a *assessment.Assessment) string { return a.Status.Badge().Label }},
	{assessment.ColumnLastUpdated, "Last Updated", func(a *assessment.Assessment) string { return ShortDate(a.LastUpdated) }},
}

const (
	colGap = "  "
	// index of the status cell, after the row number
	statusCol = 5
)

// RenderTable writes rows as an aligned table with a leading row number.
// The active sort column carries ^ (ascending) or v (descending).
func RenderTable(w io.Writer, rows []*assessment.Assessment, sort assessment.SortState, color bool) error {
	headers := make([]string, 0, len(tableColumns)+1)
	headers = append(headers, "#")
	for _, c := range tableColumns {
		h := c.header
		if sort.Active() && sort.Column == c.key {
			if sort.Direction == assessment.Ascending {
				h += " ^"
			} else {
				h += " v"
			}
		}
		headers = append(headers, h)
	}

	cells := make([][]string, len(rows))
	for i, a := range rows {
		cells[i] = append(cells[i], strconv.Itoa(i+1))
		for _, c := range tableColumns {
			cells[i] = append(cells[i], c.cell(a))
		}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range cells {
		for i, v := range row {
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}
	}

	line := func(vals []string, status *assessment.Status) string {
		var b strings.Builder
		for i, v := range vals {
			padded := v
			if i < len(vals)-1 {
				padded += strings.Repeat(" ", widths[i]-utf8.RuneCountInString(v)) + colGap
			}
			if status != nil && i == statusCol {
				padded = colorize(v, *status, color) + padded[len(v):]
			}
			b.WriteString(padded)
		}
		return strings.TrimRight(b.String(), " ")
	}

	if _, err := fmt.Fprintln(w, line(headers, nil)); err != nil {
		return err
	}
	for i, row := range cells {
		st := rows[i].Status
		if _, err := fmt.Fprintln(w, line(row, &st)); err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No assessments match the current search and filter.")
		return err
	}
	return nil
}
