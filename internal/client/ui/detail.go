package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/vendorrisk/internal/client/review"
)

// RenderDetail writes the review view of the assessment held by m: vendor
// and contact sections, use case, document lists with their download
// commands, the current notes draft and the available actions.
func RenderDetail(w io.Writer, m *review.Modal, color bool) error {
	a := m.Assessment()
	var b strings.Builder

	b.WriteString("Assessment Details  [" + Badge(a.Status, color) + "]\n\n")

	b.WriteString("Vendor Information\n")
	fmt.Fprintf(&b, "  Vendor Name:      %s\n", a.VendorName)
	fmt.Fprintf(&b, "  Service Name:     %s\n", a.ServiceName)
	fmt.Fprintf(&b, "  Deployment Type:  %s\n", a.DeploymentType)
	if a.VendorWebsite != "" {
		fmt.Fprintf(&b, "  Website:          %s\n", a.VendorWebsite)
	}
	fmt.Fprintf(&b, "  Users:            %d\n", a.NumUsers)
	fmt.Fprintf(&b, "  Records:          %d\n\n", a.NumRecords)

	b.WriteString("Contact Information\n")
	fmt.Fprintf(&b, "  Name:   %s\n", a.ContactInfo.Name)
	fmt.Fprintf(&b, "  Email:  %s\n", a.ContactInfo.Email)
	fmt.Fprintf(&b, "  Phone:  %s\n\n", a.ContactInfo.Phone)

	b.WriteString("Use Case\n")
	for _, line := range strings.Split(a.UseCase, "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")

	b.WriteString("Documents\n")
	writeDocs(&b, "Security Certifications", a.Documents.Certifications)
	writeDocs(&b, "Additional Documents", a.Documents.Additional)
	b.WriteString("\n")

	b.WriteString("Review Notes\n")
	if notes := m.Notes(); notes != "" {
		for _, line := range strings.Split(notes, "\n") {
			b.WriteString("  " + line + "\n")
		}
	} else {
		b.WriteString("  Add your review notes here...\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Submitted: %s\n", LongDate(a.SubmittedAt))

	labels := make([]string, 0, len(m.Actions()))
	for _, act := range m.Actions() {
		labels = append(labels, act.Label)
	}
	b.WriteString("Actions: " + strings.Join(labels, " | ") + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeDocs(b *strings.Builder, title string, docs []string) {
	b.WriteString("  " + title + "\n")
	if len(docs) == 0 {
		b.WriteString("    (none)\n")
		return
	}
	for _, d := range docs {
		fmt.Fprintf(b, "    - %s  (download %s)\n", d, d)
	}
}
