package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/client/submission"
	"github.com/dmitrijs2005/vendorrisk/internal/client/ui"
	"github.com/dmitrijs2005/vendorrisk/internal/netx"
	"github.com/dmitrijs2005/vendorrisk/internal/reviewrpc"
)

const certificationTypes = ".pdf,.doc,.docx,.jpg,.jpeg,.png"

type intakeField struct {
	field     ui.FormField
	multiline bool
	set       func(f *assessment.IntakeForm, v string)
}

var intakeFields = []intakeField{
	{field: ui.FormField{Label: "Vendor Name", Required: true},
		set: func(f *assessment.IntakeForm, v string) { f.VendorName = v }},
	{field: ui.FormField{Label: "Service Name", Required: true},
		set: func(f *assessment.IntakeForm, v string) { f.ServiceName = v }},
	{field: ui.FormField{Label: "Deployment Type", Required: true, HelperText: "e.g. SaaS, On-premise, Hybrid"},
		set: func(f *assessment.IntakeForm, v string) { f.DeploymentType = v }},
	{field: ui.FormField{Label: "Use Case", Required: true, HelperText: "Describe how the service will be used"},
		multiline: true,
		set:       func(f *assessment.IntakeForm, v string) { f.UseCase = v }},
	{field: ui.FormField{Label: "Number of Users", Required: true},
		set: func(f *assessment.IntakeForm, v string) { f.NumUsers = assessment.FormCount(v) }},
	{field: ui.FormField{Label: "Number of Records", Required: true, HelperText: "Approximate number of data records processed"},
		set: func(f *assessment.IntakeForm, v string) { f.NumRecords = assessment.FormCount(v) }},
	{field: ui.FormField{Label: "Vendor Website", HelperText: "Optional"},
		set: func(f *assessment.IntakeForm, v string) { f.VendorWebsite = v }},
	{field: ui.FormField{Label: "Contact Name", Required: true},
		set: func(f *assessment.IntakeForm, v string) { f.ContactName = v }},
	{field: ui.FormField{Label: "Contact Email", Required: true},
		set: func(f *assessment.IntakeForm, v string) { f.ContactEmail = v }},
	{field: ui.FormField{Label: "Contact Phone", Required: true},
		set: func(f *assessment.IntakeForm, v string) { f.ContactPhone = v }},
}

func (a *App) ask(f ui.FormField, multiline bool) (string, error) {
	var b strings.Builder
	_ = f.Render(&b)
	prompt := strings.TrimRight(b.String(), "\n")
	if multiline {
		return GetMultiline(a.reader, prompt, a.out)
	}
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) askFiles(label string, upload ui.FileUpload) ([]ui.SelectedFile, error) {
	var picked []ui.SelectedFile
	upload.OnChange = func(files []ui.SelectedFile) { picked = files }

	helper := ui.FileUploadHint
	if upload.Accept != "" {
		helper += " (" + upload.Accept + ")"
	}
	line, err := a.ask(ui.FormField{Label: label, HelperText: helper}, false)
	if err != nil {
		return nil, err
	}
	upload.Select(line)
	return picked, nil
}

// Submit walks the intake form, sends it, uploads the attached files to the
// returned links and shows the confirmation until dismissed.
func (a *App) Submit(ctx context.Context) error {
	var form assessment.IntakeForm

	for _, f := range intakeFields {
		v, err := a.ask(f.field, f.multiline)
		if err != nil {
			return err
		}
		f.set(&form, v)
	}

	certs, err := a.askFiles("Security Certifications", ui.FileUpload{Accept: certificationTypes, Multiple: true})
	if err != nil {
		return err
	}
	extra, err := a.askFiles("Additional Documents", ui.FileUpload{Multiple: true})
	if err != nil {
		return err
	}
	form.Certifications = ui.Names(certs)
	form.AdditionalDocuments = ui.Names(extra)

	fmt.Fprintln(a.out, "Submitting...")
	resp, err := a.intake.Submit(ctx, form)
	if err != nil {
		var verr *assessment.ValidationError
		if snap := a.intake.State(); !errors.As(err, &verr) && snap.State == submission.Error {
			fmt.Fprintln(a.out, snap.Error)
		} else {
			a.report(ctx, err)
		}
		return err
	}

	a.upload(ctx, resp.Uploads, append(certs, extra...))

	if err := ui.RenderSuccess(a.out, a.intake.State().IsSuccess()); err != nil {
		return err
	}
	_, _ = GetSimpleText(a.reader, "Press Enter to close", a.out)
	a.intake.Reset()

	if err := a.dashboard.Load(ctx); err != nil {
		a.logger.Warn(ctx, "reload after submit", "error", err.Error())
	}
	return nil
}

// upload sends every selected file that has a link. Failures are reported
// but do not undo the submission.
func (a *App) upload(ctx context.Context, uploads []reviewrpc.Upload, files []ui.SelectedFile) {
	paths := make(map[string]string, len(files))
	for _, f := range files {
		paths[f.Name] = f.Path
	}

	for _, u := range uploads {
		path, ok := paths[u.Name]
		if !ok {
			continue
		}
		if err := uploadFile(ctx, u.URL, path); err != nil {
			fmt.Fprintf(a.out, "Upload of %s failed: %v\n", u.Name, err)
			a.logger.Warn(ctx, "upload failed", "name", u.Name, "error", err.Error())
			continue
		}
		fmt.Fprintf(a.out, "Uploaded %s\n", u.Name)
	}
}

func uploadFile(ctx context.Context, url, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}
	return netx.UploadToPresignedURL(ctx, url, f, st.Size())
}
