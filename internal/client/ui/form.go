package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// FormField describes one labelled prompt of the intake form.
type FormField struct {
	Label      string
	Required   bool
	HelperText string
}

// Prompt is the label with a trailing "*" for required fields.
func (f FormField) Prompt() string {
	if f.Required {
		return f.Label + " *"
	}
	return f.Label
}

// Render writes the prompt line and, when set, the helper text beneath it.
func (f FormField) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, f.Prompt()); err != nil {
		return err
	}
	if f.HelperText == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, "  "+f.HelperText)
	return err
}

// SelectedFile is one file picked through a FileUpload.
type SelectedFile struct {
	Name string
	Path string
}

// FileUploadHint is shown above the path prompt.
const FileUploadHint = "Enter file paths separated by commas, or leave empty to skip"

// FileUpload turns a comma separated list of paths into a selection and
// hands it to OnChange. Accept is a comma separated list of extensions
// (".pdf,.docx"); empty accepts everything. Without Multiple only the first
// accepted file is kept.
type FileUpload struct {
	Accept   string
	Multiple bool
	OnChange func([]SelectedFile)
}

// Select parses input and relays the result. An empty selection is relayed
// as nil.
func (u FileUpload) Select(input string) {
	var files []SelectedFile
	for _, p := range strings.Split(input, ",") {
		p = strings.TrimSpace(p)
		if p == "" || !u.accepts(p) {
			continue
		}
		files = append(files, SelectedFile{Name: filepath.Base(p), Path: p})
		if !u.Multiple {
			break
		}
	}
	if u.OnChange != nil {
		u.OnChange(files)
	}
}

func (u FileUpload) accepts(path string) bool {
	if strings.TrimSpace(u.Accept) == "" {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, a := range strings.Split(u.Accept, ",") {
		if strings.ToLower(strings.TrimSpace(a)) == ext {
			return true
		}
	}
	return false
}

// Names returns the base names of files.
func Names(files []SelectedFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}
