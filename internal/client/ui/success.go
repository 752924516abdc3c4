package ui

import (
	"fmt"
	"io"
)

const (
	SuccessTitle   = "Submission Successful"
	SuccessMessage = "Your vendor risk assessment has been successfully submitted. " +
		"Our team will review the information and contact you if additional details are needed."
)

// RenderSuccess writes the submission acknowledgement, or nothing when
// isOpen is false.
func RenderSuccess(w io.Writer, isOpen bool) error {
	if !isOpen {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s\n\n%s\n\n[Close]\n", SuccessTitle, SuccessMessage)
	return err
}
