package reviewrpc

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
)

// ValidationPrefix starts the status message of an InvalidArgument error
// that carries per-field messages. A JSON object of field to message follows.
const ValidationPrefix = "invalid fields: "

// ValidationMessage renders verr as an InvalidArgument status message.
func ValidationMessage(verr *assessment.ValidationError) string {
	b, err := sonic.Marshal(verr.Fields)
	if err != nil {
		return verr.Error()
	}
	return ValidationPrefix + string(b)
}

// ParseValidationMessage rebuilds the *assessment.ValidationError carried by
// msg. It reports false for messages ValidationMessage did not produce.
func ParseValidationMessage(msg string) (*assessment.ValidationError, bool) {
	raw, ok := strings.CutPrefix(msg, ValidationPrefix)
	if !ok {
		return nil, false
	}
	fields := map[string]string{}
	if err := sonic.UnmarshalString(raw, &fields); err != nil || len(fields) == 0 {
		return nil, false
	}
	return &assessment.ValidationError{Fields: fields}, true
}
