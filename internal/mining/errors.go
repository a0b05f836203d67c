package mining

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError describes one violated input precondition.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Message }

// ValidationErrors is returned when one or more inputs are out of range.
// Every violation is listed, not only the first one found.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	return "invalid scenario inputs: " + strings.Join(v.Messages(), "; ")
}

// Messages returns the violation messages in check order.
func (v ValidationErrors) Messages() []string {
	out := make([]string, 0, len(v))
	for _, e := range v {
		out = append(out, e.Message)
	}
	return out
}

// Has reports whether the named field failed validation.
func (v ValidationErrors) Has(field string) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}

// ComputationFault reports an unexpected failure after validation passed.
type ComputationFault struct {
	Cause string
}

func (f *ComputationFault) Error() string {
	return fmt.Sprintf("unexpected calculation error: %s", f.Cause)
}

// Messages renders any engine error as the list shown to users.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Messages()
	}
	return []string{err.Error()}
}
