// Package model defines the core data types shared by the tool operations:
// the Result Envelope every tool returns, trading records, financial
// metrics, and the provider call audit record.
package model

import "fmt"

// Status values for the Result Envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the uniform return contract for every tool operation.
// Status is "error" exactly when the underlying provider call failed,
// returned nothing usable, or the input was invalid. Metadata carries
// operation-specific fields (partner lists, trading records, metrics)
// for the charting frontend.
type Envelope struct {
	Status       string         `json:"status"`
	Report       string         `json:"report,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Success builds a success envelope with the given human-readable report.
func Success(report string) *Envelope {
	return &Envelope{Status: StatusSuccess, Report: report}
}

// Errorf builds an error envelope with a formatted diagnostic message.
func Errorf(format string, args ...any) *Envelope {
	return &Envelope{Status: StatusError, ErrorMessage: fmt.Sprintf(format, args...)}
}

// WithMeta attaches a metadata field and returns the envelope for chaining.
func (e *Envelope) WithMeta(key string, value any) *Envelope {
	if e.Metadata == nil {
		e.Metadata = make(map[string]any)
	}
	e.Metadata[key] = value
	return e
}

// OK reports whether the envelope carries a success status.
func (e *Envelope) OK() bool {
	return e.Status == StatusSuccess
}
