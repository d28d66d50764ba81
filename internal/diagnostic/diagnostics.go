package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"protocol-generator/internal/common"
)

// Diagnostics collects the findings of a validation pass that reports every
// problem at once instead of stopping at the first (configuration, type
// mapping overrides).
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single finding.
type Diagnostic struct {
	Severity Severity
	// Code is a unique identifier for this kind of finding.
	Code    string
	Message string
	// Subject names what the finding is about (a setting, a type name).
	Subject string
}

// Severity of a Diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, subject string) {
	d.Errors = append(d.Errors, Diagnostic{Severity: SeverityError, Code: code, Message: message, Subject: subject})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, subject string) {
	d.Warnings = append(d.Warnings, Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Subject: subject})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends the findings of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// Err returns the error diagnostics joined into one error, or nil.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Subject != "" {
		return d.Subject + ": " + msg
	}

	return msg
}
