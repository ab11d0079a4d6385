package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a Failure.
type Kind string

const (
	InvalidUsage        Kind = "InvalidUsage"
	InvalidAirportCode  Kind = "InvalidAirportCode"
	InvalidDateFormat   Kind = "InvalidDateFormat"
	DateInPast          Kind = "DateInPast"
	InvalidSiteSelector Kind = "InvalidSiteSelector"
	UseComparisonMode   Kind = "UseComparisonMode"
	MissingCredential   Kind = "MissingCredential"
	InvalidConfig       Kind = "InvalidConfig"
	Timeout             Kind = "Timeout"
	NetworkError        Kind = "NetworkError"
	NoResultsAnySite    Kind = "NoResultsAnySite"
	UnexpectedError     Kind = "UnexpectedError"
)

// Failure is the terminal error value returned by every public operation.
type Failure struct {
	Kind         Kind     `json:"kind"`
	Message      string   `json:"error"`
	Suggestion   string   `json:"suggestion,omitempty"`
	SitesChecked []string `json:"sitesChecked,omitempty"`

	cause error
}

// New creates a Failure of the given kind.
func New(kind Kind, message, suggestion string) *Failure {
	return &Failure{Kind: kind, Message: message, Suggestion: suggestion}
}

// Wrap creates a Failure that keeps err as its cause.
func Wrap(kind Kind, err error, message, suggestion string) *Failure {
	f := New(kind, message, suggestion)
	f.cause = err
	return f
}

// WithSites returns a copy of f listing the sites that were attempted.
func (f *Failure) WithSites(sites ...string) *Failure {
	cp := *f
	cp.SitesChecked = append([]string(nil), sites...)
	return &cp
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.cause
}

// Is reports whether target is a Failure of the same kind.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Kind == f.Kind && t.Message == ""
}

// Sentinels for errors.Is checks, e.g. errors.Is(err, failure.ErrTimeout).
var (
	ErrTimeout          = &Failure{Kind: Timeout}
	ErrNetwork          = &Failure{Kind: NetworkError}
	ErrNoResultsAnySite = &Failure{Kind: NoResultsAnySite}
	ErrUseComparison    = &Failure{Kind: UseComparisonMode}
)

// KindOf returns the kind of err, or UnexpectedError when err is not a Failure.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return UnexpectedError
}

// From converts any error into a Failure. Failures are returned unchanged.
func From(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return Wrap(UnexpectedError, err,
		fmt.Sprintf("Unexpected error: %v", err),
		"Contact support if this persists")
}
