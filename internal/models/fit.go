package models

// FitType is the fit preference supplied by the client.
type FitType string

const (
	FitSlim    FitType = "slim"
	FitRegular FitType = "regular"
	FitLoose   FitType = "loose"
)

// AllFitTypes lists every accepted fit value, in documentation order.
var AllFitTypes = []FitType{FitSlim, FitRegular, FitLoose}

// IsValid reports whether the value is one of the enumerated fits.
// Unknown fits must be rejected at the boundary, never defaulted.
func (f FitType) IsValid() bool {
	switch f {
	case FitSlim, FitRegular, FitLoose:
		return true
	}
	return false
}

// ParseFit maps the raw query value to a FitType. An empty string means
// the client did not specify a fit and gets the regular default.
func ParseFit(raw string) (FitType, bool) {
	if raw == "" {
		return FitRegular, true
	}
	f := FitType(raw)
	return f, f.IsValid()
}
