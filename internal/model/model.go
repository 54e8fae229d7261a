// Package model defines the extraction record types and the confidence
// scoring convention shared by all of them.
package model

import "strings"

// Record is implemented by every extraction record type. ExtractionType and
// TypeDescription are stable per type, never per instance.
type Record interface {
	ExtractionType() string
	TypeDescription() string
	CalculateConfidence() float64
	UpdateConfidence()
}

// Factory produces fresh instances of a record type so that generic code
// (the registry, the LLM extractor) can build and decode records without
// knowing the concrete type. The registered prototypes implement it.
type Factory interface {
	Record
	New() Record
}

// Completeness returns the share of filled fields, in [0,1]. The confidence
// field itself is never passed in. Returns 0.0 for a type with no
// extractable fields.
func Completeness(fields ...any) float64 {
	if len(fields) == 0 {
		return 0.0
	}
	filled := 0
	for _, f := range fields {
		if isFilled(f) {
			filled++
		}
	}
	return float64(filled) / float64(len(fields))
}

// isFilled mirrors the long-standing scoring rules: strings count when
// non-blank after trimming, slices count whenever non-nil (an empty
// slice set by an extractor still counts), numbers always count.
func isFilled(v any) bool {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x) != ""
	case []string:
		return x != nil
	case float64:
		return true
	case nil:
		return false
	default:
		return true
	}
}
