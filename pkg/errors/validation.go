package errors

import (
	"math"
	"regexp"
)

// Bounds for rendered canvas dimensions in pixels.
const (
	MinDimension = 50
	MaxDimension = 8192
)

// visualizationIDRegex matches plugin identifiers such as "bubble_chart_store".
var visualizationIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

// ValidateVisualizationID validates a plugin identifier.
// Identifiers are lowercase, start with a letter and are at most 64 characters.
func ValidateVisualizationID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "visualization id cannot be empty")
	}
	if !visualizationIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid visualization id: %q", id)
	}
	return nil
}

// ValidateDimensions checks that a canvas size is finite and within
// [MinDimension, MaxDimension] on both axes.
func ValidateDimensions(width, height float64) error {
	for _, v := range []struct {
		name string
		val  float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return New(ErrCodeInvalidSize, "%s must be a finite number", v.name)
		}
		if v.val < MinDimension || v.val > MaxDimension {
			return New(ErrCodeInvalidSize, "%s %.0f out of range [%d, %d]", v.name, v.val, MinDimension, MaxDimension)
		}
	}
	return nil
}

// ValidateZoom checks a zoom/pan transform. The scale factor must be positive
// and all components finite.
func ValidateZoom(k, x, y float64) error {
	for _, v := range []float64{k, x, y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidZoom, "zoom components must be finite")
		}
	}
	if k <= 0 {
		return New(ErrCodeInvalidZoom, "zoom scale must be positive, got %g", k)
	}
	return nil
}
