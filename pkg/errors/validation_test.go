package errors

import (
	"math"
	"testing"
)

func TestValidateVisualizationID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"bubble_chart_store", false},
		{"bubble-v2", false},
		{"a", false},
		{"", true},
		{"Bubble", true},
		{"1bubble", true},
		{"bubble chart", true},
		{"../etc", true},
	}

	for _, tt := range tests {
		err := ValidateVisualizationID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVisualizationID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidateVisualizationID(%q) code = %v, want %v", tt.id, GetCode(err), ErrCodeInvalidInput)
		}
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"default", 600, 400, false},
		{"minimum", MinDimension, MinDimension, false},
		{"maximum", MaxDimension, MaxDimension, false},
		{"too small", 10, 400, true},
		{"too large", 600, MaxDimension + 1, true},
		{"nan", math.NaN(), 400, true},
		{"inf", 600, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSize) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidSize)
			}
		})
	}
}

func TestValidateZoom(t *testing.T) {
	tests := []struct {
		name    string
		k, x, y float64
		wantErr bool
	}{
		{"identity", 1, 0, 0, false},
		{"zoomed and panned", 2, -40, 12.5, false},
		{"zero scale", 0, 0, 0, true},
		{"negative scale", -1, 0, 0, true},
		{"nan pan", 1, math.NaN(), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateZoom(tt.k, tt.x, tt.y)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateZoom() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
