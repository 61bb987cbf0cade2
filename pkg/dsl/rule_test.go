package dsl

import (
	"testing"

	"github.com/rushteam/agrikit/interpret"
)

func TestRule_Viable(t *testing.T) {
	tests := []struct {
		name string
		expr string
		in   interpret.ViabilityInput
		want bool
	}{
		{
			name: "threshold boundary is strict",
			expr: "confidence > 0.45",
			in:   interpret.ViabilityInput{Crop: "Rice", Confidence: 0.45, Rank: 2},
			want: false,
		},
		{
			name: "above threshold",
			expr: "confidence > 0.45",
			in:   interpret.ViabilityInput{Crop: "Rice", Confidence: 0.4500001, Rank: 2},
			want: true,
		},
		{
			name: "rank fallback",
			expr: "confidence > 0.45 || rank == 1",
			in:   interpret.ViabilityInput{Crop: "Jute", Confidence: 0.3, Rank: 1},
			want: true,
		},
		{
			name: "per crop threshold",
			expr: `crop == "Rice" ? confidence > 0.6 : confidence > 0.45`,
			in:   interpret.ViabilityInput{Crop: "Rice", Confidence: 0.5, Rank: 1},
			want: false,
		},
		{
			name: "relative to top",
			expr: "confidence >= top_confidence * 0.8",
			in:   interpret.ViabilityInput{Crop: "Maize", Confidence: 0.4, TopConfidence: 0.45, Rank: 2},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewRule(tt.expr)
			if err != nil {
				t.Fatalf("NewRule(%q) error = %v", tt.expr, err)
			}
			got, err := rule.Viable(tt.in)
			if err != nil {
				t.Fatalf("Viable() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Viable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRule_Invalid(t *testing.T) {
	tests := []string{
		"",
		"confidence >",
		"confidence + 1",
		"unknown_var > 1",
	}
	for _, expr := range tests {
		if _, err := NewRule(expr); err == nil {
			t.Errorf("NewRule(%q) error = nil, want error", expr)
		}
	}
}
