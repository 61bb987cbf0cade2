package feature

import (
	"errors"
	"strings"
	"testing"

	"github.com/rushteam/agrikit/core"
)

const scalerJSON = `{
  "mean": [60, 35, 140, 7.0, 9, 1.4, 120, 32, 9, 14],
  "std": [25, 12, 45, 1.1, 2.5, 0.4, 55, 6, 6, 2.5],
  "feature_names": ["N", "P", "K", "Ph", "S", "Zn", "PRECTOTCORR_Su", "T2M_MAX_Sp", "T2M_MIN_W", "QV2M_Su"]
}`

func mustParams(t *testing.T, data string) *NormalizationParams {
	t.Helper()
	p, err := ParseScalerParams([]byte(data))
	if err != nil {
		t.Fatalf("ParseScalerParams() error = %v", err)
	}
	return p
}

func sampleVector(t *testing.T) Vector {
	t.Helper()
	v, err := NewDeriver(nil).Derive("Coastal South (Humid)", "Alluvial Soil", SeasonKharif)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestParseScalerParams_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed json", data: `{"mean": [1, 2`},
		{name: "short mean", data: strings.Replace(scalerJSON, "[60, 35,", "[35,", 1)},
		{name: "short names", data: strings.Replace(scalerJSON, `"N", `, "", 1)},
		{name: "zero std", data: strings.Replace(scalerJSON, "[25, 12,", "[0, 12,", 1)},
		{name: "duplicate after canonicalization", data: strings.Replace(scalerJSON, `"T2M_MIN_W"`, `"T2M-MAX-Sp"`, 1)},
		{name: "empty object", data: `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScalerParams([]byte(tt.data))
			if err == nil {
				t.Fatal("ParseScalerParams() error = nil, want error")
			}
			if !core.IsInvalidArtifact(err) {
				t.Errorf("error code = %v, want INVALID_ARTIFACT", err)
			}
		})
	}
}

func TestParseScalerParams_CanonicalizesHyphens(t *testing.T) {
	data := strings.NewReplacer(`"T2M_MAX_Sp"`, `"T2M-MAX-Sp"`, `"QV2M_Su"`, `" QV2M-Su "`).Replace(scalerJSON)
	p := mustParams(t, data)
	if p.FeatureNames[7] != SpringMaxTemperature || p.FeatureNames[9] != MonsoonHumidity {
		t.Fatalf("feature names not canonicalized: %v", p.FeatureNames)
	}
	if _, err := p.Standardize(sampleVector(t)); err != nil {
		t.Errorf("Standardize() error = %v", err)
	}
}

func TestStandardize_Values(t *testing.T) {
	p := mustParams(t, scalerJSON)
	z, err := p.Standardize(sampleVector(t))
	if err != nil {
		t.Fatalf("Standardize() error = %v", err)
	}
	if len(z) != Dim {
		t.Fatalf("len = %d, want %d", len(z), Dim)
	}
	// N: (95 - 60) / 25 = 1.4
	if !approx(z[0], 1.4) {
		t.Errorf("z[N] = %v, want 1.4", z[0])
	}
	// PRECTOTCORR_Su: (260 - 120) / 55
	if !approx(z[6], 140.0/55.0) {
		t.Errorf("z[PRECTOTCORR_Su] = %v, want %v", z[6], 140.0/55.0)
	}
}

func TestStandardize_RoundTrip(t *testing.T) {
	p := mustParams(t, scalerJSON)
	v := sampleVector(t)
	z, err := p.Standardize(v)
	if err != nil {
		t.Fatal(err)
	}
	back, err := p.Inverse(z)
	if err != nil {
		t.Fatal(err)
	}
	for i, name := range p.FeatureNames {
		if !approx(back[i], v[name]) {
			t.Errorf("%s: round trip = %v, want %v", name, back[i], v[name])
		}
	}
}

func TestStandardize_FollowsDeclaredOrder(t *testing.T) {
	p := mustParams(t, scalerJSON)
	swapped := mustParams(t, strings.Replace(scalerJSON,
		`"N", "P"`, `"P", "N"`, 1))
	v := sampleVector(t)

	a, err := p.Standardize(v)
	if err != nil {
		t.Fatal(err)
	}
	b, err := swapped.Standardize(v)
	if err != nil {
		t.Fatal(err)
	}
	if approx(a[0], b[0]) && approx(a[1], b[1]) {
		t.Fatalf("swapping feature_names did not change the standardized vector: %v vs %v", a[:2], b[:2])
	}
	// swapped 的第 0 位是 P：(50 - 60) / 25
	if !approx(b[0], (50.0-60.0)/25.0) {
		t.Errorf("b[0] = %v, want %v", b[0], (50.0-60.0)/25.0)
	}
}

func TestStandardize_MissingFeature(t *testing.T) {
	p := mustParams(t, strings.Replace(scalerJSON, `"Zn"`, `"Cu"`, 1))
	_, err := p.Standardize(sampleVector(t))
	if !errors.Is(err, core.ErrMissingFeature) {
		t.Fatalf("Standardize() error = %v, want MISSING_FEATURE", err)
	}
	if !strings.Contains(err.Error(), "Cu") {
		t.Errorf("error %q should name the missing feature", err)
	}
}

func TestInverse_ShapeMismatch(t *testing.T) {
	p := mustParams(t, scalerJSON)
	if _, err := p.Inverse([]float64{1, 2}); !core.IsShapeMismatch(err) {
		t.Errorf("Inverse() error = %v, want SHAPE_MISMATCH", err)
	}
}
