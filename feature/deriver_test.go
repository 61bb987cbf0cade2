package feature

import (
	"errors"
	"math"
	"testing"

	"github.com/rushteam/agrikit/core"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestDeriver_Derive_AlluvialCoastalMonsoon(t *testing.T) {
	d := NewDeriver(nil)
	got, err := d.Derive("Coastal South (Humid)", "Alluvial Soil", SeasonKharif)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	want := Vector{
		N: 95, P: 50, K: 160, Ph: 7.2, S: 10, Zn: 1.5,
		MonsoonPrecipitation: 260,
		SpringMaxTemperature: 30,
		WinterMinTemperature: 18,
		MonsoonHumidity:      20.7,
	}
	if len(got) != len(want) {
		t.Fatalf("期望 %d 个特征，实际 %d 个", len(want), len(got))
	}
	for name, w := range want {
		if !approx(got[name], w) {
			t.Errorf("%s = %v, want %v", name, got[name], w)
		}
	}
}

func TestDeriver_Derive_Seasons(t *testing.T) {
	d := NewDeriver(nil)
	region := "Northern Plains (Hot/Cold)" // 90 / 38 / 5 / 14

	tests := []struct {
		name   string
		season string
		want   Climate
	}{
		{name: "monsoon", season: SeasonKharif, want: Climate{Precipitation: 117, SpringMax: 38, WinterMin: 5, Humidity: 16.1}},
		{name: "winter", season: SeasonRabi, want: Climate{Precipitation: 90, SpringMax: 38, WinterMin: 2, Humidity: 12.6}},
		{name: "summer", season: SeasonZaid, want: Climate{Precipitation: 45, SpringMax: 43, WinterMin: 5, Humidity: 14}},
		{name: "unrecognized season is a no-op", season: "Monsoon-ish", want: Climate{Precipitation: 90, SpringMax: 38, WinterMin: 5, Humidity: 14}},
		{name: "empty season is a no-op", season: "", want: Climate{Precipitation: 90, SpringMax: 38, WinterMin: 5, Humidity: 14}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Derive(region, "Red Soil", tt.season)
			if err != nil {
				t.Fatalf("Derive() error = %v", err)
			}
			checks := map[string]float64{
				MonsoonPrecipitation: tt.want.Precipitation,
				SpringMaxTemperature: tt.want.SpringMax,
				WinterMinTemperature: tt.want.WinterMin,
				MonsoonHumidity:      tt.want.Humidity,
			}
			for name, w := range checks {
				if !approx(got[name], w) {
					t.Errorf("%s = %v, want %v", name, got[name], w)
				}
			}
			// 土壤养分不受区域与季节影响
			if got[N] != 40 || got[Zn] != 2.0 {
				t.Errorf("soil nutrients changed: N=%v Zn=%v", got[N], got[Zn])
			}
		})
	}
}

func TestDeriver_Derive_ShapeForAllPairs(t *testing.T) {
	d := NewDeriver(nil)
	tables := d.Tables()
	seasons := append(tables.SeasonNames(), "unknown")
	for _, soil := range tables.SoilNames() {
		for _, region := range tables.RegionNames() {
			for _, season := range seasons {
				v, err := d.Derive(region, soil, season)
				if err != nil {
					t.Fatalf("Derive(%q, %q, %q) error = %v", region, soil, season, err)
				}
				if err := v.Validate(); err != nil {
					t.Errorf("Derive(%q, %q, %q): %v", region, soil, season, err)
				}
			}
		}
	}
}

func TestDeriver_Derive_InvalidSelections(t *testing.T) {
	d := NewDeriver(nil)
	tests := []struct {
		name   string
		region string
		soil   string
		want   error
	}{
		{name: "invalid soil", region: "Coastal South (Humid)", soil: "Moon Dust", want: core.ErrInvalidSoil},
		{name: "invalid region", region: "Atlantis", soil: "Red Soil", want: core.ErrInvalidRegion},
		{name: "soil checked first", region: "Atlantis", soil: "Moon Dust", want: core.ErrInvalidSoil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := d.Derive(tt.region, tt.soil, SeasonKharif)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Derive() error = %v, want %v", err, tt.want)
			}
			if v != nil {
				t.Errorf("Derive() vector = %v, want nil", v)
			}
		})
	}
}

func TestDeriver_Derive_DoesNotMutateTables(t *testing.T) {
	d := NewDeriver(nil)
	if _, err := d.Derive("Coastal South (Humid)", "Alluvial Soil", SeasonKharif); err != nil {
		t.Fatal(err)
	}
	soil, _ := d.Tables().Soil("Alluvial Soil")
	if soil.Climate != neutralClimate {
		t.Errorf("soil baseline climate mutated: %+v", soil.Climate)
	}
	region, _ := d.Tables().Region("Coastal South (Humid)")
	if region.Climate.Precipitation != 200 {
		t.Errorf("region climate mutated: %+v", region.Climate)
	}
}
