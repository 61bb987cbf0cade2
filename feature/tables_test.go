package feature

import (
	"reflect"
	"testing"

	"github.com/rushteam/agrikit/core"
)

func TestDefaultTables_OptionOrder(t *testing.T) {
	tables := DefaultTables()
	wantSoils := []string{"Alluvial Soil", "Black (Regur) Soil", "Red Soil", "Laterite Soil", "Desert Soil"}
	if got := tables.SoilNames(); !reflect.DeepEqual(got, wantSoils) {
		t.Errorf("SoilNames() = %v, want %v", got, wantSoils)
	}
	wantSeasons := []string{SeasonKharif, SeasonRabi, SeasonZaid}
	if got := tables.SeasonNames(); !reflect.DeepEqual(got, wantSeasons) {
		t.Errorf("SeasonNames() = %v, want %v", got, wantSeasons)
	}
	if got := len(tables.RegionNames()); got != 5 {
		t.Errorf("len(RegionNames()) = %d, want 5", got)
	}
}

func TestNewTables_Rejects(t *testing.T) {
	soils := DefaultSoils()
	regions := DefaultRegions()
	tests := []struct {
		name    string
		soils   []SoilProfile
		regions []RegionProfile
		seasons []SeasonAdjustment
	}{
		{name: "no soils", soils: nil, regions: regions},
		{name: "no regions", soils: soils, regions: nil},
		{name: "duplicate soil", soils: append(DefaultSoils(), soils[0]), regions: regions},
		{name: "duplicate region", soils: soils, regions: append(DefaultRegions(), regions[0])},
		{name: "season adjusts soil feature", soils: soils, regions: regions, seasons: []SeasonAdjustment{
			{Name: "Bad", Steps: []Adjustment{{Feature: N, Op: OpScale, Value: 2}}},
		}},
		{name: "season unknown op", soils: soils, regions: regions, seasons: []SeasonAdjustment{
			{Name: "Bad", Steps: []Adjustment{{Feature: MonsoonHumidity, Op: "pow", Value: 2}}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTables(tt.soils, tt.regions, tt.seasons); err == nil {
				t.Error("NewTables() error = nil, want error")
			}
		})
	}
}

func TestParseTablesYAML(t *testing.T) {
	data := []byte(`
soils:
  - name: Loam
    n: 70
    p: 40
    k: 150
    ph: 6.8
    s: 9
    zn: 1.2
    climate: {precipitation: 100, spring_max: 30, winter_min: 10, humidity: 14}
regions:
  - name: Valley
    climate: {precipitation: 120, spring_max: 28, winter_min: 4, humidity: 16}
seasons:
  - name: Wet
    adjustments:
      - {feature: PRECTOTCORR-Su, op: scale, value: 2}
      - {feature: T2M_MIN_W, op: shift, value: -1}
`)
	tables, err := ParseTablesYAML(data)
	if err != nil {
		t.Fatalf("ParseTablesYAML() error = %v", err)
	}
	v, err := NewDeriver(tables).Derive("Valley", "Loam", "Wet")
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if v[MonsoonPrecipitation] != 240 || v[WinterMinTemperature] != 3 || v[N] != 70 {
		t.Errorf("unexpected vector: %v", v)
	}
}

func TestTables_WithRegions(t *testing.T) {
	base := DefaultTables()
	updated, err := base.WithRegions([]RegionProfile{
		{Name: "Coastal South (Humid)", Climate: Climate{Precipitation: 210, SpringMax: 31, WinterMin: 19, Humidity: 19}},
		{Name: "Island", Climate: Climate{Precipitation: 300, SpringMax: 29, WinterMin: 20, Humidity: 22}},
	})
	if err != nil {
		t.Fatal(err)
	}
	r, _ := updated.Region("Coastal South (Humid)")
	if r.Climate.Precipitation != 210 {
		t.Errorf("override not applied: %+v", r)
	}
	names := updated.RegionNames()
	if names[len(names)-1] != "Island" || len(names) != 6 {
		t.Errorf("RegionNames() = %v", names)
	}
	orig, _ := base.Region("Coastal South (Humid)")
	if orig.Climate.Precipitation != 200 {
		t.Errorf("base tables mutated: %+v", orig)
	}
}

func TestParseTablesYAML_Invalid(t *testing.T) {
	tests := []string{
		"soils: [",
		"soils: []\nregions: []\n",
		"soils:\n  - name: A\nregions:\n  - name: R\nseasons:\n  - name: S\n    adjustments:\n      - {feature: N, op: scale, value: 2}\n",
	}
	for _, data := range tests {
		if _, err := ParseTablesYAML([]byte(data)); !core.IsInvalidArtifact(err) {
			t.Errorf("ParseTablesYAML(%q) error = %v, want INVALID_ARTIFACT", data, err)
		}
	}
}
