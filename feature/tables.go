package feature

import (
	"fmt"
)

// Climate 是 4 个气候特征
type Climate struct {
	Precipitation float64 `yaml:"precipitation" json:"precipitation"` // PRECTOTCORR_Su
	SpringMax     float64 `yaml:"spring_max" json:"spring_max"`       // T2M_MAX_Sp
	WinterMin     float64 `yaml:"winter_min" json:"winter_min"`       // T2M_MIN_W
	Humidity      float64 `yaml:"humidity" json:"humidity"`           // QV2M_Su
}

func (c Climate) writeTo(v Vector) {
	v[MonsoonPrecipitation] = c.Precipitation
	v[SpringMaxTemperature] = c.SpringMax
	v[WinterMinTemperature] = c.WinterMin
	v[MonsoonHumidity] = c.Humidity
}

// SoilProfile 是土壤类型的基线：养分值为准，气候为占位基线
type SoilProfile struct {
	Name    string  `yaml:"name" json:"name"`
	N       float64 `yaml:"n" json:"n"`
	P       float64 `yaml:"p" json:"p"`
	K       float64 `yaml:"k" json:"k"`
	Ph      float64 `yaml:"ph" json:"ph"`
	S       float64 `yaml:"s" json:"s"`
	Zn      float64 `yaml:"zn" json:"zn"`
	Climate Climate `yaml:"climate" json:"climate"`
}

// Vector 返回完整的 10 维基线向量
func (p SoilProfile) Vector() Vector {
	v := Vector{
		N:  p.N,
		P:  p.P,
		K:  p.K,
		Ph: p.Ph,
		S:  p.S,
		Zn: p.Zn,
	}
	p.Climate.writeTo(v)
	return v
}

// RegionProfile 是区域的气候覆盖，只覆盖 4 个气候特征
type RegionProfile struct {
	Name    string  `yaml:"name" json:"name"`
	Climate Climate `yaml:"climate" json:"climate"`
}

// Tables 是特征推导所需的只读参考数据：土壤、区域、季节。
// 启动时构造一次，之后按引用共享；构造后不再修改。
type Tables struct {
	soils       map[string]SoilProfile
	soilOrder   []string
	regions     map[string]RegionProfile
	regionOrder []string
	seasons     map[string]SeasonAdjustment
	seasonOrder []string
}

// NewTables 根据有序条目构造参考表，名称重复或季节规则非法时返回错误
func NewTables(soils []SoilProfile, regions []RegionProfile, seasons []SeasonAdjustment) (*Tables, error) {
	t := &Tables{
		soils:   make(map[string]SoilProfile, len(soils)),
		regions: make(map[string]RegionProfile, len(regions)),
		seasons: make(map[string]SeasonAdjustment, len(seasons)),
	}
	if len(soils) == 0 {
		return nil, fmt.Errorf("tables: at least one soil profile is required")
	}
	if len(regions) == 0 {
		return nil, fmt.Errorf("tables: at least one region profile is required")
	}
	for _, s := range soils {
		if s.Name == "" {
			return nil, fmt.Errorf("tables: soil profile without name")
		}
		if _, dup := t.soils[s.Name]; dup {
			return nil, fmt.Errorf("tables: duplicate soil %q", s.Name)
		}
		t.soils[s.Name] = s
		t.soilOrder = append(t.soilOrder, s.Name)
	}
	for _, r := range regions {
		if r.Name == "" {
			return nil, fmt.Errorf("tables: region profile without name")
		}
		if _, dup := t.regions[r.Name]; dup {
			return nil, fmt.Errorf("tables: duplicate region %q", r.Name)
		}
		t.regions[r.Name] = r
		t.regionOrder = append(t.regionOrder, r.Name)
	}
	for _, s := range seasons {
		if s.Name == "" {
			return nil, fmt.Errorf("tables: season without name")
		}
		if _, dup := t.seasons[s.Name]; dup {
			return nil, fmt.Errorf("tables: duplicate season %q", s.Name)
		}
		normalized, err := s.normalize()
		if err != nil {
			return nil, fmt.Errorf("tables: season %q: %w", s.Name, err)
		}
		t.seasons[s.Name] = normalized
		t.seasonOrder = append(t.seasonOrder, s.Name)
	}
	return t, nil
}

// Soil 查找土壤基线
func (t *Tables) Soil(name string) (SoilProfile, bool) {
	p, ok := t.soils[name]
	return p, ok
}

// Region 查找区域气候覆盖
func (t *Tables) Region(name string) (RegionProfile, bool) {
	p, ok := t.regions[name]
	return p, ok
}

// Season 查找季节调整
func (t *Tables) Season(name string) (SeasonAdjustment, bool) {
	s, ok := t.seasons[name]
	return s, ok
}

// SoilNames 按声明顺序返回土壤选项（UI 下拉列表）
func (t *Tables) SoilNames() []string {
	return append([]string(nil), t.soilOrder...)
}

// RegionNames 按声明顺序返回区域选项
func (t *Tables) RegionNames() []string {
	return append([]string(nil), t.regionOrder...)
}

// SeasonNames 按声明顺序返回季节选项
func (t *Tables) SeasonNames() []string {
	return append([]string(nil), t.seasonOrder...)
}

// WithRegions 返回以 overrides 覆盖同名区域后的新表（原表不变）；
// 未知区域追加在末尾。
func (t *Tables) WithRegions(overrides []RegionProfile) (*Tables, error) {
	byName := make(map[string]RegionProfile, len(overrides))
	for _, r := range overrides {
		byName[r.Name] = r
	}
	regions := make([]RegionProfile, 0, len(t.regionOrder)+len(overrides))
	for _, name := range t.regionOrder {
		if r, ok := byName[name]; ok {
			regions = append(regions, r)
			delete(byName, name)
			continue
		}
		regions = append(regions, t.regions[name])
	}
	for _, r := range overrides {
		if _, pending := byName[r.Name]; pending {
			regions = append(regions, r)
			delete(byName, r.Name)
		}
	}
	return NewTables(t.soilList(), regions, t.seasonList())
}

func (t *Tables) soilList() []SoilProfile {
	out := make([]SoilProfile, 0, len(t.soilOrder))
	for _, name := range t.soilOrder {
		out = append(out, t.soils[name])
	}
	return out
}

func (t *Tables) seasonList() []SeasonAdjustment {
	out := make([]SeasonAdjustment, 0, len(t.seasonOrder))
	for _, name := range t.seasonOrder {
		out = append(out, t.seasons[name])
	}
	return out
}
