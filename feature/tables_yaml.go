package feature

import (
	"gopkg.in/yaml.v3"

	"github.com/rushteam/agrikit/core"
)

// tablesDocument 是参考表 YAML 制品的结构
type tablesDocument struct {
	Soils   []SoilProfile      `yaml:"soils"`
	Regions []RegionProfile    `yaml:"regions"`
	Seasons []SeasonAdjustment `yaml:"seasons"`
}

// ParseTablesYAML 从 YAML 制品构造参考表。
//
// 格式：
//
//	soils:
//	  - name: Alluvial Soil
//	    n: 95
//	    p: 50
//	    k: 160
//	    ph: 7.2
//	    s: 10
//	    zn: 1.5
//	    climate: {precipitation: 100, spring_max: 30, winter_min: 10, humidity: 14}
//	regions:
//	  - name: Coastal South (Humid)
//	    climate: {precipitation: 200, spring_max: 30, winter_min: 18, humidity: 18}
//	seasons:
//	  - name: Kharif (Monsoon)
//	    adjustments:
//	      - {feature: PRECTOTCORR_Su, op: scale, value: 1.3}
func ParseTablesYAML(data []byte) (*Tables, error) {
	var doc tablesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, core.Wrap(core.ModuleFeature, core.ErrorCodeInvalidArtifact, "解析参考表失败", err)
	}
	t, err := NewTables(doc.Soils, doc.Regions, doc.Seasons)
	if err != nil {
		return nil, core.Wrap(core.ModuleFeature, core.ErrorCodeInvalidArtifact, "参考表内容非法", err)
	}
	return t, nil
}
