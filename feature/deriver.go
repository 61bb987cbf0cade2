package feature

import (
	"github.com/rushteam/agrikit/core"
)

// Deriver 把 (区域, 土壤, 季节) 三个类别选择映射为 10 维命名特征。
//
// 组合顺序固定：
//  1. 土壤基线（10 个特征）
//  2. 区域覆盖（只覆盖 4 个气候特征）
//  3. 季节调整（作用于区域覆盖后的值；未知季节不做任何调整）
type Deriver struct {
	tables *Tables
}

// NewDeriver 创建特征推导器，tables 为 nil 时使用内置参考表
func NewDeriver(tables *Tables) *Deriver {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Deriver{tables: tables}
}

// Tables 返回推导器使用的参考表
func (d *Deriver) Tables() *Tables {
	return d.tables
}

// Derive 推导特征向量。
// 土壤未知返回 INVALID_SOIL，区域未知返回 INVALID_REGION（先查土壤）。
func (d *Deriver) Derive(region, soil, season string) (Vector, error) {
	base, ok := d.tables.Soil(soil)
	if !ok {
		return nil, core.Errorf(core.ModuleFeature, core.ErrorCodeInvalidSoil, "invalid soil %q", soil)
	}
	features := base.Vector()

	override, ok := d.tables.Region(region)
	if !ok {
		return nil, core.Errorf(core.ModuleFeature, core.ErrorCodeInvalidRegion, "invalid region %q", region)
	}
	override.Climate.writeTo(features)

	if adj, ok := d.tables.Season(season); ok {
		adj.Apply(features)
	}
	return features, nil
}
