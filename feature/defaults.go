package feature

// 内置季节名称
const (
	SeasonKharif = "Kharif (Monsoon)"
	SeasonRabi   = "Rabi (Winter)"
	SeasonZaid   = "Zaid (Summer)"
)

// DefaultValidationCrops 是 UI 提供的可验证作物选项
var DefaultValidationCrops = []string{"Apple", "Banana", "Coffee", "Jute", "Mango", "Maize", "Orange", "Rice", "Wheat"}

// 土壤基线的中性气候
var neutralClimate = Climate{Precipitation: 100, SpringMax: 30, WinterMin: 10, Humidity: 14}

// DefaultSoils 内置土壤基线
func DefaultSoils() []SoilProfile {
	return []SoilProfile{
		{Name: "Alluvial Soil", N: 95, P: 50, K: 160, Ph: 7.2, S: 10, Zn: 1.5, Climate: neutralClimate},
		{Name: "Black (Regur) Soil", N: 60, P: 45, K: 220, Ph: 8.1, S: 7, Zn: 1.0, Climate: neutralClimate},
		{Name: "Red Soil", N: 40, P: 30, K: 120, Ph: 6.0, S: 12, Zn: 2.0, Climate: neutralClimate},
		{Name: "Laterite Soil", N: 20, P: 15, K: 100, Ph: 5.0, S: 8, Zn: 1.8, Climate: neutralClimate},
		{Name: "Desert Soil", N: 30, P: 20, K: 80, Ph: 8.5, S: 5, Zn: 0.8, Climate: neutralClimate},
	}
}

// DefaultRegions 内置区域气候
func DefaultRegions() []RegionProfile {
	return []RegionProfile{
		{Name: "Himalayan Region (Cold)", Climate: Climate{Precipitation: 150, SpringMax: 20, WinterMin: -2, Humidity: 12}},
		{Name: "Northern Plains (Hot/Cold)", Climate: Climate{Precipitation: 90, SpringMax: 38, WinterMin: 5, Humidity: 14}},
		{Name: "Deccan Plateau (Semi-Arid)", Climate: Climate{Precipitation: 80, SpringMax: 35, WinterMin: 10, Humidity: 15}},
		{Name: "Coastal South (Humid)", Climate: Climate{Precipitation: 200, SpringMax: 30, WinterMin: 18, Humidity: 18}},
		{Name: "Arid Zone (Rajasthan)", Climate: Climate{Precipitation: 40, SpringMax: 40, WinterMin: 8, Humidity: 10}},
	}
}

// DefaultSeasons 内置季节调整
func DefaultSeasons() []SeasonAdjustment {
	return []SeasonAdjustment{
		{Name: SeasonKharif, Steps: []Adjustment{
			{Feature: MonsoonPrecipitation, Op: OpScale, Value: 1.3}, // 降水 +30%
			{Feature: MonsoonHumidity, Op: OpScale, Value: 1.15},     // 湿度 +15%
		}},
		{Name: SeasonRabi, Steps: []Adjustment{
			{Feature: WinterMinTemperature, Op: OpShift, Value: -3.0},
			{Feature: MonsoonHumidity, Op: OpScale, Value: 0.9},
		}},
		{Name: SeasonZaid, Steps: []Adjustment{
			{Feature: SpringMaxTemperature, Op: OpShift, Value: 5.0},
			{Feature: MonsoonPrecipitation, Op: OpScale, Value: 0.5},
		}},
	}
}

// DefaultTables 返回内置参考表
func DefaultTables() *Tables {
	t, err := NewTables(DefaultSoils(), DefaultRegions(), DefaultSeasons())
	if err != nil {
		// 内置数据是常量，构造失败属于编程错误
		panic(err)
	}
	return t
}
