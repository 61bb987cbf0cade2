package feature

import "strings"

// Dim 是模型输入向量的固定维度
const Dim = 10

// 特征名称（规范写法：下划线）。6 个土壤/养分特征 + 4 个气候特征。
const (
	N  = "N"
	P  = "P"
	K  = "K"
	Ph = "Ph"
	S  = "S"
	Zn = "Zn"

	MonsoonPrecipitation = "PRECTOTCORR_Su" // 季风期降水
	SpringMaxTemperature = "T2M_MAX_Sp"     // 春季最高气温
	WinterMinTemperature = "T2M_MIN_W"      // 冬季最低气温
	MonsoonHumidity      = "QV2M_Su"        // 季风期湿度
)

// SoilFeatureNames 土壤特征，以土壤基线为准
var SoilFeatureNames = []string{N, P, K, Ph, S, Zn}

// ClimateFeatureNames 气候特征，可被区域覆盖、被季节调整
var ClimateFeatureNames = []string{MonsoonPrecipitation, SpringMaxTemperature, WinterMinTemperature, MonsoonHumidity}

// FeatureNames 返回全部 10 个特征名称（土壤在前、气候在后）。
// 这只是内部约定顺序；推理顺序以标准化参数中的 feature_names 为准。
func FeatureNames() []string {
	names := make([]string, 0, Dim)
	names = append(names, SoilFeatureNames...)
	return append(names, ClimateFeatureNames...)
}

// CanonicalName 将特征名称规范化：去除首尾空白，连字符统一为下划线。
// 制品加载边界与内部表使用同一规则，查找时不再做任何修补。
func CanonicalName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "-", "_")
}

func isClimateFeature(name string) bool {
	for _, c := range ClimateFeatureNames {
		if c == name {
			return true
		}
	}
	return false
}
