package feature

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/rushteam/agrikit/core"
)

// NormalizationParams 是训练时的标准化参数，对应 scaler_params.json：
//
//	{"mean": [...10], "std": [...10], "feature_names": [...10]}
//
// 三个数组等长且长度为 10；FeatureNames 定义推理时的特征顺序。
// 加载后只读，可在多个 goroutine 间共享。
type NormalizationParams struct {
	Mean         []float64 `json:"mean"`
	Std          []float64 `json:"std"`
	FeatureNames []string  `json:"feature_names"`
}

// ParseScalerParams 解析并校验标准化参数。
//
// 校验规则：
//   - 三个数组长度都必须为 10
//   - std 不得为 0（也不得为 NaN / Inf）：零标准差是配置错误
//   - 特征名称统一规范化（连字符 → 下划线），规范化后不得重复
func ParseScalerParams(data []byte) (*NormalizationParams, error) {
	var params NormalizationParams
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, core.Wrap(core.ModuleFeature, core.ErrorCodeInvalidArtifact, "解析标准化参数失败", err)
	}
	if err := params.normalize(); err != nil {
		return nil, err
	}
	return &params, nil
}

// NewNormalizationParams 由内存数组构造标准化参数，校验规则同 ParseScalerParams
func NewNormalizationParams(mean, std []float64, names []string) (*NormalizationParams, error) {
	params := &NormalizationParams{
		Mean:         append([]float64(nil), mean...),
		Std:          append([]float64(nil), std...),
		FeatureNames: append([]string(nil), names...),
	}
	if err := params.normalize(); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *NormalizationParams) normalize() error {
	if len(p.Mean) != Dim || len(p.Std) != Dim || len(p.FeatureNames) != Dim {
		return core.Errorf(core.ModuleFeature, core.ErrorCodeInvalidArtifact,
			"scaler params: expected %d features, got mean=%d std=%d feature_names=%d",
			Dim, len(p.Mean), len(p.Std), len(p.FeatureNames))
	}
	seen := make(map[string]struct{}, Dim)
	for i, name := range p.FeatureNames {
		canonical := CanonicalName(name)
		if canonical == "" {
			return core.Errorf(core.ModuleFeature, core.ErrorCodeInvalidArtifact, "scaler params: empty feature name at %d", i)
		}
		if _, dup := seen[canonical]; dup {
			return core.Errorf(core.ModuleFeature, core.ErrorCodeInvalidArtifact, "scaler params: duplicate feature %q", canonical)
		}
		seen[canonical] = struct{}{}
		p.FeatureNames[i] = canonical

		std := p.Std[i]
		if std == 0 || math.IsNaN(std) || math.IsInf(std, 0) {
			return core.Errorf(core.ModuleFeature, core.ErrorCodeInvalidArtifact, "scaler params: invalid std %v for %q", std, canonical)
		}
	}
	return nil
}

// Order 按 FeatureNames 顺序把命名特征排成向量。
// 任一声明的特征缺失时返回 MISSING_FEATURE。
func (p *NormalizationParams) Order(v Vector) ([]float64, error) {
	lookup := make(map[string]float64, len(v))
	for k, val := range v {
		lookup[CanonicalName(k)] = val
	}
	raw := make([]float64, len(p.FeatureNames))
	for i, name := range p.FeatureNames {
		val, ok := lookup[name]
		if !ok {
			return nil, core.Errorf(core.ModuleFeature, core.ErrorCodeMissingFeature, "missing feature: %s", name)
		}
		raw[i] = val
	}
	return raw, nil
}

// Standardize 排序后做 Z-score 标准化
// 公式: z[i] = (x[i] - mean[i]) / std[i]
func (p *NormalizationParams) Standardize(v Vector) ([]float64, error) {
	raw, err := p.Order(v)
	if err != nil {
		return nil, err
	}
	for i := range raw {
		raw[i] = (raw[i] - p.Mean[i]) / p.Std[i]
	}
	return raw, nil
}

// Inverse 反标准化：x[i] = z[i] * std[i] + mean[i]
func (p *NormalizationParams) Inverse(z []float64) ([]float64, error) {
	if len(z) != len(p.FeatureNames) {
		return nil, core.Errorf(core.ModuleFeature, core.ErrorCodeShapeMismatch, "inverse: got %d values, want %d", len(z), len(p.FeatureNames))
	}
	out := make([]float64, len(z))
	for i, val := range z {
		out[i] = val*p.Std[i] + p.Mean[i]
	}
	return out, nil
}

// String 用于日志
func (p *NormalizationParams) String() string {
	return fmt.Sprintf("NormalizationParams%v", p.FeatureNames)
}
