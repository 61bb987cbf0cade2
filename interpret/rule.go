package interpret

// ViabilityInput 是可行性规则的输入
type ViabilityInput struct {
	Crop          string  // 被验证的作物
	Confidence    float64 // 该作物的分数
	Rank          int     // 该作物在全局排序中的名次（从 1 开始）
	TopConfidence float64 // 全局最高分
}

// ViabilityRule 判定验证模式下作物是否可行
type ViabilityRule interface {
	Viable(in ViabilityInput) (bool, error)
}

// ThresholdRule 阈值规则：Confidence 严格大于 Threshold 才可行
type ThresholdRule struct {
	Threshold float64
}

func (r ThresholdRule) Viable(in ViabilityInput) (bool, error) {
	return in.Confidence > r.Threshold, nil
}
