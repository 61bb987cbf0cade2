package feature

import "fmt"

// AdjustOp 是季节调整的运算类型
type AdjustOp string

const (
	OpScale AdjustOp = "scale" // 乘法：x * value
	OpShift AdjustOp = "shift" // 加法：x + value
)

// Adjustment 是对单个气候特征的一步调整
type Adjustment struct {
	Feature string   `yaml:"feature" json:"feature"`
	Op      AdjustOp `yaml:"op" json:"op"`
	Value   float64  `yaml:"value" json:"value"`
}

// SeasonAdjustment 是季节对应的有序调整步骤。
// 在土壤基线 + 区域覆盖之后应用，按 Steps 顺序执行。
type SeasonAdjustment struct {
	Name  string       `yaml:"name" json:"name"`
	Steps []Adjustment `yaml:"adjustments" json:"adjustments"`
}

// Apply 在 v 上原地执行调整
func (s SeasonAdjustment) Apply(v Vector) {
	for _, step := range s.Steps {
		cur, ok := v[step.Feature]
		if !ok {
			continue
		}
		switch step.Op {
		case OpScale:
			v[step.Feature] = cur * step.Value
		case OpShift:
			v[step.Feature] = cur + step.Value
		}
	}
}

func (s SeasonAdjustment) normalize() (SeasonAdjustment, error) {
	steps := make([]Adjustment, len(s.Steps))
	for i, step := range s.Steps {
		step.Feature = CanonicalName(step.Feature)
		if !isClimateFeature(step.Feature) {
			return s, fmt.Errorf("step %d adjusts non-climate feature %q", i, step.Feature)
		}
		if step.Op != OpScale && step.Op != OpShift {
			return s, fmt.Errorf("step %d has unknown op %q", i, step.Op)
		}
		steps[i] = step
	}
	return SeasonAdjustment{Name: s.Name, Steps: steps}, nil
}
