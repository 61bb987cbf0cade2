// Package interpret 把分类器输出的逐类分数解释为推荐结果或可行性结论。
package interpret

import (
	"math"
	"sort"

	"github.com/rushteam/agrikit/core"
)

const (
	// DefaultTopK 结果中附带的候选数
	DefaultTopK = 3

	// DefaultViabilityThreshold 验证模式的可行性阈值（严格大于才可行），可通过 WithThreshold 调整
	DefaultViabilityThreshold = 0.45
)

// LabelTable 是解释器需要的标签表能力（model.Labels 实现此接口）
type LabelTable interface {
	Len() int
	At(i int) string
	Index(name string) int
}

// Interpreter 结果解释器：纯函数，无副作用，可并发使用。
type Interpreter struct {
	topK int
	rule ViabilityRule
}

// Option 解释器配置选项
type Option func(*Interpreter)

// WithTopK 设置附带候选数（<= 0 时保持默认值 3）
func WithTopK(k int) Option {
	return func(it *Interpreter) {
		if k > 0 {
			it.topK = k
		}
	}
}

// WithThreshold 使用阈值规则：confidence > threshold
func WithThreshold(threshold float64) Option {
	return func(it *Interpreter) {
		it.rule = ThresholdRule{Threshold: threshold}
	}
}

// WithRule 使用自定义可行性规则（例如 dsl.Rule）
func WithRule(rule ViabilityRule) Option {
	return func(it *Interpreter) {
		if rule != nil {
			it.rule = rule
		}
	}
}

// New 创建解释器
func New(opts ...Option) *Interpreter {
	it := &Interpreter{
		topK: DefaultTopK,
		rule: ThresholdRule{Threshold: DefaultViabilityThreshold},
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Interpret 解释一次推理输出。
//
//   - 推荐模式：取概率最高的类别，IsRecommended 恒为 true
//   - 验证模式：取目标类别的概率，由可行性规则判定 IsRecommended；
//     目标不在标签表中时返回 (Unknown Crop, 0, false) 结果与 UNKNOWN_CROP 错误
//
// 两种模式的 TopResults 都是全局前 K 名，与验证目标无关。
func (it *Interpreter) Interpret(probabilities []float64, labels LabelTable, req core.Request) (*core.PredictionResult, error) {
	if len(probabilities) == 0 || len(probabilities) != labels.Len() {
		return nil, core.Errorf(core.ModuleInterpret, core.ErrorCodeShapeMismatch,
			"classifier returned %d scores for %d labels", len(probabilities), labels.Len())
	}
	for i, p := range probabilities {
		if math.IsNaN(p) {
			return nil, core.Errorf(core.ModuleInterpret, core.ErrorCodeInferenceFail, "score %d is NaN", i)
		}
	}

	order := rank(probabilities)
	top := scored(order, probabilities, labels, it.topK)

	target, validate := req.Target()
	if !validate {
		best := order[0]
		return &core.PredictionResult{
			Crop:          labels.At(best),
			Confidence:    probabilities[best],
			IsRecommended: true,
			TopResults:    top,
			Mode:          core.ModeRecommend,
		}, nil
	}

	idx := labels.Index(target)
	if idx < 0 {
		result := core.FailedResult(core.PlaceholderUnknownCrop, core.ModeValidate)
		result.TopResults = top
		return result, core.Errorf(core.ModuleInterpret, core.ErrorCodeUnknownCrop, "unknown crop %q", target)
	}

	confidence := probabilities[idx]
	viable, err := it.rule.Viable(ViabilityInput{
		Crop:          target,
		Confidence:    confidence,
		Rank:          positionOf(order, idx) + 1,
		TopConfidence: probabilities[order[0]],
	})
	if err != nil {
		return nil, core.Wrap(core.ModuleInterpret, core.ErrorCodeInternalError, "viability rule failed", err)
	}
	return &core.PredictionResult{
		Crop:          target,
		Confidence:    confidence,
		IsRecommended: viable,
		TopResults:    top,
		Mode:          core.ModeValidate,
	}, nil
}

// TopK 返回概率最高的前 k 个 (标签, 概率)，降序；并列时保持原下标顺序。
func TopK(probabilities []float64, labels LabelTable, k int) []core.ScoredLabel {
	return scored(rank(probabilities), probabilities, labels, k)
}

// rank 返回按概率降序的下标（稳定排序）
func rank(probabilities []float64) []int {
	order := make([]int, len(probabilities))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return probabilities[order[a]] > probabilities[order[b]]
	})
	return order
}

func scored(order []int, probabilities []float64, labels LabelTable, k int) []core.ScoredLabel {
	if k > len(order) {
		k = len(order)
	}
	if k < 0 {
		k = 0
	}
	out := make([]core.ScoredLabel, k)
	for i := 0; i < k; i++ {
		out[i] = core.ScoredLabel{Label: labels.At(order[i]), Probability: probabilities[order[i]]}
	}
	return out
}

func positionOf(order []int, idx int) int {
	for pos, i := range order {
		if i == idx {
			return pos
		}
	}
	return -1
}
