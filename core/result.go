package core

// 失败结果使用的占位作物名称（UI 直接展示）
const (
	PlaceholderInvalidSoil    = "Invalid Soil"
	PlaceholderInvalidRegion  = "Invalid Region"
	PlaceholderUnknownCrop    = "Unknown Crop"
	PlaceholderNotInitialized = "Not Initialized"
	PlaceholderError          = "Error"
)

// ScoredLabel 是 (作物, 概率) 对
type ScoredLabel struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// PredictionResult 是一次推理的输出记录。
// 每次调用新建，调用方不应修改（TopResults 为独立分配的切片）。
type PredictionResult struct {
	// Crop 推荐或被验证的作物名称，失败时为占位名称
	Crop string `json:"crop"`
	// Confidence 置信度，区间 [0,1] 的小数
	Confidence float64 `json:"confidence"`
	// IsRecommended 推荐模式恒为 true；验证模式表示是否可行
	IsRecommended bool `json:"is_recommended"`
	// TopResults 全局概率最高的前 K 个作物（降序）
	TopResults []ScoredLabel `json:"top_results"`
	// Mode 产生该结果的请求模式
	Mode Mode `json:"mode"`
}

// FailedResult 构造失败时的可渲染结果：置信度 0、不推荐
func FailedResult(placeholder string, mode Mode) *PredictionResult {
	return &PredictionResult{
		Crop:          placeholder,
		Confidence:    0,
		IsRecommended: false,
		TopResults:    []ScoredLabel{},
		Mode:          mode,
	}
}

// Outcome 是 Pipeline 边界的返回值：Result 永远非空、可渲染；
// Err 为 nil 表示成功，否则为带类型的失败。
type Outcome struct {
	Result *PredictionResult
	Err    *DomainError
}

// OK 是否成功
func (o *Outcome) OK() bool {
	return o != nil && o.Err == nil
}

// Code 返回错误代码，成功时为空
func (o *Outcome) Code() string {
	if o == nil || o.Err == nil {
		return ""
	}
	return o.Err.Code
}

// Succeeded 构造成功的 Outcome
func Succeeded(result *PredictionResult) *Outcome {
	return &Outcome{Result: result}
}

// Failed 构造失败的 Outcome；result 为 nil 时生成占位结果
func Failed(err *DomainError, result *PredictionResult, mode Mode) *Outcome {
	if result == nil {
		result = FailedResult(PlaceholderFor(err), mode)
	}
	return &Outcome{Result: result, Err: err}
}

// PlaceholderFor 根据错误代码选择占位作物名称
func PlaceholderFor(err *DomainError) string {
	if err == nil {
		return PlaceholderError
	}
	switch err.Code {
	case ErrorCodeInvalidSoil:
		return PlaceholderInvalidSoil
	case ErrorCodeInvalidRegion:
		return PlaceholderInvalidRegion
	case ErrorCodeUnknownCrop:
		return PlaceholderUnknownCrop
	case ErrorCodeNotInitialized:
		return PlaceholderNotInitialized
	default:
		return PlaceholderError
	}
}
