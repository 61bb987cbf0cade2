package core

// Mode 区分推理请求的两种用法。
type Mode int

const (
	// ModeRecommend 开放推荐：返回概率最高的作物
	ModeRecommend Mode = iota
	// ModeValidate 定向验证：报告指定作物的置信度与可行性
	ModeValidate
)

func (m Mode) String() string {
	switch m {
	case ModeRecommend:
		return "recommend"
	case ModeValidate:
		return "validate"
	default:
		return "unknown"
	}
}

// Request 是一次预测请求（UI 三个必选项 + 可选验证作物）。
//
// 模式以标签形式显式携带（Recommend / Validate），
// 不依赖空字符串或 nil 区分，只能通过 Recommend、Validate、FromSelections 构造。
type Request struct {
	Region string
	Soil   string
	Season string

	mode   Mode
	target string
}

// Recommend 构造推荐模式请求
func Recommend(region, soil, season string) Request {
	return Request{Region: region, Soil: soil, Season: season, mode: ModeRecommend}
}

// Validate 构造验证模式请求，crop 为待验证的作物名称
func Validate(region, soil, season, crop string) Request {
	return Request{Region: region, Soil: soil, Season: season, mode: ModeValidate, target: crop}
}

// FromSelections 把 UI 的可选作物选择映射到带标签的请求：crop 为空表示推荐模式。
func FromSelections(region, soil, season, crop string) Request {
	if crop == "" {
		return Recommend(region, soil, season)
	}
	return Validate(region, soil, season, crop)
}

// Mode 返回请求模式
func (r Request) Mode() Mode {
	return r.mode
}

// Target 返回待验证作物；推荐模式下 ok 为 false
func (r Request) Target() (crop string, ok bool) {
	if r.mode != ModeValidate {
		return "", false
	}
	return r.target, true
}

// MarshalText 以字符串形式序列化（JSON 中为 "recommend" / "validate"）
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
