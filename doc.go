// Package agrikit 是一个作物推荐 / 可行性验证工具包。
//
// 设计要点：
// - 链路固定：特征推导（区域/土壤/季节 → 10 维特征）→ 标准化 → 推理 → 结果解释
// - 推理引擎可插拔：ONNX Runtime、本地前馈网络、TF Serving 都实现 core.Classifier
// - 边界永不 panic：Predict 总是返回可渲染的结果，失败带类型化错误代码
package agrikit

import (
	"github.com/rushteam/agrikit/core"
	"github.com/rushteam/agrikit/recommender"
)

// 轻量 facade：便于用户直接 import "agrikit" 使用核心抽象。
type (
	Recommender      = recommender.Recommender
	Option           = recommender.Option
	Request          = core.Request
	Mode             = core.Mode
	PredictionResult = core.PredictionResult
	ScoredLabel      = core.ScoredLabel
	Outcome          = core.Outcome
	Classifier       = core.Classifier
	DomainError      = core.DomainError
)

const (
	ModeRecommend = core.ModeRecommend
	ModeValidate  = core.ModeValidate
)

var (
	New  = recommender.New
	Open = recommender.Open

	Recommend      = core.Recommend
	Validate       = core.Validate
	FromSelections = core.FromSelections
)
