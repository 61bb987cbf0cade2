package model

import "github.com/rushteam/agrikit/core"

// EngineType 本地推理引擎类型
type EngineType string

const (
	EngineONNX  EngineType = "onnx"  // ONNX Runtime
	EngineDense EngineType = "dense" // 纯 Go 前馈网络（JSON 权重）
)

// NewClassifier 根据引擎类型把模型 blob 加载为分类器（工厂方法）。
func NewClassifier(engine EngineType, blob []byte, opts ONNXOptions) (core.Classifier, error) {
	switch engine {
	case EngineONNX:
		return NewONNXClassifier(blob, opts)
	case EngineDense:
		return ParseDenseModel(blob)
	default:
		return nil, core.Errorf(core.ModuleModel, core.ErrorCodeNotSupported, "unsupported engine type: %s", engine)
	}
}
