package core

import "context"

// Classifier 是推理引擎的领域接口：定长向量进，逐类分数出。
//
// 设计原则：
//   - 定义在领域层（core），由 model / service 包实现（ONNX Runtime、本地前馈网络、TF Serving）
//   - 实现需无状态：同一输入得到同一输出
//   - 输出直接作为各类别置信度使用，不要求和为 1
//
// 并发：实现内部可以使用线程池，但调用方（recommender）保证同一时刻只有一次 Infer。
type Classifier interface {
	// Name 返回后端名称（用于日志）
	Name() string

	// Infer 输入标准化后的特征向量，返回长度为类别数的分数向量
	Infer(ctx context.Context, input []float64) ([]float64, error)

	// Close 释放模型资源
	Close() error
}

// ClassifierLoader 把模型制品加载为 Classifier。
// 远程后端（如 TF Serving）不需要制品，blob 为 nil。
type ClassifierLoader func(ctx context.Context, blob []byte) (Classifier, error)
