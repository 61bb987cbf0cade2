package model

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/rushteam/agrikit/core"
)

// Activation 激活函数名称
type Activation string

const (
	ActivationLinear  Activation = "linear"
	ActivationReLU    Activation = "relu"
	ActivationSigmoid Activation = "sigmoid"
	ActivationTanh    Activation = "tanh"
	ActivationSoftmax Activation = "softmax"
)

// DenseLayer 是一层全连接
type DenseLayer struct {
	// Weights weights[neuron][input] = weight
	Weights [][]float64 `json:"weights"`
	// Biases biases[neuron] = bias
	Biases []float64 `json:"biases"`
	// Activation 激活函数（默认 linear）
	Activation Activation `json:"activation"`
}

// DenseClassifier 是本地前馈网络分类器（Dense 多层感知机）。
//
// 工程特征：
//   - 实时性：好（纯 Go 本地推理，无 cgo）
//   - 部署：模型以 JSON 权重导出，适合测试与无原生运行时的环境
//   - 无状态：Infer 只读权重，可重复调用
//
// 模型制品格式：
//
//	{"input_dim": 10, "layers": [{"weights": [[...]], "biases": [...], "activation": "relu"}, ...]}
type DenseClassifier struct {
	InputDim int          `json:"input_dim"`
	Layers   []DenseLayer `json:"layers"`
}

// ParseDenseModel 解析 JSON 权重并校验各层形状
func ParseDenseModel(data []byte) (*DenseClassifier, error) {
	var m DenseClassifier
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, core.Wrap(core.ModuleModel, core.ErrorCodeInvalidArtifact, "解析 dense 模型失败", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// NewDenseClassifier 使用内存中的权重构造分类器
func NewDenseClassifier(inputDim int, layers []DenseLayer) (*DenseClassifier, error) {
	m := &DenseClassifier{InputDim: inputDim, Layers: layers}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *DenseClassifier) validate() error {
	if m.InputDim <= 0 {
		return core.Errorf(core.ModuleModel, core.ErrorCodeInvalidArtifact, "dense model: input_dim must be positive, got %d", m.InputDim)
	}
	if len(m.Layers) == 0 {
		return core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidArtifact, "dense model: no layers")
	}
	prev := m.InputDim
	for i, layer := range m.Layers {
		if len(layer.Weights) == 0 {
			return core.Errorf(core.ModuleModel, core.ErrorCodeInvalidArtifact, "dense model: layer %d has no neurons", i)
		}
		if len(layer.Biases) != len(layer.Weights) {
			return core.Errorf(core.ModuleModel, core.ErrorCodeInvalidArtifact,
				"dense model: layer %d has %d neurons but %d biases", i, len(layer.Weights), len(layer.Biases))
		}
		for j, row := range layer.Weights {
			if len(row) != prev {
				return core.Errorf(core.ModuleModel, core.ErrorCodeInvalidArtifact,
					"dense model: layer %d neuron %d has %d inputs, want %d", i, j, len(row), prev)
			}
		}
		switch layer.Activation {
		case "", ActivationLinear, ActivationReLU, ActivationSigmoid, ActivationTanh, ActivationSoftmax:
		default:
			return core.Errorf(core.ModuleModel, core.ErrorCodeInvalidArtifact, "dense model: layer %d unknown activation %q", i, layer.Activation)
		}
		prev = len(layer.Weights)
	}
	return nil
}

func (m *DenseClassifier) Name() string {
	return "dense"
}

// OutputDim 输出维度（最后一层神经元数）
func (m *DenseClassifier) OutputDim() int {
	return len(m.Layers[len(m.Layers)-1].Weights)
}

// Infer 前向传播
func (m *DenseClassifier) Infer(_ context.Context, input []float64) ([]float64, error) {
	if len(input) != m.InputDim {
		return nil, core.Errorf(core.ModuleModel, core.ErrorCodeShapeMismatch, "dense model: got %d inputs, want %d", len(input), m.InputDim)
	}
	current := append([]float64(nil), input...)
	for _, layer := range m.Layers {
		next := make([]float64, len(layer.Weights))
		for j, row := range layer.Weights {
			sum := layer.Biases[j]
			for k, w := range row {
				sum += w * current[k]
			}
			next[j] = sum
		}
		activate(layer.Activation, next)
		current = next
	}
	return current, nil
}

func (m *DenseClassifier) Close() error {
	return nil
}

// activate 原地应用激活函数
func activate(a Activation, xs []float64) {
	switch a {
	case ActivationReLU:
		for i, x := range xs {
			if x < 0 {
				xs[i] = 0
			}
		}
	case ActivationSigmoid:
		for i, x := range xs {
			xs[i] = 1.0 / (1.0 + math.Exp(-x))
		}
	case ActivationTanh:
		for i, x := range xs {
			xs[i] = math.Tanh(x)
		}
	case ActivationSoftmax:
		softmax(xs)
	}
}

// softmax 减去最大值后求指数，避免溢出
func softmax(xs []float64) {
	max := math.Inf(-1)
	for _, x := range xs {
		if x > max {
			max = x
		}
	}
	var sum float64
	for i, x := range xs {
		xs[i] = math.Exp(x - max)
		sum += xs[i]
	}
	for i := range xs {
		xs[i] /= sum
	}
}

func (m *DenseClassifier) String() string {
	return fmt.Sprintf("dense(%d→%d, %d layers)", m.InputDim, m.OutputDim(), len(m.Layers))
}

var _ core.Classifier = (*DenseClassifier)(nil)
