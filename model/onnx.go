package model

import (
	"context"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/rushteam/agrikit/core"
)

var envMu sync.Mutex

// ONNXOptions 配置 ONNX Runtime 会话
type ONNXOptions struct {
	// LibraryPath onnxruntime 共享库路径（为空则使用系统默认查找）
	LibraryPath string
	// InputName / OutputName 张量名称（为空则从模型元信息读取第一个输入/输出）
	InputName  string
	OutputName string
	// Threads intra-op 线程数（<= 0 使用运行时默认值）
	Threads int
}

// ONNXClassifier 基于 ONNX Runtime 的分类器，模型以二进制 blob 形式加载。
//
// 工程特征：
//   - 实时性：优秀（原生运行时，支持多线程算子）
//   - 依赖：需要 onnxruntime 共享库（cgo）
//   - 输入：[1, dim] float32；输出：[1, numClasses] float32
//
// 运行时内部可并行计算，但 Infer 通过互斥锁串行化，一次调用对调用方是原子的。
type ONNXClassifier struct {
	mu         sync.Mutex
	session    *ort.DynamicAdvancedSession
	inputName  string
	outputName string
}

// NewONNXClassifier 用模型字节创建会话
func NewONNXClassifier(modelData []byte, opts ONNXOptions) (*ONNXClassifier, error) {
	if len(modelData) == 0 {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidArtifact, "onnx model is empty")
	}
	if err := initEnvironment(opts.LibraryPath); err != nil {
		return nil, core.Wrap(core.ModuleModel, core.ErrorCodeInitializationFailed, "failed to initialize ONNX runtime", err)
	}

	inputName, outputName := opts.InputName, opts.OutputName
	if inputName == "" || outputName == "" {
		inputs, outputs, err := ort.GetInputOutputInfoWithONNXData(modelData)
		if err != nil {
			return nil, core.Wrap(core.ModuleModel, core.ErrorCodeInvalidArtifact, "failed to read ONNX model info", err)
		}
		if len(inputs) == 0 || len(outputs) == 0 {
			return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidArtifact, "onnx model declares no inputs or outputs")
		}
		if inputName == "" {
			inputName = inputs[0].Name
		}
		if outputName == "" {
			outputName = outputs[0].Name
		}
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, core.Wrap(core.ModuleModel, core.ErrorCodeInitializationFailed, "failed to create session options", err)
	}
	defer options.Destroy()
	if opts.Threads > 0 {
		if err := options.SetIntraOpNumThreads(opts.Threads); err != nil {
			return nil, core.Wrap(core.ModuleModel, core.ErrorCodeInitializationFailed, "failed to set intra-op threads", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSessionWithONNXData(modelData,
		[]string{inputName}, []string{outputName}, options)
	if err != nil {
		return nil, core.Wrap(core.ModuleModel, core.ErrorCodeInvalidArtifact, "failed to load ONNX model", err)
	}

	return &ONNXClassifier{
		session:    session,
		inputName:  inputName,
		outputName: outputName,
	}, nil
}

func initEnvironment(libraryPath string) error {
	envMu.Lock()
	defer envMu.Unlock()
	if ort.IsInitialized() {
		return nil
	}
	if libraryPath != "" {
		ort.SetSharedLibraryPath(libraryPath)
	}
	return ort.InitializeEnvironment()
}

func (c *ONNXClassifier) Name() string {
	return "onnx"
}

// Infer 运行一次推理
func (c *ONNXClassifier) Infer(_ context.Context, input []float64) ([]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInferenceFail, "onnx session is closed")
	}

	data := make([]float32, len(input))
	for i, v := range input {
		data[i] = float32(v)
	}
	inputTensor, err := ort.NewTensor(ort.NewShape(1, int64(len(data))), data)
	if err != nil {
		return nil, core.Wrap(core.ModuleModel, core.ErrorCodeInferenceFail, "failed to create input tensor", err)
	}
	defer inputTensor.Destroy()

	// 输出为 nil 时由运行时按实际形状分配
	outputs := []ort.Value{nil}
	if err := c.session.Run([]ort.Value{inputTensor}, outputs); err != nil {
		return nil, core.Wrap(core.ModuleModel, core.ErrorCodeInferenceFail, "inference failed", err)
	}
	defer func() {
		if outputs[0] != nil {
			outputs[0].Destroy()
		}
	}()

	tensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, core.Errorf(core.ModuleModel, core.ErrorCodeInferenceFail, "unexpected output tensor type %T", outputs[0])
	}
	raw := tensor.GetData()
	scores := make([]float64, len(raw))
	for i, v := range raw {
		scores[i] = float64(v)
	}
	return scores, nil
}

// Close 销毁会话（环境为进程级，不在此销毁）
func (c *ONNXClassifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	err := c.session.Destroy()
	c.session = nil
	if err != nil {
		return fmt.Errorf("destroy onnx session: %w", err)
	}
	return nil
}

var _ core.Classifier = (*ONNXClassifier)(nil)
