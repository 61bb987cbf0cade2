// Package recommender 组装作物推荐/验证链路：
// 特征推导 → 标准化 → 推理 → 结果解释。
//
// 初始化只执行一次（Init），失败后不重试；未成功初始化时 Predict
// 返回 NOT_INITIALIZED。Predict 可并发调用，推理本身串行执行。
//
//	r, err := recommender.Open(ctx,
//		recommender.WithSource(artifact.NewFileSource("./assets")),
//	)
//	out := r.Predict(ctx, core.Recommend("Coastal", "Alluvial", "Kharif (Monsoon)"))
//	fmt.Println(out.Result.Crop, out.Result.Confidence)
package recommender

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rushteam/agrikit/artifact"
	"github.com/rushteam/agrikit/config"
	"github.com/rushteam/agrikit/core"
	"github.com/rushteam/agrikit/feature"
	"github.com/rushteam/agrikit/interpret"
	"github.com/rushteam/agrikit/model"
	"github.com/rushteam/agrikit/pkg/logger"
)

// Recommender 推荐器会话
type Recommender struct {
	source       artifact.Source
	names        artifact.Names
	loader       core.ClassifierLoader
	prebuilt     core.Classifier
	tables       *feature.Tables
	regionLoader RegionLoader
	interpreter  *interpret.Interpreter
	log          *logger.Logger
	closers      []interface{ Close() error }

	once    sync.Once
	ready   atomic.Bool
	initErr atomic.Pointer[core.DomainError]

	// 以下字段在 ready 之前写入一次，之后只读
	deriver *feature.Deriver
	params  *feature.NormalizationParams
	labels  *model.Labels

	// mu 串行化推理并保护 classifier/closed
	mu         sync.Mutex
	classifier core.Classifier
	closed     bool
}

// New 创建未初始化的推荐器
func New(opts ...Option) *Recommender {
	r := &Recommender{
		names: artifact.Names{
			Model:  config.DefaultModelName,
			Labels: config.DefaultLabelsName,
			Scaler: config.DefaultScalerName,
		},
		loader:      onnxLoader(model.ONNXOptions{Threads: 2}),
		interpreter: interpret.New(),
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With("component", "recommender")
	return r
}

// Open 创建并初始化推荐器。初始化失败时仍返回推荐器（Predict 返回 NOT_INITIALIZED）。
func Open(ctx context.Context, opts ...Option) (*Recommender, error) {
	r := New(opts...)
	return r, r.Init(ctx)
}

// Init 读取制品并构建链路，只执行一次；重复调用返回第一次的结果。
func (r *Recommender) Init(ctx context.Context) error {
	r.once.Do(func() {
		if err := r.initialize(ctx); err != nil {
			r.initErr.Store(err)
			r.log.Error("recommender initialization failed", "code", err.Code, "error", err.Error())
		}
	})
	return r.InitErr()
}

// InitErr 返回初始化错误；未初始化或成功时为 nil
func (r *Recommender) InitErr() error {
	if err := r.initErr.Load(); err != nil {
		return err
	}
	return nil
}

// Ready 是否已成功初始化且未关闭
func (r *Recommender) Ready() bool {
	return r.ready.Load()
}

func (r *Recommender) initialize(ctx context.Context) *core.DomainError {
	if r.source == nil {
		return initFailed("no artifact source configured", nil)
	}

	names := r.names
	if r.prebuilt != nil {
		names.Model = ""
	}
	bundle, err := artifact.LoadBundle(ctx, r.source, names)
	if err != nil {
		return initFailed("load artifacts from "+r.source.Name(), err)
	}

	labels, err := model.ParseLabels(bundle.Labels)
	if err != nil {
		return initFailed("parse labels "+names.Labels, err)
	}
	params, err := feature.ParseScalerParams(bundle.Scaler)
	if err != nil {
		return initFailed("parse scaler params "+names.Scaler, err)
	}

	tables := r.tables
	if bundle.Tables != nil {
		if tables, err = feature.ParseTablesYAML(bundle.Tables); err != nil {
			return initFailed("parse tables "+names.Tables, err)
		}
	}
	if tables == nil {
		tables = feature.DefaultTables()
	}
	if r.regionLoader != nil {
		profiles, err := r.regionLoader(ctx, tables.RegionNames())
		if err != nil {
			return initFailed("load region climate", err)
		}
		if tables, err = tables.WithRegions(profiles); err != nil {
			return initFailed("apply region climate", err)
		}
	}

	classifier := r.prebuilt
	if classifier == nil {
		if classifier, err = r.loader(ctx, bundle.Model); err != nil {
			return initFailed("load model "+names.Model, err)
		}
	}

	// 用零向量探测一次输出维度
	probe, err := classifier.Infer(ctx, make([]float64, len(params.FeatureNames)))
	if err == nil && len(probe) != labels.Len() {
		err = core.Errorf(core.ModuleRecommender, core.ErrorCodeShapeMismatch,
			"classifier %s outputs %d scores for %d labels", classifier.Name(), len(probe), labels.Len())
	}
	if err != nil {
		_ = classifier.Close()
		return initFailed("probe classifier", err)
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		_ = classifier.Close()
		return initFailed("recommender closed before initialization", nil)
	}
	r.deriver = feature.NewDeriver(tables)
	r.params = params
	r.labels = labels
	r.classifier = classifier
	// ready 与 closed 同在 mu 下切换
	r.ready.Store(true)
	r.mu.Unlock()

	r.log.Info("recommender initialized",
		"source", r.source.Name(),
		"engine", classifier.Name(),
		"labels", labels.Len(),
		"features", params.FeatureNames,
		"soils", len(tables.SoilNames()),
		"regions", len(tables.RegionNames()),
	)
	return nil
}

// Predict 执行一次推荐或验证。
// 永不 panic、永远返回可渲染的结果；Err 非空时 Result 为占位结果
// （UNKNOWN_CROP 时 TopResults 仍为真实的前 K 名）。
func (r *Recommender) Predict(ctx context.Context, req core.Request) (out *core.Outcome) {
	defer func() {
		if p := recover(); p != nil {
			err := core.Errorf(core.ModuleRecommender, core.ErrorCodeInferenceFail, "inference panicked: %v", p)
			out = r.fail(req, err, nil)
		}
	}()

	if !r.ready.Load() {
		return r.fail(req, notInitialized(r.initErr.Load()), nil)
	}

	v, err := r.deriver.Derive(req.Region, req.Soil, req.Season)
	if err != nil {
		return r.fail(req, asDomain(err, core.ErrorCodeInvalidInput), nil)
	}
	input, err := r.params.Standardize(v)
	if err != nil {
		return r.fail(req, asDomain(err, core.ErrorCodeMissingFeature), nil)
	}

	probabilities, ierr := r.infer(ctx, input)
	if ierr != nil {
		return r.fail(req, ierr, nil)
	}

	result, err := r.interpreter.Interpret(probabilities, r.labels, req)
	if err != nil {
		return r.fail(req, asDomain(err, core.ErrorCodeInternalError), result)
	}
	return core.Succeeded(result)
}

func (r *Recommender) infer(ctx context.Context, input []float64) ([]float64, *core.DomainError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, notInitialized(nil)
	}
	out, err := r.classifier.Infer(ctx, input)
	if err != nil {
		if de := core.GetDomainError(err); de != nil && de.Code == core.ErrorCodeShapeMismatch {
			return nil, de
		}
		return nil, core.Wrap(core.ModuleRecommender, core.ErrorCodeInferenceFail,
			"classifier "+r.classifier.Name()+" failed", err)
	}
	return out, nil
}

func (r *Recommender) fail(req core.Request, err *core.DomainError, result *core.PredictionResult) *core.Outcome {
	r.log.Warn("predict failed",
		"code", err.Code,
		"mode", req.Mode().String(),
		"region", req.Region,
		"soil", req.Soil,
		"season", req.Season,
		"error", err.Error(),
	)
	return core.Failed(err, result, req.Mode())
}

// Close 释放分类器与底层连接；之后 Predict 返回 NOT_INITIALIZED
func (r *Recommender) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.ready.Store(false)

	var first error
	if r.classifier != nil {
		first = r.classifier.Close()
	}
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Choices 返回 UI 可选项：土壤、区域、季节按声明顺序，作物为标签表顺序
func (r *Recommender) Choices() Choices {
	c := Choices{ValidationCrops: append([]string(nil), feature.DefaultValidationCrops...)}
	if !r.ready.Load() {
		return c
	}
	t := r.deriver.Tables()
	c.Soils = t.SoilNames()
	c.Regions = t.RegionNames()
	c.Seasons = t.SeasonNames()
	c.Crops = r.labels.Names()
	return c
}

// Choices 选择项列表
type Choices struct {
	Soils           []string `json:"soils"`
	Regions         []string `json:"regions"`
	Seasons         []string `json:"seasons"`
	Crops           []string `json:"crops"`
	ValidationCrops []string `json:"validation_crops"`
}

func onnxLoader(opts model.ONNXOptions) core.ClassifierLoader {
	return func(_ context.Context, blob []byte) (core.Classifier, error) {
		return model.NewONNXClassifier(blob, opts)
	}
}

func initFailed(msg string, cause error) *core.DomainError {
	return core.Wrap(core.ModuleRecommender, core.ErrorCodeInitializationFailed, msg, cause)
}

func notInitialized(cause *core.DomainError) *core.DomainError {
	err := core.NewDomainError(core.ModuleRecommender, core.ErrorCodeNotInitialized, "recommender is not initialized")
	if cause != nil {
		err.Cause = cause
	}
	return err
}

// asDomain 把任意错误转换为 DomainError，非领域错误使用 code 包装
func asDomain(err error, code string) *core.DomainError {
	if de := core.GetDomainError(err); de != nil {
		return de
	}
	return core.Wrap(core.ModuleRecommender, code, "unexpected error", err)
}
