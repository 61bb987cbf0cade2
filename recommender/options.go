package recommender

import (
	"context"

	"github.com/rushteam/agrikit/artifact"
	"github.com/rushteam/agrikit/core"
	"github.com/rushteam/agrikit/feature"
	"github.com/rushteam/agrikit/interpret"
	"github.com/rushteam/agrikit/pkg/logger"
)

// RegionLoader 在初始化时为给定区域提供气候覆盖（例如从 Feast 拉取）
type RegionLoader func(ctx context.Context, regions []string) ([]feature.RegionProfile, error)

// Option 推荐器配置选项
type Option func(*Recommender)

// WithSource 设置制品来源
func WithSource(src artifact.Source) Option {
	return func(r *Recommender) {
		r.source = src
	}
}

// WithArtifactNames 设置制品名称；Tables 为空时使用内置参考表
func WithArtifactNames(names artifact.Names) Option {
	return func(r *Recommender) {
		r.names = names
	}
}

// WithClassifierLoader 设置模型加载方式（默认 ONNX Runtime，2 个线程）
func WithClassifierLoader(loader core.ClassifierLoader) Option {
	return func(r *Recommender) {
		if loader != nil {
			r.loader = loader
		}
	}
}

// WithClassifier 直接使用已构建的分类器，不再读取模型制品
func WithClassifier(c core.Classifier) Option {
	return func(r *Recommender) {
		r.prebuilt = c
	}
}

// WithTables 设置参考表（制品中的 Tables 优先）
func WithTables(t *feature.Tables) Option {
	return func(r *Recommender) {
		r.tables = t
	}
}

// WithRegionLoader 初始化时用外部数据覆盖区域气候
func WithRegionLoader(loader RegionLoader) Option {
	return func(r *Recommender) {
		r.regionLoader = loader
	}
}

// WithInterpreter 设置结果解释选项（Top-K、阈值、规则）
func WithInterpreter(opts ...interpret.Option) Option {
	return func(r *Recommender) {
		r.interpreter = interpret.New(opts...)
	}
}

// WithLogger 设置日志
func WithLogger(l *logger.Logger) Option {
	return func(r *Recommender) {
		if l != nil {
			r.log = l
		}
	}
}

// withCloser 关闭推荐器时一并释放
func withCloser(c interface{ Close() error }) Option {
	return func(r *Recommender) {
		if c != nil {
			r.closers = append(r.closers, c)
		}
	}
}
