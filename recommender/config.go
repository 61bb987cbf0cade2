package recommender

import (
	"context"
	"fmt"

	"github.com/rushteam/agrikit/config"
	"github.com/rushteam/agrikit/feast"
	"github.com/rushteam/agrikit/feature"
	"github.com/rushteam/agrikit/interpret"
	"github.com/rushteam/agrikit/pkg/dsl"
	"github.com/rushteam/agrikit/pkg/logger"
)

// NewFromConfig 按配置组装推荐器（未初始化，需调用 Init）。
// opts 在配置之后应用，可覆盖配置生成的选项（例如注入 WithSource）。
func NewFromConfig(cfg *config.Config, opts ...Option) (*Recommender, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(cfg.Logger.Mode)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	loader, needsModel, err := cfg.ClassifierLoader()
	if err != nil {
		return nil, err
	}

	interpOpts := []interpret.Option{interpret.WithTopK(cfg.Interpret.TopK)}
	if t := cfg.Interpret.Threshold; t != nil {
		interpOpts = append(interpOpts, interpret.WithThreshold(*t))
	}
	if cfg.Interpret.Rule != "" {
		rule, err := dsl.NewRule(cfg.Interpret.Rule)
		if err != nil {
			return nil, fmt.Errorf("interpret.rule: %w", err)
		}
		interpOpts = append(interpOpts, interpret.WithRule(rule))
	}

	base := []Option{
		WithLogger(log),
		WithArtifactNames(cfg.ArtifactNames(needsModel)),
		WithClassifierLoader(loader),
		WithInterpreter(interpOpts...),
	}
	if cfg.Feast.Enabled {
		base = append(base, WithRegionLoader(feastRegionLoader(cfg.Feast)))
	}

	r := New(append(base, opts...)...)
	if r.source == nil {
		src, closer, err := cfg.BuildSource(nil)
		if err != nil {
			return nil, err
		}
		r.source = src
		withCloser(closer)(r)
	}
	return r, nil
}

// feastRegionLoader 初始化时连接 Feast 拉取区域气候，用完即关闭
func feastRegionLoader(fc config.FeastConfig) RegionLoader {
	return func(ctx context.Context, regions []string) ([]feature.RegionProfile, error) {
		var opts []feast.ClientOption
		if fc.Token != "" {
			opts = append(opts, feast.WithStaticToken(fc.Token))
		}
		client, err := feast.NewGrpcClient(fc.Host, fc.Port, fc.Project, opts...)
		if err != nil {
			return nil, err
		}
		defer client.Close()

		return feast.LoadRegionProfiles(ctx, client, regions, feast.RegionQuery{
			FeatureView: fc.FeatureView,
			EntityKey:   fc.EntityKey,
			Project:     fc.Project,
		})
	}
}
