package config

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/agrikit/core"
	"github.com/rushteam/agrikit/model"
	"github.com/rushteam/agrikit/service"
)

// EngineTFServing 远程 TF Serving 引擎
const EngineTFServing = "tf_serving"

// EngineBuilder 根据引擎配置构建 ClassifierLoader
type EngineBuilder func(cfg EngineConfig) (core.ClassifierLoader, error)

// Engine 注册表中的一种推理引擎
type Engine struct {
	Build EngineBuilder
	// Remote 为 true 时不读取模型制品
	Remote bool
}

var (
	engines   = make(map[string]Engine)
	enginesMu sync.RWMutex
)

func init() {
	RegisterEngine(string(model.EngineONNX), Engine{Build: buildLocal(model.EngineONNX)})
	RegisterEngine(string(model.EngineDense), Engine{Build: buildLocal(model.EngineDense)})
	RegisterEngine(EngineTFServing, Engine{Build: buildTFServing, Remote: true})
}

// RegisterEngine 注册一种推理引擎，供配置驱动使用；同名注册会覆盖。
func RegisterEngine(typeName string, engine Engine) {
	if typeName == "" || engine.Build == nil {
		return
	}
	enginesMu.Lock()
	defer enginesMu.Unlock()
	engines[typeName] = engine
}

// SupportedEngines 返回已注册的引擎类型（排序），用于错误提示与校验。
func SupportedEngines() []string {
	enginesMu.RLock()
	defer enginesMu.RUnlock()
	types := make([]string, 0, len(engines))
	for t := range engines {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func lookupEngine(typeName string) (Engine, bool) {
	enginesMu.RLock()
	defer enginesMu.RUnlock()
	e, ok := engines[typeName]
	return e, ok
}

// ClassifierLoader 返回配置引擎对应的 loader，以及该引擎是否需要模型制品
func (c *Config) ClassifierLoader() (core.ClassifierLoader, bool, error) {
	engine, ok := lookupEngine(c.Engine.Type)
	if !ok {
		return nil, false, fmt.Errorf("unsupported engine.type %q (supported: %v)", c.Engine.Type, SupportedEngines())
	}
	loader, err := engine.Build(c.Engine)
	if err != nil {
		return nil, false, fmt.Errorf("build engine %s: %w", c.Engine.Type, err)
	}
	return loader, !engine.Remote, nil
}

func buildLocal(engine model.EngineType) EngineBuilder {
	return func(cfg EngineConfig) (core.ClassifierLoader, error) {
		opts := cfg.Options()
		return func(_ context.Context, blob []byte) (core.Classifier, error) {
			return model.NewClassifier(engine, blob, opts)
		}, nil
	}
}

func buildTFServing(cfg EngineConfig) (core.ClassifierLoader, error) {
	sc := cfg.TFServing
	if err := service.ValidateConfig(&sc); err != nil {
		return nil, err
	}
	return func(_ context.Context, _ []byte) (core.Classifier, error) {
		return service.NewClassifier(&sc)
	}, nil
}
