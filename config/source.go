package config

import (
	"io"
	"time"

	"github.com/rushteam/agrikit/artifact"
	"github.com/rushteam/agrikit/core"
	"github.com/rushteam/agrikit/store"
)

// BuildSource 根据 artifacts 配置创建制品来源。
// 返回的 io.Closer 负责释放底层 Store 连接（file/http 来源为 nil）。
// memory 来源若 mem 为 nil 则新建一个空的 MemoryStore。
func (c *Config) BuildSource(mem core.Store) (artifact.Source, io.Closer, error) {
	a := c.Artifacts
	switch a.Source {
	case SourceFile:
		return artifact.NewFileSource(a.Dir), nil, nil
	case SourceHTTP:
		return artifact.NewHTTPSource(a.BaseURL, time.Duration(a.TimeoutSeconds)*time.Second), nil, nil
	case SourceRedis:
		rs, err := store.NewRedisStore(store.RedisOptions{
			Addr:     a.Redis.Addr,
			Password: a.Redis.Password,
			DB:       a.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return artifact.NewStoreSource(rs, a.Redis.KeyPrefix), rs, nil
	case SourceMemory:
		if mem == nil {
			ms := store.NewMemoryStore()
			return artifact.NewStoreSource(ms, a.Redis.KeyPrefix), ms, nil
		}
		return artifact.NewStoreSource(mem, a.Redis.KeyPrefix), nil, nil
	default:
		return nil, nil, core.Errorf(core.ModuleArtifact, core.ErrorCodeNotSupported, "unsupported artifacts.source %q", a.Source)
	}
}

// ArtifactNames 返回需要读取的制品；远程引擎不读取模型
func (c *Config) ArtifactNames(needsModel bool) artifact.Names {
	names := artifact.Names{
		Labels: c.Artifacts.Labels,
		Scaler: c.Artifacts.Scaler,
		Tables: c.Artifacts.Tables,
	}
	if needsModel {
		names.Model = c.Artifacts.Model
	}
	return names
}
