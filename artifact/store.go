package artifact

import (
	"context"

	"github.com/rushteam/agrikit/core"
)

// StoreSource 从 core.Store 读取制品，key = Prefix + name
type StoreSource struct {
	store  core.Store
	Prefix string
}

// NewStoreSource 创建基于 Store 的来源
//
// 用法：
//
//	rs, _ := store.NewRedisStore(store.RedisOptions{Addr: "localhost:6379"})
//	src := artifact.NewStoreSource(rs, "agrikit:")
func NewStoreSource(s core.Store, prefix string) *StoreSource {
	return &StoreSource{store: s, Prefix: prefix}
}

func (s *StoreSource) Name() string { return "store:" + s.store.Name() }

func (s *StoreSource) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := s.store.Get(ctx, s.Prefix+name)
	if core.IsStoreNotFound(err) {
		return nil, notFound(name, err)
	}
	if err != nil {
		return nil, unavailable(name, err)
	}
	return data, nil
}

// Publish 把制品写入 Store（发布方使用）
func (s *StoreSource) Publish(ctx context.Context, name string, data []byte) error {
	return s.store.Set(ctx, s.Prefix+name, data)
}

var _ Source = (*StoreSource)(nil)
