package artifact

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Names 一组制品名称
type Names struct {
	Model  string
	Labels string
	Scaler string
	// Tables 可选，为空时使用内置参考表
	Tables string
}

// Bundle 一次初始化所需的全部原始制品
type Bundle struct {
	Model  []byte
	Labels []byte
	Scaler []byte
	Tables []byte
}

// LoadBundle 并发读取所有制品，任一失败即取消其余读取并返回第一个错误。
func LoadBundle(ctx context.Context, src Source, names Names) (*Bundle, error) {
	b := &Bundle{}
	g, gctx := errgroup.WithContext(ctx)

	read := func(name string, dst *[]byte) {
		if name == "" {
			return
		}
		g.Go(func() error {
			data, err := src.Read(gctx, name)
			if err != nil {
				return err
			}
			*dst = data
			return nil
		})
	}
	read(names.Model, &b.Model)
	read(names.Labels, &b.Labels)
	read(names.Scaler, &b.Scaler)
	read(names.Tables, &b.Tables)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b, nil
}
