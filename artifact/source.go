// Package artifact 读取只读的打包制品（模型、标签、标准化参数、参考表）。
//
// Source 只负责按名称取回原始字节，解析由 feature / model 包完成。
// 实现：
//   - FileSource：本地目录
//   - HTTPSource：HTTP 静态文件服务
//   - StoreSource：core.Store（Memory / Redis）
//   - S3Source：S3 兼容对象存储（AWS S3、阿里云 OSS、MinIO 等）
package artifact

import (
	"context"

	"github.com/rushteam/agrikit/core"
)

// Source 制品读取接口
type Source interface {
	// Name 返回来源名称（用于日志）
	Name() string

	// Read 读取名为 name 的制品；不存在时返回 NOT_FOUND
	Read(ctx context.Context, name string) ([]byte, error)
}

func notFound(name string, cause error) error {
	return core.Wrap(core.ModuleArtifact, core.ErrorCodeNotFound, "artifact not found: "+name, cause)
}

func unavailable(name string, cause error) error {
	return core.Wrap(core.ModuleArtifact, core.ErrorCodeUnavailable, "artifact read failed: "+name, cause)
}
