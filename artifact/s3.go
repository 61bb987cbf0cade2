package artifact

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/rushteam/agrikit/core"
)

// S3Client S3 兼容协议客户端接口（不直接依赖具体 SDK，支持依赖注入）
// S3 兼容协议支持 AWS S3、阿里云 OSS、腾讯云 COS、MinIO 等
type S3Client interface {
	// GetObject 获取对象内容，对象不存在时应返回 core.ErrStoreNotFound
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// S3Source 从 S3 兼容存储读取制品，对象键 = Prefix/name
type S3Source struct {
	client S3Client
	Bucket string
	Prefix string
}

// NewS3Source 创建 S3 兼容来源
//
// 用法：
//
//	s3Client := &MyS3Client{...}
//	src := artifact.NewS3Source(s3Client, "my-bucket", "agrikit/v3")
func NewS3Source(client S3Client, bucket, prefix string) *S3Source {
	return &S3Source{client: client, Bucket: bucket, Prefix: prefix}
}

func (s *S3Source) Name() string { return "s3" }

func (s *S3Source) Read(ctx context.Context, name string) ([]byte, error) {
	if s.client == nil {
		return nil, core.NewDomainError(core.ModuleArtifact, core.ErrorCodeUnavailable, "S3 客户端未设置")
	}

	key := name
	if s.Prefix != "" {
		key = path.Join(s.Prefix, name)
	}
	reader, err := s.client.GetObject(ctx, s.Bucket, key)
	if core.IsStoreNotFound(err) {
		return nil, notFound(name, err)
	}
	if err != nil {
		return nil, unavailable(name, fmt.Errorf("从 S3 兼容存储获取对象失败: %w", err))
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, unavailable(name, fmt.Errorf("读取 S3 兼容存储对象失败: %w", err))
	}
	return data, nil
}

var _ Source = (*S3Source)(nil)
