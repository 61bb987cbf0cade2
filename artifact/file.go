package artifact

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rushteam/agrikit/core"
)

// FileSource 从本地目录读取制品
type FileSource struct {
	Dir string
}

// NewFileSource 创建本地目录来源
//
// 用法：
//
//	src := artifact.NewFileSource("./assets")
//	data, err := src.Read(ctx, "labels_v3.txt")
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// 制品名只能是目录内的相对路径
	clean := filepath.Clean(name)
	if name == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return nil, core.Errorf(core.ModuleArtifact, core.ErrorCodeInvalidInput, "invalid artifact name: %q", name)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, clean))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(name, err)
	}
	if err != nil {
		return nil, unavailable(name, err)
	}
	return data, nil
}

var _ Source = (*FileSource)(nil)
