package model

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/rushteam/agrikit/core"
)

// Labels 是类别名称表，下标与模型输出向量一一对应。加载后只读。
type Labels struct {
	names []string
	index map[string]int
}

// ParseLabels 解析标签文件：纯文本，每行一个类别名称，行序即输出下标。
// 行首尾空白会被去除，空行跳过；名称重复或文件为空视为制品错误。
func ParseLabels(data []byte) (*Labels, error) {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, core.Wrap(core.ModuleModel, core.ErrorCodeInvalidArtifact, "读取标签文件失败", err)
	}
	return NewLabels(names)
}

// NewLabels 由名称列表构造标签表
func NewLabels(names []string) (*Labels, error) {
	if len(names) == 0 {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidArtifact, "labels: no class names")
	}
	l := &Labels{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if _, dup := l.index[name]; dup {
			return nil, core.Errorf(core.ModuleModel, core.ErrorCodeInvalidArtifact, "labels: duplicate class %q", name)
		}
		l.names[i] = name
		l.index[name] = i
	}
	return l, nil
}

// Len 类别数
func (l *Labels) Len() int {
	return len(l.names)
}

// At 返回下标 i 的类别名称
func (l *Labels) At(i int) string {
	return l.names[i]
}

// Index 查找类别下标，不存在时返回 -1
func (l *Labels) Index(name string) int {
	if i, ok := l.index[name]; ok {
		return i
	}
	return -1
}

// Names 返回类别名称副本
func (l *Labels) Names() []string {
	return append([]string(nil), l.names...)
}
