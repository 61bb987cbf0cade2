package feature

import (
	"fmt"
	"sort"
)

// Vector 是按语义名称索引的特征集合（尚未按推理顺序排列）
type Vector map[string]float64

// Clone 返回副本
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Names 返回排序后的特征名称
func (v Vector) Names() []string {
	names := make([]string, 0, len(v))
	for k := range v {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Validate 校验向量恰好包含 10 个规范特征，无缺失、无多余
func (v Vector) Validate() error {
	if len(v) != Dim {
		return fmt.Errorf("feature vector has %d entries, want %d", len(v), Dim)
	}
	for _, name := range FeatureNames() {
		if _, ok := v[name]; !ok {
			return fmt.Errorf("feature vector is missing %q", name)
		}
	}
	return nil
}
