package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/agrikit/interpret"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("crop", cel.StringType),
		cel.Variable("confidence", cel.DoubleType),
		cel.Variable("rank", cel.IntType),
		cel.Variable("top_confidence", cel.DoubleType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Rule 是用 CEL (Common Expression Language) 编写的可行性规则，实现 interpret.ViabilityRule。
//
// 可用变量：
//   - crop：被验证的作物名称（string）
//   - confidence：该作物的分数（double）
//   - rank：该作物在全局排序中的名次，从 1 开始（int）
//   - top_confidence：全局最高分（double）
//
// 示例：
//   - `confidence > 0.45` → 与默认阈值规则等价
//   - `confidence > 0.45 || rank == 1` → 排名第一也视为可行
//   - `crop == "Rice" ? confidence > 0.6 : confidence > 0.45` → 按作物区分阈值
//
// 表达式在 NewRule 中编译一次，Viable 可并发调用。
type Rule struct {
	expr string
	prg  cel.Program
}

// NewRule 编译表达式；表达式必须返回布尔值
func NewRule(expr string) (*Rule, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty rule expression")
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env error: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("rule must return bool, got %v", ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Rule{expr: expr, prg: prg}, nil
}

// Viable 实现 interpret.ViabilityRule
func (r *Rule) Viable(in interpret.ViabilityInput) (bool, error) {
	out, _, err := r.prg.Eval(map[string]interface{}{
		"crop":           in.Crop,
		"confidence":     in.Confidence,
		"rank":           int64(in.Rank),
		"top_confidence": in.TopConfidence,
	})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// String 返回原始表达式
func (r *Rule) String() string {
	return r.expr
}

var _ interpret.ViabilityRule = (*Rule)(nil)
