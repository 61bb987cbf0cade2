package core

import "fmt"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型，Pipeline 边界据此生成可渲染的 Outcome
//   - 提供错误代码（Code）和消息（Message），Cause 保留底层错误
//   - 支持错误检查函数（IsXXX）以及 errors.Is / errors.As
//
// 使用场景：
//   - 初始化错误：NOT_INITIALIZED, INITIALIZATION_FAILED, INVALID_ARTIFACT
//   - 特征错误：INVALID_SOIL, INVALID_REGION, MISSING_FEATURE, SHAPE_MISMATCH
//   - 解释错误：UNKNOWN_CROP
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "INVALID_SOIL", "UNKNOWN_CROP"）
	Message string // 错误消息
	Module  string // 模块名称（如 "feature", "model", "interpret"）
	Cause   error  // 底层错误（可选）
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap 返回底层错误
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is 按 Module + Code 比较，使 errors.Is(err, ErrInvalidSoil) 对带参数的错误也成立
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && (t.Module == "" || e.Module == t.Module)
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取 DomainError（沿 Unwrap 链查找），如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	for err != nil {
		if domainErr, ok := err.(*DomainError); ok {
			return domainErr
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil
		}
		err = u.Unwrap()
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// Errorf 创建带格式化消息的领域错误
func Errorf(module, code, format string, args ...any) *DomainError {
	return NewDomainError(module, code, fmt.Sprintf(format, args...))
}

// Wrap 创建包装底层错误的领域错误
func Wrap(module, code, message string, cause error) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// 错误代码常量
const (
	// 通用错误代码
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 服务不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误

	// 初始化
	ErrorCodeNotInitialized       = "NOT_INITIALIZED"       // 会话未成功初始化
	ErrorCodeInitializationFailed = "INITIALIZATION_FAILED" // 初始化本身失败
	ErrorCodeInvalidArtifact      = "INVALID_ARTIFACT"      // 模型/标签/标准化参数结构错误

	// 推理链路
	ErrorCodeInvalidSoil    = "INVALID_SOIL"     // 未知土壤类型
	ErrorCodeInvalidRegion  = "INVALID_REGION"   // 未知区域
	ErrorCodeMissingFeature = "MISSING_FEATURE"  // 标准化参数声明的特征不存在
	ErrorCodeShapeMismatch  = "SHAPE_MISMATCH"   // 向量维度不一致
	ErrorCodeInferenceFail  = "INFERENCE_FAILED" // 推理后端出错
	ErrorCodeUnknownCrop    = "UNKNOWN_CROP"     // 待验证作物不在标签表中
)

// 模块名称常量
const (
	ModuleStore       = "store"       // 存储模块
	ModuleFeature     = "feature"     // 特征模块
	ModuleModel       = "model"       // 模型模块
	ModuleService     = "service"     // 远程服务模块
	ModuleInterpret   = "interpret"   // 结果解释模块
	ModuleArtifact    = "artifact"    // 制品加载模块
	ModuleRecommender = "recommender" // 推荐入口
)

// 领域错误哨兵值，用于 errors.Is 比较（只比较 Code）
var (
	ErrNotInitialized  = &DomainError{Code: ErrorCodeNotInitialized, Message: "recommender is not initialized"}
	ErrInvalidSoil     = &DomainError{Code: ErrorCodeInvalidSoil, Message: "invalid soil"}
	ErrInvalidRegion   = &DomainError{Code: ErrorCodeInvalidRegion, Message: "invalid region"}
	ErrMissingFeature  = &DomainError{Code: ErrorCodeMissingFeature, Message: "missing feature"}
	ErrShapeMismatch   = &DomainError{Code: ErrorCodeShapeMismatch, Message: "shape mismatch"}
	ErrUnknownCrop     = &DomainError{Code: ErrorCodeUnknownCrop, Message: "unknown crop"}
	ErrInvalidArtifact = &DomainError{Code: ErrorCodeInvalidArtifact, Message: "invalid artifact"}
)

// 通用错误检查函数

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	return hasCode(err, ErrorCodeNotSupported)
}

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool {
	return hasCode(err, ErrorCodeUnavailable)
}

// IsNotInitialized 检查错误是否为 NOT_INITIALIZED
func IsNotInitialized(err error) bool {
	return hasCode(err, ErrorCodeNotInitialized)
}

// IsInvalidSoil 检查错误是否为 INVALID_SOIL
func IsInvalidSoil(err error) bool {
	return hasCode(err, ErrorCodeInvalidSoil)
}

// IsInvalidRegion 检查错误是否为 INVALID_REGION
func IsInvalidRegion(err error) bool {
	return hasCode(err, ErrorCodeInvalidRegion)
}

// IsMissingFeature 检查错误是否为 MISSING_FEATURE
func IsMissingFeature(err error) bool {
	return hasCode(err, ErrorCodeMissingFeature)
}

// IsUnknownCrop 检查错误是否为 UNKNOWN_CROP
func IsUnknownCrop(err error) bool {
	return hasCode(err, ErrorCodeUnknownCrop)
}

// IsShapeMismatch 检查错误是否为 SHAPE_MISMATCH
func IsShapeMismatch(err error) bool {
	return hasCode(err, ErrorCodeShapeMismatch)
}

// IsInvalidArtifact 检查错误是否为 INVALID_ARTIFACT
func IsInvalidArtifact(err error) bool {
	return hasCode(err, ErrorCodeInvalidArtifact)
}
