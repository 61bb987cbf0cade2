package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/rushteam/agrikit/core"
)

// Config 远程推理服务配置
type Config struct {
	Endpoint       string      `yaml:"endpoint" json:"endpoint"`
	ModelName      string      `yaml:"model_name" json:"model_name"`
	ModelVersion   string      `yaml:"version" json:"version"`
	SignatureName  string      `yaml:"signature_name" json:"signature_name"`
	TimeoutSeconds int         `yaml:"timeout_seconds" json:"timeout_seconds"`
	Auth           *AuthConfig `yaml:"auth" json:"auth"`
}

// ValidateConfig 验证服务配置
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config is required")
	}
	if config.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if !hasHTTPPrefix(config.Endpoint) {
		return fmt.Errorf("endpoint must start with http:// or https://: %s", config.Endpoint)
	}
	if config.ModelName == "" {
		return fmt.Errorf("model name is required")
	}
	return nil
}

// NewClassifier 根据配置创建远程分类器（工厂方法）。
func NewClassifier(config *Config) (core.Classifier, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	opts := []TFServingOption{
		WithTFServingTimeout(timeout),
	}
	if config.ModelVersion != "" {
		opts = append(opts, WithTFServingVersion(config.ModelVersion))
	}
	if config.SignatureName != "" {
		opts = append(opts, WithTFServingSignature(config.SignatureName))
	}
	if config.Auth != nil {
		opts = append(opts, WithTFServingAuth(config.Auth))
	}
	return NewTFServingClassifier(strings.TrimRight(config.Endpoint, "/"), config.ModelName, opts...), nil
}

// hasHTTPPrefix 检查是否包含 HTTP 前缀
func hasHTTPPrefix(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
