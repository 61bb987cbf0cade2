// Package feast 从 Feast 在线特征库读取区域气候数据。
//
// 区域气候在启动时一次性拉取并生成 feature.RegionProfile，
// 推理链路本身不访问 Feast。
//
// 参考：https://github.com/feast-dev/feast
package feast

import (
	"context"
	"time"
)

// Client 是 Feast 在线特征读取接口。
// GrpcClient 基于官方 SDK 实现，测试中可替换为假实现。
type Client interface {
	// GetOnlineFeatures 获取在线特征
	//
	// 参数：
	//   - Features: 特征引用列表，例如 ["region_climate:PRECTOTCORR_Su"]
	//   - EntityRows: 实体行，例如 [{"region": "Coastal"}]
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	Features   []string
	EntityRows []map[string]any

	// Project 项目名称（可选，为空时使用客户端默认项目）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 与 EntityRows 一一对应
	FeatureVectors []FeatureVector
}

// FeatureVector 一个实体行的特征值
type FeatureVector struct {
	// Values key 为特征引用，value 为数值（float64）或字符串
	Values    map[string]any
	EntityRow map[string]any
}

// ClientOption Feast 客户端配置选项
type ClientOption func(*ClientConfig)

// ClientConfig Feast 客户端配置
type ClientConfig struct {
	Timeout time.Duration

	// Token 非空时使用静态 Token 认证
	Token string

	// TLS 是否启用 TLS
	TLS bool
}

// WithTimeout 设置单次请求超时时间
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithStaticToken 使用静态 Token 认证
func WithStaticToken(token string) ClientOption {
	return func(c *ClientConfig) {
		c.Token = token
	}
}

// WithTLS 启用 TLS
func WithTLS() ClientOption {
	return func(c *ClientConfig) {
		c.TLS = true
	}
}
