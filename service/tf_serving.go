package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rushteam/agrikit/core"
)

// AuthConfig 认证配置
type AuthConfig struct {
	Type     string `yaml:"type" json:"type"` // "basic", "bearer", "api_key"
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	Token    string `yaml:"token" json:"token"`
	APIKey   string `yaml:"api_key" json:"api_key"`
}

// TFServingClassifier 是 TensorFlow Serving REST API 的分类器实现。
//
// 请求：POST {endpoint}/v1/models/{name}[/versions/{v}]:predict
//
//	{"instances": [[z1, ..., z10]], "signature_name": "serving_default"}
//
// 响应：{"predictions": [[p1, ..., pn]]}，取第一行作为各类别分数。
//
// 工程特征：
//   - 部署：模型集中托管，客户端无需原生运行时
//   - 延迟：一次 HTTP 往返
type TFServingClassifier struct {
	// Endpoint 服务端点，例如 "http://localhost:8501"
	Endpoint string

	// ModelName 模型名称
	ModelName string

	// ModelVersion 模型版本（可选，为空则使用最新版本）
	ModelVersion string

	// SignatureName 签名名称（默认为 "serving_default"）
	SignatureName string

	// Timeout 超时时间
	Timeout time.Duration

	// Auth 认证信息
	Auth *AuthConfig

	httpClient *http.Client
}

// TFServingOption TF Serving 客户端配置选项
type TFServingOption func(*TFServingClassifier)

// WithTFServingVersion 设置模型版本
func WithTFServingVersion(version string) TFServingOption {
	return func(c *TFServingClassifier) {
		c.ModelVersion = version
	}
}

// WithTFServingSignature 设置签名名称
func WithTFServingSignature(signatureName string) TFServingOption {
	return func(c *TFServingClassifier) {
		c.SignatureName = signatureName
	}
}

// WithTFServingTimeout 设置超时时间
func WithTFServingTimeout(timeout time.Duration) TFServingOption {
	return func(c *TFServingClassifier) {
		c.Timeout = timeout
	}
}

// WithTFServingAuth 设置认证信息
func WithTFServingAuth(auth *AuthConfig) TFServingOption {
	return func(c *TFServingClassifier) {
		c.Auth = auth
	}
}

// WithTFServingHTTPClient 使用自定义 HTTP 客户端
func WithTFServingHTTPClient(client *http.Client) TFServingOption {
	return func(c *TFServingClassifier) {
		c.httpClient = client
	}
}

// NewTFServingClassifier 创建一个新的 TF Serving 分类器。
func NewTFServingClassifier(endpoint, modelName string, opts ...TFServingOption) *TFServingClassifier {
	c := &TFServingClassifier{
		Endpoint:      endpoint,
		ModelName:     modelName,
		SignatureName: "serving_default",
		Timeout:       30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}

func (c *TFServingClassifier) Name() string {
	return "tf_serving"
}

func (c *TFServingClassifier) modelURL() string {
	if c.ModelVersion != "" {
		return fmt.Sprintf("%s/v1/models/%s/versions/%s", c.Endpoint, c.ModelName, c.ModelVersion)
	}
	return fmt.Sprintf("%s/v1/models/%s", c.Endpoint, c.ModelName)
}

// Infer 实现 core.Classifier 接口
func (c *TFServingClassifier) Infer(ctx context.Context, input []float64) ([]float64, error) {
	body := map[string]interface{}{
		"instances": [][]float64{input},
	}
	if c.SignatureName != "" {
		body["signature_name"] = c.SignatureName
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.modelURL()+":predict", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.addAuth(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, core.Wrap(core.ModuleService, core.ErrorCodeUnavailable, "tf serving request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, core.Errorf(core.ModuleService, core.ErrorCodeInferenceFail,
			"tf serving error: status=%d, body=%s", resp.StatusCode, string(bodyBytes))
	}

	var result struct {
		Predictions []json.RawMessage `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(result.Predictions) == 0 {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeInferenceFail, "tf serving returned no predictions")
	}

	// 多分类输出为 [[p1, ..., pn]]，单行时也可能直接是 [p1, ..., pn]
	var row []float64
	if err := json.Unmarshal(result.Predictions[0], &row); err == nil {
		return row, nil
	}
	row = make([]float64, 0, len(result.Predictions))
	for _, raw := range result.Predictions {
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("unexpected prediction format: %s", string(raw))
		}
		row = append(row, v)
	}
	return row, nil
}

// addAuth 添加认证信息到 HTTP 请求
func (c *TFServingClassifier) addAuth(req *http.Request) {
	if c.Auth == nil {
		return
	}
	switch c.Auth.Type {
	case "basic":
		req.SetBasicAuth(c.Auth.Username, c.Auth.Password)
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+c.Auth.Token)
	case "api_key":
		req.Header.Set("X-API-Key", c.Auth.APIKey)
	}
}

// Health 健康检查（模型状态接口）
func (c *TFServingClassifier) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.modelURL(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.addAuth(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("health check failed: status=%d, body=%s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

// Close HTTP 客户端不需要显式关闭
func (c *TFServingClassifier) Close() error {
	return nil
}

// 确保 TFServingClassifier 实现了 core.Classifier 接口
var _ core.Classifier = (*TFServingClassifier)(nil)
