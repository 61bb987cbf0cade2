package artifact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPSource 从 HTTP 静态文件服务读取制品：GET {BaseURL}/{name}
type HTTPSource struct {
	BaseURL string
	client  *http.Client
}

// NewHTTPSource 创建 HTTP 来源，timeout 为 0 时默认 10s
//
// 用法：
//
//	src := artifact.NewHTTPSource("https://cdn.example.com/agrikit/v3", 5*time.Second)
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// NewHTTPSourceWithClient 使用自定义 HTTP 客户端
func NewHTTPSourceWithClient(baseURL string, client *http.Client) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) Read(ctx context.Context, name string) ([]byte, error) {
	target := s.BaseURL + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, unavailable(name, fmt.Errorf("创建 HTTP 请求失败: %w", err))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, unavailable(name, fmt.Errorf("HTTP 请求失败: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, notFound(name, fmt.Errorf("status=%d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, unavailable(name, fmt.Errorf("status=%d, body=%s", resp.StatusCode, string(body)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable(name, fmt.Errorf("读取响应失败: %w", err))
	}
	return data, nil
}

var _ Source = (*HTTPSource)(nil)
