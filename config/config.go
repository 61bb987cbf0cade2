// Package config 定义推荐器的配置结构（支持 YAML/JSON），以及默认值与校验。
//
//	cfg, err := config.LoadFromYAML("agrikit.yaml")
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil { ... }
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/agrikit/interpret"
	"github.com/rushteam/agrikit/model"
	"github.com/rushteam/agrikit/service"
)

// 默认制品名称
const (
	DefaultModelName  = "crop_recommender_v3.onnx"
	DefaultLabelsName = "labels_v3.txt"
	DefaultScalerName = "scaler_params_v3.json"
)

// 制品来源类型
const (
	SourceFile   = "file"
	SourceHTTP   = "http"
	SourceRedis  = "redis"
	SourceMemory = "memory"
)

// Config 推荐器配置
type Config struct {
	Logger    LoggerConfig    `yaml:"logger" json:"logger"`
	Artifacts ArtifactsConfig `yaml:"artifacts" json:"artifacts"`
	Engine    EngineConfig    `yaml:"engine" json:"engine"`
	Interpret InterpretConfig `yaml:"interpret" json:"interpret"`
	Feast     FeastConfig     `yaml:"feast" json:"feast"`
}

type LoggerConfig struct {
	Mode string `yaml:"mode" json:"mode"` // dev | prod
}

// ArtifactsConfig 制品来源与名称
type ArtifactsConfig struct {
	Source         string      `yaml:"source" json:"source"` // file | http | redis | memory
	Dir            string      `yaml:"dir" json:"dir"`
	BaseURL        string      `yaml:"base_url" json:"base_url"`
	TimeoutSeconds int         `yaml:"timeout_seconds" json:"timeout_seconds"`
	Redis          RedisConfig `yaml:"redis" json:"redis"`

	Model  string `yaml:"model" json:"model"`
	Labels string `yaml:"labels" json:"labels"`
	Scaler string `yaml:"scaler" json:"scaler"`
	Tables string `yaml:"tables" json:"tables"` // 可选
}

type RedisConfig struct {
	Addr      string `yaml:"addr" json:"addr"`
	Password  string `yaml:"password" json:"password"`
	DB        int    `yaml:"db" json:"db"`
	KeyPrefix string `yaml:"key_prefix" json:"key_prefix"`
}

// EngineConfig 推理引擎配置
type EngineConfig struct {
	Type      string         `yaml:"type" json:"type"` // onnx | dense | tf_serving
	Threads   int            `yaml:"threads" json:"threads"`
	ONNX      ONNXConfig     `yaml:"onnx" json:"onnx"`
	TFServing service.Config `yaml:"tf_serving" json:"tf_serving"`
}

type ONNXConfig struct {
	LibraryPath string `yaml:"library_path" json:"library_path"`
	InputName   string `yaml:"input_name" json:"input_name"`
	OutputName  string `yaml:"output_name" json:"output_name"`
}

// Options 转换为 model.ONNXOptions
func (c EngineConfig) Options() model.ONNXOptions {
	return model.ONNXOptions{
		LibraryPath: c.ONNX.LibraryPath,
		InputName:   c.ONNX.InputName,
		OutputName:  c.ONNX.OutputName,
		Threads:     c.Threads,
	}
}

// InterpretConfig 结果解释配置
type InterpretConfig struct {
	TopK      int     `yaml:"top_k" json:"top_k"`
	// Threshold 为空时取 0.45；显式 0 表示任何正置信度都可行
	Threshold *float64 `yaml:"threshold" json:"threshold"`
	// Rule 可选 CEL 表达式，非空时替代阈值规则，例如 "confidence > 0.45 || rank == 1"
	Rule string `yaml:"rule" json:"rule"`
}

// FeastConfig 区域气候覆盖（可选）
type FeastConfig struct {
	Enabled     bool   `yaml:"enabled" json:"enabled"`
	Host        string `yaml:"host" json:"host"`
	Port        int    `yaml:"port" json:"port"`
	Project     string `yaml:"project" json:"project"`
	EntityKey   string `yaml:"entity_key" json:"entity_key"`
	FeatureView string `yaml:"feature_view" json:"feature_view"`
	Token       string `yaml:"token" json:"token"`
}

// LoadFromYAML 从 YAML 文件加载配置。
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseYAML(data)
}

// LoadFromJSON 从 JSON 文件加载配置。
func LoadFromJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseJSON(data)
}

// ParseYAML 解析 YAML 配置内容
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// ParseJSON 解析 JSON 配置内容
func ParseJSON(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return &cfg, nil
}

// Default 返回已填充默认值的配置：本地 ./assets 目录 + ONNX 引擎
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults 填充零值字段
func (c *Config) ApplyDefaults() {
	if c.Logger.Mode == "" {
		c.Logger.Mode = "dev"
	}

	a := &c.Artifacts
	if a.Source == "" {
		a.Source = SourceFile
	}
	if a.Source == SourceFile && a.Dir == "" {
		a.Dir = "./assets"
	}
	if a.Source == SourceRedis && a.Redis.Addr == "" {
		a.Redis.Addr = "localhost:6379"
	}
	if a.TimeoutSeconds == 0 {
		a.TimeoutSeconds = 10
	}
	if a.Model == "" {
		a.Model = DefaultModelName
	}
	if a.Labels == "" {
		a.Labels = DefaultLabelsName
	}
	if a.Scaler == "" {
		a.Scaler = DefaultScalerName
	}

	if c.Engine.Type == "" {
		c.Engine.Type = string(model.EngineONNX)
	}
	if c.Engine.Threads == 0 {
		c.Engine.Threads = 2
	}
	if c.Engine.TFServing.TimeoutSeconds == 0 {
		c.Engine.TFServing.TimeoutSeconds = 5
	}

	if c.Interpret.TopK == 0 {
		c.Interpret.TopK = 3
	}
	if c.Interpret.Threshold == nil {
		t := interpret.DefaultViabilityThreshold
		c.Interpret.Threshold = &t
	}

	f := &c.Feast
	if f.Port == 0 {
		f.Port = 6565
	}
	if f.EntityKey == "" {
		f.EntityKey = "region"
	}
	if f.FeatureView == "" {
		f.FeatureView = "region_climate"
	}
}

// Validate 校验来源类型、引擎类型以及各类型必需的配置
func (c *Config) Validate() error {
	a := c.Artifacts
	switch a.Source {
	case SourceFile:
		if a.Dir == "" {
			return fmt.Errorf("artifacts.dir is required for source %q", a.Source)
		}
	case SourceHTTP:
		if a.BaseURL == "" {
			return fmt.Errorf("artifacts.base_url is required for source %q", a.Source)
		}
	case SourceRedis:
		if a.Redis.Addr == "" {
			return fmt.Errorf("artifacts.redis.addr is required for source %q", a.Source)
		}
	case SourceMemory:
	default:
		return fmt.Errorf("unsupported artifacts.source %q (supported: %v)",
			a.Source, []string{SourceFile, SourceHTTP, SourceRedis, SourceMemory})
	}
	if a.Labels == "" || a.Scaler == "" {
		return fmt.Errorf("artifacts.labels and artifacts.scaler are required")
	}

	engine, ok := lookupEngine(c.Engine.Type)
	if !ok {
		return fmt.Errorf("unsupported engine.type %q (supported: %v)", c.Engine.Type, SupportedEngines())
	}
	if !engine.Remote && a.Model == "" {
		return fmt.Errorf("artifacts.model is required for engine %q", c.Engine.Type)
	}
	if c.Engine.Threads < 0 {
		return fmt.Errorf("engine.threads must be >= 0, got %d", c.Engine.Threads)
	}
	if c.Engine.Type == EngineTFServing {
		if err := service.ValidateConfig(&c.Engine.TFServing); err != nil {
			return fmt.Errorf("engine.tf_serving: %w", err)
		}
	}

	if c.Interpret.TopK < 1 {
		return fmt.Errorf("interpret.top_k must be >= 1, got %d", c.Interpret.TopK)
	}
	if t := c.Interpret.Threshold; t != nil && (*t < 0 || *t >= 1) {
		return fmt.Errorf("interpret.threshold must be in [0, 1), got %v", *t)
	}

	if c.Feast.Enabled && (c.Feast.Host == "" || c.Feast.Project == "") {
		return fmt.Errorf("feast.host and feast.project are required when feast is enabled")
	}
	return nil
}
