package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rushteam/agrikit/core"
)

const sampleYAML = `
logger:
  mode: prod
artifacts:
  source: redis
  redis:
    addr: "redis:6379"
    db: 2
    key_prefix: "agrikit:v3:"
  tables: tables.yaml
engine:
  type: dense
  threads: 4
interpret:
  top_k: 5
  rule: "confidence > 0.45 || rank == 1"
feast:
  enabled: true
  host: feast
  project: agrikit
`

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agrikit.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML() error = %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Logger.Mode != "prod" || cfg.Artifacts.Redis.DB != 2 || cfg.Artifacts.Redis.KeyPrefix != "agrikit:v3:" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Engine.Type != "dense" || cfg.Engine.Threads != 4 || cfg.Interpret.TopK != 5 {
		t.Errorf("engine/interpret = %+v / %+v", cfg.Engine, cfg.Interpret)
	}
	// 未配置的字段使用默认值
	if cfg.Artifacts.Model != DefaultModelName || *cfg.Interpret.Threshold != 0.45 || cfg.Feast.Port != 6565 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadFromJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agrikit.json")
	data := `{"artifacts": {"source": "http", "base_url": "http://cdn/agrikit"}, "engine": {"type": "tf_serving", "tf_serving": {"endpoint": "http://tfs:8501", "model_name": "crop"}}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromJSON(path)
	if err != nil {
		t.Fatalf("LoadFromJSON() error = %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Engine.TFServing.ModelName != "crop" || cfg.Engine.TFServing.TimeoutSeconds != 5 {
		t.Errorf("tf_serving = %+v", cfg.Engine.TFServing)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := LoadFromYAML(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("LoadFromYAML(missing) error = nil")
	}
	if _, err := ParseYAML([]byte("engine: [")); err == nil {
		t.Error("ParseYAML(broken) error = nil")
	}
	if _, err := ParseJSON([]byte("{")); err == nil {
		t.Error("ParseJSON(broken) error = nil")
	}
}

func TestApplyDefaults_Threshold(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want float64
	}{
		{name: "omitted", yaml: "interpret:\n  top_k: 3\n", want: 0.45},
		{name: "explicit zero", yaml: "interpret:\n  threshold: 0\n", want: 0},
		{name: "explicit value", yaml: "interpret:\n  threshold: 0.3\n", want: 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseYAML([]byte(tt.yaml))
			if err != nil {
				t.Fatal(err)
			}
			cfg.ApplyDefaults()
			if cfg.Interpret.Threshold == nil || *cfg.Interpret.Threshold != tt.want {
				t.Errorf("threshold = %v, want %v", cfg.Interpret.Threshold, tt.want)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Artifacts.Source != SourceFile || cfg.Artifacts.Dir != "./assets" {
		t.Errorf("artifacts = %+v", cfg.Artifacts)
	}
	if cfg.Engine.Type != "onnx" || cfg.Engine.Threads != 2 {
		t.Errorf("engine = %+v", cfg.Engine)
	}
	if cfg.Interpret.TopK != 3 || *cfg.Interpret.Threshold != 0.45 {
		t.Errorf("interpret = %+v", cfg.Interpret)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "unknown source", mutate: func(c *Config) { c.Artifacts.Source = "ftp" }, wantErr: "artifacts.source"},
		{name: "http without base url", mutate: func(c *Config) { c.Artifacts.Source = SourceHTTP }, wantErr: "base_url"},
		{name: "unknown engine", mutate: func(c *Config) { c.Engine.Type = "tflite" }, wantErr: "engine.type"},
		{name: "tf serving without endpoint", mutate: func(c *Config) { c.Engine.Type = EngineTFServing }, wantErr: "tf_serving"},
		{name: "zero top k", mutate: func(c *Config) { c.Interpret.TopK = -1 }, wantErr: "top_k"},
		{name: "threshold out of range", mutate: func(c *Config) { t := 1.2; c.Interpret.Threshold = &t }, wantErr: "threshold"},
		{name: "feast without host", mutate: func(c *Config) { c.Feast.Enabled = true }, wantErr: "feast"},
		{name: "local engine without model", mutate: func(c *Config) { c.Artifacts.Model = "" }, wantErr: "artifacts.model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestClassifierLoader(t *testing.T) {
	cfg := Default()
	cfg.Engine.Type = "dense"
	loader, needsModel, err := cfg.ClassifierLoader()
	if err != nil {
		t.Fatalf("ClassifierLoader() error = %v", err)
	}
	if !needsModel {
		t.Error("dense engine should need a model artifact")
	}
	c, err := loader(context.Background(), []byte(`{"input_dim": 1, "layers": [{"weights": [[1]], "biases": [0]}]}`))
	if err != nil {
		t.Fatalf("loader() error = %v", err)
	}
	if c.Name() != "dense" {
		t.Errorf("Name() = %q", c.Name())
	}

	cfg.Engine.Type = EngineTFServing
	cfg.Engine.TFServing.Endpoint = "http://tfs:8501"
	cfg.Engine.TFServing.ModelName = "crop"
	_, needsModel, err = cfg.ClassifierLoader()
	if err != nil || needsModel {
		t.Errorf("ClassifierLoader(tf_serving) = needsModel %v, err %v", needsModel, err)
	}
	if names := cfg.ArtifactNames(needsModel); names.Model != "" || names.Labels != DefaultLabelsName {
		t.Errorf("ArtifactNames() = %+v", names)
	}
}

type echoClassifier struct{}

func (echoClassifier) Name() string { return "echo" }
func (echoClassifier) Infer(_ context.Context, in []float64) ([]float64, error) {
	return in, nil
}
func (echoClassifier) Close() error { return nil }

func TestRegisterEngine(t *testing.T) {
	RegisterEngine("echo", Engine{Build: func(EngineConfig) (core.ClassifierLoader, error) {
		return func(context.Context, []byte) (core.Classifier, error) { return echoClassifier{}, nil }, nil
	}})
	found := false
	for _, e := range SupportedEngines() {
		if e == "echo" {
			found = true
		}
	}
	if !found {
		t.Fatalf("SupportedEngines() = %v, want echo", SupportedEngines())
	}
	cfg := Default()
	cfg.Engine.Type = "echo"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with registered engine error = %v", err)
	}
}

func TestBuildSource(t *testing.T) {
	cfg := Default()
	src, closer, err := cfg.BuildSource(nil)
	if err != nil || closer != nil || src.Name() != "file" {
		t.Errorf("BuildSource(file) = %v, %v, %v", src, closer, err)
	}

	cfg.Artifacts.Source = SourceMemory
	src, closer, err = cfg.BuildSource(nil)
	if err != nil || closer == nil || src.Name() != "store:memory" {
		t.Fatalf("BuildSource(memory) = %v, %v, %v", src, closer, err)
	}
	_ = closer.Close()

	cfg.Artifacts.Source = "ftp"
	if _, _, err := cfg.BuildSource(nil); !core.IsNotSupported(err) {
		t.Errorf("BuildSource(ftp) error = %v, want NOT_SUPPORTED", err)
	}
}
