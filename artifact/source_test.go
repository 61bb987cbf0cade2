package artifact

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/agrikit/core"
	"github.com/rushteam/agrikit/store"
)

func TestFileSource_Read(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "labels_v3.txt"), []byte("Rice\nWheat\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := NewFileSource(dir)

	data, err := src.Read(context.Background(), "labels_v3.txt")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(data) != "Rice\nWheat\n" {
		t.Errorf("Read() = %q", data)
	}

	if _, err := src.Read(context.Background(), "missing.json"); !core.IsNotFound(err) {
		t.Errorf("Read(missing) error = %v, want NOT_FOUND", err)
	}
	for _, name := range []string{"", "../secret", "/etc/passwd"} {
		if _, err := src.Read(context.Background(), name); err == nil {
			t.Errorf("Read(%q) error = nil, 目录外路径应被拒绝", name)
		}
	}
}

func TestHTTPSource_Read(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v3/scaler_params_v3.json":
			_, _ = w.Write([]byte(`{"mean":[]}`))
		case "/v3/broken":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL+"/v3/", 0)
	data, err := src.Read(context.Background(), "scaler_params_v3.json")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(data) != `{"mean":[]}` {
		t.Errorf("Read() = %q", data)
	}
	if _, err := src.Read(context.Background(), "nope"); !core.IsNotFound(err) {
		t.Errorf("Read(nope) error = %v, want NOT_FOUND", err)
	}
	if _, err := src.Read(context.Background(), "broken"); !core.IsUnavailable(err) {
		t.Errorf("Read(broken) error = %v, want UNAVAILABLE", err)
	}
}

func TestStoreSource_Read(t *testing.T) {
	ctx := context.Background()
	ms := store.NewMemoryStore()
	defer ms.Close()

	src := NewStoreSource(ms, "agrikit:")
	if err := src.Publish(ctx, "labels_v3.txt", []byte("Rice")); err != nil {
		t.Fatal(err)
	}
	if v, _ := ms.Get(ctx, "agrikit:labels_v3.txt"); string(v) != "Rice" {
		t.Fatalf("Publish() 应写入带前缀的 key, got %q", v)
	}

	data, err := src.Read(ctx, "labels_v3.txt")
	if err != nil || string(data) != "Rice" {
		t.Errorf("Read() = %q, %v", data, err)
	}
	if _, err := src.Read(ctx, "other"); !core.IsNotFound(err) {
		t.Errorf("Read(other) error = %v, want NOT_FOUND", err)
	}
	if src.Name() != "store:memory" {
		t.Errorf("Name() = %q", src.Name())
	}
}

type fakeS3 struct {
	objects map[string][]byte
	gotKey  string
}

func (f *fakeS3) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	f.gotKey = bucket + "/" + key
	data, ok := f.objects[key]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func TestS3Source_Read(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{"agrikit/v3/model.json": []byte("{}")}}
	src := NewS3Source(client, "bucket", "agrikit/v3")

	data, err := src.Read(context.Background(), "model.json")
	if err != nil || string(data) != "{}" {
		t.Fatalf("Read() = %q, %v", data, err)
	}
	if client.gotKey != "bucket/agrikit/v3/model.json" {
		t.Errorf("object key = %q", client.gotKey)
	}
	if _, err := src.Read(context.Background(), "none"); !core.IsNotFound(err) {
		t.Errorf("Read(none) error = %v, want NOT_FOUND", err)
	}
	if _, err := NewS3Source(nil, "b", "").Read(context.Background(), "x"); err == nil {
		t.Error("Read() with nil client error = nil")
	}
}

func TestLoadBundle(t *testing.T) {
	ctx := context.Background()
	ms := store.NewMemoryStore()
	defer ms.Close()
	_ = ms.Set(ctx, "m", []byte("model"))
	_ = ms.Set(ctx, "l", []byte("labels"))
	_ = ms.Set(ctx, "s", []byte("scaler"))
	src := NewStoreSource(ms, "")

	b, err := LoadBundle(ctx, src, Names{Model: "m", Labels: "l", Scaler: "s"})
	if err != nil {
		t.Fatalf("LoadBundle() error = %v", err)
	}
	if string(b.Model) != "model" || string(b.Labels) != "labels" || string(b.Scaler) != "scaler" || b.Tables != nil {
		t.Errorf("LoadBundle() = %+v", b)
	}

	if _, err := LoadBundle(ctx, src, Names{Model: "m", Labels: "l", Scaler: "s", Tables: "t"}); !core.IsNotFound(err) {
		t.Errorf("LoadBundle() with missing tables error = %v, want NOT_FOUND", err)
	}
}
