package blob

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"github.com/fdg312/fitness-tracker/internal/config"
)

func TestOpenLocal(t *testing.T) {
	var buf bytes.Buffer

	store, mode, err := Open(context.Background(), config.BlobConfig{Mode: config.BlobModeLocal}, log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store != nil || mode != config.BlobModeLocal {
		t.Fatalf("expected nil store in local mode, got store=%v mode=%s", store, mode)
	}
}

func TestOpenAutoWithoutS3FallsBack(t *testing.T) {
	var buf bytes.Buffer

	store, mode, err := Open(context.Background(), config.BlobConfig{Mode: config.BlobModeAuto}, log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store != nil || mode != config.BlobModeLocal {
		t.Fatalf("expected local fallback, got mode=%s", mode)
	}
	if !strings.Contains(buf.String(), "code=s3_not_configured") {
		t.Fatalf("expected diagnostics in log, got: %s", buf.String())
	}
}

func TestOpenS3MissingConfig(t *testing.T) {
	var buf bytes.Buffer

	_, _, err := Open(context.Background(), config.BlobConfig{
		Mode: config.BlobModeS3,
		S3:   config.S3Config{Endpoint: "http://localhost:9000", SecretAccessKey: "hunter2"},
	}, log.New(&buf, "", 0))
	if err == nil {
		t.Fatal("expected error for incomplete s3 config")
	}
	if !strings.Contains(err.Error(), "S3_BUCKET") {
		t.Fatalf("expected missing bucket in error, got %v", err)
	}
	if strings.Contains(buf.String(), "hunter2") {
		t.Fatalf("secret leaked into log: %s", buf.String())
	}
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	n, err := m.Put(ctx, "reports/a.csv", []byte("x,y"), "text/csv")
	if err != nil || n != 3 {
		t.Fatalf("put: n=%d err=%v", n, err)
	}
	data, err := m.Get(ctx, "reports/a.csv")
	if err != nil || string(data) != "x,y" {
		t.Fatalf("get: %q %v", data, err)
	}
	if err := m.Delete(ctx, "reports/a.csv"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get(ctx, "reports/a.csv"); err != ErrNoObject {
		t.Fatalf("expected ErrNoObject, got %v", err)
	}
}
