package config

import (
	"strings"
	"testing"
)

func TestS3ConfigIsConfigured(t *testing.T) {
	if (S3Config{}).IsConfigured() {
		t.Fatal("expected IsConfigured=false for empty config")
	}

	cfg := S3Config{
		Endpoint:        "https://storage.example.com",
		Region:          "eu-central-1",
		Bucket:          "reports",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	}
	if !cfg.IsConfigured() {
		t.Fatal("expected IsConfigured=true when all required fields are set")
	}
}

func TestS3ConfigMissingRequired(t *testing.T) {
	cfg := S3Config{
		Endpoint: "https://storage.example.com",
		Bucket:   "reports",
	}
	missing := cfg.MissingRequired()

	want := []string{"S3_REGION", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY"}
	if len(missing) != len(want) {
		t.Fatalf("expected %d missing fields, got %d (%v)", len(want), len(missing), missing)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Fatalf("expected missing[%d]=%s, got %s", i, want[i], missing[i])
		}
	}
}

func TestS3ConfigDiagnostics(t *testing.T) {
	tests := []struct {
		name      string
		cfg       S3Config
		wantLevel string
		wantCode  string
	}{
		{"empty", S3Config{}, "INFO", "s3_not_configured"},
		{"partial", S3Config{Bucket: "reports"}, "WARN", "s3_partial_config"},
		{"ready", S3Config{Endpoint: "e", Region: "r", Bucket: "b", AccessKeyID: "k", SecretAccessKey: "s"}, "INFO", "s3_ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, code, _ := tt.cfg.Diagnostics()
			if level != tt.wantLevel || code != tt.wantCode {
				t.Fatalf("expected %s/%s, got %s/%s", tt.wantLevel, tt.wantCode, level, code)
			}
		})
	}
}

func TestDiagnosticsSummaryHidesSecrets(t *testing.T) {
	s := (S3Config{AccessKeyID: "AKIA123", SecretAccessKey: "topsecret"}).DiagnosticsSummary()
	if strings.Contains(s, "AKIA123") || strings.Contains(s, "topsecret") {
		t.Fatalf("summary leaks secrets: %s", s)
	}
}
