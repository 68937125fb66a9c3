package dbmigrate

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/fdg312/fitness-tracker/internal/config"
)

func TestSelectTarget(t *testing.T) {
	tests := []struct {
		name          string
		cfg           config.Config
		requireDirect bool
		wantURL       string
		wantSource    string
		wantWarning   bool
		wantErr       bool
	}{
		{
			name:       "direct wins",
			cfg:        config.Config{DatabaseURLDirect: "postgres://direct", DatabaseURLRaw: "postgres://url", DatabaseURLPooled: "postgres://pooled"},
			wantURL:    "postgres://direct",
			wantSource: "DATABASE_URL_DIRECT",
		},
		{
			name:       "database url before pooled",
			cfg:        config.Config{DatabaseURLRaw: "postgres://url", DatabaseURLPooled: "postgres://pooled"},
			wantURL:    "postgres://url",
			wantSource: "DATABASE_URL",
		},
		{
			name:        "pooled warns",
			cfg:         config.Config{DatabaseURLPooled: "postgres://pooled"},
			wantURL:     "postgres://pooled",
			wantSource:  "DATABASE_URL_POOLED",
			wantWarning: true,
		},
		{
			name:          "direct required",
			cfg:           config.Config{DatabaseURLRaw: "postgres://url"},
			requireDirect: true,
			wantErr:       true,
		},
		{
			name:    "nothing configured",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := SelectTarget(&tt.cfg, tt.requireDirect)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if target.URL != tt.wantURL || target.Source != tt.wantSource {
				t.Fatalf("expected %s from %s, got %s from %s", tt.wantURL, tt.wantSource, target.URL, target.Source)
			}
			if (target.Warning != "") != tt.wantWarning {
				t.Fatalf("unexpected warning state: %q", target.Warning)
			}
		})
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	if err := Run("up", ""); err == nil {
		t.Fatal("expected error for empty URL")
	}
	if err := Run("redo-everything", "postgres://localhost/db"); err == nil || !strings.Contains(err.Error(), "unknown migrate command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestEmbeddedMigrationsHaveGooseSections(t *testing.T) {
	files, err := fs.Glob(embedded, "migrations/*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) < 2 {
		t.Fatalf("expected embedded migrations, got %v", files)
	}
	for _, f := range files {
		b, err := fs.ReadFile(embedded, f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if !strings.Contains(string(b), "-- +goose Up") || !strings.Contains(string(b), "-- +goose Down") {
			t.Fatalf("%s is missing goose annotations", f)
		}
	}
}
