package health

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewChecker(t *testing.T) {
	checker := NewChecker("test-checker", func(ctx context.Context) CheckResult {
		return CheckResult{
			Status:  StatusHealthy,
			Message: "test passed",
		}
	})

	if checker.Name() != "test-checker" {
		t.Errorf("Name() = %v, want test-checker", checker.Name())
	}

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", result.Status)
	}
	if result.Message != "test passed" {
		t.Errorf("Message = %v, want 'test passed'", result.Message)
	}
}

func TestRegistry_Check(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
		{"empty", nil, StatusHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry("taletekst", "1.0.0")
			for i, s := range tt.statuses {
				s := s
				registry.RegisterFunc(string(rune('c'-i)), func(ctx context.Context) CheckResult {
					return CheckResult{Status: s}
				})
			}

			report := registry.CheckWithTimeout(time.Second)
			if report.Status != tt.want {
				t.Errorf("Status = %v, want %v", report.Status, tt.want)
			}
			if report.Healthy() != (tt.want != StatusUnhealthy) {
				t.Errorf("Healthy() = %v", report.Healthy())
			}
			if len(report.Checks) != len(tt.statuses) {
				t.Fatalf("len(Checks) = %d", len(report.Checks))
			}
			for i := 1; i < len(report.Checks); i++ {
				if report.Checks[i-1].Name >= report.Checks[i].Name {
					t.Errorf("checks not sorted: %v", report.Checks)
				}
			}
		})
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	registry := NewRegistry("taletekst", "1.0.0")
	registry.RegisterFunc("x", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusUnhealthy}
	})
	registry.RegisterFunc("x", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})

	report := registry.Check(context.Background())
	if len(report.Checks) != 1 || report.Status != StatusHealthy {
		t.Errorf("report = %+v", report)
	}
	if report.Checks[0].Name != "x" {
		t.Errorf("Name = %q, want default from checker", report.Checks[0].Name)
	}
}

func TestFileCheck(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "phonemes.json")
	if err := os.WriteFile(file, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		required bool
		want     Status
	}{
		{"present", file, true, StatusHealthy},
		{"missing required", filepath.Join(dir, "nope"), true, StatusUnhealthy},
		{"missing optional", filepath.Join(dir, "nope"), false, StatusDegraded},
		{"directory", dir, false, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FileCheck("file", tt.path, tt.required).Check(context.Background())
			if got.Status != tt.want {
				t.Errorf("Status = %v (%s), want %v", got.Status, got.Message, tt.want)
			}
		})
	}
}

func TestDirWritableCheck(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "raw")

	got := DirWritableCheck("raw", dir).Check(context.Background())
	if got.Status != StatusHealthy {
		t.Fatalf("Status = %v (%s)", got.Status, got.Message)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 0 {
		t.Errorf("probe file left behind: %v, %v", entries, err)
	}
}

func TestReachableCheck(t *testing.T) {
	ok := func(ctx context.Context, url string) error { return nil }
	fail := func(ctx context.Context, url string) error { return errors.New("connection refused") }

	cache := filepath.Join(t.TempDir(), "stations.txt")
	if err := os.WriteFile(cache, []byte("Aarhus H\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		probe    func(context.Context, string) error
		fallback string
		want     Status
	}{
		{"reachable", ok, "", StatusHealthy},
		{"unreachable", fail, "", StatusUnhealthy},
		{"unreachable with cache", fail, cache, StatusDegraded},
		{"unreachable with missing cache", fail, cache + ".missing", StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReachableCheck("web", "https://example.org", tt.fallback, tt.probe).Check(context.Background())
			if got.Status != tt.want {
				t.Errorf("Status = %v (%s), want %v", got.Status, got.Message, tt.want)
			}
		})
	}
}
