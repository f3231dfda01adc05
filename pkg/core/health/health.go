// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     health
// Description: Preflight checks run concurrently before a build
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Status represents the outcome of a check
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// CheckResult represents the result of a single check
type CheckResult struct {
	Name     string                 `json:"name"`
	Status   Status                 `json:"status"`
	Message  string                 `json:"message,omitempty"`
	Duration time.Duration          `json:"duration"`
	Details  map[string]interface{} `json:"details,omitempty"`
}

// Checker is an interface for checks
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

// NamedCheckFunc wraps a check function with a name
type NamedCheckFunc struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

// NewChecker creates a named checker from a function
func NewChecker(name string, fn func(ctx context.Context) CheckResult) Checker {
	return &NamedCheckFunc{name: name, fn: fn}
}

// Name returns the checker name
func (c *NamedCheckFunc) Name() string {
	return c.name
}

// Check runs the check
func (c *NamedCheckFunc) Check(ctx context.Context) CheckResult {
	return c.fn(ctx)
}

// Registry manages multiple checkers
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	service  string
	version  string
}

// NewRegistry creates a new check registry
func NewRegistry(service, version string) *Registry {
	return &Registry{
		checkers: make(map[string]Checker),
		service:  service,
		version:  version,
	}
}

// Register adds a checker, replacing one with the same name
func (r *Registry) Register(checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[checker.Name()] = checker
}

// RegisterFunc adds a check function to the registry
func (r *Registry) RegisterFunc(name string, fn func(ctx context.Context) CheckResult) {
	r.Register(NewChecker(name, fn))
}

// Check runs all checks concurrently. Results are sorted by name.
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report := &Report{
		Service:   r.service,
		Version:   r.version,
		Timestamp: time.Now(),
		Checks:    make([]CheckResult, 0, len(r.checkers)),
	}

	var wg sync.WaitGroup
	results := make(chan CheckResult, len(r.checkers))

	for _, checker := range r.checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()
			start := time.Now()
			result := c.Check(ctx)
			result.Duration = time.Since(start)
			if result.Name == "" {
				result.Name = c.Name()
			}
			results <- result
		}(checker)
	}

	wg.Wait()
	close(results)

	overall := StatusHealthy
	for result := range results {
		report.Checks = append(report.Checks, result)
		switch result.Status {
		case StatusUnhealthy:
			overall = StatusUnhealthy
		case StatusDegraded:
			if overall != StatusUnhealthy {
				overall = StatusDegraded
			}
		}
	}
	sort.Slice(report.Checks, func(i, j int) bool {
		return report.Checks[i].Name < report.Checks[j].Name
	})

	report.Status = overall
	return report
}

// CheckWithTimeout runs all checks with a timeout
func (r *Registry) CheckWithTimeout(timeout time.Duration) *Report {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return r.Check(ctx)
}

// Report represents the overall result
type Report struct {
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// Healthy reports whether no check failed. Degraded checks count as passed.
func (r *Report) Healthy() bool {
	return r.Status != StatusUnhealthy
}

// String returns a string representation of the report
func (r *Report) String() string {
	return fmt.Sprintf("%s %s: %s, %d checks", r.Service, r.Version, r.Status, len(r.Checks))
}

// Common checks

// FileCheck verifies that path is a readable regular file. A missing
// optional file only degrades the report.
func FileCheck(name, path string, required bool) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{
			Name:    name,
			Status:  StatusHealthy,
			Details: map[string]interface{}{"path": path},
		}

		info, err := os.Stat(path)
		switch {
		case err != nil && required:
			result.Status = StatusUnhealthy
			result.Message = err.Error()
		case err != nil:
			result.Status = StatusDegraded
			result.Message = "not present yet"
		case info.IsDir():
			result.Status = StatusUnhealthy
			result.Message = "is a directory"
		default:
			result.Message = fmt.Sprintf("%d bytes", info.Size())
		}
		return result
	})
}

// DirWritableCheck verifies that files can be created below dir. The
// directory is created when missing.
func DirWritableCheck(name, dir string) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{
			Name:    name,
			Status:  StatusHealthy,
			Details: map[string]interface{}{"path": dir},
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			result.Status = StatusUnhealthy
			result.Message = err.Error()
			return result
		}
		f, err := os.CreateTemp(dir, ".check-*")
		if err != nil {
			result.Status = StatusUnhealthy
			result.Message = err.Error()
			return result
		}
		f.Close()
		os.Remove(f.Name())

		result.Message = "writable"
		return result
	})
}

// ReachableCheck runs probe against url. A file at fallback, when given,
// turns a failed probe into a degraded result.
func ReachableCheck(name, url, fallback string, probe func(ctx context.Context, url string) error) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{
			Name:    name,
			Status:  StatusHealthy,
			Details: map[string]interface{}{"url": url},
		}

		err := probe(ctx, url)
		if err == nil {
			result.Message = "reachable"
			return result
		}

		result.Message = err.Error()
		result.Status = StatusUnhealthy
		if fallback != "" {
			if _, statErr := os.Stat(fallback); statErr == nil {
				result.Status = StatusDegraded
				result.Message = "unreachable, using cache " + filepath.Base(fallback)
			}
		}
		return result
	})
}
