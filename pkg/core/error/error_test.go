package error

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeSamplingPlan, "dataset missing")

	if err.Code() != CodeSamplingPlan {
		t.Errorf("Code = %v, want %v", err.Code(), CodeSamplingPlan)
	}
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity = %v, want critical", err.Severity())
	}
	if err.Error() != "dataset missing" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrap_KeepsInnerCode(t *testing.T) {
	inner := New(CodeFetchFailed, "status 503").WithDetail("url", "https://example.dk")
	outer := Wrap(inner, CodeUnknown, "crawl failed").WithOperation("source.crawl")

	if outer.Code() != CodeFetchFailed {
		t.Errorf("Code = %v, want %v", outer.Code(), CodeFetchFailed)
	}
	if outer.Details()["url"] != "https://example.dk" {
		t.Errorf("details not copied: %v", outer.Details())
	}
	if !strings.HasPrefix(outer.Error(), "source.crawl: crawl failed: status 503") {
		t.Errorf("Error() = %q", outer.Error())
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap(nil, CodeIO, "x") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestHasCode_ThroughStdlibWrapping(t *testing.T) {
	base := New(CodeWeightMismatch, "2 weights for 3 datasets")
	err := fmt.Errorf("interleave: %w", base)

	if !HasCode(err, CodeWeightMismatch) {
		t.Error("HasCode should find code through fmt.Errorf wrapping")
	}
	if HasCode(err, CodeIO) {
		t.Error("HasCode should not report unrelated code")
	}
	if GetCode(err) != CodeWeightMismatch {
		t.Errorf("GetCode = %v", GetCode(err))
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode of plain error should be UNKNOWN")
	}
}

func TestIs_MatchesByCode(t *testing.T) {
	err := Wrap(errors.New("boom"), CodeStoreError, "insert failed")
	if !errors.Is(err, New(CodeStoreError, "")) {
		t.Error("errors.Is should match by code")
	}
	if errors.Is(err, New(CodeIO, "")) {
		t.Error("errors.Is should not match other codes")
	}
}

func TestDetailString_Sorted(t *testing.T) {
	err := New(CodeSamplingPlan, "x").WithDetail("b", 2).WithDetail("a", 1)
	if got := err.DetailString(); got != "a=1 b=2" {
		t.Errorf("DetailString = %q, want %q", got, "a=1 b=2")
	}
}
