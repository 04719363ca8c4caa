package errors

import (
	"fmt"
	"testing"
)

func TestToToolErrorWrapsUnknown(t *testing.T) {
	err := ToToolError(fmt.Errorf("boom: password=secret"))
	if err.Code != CodeInternalError {
		t.Fatalf("expected internal error code, got %s", err.Code)
	}
	if err.Details["cause"] == "boom: password=secret" {
		t.Fatalf("expected scrubbed cause, got %v", err.Details["cause"])
	}
}

func TestToToolErrorKeepsWrappedSiteError(t *testing.T) {
	base := NewSchema("avg_lmp")
	err := ToToolError(fmt.Errorf("load: %w", base))
	if err != base {
		t.Fatalf("expected wrapped site error to be unwrapped, got %v", err)
	}
	if !IsSchema(fmt.Errorf("load: %w", base)) {
		t.Fatalf("expected IsSchema on wrapped error")
	}
}

func TestNewConfiguration(t *testing.T) {
	e := NewConfiguration("bad load type", "hint", map[string]any{"field": "load_type"})
	if e.Code != CodeConfiguration {
		t.Fatalf("expected %s, got %s", CodeConfiguration, e.Code)
	}
	if !IsConfiguration(e) {
		t.Fatalf("expected IsConfiguration")
	}
	if IsSchema(e) {
		t.Fatalf("configuration error is not a schema error")
	}
}

func TestScrubMasksDSNCredentials(t *testing.T) {
	got := scrub("dial postgres://grid:hunter2@db:5432/nodes failed")
	if got != "dial postgres://***@db:5432/nodes failed" {
		t.Fatalf("unexpected scrub: %s", got)
	}
	got = scrub("host=db password=hunter2 dbname=nodes")
	if got != "host=db password=*** dbname=nodes" {
		t.Fatalf("unexpected scrub: %s", got)
	}
}
