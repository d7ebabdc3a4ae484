package record_test

import (
	"context"
	"testing"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/source"
)

// tree decodes a JSON literal the way the loader does.
func tree(t *testing.T, src string) any {
	t.Helper()
	v, iss := source.Decode([]byte(src), source.FormatJSON, codebook.DefaultPolicy())
	if iss.HasFatal() {
		t.Fatalf("decode: %v", iss)
	}
	return v
}

func legacyCtx() context.Context {
	pol := codebook.DefaultPolicy()
	pol.AcceptLegacy = true
	return codebook.WithPolicy(context.Background(), pol)
}

func only(t *testing.T, iss codebook.Issues, code, path string) codebook.Issue {
	t.Helper()
	if len(iss) != 1 {
		t.Fatalf("want exactly one issue, got %d: %v", len(iss), iss)
	}
	if iss[0].Code != code || iss[0].Path != path {
		t.Fatalf("want %s at %s, got %s", code, path, iss[0])
	}
	return iss[0]
}
