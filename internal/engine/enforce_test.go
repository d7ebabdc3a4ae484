package engine_test

import (
	"encoding/json"
	"errors"
	"testing"

	codebook "github.com/reoring/codebook"
	eng "github.com/reoring/codebook/internal/engine"
)

// dupStream is {"x": {"a": 1, "a": 2}}.
func dupStream() []eng.Token {
	var f eng.Framer
	return []eng.Token{
		f.Delim('{', 0),
		f.String("x", 1),
		f.Delim('{', 2),
		f.String("a", 3),
		f.Number("1", 4),
		f.String("a", 5),
		f.Number("2", 6),
		f.Delim('}', 7),
		f.Delim('}', 8),
	}
}

func TestEnforce_DuplicateWarn(t *testing.T) {
	var got []eng.SimpleIssue
	src := eng.WrapWithEnforcement(eng.NewTokens(dupStream()), eng.EnforceOptions{
		OnDuplicate: eng.DupWarn,
		IssueSink:   func(si eng.SimpleIssue) { got = append(got, si) },
	})
	v, err := eng.DecodeTree(src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Code != eng.CodeDuplicateKey || got[0].Path != "/x/a" || got[0].Offset != 5 {
		t.Fatalf("issues: %+v", got)
	}
	x, _ := v.(*codebook.Object).Get("x")
	if a, _ := x.(*codebook.Object).Get("a"); a != json.Number("2") {
		t.Fatalf("last value should win: %v", a)
	}
}

func TestEnforce_DuplicateError(t *testing.T) {
	src := eng.WrapWithEnforcement(eng.NewTokens(dupStream()), eng.EnforceOptions{OnDuplicate: eng.DupError})
	_, err := eng.DecodeTree(src)
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Code != eng.CodeDuplicateKey {
		t.Fatalf("want duplicate IssueError, got %v", err)
	}
}

func TestEnforce_DuplicateIgnore(t *testing.T) {
	called := false
	src := eng.WrapWithEnforcement(eng.NewTokens(dupStream()), eng.EnforceOptions{
		OnDuplicate: eng.DupIgnore,
		IssueSink:   func(eng.SimpleIssue) { called = true },
	})
	if _, err := eng.DecodeTree(src); err != nil || called {
		t.Fatalf("err=%v called=%v", err, called)
	}
}

func TestEnforce_MaxDepth(t *testing.T) {
	var f eng.Framer
	toks := []eng.Token{
		f.Delim('{', 0), f.String("a", 1),
		f.Delim('[', 2),
		f.Delim('{', 3), f.Delim('}', 4),
		f.Delim(']', 5),
		f.Delim('}', 6),
	}
	src := eng.WrapWithEnforcement(eng.NewTokens(toks), eng.EnforceOptions{MaxDepth: 2})
	_, err := eng.DecodeTree(src)
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Code != eng.CodeParseError || ie.Path != "/a/0" {
		t.Fatalf("want depth failure at /a/0, got %v (%+v)", err, ie)
	}

	src = eng.WrapWithEnforcement(eng.NewTokens(toks), eng.EnforceOptions{MaxDepth: 3})
	if _, err := eng.DecodeTree(src); err != nil {
		t.Fatalf("depth 3 should pass: %v", err)
	}
}
