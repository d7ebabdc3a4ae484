// Package loader turns raw codebook documents into validated, ordered
// collections. Each record goes through its schema, then its consistency
// rules; records with fatal issues are excluded and reported, records with
// warnings are kept with the warnings attached.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/dsl"
	"github.com/reoring/codebook/record"
	"github.com/reoring/codebook/rules"
)

// Options configures a Loader.
type Options struct {
	// Policy overrides the policy carried by the Load context.
	Policy *codebook.Policy
	// Concurrency bounds how many documents are validated at once. Values
	// below 2 validate sequentially.
	Concurrency int
	// Logger receives progress and rejection logs. Nil discards them.
	Logger *slog.Logger
}

// Loader validates document sets. It holds no per-load state and may be
// reused concurrently.
type Loader struct {
	opts Options
	log  *slog.Logger
}

// New returns a Loader configured by opts.
func New(opts Options) *Loader {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Loader{opts: opts, log: log}
}

// Load validates docs and returns their collections. It never panics and
// never stops at a bad document: every problem is reported in the Result.
// Canceling ctx stops validation of documents not yet started; they are
// reported as canceled.
func (l *Loader) Load(ctx context.Context, docs []Document) *Result {
	if ctx == nil {
		ctx = context.Background()
	}
	if l.opts.Policy != nil {
		ctx = codebook.WithPolicy(ctx, *l.opts.Policy)
	}
	runID := uuid.New().String()
	log := l.log.With(slog.String("run_id", runID))
	log.Info("load started", slog.Int("documents", len(docs)), slog.Int("concurrency", max(l.opts.Concurrency, 1)))

	outs := make([]outcome, len(docs))
	l.validateAll(ctx, log, docs, outs)
	res := assemble(ctx, runID, docs, outs)

	for _, f := range res.Failures() {
		log.Warn("document rejected",
			slog.String("id", f.DocumentID),
			slog.String("kind", string(f.Kind)),
			slog.Int("issues", len(f.Issues)),
			slog.String("first", first(f.Issues)))
	}
	log.Info("load finished",
		slog.Int("columns", len(res.Columns.Records)),
		slog.Int("analyses", len(res.Analyses.Records)),
		slog.Int("summaries", len(res.Summary.Records)),
		slog.Int("failures", len(res.Failures())))
	return res
}

// Load validates docs with a default Loader.
func Load(ctx context.Context, docs []Document) *Result { return New(Options{}).Load(ctx, docs) }

func (l *Loader) validateAll(ctx context.Context, log *slog.Logger, docs []Document, outs []outcome) {
	if l.opts.Concurrency < 2 {
		for i, doc := range docs {
			if err := ctx.Err(); err != nil {
				outs[i] = canceled(doc, err)
				continue
			}
			outs[i] = validateDocument(ctx, log, doc)
		}
		return
	}

	sem := semaphore.NewWeighted(int64(l.opts.Concurrency))
	var wg sync.WaitGroup
	for i, doc := range docs {
		if err := sem.Acquire(ctx, 1); err != nil {
			outs[i] = canceled(doc, err)
			continue
		}
		wg.Add(1)
		go func(i int, doc Document) {
			defer wg.Done()
			defer sem.Release(1)
			if err := ctx.Err(); err != nil {
				outs[i] = canceled(doc, err)
				return
			}
			outs[i] = validateDocument(ctx, log, doc)
		}(i, doc)
	}
	wg.Wait()
}

// outcome is what validating one document produced, before collection-wide
// checks run.
type outcome struct {
	kind    Kind
	entries []entry
}

// entry is one record of a document, or the document itself when it failed
// as a whole or carries warnings that belong to no record.
type entry struct {
	id     string
	key    string
	value  any
	issues codebook.Issues
	notice bool
}

func (e entry) fatal() bool { return e.value == nil || e.issues.HasFatal() }

func failed(doc Document, iss codebook.Issues) outcome {
	return outcome{kind: doc.Kind, entries: []entry{{id: doc.ID, issues: iss}}}
}

func canceled(doc Document, err error) outcome {
	return failed(doc, codebook.Issues{codebook.Canceled(err)})
}

func validateDocument(ctx context.Context, log *slog.Logger, doc Document) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("validation panicked", slog.String("id", doc.ID), slog.Any("panic", r))
			out = failed(doc, codebook.Issues{codebook.IssueAt(codebook.Root(), codebook.CodeParseError,
				fmt.Sprintf("validation panicked: %v", r), nil)})
		}
	}()
	if doc.Issues.HasFatal() {
		return failed(doc, doc.Issues)
	}
	// Records append to the document's issues; keep the caller's slice intact.
	doc.Issues = slices.Clip(doc.Issues)

	switch doc.Kind {
	case KindColumns:
		out = validateColumns(ctx, doc)
	case KindDemographicAnalysis:
		v, iss := judge(ctx, doc.Value, record.ValidateDemographicAnalysis, rules.CheckDemographicAnalysis)
		out = outcome{kind: doc.Kind, entries: []entry{{id: doc.ID, value: v, issues: append(doc.Issues, iss...)}}}
	case KindFeatureImportanceSummary:
		v, iss := judge(ctx, doc.Value, record.ValidateFeatureImportanceSummary, rules.CheckSummary)
		out = outcome{kind: doc.Kind, entries: []entry{{id: doc.ID, value: v, issues: append(doc.Issues, iss...)}}}
	default:
		out = failed(doc, codebook.Issues{codebook.IssueAt(codebook.Root(), codebook.CodeParseError,
			fmt.Sprintf("unknown document kind %q", doc.Kind), map[string]any{"kind": string(doc.Kind)})})
	}
	log.Debug("document validated", slog.String("id", doc.ID), slog.String("kind", string(doc.Kind)), slog.Int("records", len(out.entries)))
	return out
}

// judge validates raw and, when the schema holds, runs the record's
// consistency rules. The value is nil when the schema failed.
func judge[T any](ctx context.Context, raw any,
	validate func(context.Context, any) (T, codebook.Issues),
	check func(context.Context, T) codebook.Issues,
) (any, codebook.Issues) {
	v, iss := validate(ctx, raw)
	if iss.HasFatal() {
		return nil, iss
	}
	return v, append(iss, check(ctx, v)...)
}

// validateColumns splits a columns document into one record per key.
func validateColumns(ctx context.Context, doc Document) outcome {
	root, ok := codebook.AsObject(doc.Value)
	if !ok {
		return failed(doc, append(doc.Issues, codebook.TypeMismatch(codebook.Root(), dsl.ShapeObject, dsl.ShapeOf(doc.Value))))
	}
	base := codebook.Root()
	if v, ok := root.Get("columns"); ok {
		inner, ok := codebook.AsObject(v)
		if !ok {
			return failed(doc, append(doc.Issues, codebook.TypeMismatch(base.Field("columns"), dsl.ShapeObject, dsl.ShapeOf(v))))
		}
		root, base = inner, base.Field("columns")
	}

	docIssues := doc.Issues
	out := outcome{kind: doc.Kind, entries: make([]entry, 0, root.Len()+1)}
	root.Range(func(key string, raw any) bool {
		at := base.Field(key).Pointer()
		var own codebook.Issues
		own, docIssues = claim(docIssues, at)
		v, iss := judge(ctx, raw, record.ValidateColumn, rules.CheckColumn)
		out.entries = append(out.entries, entry{
			id:     doc.ID + "#" + key,
			key:    key,
			value:  v,
			issues: append(own, iss...),
		})
		return true
	})
	if len(docIssues) > 0 {
		out.entries = append(out.entries, entry{id: doc.ID, issues: docIssues, notice: true})
	}
	return out
}

// claim moves the issues located under prefix out of iss, rebasing their
// paths onto the record.
func claim(iss codebook.Issues, prefix string) (mine, rest codebook.Issues) {
	for _, it := range iss {
		switch {
		case it.Path == prefix:
			it.Path = "/"
		case strings.HasPrefix(it.Path, prefix+"/"):
			it.Path = strings.TrimPrefix(it.Path, prefix)
		default:
			rest = append(rest, it)
			continue
		}
		mine = append(mine, it)
	}
	return mine, rest
}

func first(iss codebook.Issues) string {
	if len(iss) == 0 {
		return ""
	}
	return iss[0].String()
}
