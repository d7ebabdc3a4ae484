package codebook

import "context"

// ---- Validation-time context options ----

type contextKey int

const (
	_ctxKeyPolicy contextKey = iota
)

// WithPolicy returns a child context carrying p. Record schemas and rule sets
// read it through PolicyFrom.
func WithPolicy(ctx context.Context, p Policy) context.Context {
	return context.WithValue(ctx, _ctxKeyPolicy, p)
}

// PolicyFrom returns the policy stored in ctx, or DefaultPolicy.
func PolicyFrom(ctx context.Context) Policy {
	if ctx == nil {
		return DefaultPolicy()
	}
	if p, ok := ctx.Value(_ctxKeyPolicy).(Policy); ok {
		return p
	}
	return DefaultPolicy()
}
