package cause

import (
	"tracewise/internal/capture"
	"tracewise/internal/catalog"
	"tracewise/internal/suggest"
)

// Explanation is the structured diagnosis of one error instance. The
// cause identifier is a stable catalog key, never localized text, and
// every parameter value is already a final locale-independent string.
type Explanation struct {
	CauseID string
	Params  []catalog.Param
	// Suggestions is the ranked "did you mean" list; empty when the
	// cause involves no identifier lookup or nothing matched.
	Suggestions suggest.List
	// Scopes lists the binding scopes worth showing in the variable
	// listing; nil means every scope of the frame.
	Scopes []suggest.Scope
}

// Context carries the inputs a handler may inspect: the instance, its
// innermost frame (nil for syntax errors), and the suggestion tuning.
type Context struct {
	Instance *capture.ErrorInstance
	Frame    *capture.FrameRecord
	Options  suggest.Options
}

// Similar runs the suggestion engine over the given pools.
func (c *Context) Similar(query string, pools []suggest.Pool) suggest.List {
	return suggest.Similar(query, pools, c.Options)
}

// ScopePools assembles the standard candidate pools in priority order:
// local scope, then enclosing, then module globals, then builtins.
func (c *Context) ScopePools() []suggest.Pool {
	var pools []suggest.Pool
	if c.Frame != nil {
		pools = append(pools,
			suggest.Pool{Scope: suggest.ScopeLocal, Names: c.Frame.Locals.Names()},
			suggest.Pool{Scope: suggest.ScopeEnclosing, Names: c.Frame.Enclosing.Names()},
			suggest.Pool{Scope: suggest.ScopeGlobal, Names: c.Frame.Globals.Names()},
		)
	}
	pools = append(pools, suggest.Pool{Scope: suggest.ScopeBuiltin, Names: c.Instance.Builtins})
	return pools
}

// MemberPool is the attribute/key candidate pool collected from the
// offending object, when the harness supplied one.
func (c *Context) MemberPool() []suggest.Pool {
	return []suggest.Pool{{Scope: suggest.ScopeAttribute, Names: c.Instance.Members}}
}
