package cause

import (
	"regexp"

	"tracewise/internal/catalog"
	"tracewise/internal/suggest"
)

var (
	nameNotDefinedRe = regexp.MustCompile(`name '([^']+)' is not defined`)
	unboundLocalRe   = regexp.MustCompile(
		`(?:local variable '([^']+)' referenced before assignment|cannot access local variable '([^']+)')`)
)

// explainName diagnoses "unknown name" errors: the program used a name
// that exists nowhere in scope. Suggestions search every scope in
// priority order; a name matching a well-known module hints at a
// forgotten import instead.
func explainName(ctx *Context) Explanation {
	m := nameNotDefinedRe.FindStringSubmatch(ctx.Instance.Message)
	if m == nil {
		return explainGeneric(ctx)
	}
	name := m[1]

	expl := Explanation{
		CauseID:     "name.not-defined",
		Params:      []catalog.Param{catalog.P("name", name)},
		Suggestions: ctx.Similar(name, ctx.ScopePools()),
	}
	if isWellKnownModule(name) {
		expl.CauseID = "name.stdlib-module"
	}
	return expl
}

// explainUnboundLocal diagnoses a local used before the function
// assigned it. The name is not missing, only premature, so suggestions
// come from the scopes the author may have meant instead: enclosing
// and module scope.
func explainUnboundLocal(ctx *Context) Explanation {
	m := unboundLocalRe.FindStringSubmatch(ctx.Instance.Message)
	if m == nil {
		return explainGeneric(ctx)
	}
	name := m[1]
	if name == "" {
		name = m[2]
	}

	var pools []suggest.Pool
	if ctx.Frame != nil {
		pools = []suggest.Pool{
			{Scope: suggest.ScopeEnclosing, Names: ctx.Frame.Enclosing.Names()},
			{Scope: suggest.ScopeGlobal, Names: ctx.Frame.Globals.Names()},
		}
	}
	return Explanation{
		CauseID:     "unbound-local.before-assignment",
		Params:      []catalog.Param{catalog.P("name", name)},
		Suggestions: ctx.Similar(name, pools),
		Scopes:      []suggest.Scope{suggest.ScopeEnclosing, suggest.ScopeGlobal},
	}
}

// Names of modules a beginner plausibly uses without importing.
// Mirrors the common prelude of teaching environments.
var wellKnownModules = map[string]struct{}{
	"math": {}, "os": {}, "sys": {}, "json": {}, "re": {}, "random": {},
	"time": {}, "datetime": {}, "string": {}, "itertools": {}, "functools": {},
	"collections": {}, "pathlib": {}, "subprocess": {}, "turtle": {},
}

func isWellKnownModule(name string) bool {
	_, ok := wellKnownModules[name]
	return ok
}

// wellKnownModuleNames returns the module pool for import suggestions.
func wellKnownModuleNames() []string {
	out := make([]string, 0, len(wellKnownModules))
	for name := range wellKnownModules {
		out = append(out, name)
	}
	return out
}
