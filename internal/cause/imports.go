package cause

import (
	"regexp"

	"tracewise/internal/catalog"
	"tracewise/internal/suggest"
)

var (
	noModuleRe     = regexp.MustCompile(`No module named '([^']+)'`)
	cannotImportRe = regexp.MustCompile(`cannot import name '([^']+)' from '([^']+)'`)
)

// explainImport diagnoses a failed import: either the module itself is
// unknown (suggest close well-known module names) or a name inside an
// existing module is (suggest from the module's members).
func explainImport(ctx *Context) Explanation {
	message := ctx.Instance.Message

	if m := noModuleRe.FindStringSubmatch(message); m != nil {
		pool := []suggest.Pool{{Scope: suggest.ScopeBuiltin, Names: wellKnownModuleNames()}}
		return Explanation{
			CauseID:     "import.no-module",
			Params:      []catalog.Param{catalog.P("module", m[1])},
			Suggestions: ctx.Similar(m[1], pool),
		}
	}

	if m := cannotImportRe.FindStringSubmatch(message); m != nil {
		return Explanation{
			CauseID: "import.cannot-import-name",
			Params: []catalog.Param{
				catalog.P("name", m[1]),
				catalog.P("module", m[2]),
			},
			Suggestions: ctx.Similar(m[1], ctx.MemberPool()),
		}
	}

	return explainGeneric(ctx)
}
