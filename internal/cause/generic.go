package cause

import (
	"tracewise/internal/catalog"
)

// explainGeneric is the fallback for kinds without a specific handler
// and for handlers whose message pattern did not match: it relays the
// native message and attempts no deeper diagnosis.
func explainGeneric(ctx *Context) Explanation {
	return Explanation{
		CauseID: "generic.fallback",
		Params:  []catalog.Param{catalog.P("message", ctx.Instance.Message)},
	}
}

// AllCauseIDs lists every cause identifier the built-in handlers can
// produce. The catalog's default locale must cover each one; a test
// keeps the two in sync.
var AllCauseIDs = []string{
	"name.not-defined",
	"name.stdlib-module",
	"unbound-local.before-assignment",
	"attribute.unknown",
	"attribute.module",
	"attribute.synonym",
	"import.no-module",
	"import.cannot-import-name",
	"type.unsupported-operand",
	"type.not-callable",
	"type.arg-count",
	"type.generic",
	"value.math-domain",
	"value.generic",
	"index.out-of-range",
	"key.missing",
	"zero-division.division",
	"zero-division.modulo",
	"overflow.generic",
	"file-not-found",
	"os.generic",
	"syntax.unclosed-bracket",
	"syntax.eol-string",
	"syntax.assign-to-literal",
	"syntax.invalid",
	"generic.fallback",
	"internal.handler-failure",
}
