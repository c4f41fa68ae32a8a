package cause

import (
	"regexp"

	"tracewise/internal/catalog"
)

var (
	moduleAttrRe = regexp.MustCompile(`module '([^']+)' has no attribute '([^']+)'`)
	objectAttrRe = regexp.MustCompile(`'([^']+)' object has no attribute '([^']+)'`)
)

// Known cross-type slips: the member exists under another name on this
// type. Checked before fuzzy matching because the edit distance between
// e.g. "add" and "append" is too large to be found by it.
var attrSynonyms = map[string]map[string]string{
	"list": {"add": "append", "push": "append", "union": "extend"},
	"set":  {"append": "add", "push": "add", "extend": "update"},
	"dict": {"append": "update", "add": "update"},
	"str":  {"append": "join", "add": "join"},
}

// explainAttribute diagnoses a member lookup that failed. The candidate
// pool is the offending object's own members, when the harness could
// collect them.
func explainAttribute(ctx *Context) Explanation {
	message := ctx.Instance.Message

	if m := moduleAttrRe.FindStringSubmatch(message); m != nil {
		return Explanation{
			CauseID: "attribute.module",
			Params: []catalog.Param{
				catalog.P("module", m[1]),
				catalog.P("name", m[2]),
			},
			Suggestions: ctx.Similar(m[2], ctx.MemberPool()),
		}
	}

	m := objectAttrRe.FindStringSubmatch(message)
	if m == nil {
		return explainGeneric(ctx)
	}
	typeName, attrName := m[1], m[2]

	if synonym, ok := attrSynonyms[typeName][attrName]; ok {
		return Explanation{
			CauseID: "attribute.synonym",
			Params: []catalog.Param{
				catalog.P("type", typeName),
				catalog.P("name", attrName),
				catalog.P("synonym", synonym),
			},
		}
	}

	return Explanation{
		CauseID: "attribute.unknown",
		Params: []catalog.Param{
			catalog.P("type", typeName),
			catalog.P("name", attrName),
		},
		Suggestions: ctx.Similar(attrName, ctx.MemberPool()),
	}
}
