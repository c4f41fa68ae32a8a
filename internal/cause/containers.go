package cause

import (
	"regexp"
	"strings"

	"tracewise/internal/catalog"
)

var indexOutOfRangeRe = regexp.MustCompile(`(\w+) index out of range`)

func explainIndex(ctx *Context) Explanation {
	container := "sequence"
	if m := indexOutOfRangeRe.FindStringSubmatch(ctx.Instance.Message); m != nil {
		container = m[1]
	}
	return Explanation{
		CauseID: "index.out-of-range",
		Params:  []catalog.Param{catalog.P("container", container)},
	}
}

// explainKey diagnoses a missing mapping key. The native message is the
// repr of the key itself; the member pool carries the mapping's actual
// keys when the harness collected them.
func explainKey(ctx *Context) Explanation {
	key := strings.TrimSpace(ctx.Instance.Message)
	key = strings.Trim(key, `'"`)
	if key == "" {
		return explainGeneric(ctx)
	}
	return Explanation{
		CauseID:     "key.missing",
		Params:      []catalog.Param{catalog.P("key", key)},
		Suggestions: ctx.Similar(key, ctx.MemberPool()),
	}
}

func explainValue(ctx *Context) Explanation {
	if strings.Contains(ctx.Instance.Message, "math domain error") {
		return Explanation{CauseID: "value.math-domain"}
	}
	return Explanation{
		CauseID: "value.generic",
		Params:  []catalog.Param{catalog.P("message", ctx.Instance.Message)},
	}
}
