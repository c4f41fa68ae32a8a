package cause

import (
	"regexp"
	"strings"

	"tracewise/internal/catalog"
	"tracewise/internal/locate"
)

var neverClosedRe = regexp.MustCompile(`'([(\[{])' was never closed`)

// explainSyntax diagnoses errors raised before the program ran, using
// the resolved syntax location. The message families below cover the
// cases a diagnosis adds real value to; everything else reports the
// smallest construct enclosing the position.
func explainSyntax(ctx *Context) Explanation {
	message := ctx.Instance.Message
	loc := ctx.Instance.Syntax

	if m := neverClosedRe.FindStringSubmatch(message); m != nil {
		return Explanation{
			CauseID: "syntax.unclosed-bracket",
			Params:  []catalog.Param{catalog.P("bracket", m[1])},
		}
	}
	if strings.Contains(message, "unexpected EOF") && loc != nil {
		if bracket, ok := locate.UnclosedBracket(loc.LineText); ok {
			return Explanation{
				CauseID: "syntax.unclosed-bracket",
				Params:  []catalog.Param{catalog.P("bracket", bracket)},
			}
		}
	}

	if strings.Contains(message, "EOL while scanning string literal") ||
		strings.Contains(message, "unterminated string literal") {
		return Explanation{CauseID: "syntax.eol-string"}
	}

	if strings.Contains(message, "cannot assign to literal") {
		return Explanation{CauseID: "syntax.assign-to-literal"}
	}

	construct := locate.NodeUnknown
	if loc != nil && loc.NodeKind != "" {
		construct = loc.NodeKind
	}
	return Explanation{
		CauseID: "syntax.invalid",
		Params:  []catalog.Param{catalog.P("construct", construct)},
	}
}
