package cause

import (
	"regexp"

	"tracewise/internal/catalog"
)

var (
	unsupportedOperandRe = regexp.MustCompile(
		`unsupported operand type\(s\) for ([^:]+): '([^']+)' and '([^']+)'`)
	notCallableRe = regexp.MustCompile(`'([^']+)' object is not callable`)
	argCountRe    = regexp.MustCompile(
		`(\w+)\(\) takes (\d+) positional arguments? but (\d+) (?:was|were) given`)
)

// explainType picks apart the native type-error message families:
// operand mismatch, calling a non-callable, wrong argument count.
// Unrecognized messages are relayed as-is rather than guessed at.
func explainType(ctx *Context) Explanation {
	message := ctx.Instance.Message

	if m := unsupportedOperandRe.FindStringSubmatch(message); m != nil {
		return Explanation{
			CauseID: "type.unsupported-operand",
			Params: []catalog.Param{
				catalog.P("op", m[1]),
				catalog.P("left", m[2]),
				catalog.P("right", m[3]),
			},
		}
	}

	if m := notCallableRe.FindStringSubmatch(message); m != nil {
		return Explanation{
			CauseID: "type.not-callable",
			Params:  []catalog.Param{catalog.P("type", m[1])},
		}
	}

	if m := argCountRe.FindStringSubmatch(message); m != nil {
		return Explanation{
			CauseID: "type.arg-count",
			Params: []catalog.Param{
				catalog.P("function", m[1]),
				catalog.P("expected", m[2]),
				catalog.P("got", m[3]),
			},
		}
	}

	return Explanation{
		CauseID: "type.generic",
		Params:  []catalog.Param{catalog.P("message", message)},
	}
}
