package cause

import (
	"strings"

	"tracewise/internal/catalog"
)

// explainZeroDivision separates true division from modulo by looking at
// the faulting line: the native message ("integer division or modulo by
// zero") often cannot tell them apart on its own.
func explainZeroDivision(ctx *Context) Explanation {
	modulo := strings.Contains(ctx.Instance.Message, "modulo") &&
		!strings.Contains(ctx.Instance.Message, "division")
	if ctx.Frame != nil && strings.Contains(ctx.Frame.LineText, "%") {
		modulo = true
	}
	if modulo {
		return Explanation{CauseID: "zero-division.modulo"}
	}
	return Explanation{CauseID: "zero-division.division"}
}

func explainOverflow(ctx *Context) Explanation {
	return Explanation{
		CauseID: "overflow.generic",
		Params:  []catalog.Param{catalog.P("message", ctx.Instance.Message)},
	}
}
