package cause

import (
	"regexp"

	"tracewise/internal/catalog"
)

var missingFileRe = regexp.MustCompile(`No such file or directory: '([^']+)'`)

func explainFileNotFound(ctx *Context) Explanation {
	if m := missingFileRe.FindStringSubmatch(ctx.Instance.Message); m != nil {
		return Explanation{
			CauseID: "file-not-found",
			Params:  []catalog.Param{catalog.P("filename", m[1])},
		}
	}
	return explainOS(ctx)
}

func explainOS(ctx *Context) Explanation {
	return Explanation{
		CauseID: "os.generic",
		Params:  []catalog.Param{catalog.P("message", ctx.Instance.Message)},
	}
}
