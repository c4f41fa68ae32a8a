// Package cause diagnoses why a captured error occurred. One handler
// per error kind inspects the error instance and its innermost frame
// and produces a structured, locale-independent explanation record;
// kinds without a handler fall through to a generic one that only
// relays the native message.
//
// Handlers are pure functions of their inputs. The analyzer itself
// holds only the immutable dispatch table, so one analyzer may serve
// unrelated error instances concurrently.
package cause

import (
	"tracewise/internal/capture"
	"tracewise/internal/catalog"
	"tracewise/internal/suggest"
)

// Handler diagnoses one error kind.
type Handler func(ctx *Context) Explanation

// Analyzer dispatches a captured error to the handler registered for
// its kind.
type Analyzer struct {
	handlers map[capture.Kind]Handler
	opts     suggest.Options
}

// NewAnalyzer builds an analyzer with the built-in handler table.
func NewAnalyzer(opts suggest.Options) *Analyzer {
	a := &Analyzer{
		handlers: make(map[capture.Kind]Handler),
		opts:     opts,
	}
	a.Register(capture.KindName, explainName)
	a.Register(capture.KindUnboundLocal, explainUnboundLocal)
	a.Register(capture.KindAttribute, explainAttribute)
	a.Register(capture.KindImport, explainImport)
	a.Register(capture.KindType, explainType)
	a.Register(capture.KindValue, explainValue)
	a.Register(capture.KindIndex, explainIndex)
	a.Register(capture.KindKey, explainKey)
	a.Register(capture.KindZeroDivision, explainZeroDivision)
	a.Register(capture.KindOverflow, explainOverflow)
	a.Register(capture.KindFileNotFound, explainFileNotFound)
	a.Register(capture.KindOS, explainOS)
	a.Register(capture.KindSyntax, explainSyntax)
	return a
}

// Register adds or replaces the handler for a kind. The built-in set is
// closed, but hosts may explain their own kinds.
func (a *Analyzer) Register(kind capture.Kind, h Handler) {
	a.handlers[kind] = h
}

// Analyze produces exactly one explanation for the instance. It never
// panics: a misbehaving handler degrades to an internal-failure cause
// that still renders, because refusing to explain an error inside the
// error explainer helps nobody.
func (a *Analyzer) Analyze(inst *capture.ErrorInstance) (expl Explanation) {
	ctx := &Context{
		Instance: inst,
		Frame:    inst.LastFrame(),
		Options:  a.opts,
	}

	defer func() {
		if recover() != nil {
			expl = Explanation{
				CauseID: "internal.handler-failure",
				Params:  []catalog.Param{catalog.P("message", inst.Message)},
			}
		}
	}()

	handler, ok := a.handlers[inst.Kind]
	if !ok {
		return explainGeneric(ctx)
	}
	return handler(ctx)
}
