// Package report assembles the final explanation text: the why / what /
// where prose fragments, a source excerpt with the faulting span marked,
// and a listing of the variable values involved. Formatting is a pure
// function of the explanation, the catalog and the captured data - no
// I/O happens here.
package report

import (
	"fmt"
	"strings"

	"tracewise/internal/capture"
	"tracewise/internal/catalog"
	"tracewise/internal/cause"
	"tracewise/internal/locate"
	"tracewise/internal/suggest"
)

// Report is the rendered output for one error instance. Built once,
// never mutated afterwards.
type Report struct {
	// Why explains the diagnosed cause, including the "did you mean"
	// sentence when a suggestion exists.
	Why string
	// What describes what the error category generally means.
	What string
	// Where says where the error surfaced.
	Where string
	// Excerpt is the marked source block, "" when no source text is
	// available.
	Excerpt string
	// Variables lists the relevant bindings, "" when none apply.
	Variables string
	// CausedBy notes the chained error, if any.
	CausedBy string

	// Locale is the locale the text was actually rendered in.
	Locale string
	// UsedFallback reports whether any fragment fell back to the
	// default locale (unsupported locale or untranslated key).
	UsedFallback bool

	headers sectionHeaders
}

type sectionHeaders struct {
	why, what, where, variables string
}

// Format renders the report for one explanation in the requested
// locale. The only error it can return is a catalog.ConsistencyError:
// expected gaps (missing translations, absent source text, empty
// suggestion lists) degrade inside the report instead of failing it.
func Format(cat *catalog.Catalog, expl cause.Explanation, inst *capture.ErrorInstance, locale string) (*Report, error) {
	resolved, localeFellBack := cat.Resolve(locale)
	r := &Report{Locale: resolved, UsedFallback: localeFellBack}

	render := func(key string, params ...catalog.Param) (string, error) {
		text, fellBack, err := cat.Render(locale, key, params...)
		if err != nil {
			return "", err
		}
		if fellBack {
			r.UsedFallback = true
		}
		return text, nil
	}

	why, err := render(expl.CauseID, expl.Params...)
	if err != nil {
		return nil, err
	}
	if best := expl.Suggestions.Best(); best != "" {
		hint, err := render("suggest.did-you-mean", catalog.P("name", best))
		if err != nil {
			return nil, err
		}
		why = why + " " + hint
	}
	r.Why = why

	whatKey := "what." + string(inst.Kind)
	if !cat.Has(catalog.DefaultLocale, whatKey) {
		whatKey = "what.generic"
	}
	if r.What, err = render(whatKey); err != nil {
		return nil, err
	}

	if err := r.formatWhere(render, inst, expl.Scopes); err != nil {
		return nil, err
	}

	if inst.CausedBy != nil {
		if r.CausedBy, err = render("report.caused-by",
			catalog.P("message", inst.CausedBy.Message)); err != nil {
			return nil, err
		}
	}

	if err := r.formatHeaders(render); err != nil {
		return nil, err
	}
	return r, nil
}

type renderFunc func(key string, params ...catalog.Param) (string, error)

func (r *Report) formatWhere(render renderFunc, inst *capture.ErrorInstance, scopes []suggest.Scope) error {
	if inst.Syntax != nil {
		loc := inst.Syntax
		where, err := render("where.syntax",
			catalog.P("origin", originOrPlaceholder(loc.Origin)),
			catalog.P("line", fmt.Sprintf("%d", loc.Line)))
		if err != nil {
			return err
		}
		r.Where = where
		r.Excerpt = Excerpt(loc.Line, loc.LineText, loc.ColStart, loc.ColEnd)
		return nil
	}

	frame := inst.LastFrame()
	if frame == nil {
		return nil
	}

	var where string
	var err error
	if frame.Function != "" {
		where, err = render("where.runtime",
			catalog.P("origin", originOrPlaceholder(frame.Origin)),
			catalog.P("line", fmt.Sprintf("%d", frame.Line)),
			catalog.P("function", frame.Function))
	} else {
		where, err = render("where.runtime-module",
			catalog.P("origin", originOrPlaceholder(frame.Origin)),
			catalog.P("line", fmt.Sprintf("%d", frame.Line)))
	}
	if err != nil {
		return err
	}

	if _, skipped := inst.RenderableFrames(); skipped > 0 {
		summarized, err := render("where.frames-summarized",
			catalog.P("count", fmt.Sprintf("%d", skipped)))
		if err != nil {
			return err
		}
		where = where + " " + summarized
	}
	r.Where = where

	colStart, colEnd := frame.ColStart, frame.ColEnd
	r.Excerpt = Excerpt(frame.Line, frame.LineText, colStart, colEnd)
	r.Variables = variableListing(frame, scopes)
	return nil
}

func (r *Report) formatHeaders(render renderFunc) error {
	var err error
	if r.headers.why, err = render("header.why"); err != nil {
		return err
	}
	if r.headers.what, err = render("header.what"); err != nil {
		return err
	}
	if r.headers.where, err = render("header.where"); err != nil {
		return err
	}
	r.headers.variables, err = render("header.variables")
	return err
}

// Text assembles the full report in the fixed section order.
func (r *Report) Text() string {
	var b strings.Builder

	section := func(header, body string) {
		if body == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(header)
		b.WriteString(": ")
		b.WriteString(body)
		b.WriteString("\n")
	}

	section(r.headers.why, r.Why)
	section(r.headers.what, r.What)
	section(r.headers.where, r.Where)

	if r.Excerpt != "" {
		b.WriteString("\n")
		b.WriteString(r.Excerpt)
	}
	if r.Variables != "" {
		b.WriteString("\n")
		b.WriteString(r.headers.variables)
		b.WriteString(":\n")
		b.WriteString(r.Variables)
	}
	if r.CausedBy != "" {
		b.WriteString("\n")
		b.WriteString(r.CausedBy)
		b.WriteString("\n")
	}
	return b.String()
}

func originOrPlaceholder(origin string) string {
	if origin == "" {
		return "<unknown source>"
	}
	return origin
}

// identifiersOnLine exposes the faulting line's identifiers for the
// variable listing.
func identifiersOnLine(lineText string) []string {
	return locate.Identifiers(lineText)
}
