// Package engine is the façade tying the pipeline together: a captured
// error instance flows through hydration, location resolution, cause
// analysis and formatting in one synchronous pass. The result exposes
// three granularities of the same computation: the structured
// explanation, the individual report sections, and the assembled text.
//
// The catalog and the handler table are immutable after construction,
// but the source cache grows as frames hydrate, so concurrent callers
// should use one engine each; engines may share a loaded catalog via
// NewWithCatalog.
package engine

import (
	"fmt"

	"tracewise/internal/capture"
	"tracewise/internal/catalog"
	"tracewise/internal/cause"
	"tracewise/internal/locate"
	"tracewise/internal/report"
	"tracewise/internal/source"
)

// Engine explains captured errors.
type Engine struct {
	cfg      Config
	analyzer *cause.Analyzer
	catalog  *catalog.Catalog
	sources  *source.Cache
}

// New builds an engine with the bundled catalog.
func New(cfg Config) (*Engine, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return NewWithCatalog(cfg, cat), nil
}

// NewWithCatalog builds an engine around an already loaded catalog, so
// short-lived engines can share one template store.
func NewWithCatalog(cfg Config, cat *catalog.Catalog) *Engine {
	return &Engine{
		cfg:      cfg,
		analyzer: cause.NewAnalyzer(cfg.suggestOptions()),
		catalog:  cat,
		sources:  source.NewCache(),
	}
}

// Catalog exposes the loaded template store, e.g. for locale listings.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// AddSource registers in-memory source text under a name, so frames
// referencing that origin can be hydrated without touching disk.
func (e *Engine) AddSource(name string, content []byte) {
	e.sources.AddVirtual(name, content)
}

// Result is one finished explanation. Explanation is the structured
// record for programmatic consumers; Report carries the localized
// sections and assembles the full text. Both come from a single
// analysis pass.
type Result struct {
	Explanation cause.Explanation
	Report      *report.Report
}

// Text returns the fully assembled report.
func (r *Result) Text() string {
	return r.Report.Text()
}

// Explain runs the pipeline for one instance. An empty locale means the
// engine's configured default. The only failures are an invalid
// instance and an internal catalog inconsistency; everything else
// degrades inside the report.
func (e *Engine) Explain(inst *capture.ErrorInstance, locale string) (*Result, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if locale == "" {
		locale = e.cfg.Locale
	}

	capture.Hydrate(inst, e.sources)
	e.resolveSyntaxSpan(inst)

	expl := e.analyzer.Analyze(inst)
	rep, err := report.Format(e.catalog, expl, inst, locale)
	if err != nil {
		return nil, err
	}
	return &Result{Explanation: expl, Report: rep}, nil
}

// resolveSyntaxSpan narrows a bare (line, col) syntax position to the
// smallest enclosing construct. A span the runtime already delimited is
// kept as is.
func (e *Engine) resolveSyntaxSpan(inst *capture.ErrorInstance) {
	loc := inst.Syntax
	if loc == nil || loc.LineText == "" {
		return
	}
	if loc.ColEnd > loc.ColStart && loc.NodeKind != "" {
		return
	}

	resolved := locate.ResolveLine(loc.Origin, loc.LineText, loc.Line, loc.ColStart)
	if loc.ColEnd <= loc.ColStart {
		loc.ColStart = resolved.ColStart
		loc.ColEnd = resolved.ColEnd
	}
	if loc.NodeKind == "" {
		loc.NodeKind = resolved.NodeKind
	}
}
