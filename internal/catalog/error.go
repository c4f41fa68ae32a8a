package catalog

import "fmt"

// ConsistencyError reports that the analyzer produced a cause identifier
// the catalog cannot render, or that a template kept an unfilled
// placeholder. Both mean the handler table and the template store are
// out of sync. This is surfaced as a hard error instead of being
// swallowed: masking it would silently ship broken diagnostics.
type ConsistencyError struct {
	Key         string
	Locale      string
	Placeholder string
}

func (e *ConsistencyError) Error() string {
	if e.Placeholder != "" {
		return fmt.Sprintf("catalog: template %q (%s) left placeholder %s unrendered", e.Key, e.Locale, e.Placeholder)
	}
	return fmt.Sprintf("catalog: no template for cause %q in any locale (looked in %s and default)", e.Key, e.Locale)
}
