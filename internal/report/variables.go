package report

import (
	"strings"

	"tracewise/internal/capture"
	"tracewise/internal/suggest"
)

const maxValueWidth = 64

// variableListing renders the bindings relevant to the faulting line:
// only names that actually appear on the line, looked up in the given
// scopes (nil means local, enclosing and global). Each name is shown
// once, from the highest-priority scope that binds it.
func variableListing(frame *capture.FrameRecord, scopes []suggest.Scope) string {
	if frame == nil || frame.LineText == "" {
		return ""
	}
	if scopes == nil {
		scopes = []suggest.Scope{suggest.ScopeLocal, suggest.ScopeEnclosing, suggest.ScopeGlobal}
	}

	var b strings.Builder
	for _, name := range identifiersOnLine(frame.LineText) {
		binding, scope, ok := lookupInScopes(frame, name, scopes)
		if !ok {
			continue
		}
		b.WriteString("    ")
		b.WriteString(name)
		b.WriteString(" = ")
		b.WriteString(shortenValue(binding.Display()))
		b.WriteString("  (")
		b.WriteString(scope.String())
		b.WriteString(")\n")
	}
	return b.String()
}

func lookupInScopes(frame *capture.FrameRecord, name string, scopes []suggest.Scope) (*capture.Binding, suggest.Scope, bool) {
	for _, scope := range scopes {
		var bindings capture.Bindings
		switch scope {
		case suggest.ScopeLocal:
			bindings = frame.Locals
		case suggest.ScopeEnclosing:
			bindings = frame.Enclosing
		case suggest.ScopeGlobal:
			bindings = frame.Globals
		default:
			continue
		}
		if b, ok := bindings.Lookup(name); ok {
			return b, scope, true
		}
	}
	return nil, 0, false
}

func shortenValue(value string) string {
	// значения приходят уже строками; обрезаем только для отчёта
	if idx := strings.IndexByte(value, '\n'); idx >= 0 {
		value = value[:idx] + "..."
	}
	runes := []rune(value)
	if len(runes) <= maxValueWidth {
		return value
	}
	return string(runes[:maxValueWidth-3]) + "..."
}
