package capture

import (
	"errors"
)

// MaxRenderedFrames caps how many frames a report renders individually.
// Older frames beyond the cap are summarized as a count, so a deep
// recursion cannot blow up the output.
const MaxRenderedFrames = 25

var (
	// ErrNoLocation is returned when an instance has neither frames nor
	// a syntax location.
	ErrNoLocation = errors.New("capture: error instance needs frames or a syntax location")
	// ErrSyntaxNeedsLocation is returned when a syntax-kind instance
	// carries no SyntaxLocation.
	ErrSyntaxNeedsLocation = errors.New("capture: syntax error instance needs a syntax location")
)

// FrameRecord is one level of the propagation chain. Line is 1-based.
// ColStart is the 1-based byte column of the faulting span within the
// line and ColEnd is one past its last byte; both are zero when the
// runtime did not report a column span.
type FrameRecord struct {
	Origin   string // имя источника (файл, "<console>", ...)
	Line     uint32
	ColStart uint32
	ColEnd   uint32
	LineText string // literal source line, "" when unavailable
	Function string // enclosing function name, "" at module level

	Locals    Bindings
	Enclosing Bindings
	Globals   Bindings
}

// HasColumnSpan reports whether the runtime supplied a column span.
func (f *FrameRecord) HasColumnSpan() bool {
	return f.ColStart > 0 && f.ColEnd > f.ColStart
}

// SyntaxLocation pinpoints a syntax-level error: no executable frame
// exists, only a position in not-yet-runnable source.
type SyntaxLocation struct {
	Origin   string
	Line     uint32
	ColStart uint32
	ColEnd   uint32
	LineText string
	// NodeKind is the resolved description of the smallest enclosing
	// construct, e.g. "assignment target" or "function call";
	// "unknown" when resolution failed.
	NodeKind string
}

// ErrorInstance is the captured error handed to the engine: a kind tag,
// the runtime's native message, and either a non-empty frame chain
// (oldest call site first) or a single syntax location. Instances are
// immutable once captured; the engine holds no state across instances.
type ErrorInstance struct {
	Kind    Kind
	Message string

	// Frames is the propagation chain, oldest first. Empty for syntax
	// errors.
	Frames []FrameRecord
	// Syntax is set instead of Frames for syntax-level errors.
	Syntax *SyntaxLocation

	// Builtins lists the names of the runtime's builtin scope, used as
	// a suggestion pool. Optional.
	Builtins []string
	// Members lists attribute or key candidates of the offending
	// object, when the harness could collect them. Optional.
	Members []string

	// CausedBy is the directly chained error, one level deep, when the
	// captured error was raised while handling another one. Optional.
	CausedBy *ErrorInstance
}

// Validate checks the structural invariants of the instance.
func (e *ErrorInstance) Validate() error {
	if e.Kind.IsSyntax() {
		if e.Syntax == nil {
			return ErrSyntaxNeedsLocation
		}
		return nil
	}
	if len(e.Frames) == 0 && e.Syntax == nil {
		return ErrNoLocation
	}
	return nil
}

// LastFrame returns the innermost frame, where the error surfaced.
func (e *ErrorInstance) LastFrame() *FrameRecord {
	if len(e.Frames) == 0 {
		return nil
	}
	return &e.Frames[len(e.Frames)-1]
}

// RenderableFrames returns the frames worth rendering individually and
// the number of older frames that were summarized away.
func (e *ErrorInstance) RenderableFrames() ([]FrameRecord, int) {
	if len(e.Frames) <= MaxRenderedFrames {
		return e.Frames, 0
	}
	skipped := len(e.Frames) - MaxRenderedFrames
	return e.Frames[skipped:], skipped
}
