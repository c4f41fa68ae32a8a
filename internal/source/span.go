package source

import (
	"fmt"
)

// Span is a half-open byte range inside one origin.
type Span struct {
	Origin OriginID
	Start  uint32 // включительно
	End    uint32 // не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

// Contains reports whether the byte offset off falls inside the span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off < s.End
}

// Covers reports whether other lies entirely inside s.
func (s Span) Covers(other Span) bool {
	return s.Origin == other.Origin && s.Start <= other.Start && other.End <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Origin, s.Start, s.End)
}
