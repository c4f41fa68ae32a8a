package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// Cache manages a collection of source origins and resolves byte offsets
// to human-readable positions. Frames captured from a failing program
// reference origins by name; the cache is the single place that reads
// and normalizes their content.
type Cache struct {
	origins []Origin
	index   map[string]OriginID // name -> id (последняя версия)
}

// NewCache creates a new empty Cache.
func NewCache() *Cache {
	return &Cache{
		origins: make([]Origin, 0),
		index:   make(map[string]OriginID),
	}
}

// Add stores an origin from normalized bytes, computes LineIdx, and returns
// a new OriginID. It always creates a new OriginID even if an origin with
// the same name already exists.
func (c *Cache) Add(name string, content []byte, flags OriginFlags) OriginID {
	lineIdx := buildLineIndex(content)

	lenOrigins, err := safecast.Conv[uint32](len(c.origins))
	if err != nil {
		panic(fmt.Errorf("origin count overflow: %w", err))
	}
	id := OriginID(lenOrigins)
	c.origins = append(c.origins, Origin{
		ID:      id,
		Name:    name,
		Content: content,
		LineIdx: lineIdx,
		Flags:   flags,
	})
	// Всегда обновляем индекс на последнюю версию источника.
	c.index[name] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (c *Cache) Load(path string) (OriginID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := OriginFlags(0)
	if hadBOM {
		flags |= OriginHadBOM
	}
	if hadCRLF {
		flags |= OriginNormalizedCRLF
	}
	return c.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory origin (console input, test, or generated
// code) with the OriginVirtual flag.
func (c *Cache) AddVirtual(name string, content []byte) OriginID {
	content, _ = removeBOM(content)
	content, _ = normalizeCRLF(content)
	return c.Add(name, content, OriginVirtual)
}

// Get returns the origin for the given ID, or nil if out of range.
func (c *Cache) Get(id OriginID) *Origin {
	if int(id) >= len(c.origins) {
		return nil
	}
	return &c.origins[id]
}

// GetByName returns the latest origin registered under name, if any.
func (c *Cache) GetByName(name string) (*Origin, bool) {
	if id, ok := c.index[name]; ok {
		return &c.origins[id], true
	}
	return nil, false
}

// Len returns the number of stored origins.
func (c *Cache) Len() int {
	return len(c.origins)
}

// Resolve converts a span into start and end positions.
func (c *Cache) Resolve(sp Span) (LineCol, LineCol) {
	origin := c.Get(sp.Origin)
	if origin == nil {
		return LineCol{Line: 1, Col: 1}, LineCol{Line: 1, Col: 1}
	}
	return toLineCol(origin.LineIdx, sp.Start), toLineCol(origin.LineIdx, sp.End)
}

// Line returns the text of the given 1-based line without its trailing
// newline. Returns "" and false when the line does not exist.
func (o *Origin) Line(line uint32) (string, bool) {
	if line == 0 || line > o.LineCount() {
		return "", false
	}
	sp := o.LineSpan(line)
	return string(o.Content[sp.Start:sp.End]), true
}

// LineSpan returns the span covering the given 1-based line (without the
// trailing newline).
func (o *Origin) LineSpan(line uint32) Span {
	start := o.lineStart(line)
	idx := line - 1
	end := uint32(len(o.Content))
	if int(idx) < len(o.LineIdx) {
		end = o.LineIdx[idx]
	}
	if start > end {
		start = end
	}
	return Span{Origin: o.ID, Start: start, End: end}
}

// LineCount returns the number of lines in the origin.
func (o *Origin) LineCount() uint32 {
	n := uint32(len(o.LineIdx))
	if len(o.Content) == 0 {
		return 1
	}
	if o.Content[len(o.Content)-1] != '\n' {
		n++
	}
	return n
}

func (o *Origin) lineStart(line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(o.LineIdx) {
		return o.LineIdx[idx] + 1
	}
	return uint32(len(o.Content))
}
