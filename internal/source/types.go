package source

type (
	// OriginID uniquely identifies one source origin within a Cache.
	OriginID uint32
	// OriginFlags encodes metadata about a source origin.
	OriginFlags uint8
)

const (
	// OriginVirtual indicates the source was added from memory
	// (console input, test snippet, generated code).
	OriginVirtual OriginFlags = 1 << iota
	OriginHadBOM
	OriginNormalizedCRLF
)

// Origin captures metadata and content for a single source of code
// referenced by captured frames: a file on disk, console input, or a
// generated snippet.
type Origin struct {
	ID      OriginID
	Name    string
	Content []byte
	LineIdx []uint32
	Flags   OriginFlags
}

// LineCol represents a human-readable position in a source origin.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, в байтах
}
