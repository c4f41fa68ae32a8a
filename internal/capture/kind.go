package capture

// Kind is the category tag of a captured error. The set below is closed
// for the built-in analyses, but any other string is a valid Kind: the
// analyzer falls back to a generic explanation for tags it does not know.
type Kind string

const (
	KindName         Kind = "name"
	KindUnboundLocal Kind = "unbound-local"
	KindAttribute    Kind = "attribute"
	KindImport       Kind = "import"
	KindType         Kind = "type"
	KindValue        Kind = "value"
	KindIndex        Kind = "index"
	KindKey          Kind = "key"
	KindZeroDivision Kind = "zero-division"
	KindOverflow     Kind = "overflow"
	KindFileNotFound Kind = "file-not-found"
	KindOS           Kind = "os"
	KindSyntax       Kind = "syntax"
)

// IsSyntax reports whether the kind describes a syntax-level error,
// which carries a SyntaxLocation instead of a frame chain.
func (k Kind) IsSyntax() bool {
	return k == KindSyntax
}

func (k Kind) String() string {
	return string(k)
}
