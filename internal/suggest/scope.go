package suggest

// Scope names the place a candidate identifier came from. The zero value
// is the highest-priority scope; numeric order is the tie-break order.
type Scope uint8

const (
	// ScopeLocal is the frame's own local bindings.
	ScopeLocal Scope = iota
	// ScopeEnclosing is the bindings of enclosing functions.
	ScopeEnclosing
	// ScopeGlobal is the module-level bindings.
	ScopeGlobal
	// ScopeBuiltin is the runtime's builtin names.
	ScopeBuiltin
	// ScopeAttribute is the member names of one object.
	ScopeAttribute
)

func (s Scope) String() string {
	switch s {
	case ScopeLocal:
		return "local"
	case ScopeEnclosing:
		return "enclosing"
	case ScopeGlobal:
		return "global"
	case ScopeBuiltin:
		return "builtin"
	case ScopeAttribute:
		return "attribute"
	}
	return "unknown"
}

// Pool is one named source of candidate identifiers.
type Pool struct {
	Scope Scope
	Names []string
}
