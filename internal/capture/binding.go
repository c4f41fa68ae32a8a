package capture

// Unavailable is the fixed placeholder shown when a value's display form
// cannot be produced. It is locale-independent.
const Unavailable = "<unavailable>"

// FormatFunc produces the display form of one bound value. It may fail;
// the failure stays local to the binding.
type FormatFunc func() (string, error)

// Binding is one name -> value pair snapshotted from a frame scope.
// The display form is computed on first use and cached, because value
// formatting may be expensive or may itself fail. A failed or panicking
// formatter degrades to the Unavailable placeholder; it never aborts
// the capture or the analysis.
type Binding struct {
	Name string

	format  FormatFunc
	display string
	done    bool
}

// NewBinding creates a lazily formatted binding.
func NewBinding(name string, format FormatFunc) Binding {
	return Binding{Name: name, format: format}
}

// StringBinding creates a binding whose display form is already known,
// e.g. when the capture arrived serialized from another process.
func StringBinding(name, display string) Binding {
	return Binding{Name: name, display: display, done: true}
}

// Display returns the cached display form, formatting it on first call.
func (b *Binding) Display() string {
	if b.done {
		return b.display
	}
	b.display = renderValue(b.format)
	b.done = true
	return b.display
}

func renderValue(format FormatFunc) (out string) {
	if format == nil {
		return Unavailable
	}
	// форматтер может паниковать на экзотических значениях
	defer func() {
		if recover() != nil {
			out = Unavailable
		}
	}()
	s, err := format()
	if err != nil {
		return Unavailable
	}
	return s
}

// Bindings is an ordered scope snapshot.
type Bindings []Binding

// Names returns the bound names in order.
func (bs Bindings) Names() []string {
	out := make([]string, len(bs))
	for i := range bs {
		out[i] = bs[i].Name
	}
	return out
}

// Lookup finds a binding by name.
func (bs Bindings) Lookup(name string) (*Binding, bool) {
	for i := range bs {
		if bs[i].Name == name {
			return &bs[i], true
		}
	}
	return nil, false
}

// Has reports whether name is bound.
func (bs Bindings) Has(name string) bool {
	_, ok := bs.Lookup(name)
	return ok
}
