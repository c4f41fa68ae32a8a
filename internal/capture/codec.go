package capture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Capture files are the boundary format between the harness that caught
// the error and this engine: a versioned envelope around a fully
// stringified ErrorInstance. Binary files are msgpack; *.json files are
// accepted too for hand-written fixtures.

const codecVersion = 1

var errUnsupportedVersion = fmt.Errorf("capture: unsupported capture file version (want %d)", codecVersion)

type envelope struct {
	Version  int          `msgpack:"version" json:"version"`
	Instance fileInstance `msgpack:"instance" json:"instance"`
}

type fileInstance struct {
	Kind     string        `msgpack:"kind" json:"kind"`
	Message  string        `msgpack:"message" json:"message"`
	Frames   []fileFrame   `msgpack:"frames,omitempty" json:"frames,omitempty"`
	Syntax   *fileSyntax   `msgpack:"syntax,omitempty" json:"syntax,omitempty"`
	Builtins []string      `msgpack:"builtins,omitempty" json:"builtins,omitempty"`
	Members  []string      `msgpack:"members,omitempty" json:"members,omitempty"`
	CausedBy *fileInstance `msgpack:"caused_by,omitempty" json:"caused_by,omitempty"`
}

type fileFrame struct {
	Origin    string        `msgpack:"origin" json:"origin"`
	Line      uint32        `msgpack:"line" json:"line"`
	ColStart  uint32        `msgpack:"col_start,omitempty" json:"col_start,omitempty"`
	ColEnd    uint32        `msgpack:"col_end,omitempty" json:"col_end,omitempty"`
	LineText  string        `msgpack:"line_text,omitempty" json:"line_text,omitempty"`
	Function  string        `msgpack:"function,omitempty" json:"function,omitempty"`
	Locals    []fileBinding `msgpack:"locals,omitempty" json:"locals,omitempty"`
	Enclosing []fileBinding `msgpack:"enclosing,omitempty" json:"enclosing,omitempty"`
	Globals   []fileBinding `msgpack:"globals,omitempty" json:"globals,omitempty"`
}

type fileBinding struct {
	Name  string `msgpack:"name" json:"name"`
	Value string `msgpack:"value" json:"value"`
}

type fileSyntax struct {
	Origin   string `msgpack:"origin" json:"origin"`
	Line     uint32 `msgpack:"line" json:"line"`
	ColStart uint32 `msgpack:"col_start,omitempty" json:"col_start,omitempty"`
	ColEnd   uint32 `msgpack:"col_end,omitempty" json:"col_end,omitempty"`
	LineText string `msgpack:"line_text,omitempty" json:"line_text,omitempty"`
	NodeKind string `msgpack:"node_kind,omitempty" json:"node_kind,omitempty"`
}

// Encode writes the instance as a msgpack capture file. Lazy bindings
// are materialized here: a failing formatter serializes as the
// Unavailable placeholder.
func Encode(w io.Writer, inst *ErrorInstance) error {
	if err := inst.Validate(); err != nil {
		return err
	}
	enc := msgpack.NewEncoder(w)
	return enc.Encode(envelope{Version: codecVersion, Instance: toFile(inst)})
}

// Decode reads a msgpack capture file.
func Decode(r io.Reader) (*ErrorInstance, error) {
	var env envelope
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("capture: decode: %w", err)
	}
	return fromEnvelope(env)
}

// DecodeJSON reads a JSON capture file.
func DecodeJSON(r io.Reader) (*ErrorInstance, error) {
	var env envelope
	dec := json.NewDecoder(r)
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("capture: decode json: %w", err)
	}
	return fromEnvelope(env)
}

// ReadFile loads a capture file, choosing the codec by extension.
func ReadFile(path string) (*ErrorInstance, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return DecodeJSON(bytes.NewReader(data))
	}
	return Decode(bytes.NewReader(data))
}

// WriteFile stores the instance as a msgpack capture file.
func WriteFile(path string, inst *ErrorInstance) error {
	var buf bytes.Buffer
	if err := Encode(&buf, inst); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

func fromEnvelope(env envelope) (*ErrorInstance, error) {
	if env.Version != codecVersion {
		return nil, errUnsupportedVersion
	}
	inst := fromFile(&env.Instance)
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func toFile(inst *ErrorInstance) fileInstance {
	out := fileInstance{
		Kind:     string(inst.Kind),
		Message:  inst.Message,
		Builtins: inst.Builtins,
		Members:  inst.Members,
	}
	for i := range inst.Frames {
		out.Frames = append(out.Frames, toFileFrame(&inst.Frames[i]))
	}
	if inst.Syntax != nil {
		out.Syntax = &fileSyntax{
			Origin:   inst.Syntax.Origin,
			Line:     inst.Syntax.Line,
			ColStart: inst.Syntax.ColStart,
			ColEnd:   inst.Syntax.ColEnd,
			LineText: inst.Syntax.LineText,
			NodeKind: inst.Syntax.NodeKind,
		}
	}
	if inst.CausedBy != nil {
		nested := toFile(inst.CausedBy)
		out.CausedBy = &nested
	}
	return out
}

func toFileFrame(f *FrameRecord) fileFrame {
	return fileFrame{
		Origin:    f.Origin,
		Line:      f.Line,
		ColStart:  f.ColStart,
		ColEnd:    f.ColEnd,
		LineText:  f.LineText,
		Function:  f.Function,
		Locals:    toFileBindings(f.Locals),
		Enclosing: toFileBindings(f.Enclosing),
		Globals:   toFileBindings(f.Globals),
	}
}

func toFileBindings(bs Bindings) []fileBinding {
	if len(bs) == 0 {
		return nil
	}
	out := make([]fileBinding, len(bs))
	for i := range bs {
		out[i] = fileBinding{Name: bs[i].Name, Value: bs[i].Display()}
	}
	return out
}

func fromFile(fi *fileInstance) *ErrorInstance {
	inst := &ErrorInstance{
		Kind:     Kind(fi.Kind),
		Message:  fi.Message,
		Builtins: fi.Builtins,
		Members:  fi.Members,
	}
	for i := range fi.Frames {
		inst.Frames = append(inst.Frames, fromFileFrame(&fi.Frames[i]))
	}
	if fi.Syntax != nil {
		inst.Syntax = &SyntaxLocation{
			Origin:   fi.Syntax.Origin,
			Line:     fi.Syntax.Line,
			ColStart: fi.Syntax.ColStart,
			ColEnd:   fi.Syntax.ColEnd,
			LineText: fi.Syntax.LineText,
			NodeKind: fi.Syntax.NodeKind,
		}
	}
	if fi.CausedBy != nil {
		inst.CausedBy = fromFile(fi.CausedBy)
	}
	return inst
}

func fromFileFrame(ff *fileFrame) FrameRecord {
	return FrameRecord{
		Origin:    ff.Origin,
		Line:      ff.Line,
		ColStart:  ff.ColStart,
		ColEnd:    ff.ColEnd,
		LineText:  ff.LineText,
		Function:  ff.Function,
		Locals:    fromFileBindings(ff.Locals),
		Enclosing: fromFileBindings(ff.Enclosing),
		Globals:   fromFileBindings(ff.Globals),
	}
}

func fromFileBindings(fbs []fileBinding) Bindings {
	if len(fbs) == 0 {
		return nil
	}
	out := make(Bindings, len(fbs))
	for i, fb := range fbs {
		out[i] = StringBinding(fb.Name, fb.Value)
	}
	return out
}
