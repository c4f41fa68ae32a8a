package capture

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracewise/internal/source"
)

func TestBinding_LazyDisplay(t *testing.T) {
	calls := 0
	b := NewBinding("x", func() (string, error) {
		calls++
		return "42", nil
	})

	assert.Equal(t, "42", b.Display())
	assert.Equal(t, "42", b.Display())
	assert.Equal(t, 1, calls, "formatter must run once")
}

func TestBinding_FailingFormatterDegrades(t *testing.T) {
	tests := []struct {
		name   string
		format FormatFunc
	}{
		{name: "error", format: func() (string, error) { return "", errors.New("boom") }},
		{name: "panic", format: func() (string, error) { panic("repr exploded") }},
		{name: "nil formatter", format: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBinding("x", tt.format)
			assert.Equal(t, Unavailable, b.Display())
		})
	}
}

func TestErrorInstance_Validate(t *testing.T) {
	empty := &ErrorInstance{Kind: KindName, Message: "name 'a' is not defined"}
	assert.ErrorIs(t, empty.Validate(), ErrNoLocation)

	syntax := &ErrorInstance{Kind: KindSyntax, Message: "invalid syntax"}
	assert.ErrorIs(t, syntax.Validate(), ErrSyntaxNeedsLocation)

	ok := &ErrorInstance{
		Kind:    KindName,
		Message: "name 'a' is not defined",
		Frames:  []FrameRecord{{Origin: "<console>", Line: 1}},
	}
	assert.NoError(t, ok.Validate())
}

func TestErrorInstance_RenderableFrames(t *testing.T) {
	inst := &ErrorInstance{Kind: KindValue, Message: "m"}
	for i := 0; i < MaxRenderedFrames+7; i++ {
		inst.Frames = append(inst.Frames, FrameRecord{Origin: "f", Line: uint32(i + 1)})
	}

	frames, skipped := inst.RenderableFrames()
	assert.Len(t, frames, MaxRenderedFrames)
	assert.Equal(t, 7, skipped)
	// остаются самые новые кадры
	assert.Equal(t, uint32(8), frames[0].Line)
}

func TestCodec_RoundTrip(t *testing.T) {
	inst := &ErrorInstance{
		Kind:    KindName,
		Message: "name 'cost' is not defined",
		Frames: []FrameRecord{
			{
				Origin:   "example.py",
				Line:     3,
				ColStart: 5,
				ColEnd:   9,
				LineText: "y = cost(x)",
				Function: "compute",
				Locals:   Bindings{StringBinding("x", "1.0")},
				Globals: Bindings{
					StringBinding("cos", "<callable cos>"),
					NewBinding("broken", func() (string, error) { return "", errors.New("no repr") }),
				},
			},
		},
		Builtins: []string{"len", "max"},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, inst))

	got, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, KindName, got.Kind)
	require.Len(t, got.Frames, 1)
	frame := got.Frames[0]
	assert.Equal(t, "compute", frame.Function)
	assert.Equal(t, []string{"cos", "broken"}, frame.Globals.Names())

	// неформатируемое значение сериализуется плейсхолдером,
	// остальные биндинги не страдают
	b, ok := frame.Globals.Lookup("broken")
	require.True(t, ok)
	assert.Equal(t, Unavailable, b.Display())
	c, ok := frame.Globals.Lookup("cos")
	require.True(t, ok)
	assert.Equal(t, "<callable cos>", c.Display())
}

func TestDecodeJSON(t *testing.T) {
	raw := `{
		"version": 1,
		"instance": {
			"kind": "syntax",
			"message": "invalid syntax",
			"syntax": {"origin": "bad.py", "line": 2, "col_start": 4, "col_end": 5, "node_kind": "assignment target"}
		}
	}`
	got, err := DecodeJSON(bytes.NewReader([]byte(raw)))
	require.NoError(t, err)
	assert.Equal(t, KindSyntax, got.Kind)
	require.NotNil(t, got.Syntax)
	assert.Equal(t, "assignment target", got.Syntax.NodeKind)
}

func TestDecode_RejectsUnknownVersion(t *testing.T) {
	raw := `{"version": 99, "instance": {"kind": "name", "message": "m"}}`
	_, err := DecodeJSON(bytes.NewReader([]byte(raw)))
	assert.Error(t, err)
}

func TestReadFile_ByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "err.twc")
	inst := &ErrorInstance{
		Kind:    KindZeroDivision,
		Message: "division by zero",
		Frames:  []FrameRecord{{Origin: "<console>", Line: 1, LineText: "1 / 0"}},
	}
	require.NoError(t, WriteFile(path, inst))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, KindZeroDivision, got.Kind)
}

func TestHydrate_FillsLineTextAndDegrades(t *testing.T) {
	cache := source.NewCache()
	cache.AddVirtual("mem.py", []byte("a = 1\nb = unknown_name\n"))

	inst := &ErrorInstance{
		Kind:    KindName,
		Message: "name 'unknown_name' is not defined",
		Frames: []FrameRecord{
			{Origin: "no/such/file.py", Line: 1},
			{Origin: "mem.py", Line: 2},
		},
	}
	Hydrate(inst, cache)

	assert.Equal(t, "", inst.Frames[0].LineText, "unreadable source degrades, not fails")
	assert.Equal(t, "b = unknown_name", inst.Frames[1].LineText)
}
