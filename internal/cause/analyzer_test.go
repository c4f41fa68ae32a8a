package cause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracewise/internal/capture"
	"tracewise/internal/catalog"
	"tracewise/internal/suggest"
)

func newAnalyzer() *Analyzer {
	return NewAnalyzer(suggest.DefaultOptions())
}

func runtimeInstance(kind capture.Kind, message string, frame capture.FrameRecord) *capture.ErrorInstance {
	return &capture.ErrorInstance{
		Kind:    kind,
		Message: message,
		Frames:  []capture.FrameRecord{frame},
	}
}

func TestAnalyze_NameNotDefined(t *testing.T) {
	frame := capture.FrameRecord{
		Origin:   "<console>",
		Line:     1,
		LineText: "y = cost(0.5)",
		Globals: capture.Bindings{
			capture.StringBinding("cos", "<callable cos>"),
			capture.StringBinding("cosh", "<callable cosh>"),
		},
	}
	inst := runtimeInstance(capture.KindName, "name 'cost' is not defined", frame)

	expl := newAnalyzer().Analyze(inst)

	assert.Equal(t, "name.not-defined", expl.CauseID)
	assert.Equal(t, []catalog.Param{catalog.P("name", "cost")}, expl.Params)
	require.NotEmpty(t, expl.Suggestions)
	assert.Equal(t, "cos", expl.Suggestions[0].Name)
	assert.Equal(t, suggest.ScopeGlobal, expl.Suggestions[0].Scope)
}

func TestAnalyze_NameMatchesWellKnownModule(t *testing.T) {
	inst := runtimeInstance(capture.KindName, "name 'math' is not defined",
		capture.FrameRecord{Origin: "<console>", Line: 1})

	expl := newAnalyzer().Analyze(inst)
	assert.Equal(t, "name.stdlib-module", expl.CauseID)
}

func TestAnalyze_EmptyPoolsYieldNoSuggestions(t *testing.T) {
	inst := runtimeInstance(capture.KindName, "name 'xyz123' is not defined",
		capture.FrameRecord{Origin: "<console>", Line: 1})

	expl := newAnalyzer().Analyze(inst)
	assert.Equal(t, "name.not-defined", expl.CauseID)
	assert.Empty(t, expl.Suggestions)
}

func TestAnalyze_UnboundLocal(t *testing.T) {
	frame := capture.FrameRecord{
		Origin:    "acc.py",
		Line:      4,
		LineText:  "total += 1",
		Enclosing: capture.Bindings{capture.StringBinding("total", "3")},
	}
	inst := runtimeInstance(capture.KindUnboundLocal,
		"local variable 'total' referenced before assignment", frame)

	expl := newAnalyzer().Analyze(inst)

	assert.Equal(t, "unbound-local.before-assignment", expl.CauseID)
	assert.Equal(t, []suggest.Scope{suggest.ScopeEnclosing, suggest.ScopeGlobal}, expl.Scopes)
	require.NotEmpty(t, expl.Suggestions)
	assert.Equal(t, suggest.ScopeEnclosing, expl.Suggestions[0].Scope)
}

func TestAnalyze_AttributeFamilies(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		members    []string
		wantCause  string
		wantBest   string
		wantParams []catalog.Param
	}{
		{
			name:      "misspelled attribute with member pool",
			message:   "'list' object has no attribute 'appendd'",
			members:   []string{"append", "extend", "insert"},
			wantCause: "attribute.unknown",
			wantBest:  "append",
			wantParams: []catalog.Param{
				catalog.P("type", "list"), catalog.P("name", "appendd"),
			},
		},
		{
			name:      "known synonym beats fuzzy match",
			message:   "'list' object has no attribute 'add'",
			members:   []string{"append"},
			wantCause: "attribute.synonym",
			wantParams: []catalog.Param{
				catalog.P("type", "list"), catalog.P("name", "add"), catalog.P("synonym", "append"),
			},
		},
		{
			name:      "module attribute",
			message:   "module 'math' has no attribute 'cosine'",
			members:   []string{"cos", "cosh", "sin"},
			wantCause: "attribute.module",
			wantParams: []catalog.Param{
				catalog.P("module", "math"), catalog.P("name", "cosine"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := runtimeInstance(capture.KindAttribute, tt.message,
				capture.FrameRecord{Origin: "f", Line: 1})
			inst.Members = tt.members

			expl := newAnalyzer().Analyze(inst)
			assert.Equal(t, tt.wantCause, expl.CauseID)
			assert.Equal(t, tt.wantParams, expl.Params)
			if tt.wantBest != "" {
				assert.Equal(t, tt.wantBest, expl.Suggestions.Best())
			}
		})
	}
}

func TestAnalyze_ImportFamilies(t *testing.T) {
	inst := runtimeInstance(capture.KindImport, "No module named 'maths'",
		capture.FrameRecord{Origin: "f", Line: 1})
	expl := newAnalyzer().Analyze(inst)
	assert.Equal(t, "import.no-module", expl.CauseID)
	assert.Equal(t, "math", expl.Suggestions.Best())

	inst = runtimeInstance(capture.KindImport,
		"cannot import name 'sqrtt' from 'math'",
		capture.FrameRecord{Origin: "f", Line: 1})
	inst.Members = []string{"sqrt", "floor"}
	expl = newAnalyzer().Analyze(inst)
	assert.Equal(t, "import.cannot-import-name", expl.CauseID)
	assert.Equal(t, "sqrt", expl.Suggestions.Best())
}

func TestAnalyze_TypeFamilies(t *testing.T) {
	tests := []struct {
		message   string
		wantCause string
	}{
		{"unsupported operand type(s) for +: 'int' and 'str'", "type.unsupported-operand"},
		{"'int' object is not callable", "type.not-callable"},
		{"area() takes 2 positional arguments but 3 were given", "type.arg-count"},
		{"something completely different", "type.generic"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCause, func(t *testing.T) {
			inst := runtimeInstance(capture.KindType, tt.message,
				capture.FrameRecord{Origin: "f", Line: 1})
			expl := newAnalyzer().Analyze(inst)
			assert.Equal(t, tt.wantCause, expl.CauseID)
		})
	}
}

func TestAnalyze_ZeroDivisionVariants(t *testing.T) {
	div := runtimeInstance(capture.KindZeroDivision, "division by zero",
		capture.FrameRecord{Origin: "f", Line: 1, LineText: "x = 1 / n"})
	assert.Equal(t, "zero-division.division", newAnalyzer().Analyze(div).CauseID)

	mod := runtimeInstance(capture.KindZeroDivision,
		"integer division or modulo by zero",
		capture.FrameRecord{Origin: "f", Line: 1, LineText: "x = 1 % n"})
	assert.Equal(t, "zero-division.modulo", newAnalyzer().Analyze(mod).CauseID)
}

func TestAnalyze_KeyAndIndex(t *testing.T) {
	key := runtimeInstance(capture.KindKey, "'alpa'",
		capture.FrameRecord{Origin: "f", Line: 1})
	key.Members = []string{"alpha", "beta"}
	expl := newAnalyzer().Analyze(key)
	assert.Equal(t, "key.missing", expl.CauseID)
	assert.Equal(t, "alpha", expl.Suggestions.Best())

	idx := runtimeInstance(capture.KindIndex, "list index out of range",
		capture.FrameRecord{Origin: "f", Line: 1})
	expl = newAnalyzer().Analyze(idx)
	assert.Equal(t, "index.out-of-range", expl.CauseID)
	assert.Equal(t, []catalog.Param{catalog.P("container", "list")}, expl.Params)
}

func TestAnalyze_FileNotFound(t *testing.T) {
	inst := runtimeInstance(capture.KindFileNotFound,
		"[Errno 2] No such file or directory: 'data.csv'",
		capture.FrameRecord{Origin: "f", Line: 1})
	expl := newAnalyzer().Analyze(inst)
	assert.Equal(t, "file-not-found", expl.CauseID)
	assert.Equal(t, []catalog.Param{catalog.P("filename", "data.csv")}, expl.Params)
}

func TestAnalyze_SyntaxFamilies(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		loc       *capture.SyntaxLocation
		wantCause string
	}{
		{
			name:      "explicit never closed",
			message:   "'(' was never closed",
			loc:       &capture.SyntaxLocation{Line: 1, LineText: "foo(1, 2"},
			wantCause: "syntax.unclosed-bracket",
		},
		{
			name:      "unexpected EOF with dangling bracket",
			message:   "unexpected EOF while parsing",
			loc:       &capture.SyntaxLocation{Line: 1, LineText: "xs = [1, 2"},
			wantCause: "syntax.unclosed-bracket",
		},
		{
			name:      "unterminated string",
			message:   "unterminated string literal",
			loc:       &capture.SyntaxLocation{Line: 1, LineText: `s = "abc`},
			wantCause: "syntax.eol-string",
		},
		{
			name:      "assign to literal",
			message:   "cannot assign to literal",
			loc:       &capture.SyntaxLocation{Line: 1, LineText: "1 = x"},
			wantCause: "syntax.assign-to-literal",
		},
		{
			name:      "anything else reports enclosing construct",
			message:   "invalid syntax",
			loc:       &capture.SyntaxLocation{Line: 1, LineText: "while True", NodeKind: "statement"},
			wantCause: "syntax.invalid",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := &capture.ErrorInstance{
				Kind:    capture.KindSyntax,
				Message: tt.message,
				Syntax:  tt.loc,
			}
			expl := newAnalyzer().Analyze(inst)
			assert.Equal(t, tt.wantCause, expl.CauseID)
		})
	}
}

func TestAnalyze_UnknownKindFallsBack(t *testing.T) {
	inst := runtimeInstance(capture.Kind("exotic"), "weird failure",
		capture.FrameRecord{Origin: "f", Line: 1})
	expl := newAnalyzer().Analyze(inst)
	assert.Equal(t, "generic.fallback", expl.CauseID)
	assert.Equal(t, []catalog.Param{catalog.P("message", "weird failure")}, expl.Params)
}

func TestAnalyze_PanickingHandlerDegrades(t *testing.T) {
	a := newAnalyzer()
	a.Register(capture.Kind("explosive"), func(*Context) Explanation {
		panic("handler bug")
	})
	inst := runtimeInstance(capture.Kind("explosive"), "boom",
		capture.FrameRecord{Origin: "f", Line: 1})

	expl := a.Analyze(inst)
	assert.Equal(t, "internal.handler-failure", expl.CauseID)
}

func TestAnalyze_NonEmptyCauseIDForEveryRegisteredKind(t *testing.T) {
	kinds := []capture.Kind{
		capture.KindName, capture.KindUnboundLocal, capture.KindAttribute,
		capture.KindImport, capture.KindType, capture.KindValue,
		capture.KindIndex, capture.KindKey, capture.KindZeroDivision,
		capture.KindOverflow, capture.KindFileNotFound, capture.KindOS,
	}
	a := newAnalyzer()
	for _, kind := range kinds {
		inst := runtimeInstance(kind, "some unrecognized native message",
			capture.FrameRecord{Origin: "f", Line: 1})
		expl := a.Analyze(inst)
		assert.NotEmpty(t, expl.CauseID, "kind %s", kind)
	}
}

// Каждый идентификатор причины обязан иметь шаблон в локали по
// умолчанию - иначе таблица обработчиков и каталог разъехались.
func TestAllCauseIDsHaveDefaultTemplates(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	for _, id := range AllCauseIDs {
		assert.True(t, cat.Has(catalog.DefaultLocale, id), "missing template for %s", id)
	}
}
