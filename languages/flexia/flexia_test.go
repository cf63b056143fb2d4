package flexia

import (
	"reflect"
	"testing"

	"github.com/roveo/flexls/languages"
)

func TestLanguageMetadata(t *testing.T) {
	lang := &Language{}

	if lang.Name() != "flexia" {
		t.Errorf("expected name 'flexia', got %q", lang.Name())
	}

	exts := lang.Extensions()
	if len(exts) != 2 || exts[0] != ".flexia" || exts[1] != ".fx" {
		t.Errorf("expected extensions [.flexia .fx], got %v", exts)
	}

	if languages.GetLanguage("flexia") == nil {
		t.Error("expected flexia to register itself")
	}
	if languages.GetLanguageForFile("main.fx") == nil {
		t.Error("expected .fx files to resolve to flexia")
	}
}

func TestScanDeclarations(t *testing.T) {
	src := "Function foo\nClass Bar\nint x\n"

	symbols := Scan(src, "file:///a.fx")
	if len(symbols) != 3 {
		t.Fatalf("expected 3 symbols, got %d: %v", len(symbols), symbols)
	}

	want := []struct {
		name string
		kind languages.Kind
		line int
	}{
		{"foo", languages.KindFunction, 0},
		{"Bar", languages.KindClass, 1},
		{"x", languages.KindVariable, 2},
	}
	for i, w := range want {
		s := symbols[i]
		if s.Name != w.name || s.Kind != w.kind {
			t.Errorf("symbol %d: got %s, want %s %s", i, s, w.kind, w.name)
		}
		if s.Location.Range.Start.Line != w.line {
			t.Errorf("symbol %d: got line %d, want %d", i, s.Location.Range.Start.Line, w.line)
		}
		if s.Location.URI != "file:///a.fx" {
			t.Errorf("symbol %d: got uri %q", i, s.Location.URI)
		}
	}
}

func TestScanNoMatches(t *testing.T) {
	for _, src := range []string{"", "print(1)\n", "function lower\nclass lower\nInt X"} {
		symbols := Scan(src, "file:///a.fx")
		if symbols == nil {
			t.Errorf("Scan(%q) returned nil, want empty slice", src)
		}
		if len(symbols) != 0 {
			t.Errorf("Scan(%q) = %v, want none", src, symbols)
		}
	}
}

func TestScanGroupsByPatternWithinLine(t *testing.T) {
	// Variable appears first in the line but functions are reported first.
	src := "int a = 1; Function f; Class C; Function g"

	symbols := Scan(src, "u")
	var got []string
	for _, s := range symbols {
		got = append(got, s.String())
	}
	want := []string{"Function f", "Function g", "Class C", "Variable a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScanColumns(t *testing.T) {
	src := "  Function foo   Function bar\n\tvar count"

	symbols := Scan(src, "u")
	if len(symbols) != 3 {
		t.Fatalf("expected 3 symbols, got %d", len(symbols))
	}

	cols := []languages.Position{
		{Line: 0, Character: 2},
		{Line: 0, Character: 17},
		{Line: 1, Character: 1},
	}
	for i, want := range cols {
		if got := symbols[i].Location.Range.Start; got != want {
			t.Errorf("symbol %d (%s): got %+v, want %+v", i, symbols[i].Name, got, want)
		}
	}
}

func TestScanColumnsUTF16(t *testing.T) {
	// The emoji takes two UTF-16 code units.
	symbols := Scan("😀 Function f", "u")
	if len(symbols) != 1 {
		t.Fatalf("expected 1 symbol, got %d", len(symbols))
	}
	if got := symbols[0].Location.Range.Start.Character; got != 3 {
		t.Errorf("got column %d, want 3", got)
	}
}

func TestScanIgnoresStringContext(t *testing.T) {
	symbols := Scan(`print("Function inside")`, "u")
	if len(symbols) != 1 || symbols[0].Name != "inside" {
		t.Errorf("expected keyword inside string to match, got %v", symbols)
	}
}

func TestScanVariableRules(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"int count", []string{"count"}},
		{"float _f", []string{"_f"}},
		{"double d; string s; bool b; char c; var v", []string{"d", "s", "b", "c", "v"}},
		{"int Count", nil}, // must start lowercase
		{"integer x", nil}, // keyword must end at a word boundary
		{"myint x", nil},   // and start at one
		{"int x1y", []string{"x1y"}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			var got []string
			for _, s := range Scan(tt.src, "u") {
				if s.Kind == languages.KindVariable {
					got = append(got, s.Name)
				}
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanOverlappingPatterns(t *testing.T) {
	// Each pattern runs independently, so one line can yield the same name twice.
	symbols := Scan("Function add int add", "u")
	if len(symbols) != 2 {
		t.Fatalf("expected 2 symbols, got %v", symbols)
	}
	if symbols[0].Kind != languages.KindFunction || symbols[1].Kind != languages.KindVariable {
		t.Errorf("got %v", symbols)
	}
}

func TestScanLineEndings(t *testing.T) {
	symbols := Scan("Function a\r\nFunction b\rFunction c", "u")
	if len(symbols) != 3 {
		t.Fatalf("expected 3 symbols, got %d", len(symbols))
	}
	for i, s := range symbols {
		if s.Location.Range.Start.Line != i {
			t.Errorf("%s: got line %d, want %d", s.Name, s.Location.Range.Start.Line, i)
		}
	}
}

func TestScanDeterministic(t *testing.T) {
	src := "Function foo\nClass Bar\nint x\nvar y Function z\n"
	first := Scan(src, "u")
	for i := 0; i < 5; i++ {
		if got := Scan(src, "u"); !reflect.DeepEqual(got, first) {
			t.Fatalf("scan %d differs: %v vs %v", i, got, first)
		}
	}
}
