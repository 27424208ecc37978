package sourcewriter

import (
	"strings"
	"testing"

	"github.com/mohsen1/tsz-sub019/internal/logger"
)

func TestWriteAndIndent(t *testing.T) {
	w := New("  ", "\n", false, "", "")
	w.Write("function f() {")
	w.WriteLine()
	w.IncreaseIndent()
	w.Write("return 1;")
	w.WriteLine()
	w.DecreaseIndent()
	w.Write("}")

	want := "function f() {\n  return 1;\n}"
	if got := w.Done(); got != want {
		t.Errorf("Done() = %q, want %q", got, want)
	}
}

func TestDecreaseIndentClampsAtZero(t *testing.T) {
	w := New("  ", "\n", false, "", "")
	w.DecreaseIndent()
	w.Write("x")
	if got := w.Done(); got != "x" {
		t.Errorf("Done() = %q, want %q (no negative indent applied)", got, "x")
	}
}

func TestInsertLineAtShiftsMappings(t *testing.T) {
	w := New("", "\n", true, "out.js", "const x = 1;\n")
	off := w.CurrentOffset()
	w.WriteNode("const x = 1;", logger.Loc{Start: 0})
	w.WriteLine()
	w.InsertLineAt(off, `"use strict";`)

	got := w.Done()
	want := "\"use strict\";\nconst x = 1;\n"
	if got != want {
		t.Errorf("Done() = %q, want %q", got, want)
	}
	sm, _ := w.GenerateSourceMapJSON()
	if !strings.Contains(sm, `"mappings":";AAAA"`) {
		t.Errorf("expected the mapping shifted to line 2: %s", sm)
	}
}

func TestGenerateSourceMapJSONDisabled(t *testing.T) {
	w := New("", "\n", false, "", "")
	if _, ok := w.GenerateSourceMapJSON(); ok {
		t.Error("expected no source map when sourceMap is false")
	}
}

func TestGenerateSourceMapJSONNoPath(t *testing.T) {
	w := New("", "\n", true, "", "x")
	if _, ok := w.GenerateSourceMapJSON(); ok {
		t.Error("expected no source map when sourcePath is empty")
	}
}

func TestGenerateSourceMapJSONHasMappings(t *testing.T) {
	w := New("", "\n", true, "out.js", "const x = 1;")
	w.WriteNode("var x = 1;", logger.Loc{Start: 6})

	sm, ok := w.GenerateSourceMapJSON()
	if !ok {
		t.Fatal("expected a source map")
	}
	if !strings.Contains(sm, `"version":3`) {
		t.Errorf("source map missing version field: %s", sm)
	}
	if !strings.Contains(sm, `"sources":["out.js"]`) {
		t.Errorf("source map missing sources field: %s", sm)
	}
	if !strings.Contains(sm, `"mappings":"`) || strings.Contains(sm, `"mappings":""`) {
		t.Errorf("expected non-empty mappings: %s", sm)
	}
}

func TestWriteNodeWithNameAddsNamesEntry(t *testing.T) {
	w := New("", "\n", true, "out.js", "let oldName = 1;")
	w.WriteNodeWithName("newName", logger.Loc{Start: 4}, "oldName")

	sm, ok := w.GenerateSourceMapJSON()
	if !ok {
		t.Fatal("expected a source map")
	}
	if !strings.Contains(sm, `"names":["oldName"]`) {
		t.Errorf("source map missing names entry: %s", sm)
	}
}
