package emitter

import (
	"testing"

	"github.com/mohsen1/tsz-sub019/internal/ast"
	"github.com/mohsen1/tsz-sub019/internal/compat"
	"github.com/mohsen1/tsz-sub019/internal/config"
	"github.com/mohsen1/tsz-sub019/internal/lowering"
)

// esNextProgram is a single const declaration; at the default options
// (target ESNext, module None) nothing needs lowering, so the Emission
// Engine's verbatim-splice path should reproduce the source unchanged.
const esNextProgram = `{
	"source": "const x = 1;",
	"nodes": [
		{"kind": "Identifier", "start": 6, "end": 7, "data": {"name": "x"}},
		{"kind": "NumericLiteral", "start": 10, "end": 11, "data": {"text": "1"}},
		{"kind": "VariableDeclaration", "start": 6, "end": 11, "data": {"name": 0, "initializer": 1, "typeID": -1}},
		{"kind": "VariableDeclarationList", "start": 0, "end": 11, "data": {"decls": [2], "kind": "const"}},
		{"kind": "VariableStatement", "start": 0, "end": 12, "data": {"declList": 3}},
		{"kind": "SourceFile", "start": 0, "end": 12, "data": {"statements": [4], "hasImportOrExportSyntax": false}}
	]
}`

func TestEmitFileVerbatimPassthrough(t *testing.T) {
	arena, root, err := ast.LoadFixture([]byte(esNextProgram))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	opts := config.DefaultOptions()
	pass := lowering.New(arena, opts, map[string]bool{})
	directives, helpers := pass.Run(root)

	eng := New(arena, directives, helpers, opts)
	result := eng.EmitFile(root, "")

	if got, want := result.Code, "const x = 1;\n"; got != want {
		t.Errorf("EmitFile().Code = %q, want %q", got, want)
	}
	if result.HasSourceMap {
		t.Error("expected no source map when options.SourceMap is false")
	}
}

// es5Program is `const x = 1;` lowered for an ES5 target, which must rewrite
// the `const` declaration to `var` since ES5 has no block-scoped bindings.
const es5Program = `{
	"source": "const x = 1;",
	"nodes": [
		{"kind": "Identifier", "start": 6, "end": 7, "data": {"name": "x"}},
		{"kind": "NumericLiteral", "start": 10, "end": 11, "data": {"text": "1"}},
		{"kind": "VariableDeclaration", "start": 6, "end": 11, "data": {"name": 0, "initializer": 1, "typeID": -1}},
		{"kind": "VariableDeclarationList", "start": 0, "end": 11, "data": {"decls": [2], "kind": "const"}},
		{"kind": "VariableStatement", "start": 0, "end": 12, "data": {"declList": 3}},
		{"kind": "SourceFile", "start": 0, "end": 12, "data": {"statements": [4], "hasImportOrExportSyntax": false}}
	]
}`

func TestEmitFileLowersConstToVarForES5(t *testing.T) {
	arena, root, err := ast.LoadFixture([]byte(es5Program))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	opts := config.DefaultOptions()
	opts.Target.Value = compat.ES5

	pass := lowering.New(arena, opts, map[string]bool{})
	directives, helpers := pass.Run(root)
	eng := New(arena, directives, helpers, opts)
	result := eng.EmitFile(root, "")

	if got := result.Code; !containsVar(got) {
		t.Errorf("EmitFile().Code = %q, expected the const decl to be lowered to var for an ES5 target", got)
	}
}

func containsVar(s string) bool {
	for i := 0; i+3 <= len(s); i++ {
		if s[i:i+3] == "var" {
			return true
		}
	}
	return false
}
