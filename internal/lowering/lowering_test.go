package lowering

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mohsen1/tsz-sub019/internal/ast"
	"github.com/mohsen1/tsz-sub019/internal/compat"
	"github.com/mohsen1/tsz-sub019/internal/config"
	"github.com/mohsen1/tsz-sub019/internal/directive"
)

// sideEffectImportProgram is `import "m";` followed by `const x = 1;`. Under
// a CommonJS module format the import should pick up a ModuleWrapper
// directive (the require() rewrite); the unrelated const decl and the
// source file root itself should not, since the file exports nothing.
const sideEffectImportProgram = `{
	"source": "import \"m\";\nconst x = 1;",
	"nodes": [
		{"kind": "ImportDeclaration", "start": 0, "end": 12, "data": {"moduleSpecifier": "m"}},
		{"kind": "Identifier", "start": 19, "end": 20, "data": {"name": "x"}},
		{"kind": "NumericLiteral", "start": 23, "end": 24, "data": {"text": "1"}},
		{"kind": "VariableDeclaration", "start": 19, "end": 24, "data": {"name": 1, "initializer": 2, "typeID": -1}},
		{"kind": "VariableDeclarationList", "start": 13, "end": 24, "data": {"decls": [3], "kind": "const"}},
		{"kind": "VariableStatement", "start": 13, "end": 25, "data": {"declList": 4}},
		{"kind": "SourceFile", "start": 0, "end": 25, "data": {"statements": [0, 5], "hasImportOrExportSyntax": true}}
	]
}`

func TestVisitImportDeclarationProducesModuleWrapperForCommonJS(t *testing.T) {
	arena, root, err := ast.LoadFixture([]byte(sideEffectImportProgram))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	opts := config.DefaultOptions()
	opts.Module = compat.ModuleCommonJS

	pass := New(arena, opts, map[string]bool{})
	directives, _ := pass.Run(root)

	importNode := ast.NodeIndex(0)
	want := directive.Map{
		importNode: directive.Directive{
			Kind:               directive.ModuleWrapper,
			Node:               importNode,
			ModuleDependencies: []string{"m"},
		},
	}

	// The const declaration's VariableStatement (node 5) may carry its own
	// lowering directives depending on target; this test only cares about
	// what the import statement got, so filter the comparison down to it.
	got := directive.Map{}
	if d, ok := directives.Get(importNode); ok {
		got[importNode] = d
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("directive.Map for the import statement mismatch (-want +got):\n%s", diff)
	}
}

// TestVisitImportDeclarationLeavesESMUntouched runs sideEffectImportProgram
// under the default (ESM, ModuleNone) format, where imports pass straight
// through untouched.
func TestVisitImportDeclarationLeavesESMUntouched(t *testing.T) {
	arena, root, err := ast.LoadFixture([]byte(sideEffectImportProgram))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	opts := config.DefaultOptions()

	pass := New(arena, opts, map[string]bool{})
	directives, _ := pass.Run(root)

	if _, ok := directives.Get(ast.NodeIndex(0)); ok {
		t.Error("expected no directive on the import statement under the default module format")
	}
}
