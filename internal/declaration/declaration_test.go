package declaration

import (
	"strings"
	"testing"

	"github.com/mohsen1/tsz-sub019/internal/ast"
	"github.com/mohsen1/tsz-sub019/internal/config"
)

// constEnumFixture mirrors:
//
//	export const enum Direction { Up, Down }
//
// the scenario whose .d.ts output folds member values (§8 S9): Up = 0,
// Down = 1, rather than reproducing the source's auto-increment syntax.
const constEnumFixture = `{
	"source": "export const enum Direction { Up, Down }",
	"nodes": [
		{"kind": "Identifier", "start": 0, "end": 0, "data": {"name": "Up"}},
		{"kind": "EnumMember", "start": 0, "end": 0, "data": {"name": 0, "initializer": -1}},
		{"kind": "Identifier", "start": 0, "end": 0, "data": {"name": "Down"}},
		{"kind": "EnumMember", "start": 0, "end": 0, "data": {"name": 2, "initializer": -1}},
		{"kind": "EnumDeclaration", "flags": 8193, "start": 0, "end": 40, "data": {"name": "Direction", "members": [1, 3]}},
		{"kind": "SourceFile", "start": 0, "end": 40, "data": {"statements": [4], "hasImportOrExportSyntax": true}}
	]
}`

func TestEmitFileConstEnumFoldsValues(t *testing.T) {
	arena, root, err := ast.LoadFixture([]byte(constEnumFixture))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	e := New(arena, nil, nil, nil, config.DefaultOptions())
	got := e.EmitFile(root)

	want := "export declare const enum Direction {\n    Up = 0,\n    Down = 1\n}\n"
	if got != want {
		t.Errorf("EmitFile() =\n%q\nwant\n%q", got, want)
	}
}

// defaultExportFunctionFixture mirrors `export default function f(): void {}`
// to pin down that a default export never carries a `declare` keyword.
const defaultExportFunctionFixture = `{
	"source": "export default function f() {}",
	"nodes": [
		{"kind": "Block", "start": 28, "end": 30, "data": {"statements": []}},
		{"kind": "FunctionDeclaration", "flags": 3, "start": 0, "end": 30, "data": {"name": "f", "params": [], "body": 0}},
		{"kind": "SourceFile", "start": 0, "end": 30, "data": {"statements": [1], "hasImportOrExportSyntax": true}}
	]
}`

func TestEmitFileDefaultExportFunctionOmitsDeclare(t *testing.T) {
	arena, root, err := ast.LoadFixture([]byte(defaultExportFunctionFixture))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	e := New(arena, nil, nil, nil, config.DefaultOptions())
	got := e.EmitFile(root)

	if strings.Contains(got, "declare") {
		t.Errorf("EmitFile() = %q, should not contain \"declare\" for a default export", got)
	}
	if !strings.Contains(got, "export default function f()") {
		t.Errorf("EmitFile() = %q, missing expected default export signature", got)
	}
}

func TestEmitFileModuleMarkerWhenNoValueExport(t *testing.T) {
	const fixture = `{
		"source": "import { z } from \"m\"; interface Foo { x: number }",
		"nodes": [
			{"kind": "ImportDeclaration", "start": 0, "end": 23, "data": {"moduleSpecifier": "m", "namedImports": [{"importedName": "z", "localName": "z"}]}},
			{"kind": "InterfaceDeclaration", "start": 23, "end": 50, "data": {"name": "Foo"}},
			{"kind": "SourceFile", "start": 0, "end": 50, "data": {"statements": [0, 1], "hasImportOrExportSyntax": true}}
		]
	}`
	arena, root, err := ast.LoadFixture([]byte(fixture))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	e := New(arena, nil, nil, nil, config.DefaultOptions())
	got := e.EmitFile(root)
	if !strings.Contains(got, "export {};") {
		t.Errorf("EmitFile() = %q, expected a module marker since there is no surviving value export", got)
	}
}
