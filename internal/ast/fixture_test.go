package ast

import "testing"

// program is the JSON fixture for:
//
//	export const x = 1;
//
// a single exported const declaration, the simplest possible module-shaped
// source file.
const program = `{
	"source": "export const x = 1;",
	"nodes": [
		{"kind": "Identifier", "start": 13, "end": 14, "data": {"name": "x"}},
		{"kind": "NumericLiteral", "start": 17, "end": 18, "data": {"text": "1"}},
		{"kind": "VariableDeclaration", "start": 13, "end": 18, "data": {"name": 0, "initializer": 1, "typeID": -1}},
		{"kind": "VariableDeclarationList", "start": 7, "end": 18, "data": {"decls": [2], "kind": "const"}},
		{"kind": "VariableStatement", "flags": 1, "start": 0, "end": 19, "data": {"declList": 3}},
		{"kind": "SourceFile", "start": 0, "end": 19, "data": {"statements": [4], "hasImportOrExportSyntax": true}}
	]
}`

func TestLoadFixtureRoundTrip(t *testing.T) {
	arena, root, err := LoadFixture([]byte(program))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if !root.IsValid() {
		t.Fatal("LoadFixture returned an invalid root")
	}
	sf, ok := arena.Get(root).Data.(SourceFile)
	if !ok {
		t.Fatalf("root node Data is %T, want SourceFile", arena.Get(root).Data)
	}
	if !sf.HasImportOrExportSyntax {
		t.Error("expected HasImportOrExportSyntax to be true")
	}
	if len(sf.Statements) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(sf.Statements))
	}

	stmt := arena.Get(sf.Statements[0])
	vs, ok := stmt.Data.(VariableStatement)
	if !ok {
		t.Fatalf("top-level statement Data is %T, want VariableStatement", stmt.Data)
	}
	if stmt.Flags&FlagExported == 0 {
		t.Error("expected the variable statement to carry FlagExported")
	}

	declList := arena.Get(vs.DeclList).Data.(VariableDeclarationList)
	if declList.Kind != "const" {
		t.Errorf("decl list kind = %q, want \"const\"", declList.Kind)
	}
	if len(declList.Decls) != 1 {
		t.Fatalf("expected 1 declarator, got %d", len(declList.Decls))
	}

	decl := arena.Get(declList.Decls[0]).Data.(VariableDeclaration)
	name := arena.Get(decl.Name).Data.(Identifier)
	if name.Name != "x" {
		t.Errorf("declarator name = %q, want \"x\"", name.Name)
	}
	if decl.TypeID != InvalidType {
		t.Errorf("declarator TypeID = %v, want InvalidType", decl.TypeID)
	}

	init := arena.Get(decl.Initializer).Data.(NumericLiteral)
	if init.Text != "1" {
		t.Errorf("initializer text = %q, want \"1\"", init.Text)
	}

	if arena.Source != "export const x = 1;" {
		t.Errorf("arena.Source = %q", arena.Source)
	}
}

func TestLoadFixtureUnknownKind(t *testing.T) {
	_, _, err := LoadFixture([]byte(`{"source":"","nodes":[{"kind":"NotARealKind"}]}`))
	if err == nil {
		t.Fatal("expected an error for an unknown node kind")
	}
}

func TestLoadFixtureInvalidJSON(t *testing.T) {
	_, _, err := LoadFixture([]byte(`not json`))
	if err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}
