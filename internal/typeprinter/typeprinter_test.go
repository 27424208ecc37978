package typeprinter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohsen1/tsz-sub019/internal/ast"
)

// fakeInterner is a minimal in-memory ast.TypeInterner for exercising the
// Type Printer without a real type checker, keyed by ast.TypeID into a
// slice of pre-built shapes.
type fakeInterner struct {
	shapes []ast.TypeShape
	bases  map[ast.TypeID]ast.TypeID
}

func (f *fakeInterner) add(s ast.TypeShape) ast.TypeID {
	f.shapes = append(f.shapes, s)
	return ast.TypeID(len(f.shapes) - 1)
}

func (f *fakeInterner) Resolve(id ast.TypeID) (ast.TypeShape, bool) {
	if !id.IsValid() || int(id) >= len(f.shapes) {
		return ast.TypeShape{}, false
	}
	return f.shapes[id], true
}
func (f *fakeInterner) ResolveLazy(defID ast.TypeID) (ast.TypeID, bool) { return defID, true }
func (f *fakeInterner) ResolveRef(ast.Ref) (ast.TypeID, bool)          { return ast.InvalidType, false }
func (f *fakeInterner) GetBaseType(id ast.TypeID) (ast.TypeID, bool) {
	b, ok := f.bases[id]
	return b, ok
}
func (f *fakeInterner) IsNumericEnum(ast.TypeID) bool                  { return false }
func (f *fakeInterner) IsUserEnumDef(ast.TypeID) bool                  { return false }
func (f *fakeInterner) GetEnumParentDefID(ast.TypeID) (ast.TypeID, bool) { return ast.InvalidType, false }
func (f *fakeInterner) GetTypeParams(ast.TypeID) []ast.TypeID          { return nil }
func (f *fakeInterner) GetArrayBaseType(id ast.TypeID) (ast.TypeID, bool) {
	s, ok := f.Resolve(id)
	if !ok || s.Kind != ast.TypeShapeArray || len(s.Args) == 0 {
		return ast.InvalidType, false
	}
	return s.Args[0], true
}
func (f *fakeInterner) GetBoxedType(id ast.TypeID) (ast.TypeID, bool) { return id, true }

func TestPrintPrimitives(t *testing.T) {
	in := &fakeInterner{}
	str := in.add(ast.TypeShape{Kind: ast.TypeShapeString})
	num := in.add(ast.TypeShape{Kind: ast.TypeShapeNumber})
	any := in.add(ast.TypeShape{Kind: ast.TypeShapeAny})
	p := New(in)

	cases := []struct {
		id   ast.TypeID
		want string
	}{
		{str, "string"},
		{num, "number"},
		{any, "any"},
		{ast.InvalidType, "any"},
	}
	for _, c := range cases {
		if got := p.Print(c.id); got != c.want {
			t.Errorf("Print(%v) = %q, want %q", c.id, got, c.want)
		}
	}
}

func TestPrintUnionAndArray(t *testing.T) {
	in := &fakeInterner{}
	str := in.add(ast.TypeShape{Kind: ast.TypeShapeString})
	num := in.add(ast.TypeShape{Kind: ast.TypeShapeNumber})
	union := in.add(ast.TypeShape{Kind: ast.TypeShapeUnion, Args: []ast.TypeID{str, num}})
	arrOfUnion := in.add(ast.TypeShape{Kind: ast.TypeShapeArray, Args: []ast.TypeID{union}})
	p := New(in)

	if got, want := p.Print(union), "string | number"; got != want {
		t.Errorf("Print(union) = %q, want %q", got, want)
	}
	if got, want := p.Print(arrOfUnion), "(string | number)[]"; got != want {
		t.Errorf("Print(arrOfUnion) = %q, want %q", got, want)
	}
}

func TestPrintObjectAndFunction(t *testing.T) {
	in := &fakeInterner{}
	str := in.add(ast.TypeShape{Kind: ast.TypeShapeString})
	voidT := in.add(ast.TypeShape{Kind: ast.TypeShapeVoid})
	obj := in.add(ast.TypeShape{
		Kind: ast.TypeShapeObject,
		Members: []ast.TypeMember{
			{Name: "name", Type: str},
			{Name: "age", Type: str, Optional: true},
		},
	})
	fn := in.add(ast.TypeShape{
		Kind:    ast.TypeShapeFunction,
		Members: []ast.TypeMember{{Name: "x", Type: str}},
		Return:  voidT,
	})
	p := New(in)

	assert.Equal(t, "{ name: string; age?: string }", p.Print(obj))
	assert.Equal(t, "(x: string) => void", p.Print(fn))
}

func TestPrintBaseNilInterner(t *testing.T) {
	p := New(nil)
	if got, ok := p.PrintBase(ast.TypeID(0)); ok || got != "" {
		t.Errorf("PrintBase with nil interner = (%q, %v), want (\"\", false)", got, ok)
	}
	if got := p.Print(ast.TypeID(0)); got != "any" {
		t.Errorf("Print with nil interner = %q, want \"any\"", got)
	}
}

func TestPrintBaseWalksOneStep(t *testing.T) {
	in := &fakeInterner{bases: map[ast.TypeID]ast.TypeID{}}
	base := in.add(ast.TypeShape{Kind: ast.TypeShapeTypeRef, Name: "Base"})
	derived := in.add(ast.TypeShape{Kind: ast.TypeShapeTypeRef, Name: "Derived"})
	in.bases[derived] = base
	p := New(in)

	got, ok := p.PrintBase(derived)
	require.True(t, ok, "PrintBase(derived) should resolve a base type")
	assert.Equal(t, "Base", got)
}
