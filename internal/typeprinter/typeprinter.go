// Package typeprinter implements the Type Printer (C8): it serializes
// resolved TypeShape values (from an ast.TypeInterner) into TypeScript
// surface syntax for the Declaration Emitter (C7). It never inspects the
// AST arena directly — everything it prints comes from the type checker's
// read-only interner contract (§4.6) — grounded on the teacher's
// internal/js_printer expression-precedence-free "just format the data"
// style, generalized from JS values to type shapes.
package typeprinter

import (
	"strings"

	"github.com/mohsen1/tsz-sub019/internal/ast"
)

// Printer formats TypeIDs via an interner. maxDepth bounds recursive
// TypeShapeObject/TypeShapeFunction printing against the same pathological-
// input concern the core's recursion limits address elsewhere (§5);
// exceeding it falls back to "any" rather than erroring.
type Printer struct {
	Interner ast.TypeInterner
	MaxDepth int
}

// New returns a Printer with the default recursion bound.
func New(interner ast.TypeInterner) *Printer {
	return &Printer{Interner: interner, MaxDepth: 100}
}

// Print formats id as TypeScript surface syntax. An unresolved or invalid
// id prints as "any", matching the Declaration Emitter's missing-type
// fallback (§7).
func (p *Printer) Print(id ast.TypeID) string {
	return p.print(id, 0)
}

func (p *Printer) print(id ast.TypeID, depth int) string {
	if !id.IsValid() || depth > p.MaxDepth || p.Interner == nil {
		return "any"
	}
	shape, ok := p.Interner.Resolve(id)
	if !ok {
		return "any"
	}
	switch shape.Kind {
	case ast.TypeShapeAny:
		return "any"
	case ast.TypeShapeUnknown:
		return "unknown"
	case ast.TypeShapeNever:
		return "never"
	case ast.TypeShapeVoid:
		return "void"
	case ast.TypeShapeUndefined:
		return "undefined"
	case ast.TypeShapeNull:
		return "null"
	case ast.TypeShapeString:
		return "string"
	case ast.TypeShapeNumber:
		return "number"
	case ast.TypeShapeBoolean:
		return "boolean"
	case ast.TypeShapeBigInt:
		return "bigint"
	case ast.TypeShapeLiteral:
		return shape.LiteralText
	case ast.TypeShapeUniqueSymbol:
		return "unique symbol"
	case ast.TypeShapeArray:
		if len(shape.Args) == 0 {
			return "any[]"
		}
		return p.printArrayElement(shape.Args[0], depth)
	case ast.TypeShapeTuple:
		return "[" + p.joinArgs(shape.Args, depth) + "]"
	case ast.TypeShapeUnion:
		return p.joinWith(shape.Args, depth, " | ")
	case ast.TypeShapeIntersection:
		return p.joinWith(shape.Args, depth, " & ")
	case ast.TypeShapeObject:
		return p.printObject(shape, depth)
	case ast.TypeShapeFunction:
		return p.printFunction(shape, depth)
	case ast.TypeShapeTypeRef:
		return p.printTypeRef(shape, depth)
	case ast.TypeShapeOpaque:
		// Mapped/conditional/indexed-access types are printed exactly as
		// the checker constructed them (§4.5 "it emits the exact
		// constructed form"); the Type Printer does not re-derive them.
		return shape.OpaqueText
	default:
		return "any"
	}
}

func (p *Printer) printArrayElement(elem ast.TypeID, depth int) string {
	text := p.print(elem, depth+1)
	if needsArrayParens(text) {
		return "(" + text + ")[]"
	}
	return text + "[]"
}

// needsArrayParens reports whether a union/intersection/function member
// type needs wrapping parens before appending "[]", e.g. "(string | number)[]".
func needsArrayParens(text string) bool {
	return strings.Contains(text, " | ") || strings.Contains(text, " & ") || strings.HasPrefix(text, "(")
}

func (p *Printer) joinArgs(args []ast.TypeID, depth int) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = p.print(a, depth+1)
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) joinWith(args []ast.TypeID, depth int, sep string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = p.print(a, depth+1)
	}
	return strings.Join(parts, sep)
}

func (p *Printer) printObject(shape ast.TypeShape, depth int) string {
	if depth >= p.MaxDepth {
		return "any"
	}
	if len(shape.Members) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{ ")
	for i, m := range shape.Members {
		if i > 0 {
			b.WriteString("; ")
		}
		if m.Readonly {
			b.WriteString("readonly ")
		}
		b.WriteString(m.Name)
		if m.Optional {
			b.WriteString("?")
		}
		b.WriteString(": ")
		b.WriteString(p.print(m.Type, depth+1))
	}
	b.WriteString(" }")
	return b.String()
}

func (p *Printer) printFunction(shape ast.TypeShape, depth int) string {
	var b strings.Builder
	b.WriteString("(")
	for i, m := range shape.Members {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.Name)
		if m.Optional {
			b.WriteString("?")
		}
		b.WriteString(": ")
		b.WriteString(p.print(m.Type, depth+1))
	}
	b.WriteString(") => ")
	b.WriteString(p.print(shape.Return, depth+1))
	return b.String()
}

func (p *Printer) printTypeRef(shape ast.TypeShape, depth int) string {
	if len(shape.Args) == 0 {
		return shape.Name
	}
	return shape.Name + "<" + p.joinArgs(shape.Args, depth) + ">"
}

// PrintBase resolves and prints id's base type, walking exactly one step up
// the inheritance graph (§4.5 "it walks up the inheritance graph for
// bases"); a multi-level chain takes repeated calls. The Declaration
// Emitter does not call it.
func (p *Printer) PrintBase(id ast.TypeID) (string, bool) {
	if p.Interner == nil {
		return "", false
	}
	base, ok := p.Interner.GetBaseType(id)
	if !ok || !base.IsValid() {
		return "", false
	}
	return p.print(base, 0), true
}
