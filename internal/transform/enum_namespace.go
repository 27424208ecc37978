package transform

import (
	"strconv"
	"strings"

	"github.com/mohsen1/tsz-sub019/internal/ast"
	"github.com/mohsen1/tsz-sub019/internal/ir"
)

// EnumMemberSpec describes one member of a const or regular enum, resolved
// by the caller (the Emission Engine's emitEnum has already const-folded
// numeric auto-increment values).
type EnumMemberSpec struct {
	Name        string
	IsString    bool
	StringValue string
	NumericOK   bool // true if Value holds a statically known number
	Value       float64
	Computed    ast.NodeIndex // valid only when !NumericOK && !IsString
}

// BuildEnum lowers an enum declaration into the tsc IIFE shape (§4.4.7
// "Enum"):
//
//	var Color;
//	(function (Color) {
//	    Color[Color["Red"] = 0] = "Red";
//	})(Color || (Color = {}));
//
// String-valued members suppress the reverse mapping (`Color["Red"] = 0`
// becomes a plain assignment with no bracket re-indexing), matching tsc's
// behavior for `enum E { A = "a" }`.
func (c Context) BuildEnum(name string, declareVar bool, members []EnumMemberSpec) ir.EnumIIFE {
	result := ir.EnumIIFE{Name: name, DeclareVar: declareVar}
	for _, m := range members {
		assign := ir.EnumMemberAssign{MemberName: m.Name}
		switch {
		case m.IsString:
			assign.Value = &ir.Raw{Text: quoteString(m.StringValue)}
			assign.HasReverse = false
		case m.NumericOK:
			assign.Value = &ir.Raw{Text: formatFloat(m.Value)}
			assign.HasReverse = true
		default:
			assign.Value = &ir.ASTRef{Node: m.Computed}
			assign.HasReverse = true
		}
		result.Members = append(result.Members, &assign)
	}
	return result
}

// BuildNamespace lowers a (possibly dotted) namespace/module declaration
// into nested IIFEs (§4.4.7 "Namespace"). A dotted name like `A.B.C`
// expands into three nested IIFEs. Only the outermost segment gets a
// `var A;` declaration, and not when declaredNames already holds it; the
// inner segments get no `var` declaration.
func (c Context) BuildNamespace(qualifiedName string, bodyStmts []ast.NodeIndex, declaredNames map[string]bool) ir.Node {
	segments := strings.Split(qualifiedName, ".")
	body := astRefsOf(bodyStmts)

	var build func(i int) ir.Node
	build = func(i int) ir.Node {
		seg := segments[i]
		full := strings.Join(segments[:i+1], ".")
		var inner []ir.Node
		if i == len(segments)-1 {
			inner = body
		} else {
			inner = []ir.Node{build(i + 1)}
		}
		return &ir.NamespaceIIFE{
			QualifiedName: full,
			DeclareVar:    !declaredNames[seg] && i == 0,
			Body:          inner,
		}
	}
	return build(0)
}

func itoa(n int) string { return strconv.Itoa(n) }
