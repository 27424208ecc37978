package transform

import (
	"strconv"

	"github.com/mohsen1/tsz-sub019/internal/ast"
	"github.com/mohsen1/tsz-sub019/internal/ir"
)

// BuildArraySpread lowers `[a, ...b, c]` into nested __spreadArray calls
// (§4.4.7 "Array literal with spread"). Runs of non-spread elements are
// batched into one array literal between each spread, matching tsc's
// `__spreadArray(__spreadArray([1], arr, false), [2], false)` shape.
func (c Context) BuildArraySpread(elements []ast.NodeIndex) ir.Node {
	var acc ir.Node
	var pending []ast.NodeIndex

	flushPending := func() ir.Node {
		items := make([]ir.Node, len(pending))
		for i, p := range pending {
			items[i] = &ir.ASTRef{Node: p}
		}
		pending = nil
		return &ir.ArrayLiteral{Items: items}
	}

	for _, el := range elements {
		if spread, ok := c.Arena.Get(el).Data.(ast.SpreadElement); ok {
			var left ir.Node
			if acc == nil {
				left = flushPending()
			} else {
				if len(pending) > 0 {
					acc = &ir.SpreadArrayCall{Left: acc, Right: flushPending(), UseConcat: false}
				}
				left = acc
			}
			acc = &ir.SpreadArrayCall{Left: left, Right: &ir.ASTRef{Node: spread.Expr}, UseConcat: false}
			continue
		}
		pending = append(pending, el)
	}

	if len(pending) > 0 {
		if acc == nil {
			return flushPending()
		}
		acc = &ir.SpreadArrayCall{Left: acc, Right: flushPending(), UseConcat: false}
	}
	if acc == nil {
		return &ir.ArrayLiteral{}
	}
	return acc
}

// BuildObjectSpread lowers `{...a, b: 1}` into `__assign(__assign({}, a), {b: 1})`
// (§4.4.7 "Object literal with spread/computed").
func (c Context) BuildObjectSpread(properties []ast.NodeIndex) ir.Node {
	var acc ir.Node = &ir.ObjectLiteral{}
	var pendingProps []ast.NodeIndex

	flush := func() {
		if len(pendingProps) == 0 {
			return
		}
		acc = &ir.AssignCall{Left: acc, Right: &ir.ObjectLiteralProps{Props: pendingProps}}
		pendingProps = nil
	}

	for _, prop := range properties {
		if spread, ok := c.Arena.Get(prop).Data.(ast.SpreadAssignment); ok {
			flush()
			acc = &ir.AssignCall{Left: acc, Right: &ir.ASTRef{Node: spread.Expr}}
			continue
		}
		pendingProps = append(pendingProps, prop)
	}
	flush()
	return acc
}

// BuildCallSpread lowers `f(1, ...arr, 2)` into `f.apply(thisArg, spreadArrayChain)`,
// and `obj.method(1, ...arr)` into `obj.method.apply(obj, spreadArrayChain)`
// (§4.4.7 "Call with spread").
func (c Context) BuildCallSpread(callee ast.NodeIndex, args []ast.NodeIndex) ir.Node {
	argsArray := c.BuildArraySpread(args)

	if access, ok := c.Arena.Get(callee).Data.(ast.PropertyAccessExpression); ok {
		return &ir.ApplyCall{
			TargetMethod: &ir.ASTRef{Node: callee},
			ThisArg:      &ir.ASTRef{Node: access.Expr},
			ArgsArray:    argsArray,
		}
	}
	return &ir.ApplyCall{
		TargetMethod: &ir.ASTRef{Node: callee},
		ThisArg:      &ir.Raw{Text: "void 0"},
		ArgsArray:    argsArray,
	}
}

// BuildTemplateLiteral lowers a template expression into string
// concatenation (§4.4.7 "Template literal").
func (c Context) BuildTemplateLiteral(head string, spans []ast.TemplateSpan) ir.Node {
	var acc ir.Node = &ir.Raw{Text: quoteString(head)}
	for _, span := range spans {
		acc = &ir.Concat{Left: acc, Right: &ir.ASTRef{Node: span.Expr}}
		acc = &ir.Concat{Left: acc, Right: &ir.Raw{Text: quoteString(span.Text)}}
	}
	return acc
}

// BuildTaggedTemplate lowers a tagged template into a call against a cached
// `__templateObject_N` helper variable (§4.4.7).
func (c Context) BuildTaggedTemplate(tagExpr ast.NodeIndex, cooked, raw []string, varName string) (ir.Node, ir.Node) {
	tmplVar := &ir.TemplateObjectVar{VarName: varName, Cooked: cooked, Raw: raw}
	call := &ir.TaggedTemplateCall{Tag: &ir.ASTRef{Node: tagExpr}, VarName: varName}
	return tmplVar, call
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
