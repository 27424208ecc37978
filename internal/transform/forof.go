package transform

import (
	"github.com/mohsen1/tsz-sub019/internal/ast"
	"github.com/mohsen1/tsz-sub019/internal/ir"
)

// BuildForOf lowers a for-of statement under targets lacking native
// iteration (§4.4.7 "for-of downlevel"). When the caller passes
// iterableIsArray, it takes the index-based fast path tsc also takes;
// otherwise it falls back to the full __values/__read try/catch
// machinery so arbitrary iterables (Map, Set, generators) still work.
func (c Context) BuildForOf(iterableIsArray bool, iterable, bindingName ast.NodeIndex, bodyStmts []ast.NodeIndex, tempVar, iterVar, lenVar string) ir.Node {
	if iterableIsArray {
		return &ir.ForOfArrayFast{
			ArrayExpr:   &ir.ASTRef{Node: iterable},
			IndexVar:    iterVar,
			LenVar:      lenVar,
			BindingName: identifierName(c.Arena, bindingName),
			Body:        astRefsOf(bodyStmts),
		}
	}
	return &ir.ForOfValues{
		IterableExpr: &ir.ASTRef{Node: iterable},
		IteratorVar:  tempVar,
		BindingName:  identifierName(c.Arena, bindingName),
		Body:         astRefsOf(bodyStmts),
	}
}

// BuildForAwaitOf lowers a for-await-of statement (§4.4.6), always taking
// the __asyncValues path since await-driven iteration never qualifies for
// the array fast path (an awaited `.next()` call is required regardless of
// the iterable's shape).
func (c Context) BuildForAwaitOf(iterable, bindingName ast.NodeIndex, bodyStmts []ast.NodeIndex, iterVar string) ir.Node {
	return &ir.ForAwaitOfValues{
		IterableExpr: &ir.ASTRef{Node: iterable},
		IteratorVar:  iterVar,
		BindingName:  identifierName(c.Arena, bindingName),
		Body:         astRefsOf(bodyStmts),
	}
}

func astRefsOf(stmts []ast.NodeIndex) []ir.Node {
	out := make([]ir.Node, len(stmts))
	for i, s := range stmts {
		out[i] = &ir.ASTRef{Node: s}
	}
	return out
}
