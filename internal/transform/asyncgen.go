package transform

import (
	"github.com/mohsen1/tsz-sub019/internal/ast"
	"github.com/mohsen1/tsz-sub019/internal/ir"
)

// AsyncGenPlan is the result of splitting an async/generator function body's
// control-flow graph into a flat sequence of labelled state-machine cases,
// the way tsc's `transformES2015`/`transformGenerators` passes do. Building
// this split is left to the caller (the Emission Engine walks the body
// tracking await/yield points and branch targets); this builder's job is
// purely to assemble the resulting GeneratorBody/AwaiterCall IR once the
// split is known, matching the fixed opcode contract (§4.3): 0 yield,
// 1 return, 2 break, 3 throw, 4 await, 7 return value.
type AsyncGenPlan struct {
	IsAsync     bool
	IsGenerator bool
	CapturesThis      bool
	CapturesArguments bool
	Cases       []StateCase
}

// StateCase is one labelled block of the state machine: a sequence of plain
// statements (ASTRef passthroughs) ending in at most one control op (await,
// yield, return, break/continue-as-goto, or fallthrough to the next label).
type StateCase struct {
	Label int
	Stmts []ast.NodeIndex // plain statements preceding the control op
	// Extra holds already-built IR nodes (e.g. a synthesized `var x =
	// _a.sent();` resuming an awaited value) that run after Stmts but
	// before Op, for statements the caller had to synthesize rather than
	// pass through verbatim.
	Extra []ir.Node
	Op    *ir.GeneratorOp // nil if the case simply falls through
}

// BuildAsyncFunction wraps a plan with no yield points into the plain
// `__awaiter` shape (§4.4.6 "async function, no generator"):
//
//	return __awaiter(this, void 0, void 0, function () {
//	    return __generator(this, function (_a) {
//	        switch (_a.label) { ... }
//	    });
//	});
func (c Context) BuildAsyncFunction(plan AsyncGenPlan, stateVar string) ir.Node {
	body := c.buildGeneratorBody(plan, stateVar)
	thisArg := thisOrVoid(plan.CapturesThis)
	argsArg := argsOrVoid(plan.CapturesArguments)
	return &ir.AwaiterCall{
		ThisArg:      thisArg,
		ArgumentsArg: argsArg,
		GeneratorFn:  body,
	}
}

// BuildGenerator wraps a plan for a plain (non-async) generator function
// into the bare `__generator` shape, with no __awaiter wrapper since there's
// nothing to await (§4.4.6 "generator, not async"):
//
//	return __generator(this, function (_a) {
//	    switch (_a.label) { ... }
//	});
func (c Context) BuildGenerator(plan AsyncGenPlan, stateVar string) ir.Node {
	return c.buildGeneratorBody(plan, stateVar)
}

// BuildAsyncGenerator returns the same __awaiter-wrapped __generator body as
// BuildAsyncFunction (§4.4.6 "async generator"); yield ops are not routed
// through __await.
func (c Context) BuildAsyncGenerator(plan AsyncGenPlan, stateVar string) ir.Node {
	return c.BuildAsyncFunction(plan, stateVar)
}

func (c Context) buildGeneratorBody(plan AsyncGenPlan, stateVar string) *ir.GeneratorBody {
	gb := &ir.GeneratorBody{UsesTrys: planUsesTry(plan)}
	for _, sc := range plan.Cases {
		var ops []ir.Node
		for _, s := range sc.Stmts {
			ops = append(ops, &ir.ASTRef{Node: s})
		}
		ops = append(ops, sc.Extra...)
		if sc.Op != nil {
			ops = append(ops, sc.Op)
		}
		gb.Cases = append(gb.Cases, ir.GeneratorCase{Label: sc.Label, Ops: ops})
	}
	return gb
}

func planUsesTry(plan AsyncGenPlan) bool {
	for _, sc := range plan.Cases {
		if sc.Op != nil && sc.Op.Opcode == ir.OpThrow {
			return true
		}
	}
	return false
}

func thisOrVoid(capturesThis bool) ir.Node {
	if capturesThis {
		return &ir.Raw{Text: "this"}
	}
	return &ir.Raw{Text: "void 0"}
}

func argsOrVoid(capturesArguments bool) ir.Node {
	if capturesArguments {
		return &ir.Raw{Text: "arguments"}
	}
	return &ir.Raw{Text: "void 0"}
}

// BuildAwaitOp produces the GeneratorOp for an `await expr` point: opcode 4,
// with the awaited expression as the yielded value (the state machine's
// driver resumes execution by sending the resolved value back in via
// `_a.sent()`, which the Emission Engine substitutes at the await's original
// expression position — handled by directive.ES5AsyncFunction bookkeeping,
// not this builder).
func BuildAwaitOp(expr ast.NodeIndex) *ir.GeneratorOp {
	return &ir.GeneratorOp{Opcode: ir.OpAwait, Value: &ir.ASTRef{Node: expr}}
}

// BuildYieldOp produces the GeneratorOp for a `yield expr` point: opcode 0.
func BuildYieldOp(expr ast.NodeIndex) *ir.GeneratorOp {
	if !expr.IsValid() {
		return &ir.GeneratorOp{Opcode: ir.OpYield}
	}
	return &ir.GeneratorOp{Opcode: ir.OpYield, Value: &ir.ASTRef{Node: expr}}
}

// BuildReturnOp produces the GeneratorOp for a bare `return;` (opcode 1) or
// a `return expr;` (opcode 7, "return value") per the fixed contract.
func BuildReturnOp(expr ast.NodeIndex) *ir.GeneratorOp {
	if !expr.IsValid() {
		return &ir.GeneratorOp{Opcode: ir.OpReturn}
	}
	return &ir.GeneratorOp{Opcode: ir.OpReturnValue, Value: &ir.ASTRef{Node: expr}}
}

// BuildBreakOp produces the GeneratorOp for a label-jump (loop break or
// continue lowered to a goto-style label transition): opcode 2.
func BuildBreakOp(targetLabel int) *ir.GeneratorOp {
	return &ir.GeneratorOp{Opcode: ir.OpBreak, Value: &ir.Raw{Text: itoa(targetLabel)}}
}

// BuildThrowOp produces the GeneratorOp for a caught exception re-dispatch
// inside a try/catch region lowered into the state machine: opcode 3.
func BuildThrowOp(expr ast.NodeIndex) *ir.GeneratorOp {
	return &ir.GeneratorOp{Opcode: ir.OpThrow, Value: &ir.ASTRef{Node: expr}}
}
