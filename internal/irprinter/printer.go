// Package irprinter implements the IR Printer (C3): it converts an IR tree
// (built by the Transform Builders, C6) back into JavaScript text through
// the Source Writer (C1). It is grounded on the teacher's single recursive
// js_printer.go dispatch, adapted from "print an AST expression" to "print
// an IR node, re-entering the AST printer on ASTRef."
package irprinter

import (
	"strconv"
	"strings"

	"github.com/mohsen1/tsz-sub019/internal/ast"
	"github.com/mohsen1/tsz-sub019/internal/ir"
	"github.com/mohsen1/tsz-sub019/internal/sourcewriter"
)

// EmitNode re-enters the main Emission Engine for an AST subtree (the
// `ASTRef` passthrough, §9 "IR re-entry"). Implemented by internal/emitter;
// kept as a function type here to avoid an import cycle between the two
// packages that both need to call into each other.
type EmitNode func(w *sourcewriter.Writer, idx ast.NodeIndex)

// Printer walks IR nodes and writes through w, delegating ASTRef nodes to
// emit.
type Printer struct {
	W    *sourcewriter.Writer
	Emit EmitNode
}

// Print renders one IR node. node's concrete type must be one of the
// exported shapes in package ir; an unrecognized type is a programmer
// error (a builder produced something the printer doesn't know), so it
// writes a visible marker rather than panicking, consistent with the
// "never fail" posture of the rest of the pipeline (§7).
func (p *Printer) Print(node ir.Node) {
	switch n := node.(type) {
	case *ir.ASTRef:
		p.Emit(p.W, n.Node)
	case *ir.Raw:
		p.W.Write(n.Text)
	case *ir.Seq:
		p.printSeq(n)
	case *ir.ES5ClassIIFE:
		p.printClassIIFE(n)
	case *ir.ConstructorFn:
		p.printConstructor(n)
	case *ir.SuperCallInit:
		p.printSuperCallInit(n)
	case *ir.PrototypeMethod:
		p.printMethod(n.ClassName+".prototype", n.Name, n.Params, n.Body)
	case *ir.StaticMethod:
		p.printMethod(n.ClassName, n.Name, n.Params, n.Body)
	case nil:
		// no-op: an absent optional IR slot.
	case *ir.DefineProperty:
		p.printDefineProperty(n)
	case *ir.ExtendsHelper:
		p.W.Write("__extends(" + n.ClassName + ", " + n.BaseName + ");")
		p.W.WriteLine()
	case *ir.PrivateFieldWeakMap:
		p.W.Write("var " + n.VarName + " = new WeakMap();")
		p.W.WriteLine()
	case *ir.AwaiterCall:
		p.printAwaiterCall(n)
	case *ir.GeneratorBody:
		p.printGeneratorBody(n)
	case *ir.GeneratorOp:
		p.printGeneratorOp(n)
	case *ir.NamespaceIIFE:
		p.printNamespaceIIFE(n)
	case *ir.EnumIIFE:
		p.printEnumIIFE(n)
	case *ir.EnumMemberAssign:
		p.printEnumMember("", n)
	case *ir.TemplateObjectVar:
		p.printTemplateObjectVar(n)
	case *ir.UseStrict:
		p.W.Write(`"use strict";`)
		p.W.WriteLine()
	case *ir.EsModuleMarker:
		p.W.Write(`Object.defineProperty(exports, "__esModule", { value: true });`)
		p.W.WriteLine()
	case *ir.ExportInit:
		p.printExportInit(n)
	case *ir.RequireStatement:
		p.printRequireStatement(n)
	case *ir.ExportAssignmentStmt:
		p.printExportAssignment(n)
	case *ir.ReExportProperty:
		p.W.Write("__exportStar(require(" + n.ModuleVarName + "), exports);")
		p.W.WriteLine()
	case *ir.HoistedVarDecl:
		p.W.Write("var " + strings.Join(n.Names, ", ") + ";")
	case *ir.SpreadArrayCall:
		p.printSpreadArrayCall(n)
	case *ir.ArrayLiteral:
		p.printArrayLiteral(n)
	case *ir.AssignCall:
		p.W.Write("__assign(")
		p.Print(n.Left)
		p.W.Write(", ")
		p.Print(n.Right)
		p.W.Write(")")
	case *ir.ObjectLiteral:
		p.W.Write("{}")
	case *ir.ObjectLiteralProps:
		p.printObjectLiteralProps(n)
	case *ir.ApplyCall:
		p.Print(n.TargetMethod)
		p.W.Write(".apply(")
		p.Print(n.ThisArg)
		p.W.Write(", ")
		p.Print(n.ArgsArray)
		p.W.Write(")")
	case *ir.Concat:
		p.Print(n.Left)
		p.W.Write(" + ")
		p.Print(n.Right)
	case *ir.TaggedTemplateCall:
		p.printTaggedTemplateCall(n)
	case *ir.ForOfArrayFast:
		p.printForOfArrayFast(n)
	case *ir.ForOfValues:
		p.printForOfValues(n)
	case *ir.ForAwaitOfValues:
		p.printForAwaitOfValues(n)
	default:
		p.W.Write("/* unprintable IR node */")
	}
}

func (p *Printer) printSeq(n *ir.Seq) {
	multi := n.SourceRangeHasNewline
	for i, item := range n.Items {
		if i > 0 {
			if multi {
				p.W.WriteLine()
			} else {
				p.W.Write(" ")
			}
		}
		p.Print(item)
	}
}

// --- ES5 class (§4.4.2) ---

func (p *Printer) printClassIIFE(n *ir.ES5ClassIIFE) {
	p.W.Write("var " + n.ClassName + " = /** @class */ (function (")
	if n.IsDerived {
		p.W.Write("_super")
	}
	p.W.Write(") {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	for _, stmt := range n.Body {
		p.W.WriteIndent()
		p.Print(stmt)
		p.W.WriteLine()
	}
	p.W.WriteIndent()
	p.W.Write("return " + n.ClassName + ";")
	p.W.WriteLine()
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("}(")
	if n.IsDerived {
		p.Print(n.BaseExpr)
	}
	p.W.Write("));")
}

func (p *Printer) printConstructor(n *ir.ConstructorFn) {
	p.W.Write("function " + n.ClassName + "(")
	p.printParamRefs(n.Params)
	p.W.Write(") {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	for _, stmt := range n.Body {
		p.W.WriteIndent()
		p.Print(stmt)
		p.W.WriteLine()
	}
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("}")
}

func (p *Printer) printMethod(target string, name ir.Node, params []ast.NodeIndex, body ast.NodeIndex) {
	p.W.Write(target + ".")
	// name may render as a computed bracket access; handled by caller when
	// building Name via memberNameIR (a quoted Raw or an ASTRef), so the
	// separator here assumes dotted-name form for non-computed names and
	// falls back to bracket form when Name isn't a bare Raw string literal.
	if raw, ok := name.(*ir.Raw); ok && isPlainStringLiteral(raw.Text) {
		p.W.Write(unquoteSimple(raw.Text))
		p.W.Write(" = function (")
	} else {
		p.W.Write("[")
		p.Print(name)
		p.W.Write("] = function (")
	}
	p.printParamRefs(params)
	p.W.Write(") {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	p.Emit(p.W, body)
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("};")
}

func (p *Printer) printParamRefs(params []ast.NodeIndex) {
	for i, prm := range params {
		if i > 0 {
			p.W.Write(", ")
		}
		p.Emit(p.W, prm)
	}
}

func (p *Printer) printDefineProperty(n *ir.DefineProperty) {
	p.W.Write("Object.defineProperty(" + n.TargetExpr + ", ")
	p.Print(n.Name)
	p.W.Write(", {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	if n.Get != nil {
		p.W.WriteIndent()
		p.W.Write("get: function () {")
		p.W.WriteLine()
		p.W.IncreaseIndent()
		p.Emit(p.W, *n.Get)
		p.W.DecreaseIndent()
		p.W.WriteIndent()
		p.W.Write("},")
		p.W.WriteLine()
	}
	if n.Set != nil {
		p.W.WriteIndent()
		p.W.Write("set: function (v) {")
		p.W.WriteLine()
		p.W.IncreaseIndent()
		p.Emit(p.W, *n.Set)
		p.W.DecreaseIndent()
		p.W.WriteIndent()
		p.W.Write("},")
		p.W.WriteLine()
	}
	p.W.WriteIndent()
	p.W.Write("enumerable: false,")
	p.W.WriteLine()
	p.W.WriteIndent()
	p.W.Write("configurable: true")
	p.W.WriteLine()
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("});")
}

func isPlainStringLiteral(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

func unquoteSimple(s string) string {
	return s[1 : len(s)-1]
}

// --- Async / generator (§4.4.6) ---

func (p *Printer) printAwaiterCall(n *ir.AwaiterCall) {
	p.W.Write("return __awaiter(")
	p.Print(n.ThisArg)
	p.W.Write(", ")
	p.Print(n.ArgumentsArg)
	p.W.Write(", void 0, function () {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	p.W.WriteIndent()
	p.Print(n.GeneratorFn)
	p.W.WriteLine()
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("});")
}

func (p *Printer) printGeneratorBody(n *ir.GeneratorBody) {
	p.W.Write("return __generator(this, function (_a) {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	p.W.WriteIndent()
	p.W.Write("switch (_a.label) {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	for _, c := range n.Cases {
		p.W.WriteIndent()
		p.W.Write("case " + strconv.Itoa(c.Label) + ":")
		p.W.WriteLine()
		p.W.IncreaseIndent()
		for _, op := range c.Ops {
			p.W.WriteIndent()
			p.Print(op)
			p.W.WriteLine()
		}
		p.W.DecreaseIndent()
	}
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("}")
	p.W.WriteLine()
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("});")
}

func (p *Printer) printGeneratorOp(n *ir.GeneratorOp) {
	switch n.Opcode {
	case ir.OpYield:
		p.W.Write("return [0 /*yield*/")
		if n.Value != nil {
			p.W.Write(", ")
			p.Print(n.Value)
		}
		p.W.Write("];")
	case ir.OpReturn:
		p.W.Write("return [1 /*return*/];")
	case ir.OpBreak:
		p.W.Write("return [2 /*break*/, ")
		p.Print(n.Value)
		p.W.Write("];")
	case ir.OpThrow:
		p.W.Write("return [3 /*throw*/, ")
		p.Print(n.Value)
		p.W.Write("];")
	case ir.OpAwait:
		p.W.Write("return [4 /*yield*/, ")
		p.Print(n.Value)
		p.W.Write("];")
	case ir.OpReturnValue:
		p.W.Write("return [7 /*return value*/, ")
		p.Print(n.Value)
		p.W.Write("];")
	}
	if n.Comment != "" {
		p.W.Write(" // " + n.Comment)
	}
}

// --- Namespace / enum (§4.4.7) ---

func (p *Printer) printNamespaceIIFE(n *ir.NamespaceIIFE) {
	lastSegment := n.QualifiedName
	if idx := strings.LastIndexByte(n.QualifiedName, '.'); idx >= 0 {
		lastSegment = n.QualifiedName[idx+1:]
	}
	if n.DeclareVar {
		p.W.Write("var " + lastSegment + ";")
		p.W.WriteLine()
		p.W.WriteIndent()
	}
	p.W.Write("(function (" + lastSegment + ") {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	for _, stmt := range n.Body {
		p.W.WriteIndent()
		p.Print(stmt)
		p.W.WriteLine()
	}
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("})(" + lastSegment + " || (" + lastSegment + " = {}));")
}

func (p *Printer) printEnumIIFE(n *ir.EnumIIFE) {
	if n.DeclareVar {
		p.W.Write("var " + n.Name + ";")
		p.W.WriteLine()
		p.W.WriteIndent()
	}
	p.W.Write("(function (" + n.Name + ") {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	for _, m := range n.Members {
		p.W.WriteIndent()
		if em, ok := m.(*ir.EnumMemberAssign); ok {
			p.printEnumMember(n.Name, em)
		} else {
			p.Print(m)
		}
		p.W.WriteLine()
	}
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("})(" + n.Name + " || (" + n.Name + " = {}));")
}

func (p *Printer) printEnumMember(enumName string, n *ir.EnumMemberAssign) {
	quoted := strconv.Quote(n.MemberName)
	if n.HasReverse {
		p.W.Write(enumName + "[" + enumName + "[" + quoted + "] = ")
		p.Print(n.Value)
		p.W.Write("] = " + quoted + ";")
		return
	}
	p.W.Write(enumName + "[" + quoted + "] = ")
	p.Print(n.Value)
	p.W.Write(";")
}

func (p *Printer) printTemplateObjectVar(n *ir.TemplateObjectVar) {
	p.W.Write("var " + n.VarName + ";")
}

// --- CommonJS module (§4.4.7) ---

func (p *Printer) printExportInit(n *ir.ExportInit) {
	for i, name := range n.Names {
		if i > 0 {
			p.W.Write(" ")
		}
		p.W.Write("exports." + name + " = void 0;")
	}
}

func (p *Printer) printRequireStatement(n *ir.RequireStatement) {
	p.W.Write("var " + n.VarName + " = require(" + strconv.Quote(n.ModuleSpecifier) + ");")
	if n.ImportDefault {
		p.W.Write(" " + n.VarName + " = __importDefault(" + n.VarName + ");")
	} else if n.ImportStar {
		p.W.Write(" " + n.VarName + " = __importStar(" + n.VarName + ");")
	}
}

func (p *Printer) printExportAssignment(n *ir.ExportAssignmentStmt) {
	if n.IsEquals {
		p.W.Write("module.exports = ")
	} else {
		p.W.Write("exports." + n.ExportName + " = ")
	}
	p.Print(n.Value)
	p.W.Write(";")
}

// --- Spread / literal / for-of (§4.4.7) ---

func (p *Printer) printSpreadArrayCall(n *ir.SpreadArrayCall) {
	p.W.Write("__spreadArray(")
	p.Print(n.Left)
	p.W.Write(", ")
	p.Print(n.Right)
	p.W.Write(", ")
	if n.UseConcat {
		p.W.Write("true")
	} else {
		p.W.Write("false")
	}
	p.W.Write(")")
}

func (p *Printer) printArrayLiteral(n *ir.ArrayLiteral) {
	p.W.Write("[")
	for i, item := range n.Items {
		if i > 0 {
			p.W.Write(", ")
		}
		p.Print(item)
	}
	p.W.Write("]")
}

func (p *Printer) printObjectLiteralProps(n *ir.ObjectLiteralProps) {
	p.W.Write("{ ")
	for i, prop := range n.Props {
		if i > 0 {
			p.W.Write(", ")
		}
		p.Emit(p.W, prop)
	}
	p.W.Write(" }")
}

func (p *Printer) printSuperCallInit(n *ir.SuperCallInit) {
	p.W.Write("var _this = _super.call(this")
	for _, arg := range n.Args {
		p.W.Write(", ")
		p.Emit(p.W, arg)
	}
	p.W.Write(") || this;")
}

func (p *Printer) printTaggedTemplateCall(n *ir.TaggedTemplateCall) {
	p.Print(n.Tag)
	p.W.Write("(" + n.VarName + " || (" + n.VarName + " = __makeTemplateObject(")
	p.W.Write(n.VarName + "_cooked, " + n.VarName + "_raw")
	p.W.Write(")))")
}

func (p *Printer) printForOfArrayFast(n *ir.ForOfArrayFast) {
	idx := n.IndexVar
	p.W.Write("for (var " + idx + " = 0, " + n.LenVar + " = ")
	p.Print(n.ArrayExpr)
	p.W.Write("; " + idx + " < " + n.LenVar + ".length; " + idx + "++) {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	p.W.WriteIndent()
	p.W.Write("var " + n.BindingName + " = " + n.LenVar + "[" + idx + "];")
	p.W.WriteLine()
	p.printBodyStatements(n.Body)
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("}")
}

func (p *Printer) printForOfValues(n *ir.ForOfValues) {
	p.W.Write("try {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	p.W.WriteIndent()
	p.W.Write("for (var " + n.IteratorVar + " = __values(")
	p.Print(n.IterableExpr)
	p.W.Write("), step = " + n.IteratorVar + ".next(); !step.done; step = " + n.IteratorVar + ".next()) {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	p.W.WriteIndent()
	p.W.Write("var " + n.BindingName + " = step.value;")
	p.W.WriteLine()
	p.printBodyStatements(n.Body)
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("}")
	p.W.WriteLine()
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("}")
	p.W.WriteLine()
	p.W.WriteIndent()
	p.W.Write("catch (e_1_1) { e_1 = { error: e_1_1 }; }")
	p.W.WriteLine()
	p.W.WriteIndent()
	p.W.Write("finally {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	p.W.WriteIndent()
	p.W.Write("try { if (step && !step.done && (r = " + n.IteratorVar + ".return)) r.call(" + n.IteratorVar + "); }")
	p.W.WriteLine()
	p.W.WriteIndent()
	p.W.Write("finally { if (e_1) throw e_1.error; }")
	p.W.WriteLine()
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("}")
}

func (p *Printer) printForAwaitOfValues(n *ir.ForAwaitOfValues) {
	p.W.Write("var " + n.IteratorVar + " = __asyncValues(")
	p.Print(n.IterableExpr)
	p.W.Write(");")
	p.W.WriteLine()
	p.W.WriteIndent()
	p.W.Write("try {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	p.W.WriteIndent()
	p.W.Write("for (var step; step = await " + n.IteratorVar + ".next(), !step.done;) {")
	p.W.WriteLine()
	p.W.IncreaseIndent()
	p.W.WriteIndent()
	p.W.Write("var " + n.BindingName + " = step.value;")
	p.W.WriteLine()
	p.printBodyStatements(n.Body)
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("}")
	p.W.WriteLine()
	p.W.DecreaseIndent()
	p.W.WriteIndent()
	p.W.Write("}")
	p.W.WriteLine()
	p.W.WriteIndent()
	p.W.Write("finally { if (" + n.IteratorVar + " && " + n.IteratorVar + ".return) await " + n.IteratorVar + ".return(); }")
}

func (p *Printer) printBodyStatements(body []ir.Node) {
	for _, stmt := range body {
		p.W.WriteIndent()
		p.Print(stmt)
		p.W.WriteLine()
	}
}
