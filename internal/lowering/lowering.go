// Package lowering implements the Lowering Pass (C4): a single read-only
// pre-order walk over the AST arena that decides which nodes require
// semantic rewriting for the configured target and module format, producing
// a DirectiveMap and a HelpersNeeded bitset (§4.2). The pass never mutates
// the arena and never fails (§7): malformed recovery nodes are simply left
// undecorated so the emitter falls through to its pass-through path.
package lowering

import (
	"strconv"

	"github.com/mohsen1/tsz-sub019/internal/ast"
	"github.com/mohsen1/tsz-sub019/internal/compat"
	"github.com/mohsen1/tsz-sub019/internal/config"
	"github.com/mohsen1/tsz-sub019/internal/directive"
)

// maxDepth is the global AST-depth guard (§5 "Resource discipline"); beyond
// this depth the pass stops descending rather than overflowing the
// Go call stack on pathological/adversarial input.
const maxDepth = 500

// maxBindingPatternDepth bounds deeply nested destructuring patterns, a
// recursive shape that can blow the stack even at shallow overall AST depth.
// maxQualifiedNameDepth is not checked anywhere: `A.B.C. ... Z` qualified
// namespace names are scanned iteratively, not recursively.
const maxQualifiedNameDepth = 100
const maxBindingPatternDepth = 100

// scopeKind distinguishes a true function boundary (this/arguments bind
// here) from an arrow, which forwards both lexically to its enclosing
// scope (§4.2.3).
type scopeKind uint8

const (
	scopeFunction scopeKind = iota
	scopeArrow
)

type scopeFrame struct {
	kind scopeKind

	// Populated for scopeFunction frames only.
	fnBodyNode        ast.NodeIndex
	capturesThis      bool
	capturesArguments bool
	captureName       string // "_this", "_this_1", ... once assigned
	isStaticMember    bool
	className         string // for the static-member alias path (§4.2.5)
}

// Pass holds the traversal state for one file. Construct with New and call
// Run once; a Pass is not reusable across files.
type Pass struct {
	arena   *ast.Arena
	options config.Options

	unsupported compat.JSFeature

	directives directive.Map
	helpers    directive.HelpersNeeded

	scopes []scopeFrame
	depth  int

	// declaredTopLevelNames tracks names already emitted as `var NAME;` at
	// top level so a namespace merging into a pre-existing class/function/
	// enum suppresses re-declaring the variable (§4.2.7).
	declaredTopLevelNames map[string]bool

	// usedNames lets the capture-name allocator avoid colliding with a real
	// user identifier named `_this` (§4.2.3 "… if `_this` collides").
	usedNames map[string]bool

	nextThisCaptureSuffix int

	// exportInitNames collects every top-level, non-default, value-export
	// name across the whole file, in source order, for the single grouped
	// `exports.X = void 0;` line CommonJS output needs right after the
	// require statements (§4.4.7, §8 S2).
	exportInitNames []string
}

func New(arena *ast.Arena, options config.Options, usedNames map[string]bool) *Pass {
	if usedNames == nil {
		usedNames = map[string]bool{}
	}
	return &Pass{
		arena:                 arena,
		options:               options,
		unsupported:           options.Target.Unsupported(),
		directives:            directive.Map{},
		declaredTopLevelNames: map[string]bool{},
		usedNames:             usedNames,
	}
}

// Run executes the pass over root (a KindSourceFile node) and returns the
// resulting DirectiveMap and HelpersNeeded bitset (§4.2 entry point).
func (p *Pass) Run(root ast.NodeIndex) (directive.Map, directive.HelpersNeeded) {
	n := p.arena.Get(root)
	sf, ok := n.Data.(ast.SourceFile)
	if !ok {
		return p.directives, p.helpers
	}

	if p.options.Module.IsCommonJSLike() && sf.HasImportOrExportSyntax {
		p.helpers.Set(directive.HelperImportDefault) // always set here, so the helper prelude always carries __importDefault
	}

	for _, stmt := range sf.Statements {
		p.visitTopLevelStatement(stmt, sf.HasImportOrExportSyntax)
	}

	if len(p.exportInitNames) > 0 {
		p.directives.Set(root, directive.Directive{
			Kind:            directive.CommonJSFilePrologue,
			Node:            root,
			ExportInitNames: p.exportInitNames,
		})
	}

	return p.directives, p.helpers
}

func (p *Pass) withDepth(fn func()) {
	p.depth++
	if p.depth <= maxDepth {
		fn()
	}
	p.depth--
}

// --- target-below checks ---

func (p *Pass) below(f compat.JSFeature) bool { return p.unsupported.Has(f) }

// --- top-level statement dispatch, handling module-format wrapping ---

func (p *Pass) visitTopLevelStatement(idx ast.NodeIndex, isModule bool) {
	node := p.arena.Get(idx)

	isExported := node.Flags&ast.FlagExported != 0
	isDefault := node.Flags&ast.FlagDefaultExport != 0

	p.visitStatement(idx)

	if !p.options.Module.IsCommonJSLike() || !isExported {
		p.recordDeclaredName(idx)
		return
	}

	names := p.exportedNamesOf(node)
	inner, hasInner := p.directives.Get(idx)

	var innerPtr *directive.Directive
	if hasInner {
		cp := inner
		innerPtr = &cp
	}

	if isDefault && p.isExpressionDefaultExport(node) {
		p.directives.Set(idx, directive.Directive{Kind: directive.CommonJSExportDefaultExpr, Node: idx})
	} else {
		p.directives.Set(idx, directive.Directive{
			Kind:            directive.CommonJSExport,
			Node:            idx,
			ExportNames:     names,
			ExportIsDefault: isDefault,
			Inner:           innerPtr,
		})
		if !isDefault {
			p.exportInitNames = append(p.exportInitNames, names...)
		}
	}

	p.recordDeclaredName(idx)
}

func (p *Pass) isExpressionDefaultExport(node ast.Node) bool {
	switch node.Data.(type) {
	case ast.ExportAssignment:
		return true
	default:
		return false
	}
}

func (p *Pass) exportedNamesOf(node ast.Node) []string {
	switch d := node.Data.(type) {
	case ast.FunctionDeclaration:
		return []string{d.Name}
	case ast.ClassDeclaration:
		return []string{d.Name}
	case ast.EnumDeclaration:
		return []string{d.Name}
	case ast.ModuleDeclaration:
		return []string{d.Name}
	case ast.VariableStatement:
		list, ok := p.arena.Get(d.DeclList).Data.(ast.VariableDeclarationList)
		if !ok {
			return nil
		}
		var names []string
		for _, declIdx := range list.Decls {
			decl, ok := p.arena.Get(declIdx).Data.(ast.VariableDeclaration)
			if !ok {
				continue
			}
			names = append(names, p.bindingNames(decl.Name)...)
		}
		return names
	}
	return nil
}

func (p *Pass) bindingNames(idx ast.NodeIndex) []string {
	return p.bindingNamesDepth(idx, 0)
}

func (p *Pass) bindingNamesDepth(idx ast.NodeIndex, depth int) []string {
	if depth > maxBindingPatternDepth || !idx.IsValid() {
		return nil
	}
	n := p.arena.Get(idx)
	switch b := n.Data.(type) {
	case ast.IdentifierBinding:
		return []string{b.Name}
	case ast.ObjectBindingPattern:
		var names []string
		for _, elIdx := range b.Elements {
			el, ok := p.arena.Get(elIdx).Data.(ast.BindingElement)
			if !ok {
				continue
			}
			names = append(names, p.bindingNamesDepth(el.Name, depth+1)...)
		}
		return names
	case ast.ArrayBindingPattern:
		var names []string
		for _, elIdx := range b.Elements {
			if !elIdx.IsValid() {
				continue
			}
			el, ok := p.arena.Get(elIdx).Data.(ast.BindingElement)
			if !ok {
				continue
			}
			names = append(names, p.bindingNamesDepth(el.Name, depth+1)...)
		}
		return names
	}
	return nil
}

func (p *Pass) recordDeclaredName(idx ast.NodeIndex) {
	node := p.arena.Get(idx)
	switch d := node.Data.(type) {
	case ast.FunctionDeclaration:
		p.declaredTopLevelNames[d.Name] = true
	case ast.ClassDeclaration:
		p.declaredTopLevelNames[d.Name] = true
	case ast.EnumDeclaration:
		p.declaredTopLevelNames[d.Name] = true
	case ast.ModuleDeclaration:
		p.declaredTopLevelNames[rootOfQualifiedName(d.Name)] = true
	}
}

func rootOfQualifiedName(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return name
}

// --- statement traversal ---

func (p *Pass) visitStatement(idx ast.NodeIndex) {
	if !idx.IsValid() {
		return
	}
	p.withDepth(func() { p.visitStatementInner(idx) })
}

func (p *Pass) visitStatementInner(idx ast.NodeIndex) {
	node := p.arena.Get(idx)
	if node.Flags&ast.FlagHasRecoveryError != 0 {
		// §7 "Recovery AST": leave undecorated, emitter passes through verbatim.
		return
	}

	switch s := node.Data.(type) {
	case ast.Block:
		for _, st := range s.Statements {
			p.visitStatement(st)
		}

	case ast.VariableStatement:
		p.visitVariableDeclList(s.DeclList)

	case ast.ExpressionStatement:
		p.visitExpr(s.Expr)

	case ast.IfStatement:
		p.visitExpr(s.Cond)
		p.visitStatement(s.Then)
		p.visitStatement(s.Else)

	case ast.ForStatement:
		p.visitStatement(s.Init)
		p.visitExpr(s.Cond)
		p.visitExpr(s.Update)
		p.visitStatement(s.Body)

	case ast.ForInStatement:
		p.visitStatement(s.Initializer)
		p.visitExpr(s.Expr)
		p.visitStatement(s.Body)

	case ast.ForOfStatement:
		p.visitForOf(idx, s)

	case ast.WhileStatement:
		p.visitExpr(s.Cond)
		p.visitStatement(s.Body)

	case ast.DoStatement:
		p.visitStatement(s.Body)
		p.visitExpr(s.Cond)

	case ast.ReturnStatement:
		p.visitExpr(s.Expr)

	case ast.ThrowStatement:
		p.visitExpr(s.Expr)

	case ast.TryStatement:
		p.visitStatement(s.Block)
		if s.Catch != nil {
			p.visitStatement(s.Catch.Block)
		}
		p.visitStatement(s.Finally)

	case ast.SwitchStatement:
		p.visitExpr(s.Expr)
		for _, c := range s.Cases {
			cc, ok := p.arena.Get(c).Data.(ast.CaseClause)
			if !ok {
				continue
			}
			p.visitExpr(cc.Expr)
			for _, st := range cc.Statements {
				p.visitStatement(st)
			}
		}

	case ast.LabeledStatement:
		p.visitStatement(s.Body)

	case ast.FunctionDeclaration:
		p.visitFunctionLike(idx, s.Params, s.Body, false, "")

	case ast.ClassDeclaration:
		p.visitClass(idx, s.Name, s.HeritageBase, s.Members)

	case ast.EnumDeclaration:
		p.visitEnum(idx, s)

	case ast.ModuleDeclaration:
		p.visitNamespace(idx, s)

	case ast.ImportDeclaration:
		p.visitImportDeclaration(idx, s)

	case ast.ImportEqualsDeclaration:
		p.visitImportEqualsDeclaration(idx, s)
	}
}

// usesFlatRequireStyle reports whether the configured module format wraps
// imports as inline `var x = require("m");` statements. AMD/UMD/System
// instead fold static dependencies into the wrapper's own header (the
// `define([...])` dependency array or System.register's `setters`), a
// different rewrite this pass does not attempt (§4.4.7 bounded scope; see
// DESIGN.md).
func (p *Pass) usesFlatRequireStyle() bool {
	switch p.options.Module {
	case compat.ModuleCommonJS, compat.ModuleNode16, compat.ModuleNodeNext:
		return true
	default:
		return false
	}
}

// visitImportDeclaration rewrites `import ... from "m";` into a require()
// call (§4.4.7 "CommonJS module"), but only for the import shapes whose
// local bindings need no rename: a side-effect-only import (no bindings at
// all) and a pure namespace import (`import * as ns from "m"`, where `ns`
// is already the require() result's local name). A default or named import
// would need every reference to the bound name rewritten to `mod_N.default`
// / `mod_N.x`, which requires resolving identifier references back to their
// declaring import — out of scope without a binder (this repo's parser/
// binder/checker stand-in, internal/ast/fixture.go, does not resolve
// symbols). Those shapes are left as verbatim ESM passthrough.
func (p *Pass) visitImportDeclaration(idx ast.NodeIndex, decl ast.ImportDeclaration) {
	if !p.usesFlatRequireStyle() {
		return
	}
	hasDefault := decl.DefaultImport != ""
	hasNamed := len(decl.NamedImports) > 0
	hasNamespace := decl.NamespaceImport != ""

	switch {
	case !hasDefault && !hasNamed && !hasNamespace:
		p.directives.Set(idx, directive.Directive{
			Kind:               directive.ModuleWrapper,
			Node:               idx,
			ModuleDependencies: []string{decl.ModuleSpecifier},
		})
	case hasNamespace && !hasDefault && !hasNamed:
		p.directives.Set(idx, directive.Directive{
			Kind:               directive.ModuleWrapper,
			Node:               idx,
			ModuleDependencies: []string{decl.ModuleSpecifier},
			RequireVarName:     decl.NamespaceImport,
			RequireStar:        true,
		})
	}
}

// visitImportEqualsDeclaration rewrites `import x = require("m");` into
// `var x = require("m");`; the local name never needs renaming since tsc's
// own lowering keeps it identical (§4.4.7). A non-external `import x = A.B;`
// alias has no module dependency to require and is left untouched.
func (p *Pass) visitImportEqualsDeclaration(idx ast.NodeIndex, decl ast.ImportEqualsDeclaration) {
	if !p.usesFlatRequireStyle() || !decl.IsExternal {
		return
	}
	p.directives.Set(idx, directive.Directive{
		Kind:               directive.ModuleWrapper,
		Node:               idx,
		ModuleDependencies: []string{decl.ModuleReference},
		RequireVarName:     decl.Name,
	})
}

func (p *Pass) visitVariableDeclList(idx ast.NodeIndex) {
	if !idx.IsValid() {
		return
	}
	list, ok := p.arena.Get(idx).Data.(ast.VariableDeclarationList)
	if !ok {
		return
	}
	if list.Kind != "var" && p.below(compat.Let) {
		p.directives.Set(idx, directive.Directive{Kind: directive.ES5VariableDeclarationList, Node: idx})
	}
	for _, d := range list.Decls {
		decl, ok := p.arena.Get(d).Data.(ast.VariableDeclaration)
		if !ok {
			continue
		}
		p.visitExpr(decl.Initializer)
	}
}

func (p *Pass) visitForOf(idx ast.NodeIndex, s ast.ForOfStatement) {
	p.visitStatement(s.Initializer)
	p.visitExpr(s.Expr)
	p.visitStatement(s.Body)

	if s.IsAwait {
		if p.below(compat.ForAwaitOf) {
			p.directives.Set(idx, directive.Directive{Kind: directive.ES5ForOf, Node: idx})
			p.helpers.Set(directive.HelperAsyncValues)
		}
		return
	}
	if p.below(compat.ForOf) {
		p.directives.Set(idx, directive.Directive{Kind: directive.ES5ForOf, Node: idx})
		if p.options.DownlevelIteration {
			p.helpers.Set(directive.HelperValues)
			p.helpers.Set(directive.HelperRead)
		}
	}
}

// --- class / enum / namespace ---

func (p *Pass) visitClass(idx ast.NodeIndex, name string, base ast.NodeIndex, members []ast.NodeIndex) {
	isDerived := base.IsValid()
	needsES5 := p.below(compat.Classes)

	if needsES5 {
		var baseRef ast.Ref
		if isDerived {
			if baseIdent, ok := p.arena.Get(base).Data.(ast.Identifier); ok {
				baseRef = baseIdent.Ref
			}
		}
		p.directives.Set(idx, directive.Directive{Kind: directive.ES5Class, Node: idx, BaseRef: baseRef})
		if isDerived {
			p.helpers.Set(directive.HelperExtends)
		}
	}

	if isDerived {
		p.visitExpr(base)
	}

	for _, m := range members {
		p.visitClassMember(m, name, isDerived, needsES5)
	}
}

func (p *Pass) visitClassMember(idx ast.NodeIndex, className string, isDerived, needsES5 bool) {
	node := p.arena.Get(idx)
	isStatic := node.Flags&ast.FlagStatic != 0

	switch m := node.Data.(type) {
	case ast.MethodLikeDeclaration:
		if m.Kind == ast.MethodKindConstructor && needsES5 && isDerived {
			p.markSuperCallsInConstructor(m.Body)
		}
		p.visitFunctionLike(idx, m.Params, m.Body, isStatic, className)

	case ast.PropertyDeclaration:
		p.visitExpr(m.Initializer)

	case ast.ClassStaticBlock:
		p.visitStatement(m.Body)
	}

	if priv, ok := node.Data.(ast.MethodLikeDeclaration); ok {
		if nameNode, ok2 := p.arena.Get(priv.Name).Data.(ast.PrivateIdentifier); ok2 {
			_ = nameNode
			if p.below(compat.ClassPrivateMethod) {
				p.helpers.Set(directive.HelperClassPrivateFieldGet)
			}
		}
	}
	if pd, ok := node.Data.(ast.PropertyDeclaration); ok {
		if _, isPriv := p.arena.Get(pd.Name).Data.(ast.PrivateIdentifier); isPriv && p.below(compat.ClassPrivateField) {
			p.helpers.Set(directive.HelperClassPrivateFieldGet)
			p.helpers.Set(directive.HelperClassPrivateFieldSet)
		}
	}
}

// markSuperCallsInConstructor walks a constructor body looking for bare
// `super(...)` call statements and tags each with ES5SuperCall (§4.2.4).
// This is a narrow, bounded scan (not a full expression visit) because
// super() calls are only meaningful as statement-level call expressions.
func (p *Pass) markSuperCallsInConstructor(body ast.NodeIndex) {
	if !body.IsValid() {
		return
	}
	block, ok := p.arena.Get(body).Data.(ast.Block)
	if !ok {
		return
	}
	for _, stmtIdx := range block.Statements {
		p.scanForSuperCall(stmtIdx, 0)
	}
}

func (p *Pass) scanForSuperCall(idx ast.NodeIndex, depth int) {
	if !idx.IsValid() || depth > 50 {
		return
	}
	node := p.arena.Get(idx)
	switch s := node.Data.(type) {
	case ast.ExpressionStatement:
		if call, ok := p.arena.Get(s.Expr).Data.(ast.CallExpression); ok {
			if _, isSuper := p.arena.Get(call.Callee).Data.(ast.SuperExpression); isSuper {
				p.directives.Set(idx, directive.Directive{Kind: directive.ES5SuperCall, Node: idx})
			}
		}
	case ast.IfStatement:
		p.scanForSuperCall(s.Then, depth+1)
		p.scanForSuperCall(s.Else, depth+1)
	case ast.Block:
		for _, st := range s.Statements {
			p.scanForSuperCall(st, depth+1)
		}
	}
}

func (p *Pass) visitEnum(idx ast.NodeIndex, e ast.EnumDeclaration) {
	if p.below(compat.Classes) { // enums predate ES2015 entirely; native form never exists
		p.directives.Set(idx, directive.Directive{Kind: directive.ES5Enum, Node: idx})
	} else {
		p.directives.Set(idx, directive.Directive{Kind: directive.ES5Enum, Node: idx})
	}
	for _, m := range e.Members {
		if mem, ok := p.arena.Get(m).Data.(ast.EnumMember); ok {
			p.visitExpr(mem.Initializer)
		}
	}
}

func (p *Pass) visitNamespace(idx ast.NodeIndex, m ast.ModuleDeclaration) {
	root := rootOfQualifiedName(m.Name)
	declareVar := !p.declaredTopLevelNames[root]
	p.directives.Set(idx, directive.Directive{Kind: directive.ES5Namespace, Node: idx, DeclareVar: declareVar})
	for _, st := range m.Body {
		p.visitStatement(st)
	}
}

// --- functions / arrows, and this/arguments capture (§4.2.3) ---

func (p *Pass) visitFunctionLike(declIdx ast.NodeIndex, params []ast.NodeIndex, body ast.NodeIndex, isStaticMember bool, className string) {
	if len(params) > 0 && (p.below(compat.DefaultArguments) || p.below(compat.RestArguments) || p.below(compat.Destructuring)) {
		if paramsNeedRewrite(p.arena, params) {
			p.directives.Set(declIdx, directive.Directive{Kind: directive.ES5FunctionParameters, Node: declIdx})
		}
	}
	for _, param := range params {
		if pm, ok := p.arena.Get(param).Data.(ast.Parameter); ok {
			p.visitExpr(pm.Initializer)
		}
	}

	frame := scopeFrame{kind: scopeFunction, fnBodyNode: body, isStaticMember: isStaticMember, className: className}
	p.scopes = append(p.scopes, frame)
	p.visitStatement(body)
	finished := p.scopes[len(p.scopes)-1]
	p.scopes = p.scopes[:len(p.scopes)-1]

	if (finished.capturesThis && !finished.isStaticMember) || finished.capturesArguments {
		p.directives.Set(finished.fnBodyNode, directive.Directive{
			Kind:              directive.FunctionCapture,
			Node:              finished.fnBodyNode,
			CapturesThis:      finished.capturesThis && !finished.isStaticMember,
			CapturesArguments: finished.capturesArguments,
			CaptureName:       finished.captureName,
		})
	}
}

// paramsNeedRewrite reports whether any parameter in the list has a
// default initializer, is a rest parameter, or destructures a binding
// pattern — any of which requires the ES5 parameter-prologue rewrite.
func paramsNeedRewrite(arena *ast.Arena, params []ast.NodeIndex) bool {
	for _, param := range params {
		pm, ok := arena.Get(param).Data.(ast.Parameter)
		if !ok {
			continue
		}
		if pm.IsRest || pm.Initializer.IsValid() {
			return true
		}
		switch arena.Get(pm.Name).Data.(type) {
		case ast.ObjectBindingPattern, ast.ArrayBindingPattern:
			return true
		}
	}
	return false
}

func (p *Pass) visitArrow(idx ast.NodeIndex, arrow ast.ArrowFunction) {
	needsES5Arrow := p.below(compat.ArrowFunctions)

	for _, param := range arrow.Params {
		if pm, ok := p.arena.Get(param).Data.(ast.Parameter); ok {
			p.visitExpr(pm.Initializer)
		}
	}

	p.scopes = append(p.scopes, scopeFrame{kind: scopeArrow})
	if arrow.IsBlockBody {
		p.visitStatement(arrow.Body)
	} else {
		p.visitExpr(arrow.Body)
	}
	p.scopes = p.scopes[:len(p.scopes)-1]

	if needsES5Arrow {
		owner := p.nearestFunctionFrame()
		var alias string
		if owner != nil && owner.isStaticMember {
			alias = owner.className
		}
		p.directives.Set(idx, directive.Directive{
			Kind:         directive.ES5ArrowFunction,
			Node:         idx,
			CapturesThis: owner != nil && owner.capturesThis,
			ClassAlias:   alias,
		})
	}
}

// nearestFunctionFrame returns a pointer into p.scopes at the nearest
// enclosing scopeFunction frame, letting callers read/mutate it in place.
func (p *Pass) nearestFunctionFrame() *scopeFrame {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if p.scopes[i].kind == scopeFunction {
			return &p.scopes[i]
		}
	}
	return nil
}

// insideArrow reports whether the current position is lexically inside at
// least one arrow function relative to the nearest enclosing real function
// (i.e. whether a `this`/`arguments` reference here needs substitution).
func (p *Pass) insideArrow() bool {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if p.scopes[i].kind == scopeFunction {
			return false
		}
		if p.scopes[i].kind == scopeArrow {
			return true
		}
	}
	return false
}

func (p *Pass) allocateThisCaptureName() string {
	name := "_this"
	for p.usedNames[name] {
		p.nextThisCaptureSuffix++
		name = "_this_" + strconv.Itoa(p.nextThisCaptureSuffix)
	}
	p.usedNames[name] = true
	return name
}

func (p *Pass) markThisReference(idx ast.NodeIndex) {
	if !p.insideArrow() || !p.below(compat.ArrowFunctions) {
		return
	}
	owner := p.nearestFunctionFrame()
	if owner == nil {
		return
	}
	owner.capturesThis = true
	var name string
	if owner.isStaticMember {
		name = owner.className
	} else {
		if owner.captureName == "" {
			owner.captureName = p.allocateThisCaptureName()
		}
		name = owner.captureName
	}
	p.directives.Set(idx, directive.Directive{Kind: directive.SubstituteThis, Node: idx, CaptureName: name})
}

func (p *Pass) markArgumentsReference(idx ast.NodeIndex) {
	if !p.insideArrow() || !p.below(compat.ArrowFunctions) {
		return
	}
	owner := p.nearestFunctionFrame()
	if owner == nil {
		return
	}
	owner.capturesArguments = true
	p.directives.Set(idx, directive.Directive{Kind: directive.SubstituteArguments, Node: idx})
}

// --- expression traversal ---

func (p *Pass) visitExpr(idx ast.NodeIndex) {
	if !idx.IsValid() {
		return
	}
	p.withDepth(func() { p.visitExprInner(idx) })
}

func (p *Pass) visitExprInner(idx ast.NodeIndex) {
	node := p.arena.Get(idx)
	if node.Flags&ast.FlagHasRecoveryError != 0 {
		return
	}

	switch e := node.Data.(type) {
	case ast.ThisExpression:
		p.markThisReference(idx)

	case ast.Identifier:
		if e.Name == "arguments" {
			p.markArgumentsReference(idx)
		}

	case ast.ArrayLiteralExpression:
		hasSpread := false
		for _, el := range e.Elements {
			p.visitExpr(el)
			if _, ok := p.arena.Get(el).Data.(ast.SpreadElement); ok {
				hasSpread = true
			}
		}
		if hasSpread && p.below(compat.ArraySpread) {
			p.directives.Set(idx, directive.Directive{Kind: directive.ES5ArrayLiteral, Node: idx})
			p.helpers.Set(directive.HelperSpreadArray)
		}

	case ast.ObjectLiteralExpression:
		hasSpread := false
		for _, prop := range e.Properties {
			switch pr := p.arena.Get(prop).Data.(type) {
			case ast.PropertyAssignment:
				p.visitExpr(pr.Value)
			case ast.SpreadAssignment:
				p.visitExpr(pr.Expr)
				hasSpread = true
			}
		}
		if hasSpread && p.below(compat.ObjectSpread) {
			p.directives.Set(idx, directive.Directive{Kind: directive.ES5ObjectLiteral, Node: idx})
			p.helpers.Set(directive.HelperAssign)
		}

	case ast.ParenthesizedExpression:
		p.visitExpr(e.Expr)

	case ast.BinaryExpression:
		p.visitExpr(e.Left)
		p.visitExpr(e.Right)

	case ast.UnaryExpression:
		p.visitExpr(e.Operand)

	case ast.ConditionalExpression:
		p.visitExpr(e.Cond)
		p.visitExpr(e.Then)
		p.visitExpr(e.Else)

	case ast.CallExpression:
		p.visitExpr(e.Callee)
		hasSpread := false
		for _, a := range e.Args {
			p.visitExpr(a)
			if _, ok := p.arena.Get(a).Data.(ast.SpreadElement); ok {
				hasSpread = true
			}
		}
		if hasSpread && p.below(compat.ArraySpread) {
			p.directives.Set(idx, directive.Directive{Kind: directive.ES5CallSpread, Node: idx})
			p.helpers.Set(directive.HelperSpreadArray)
		}

	case ast.NewExpression:
		p.visitExpr(e.Callee)
		for _, a := range e.Args {
			p.visitExpr(a)
		}

	case ast.PropertyAccessExpression:
		p.visitExpr(e.Expr)

	case ast.ElementAccessExpression:
		p.visitExpr(e.Expr)
		p.visitExpr(e.Index)

	case ast.NonNullExpression:
		p.visitExpr(e.Expr)

	case ast.ArrowFunction:
		p.visitArrow(idx, e)

	case ast.FunctionExpression:
		p.visitFunctionLike(idx, e.Params, e.Body, false, "")
		if e.IsAsync && p.below(compat.AsyncAwait) {
			p.directives.Set(idx, directive.Directive{Kind: directive.ES5AsyncFunction, Node: idx})
			p.helpers.Set(directive.HelperAwaiter)
			p.helpers.Set(directive.HelperGenerator)
		}

	case ast.ClassLikeExpression:
		if p.below(compat.Classes) {
			p.directives.Set(idx, directive.Directive{Kind: directive.ES5ClassExpression, Node: idx})
			if e.HeritageBase.IsValid() {
				p.helpers.Set(directive.HelperExtends)
			}
		}
		for _, m := range e.Members {
			p.visitClassMember(m, e.Name, e.HeritageBase.IsValid(), p.below(compat.Classes))
		}

	case ast.AwaitExpression:
		p.visitExpr(e.Expr)

	case ast.YieldExpression:
		p.visitExpr(e.Expr)

	case ast.AsExpression:
		p.visitExpr(e.Expr)

	case ast.TemplateExpression:
		for _, span := range e.Spans {
			p.visitExpr(span.Expr)
		}
		if p.below(compat.TemplateLiteral) {
			p.directives.Set(idx, directive.Directive{Kind: directive.ES5TemplateLiteral, Node: idx})
		}

	case ast.TaggedTemplateExpression:
		p.visitExpr(e.Tag)
		if tmpl, ok := p.arena.Get(e.Template).Data.(ast.TemplateExpression); ok {
			for _, span := range tmpl.Spans {
				p.visitExpr(span.Expr)
			}
		}
		if p.below(compat.TaggedTemplateLiteral) {
			p.directives.Set(idx, directive.Directive{Kind: directive.ES5TemplateLiteral, Node: idx})
			p.helpers.Set(directive.HelperMakeTemplateObject)
		}

	case ast.ComputedPropertyName:
		p.visitExpr(e.Expr)
	}
}
