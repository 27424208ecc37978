// Package declaration implements the Declaration Emitter (C7): a parallel
// printer that produces type-erased `.d.ts` surface syntax from the same
// AST arena the Emission Engine consumes, consulting a TypeCache/
// TypeInterner/Binder for inferred types instead of re-deriving them.
// There is no direct teacher analogue (esbuild does not emit .d.ts at
// all — TypeScript declaration stripping is its one JS-only concern), so
// this package is grounded on the Emission Engine's own "read the arena,
// write through a buffer" shape, generalized from JS output to erased
// type surface.
package declaration

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mohsen1/tsz-sub019/internal/ast"
	"github.com/mohsen1/tsz-sub019/internal/config"
	"github.com/mohsen1/tsz-sub019/internal/typeprinter"
)

// Emitter is the per-file declaration driver, mirroring emitter.Engine's
// shape: construct with New, call EmitFile once.
type Emitter struct {
	arena    *ast.Arena
	types    ast.TypeCache
	interner ast.TypeInterner
	binder   ast.Binder
	printer  *typeprinter.Printer
	options  config.Options

	buf            strings.Builder
	indent         int
	hasValueExport bool
	importLocalNames []string
}

// New builds an Emitter for one file. types/interner/binder may be nil —
// callers with no checker available get "any" for every inferred type
// rather than a panic, matching §7's missing-type fallback.
func New(arena *ast.Arena, types ast.TypeCache, interner ast.TypeInterner, binder ast.Binder, options config.Options) *Emitter {
	return &Emitter{
		arena:    arena,
		types:    types,
		interner: interner,
		binder:   binder,
		printer:  typeprinter.New(interner),
		options:  options,
	}
}

// EmitFile renders root (a KindSourceFile node) to `.d.ts` text (§4.5).
func (e *Emitter) EmitFile(root ast.NodeIndex) string {
	sf, ok := e.arena.Get(root).Data.(ast.SourceFile)
	if !ok {
		return ""
	}

	var importLines []string
	var bodyStmts []ast.NodeIndex
	for _, stmt := range sf.Statements {
		if imp, ok := e.arena.Get(stmt).Data.(ast.ImportDeclaration); ok {
			importLines = append(importLines, e.formatImport(imp))
			continue
		}
		bodyStmts = append(bodyStmts, stmt)
	}

	for _, stmt := range dedupeOverloadImplementations(e.arena, bodyStmts) {
		e.emitTopLevel(stmt)
	}

	if sf.HasImportOrExportSyntax && !e.hasValueExport && !e.options.EmitPublicAPIOnly {
		e.writeIndentedLine("export {};")
	}

	body := e.buf.String()
	keptImports := e.pruneUnusedImports(importLines, body)
	if len(keptImports) == 0 {
		return body
	}
	return strings.Join(keptImports, "\n") + "\n" + body
}

// pruneUnusedImports keeps only the user-declared import lines whose bound
// local name actually appears (as a whole token) in the emitted body —
// the step 3/4 "import plan" reduced to what a purely syntactic scan can
// determine without a full cross-file symbol graph (§4.5 steps 3–4;
// foreign-symbol auto-import generation is out of scope here, see
// DESIGN.md).
func (e *Emitter) pruneUnusedImports(lines []string, body string) []string {
	isIdentByte := func(b byte) bool {
		return b == '_' || b == '$' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
	}
	var kept []string
	for i, line := range lines {
		name := e.importLocalNames[i]
		used := name == ""
		for off := 0; !used; {
			j := strings.Index(body[off:], name)
			if j < 0 {
				break
			}
			start, end := off+j, off+j+len(name)
			used = (start == 0 || !isIdentByte(body[start-1])) && (end == len(body) || !isIdentByte(body[end]))
			off = start + 1
		}
		if used {
			kept = append(kept, line)
		}
	}
	return kept
}

func (e *Emitter) formatImport(imp ast.ImportDeclaration) string {
	var names []string
	primary := ""
	if imp.DefaultImport != "" {
		names = append(names, imp.DefaultImport)
		primary = imp.DefaultImport
	}
	if imp.NamespaceImport != "" {
		names = append(names, "* as "+imp.NamespaceImport)
		if primary == "" {
			primary = imp.NamespaceImport
		}
	}
	var namedParts []string
	for _, s := range imp.NamedImports {
		if s.ImportedName == s.LocalName {
			namedParts = append(namedParts, s.LocalName)
		} else {
			namedParts = append(namedParts, s.ImportedName+" as "+s.LocalName)
		}
		if primary == "" {
			primary = s.LocalName
		}
	}
	if len(namedParts) > 0 {
		names = append(names, "{ "+strings.Join(namedParts, ", ")+" }")
	}
	e.importLocalNames = append(e.importLocalNames, primary)
	kw := "import"
	if imp.IsTypeOnly {
		kw = "import type"
	}
	return kw + " " + strings.Join(names, ", ") + ` from "` + imp.ModuleSpecifier + `";`
}

// dedupeOverloadImplementations drops the implementation signature that
// follows N-1 overload signatures for the same function name (§4.5 step 7).
// It is applied to top-level statements only and recognizes only
// FunctionDeclaration: class methods and constructors are emitted without
// this step, so an overloaded method keeps its implementation signature.
// An overload signature is a FunctionDeclaration whose Body is invalid; the
// implementation is the first one with a valid Body immediately following a
// run of same-named overloads.
func dedupeOverloadImplementations(arena *ast.Arena, stmts []ast.NodeIndex) []ast.NodeIndex {
	var out []ast.NodeIndex
	lastOverloadName := ""
	sawOverload := false
	for _, s := range stmts {
		if fn, ok := arena.Get(s).Data.(ast.FunctionDeclaration); ok {
			if !fn.Body.IsValid() {
				out = append(out, s)
				lastOverloadName = fn.Name
				sawOverload = true
				continue
			}
			if sawOverload && fn.Name == lastOverloadName {
				sawOverload = false
				lastOverloadName = ""
				continue // implementation; already covered by its overloads
			}
		} else {
			sawOverload = false
		}
		out = append(out, s)
	}
	return out
}

func (e *Emitter) emitTopLevel(idx ast.NodeIndex) {
	node := e.arena.Get(idx)
	isExported := node.Flags&ast.FlagExported != 0
	isDefault := node.Flags&ast.FlagDefaultExport != 0
	isAmbient := node.Flags&ast.FlagAmbient != 0
	if isAmbient {
		return
	}
	if e.options.EmitPublicAPIOnly && !isExported {
		return
	}

	switch d := node.Data.(type) {
	case ast.FunctionDeclaration:
		e.hasValueExport = e.hasValueExport || isExported
		e.emitFunctionSignature(idx, d, isExported, isDefault)
	case ast.ClassDeclaration:
		e.hasValueExport = e.hasValueExport || isExported
		e.emitClass(d, isExported, isDefault)
	case ast.ErasedDeclaration:
		e.writeIndentedLine(e.exportPrefix(isExported) + strings.TrimSpace(e.arena.Text(node)))
	case ast.EnumDeclaration:
		e.hasValueExport = e.hasValueExport || isExported
		e.emitEnum(d, node.Flags, isExported)
	case ast.ModuleDeclaration:
		e.emitNamespace(d, isExported)
	case ast.VariableStatement:
		e.hasValueExport = e.hasValueExport || isExported
		e.emitVariableStatement(d, isExported)
	case ast.ExportDeclaration:
		e.writeIndentedLine(formatExportDeclaration(d))
	case ast.ExportAssignment:
		e.hasValueExport = true
		e.emitExportAssignment(d)
	}
}

// emitExportAssignment handles `export = expr;` and a default-exported
// expression that isn't already covered by emitFunctionSignature/emitClass
// (i.e. `export default <identifier-or-literal>;`), lifting the latter
// through a synthesized `_default` const when the expression isn't itself
// a bare identifier so the declared type still has somewhere to attach.
func (e *Emitter) emitExportAssignment(d ast.ExportAssignment) {
	if d.IsExportEquals {
		e.writeIndentedLine("export = " + identifierOrOpaque(e.arena, d.Expr) + ";")
		return
	}
	if id, ok := e.arena.Get(d.Expr).Data.(ast.Identifier); ok {
		e.writeIndentedLine("export default " + id.Name + ";")
		return
	}
	e.writeIndentedLine("declare const _default: " + e.typeOf(d.Expr) + ";")
	e.writeIndentedLine("export default _default;")
}

func (e *Emitter) exportPrefix(isExported bool) string {
	if isExported {
		return "export declare "
	}
	return "declare "
}

func (e *Emitter) emitFunctionSignature(idx ast.NodeIndex, fn ast.FunctionDeclaration, isExported, isDefault bool) {
	prefix := e.exportPrefix(isExported)
	if isDefault {
		prefix = "export default "
	}
	e.writeIndentedLine(prefix + "function " + fn.Name + "(" + e.paramList(fn.Params) + "): " + e.returnTypeOf(idx) + ";")
}

func (e *Emitter) emitClass(c ast.ClassDeclaration, isExported, isDefault bool) {
	prefix := e.exportPrefix(isExported)
	if isDefault {
		prefix = "export default "
	}
	header := prefix + "class " + c.Name
	if c.HeritageBase.IsValid() {
		header += " extends " + identifierOrOpaque(e.arena, c.HeritageBase)
	}
	e.writeIndentedLine(header + " {")
	e.indent++
	for _, m := range c.Members {
		e.emitClassMember(m)
	}
	e.indent--
	e.writeIndentedLine("}")
}

func (e *Emitter) emitClassMember(idx ast.NodeIndex) {
	node := e.arena.Get(idx)
	switch m := node.Data.(type) {
	case ast.MethodLikeDeclaration:
		e.emitMethodSignature(idx, m)
	case ast.PropertyDeclaration:
		readonly := ""
		if node.Flags&ast.FlagReadonly != 0 {
			readonly = "readonly "
		}
		e.writeIndentedLine(readonly + identifierText(e.arena, m.Name) + ": " + e.typeOf(idx) + ";")
	case ast.ClassStaticBlock:
		// Static initialization blocks have no declared surface.
	}
}

func (e *Emitter) emitMethodSignature(idx ast.NodeIndex, m ast.MethodLikeDeclaration) {
	name := identifierText(e.arena, m.Name)
	switch m.Kind {
	case ast.MethodKindConstructor:
		var props []string
		for _, p := range m.Params {
			if pd, ok := e.arena.Get(p).Data.(ast.Parameter); ok && pd.IsParameterProperty {
				props = append(props, identifierText(e.arena, pd.Name)+": "+e.typeOf(p)+";")
			}
		}
		for _, prop := range props {
			e.writeIndentedLine(prop)
		}
		e.writeIndentedLine("constructor(" + e.paramList(m.Params) + ");")
	case ast.MethodKindGet:
		e.writeIndentedLine("get " + name + "(): " + e.typeOf(idx) + ";")
	case ast.MethodKindSet:
		e.writeIndentedLine("set " + name + "(" + e.paramList(m.Params) + ");")
	default:
		e.writeIndentedLine(name + "(" + e.paramList(m.Params) + "): " + e.returnTypeOf(idx) + ";")
	}
}

func (e *Emitter) paramList(params []ast.NodeIndex) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		pd, ok := e.arena.Get(p).Data.(ast.Parameter)
		if !ok {
			continue
		}
		text := identifierText(e.arena, pd.Name)
		if pd.IsRest {
			text = "..." + text
		}
		if pd.Initializer.IsValid() {
			text += "?"
		}
		text += ": " + e.typeOf(p)
		parts = append(parts, text)
	}
	return strings.Join(parts, ", ")
}

func (e *Emitter) returnTypeOf(bodyOrSelf ast.NodeIndex) string {
	return e.typeOf(bodyOrSelf)
}

func (e *Emitter) typeOf(idx ast.NodeIndex) string {
	if e.types == nil {
		return "any"
	}
	id, ok := e.types.TypeOfNode(idx)
	if !ok {
		return "any"
	}
	return e.printer.Print(id)
}

func (e *Emitter) emitEnum(en ast.EnumDeclaration, flags ast.Flags, isExported bool) {
	isConst := flags&ast.FlagConst != 0
	kw := "declare "
	if isConst {
		kw = "declare const "
	}
	prefix := kw
	if isExported {
		prefix = "export " + kw
	}
	e.writeIndentedLine(prefix + "enum " + en.Name + " {")
	e.indent++
	nextAuto := 0.0
	for i, m := range en.Members {
		mem, ok := e.arena.Get(m).Data.(ast.EnumMember)
		if !ok {
			continue
		}
		name := identifierText(e.arena, mem.Name)
		suffix := ","
		if i == len(en.Members)-1 {
			suffix = ""
		}
		if isConst {
			val, auto := e.foldEnumValue(mem, nextAuto)
			nextAuto = auto
			e.writeIndentedLine(name + " = " + val + suffix)
			continue
		}
		if mem.Initializer.IsValid() {
			if lit, ok := literalText(e.arena, mem.Initializer); ok {
				e.writeIndentedLine(name + " = " + lit + suffix)
				continue
			}
		}
		e.writeIndentedLine(name + suffix)
	}
	e.indent--
	e.writeIndentedLine("}")
}

// foldEnumValue constant-folds a const enum member's value for declaration
// emission (§8 S9): string literals keep their quoted text, numeric
// literals their parsed value, and an absent initializer auto-increments
// from the running counter.
func (e *Emitter) foldEnumValue(mem ast.EnumMember, nextAuto float64) (string, float64) {
	if !mem.Initializer.IsValid() {
		return formatFloat(nextAuto), nextAuto + 1
	}
	if s, ok := e.arena.Get(mem.Initializer).Data.(ast.StringLiteral); ok {
		return strconv.Quote(s.Value), nextAuto
	}
	if n, ok := e.arena.Get(mem.Initializer).Data.(ast.NumericLiteral); ok {
		if v, err := strconv.ParseFloat(n.Text, 64); err == nil {
			return formatFloat(v), v + 1
		}
	}
	return formatFloat(nextAuto), nextAuto + 1
}

func (e *Emitter) emitNamespace(m ast.ModuleDeclaration, isExported bool) {
	e.writeIndentedLine(e.exportPrefix(isExported) + "namespace " + m.Name + " {")
	e.indent++
	for _, stmt := range m.Body {
		e.emitTopLevel(stmt)
	}
	e.indent--
	e.writeIndentedLine("}")
}

func (e *Emitter) emitVariableStatement(vs ast.VariableStatement, isExported bool) {
	list, ok := e.arena.Get(vs.DeclList).Data.(ast.VariableDeclarationList)
	if !ok {
		return
	}
	kw := list.Kind
	if kw == "" {
		kw = "const"
	}
	for _, d := range list.Decls {
		decl, ok := e.arena.Get(d).Data.(ast.VariableDeclaration)
		if !ok {
			continue
		}
		for _, line := range e.flattenDeclaration(decl.Name, decl.Initializer, kw, isExported) {
			e.writeIndentedLine(line)
		}
	}
}

// flattenDeclaration expands a binding (plain identifier or destructuring
// pattern) into one `declare const name: T;` line per bound identifier
// (§4.5 step 5 "Destructuring is flattened to individual declarations").
func (e *Emitter) flattenDeclaration(name, initializer ast.NodeIndex, kw string, isExported bool) []string {
	prefix := e.exportPrefix(isExported) + kw + " "
	switch b := e.arena.Get(name).Data.(type) {
	case ast.IdentifierBinding:
		return []string{prefix + b.Name + ": " + e.variableType(name, initializer) + ";"}
	case ast.ObjectBindingPattern:
		var out []string
		for _, el := range b.Elements {
			if be, ok := e.arena.Get(el).Data.(ast.BindingElement); ok {
				out = append(out, e.flattenDeclaration(be.Name, ast.InvalidNode, kw, isExported)...)
			}
		}
		return out
	case ast.ArrayBindingPattern:
		var out []string
		for _, el := range b.Elements {
			if !el.IsValid() {
				continue
			}
			if be, ok := e.arena.Get(el).Data.(ast.BindingElement); ok {
				out = append(out, e.flattenDeclaration(be.Name, ast.InvalidNode, kw, isExported)...)
			}
		}
		return out
	default:
		return nil
	}
}

// variableType resolves the printed type for a single declared variable,
// applying the literal/unique-symbol/any special cases in §4.5 step 5.
func (e *Emitter) variableType(name, initializer ast.NodeIndex) string {
	if initializer.IsValid() {
		switch init := e.arena.Get(initializer).Data.(type) {
		case ast.NullLiteral:
			return "any"
		case ast.Identifier:
			if init.Name == "undefined" {
				return "any"
			}
		case ast.CallExpression:
			if callee, ok := e.arena.Get(init.Callee).Data.(ast.Identifier); ok && callee.Name == "Symbol" {
				return "unique symbol"
			}
		}
		if lit, ok := literalText(e.arena, initializer); ok {
			return lit
		}
	}
	return e.typeOf(name)
}

func (e *Emitter) writeIndentedLine(line string) {
	e.buf.WriteString(strings.Repeat("    ", e.indent))
	e.buf.WriteString(line)
	e.buf.WriteString("\n")
}

func formatExportDeclaration(d ast.ExportDeclaration) string {
	if d.IsExportStar {
		if d.StarAsName != "" {
			return `export * as ` + d.StarAsName + ` from "` + d.ModuleSpecifier + `";`
		}
		return `export * from "` + d.ModuleSpecifier + `";`
	}
	names := make([]string, 0, len(d.Specifiers))
	for _, s := range d.Specifiers {
		if s.LocalName == s.ExportedName {
			names = append(names, s.LocalName)
		} else {
			names = append(names, s.LocalName+" as "+s.ExportedName)
		}
	}
	sort.Strings(names)
	text := "export { " + strings.Join(names, ", ") + " }"
	if d.ModuleSpecifier != "" {
		text += ` from "` + d.ModuleSpecifier + `"`
	}
	return text + ";"
}

func identifierText(arena *ast.Arena, idx ast.NodeIndex) string {
	switch n := arena.Get(idx).Data.(type) {
	case ast.Identifier:
		return n.Name
	case ast.PrivateIdentifier:
		return n.Name
	case ast.StringLiteral:
		return strconv.Quote(n.Value)
	case ast.IdentifierBinding:
		return n.Name
	}
	return ""
}

func identifierOrOpaque(arena *ast.Arena, idx ast.NodeIndex) string {
	if text := identifierText(arena, idx); text != "" {
		return text
	}
	return strings.TrimSpace(arena.Text(arena.Get(idx)))
}

// literalText reproduces a primitive-literal initializer's source text
// verbatim, used for `export declare const x = "lit";`-style narrowing
// (§4.5 step 5).
func literalText(arena *ast.Arena, idx ast.NodeIndex) (string, bool) {
	switch n := arena.Get(idx).Data.(type) {
	case ast.StringLiteral:
		return strconv.Quote(n.Value), true
	case ast.NumericLiteral:
		return n.Text, true
	case ast.BooleanLiteral:
		if n.Value {
			return "true", true
		}
		return "false", true
	}
	return "", false
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
