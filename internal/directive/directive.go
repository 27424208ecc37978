// Package directive defines the DirectiveMap: the projection the Lowering
// Pass (C4) produces over the read-only AST arena, and the Emission Engine
// (C5) consults. The AST itself is never rewritten (§9 "Directive map as
// projection"); every decision the lowering pass makes is expressed here,
// keyed by NodeIndex, so the lowering pass stays independently testable by
// asserting the produced map against inputs.
package directive

import "github.com/mohsen1/tsz-sub019/internal/ast"

// Kind tags the variant stored in a Directive, mirroring the tagged union
// in §3. Identity is never actually stored — absence from the map already
// means "emit as-is" — but the constant exists so Chain entries and zero
// values have an unambiguous name.
type Kind uint8

const (
	Identity Kind = iota
	ES5Class
	ES5ClassExpression
	ES5Namespace
	ES5Enum
	ES5ArrowFunction
	ES5AsyncFunction
	ES5ForOf
	ES5ObjectLiteral
	ES5ArrayLiteral
	ES5CallSpread
	ES5VariableDeclarationList
	ES5FunctionParameters
	ES5TemplateLiteral
	ES5SuperCall
	SubstituteThis
	SubstituteArguments
	CommonJSExport
	CommonJSExportDefaultExpr
	CommonJSExportDefaultClassES5
	ModuleWrapper
	Chain

	// CommonJSFilePrologue is set once, on the KindSourceFile root node
	// itself rather than on a statement, carrying the grouped
	// `exports.X = void 0;` names the Emission Engine inserts into the
	// file-level prologue alongside modulewrap.Prologue's output (§4.4.7,
	// §8 S2). A whole-file directive like this has nowhere else to live
	// since the prologue isn't itself an AST node.
	CommonJSFilePrologue

	// FunctionCapture is not part of the tagged union enumerated in the
	// spec's data model, which only names the *arrow*-side directive
	// (ES5ArrowFunction). It marks the *enclosing* function/method body that
	// owns a capture name, so the emitter knows to hoist `var _this = this;`
	// (and/or forward `arguments`) once at the top of that body rather than
	// re-deriving ownership from every arrow beneath it. Resolution of an
	// open question left implicit by §4.2.3; see DESIGN.md.
	FunctionCapture
)

// Directive is one entry of the DirectiveMap. Only the fields relevant to
// Kind are populated; this is the Go-idiomatic equivalent of a Rust tagged
// union where every variant carries its own payload.
type Directive struct {
	Kind Kind

	Node    ast.NodeIndex // the node this directive was computed for
	BaseRef ast.Ref       // ES5Class: resolved `extends` base, if statically known

	DeclareVar bool // ES5Namespace: whether a `var N;` declaration is still needed

	CapturesThis      bool   // ES5ArrowFunction
	CapturesArguments bool   // ES5ArrowFunction
	ClassAlias        string // ES5ArrowFunction: static-member alias instead of _this (§4.2.5)

	CaptureName string // SubstituteThis

	ExportNames     []string // CommonJSExport
	ExportIsDefault bool     // CommonJSExport
	Inner           *Directive // CommonJSExport: the directive (if any) this wraps

	ModuleDependencies []string // ModuleWrapper: the single module specifier this import requires
	RequireVarName     string  // ModuleWrapper: local binding for the require() result ("" for a side-effect-only import)
	RequireStar        bool    // ModuleWrapper: wrap the require() result with __importStar

	ExportInitNames []string // CommonJSFilePrologue: grouped `exports.X = void 0;` names

	Chained []Directive // Chain: ordered, inner rewrite first
}

// Map is NodeIndex -> Directive. Absence means "emit as-is" (§3 Invariant 1).
// At most one directive is ever stored per node (§3 Invariant 2); composing
// multiple rewrites uses a Chain entry instead of multiple map entries.
type Map map[ast.NodeIndex]Directive

func (m Map) Get(n ast.NodeIndex) (Directive, bool) {
	d, ok := m[n]
	return d, ok
}

// Set installs directive d for node n. If n already has a directive, the
// new one is appended to (or starts) a Chain, preserving insertion order so
// the inner rewrite always runs before the outer wrapper, matching the
// "tie-breaks" rule in §4.2.
func (m Map) Set(n ast.NodeIndex, d Directive) {
	existing, ok := m[n]
	if !ok {
		m[n] = d
		return
	}
	if existing.Kind == Chain {
		existing.Chained = append(existing.Chained, d)
		m[n] = existing
		return
	}
	m[n] = Directive{Kind: Chain, Node: n, Chained: []Directive{existing, d}}
}

// Helper is a bit in the HelpersNeeded set (§3).
type Helper uint32

const (
	HelperExtends Helper = 1 << iota
	HelperAssign
	HelperRest
	HelperSpreadArray
	HelperRead
	HelperValues
	HelperAsyncValues
	HelperAwaiter
	HelperGenerator
	HelperMakeTemplateObject
	HelperDecorate
	HelperParam
	HelperImportDefault
	HelperImportStar
	HelperExportStar
	HelperCreateBinding
	HelperClassPrivateFieldGet
	HelperClassPrivateFieldSet
)

// HelpersNeeded is a bitset; see §3.
type HelpersNeeded struct {
	bits Helper
}

func (h *HelpersNeeded) Set(b Helper)        { h.bits |= b }
func (h HelpersNeeded) Has(b Helper) bool    { return h.bits&b != 0 }
func (h HelpersNeeded) IsEmpty() bool        { return h.bits == 0 }

// Each iterates helpers in a fixed, deterministic order (matching the order
// they're listed in §3) so that helper-prelude emission is reproducible
// (testable property 1: determinism).
func (h HelpersNeeded) Each(fn func(Helper)) {
	all := []Helper{
		HelperExtends, HelperAssign, HelperRest, HelperSpreadArray, HelperRead,
		HelperValues, HelperAsyncValues, HelperAwaiter, HelperGenerator,
		HelperMakeTemplateObject, HelperDecorate, HelperParam,
		HelperImportDefault, HelperImportStar, HelperExportStar,
		HelperCreateBinding, HelperClassPrivateFieldGet, HelperClassPrivateFieldSet,
	}
	for _, b := range all {
		if h.Has(b) {
			fn(b)
		}
	}
}
