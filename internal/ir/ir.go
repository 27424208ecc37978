// Package ir defines the small tagged-union intermediate representation
// (C2) built only for lowered constructs: ES5 class IIFEs, async generator
// state machines, namespace/enum IIFEs, template helpers, and CommonJS
// module scaffolding. IR is built by the Transform Builders (C6), consumed
// by the IR Printer (C3), and never persisted past one file's emission
// (§3 "Lifecycle").
package ir

import "github.com/mohsen1/tsz-sub019/internal/ast"

// Node is the IR sum type. Like ast.Data, it is a sealed interface purely to
// encode a tagged union in Go's type system.
type Node interface{ isIRNode() }

func (*ASTRef) isIRNode()             {}
func (*Raw) isIRNode()                {}
func (*Seq) isIRNode()                {}
func (*ES5ClassIIFE) isIRNode()       {}
func (*PrototypeMethod) isIRNode()    {}
func (*StaticMethod) isIRNode()       {}
func (*DefineProperty) isIRNode()     {}
func (*ExtendsHelper) isIRNode()      {}
func (*ConstructorFn) isIRNode()      {}
func (*SuperCallInit) isIRNode()      {}
func (*AwaiterCall) isIRNode()        {}
func (*GeneratorBody) isIRNode()      {}
func (*GeneratorOp) isIRNode()        {}
func (*NamespaceIIFE) isIRNode()      {}
func (*EnumIIFE) isIRNode()           {}
func (*EnumMemberAssign) isIRNode()   {}
func (*TemplateObjectVar) isIRNode()  {}
func (*UseStrict) isIRNode()          {}
func (*EsModuleMarker) isIRNode()     {}
func (*ExportInit) isIRNode()         {}
func (*RequireStatement) isIRNode()   {}
func (*ExportAssignmentStmt) isIRNode() {}
func (*ReExportProperty) isIRNode()   {}
func (*PrivateFieldWeakMap) isIRNode() {}
func (*HoistedVarDecl) isIRNode()     {}
func (*SpreadArrayCall) isIRNode()    {}
func (*ArrayLiteral) isIRNode()       {}
func (*AssignCall) isIRNode()         {}
func (*ObjectLiteral) isIRNode()      {}
func (*ObjectLiteralProps) isIRNode() {}
func (*ApplyCall) isIRNode()          {}
func (*Concat) isIRNode()             {}
func (*TaggedTemplateCall) isIRNode() {}
func (*ForOfArrayFast) isIRNode()     {}
func (*ForOfValues) isIRNode()        {}
func (*ForAwaitOfValues) isIRNode()   {}

// ASTRef is the re-entry point into the main emitter: it prints the
// original source text (trimmed) for an AST subtree, except where a
// directive applies at that node, in which case the registered handler
// fires instead. This breaks the circular dependency between the emitter
// and the IR printer (§9 "IR re-entry").
type ASTRef struct {
	Node ast.NodeIndex
}

// Raw is pre-formatted text with no further structure, used for generated
// fragments that don't need their own IR shape (operators, punctuation).
type Raw struct{ Text string }

// Seq is an ordered list of IR nodes printed back to back, each on its own
// logic but sharing the enclosing single/multi-line decision.
type Seq struct {
	Items []Node
	// SourceRangeHasNewline records whether the original span this Seq was
	// built from contained a newline, driving the IR Printer's single- vs
	// multi-line choice (§4.3).
	SourceRangeHasNewline bool
}

// --- ES5 class scaffolding (§4.4.2) ---

type ES5ClassIIFE struct {
	ClassName  string
	BaseExpr   Node // nil if not derived
	IsDerived  bool
	Body       []Node // __extends call, constructor, prototype/static methods, accessors
}

type ConstructorFn struct {
	ClassName string
	Params    []ast.NodeIndex
	IsDerived bool
	Body      []Node
}

type PrototypeMethod struct {
	ClassName string
	Name      Node // ASTRef or Raw, to allow computed names
	Params    []ast.NodeIndex
	Body      ast.NodeIndex
}

type StaticMethod struct {
	ClassName string
	Name      Node
	Params    []ast.NodeIndex
	Body      ast.NodeIndex
}

type DefineProperty struct {
	TargetExpr string // e.g. "ClassName.prototype"
	Name       Node
	Get        *ast.NodeIndex
	Set        *ast.NodeIndex
}

type ExtendsHelper struct {
	ClassName string
	BaseName  string
}

type PrivateFieldWeakMap struct {
	VarName   string // e.g. "_ClassName_x"
	IsStatic  bool
}

// SuperCallInit is the `var _this = _super.call(this, <args>) || this;`
// rewrite of a user-written `super(...)` call in a derived ES5 constructor,
// re-entering the AST emitter for each actual call argument rather than
// synthesizing the implicit apply(this, arguments) form (§4.4.2, §8 S1).
type SuperCallInit struct {
	Args []ast.NodeIndex
}

// --- Async / generator lowering (§4.4.6) ---

type AwaiterCall struct {
	ThisArg      Node // "this" or "void 0"
	ArgumentsArg Node // "arguments" or "void 0"
	GeneratorFn  Node // the generator function expression wrapping GeneratorBody
}

// GeneratorCase is one labelled state in the __generator switch.
type GeneratorCase struct {
	Label int
	Ops   []Node // GeneratorOp / ASTRef passthrough statements
}

type GeneratorBody struct {
	Cases     []GeneratorCase
	UsesTrys  bool
}

// GeneratorOpcode matches the contract in §4.3: 0 yield, 1 return, 2 break,
// 3 throw, 4 await (yield), 7 return value.
type GeneratorOpcode uint8

const (
	OpYield GeneratorOpcode = iota
	OpReturn
	OpBreak
	OpThrow
	OpAwait
	_
	_
	OpReturnValue
)

type GeneratorOp struct {
	Opcode  GeneratorOpcode
	Value   Node // nil for bare return/break
	Comment string
}

// --- Namespace / enum IIFEs (§4.4.7) ---

type NamespaceIIFE struct {
	QualifiedName string // dotted name, expanded into nested IIFEs by the builder
	DeclareVar    bool
	Body          []Node
}

type EnumIIFE struct {
	Name       string
	DeclareVar bool
	Members    []Node // EnumMemberAssign
}

type EnumMemberAssign struct {
	MemberName  string
	Value       Node // constant-folded numeric, or an ASTRef for computed members
	HasReverse  bool // false for string-valued members (no reverse mapping)
}

// --- Templates ---

type TemplateObjectVar struct {
	VarName string // "__templateObject_N"
	Cooked  []string
	Raw     []string
}

// --- CommonJS module scaffolding (§4.4.7) ---

type UseStrict struct{}
type EsModuleMarker struct{}

type ExportInit struct {
	Names []string // grouped `exports.X = void 0;` for each
}

type RequireStatement struct {
	VarName         string // e.g. "mod_1"
	ModuleSpecifier string
	ImportDefault   bool // wrap with __importDefault
	ImportStar      bool // wrap with __importStar
}

type ExportAssignmentStmt struct {
	ExportName string // "" for `export =`
	Value      Node
	IsEquals   bool
}

type ReExportProperty struct {
	ModuleVarName string
}

// HoistedVarDecl is the single `var _a, _b;` line spliced at the recorded
// block offset for assignment/value temps (§4.4.1).
type HoistedVarDecl struct {
	Names []string
}

// --- Spread / literal builders (§4.4.7) ---

// SpreadArrayCall is one link in a chain of __spreadArray calls built by
// the array-spread builder: `__spreadArray(Left, Right, UseConcat)`.
type SpreadArrayCall struct {
	Left, Right Node
	UseConcat   bool
}

// ArrayLiteral is a plain `[item, item, ...]` with no spread.
type ArrayLiteral struct{ Items []Node }

// AssignCall is one link in a chain of __assign calls built by the
// object-spread builder: `__assign(Left, Right)`.
type AssignCall struct{ Left, Right Node }

// ObjectLiteral is an empty `{}`, the seed of an __assign chain.
type ObjectLiteral struct{}

// ObjectLiteralProps re-enters the AST emitter for a run of plain
// (non-spread) object-literal properties rendered between `{` and `}`.
type ObjectLiteralProps struct{ Props []ast.NodeIndex }

// ApplyCall is `TargetMethod.apply(ThisArg, ArgsArray)`, built by the
// call-spread builder.
type ApplyCall struct {
	TargetMethod, ThisArg, ArgsArray Node
}

// Concat is one link in a chain of `+` string concatenations built by the
// template-literal builder.
type Concat struct{ Left, Right Node }

// TaggedTemplateCall is `Tag(__templateObject_N || (__templateObject_N = __makeTemplateObject(cooked, raw)), ...)`-
// backing call against a cached template-object variable.
type TaggedTemplateCall struct {
	Tag     Node
	VarName string
}

// ForOfArrayFast is the index-based downlevel for-of shape taken when the
// iterated expression is statically known to be array-typed.
type ForOfArrayFast struct {
	ArrayExpr   Node
	IndexVar    string
	LenVar      string
	BindingName string
	Body        []Node
}

// ForOfValues is the full __values/__read downlevel-iteration shape for
// for-of over an arbitrary iterable.
type ForOfValues struct {
	IterableExpr Node
	IteratorVar  string
	BindingName  string
	Body         []Node
}

// ForAwaitOfValues is the __asyncValues shape for for-await-of.
type ForAwaitOfValues struct {
	IterableExpr Node
	IteratorVar  string
	BindingName  string
	Body         []Node
}
