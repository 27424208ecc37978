package ast

// This file enumerates the typed side-table entries a Node.Data can hold.
// Only the shape needed by the lowering pass, emission engine, and
// declaration emitter is modeled; full TypeScript type-syntax nodes are out
// of scope (§1 Non-goals) because inferred/declared types reach the
// declaration emitter pre-resolved as TypeId values from the type checker,
// never as raw AST.

func (Identifier) isNodeData()               {}
func (PrivateIdentifier) isNodeData()         {}
func (NumericLiteral) isNodeData()            {}
func (BigIntLiteral) isNodeData()             {}
func (StringLiteral) isNodeData()             {}
func (BooleanLiteral) isNodeData()            {}
func (NullLiteral) isNodeData()               {}
func (RegexLiteral) isNodeData()              {}
func (ThisExpression) isNodeData()            {}
func (SuperExpression) isNodeData()           {}
func (TemplateExpression) isNodeData()        {}
func (TaggedTemplateExpression) isNodeData()  {}
func (ArrayLiteralExpression) isNodeData()    {}
func (ObjectLiteralExpression) isNodeData()   {}
func (PropertyAssignment) isNodeData()        {}
func (ShorthandPropertyAssignment) isNodeData() {}
func (SpreadAssignment) isNodeData()          {}
func (SpreadElement) isNodeData()             {}
func (ParenthesizedExpression) isNodeData()   {}
func (BinaryExpression) isNodeData()          {}
func (UnaryExpression) isNodeData()           {}
func (ConditionalExpression) isNodeData()     {}
func (CallExpression) isNodeData()            {}
func (NewExpression) isNodeData()             {}
func (PropertyAccessExpression) isNodeData()  {}
func (ElementAccessExpression) isNodeData()   {}
func (NonNullExpression) isNodeData()         {}
func (ArrowFunction) isNodeData()             {}
func (FunctionExpression) isNodeData()        {}
func (ClassLikeExpression) isNodeData()       {}
func (AwaitExpression) isNodeData()           {}
func (YieldExpression) isNodeData()           {}
func (AsExpression) isNodeData()              {}
func (Decorator) isNodeData()                 {}
func (ComputedPropertyName) isNodeData()      {}

func (IdentifierBinding) isNodeData()  {}
func (ObjectBindingPattern) isNodeData() {}
func (ArrayBindingPattern) isNodeData() {}
func (BindingElement) isNodeData()     {}
func (Parameter) isNodeData()          {}

func (SourceFile) isNodeData()              {}
func (Block) isNodeData()                   {}
func (VariableStatement) isNodeData()       {}
func (VariableDeclarationList) isNodeData() {}
func (VariableDeclaration) isNodeData()     {}
func (ExpressionStatement) isNodeData()     {}
func (IfStatement) isNodeData()             {}
func (ForStatement) isNodeData()            {}
func (ForInStatement) isNodeData()          {}
func (ForOfStatement) isNodeData()          {}
func (WhileStatement) isNodeData()          {}
func (DoStatement) isNodeData()             {}
func (BreakStatement) isNodeData()          {}
func (ContinueStatement) isNodeData()       {}
func (ReturnStatement) isNodeData()         {}
func (ThrowStatement) isNodeData()          {}
func (TryStatement) isNodeData()            {}
func (SwitchStatement) isNodeData()         {}
func (CaseClause) isNodeData()              {}
func (LabeledStatement) isNodeData()        {}
func (FunctionDeclaration) isNodeData()     {}
func (ClassDeclaration) isNodeData()        {}
func (MethodLikeDeclaration) isNodeData()   {}
func (PropertyDeclaration) isNodeData()     {}
func (ClassStaticBlock) isNodeData()        {}
func (EnumDeclaration) isNodeData()         {}
func (EnumMember) isNodeData()              {}
func (ModuleDeclaration) isNodeData()       {}
func (ErasedDeclaration) isNodeData()       {} // interface / type alias / ambient: body preserved verbatim
func (ImportDeclaration) isNodeData()       {}
func (ImportEqualsDeclaration) isNodeData() {}
func (ExportDeclaration) isNodeData()       {}
func (ExportAssignment) isNodeData()        {}

// --- Literals / identifiers ---

type Identifier struct {
	Name string
	Ref  Ref
}

type PrivateIdentifier struct {
	Name string // includes leading '#'
}

type NumericLiteral struct{ Text string }
type BigIntLiteral struct{ Text string }

type StringLiteral struct {
	Value          string
	HasSingleQuote bool // original quote style, for §4.4.4 quote preservation
}

type BooleanLiteral struct{ Value bool }
type NullLiteral struct{}
type RegexLiteral struct{ Text string }
type ThisExpression struct{}
type SuperExpression struct{}

// --- Expressions ---

type TemplateSpan struct {
	Expr NodeIndex
	Text string // literal text of the following template chunk
}

type TemplateExpression struct {
	Head  string
	Spans []TemplateSpan
}

type TaggedTemplateExpression struct {
	Tag      NodeIndex
	Template NodeIndex
}

type ArrayLiteralExpression struct {
	Elements     []NodeIndex
	IsMultiLine  bool
}

type ObjectLiteralExpression struct {
	Properties  []NodeIndex
	IsMultiLine bool
}

type PropertyAssignment struct {
	Name     NodeIndex
	Value    NodeIndex
	Computed bool
}

type ShorthandPropertyAssignment struct {
	Name NodeIndex
}

type SpreadAssignment struct{ Expr NodeIndex }
type SpreadElement struct{ Expr NodeIndex }
type ParenthesizedExpression struct{ Expr NodeIndex }

type BinaryExpression struct {
	Op    string
	Left  NodeIndex
	Right NodeIndex
}

type UnaryExpression struct {
	Op      string
	Operand NodeIndex
	Prefix  bool
}

type ConditionalExpression struct {
	Cond, Then, Else NodeIndex
}

type CallExpression struct {
	Callee       NodeIndex
	Args         []NodeIndex
	OptionalCall bool
	HasSpread    bool
}

type NewExpression struct {
	Callee NodeIndex
	Args   []NodeIndex
}

type PropertyAccessExpression struct {
	Expr     NodeIndex
	Name     string
	Optional bool
	Private  bool
}

type ElementAccessExpression struct {
	Expr     NodeIndex
	Index    NodeIndex
	Optional bool
}

type NonNullExpression struct{ Expr NodeIndex }

type ArrowFunction struct {
	Params      []NodeIndex
	Body        NodeIndex // expression or KindBlock
	IsBlockBody bool
	IsAsync     bool
}

type FunctionExpression struct {
	Name        string // may be empty
	Params      []NodeIndex
	Body        NodeIndex
	IsAsync     bool
	IsGenerator bool
}

// ClassLikeExpression covers both class expressions and (via ClassDeclaration
// below) class declarations; kept separate because declarations carry a
// required name and export flags the statement dispatcher needs.
type ClassLikeExpression struct {
	Name       string
	HeritageBase NodeIndex // InvalidNode if no `extends`
	Members    []NodeIndex
	Decorators []NodeIndex
}

type AwaitExpression struct{ Expr NodeIndex }
type YieldExpression struct {
	Expr     NodeIndex
	Delegate bool // yield*
}

type AsExpression struct {
	Expr NodeIndex
	// Type text is irrelevant to JS emission; erased entirely.
}

type Decorator struct{ Expr NodeIndex }
type ComputedPropertyName struct{ Expr NodeIndex }

// --- Bindings ---

type IdentifierBinding struct{ Name string }

type BindingElement struct {
	PropertyName NodeIndex // for {a: b}, the "a"; InvalidNode for shorthand/array
	Name         NodeIndex // the bound name: identifier or nested pattern
	Initializer  NodeIndex
	IsRest       bool
}

type ObjectBindingPattern struct{ Elements []NodeIndex }
type ArrayBindingPattern struct{ Elements []NodeIndex } // NodeIndex may be InvalidNode for elisions

type Parameter struct {
	Name        NodeIndex // identifier or binding pattern
	Initializer NodeIndex
	IsRest      bool
	// Parameter-property modifiers (public/private/protected/readonly): when
	// any is set, the ES5 class builder synthesizes `this.name = name;` in
	// the constructor prologue (§4.4.2).
	IsParameterProperty bool
	TypeID              TypeID
}

// --- Statements ---

type SourceFile struct {
	Statements []NodeIndex
	HasImportOrExportSyntax bool
}

type Block struct{ Statements []NodeIndex }

type VariableStatement struct {
	DeclList NodeIndex
}

type VariableDeclarationList struct {
	Decls []NodeIndex
	Kind  string // "var" | "let" | "const"
}

type VariableDeclaration struct {
	Name        NodeIndex // identifier or binding pattern
	Initializer NodeIndex
	TypeID      TypeID
}

type ExpressionStatement struct{ Expr NodeIndex }

type IfStatement struct {
	Cond, Then, Else NodeIndex
}

type ForStatement struct {
	Init, Cond, Update, Body NodeIndex
}

type ForInStatement struct {
	Initializer, Expr, Body NodeIndex
}

type ForOfStatement struct {
	Initializer, Expr, Body NodeIndex
	IsAwait                 bool
}

type WhileStatement struct{ Cond, Body NodeIndex }
type DoStatement struct{ Body, Cond NodeIndex }
type BreakStatement struct{ Label string }
type ContinueStatement struct{ Label string }
type ReturnStatement struct{ Expr NodeIndex }
type ThrowStatement struct{ Expr NodeIndex }

type CatchClause struct {
	Param NodeIndex
	Block NodeIndex
}

type TryStatement struct {
	Block   NodeIndex
	Catch   *CatchClause
	Finally NodeIndex
}

type SwitchStatement struct {
	Expr  NodeIndex
	Cases []NodeIndex
}

type CaseClause struct {
	Expr       NodeIndex // InvalidNode for `default:`
	Statements []NodeIndex
}

type LabeledStatement struct {
	Label string
	Body  NodeIndex
}

type FunctionDeclaration struct {
	Name        string
	Params      []NodeIndex
	Body        NodeIndex // InvalidNode for an ambient/overload signature
	IsAsync     bool
	IsGenerator bool
}

type ClassDeclaration struct {
	Name         string
	HeritageBase NodeIndex
	Members      []NodeIndex
	Decorators   []NodeIndex
}

type MethodKind uint8

const (
	MethodKindMethod MethodKind = iota
	MethodKindConstructor
	MethodKindGet
	MethodKindSet
)

type MethodLikeDeclaration struct {
	Kind       MethodKind
	Name       NodeIndex // identifier / string / computed / private-identifier
	Params     []NodeIndex
	Body       NodeIndex // InvalidNode for an overload signature
	Decorators []NodeIndex
}

type PropertyDeclaration struct {
	Name        NodeIndex
	Initializer NodeIndex
	Decorators  []NodeIndex
	TypeID      TypeID
}

type ClassStaticBlock struct{ Body NodeIndex }

type EnumMember struct {
	Name        NodeIndex
	Initializer NodeIndex // InvalidNode if auto-incremented
}

type EnumDeclaration struct {
	Name    string
	Members []NodeIndex
}

type ModuleDeclaration struct {
	// Name is the full dotted qualified name, e.g. "A.B.C" for
	// `namespace A.B.C { ... }`, which the emitter expands into nested IIFEs.
	Name  string
	Body  []NodeIndex
}

// ErasedDeclaration covers interfaces, type aliases, and ambient `declare`
// blocks: none of these produce JS output, and the declaration emitter
// reproduces their source text verbatim rather than re-printing a type AST
// the core doesn't model (§1 Non-goals; §7 "Unknown node kinds").
type ErasedDeclaration struct {
	Name string
	Kind Kind // KindInterfaceDeclaration | KindTypeAliasDeclaration
}

type ImportSpecifier struct {
	ImportedName string // name in the source module
	LocalName    string
	IsTypeOnly   bool
}

type ImportDeclaration struct {
	ModuleSpecifier string
	DefaultImport   string // "" if none
	NamespaceImport string // "" if none; binds `* as name`
	NamedImports    []ImportSpecifier
	IsTypeOnly      bool
}

type ImportEqualsDeclaration struct {
	Name            string
	ModuleReference string
	IsExternal      bool // `import x = require("m")` vs `import x = A.B`
}

type ExportSpecifier struct {
	LocalName    string
	ExportedName string
}

type ExportDeclaration struct {
	ModuleSpecifier string // "" for a local re-export list
	IsExportStar    bool
	StarAsName      string // for `export * as ns from "m"`
	Specifiers      []ExportSpecifier
}

type ExportAssignment struct {
	Expr       NodeIndex
	IsExportEquals bool // `export = expr` vs `export default expr`
}
