// Package ast defines the read-only AST arena contract the core consumes.
// The parser, binder, and type checker that build this arena are external
// collaborators (see spec §1); this package only describes the shape they
// hand to the lowering pass, emission engine, and declaration emitter.
//
// Nodes are addressed by NodeIndex, a stable opaque handle into Arena.Nodes.
// Indices never dangle across the core's lifetime: the arena is treated as
// immutable for the whole of one file's compilation.
package ast

import "github.com/mohsen1/tsz-sub019/internal/logger"

// NodeIndex is a stable, opaque handle into an Arena. Every non-negative
// index, NodeIndex(0) included, names a node; use InvalidNode to refer to
// "no node" (e.g. an omitted else-branch).
type NodeIndex int32

const InvalidNode NodeIndex = -1

func (n NodeIndex) IsValid() bool { return n >= 0 }

// Kind tags every node so that dispatch (in the lowering pass, the emission
// engine, and the declaration emitter) can switch on a plain integer before
// ever touching the Data side table.
type Kind uint16

const (
	KindInvalid Kind = iota

	// Literals and identifiers
	KindIdentifier
	KindPrivateIdentifier
	KindNumericLiteral
	KindBigIntLiteral
	KindStringLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindRegexLiteral
	KindThisExpression
	KindSuperExpression

	// Expressions
	KindTemplateExpression
	KindTaggedTemplateExpression
	KindArrayLiteralExpression
	KindObjectLiteralExpression
	KindPropertyAssignment
	KindShorthandPropertyAssignment
	KindSpreadAssignment
	KindSpreadElement
	KindParenthesizedExpression
	KindBinaryExpression
	KindUnaryExpression
	KindConditionalExpression
	KindCallExpression
	KindNewExpression
	KindPropertyAccessExpression
	KindElementAccessExpression
	KindNonNullExpression
	KindArrowFunction
	KindFunctionExpression
	KindClassExpression
	KindAwaitExpression
	KindYieldExpression
	KindAsExpression
	KindDecorator
	KindComputedPropertyName

	// Bindings
	KindIdentifierBinding
	KindObjectBindingPattern
	KindArrayBindingPattern
	KindBindingElement
	KindParameter

	// Statements / declarations
	KindSourceFile
	KindBlock
	KindVariableStatement
	KindVariableDeclarationList
	KindVariableDeclaration
	KindExpressionStatement
	KindIfStatement
	KindForStatement
	KindForInStatement
	KindForOfStatement
	KindWhileStatement
	KindDoStatement
	KindBreakStatement
	KindContinueStatement
	KindReturnStatement
	KindThrowStatement
	KindTryStatement
	KindSwitchStatement
	KindCaseClause
	KindDefaultClause
	KindLabeledStatement
	KindFunctionDeclaration
	KindClassDeclaration
	KindConstructor
	KindMethodDeclaration
	KindGetAccessor
	KindSetAccessor
	KindPropertyDeclaration
	KindClassStaticBlock
	KindEnumDeclaration
	KindEnumMember
	KindModuleDeclaration // namespace
	KindInterfaceDeclaration
	KindTypeAliasDeclaration
	KindImportDeclaration
	KindImportEqualsDeclaration
	KindExportDeclaration
	KindExportAssignment
	KindEmptyStatement
	KindDebuggerStatement
)

// Flags carries modifier/shape bits that dispatch alone can't express.
type Flags uint32

const (
	FlagExported Flags = 1 << iota
	FlagDefaultExport
	FlagStatic
	FlagAsync
	FlagGenerator
	FlagReadonly
	FlagAbstract
	FlagPublicParam
	FlagPrivateParam
	FlagProtectedParam
	FlagRest
	FlagOptional
	FlagDeclare
	FlagConst // const enum, or const/let vs var on a decl list
	FlagLet
	FlagAmbient // inside a `declare` block: erased entirely
	FlagHasRecoveryError
)

// Node is one arena entry: {kind, flags, pos, end, data}. Data selects into
// one of the typed structs below via a type switch, mirroring the teacher's
// sealed E/S interface pattern but unified into a single side table since
// the arena holds both statements and expressions.
type Node struct {
	Kind  Kind
	Flags Flags
	Loc   logger.Loc
	End   int32
	Data  Data
}

func (n Node) Range() logger.Range {
	return logger.Range{Loc: n.Loc, Len: n.End - n.Loc.Start}
}

// Data is never type-switched outside this package's consumers; it exists
// purely to encode a tagged union in Go's type system, same trick as the
// teacher's `type E interface{ isExpr() }`.
type Data interface{ isNodeData() }

// Arena is the index-addressed store of nodes for one source file, plus the
// verbatim source text needed for trivia, quote detection, and sourcemap
// offsets (§6: "source_text: original UTF-8 text").
type Arena struct {
	Nodes  []Node
	Source string
}

func (a *Arena) Get(i NodeIndex) Node {
	return a.Nodes[i]
}

func (a *Arena) Text(n Node) string {
	return a.Source[n.Loc.Start:n.End]
}

// Ref is a symbol table handle, used for identifier-to-declaration binding.
// The binder (an external collaborator) produces these; the core only
// follows them.
type Ref struct {
	InnerIndex uint32
}

var InvalidRef = Ref{InnerIndex: ^uint32(0)}

func (r Ref) IsValid() bool { return r != InvalidRef }
