package ast

import (
	"encoding/json"
	"fmt"

	"github.com/mohsen1/tsz-sub019/internal/logger"
)

// fixtureNode is the on-disk JSON shape for one arena entry. The parser,
// binder, and type checker are external collaborators this repository
// never implements (§1); LoadFixture exists so cmd/tszemit and the test
// suite can exercise the core end to end against a plain, hand-writable
// JSON encoding of an arena instead of requiring a real TypeScript parser.
// It covers the node kinds listed in fixtureKindNames, a subset of those the
// lowering pass dispatches on; any other kind is rejected as unknown. That
// limit is this loader's, not the core's (a real parser collaborator would
// cover the rest).
type fixtureNode struct {
	Kind  string          `json:"kind"`
	Flags Flags           `json:"flags"`
	Start int32           `json:"start"`
	End   int32           `json:"end"`
	Data  json.RawMessage `json:"data"`
}

type fixtureFile struct {
	Source string        `json:"source"`
	Nodes  []fixtureNode `json:"nodes"`
}

var fixtureKindNames = map[string]Kind{
	"Identifier":                  KindIdentifier,
	"PrivateIdentifier":           KindPrivateIdentifier,
	"NumericLiteral":              KindNumericLiteral,
	"StringLiteral":               KindStringLiteral,
	"BooleanLiteral":              KindBooleanLiteral,
	"NullLiteral":                 KindNullLiteral,
	"ThisExpression":               KindThisExpression,
	"SuperExpression":              KindSuperExpression,
	"TemplateExpression":          KindTemplateExpression,
	"TaggedTemplateExpression":    KindTaggedTemplateExpression,
	"ArrayLiteralExpression":      KindArrayLiteralExpression,
	"ObjectLiteralExpression":     KindObjectLiteralExpression,
	"PropertyAssignment":         KindPropertyAssignment,
	"ShorthandPropertyAssignment": KindShorthandPropertyAssignment,
	"SpreadAssignment":            KindSpreadAssignment,
	"SpreadElement":               KindSpreadElement,
	"ParenthesizedExpression":     KindParenthesizedExpression,
	"BinaryExpression":            KindBinaryExpression,
	"UnaryExpression":             KindUnaryExpression,
	"ConditionalExpression":       KindConditionalExpression,
	"CallExpression":              KindCallExpression,
	"NewExpression":               KindNewExpression,
	"PropertyAccessExpression":    KindPropertyAccessExpression,
	"ElementAccessExpression":     KindElementAccessExpression,
	"ArrowFunction":                KindArrowFunction,
	"FunctionExpression":          KindFunctionExpression,
	"ClassExpression":             KindClassExpression,
	"AwaitExpression":             KindAwaitExpression,
	"YieldExpression":             KindYieldExpression,
	"IdentifierBinding":           KindIdentifierBinding,
	"ObjectBindingPattern":        KindObjectBindingPattern,
	"ArrayBindingPattern":         KindArrayBindingPattern,
	"BindingElement":              KindBindingElement,
	"Parameter":                   KindParameter,
	"SourceFile":                  KindSourceFile,
	"Block":                       KindBlock,
	"VariableStatement":           KindVariableStatement,
	"VariableDeclarationList":     KindVariableDeclarationList,
	"VariableDeclaration":         KindVariableDeclaration,
	"ExpressionStatement":         KindExpressionStatement,
	"IfStatement":                 KindIfStatement,
	"ForOfStatement":              KindForOfStatement,
	"ReturnStatement":             KindReturnStatement,
	"ThrowStatement":              KindThrowStatement,
	"FunctionDeclaration":         KindFunctionDeclaration,
	"ClassDeclaration":            KindClassDeclaration,
	"Constructor":                 KindConstructor,
	"MethodDeclaration":           KindMethodDeclaration,
	"GetAccessor":                 KindGetAccessor,
	"SetAccessor":                 KindSetAccessor,
	"PropertyDeclaration":         KindPropertyDeclaration,
	"ClassStaticBlock":            KindClassStaticBlock,
	"EnumDeclaration":             KindEnumDeclaration,
	"EnumMember":                  KindEnumMember,
	"ModuleDeclaration":           KindModuleDeclaration,
	"InterfaceDeclaration":        KindInterfaceDeclaration,
	"TypeAliasDeclaration":        KindTypeAliasDeclaration,
	"ImportDeclaration":           KindImportDeclaration,
	"ExportDeclaration":           KindExportDeclaration,
	"ExportAssignment":            KindExportAssignment,
}

// LoadFixture decodes a JSON-encoded arena (see fixtureNode) and returns it
// alongside the root KindSourceFile's index (conventionally the first node
// of that kind found; callers with a non-trivial layout should scan
// arena.Nodes themselves).
func LoadFixture(raw []byte) (*Arena, NodeIndex, error) {
	var ff fixtureFile
	if err := json.Unmarshal(raw, &ff); err != nil {
		return nil, InvalidNode, fmt.Errorf("decoding fixture: %w", err)
	}
	arena := &Arena{Source: ff.Source, Nodes: make([]Node, len(ff.Nodes))}
	root := InvalidNode
	for i, fn := range ff.Nodes {
		kind, ok := fixtureKindNames[fn.Kind]
		if !ok {
			return nil, InvalidNode, fmt.Errorf("fixture node %d: unknown kind %q", i, fn.Kind)
		}
		data, err := decodeFixtureData(kind, fn.Data)
		if err != nil {
			return nil, InvalidNode, fmt.Errorf("fixture node %d (%s): %w", i, fn.Kind, err)
		}
		arena.Nodes[i] = Node{
			Kind:  kind,
			Flags: fn.Flags,
			Loc:   logger.Loc{Start: fn.Start},
			End:   fn.End,
			Data:  data,
		}
		if kind == KindSourceFile && root == InvalidNode {
			root = NodeIndex(i)
		}
	}
	return arena, root, nil
}

// decodeInto unmarshals raw into a zero T and returns it as Data. Splitting
// this out (rather than inlining "var d T; return d, json.Unmarshal(raw, &d)"
// per case) avoids a real footgun: in a bare return statement every operand
// is evaluated left to right before the call executes, so the bare form
// would return d's zero value, not the unmarshaled one.
func decodeInto[T Data](raw json.RawMessage) (Data, error) {
	var d T
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d, nil
}

func decodeFixtureData(kind Kind, raw json.RawMessage) (Data, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	switch kind {
	case KindIdentifier:
		return decodeInto[Identifier](raw)
	case KindPrivateIdentifier:
		return decodeInto[PrivateIdentifier](raw)
	case KindNumericLiteral:
		return decodeInto[NumericLiteral](raw)
	case KindStringLiteral:
		return decodeInto[StringLiteral](raw)
	case KindBooleanLiteral:
		return decodeInto[BooleanLiteral](raw)
	case KindNullLiteral:
		return NullLiteral{}, nil
	case KindThisExpression:
		return ThisExpression{}, nil
	case KindSuperExpression:
		return SuperExpression{}, nil
	case KindTemplateExpression:
		return decodeInto[TemplateExpression](raw)
	case KindTaggedTemplateExpression:
		return decodeInto[TaggedTemplateExpression](raw)
	case KindArrayLiteralExpression:
		return decodeInto[ArrayLiteralExpression](raw)
	case KindObjectLiteralExpression:
		return decodeInto[ObjectLiteralExpression](raw)
	case KindPropertyAssignment:
		return decodeInto[PropertyAssignment](raw)
	case KindShorthandPropertyAssignment:
		return decodeInto[ShorthandPropertyAssignment](raw)
	case KindSpreadAssignment:
		return decodeInto[SpreadAssignment](raw)
	case KindSpreadElement:
		return decodeInto[SpreadElement](raw)
	case KindParenthesizedExpression:
		return decodeInto[ParenthesizedExpression](raw)
	case KindBinaryExpression:
		return decodeInto[BinaryExpression](raw)
	case KindUnaryExpression:
		return decodeInto[UnaryExpression](raw)
	case KindConditionalExpression:
		return decodeInto[ConditionalExpression](raw)
	case KindCallExpression:
		return decodeInto[CallExpression](raw)
	case KindNewExpression:
		return decodeInto[NewExpression](raw)
	case KindPropertyAccessExpression:
		return decodeInto[PropertyAccessExpression](raw)
	case KindElementAccessExpression:
		return decodeInto[ElementAccessExpression](raw)
	case KindArrowFunction:
		return decodeInto[ArrowFunction](raw)
	case KindFunctionExpression:
		return decodeInto[FunctionExpression](raw)
	case KindClassExpression:
		return decodeInto[ClassLikeExpression](raw)
	case KindAwaitExpression:
		return decodeInto[AwaitExpression](raw)
	case KindYieldExpression:
		return decodeInto[YieldExpression](raw)
	case KindIdentifierBinding:
		return decodeInto[IdentifierBinding](raw)
	case KindObjectBindingPattern:
		return decodeInto[ObjectBindingPattern](raw)
	case KindArrayBindingPattern:
		return decodeInto[ArrayBindingPattern](raw)
	case KindBindingElement:
		return decodeInto[BindingElement](raw)
	case KindParameter:
		return decodeInto[Parameter](raw)
	case KindSourceFile:
		return decodeInto[SourceFile](raw)
	case KindBlock:
		return decodeInto[Block](raw)
	case KindVariableStatement:
		return decodeInto[VariableStatement](raw)
	case KindVariableDeclarationList:
		return decodeInto[VariableDeclarationList](raw)
	case KindVariableDeclaration:
		return decodeInto[VariableDeclaration](raw)
	case KindExpressionStatement:
		return decodeInto[ExpressionStatement](raw)
	case KindIfStatement:
		return decodeInto[IfStatement](raw)
	case KindForOfStatement:
		return decodeInto[ForOfStatement](raw)
	case KindReturnStatement:
		return decodeInto[ReturnStatement](raw)
	case KindThrowStatement:
		return decodeInto[ThrowStatement](raw)
	case KindFunctionDeclaration:
		return decodeInto[FunctionDeclaration](raw)
	case KindClassDeclaration:
		return decodeInto[ClassDeclaration](raw)
	case KindConstructor, KindMethodDeclaration, KindGetAccessor, KindSetAccessor:
		data, err := decodeInto[MethodLikeDeclaration](raw)
		if err != nil {
			return nil, err
		}
		d := data.(MethodLikeDeclaration)
		switch kind {
		case KindConstructor:
			d.Kind = MethodKindConstructor
		case KindGetAccessor:
			d.Kind = MethodKindGet
		case KindSetAccessor:
			d.Kind = MethodKindSet
		default:
			d.Kind = MethodKindMethod
		}
		return d, nil
	case KindPropertyDeclaration:
		return decodeInto[PropertyDeclaration](raw)
	case KindClassStaticBlock:
		return decodeInto[ClassStaticBlock](raw)
	case KindEnumDeclaration:
		return decodeInto[EnumDeclaration](raw)
	case KindEnumMember:
		return decodeInto[EnumMember](raw)
	case KindModuleDeclaration:
		return decodeInto[ModuleDeclaration](raw)
	case KindInterfaceDeclaration, KindTypeAliasDeclaration:
		data, err := decodeInto[ErasedDeclaration](raw)
		if err != nil {
			return nil, err
		}
		d := data.(ErasedDeclaration)
		d.Kind = kind
		return d, nil
	case KindImportDeclaration:
		return decodeInto[ImportDeclaration](raw)
	case KindExportDeclaration:
		return decodeInto[ExportDeclaration](raw)
	case KindExportAssignment:
		return decodeInto[ExportAssignment](raw)
	default:
		return nil, fmt.Errorf("kind %v has no fixture decoder", kind)
	}
}
