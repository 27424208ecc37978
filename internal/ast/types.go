package ast

// TypeID is an opaque handle into the type checker's interner (an external
// collaborator, §1/§4.6). The core never constructs types; it only asks the
// TypeInterner to resolve a TypeID into a TypeShape it can print.
type TypeID int32

const InvalidType TypeID = -1

func (t TypeID) IsValid() bool { return t >= 0 }

// TypeShapeKind tags the printable forms the Type Printer (C8) understands.
// Anything structurally richer than this (mapped/conditional/indexed-access
// types) arrives pre-formatted as TypeShapeOpaque, since reconstructing the
// type checker's own constructed-form algorithm is out of scope (§1).
type TypeShapeKind uint8

const (
	TypeShapeAny TypeShapeKind = iota
	TypeShapeUnknown
	TypeShapeNever
	TypeShapeVoid
	TypeShapeUndefined
	TypeShapeNull
	TypeShapeString
	TypeShapeNumber
	TypeShapeBoolean
	TypeShapeBigInt
	TypeShapeLiteral     // string/number/boolean literal type
	TypeShapeUniqueSymbol
	TypeShapeArray       // element is Args[0]
	TypeShapeTuple       // Args is the element list
	TypeShapeUnion       // Args is the member list
	TypeShapeIntersection
	TypeShapeObject      // anonymous object type; Members holds field shapes
	TypeShapeFunction    // Params + Return
	TypeShapeTypeRef     // Name (+ optional Args for generics), resolved via symbol
	TypeShapeOpaque      // pre-formatted text from the checker (mapped/conditional/indexed-access)
)

type TypeMember struct {
	Name     string
	Type     TypeID
	Optional bool
	Readonly bool
}

// TypeShape is the resolved, printable form of a TypeID. Exactly one of the
// fields is meaningful depending on Kind.
type TypeShape struct {
	Kind TypeShapeKind

	LiteralText string // for TypeShapeLiteral: already-quoted/formatted text
	Name        string // for TypeShapeTypeRef
	Args        []TypeID
	Members     []TypeMember
	Return      TypeID
	OpaqueText  string // for TypeShapeOpaque
}

// TypeInterner is the read-only contract the type checker exposes for
// resolving TypeIDs (§4.6). All methods must be side-effect-free from the
// caller's perspective; interior caching behind the implementation is fine.
type TypeInterner interface {
	Resolve(id TypeID) (TypeShape, bool)
	ResolveLazy(defID TypeID) (TypeID, bool)
	ResolveRef(symbolRef Ref) (TypeID, bool)
	GetBaseType(id TypeID) (TypeID, bool)
	IsNumericEnum(defID TypeID) bool
	IsUserEnumDef(defID TypeID) bool
	GetEnumParentDefID(defID TypeID) (TypeID, bool)
	GetTypeParams(id TypeID) []TypeID
	GetArrayBaseType(id TypeID) (TypeID, bool)
	GetBoxedType(id TypeID) (TypeID, bool)
}

// TypeCache maps a declaration node to its checker-inferred TypeID, used by
// the declaration emitter for `const`/destructured-binding inference and by
// the emission engine nowhere (emission never needs types; it is purely
// syntactic).
type TypeCache interface {
	TypeOfNode(n NodeIndex) (TypeID, bool)
}

// Binder is the read-only symbol-table/inheritance-graph contract (§1).
// Only the declaration emitter's usage analyzer and the Type Printer's
// base-type walk need it.
type Binder interface {
	SymbolOfNode(n NodeIndex) (Ref, bool)
	DeclarationOfSymbol(ref Ref) (NodeIndex, bool)
	ModulePathOfSymbol(ref Ref) (string, bool)
}
