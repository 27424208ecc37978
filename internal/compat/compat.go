// Package compat maps a configured target (ES3..ESNext) to the set of
// language features that target does NOT natively support. The lowering
// pass consults this bitset, never the target enum directly, so that adding
// a new target is a one-line table edit rather than a scattered set of
// version comparisons.
package compat

// Target enumerates the ECMAScript versions the emission engine can target.
// Order matters: comparisons like "target < ES2015" rely on increasing
// numeric value by release order.
type Target uint8

const (
	ES3 Target = iota
	ES5
	ES2015
	ES2016
	ES2017
	ES2018
	ES2019
	ES2020
	ES2021
	ES2022
	ESNext
)

func (t Target) String() string {
	switch t {
	case ES3:
		return "ES3"
	case ES5:
		return "ES5"
	case ES2015:
		return "ES2015"
	case ES2016:
		return "ES2016"
	case ES2017:
		return "ES2017"
	case ES2018:
		return "ES2018"
	case ES2019:
		return "ES2019"
	case ES2020:
		return "ES2020"
	case ES2021:
		return "ES2021"
	case ES2022:
		return "ES2022"
	default:
		return "ESNext"
	}
}

// JSFeature is a bitset of language features. Each bit corresponds to a row
// in featureTable below.
type JSFeature uint64

const (
	Classes JSFeature = 1 << iota
	ArrowFunctions
	AsyncAwait
	AsyncGenerator
	Generator
	ForOf
	ForAwaitOf
	TemplateLiteral
	TaggedTemplateLiteral
	ObjectSpread
	ObjectRestBinding
	ArraySpread
	ArrayRestBinding
	Destructuring
	DefaultArguments
	RestArguments
	ComputedPropertyName
	ShorthandProperty
	ClassPrivateField
	ClassPrivateMethod
	ClassPrivateAccessor
	ClassStaticBlock
	Decorators
	NullishCoalescing
	OptionalChain
	LogicalAssignment
	Exponentiation
	Let
	ExportStarAs
	DynamicImport
	UnicodeEscapes
	InlineScript
)

// featureTable records, for each feature, the first target that supports it
// natively. A target strictly below that entry requires the matching ES5…
// directive / helper to be emitted.
var featureTable = map[JSFeature]Target{
	Classes:               ES2015,
	ArrowFunctions:        ES2015,
	Generator:             ES2015,
	ForOf:                 ES2015,
	TemplateLiteral:       ES2015,
	TaggedTemplateLiteral: ES2015,
	ArraySpread:           ES2015,
	ArrayRestBinding:      ES2015,
	Destructuring:         ES2015,
	DefaultArguments:      ES2015,
	RestArguments:         ES2015,
	ComputedPropertyName:  ES2015,
	ShorthandProperty:     ES2015,
	Let:                   ES2015,
	AsyncAwait:            ES2017,
	ObjectSpread:          ES2018,
	ObjectRestBinding:     ES2018,
	ForAwaitOf:            ES2018,
	AsyncGenerator:        ES2018,
	OptionalChain:         ES2020,
	NullishCoalescing:     ES2020,
	DynamicImport:         ES2020,
	ExportStarAs:          ES2020,
	LogicalAssignment:     ES2021,
	Exponentiation:        ES2016,
	ClassPrivateField:     ES2022,
	ClassPrivateMethod:    ES2022,
	ClassPrivateAccessor:  ES2022,
	ClassStaticBlock:      ES2022,
	Decorators:            ESNext,
	UnicodeEscapes:        ES2015,
	InlineScript:          ES3,
}

// UnsupportedFeatures returns every feature bit that a target does not
// natively support, i.e. the lowering pass must rewrite it.
func UnsupportedFeatures(target Target) JSFeature {
	var unsupported JSFeature
	for feature, minTarget := range featureTable {
		if target < minTarget {
			unsupported |= feature
		}
	}
	return unsupported
}

// Has reports whether the given feature bit is present in the set.
func (f JSFeature) Has(feature JSFeature) bool {
	return (f & feature) != 0
}

// ModuleFormat enumerates the output module scaffolding the Module Wrapper
// (C9) can produce. "None" means whatever import/export syntax the source
// used is preserved as-is.
type ModuleFormat uint8

const (
	ModuleNone ModuleFormat = iota
	ModuleCommonJS
	ModuleAMD
	ModuleUMD
	ModuleSystem
	ModuleES2015
	ModuleES2020
	ModuleES2022
	ModuleESNext
	ModuleNode16
	ModuleNodeNext
)

// IsCommonJSLike reports whether the format emits require()/module.exports
// semantics for imports and exports, as opposed to native ESM syntax.
func (m ModuleFormat) IsCommonJSLike() bool {
	switch m {
	case ModuleCommonJS, ModuleAMD, ModuleUMD, ModuleSystem, ModuleNode16, ModuleNodeNext:
		return true
	default:
		return false
	}
}
