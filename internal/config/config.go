// Package config holds the per-file options object threaded through the
// lowering pass, emission engine, and declaration emitter. It is the
// Go-native equivalent of the teacher's internal/config package: a plain
// struct of enums and flags, never a source of behavior itself.
package config

import "github.com/mohsen1/tsz-sub019/internal/compat"

type JSX uint8

const (
	JSXPreserve JSX = iota
	JSXReact
	JSXReactJSX
	JSXReactJSXDev
)

type NewLine uint8

const (
	NewLineLF NewLine = iota
	NewLineCRLF
)

func (n NewLine) Sequence() string {
	if n == NewLineCRLF {
		return "\r\n"
	}
	return "\n"
}

// Options is the single enumerated configuration object described in §6.
// It is copied by value into each file's EmitContext; nothing here is
// mutated by the core.
type Options struct {
	Target Target
	Module compat.ModuleFormat
	JSX    JSX

	NewLine NewLine
	Indent  string

	RemoveComments        bool
	SingleQuote           bool
	HasSingleQuote        bool // distinguishes "false" (preserve original) from "explicitly double"
	OmitTrailingSemicolon bool
	DownlevelIteration    bool
	LegacyDecorators      bool
	EmitPublicAPIOnly     bool
	SourceMap             bool
	UseDefineForClassFields bool
}

// Target wraps compat.Target so config consumers don't need to import
// compat directly for the common case, while still exposing the underlying
// feature-bitset machinery via Unsupported().
type Target struct {
	Value compat.Target
}

func (t Target) Unsupported() compat.JSFeature {
	return compat.UnsupportedFeatures(t.Value)
}

func (t Target) IsESNextOrAbove() bool {
	return t.Value == compat.ESNext
}

// DefaultOptions returns the configuration used when nothing else is
// specified: preserve the input as closely as possible.
func DefaultOptions() Options {
	return Options{
		Target:  Target{Value: compat.ESNext},
		Module:  compat.ModuleNone,
		JSX:     JSXPreserve,
		NewLine: NewLineLF,
		Indent:  "    ",
	}
}
