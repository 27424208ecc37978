// Package logger carries source position and diagnostic types shared by
// every stage of the pipeline. It mirrors the teacher's position model
// (byte offsets, not line/column, so that UTF-16 column math happens exactly
// once, in the source writer) but trims the multi-platform terminal/color
// machinery the core has no use for.
package logger

// Loc is a byte offset from the start of a file. Nodes in the AST arena, the
// directive map, and comments are all keyed off of these.
type Loc struct {
	Start int32
}

// Range is a Loc plus a length in bytes.
type Range struct {
	Loc Loc
	Len int32
}

func (r Range) End() int32 { return r.Loc.Start + r.Len }

// Source describes one input file. SourcesContent is kept alongside so the
// source writer can embed it verbatim in the sourcemap without re-reading
// the file from disk.
type Source struct {
	Index          uint32
	KeyPath        string
	PrettyPath     string
	IdentifierName string
	Contents       string
}

// MsgKind distinguishes configuration/usage diagnostics from the (absent)
// category of diagnostics the core itself would raise. The core never
// raises these; only the external config loader does, per the error-
// handling design's "surfaced" list.
type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
)

type Msg struct {
	Kind MsgKind
	Text string
	Loc  Loc
}

// Log collects diagnostics produced by external collaborators (tsconfig
// loading, CLI flag parsing) that are handed to the core alongside Options.
// The core itself never appends to a Log: it is infallible by design (§7).
type Log struct {
	Msgs []Msg
}

func (l *Log) AddError(loc Loc, text string) {
	l.Msgs = append(l.Msgs, Msg{Kind: Error, Text: text, Loc: loc})
}

func (l *Log) HasErrors() bool {
	for _, m := range l.Msgs {
		if m.Kind == Error {
			return true
		}
	}
	return false
}
