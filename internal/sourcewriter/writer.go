// Package sourcewriter implements the Source Writer (C1): an append-only
// buffer with indentation, UTF-16 line/column tracking, and V3 sourcemap
// VLQ emission. Every other component (IR Printer, Emission Engine,
// Declaration Emitter) writes text exclusively through a *Writer so that
// column bookkeeping and indentation happen in exactly one place.
package sourcewriter

import (
	"strconv"
	"strings"

	"github.com/mohsen1/tsz-sub019/internal/helpers"
	"github.com/mohsen1/tsz-sub019/internal/logger"
)

// segment is one source-map mapping, pre-delta-encoding.
type segment struct {
	genLine, genCol int32
	hasSource       bool
	srcIndex        int32
	origLine        int32
	origCol         int32
	hasName         bool
	nameIndex       int32
}

// Writer is the Source Writer described in §4.1.
type Writer struct {
	buf []byte

	line, col int32 // current generated position, column in UTF-16 units
	indent    int
	indentStr string
	newline   string

	pendingIndent bool // lazy: applied before the next non-newline write

	sourceMap   bool
	sourceText  string // original text of the single input file, for pos->line/col
	lineStarts  []int32
	sourcePath  string
	names       []string
	namesIndex  map[string]int32
	segments    []segment
}

// New creates a Source Writer for one file. sourceText is the original
// input text, needed to convert byte positions into line/UTF-16-column
// pairs for sourcemap segments (§4.4.5); pass "" if source_map is disabled.
func New(indentStr, newline string, sourceMap bool, sourcePath, sourceText string) *Writer {
	w := &Writer{
		indentStr:  indentStr,
		newline:    newline,
		sourceMap:  sourceMap,
		sourcePath: sourcePath,
		sourceText: sourceText,
		namesIndex: make(map[string]int32),
	}
	if sourceMap {
		w.lineStarts = computeLineStarts(sourceText)
	}
	return w
}

func computeLineStarts(text string) []int32 {
	starts := []int32{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, int32(i+1))
		}
	}
	return starts
}

// resolvePos converts a byte offset into (line, UTF-16 column), both
// 0-based, by binary-searching the line-start table and then counting
// UTF-16 units from the start of that line (§4.4.5).
func (w *Writer) resolvePos(pos int32) (line, col int32) {
	lo, hi := 0, len(w.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if w.lineStarts[mid] <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line = int32(lo)
	lineStart := w.lineStarts[lo]
	col = helpers.UTF16Len(w.sourceText[lineStart:pos])
	return
}

// --- writing ---

func (w *Writer) applyPendingIndent() {
	if !w.pendingIndent {
		return
	}
	w.pendingIndent = false
	for i := 0; i < w.indent; i++ {
		w.buf = append(w.buf, w.indentStr...)
		w.col += helpers.UTF16Len(w.indentStr)
	}
}

// Write appends text with no attached source mapping, advancing line/column
// by UTF-16 code units and resetting column on every newline sequence
// (§4.1 contract).
func (w *Writer) Write(text string) {
	if text == "" {
		return
	}
	w.advance(text)
}

func (w *Writer) WriteChar(c byte) {
	w.advance(string(c))
}

// advance appends text to the buffer and updates line/col, applying the
// lazy indent before the first non-newline rune of the current line.
func (w *Writer) advance(text string) {
	for len(text) > 0 {
		nl := strings.IndexByte(text, '\n')
		var chunk string
		if nl < 0 {
			chunk = text
			text = ""
		} else {
			chunk = text[:nl]
			text = text[nl+1:]
		}
		if chunk != "" {
			w.applyPendingIndent()
			w.buf = append(w.buf, chunk...)
			w.col += helpers.UTF16Len(chunk)
		}
		if nl >= 0 {
			w.buf = append(w.buf, w.newline...)
			w.line++
			w.col = 0
			w.pendingIndent = true // next write on the new line re-applies indent
		}
	}
}

// WriteLine emits one newline sequence.
func (w *Writer) WriteLine() {
	w.buf = append(w.buf, w.newline...)
	w.line++
	w.col = 0
	w.pendingIndent = true
}

// WriteIndent forces the pending indent to be flushed immediately, e.g.
// before a comment that should not be merged into a later write's lazy
// indent application.
func (w *Writer) WriteIndent() {
	w.pendingIndent = true
	w.applyPendingIndent()
}

func (w *Writer) IncreaseIndent() { w.indent++ }
func (w *Writer) DecreaseIndent() {
	if w.indent > 0 {
		w.indent--
	}
}

// WriteNode writes text and attaches a pending source mapping at the
// current generated position, pointing back at sourcePos (§4.1).
func (w *Writer) WriteNode(text string, sourcePos logger.Loc) {
	w.addMapping(sourcePos, "")
	w.Write(text)
}

// WriteNodeWithName is WriteNode plus a `names` table entry, used for
// renamed identifiers so tools can show the original name (§4.1, §6).
func (w *Writer) WriteNodeWithName(text string, sourcePos logger.Loc, name string) {
	w.addMapping(sourcePos, name)
	w.Write(text)
}

func (w *Writer) addMapping(sourcePos logger.Loc, name string) {
	if !w.sourceMap || sourcePos.Start < 0 {
		return
	}
	origLine, origCol := w.resolvePos(sourcePos.Start)
	seg := segment{
		genLine: w.line, genCol: w.col,
		hasSource: true, srcIndex: 0,
		origLine: origLine, origCol: origCol,
	}
	if name != "" {
		idx, ok := w.namesIndex[name]
		if !ok {
			idx = int32(len(w.names))
			w.names = append(w.names, name)
			w.namesIndex[name] = idx
		}
		seg.hasName = true
		seg.nameIndex = idx
	}
	w.segments = append(w.segments, seg)
}

// AddRawMapping replays a mapping computed by an auxiliary emitter (the IR
// Printer, the async-generator builder) with a (base_line, base_col)
// offset already folded into sourcePos's resolved position (§4.1 "Mappings
// may be added by auxiliary emitters... and replayed with an offset").
func (w *Writer) AddRawMapping(sourcePos logger.Loc, name string) {
	w.addMapping(sourcePos, name)
}

// CurrentOffset returns the current byte length of the buffer, used as the
// splice point recorded for hoisted-temp insertion (§4.4.1).
func (w *Writer) CurrentOffset() int { return len(w.buf) }

// InsertLineAt splices text in as a new whole line at byte offset byteOff
// (which must be a line-start position previously captured via
// CurrentOffset). Segments after the splice point are shifted by whole
// lines only, never columns, because the insertion is itself a whole line
// (§4.1).
func (w *Writer) InsertLineAt(byteOff int, text string) {
	if text == "" {
		return
	}
	inserted := []byte(text + w.newline)
	newBuf := make([]byte, 0, len(w.buf)+len(inserted))
	newBuf = append(newBuf, w.buf[:byteOff]...)
	newBuf = append(newBuf, inserted...)
	newBuf = append(newBuf, w.buf[byteOff:]...)
	w.buf = newBuf

	if !w.sourceMap {
		return
	}
	// Every generated line is identified by counting '\n' sequences before
	// byteOff in the buffer *before* insertion.
	insertedAtLine := int32(strings_Count(string(w.buf[:byteOff]), "\n"))
	addedLines := int32(strings_Count(string(inserted), "\n"))
	for i := range w.segments {
		if w.segments[i].genLine >= insertedAtLine {
			w.segments[i].genLine += addedLines
		}
	}
	w.line += addedLines
}

func strings_Count(s, sub string) int { return strings.Count(s, sub) }

// Bytes returns the buffer accumulated so far, without surrendering
// ownership (callers finish by calling Done).
func (w *Writer) Bytes() []byte { return w.buf }

// Done surrenders the buffer to the caller as a string.
func (w *Writer) Done() string { return string(w.buf) }

// --- sourcemap generation ---

// GenerateSourceMapJSON returns the V3 sourcemap JSON for everything
// written so far, or "", false if no source has been registered (§4.1
// "Errors").
func (w *Writer) GenerateSourceMapJSON() (string, bool) {
	if !w.sourceMap || w.sourcePath == "" {
		return "", false
	}

	var mappings strings.Builder
	var prevGenCol, prevSrc, prevOrigLine, prevOrigCol, prevName int32
	currentLine := int32(0)

	buf := make([]byte, 0, 16)
	for _, s := range w.segments {
		for currentLine < s.genLine {
			mappings.WriteByte(';')
			currentLine++
			prevGenCol = 0
		}
		if mappings.Len() > 0 {
			last := mappings.String()[mappings.Len()-1]
			if last != ';' {
				mappings.WriteByte(',')
			}
		}

		buf = buf[:0]
		buf = encodeVLQ(buf, int(s.genCol-prevGenCol))
		prevGenCol = s.genCol
		if s.hasSource {
			buf = encodeVLQ(buf, int(s.srcIndex-prevSrc))
			buf = encodeVLQ(buf, int(s.origLine-prevOrigLine))
			buf = encodeVLQ(buf, int(s.origCol-prevOrigCol))
			prevSrc, prevOrigLine, prevOrigCol = s.srcIndex, s.origLine, s.origCol
			if s.hasName {
				buf = encodeVLQ(buf, int(s.nameIndex-prevName))
				prevName = s.nameIndex
			}
		}
		mappings.Write(buf)
	}

	var out strings.Builder
	out.WriteString(`{"version":3,"sources":[`)
	out.WriteString(quoteJSON(w.sourcePath))
	out.WriteString(`],"sourcesContent":[`)
	out.WriteString(quoteJSON(w.sourceText))
	out.WriteString(`],"names":[`)
	for i, n := range w.names {
		if i > 0 {
			out.WriteByte(',')
		}
		out.WriteString(quoteJSON(n))
	}
	out.WriteString(`],"mappings":"`)
	out.WriteString(mappings.String())
	out.WriteString(`"}`)
	return out.String(), true
}

func quoteJSON(s string) string {
	return strconv.Quote(s)
}
