package helpers

import "bytes"

// Joiner accumulates many string and byte-slice fragments and concatenates
// them with a single final allocation, sized exactly, so that large outputs
// don't pay for Go's slice-growth doubling. The source writer does not use
// it; it appends to its own []byte buffer.
type Joiner struct {
	strings  []joinerString
	bytes    []joinerBytes
	length   uint32
	lastByte byte
}

type joinerString struct {
	data   string
	offset uint32
}

type joinerBytes struct {
	data   []byte
	offset uint32
}

func (j *Joiner) AddString(data string) {
	if len(data) > 0 {
		j.lastByte = data[len(data)-1]
	}
	j.strings = append(j.strings, joinerString{data, j.length})
	j.length += uint32(len(data))
}

func (j *Joiner) AddBytes(data []byte) {
	if len(data) > 0 {
		j.lastByte = data[len(data)-1]
	}
	j.bytes = append(j.bytes, joinerBytes{data, j.length})
	j.length += uint32(len(data))
}

func (j *Joiner) LastByte() byte { return j.lastByte }

func (j *Joiner) Length() uint32 { return j.length }

func (j *Joiner) EnsureNewlineAtEnd() {
	if j.length > 0 && j.lastByte != '\n' {
		j.AddString("\n")
	}
}

func (j *Joiner) Done() []byte {
	if len(j.strings) == 0 && len(j.bytes) == 1 && j.bytes[0].offset == 0 {
		return j.bytes[0].data
	}
	buf := make([]byte, j.length)
	for _, s := range j.strings {
		copy(buf[s.offset:], s.data)
	}
	for _, b := range j.bytes {
		copy(buf[b.offset:], b.data)
	}
	return buf
}

// DoneWithNewline is Done but rewriting "\n" to the given sequence.
func (j *Joiner) DoneWithNewline(newline string) []byte {
	data := j.Done()
	if newline == "\n" {
		return data
	}
	return bytes.ReplaceAll(data, []byte{'\n'}, []byte(newline))
}
