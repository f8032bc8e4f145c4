package chunker

import "strings"

// fenceState tracks the currently open fenced code block while scanning
// lines in source order. At most one fence is open at a time; a marker line
// of the other family (or a shorter run of the same family) inside an open
// fence is ordinary fenced content.
type fenceState struct {
	open      bool
	openLine  string // verbatim opening line, replayed when a fence reopens
	marker    byte
	markerLen int
}

// parseFenceLine reports whether line is a fence-delimiter line and returns
// its marker character and run length. Up to three leading spaces are
// allowed before the marker; anything after the run (info string) is ignored.
func parseFenceLine(line string) (marker byte, length int, ok bool) {
	i := 0
	for i < len(line) && i < 3 && line[i] == ' ' {
		i++
	}
	if i >= len(line) {
		return 0, 0, false
	}
	c := line[i]
	if c != '`' && c != '~' {
		return 0, 0, false
	}
	n := 0
	for i+n < len(line) && line[i+n] == c {
		n++
	}
	if n < 3 {
		return 0, 0, false
	}
	return c, n, true
}

// isFenceLine reports whether line is a fence-delimiter line.
func isFenceLine(line string) bool {
	_, _, ok := parseFenceLine(line)
	return ok
}

// observe advances the fence state by one line.
func (f *fenceState) observe(line string) {
	marker, length, ok := parseFenceLine(line)
	if !ok {
		return
	}
	if !f.open {
		f.open = true
		f.openLine = line
		f.marker = marker
		f.markerLen = length
		return
	}
	// Closing requires the same marker character and a run at least as long
	// as the opening run. Indentation does not have to match.
	if marker == f.marker && length >= f.markerLen {
		f.open = false
		f.openLine = ""
		f.marker = 0
		f.markerLen = 0
	}
}

// closeLine returns the synthetic line that closes the open fence.
func (f *fenceState) closeLine() string {
	return strings.Repeat(string(f.marker), f.markerLen)
}
