package emitter

// Where an output line came from.
type Origin struct {
	Tag  string
	Line int
}

// Output line -> origin of the first token written on it. Lines holding
// only whitespace, comments or synthesized text have no origin.
type LineMap struct {
	lines []Origin
}

func (m *LineMap) set(outLine int, origin Origin) {
	for len(m.lines) < outLine {
		m.lines = append(m.lines, Origin{})
	}
	if m.lines[outLine-1] == (Origin{}) {
		m.lines[outLine-1] = origin
	}
}

// outLine is 1-based.
func (m *LineMap) Lookup(outLine int) (Origin, bool) {
	if outLine < 1 || outLine > len(m.lines) {
		return Origin{}, false
	}
	origin := m.lines[outLine-1]
	return origin, origin != Origin{}
}

// Maps the next n output lines, one for one, to lines 1 to n of tag: the
// source was written out unchanged.
func (m *LineMap) Append(tag string, n int) {
	for line := 1; line <= n; line++ {
		m.lines = append(m.lines, Origin{Tag: tag, Line: line})
	}
}

// Accounts for n lines written in front of the emitted text.
func (m *LineMap) Prepend(n int) {
	if n <= 0 {
		return
	}
	m.lines = append(make([]Origin, n), m.lines...)
}

// Number of output lines known to the map
func (m *LineMap) Len() int { return len(m.lines) }
