// Package matcher implements a streaming byte-substring detector.
//
// A Matcher watches a byte stream fed to it in arbitrary-sized chunks
// and reports the first time a fixed pattern has appeared as a
// contiguous substring since the last reset. It is the naive linear
// scanner: correct for patterns that are not self-overlapping on their
// first byte, which covers every pattern this program searches for.
package matcher

// Matcher detects a fixed byte pattern across incremental Feed calls.
// The zero value is not usable; construct with New.
type Matcher struct {
	pattern []byte
	state   int
}

// New constructs a Matcher for pattern. An empty pattern never matches.
func New(pattern string) *Matcher {
	return &Matcher{pattern: []byte(pattern)}
}

// Feed appends buf to the logical stream and reports whether pattern
// has been observed as a contiguous substring since the last Feed call
// that returned true, or since construction/Reset if none has. Once
// Feed returns true, any bytes in buf after the match are not consumed
// by this call; callers that want further matches must call Reset.
func (m *Matcher) Feed(buf []byte) bool {
	if len(m.pattern) == 0 {
		return false
	}
	for _, b := range buf {
		if m.state < len(m.pattern) && m.pattern[m.state] == b {
			m.state++
		} else {
			m.state = 0
			if m.pattern[0] == b {
				m.state = 1
			}
		}
		if m.state == len(m.pattern) {
			return true
		}
	}
	return false
}

// Reset returns the matcher to its freshly constructed state.
func (m *Matcher) Reset() {
	m.state = 0
}
