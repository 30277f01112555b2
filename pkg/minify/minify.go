// Package minify normalizes file content before aggregation. Structured
// file types (dart/yaml/json) get C-style comments stripped and whitespace
// collapsed by a single-pass scanner; JSON is additionally re-serialized
// into canonical compact form when it parses. Everything else passes
// through unchanged.
package minify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// Kind classifies a file for normalization purposes.
type Kind int

const (
	// KindOther content is returned unchanged.
	KindOther Kind = iota
	// KindStructured content is run through the comment/whitespace scanner.
	KindStructured
	// KindJSON is structured content that is also compacted via a strict
	// JSON parse when possible.
	KindJSON
)

// structuredKinds maps lowercased extensions to their normalization kind.
// Extensions absent from the map are KindOther.
var structuredKinds = map[string]Kind{
	".dart": KindStructured,
	".yaml": KindStructured,
	".json": KindJSON,
}

// KindForPath returns the normalization kind for a path, decided by its
// lowercased extension.
func KindForPath(path string) Kind {
	if kind, ok := structuredKinds[strings.ToLower(filepath.Ext(path))]; ok {
		return kind
	}
	return KindOther
}

// Normalize applies kind-specific normalization to content.
//
// For KindJSON the raw content is compacted when it parses as JSON; when it
// does not, the scanner output is returned together with a non-nil advisory
// error so the caller can report the fallback. The returned string is
// usable in every case; JSON parse failure is not fatal.
func Normalize(content string, kind Kind) (string, error) {
	switch kind {
	case KindStructured:
		return Code(content), nil
	case KindJSON:
		compacted, err := compactJSON(content)
		if err != nil {
			return Code(content), fmt.Errorf("compacting JSON: %w", err)
		}
		return compacted, nil
	default:
		return content, nil
	}
}

// state identifies the scanner's position class. States are mutually
// exclusive: a string never starts inside a comment and vice versa.
type state int

const (
	stateNormal state = iota
	stateBlockComment
	stateString
)

// scanner strips comments and collapses whitespace outside of quoted
// strings. It walks runes so multi-byte characters survive the pass.
type scanner struct {
	src   []rune
	pos   int
	state state
	delim rune // active string delimiter, valid in stateString
	out   []rune
}

// Code removes `/* */` and `//` comments and collapses every run of
// whitespace outside a string to a single space. Quoted strings (double,
// single, or backtick) are kept verbatim, and comment markers inside them
// are not treated as comments. Unterminated comments and strings run to end
// of input; the scanner never fails on malformed input.
func Code(content string) string {
	s := scanner{src: []rune(content)}
	for s.pos < len(s.src) {
		s.step()
	}
	return strings.TrimSpace(string(s.out))
}

// step consumes at least one rune, so the scan always terminates.
func (s *scanner) step() {
	switch s.state {
	case stateBlockComment:
		switch {
		case s.pairAt('/', '*'):
			// An opener inside a comment is checked before the closer and
			// consumed without leaving the state, so "/*/" never closes the
			// comment it opened.
			s.pos += 2
		case s.pairAt('*', '/'):
			s.state = stateNormal
			s.pos += 2
		default:
			s.pos++
		}

	case stateString:
		c := s.src[s.pos]
		if c == s.delim && !s.escaped() {
			s.state = stateNormal
		}
		s.emit(c)
		s.pos++

	default: // stateNormal
		switch c := s.src[s.pos]; {
		case s.pairAt('/', '*'):
			s.state = stateBlockComment
			s.pos += 2
		case s.pairAt('/', '/'):
			// Drop the rest of the line but not the newline itself; the
			// newline is collapsed as ordinary whitespace on the next step.
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
		case isQuote(c) && !s.escaped():
			s.state = stateString
			s.delim = c
			s.emit(c)
			s.pos++
		case unicode.IsSpace(c):
			if n := len(s.out); n > 0 && !unicode.IsSpace(s.out[n-1]) {
				s.emit(' ')
			}
			s.pos++
		default:
			s.emit(c)
			s.pos++
		}
	}
}

// pairAt reports whether the two runes at the scan position are a then b.
func (s *scanner) pairAt(a, b rune) bool {
	return s.pos+1 < len(s.src) && s.src[s.pos] == a && s.src[s.pos+1] == b
}

// escaped reports whether the rune at the scan position is preceded by a
// backslash. Position zero is never escaped; a doubled backslash is not
// special-cased.
func (s *scanner) escaped() bool {
	return s.pos > 0 && s.src[s.pos-1] == '\\'
}

func (s *scanner) emit(c rune) {
	s.out = append(s.out, c)
}

func isQuote(c rune) bool {
	return c == '"' || c == '\'' || c == '`'
}

// compactJSON re-serializes src without inter-token whitespace, keeping
// object keys in parse order.
func compactJSON(src string) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(src)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
