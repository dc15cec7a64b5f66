package target

import (
	"fmt"
	"strings"
)

// addrSpecSeparators are the characters yar_addrspec_new splits a full
// address specification on: comma, space, tab, carriage return, and
// newline, any run of which separates two address tokens.
const addrSpecSeparators = ", \t\r\n"

// AddrSpec is a full address specification: a sequence of address tokens
// (singletons, CIDR networks, or dash ranges) separated by commas or
// whitespace, re-enumerable from the start via Reset.
//
// Tokens are re-parsed into a fresh AddrIter lazily, one at a time, as the
// spec is walked, mirroring the upstream yar_addrspec_next, which keeps
// only the current token's iterator alive rather than materializing the
// whole specification up front.
type AddrSpec struct {
	tokens []string
	index  int
	cur    *AddrIter
	done   bool
}

// NewAddrSpec parses spec into its address tokens. Every token is validated
// immediately (each is parsed once, and discarded) so that a malformed
// specification is rejected at construction time rather than partway
// through enumeration.
func NewAddrSpec(spec string) (*AddrSpec, error) {
	tokens := splitSpec(spec)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: address specification", ErrEmptySpec)
	}
	for _, tok := range tokens {
		if _, err := NewAddrIter(tok); err != nil {
			return nil, err
		}
	}
	return &AddrSpec{tokens: tokens}, nil
}

func splitSpec(spec string) []string {
	fields := strings.FieldsFunc(spec, func(r rune) bool {
		return strings.ContainsRune(addrSpecSeparators, r)
	})
	return fields
}

// Next returns the next address in the specification and true, or the zero
// Address and false once every token has been fully enumerated.
func (s *AddrSpec) Next() (Address, bool) {
	for {
		if s.done {
			return Address{}, false
		}
		if s.index >= len(s.tokens) {
			s.done = true
			return Address{}, false
		}
		if s.cur == nil {
			it, err := NewAddrIter(s.tokens[s.index])
			if err != nil {
				// tokens were validated at construction time; this can only
				// happen if the spec is mutated concurrently, which it isn't.
				s.done = true
				return Address{}, false
			}
			s.cur = it
		}
		val, ok := s.cur.Next()
		if !ok {
			s.cur = nil
			s.index++
			continue
		}
		if s.cur.Expired() {
			s.cur = nil
			s.index++
		}
		return val, true
	}
}

// Expired reports whether every token in the specification has been fully
// enumerated.
func (s *AddrSpec) Expired() bool { return s.done }

// Reset rewinds the specification to its first token, so that Next begins
// re-enumerating from the start.
func (s *AddrSpec) Reset() {
	s.index = 0
	s.cur = nil
	s.done = false
}
