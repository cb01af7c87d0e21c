package types

import (
	"fmt"
	"strconv"
)

// PlaceholderPrefix starts every generated placeholder token.
const PlaceholderPrefix = "@p"

// PreparedValue is a literal registered during placeholder rendering.
// This is exported from the internal package so dialects can use it,
// but external users cannot import this package.
type PreparedValue struct {
	Token  string
	Value  Value
	Escape bool
	// Offset is the byte position of Token in the rendered SQL, or -1
	// until the renderer places it.
	Offset int
}

// Name returns the token without its leading '@', as used for named binding.
func (p PreparedValue) Name() string {
	return p.Token[1:]
}

// PreparedValues is the ordered store backing one rendered statement.
// Registration order equals textual order in the placeholder SQL.
type PreparedValues struct {
	items []PreparedValue
	index map[string]int
}

// NewPreparedValues returns an empty store.
func NewPreparedValues() *PreparedValues {
	return &PreparedValues{index: make(map[string]int)}
}

// Add registers v and returns the token standing in for it.
func (p *PreparedValues) Add(v Value, escape bool) string {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	token := PlaceholderPrefix + strconv.Itoa(len(p.items)+1)
	p.index[token] = len(p.items)
	p.items = append(p.items, PreparedValue{Token: token, Value: v, Escape: escape, Offset: -1})
	return token
}

// Place records the byte offset at which token appears in the rendered SQL.
// A token is placed exactly once.
func (p *PreparedValues) Place(token string, offset int) error {
	if p == nil {
		return fmt.Errorf("unknown placeholder %s", token)
	}
	i, ok := p.index[token]
	if !ok {
		return fmt.Errorf("unknown placeholder %s", token)
	}
	if p.items[i].Offset >= 0 {
		return fmt.Errorf("placeholder %s placed twice", token)
	}
	p.items[i].Offset = offset
	return nil
}

// Get returns the value registered under token.
func (p *PreparedValues) Get(token string) (PreparedValue, bool) {
	if p == nil {
		return PreparedValue{}, false
	}
	i, ok := p.index[token]
	if !ok {
		return PreparedValue{}, false
	}
	return p.items[i], true
}

// Len returns the number of registered values.
func (p *PreparedValues) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

// All returns a copy of the registered values in registration order.
func (p *PreparedValues) All() []PreparedValue {
	if p == nil {
		return nil
	}
	out := make([]PreparedValue, len(p.items))
	copy(out, p.items)
	return out
}

// Tokens returns the registered tokens in registration order.
func (p *PreparedValues) Tokens() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.items))
	for i, item := range p.items {
		out[i] = item.Token
	}
	return out
}
