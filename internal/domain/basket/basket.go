package basket

import "leisure-booking/internal/pkg/errs"

var (
	ErrDuplicateCode   = errs.New("slot already in basket")
	ErrIndexOutOfRange = errs.New("basket index out of range")
)

// Basket is the ordered list of provisionally selected slot codes for one
// booking scope. It is a pure value: operations return the mutated basket
// and the caller persists it. The basket never validates slot existence or
// capacity; that happens at checkout.
type Basket struct {
	codes []string
}

func New(codes ...string) Basket {
	b := Basket{codes: make([]string, len(codes))}
	copy(b.codes, codes)
	return b
}

// Add appends a code, preserving insertion order. Codes already present are
// rejected so a double-submitted form cannot duplicate a selection.
func (b Basket) Add(code string) (Basket, error) {
	if b.Contains(code) {
		return b, ErrDuplicateCode
	}
	next := make([]string, len(b.codes), len(b.codes)+1)
	copy(next, b.codes)
	return Basket{codes: append(next, code)}, nil
}

// Remove drops the code at the given position.
func (b Basket) Remove(index int) (Basket, error) {
	if index < 0 || index >= len(b.codes) {
		return b, ErrIndexOutOfRange
	}
	next := make([]string, 0, len(b.codes)-1)
	next = append(next, b.codes[:index]...)
	next = append(next, b.codes[index+1:]...)
	return Basket{codes: next}, nil
}

func (b Basket) Clear() Basket {
	return Basket{}
}

// Codes returns the selection in insertion order.
func (b Basket) Codes() []string {
	out := make([]string, len(b.codes))
	copy(out, b.codes)
	return out
}

func (b Basket) Contains(code string) bool {
	for _, c := range b.codes {
		if c == code {
			return true
		}
	}
	return false
}

func (b Basket) Len() int {
	return len(b.codes)
}

func (b Basket) IsEmpty() bool {
	return len(b.codes) == 0
}
