package packrat

// Seq is the input-sequence contract every grammar parses against: an
// ordered, finite sequence of prime elements (characters for text, tokens
// for a token stream). Implementations live in package token; Seq itself
// stays here because TailTable is built directly on top of it.
type Seq interface {
	// Head splits off the first prime element, reporting false if Empty.
	Head() (any, Seq, bool)

	// TakeWhile splits off the longest prefix whose elements all satisfy
	// pred, returning the matched prefix and the remaining suffix.
	TakeWhile(pred func(any) bool) (prefix Seq, rest Seq)

	// Empty reports whether the sequence has no elements left.
	Empty() bool

	// HasPrefix reports whether literal prefixes the sequence, and if so
	// returns the suffix following it.
	HasPrefix(literal string) (Seq, bool)

	// Len returns the number of prime elements remaining.
	Len() int

	// Tails returns the list of all of this sequence's suffixes, from the
	// sequence itself down to (and including) the empty suffix: exactly
	// Len()+1 entries.
	Tails() []Seq
}
