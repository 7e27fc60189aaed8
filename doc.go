// Package packrat implements a memoizing parser-combinator engine for
// mutually recursive, context-free grammars.
//
// A grammar is a bundle of named non-terminals, each a combinator expression
// built out of Pure, Fmap, Apply, Alt, and friends, that may reference any
// other non-terminal in the bundle (including itself) through a
// NonTerminal handle. Parsing a non-terminal at a given input position is
// shared automatically: the tail table built by BuildTailTable memoizes
// every non-terminal's result list at every position, so an unambiguous
// grammar parses in O(n^2) worst case.
//
// Unlike a typical backtracking parser, every combinator here returns a
// ResultList rather than a single success: ambiguous grammars keep every
// parse, and failures carry the furthest position reached rather than just
// "no match". Package peg and the Longest/PEG/TerminalPEG adapters bridge
// to a separate, measured, single-result backtracking PEG engine for the
// sub-grammars that want greedy, unambiguous matching instead.
package packrat
