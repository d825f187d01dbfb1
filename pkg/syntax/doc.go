// Package syntax implements the lossless concrete syntax tree used by the
// formatter.
//
// The tree has two layers. Green nodes and tokens are immutable, carry no
// offsets and may be shared between trees; a NodeCache interns small ones
// by content. Red nodes (Node, Token) are cheap cursors layered on top of a
// green root that add parent links and absolute offsets; they are created
// on demand while walking and compared by position (Key).
//
// Every byte of the source belongs to exactly one token: either to its text
// or to one of its trivia pieces. Concatenating the full text of all tokens
// in document order reproduces the source.
package syntax
