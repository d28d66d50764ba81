// Package ir holds the protocol intermediate representation: one Protocol per
// phase, packets in wire-id order, every field type fully resolved to a Go
// type descriptor.
//
// Values of this package are produced by the transform package and consumed
// by emitters. They are never mutated after construction.
package ir
