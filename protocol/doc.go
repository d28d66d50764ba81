// Package protocol declares the data types generated packet definitions
// refer to. It holds values only; reading and writing them on the wire is the
// job of a codec built on top.
package protocol
