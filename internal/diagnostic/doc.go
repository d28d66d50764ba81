// Package diagnostic defines the error taxonomy of the protocol generator.
//
// Every error names the schema node it is about through a Location
// (phase, direction, packet, field path) so a failed run can be traced back to
// the offending part of the protocol document.
//
// Error kinds:
//   - SchemaFormatError: the document violates the structural grammar
//   - UnknownTypeError: a primitive name has no entry in the mapping table
//   - NameCollisionError: two names normalize to the same Go identifier
//
// All three match their sentinel with errors.Is and are fatal.
//
// Diagnostics collects non-fatal findings and batch validation errors of the
// configuration and the type mapping overrides.
package diagnostic
