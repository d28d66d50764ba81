// Package transform turns a parsed protocol document into the protocol IR.
//
// The transformation is a pure function of the document, the type mapping
// table and Options: it performs no I/O and fails on the first error.
//
// For every phase present in the document it:
//   - assigns each packet its wire id, the zero-based position in its
//     direction's list;
//   - resolves every field type recursively against the mapping table;
//   - names packets, fields, synthesized records, unions and bitfields,
//     rejecting names that collide after normalization;
//   - checks sibling references (array counts, switch discriminants) point at
//     earlier fields;
//   - collects the imports the resolved types need, deduplicated in
//     first-seen order.
//
// Synthesized type names concatenate the owner and the field:
// field "properties" of client-bound packet "success" becomes record
// ClientboundSuccessProperties. Packet names take precedence; a synthesized
// name already taken gets the smallest free numeric suffix
// (ClientboundSuccessProperties2). A packet field named like the ID method
// is renamed ID_.
package transform
