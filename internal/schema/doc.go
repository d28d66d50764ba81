// Package schema provides the typed model of a protocol document and its
// strict parser.
//
// # Document shape
//
// A document is a JSON object with one key per connection phase. Each phase
// holds two ordered packet lists, one per direction:
//
//	{
//	  "status": {
//	    "toServer": [{"name": "ping_start", "fields": []}],
//	    "toClient": [{"name": "server_info", "fields": [
//	      {"name": "response", "type": "string"}
//	    ]}]
//	  }
//	}
//
// # Field types
//
// A field type is either a primitive name ("varint", "string", ...) or a
// two-element array [kind, args]:
//
//	["container", [{"name": "x", "type": "f64"}, ...]]
//	["array",     {"type": T, "countType": "varint"}]   // length prefixed
//	["array",     {"type": T, "count": 3}]              // fixed
//	["array",     {"type": T, "count": "size"}]         // from sibling field
//	["array",     {"type": T}]                          // rest of buffer
//	["buffer",    {"countType": "varint"}]              // array of u8
//	["option",    T]
//	["switch",    {"compareTo": "kind", "fields": {"0": T, ...}, "default": T}]
//	["bitfield",  [{"name": "x", "size": 26, "signed": true}, ...]]
//
// The vocabulary is closed: unknown kinds, unknown keys, duplicate keys and
// malformed numbers are reported as diagnostic.SchemaFormatError. The parser
// keeps object members in declaration order because packet ids and field
// order are derived from it.
package schema
