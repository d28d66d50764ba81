// Package mapping provides the type mapping table: the fixed association
// from protocol primitive names to Go types and the imports they need.
//
// # Built-in entries
//
//	varint, varlong            int32, int64
//	bool, i8..i64, u8..u64      bool and the sized Go integers
//	f32, f64                   float32, float64
//	string                     string
//	UUID                       uuid.UUID (github.com/google/uuid)
//	position, slot, nbt, ...   types of the runtime package
//	void                       no value
//
// Bitfields are stored in the smallest unsigned integer holding their total
// width (see Table.BitfieldStorage).
//
// # Overrides
//
// A YAML file can add entries for primitives a newer protocol version
// introduces:
//
//	types:
//	  - name: vec3f
//	    go: Vec3f
//	    runtime: true
//	  - name: fooInt24
//	    go: int32
//	    integer: true
//
// Overrides never replace built-in entries.
//
// A Table is read-only once built and safe for concurrent use.
package mapping
