package protocol

// Optional[T] represents an optional field in a packet.
//
// Serialized Optional[T] is prefixed with a boolean telling whether the value
// exists. If so, the value T follows.
type Optional[T any] struct {
	Exists bool
	Item   T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Exists: true, Item: v}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it exists.
func (o Optional[T]) Get() (T, bool) {
	return o.Item, o.Exists
}

// Position is a block position. Its serialized form packs X and Z in 26 bits
// each and Y in 12 bits; values out of range are truncated.
type Position struct {
	X int32
	Y int16
	Z int32
}

// Pack returns the 64-bit packed form of p.
func (p Position) Pack() uint64 {
	return (uint64(p.X&0x3FFFFFF) << 38) |
		(uint64(p.Z&0x3FFFFFF) << 12) |
		uint64(p.Y&0xFFF)
}

// UnpackPosition is the inverse of Position.Pack.
func UnpackPosition(packed uint64) Position {
	return Position{
		X: int32(SignExtend(packed>>38, 26)),
		Z: int32(SignExtend(packed>>12&0x3FFFFFF, 26)),
		Y: int16(SignExtend(packed&0xFFF, 12)),
	}
}

// SignExtend interprets the low bits of v as a two's complement integer.
func SignExtend(v uint64, bits int) int64 {
	shift := 64 - bits
	return int64(v<<shift) >> shift
}

// NBT is an encoded named binary tag compound.
type NBT []byte

// OptionalNBT is an NBT compound that may be absent.
type OptionalNBT = Optional[NBT]

// Slot is an inventory slot.
type Slot struct {
	Present bool
	ItemID  int32
	Count   int8
	NBT     NBT
}

// Empty reports whether the slot holds no item.
func (s Slot) Empty() bool {
	return !s.Present || s.Count == 0
}

// MetadataEntry is one entry of an entity metadata list. Value is kept in
// encoded form; Type selects its interpretation.
type MetadataEntry struct {
	Index uint8
	Type  int32
	Value []byte
}

// EntityMetadata is the metadata list of an entity.
type EntityMetadata []MetadataEntry

// RestBuffer holds every byte up to the end of a packet.
type RestBuffer []byte
