package protocol

// Packet is implemented by every generated packet type.
type Packet interface {
	// ID returns the wire id of the packet within its phase and direction.
	ID() int32
}

// Registry maps the wire ids of one phase direction to packet constructors.
type Registry map[int32]func() Packet

// New returns a zero packet for id.
func (r Registry) New(id int32) (Packet, bool) {
	ctor, ok := r[id]
	if !ok {
		return nil, false
	}

	return ctor(), true
}
