package sync

// Origin records what caused a local mutation. Mutations applied by an
// inbound webhook handler carry OriginSync; the outbound dispatcher is
// skipped for those writes so an inbound event can never re-dispatch itself
// back to the peer and loop.
type Origin string

const (
	OriginUser Origin = "user"
	OriginSync Origin = "sync"
)

// ShouldDispatch reports whether a mutation with this origin may trigger an
// outbound call to the peer.
func (o Origin) ShouldDispatch() bool {
	return o != OriginSync
}
