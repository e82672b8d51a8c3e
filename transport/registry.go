package transport

import (
	"fmt"
	"sync"

	"github.com/ystepanoff/triggerlink/hal"
	proto "github.com/ystepanoff/triggerlink/protocol"
)

// PeerHandle is an index into the registry's slot arena. Components other
// than the registry hold handles, never Peer references.
type PeerHandle int

// DirectedHandler is invoked for frames addressed to this node by a specific
// registered peer. It runs on the receive dispatch context.
type DirectedHandler func(src proto.PeerAddress, msg proto.Message)

// Registry maps hardware addresses to registered peers. It is a bounded
// arena: a fixed number of index-addressed slots, with least-recently-seen
// eviction once every slot is taken. All operations are single short
// critical sections, safe to call from the receive dispatch context.
type Registry struct {
	mu     sync.Mutex
	driver RadioDriver
	slots  []slot
	order  []PeerHandle // insertion order, diagnostics only
}

type slot struct {
	used    bool
	peer    proto.Peer
	handler DirectedHandler
}

func NewRegistry(driver RadioDriver, capacity int) *Registry {
	if capacity < 1 {
		capacity = proto.DefaultPeerCapacity
	}
	return &Registry{
		driver: driver,
		slots:  make([]slot, capacity),
	}
}

// Register stores a peer for addr and registers it with the driver. The
// address check and the insert happen under one lock, so back-to-back frames
// from the same sender can never produce two entries: a second Register for
// a known address returns the existing handle. A driver rejection surfaces
// as ErrRegistrationFailed and leaves the registry unchanged.
func (r *Registry) Register(addr proto.PeerAddress, channel uint8, role proto.InterfaceRole, linkKey []byte, now uint32) (PeerHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.lookupLocked(addr); ok {
		r.slots[h].peer.LastSeen = now
		return h, nil
	}

	h, ok := r.freeSlotLocked()
	if !ok {
		h = r.evictLocked(now)
	}

	err := r.driver.AddPeer(PeerDescriptor{
		Address: addr,
		Channel: channel,
		Role:    role,
		LinkKey: linkKey,
	})
	if err != nil {
		return -1, fmt.Errorf("%w: %v", proto.ErrRegistrationFailed, err)
	}

	r.slots[h] = slot{
		used: true,
		peer: proto.Peer{
			Address:    addr,
			Channel:    channel,
			Role:       role,
			LinkKey:    linkKey,
			Registered: true,
			LastSeen:   now,
		},
	}
	r.order = append(r.order, h)
	return h, nil
}

// Lookup is a pure query with no side effects.
func (r *Registry) Lookup(addr proto.PeerAddress) (PeerHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookupLocked(addr)
}

// Touch refreshes the last-seen stamp used as the eviction key.
func (r *Registry) Touch(h PeerHandle, now uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.validLocked(h) {
		r.slots[h].peer.LastSeen = now
	}
}

// Peer returns a copy of the stored record.
func (r *Registry) Peer(h PeerHandle) (proto.Peer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.validLocked(h) {
		return proto.Peer{}, false
	}
	return r.slots[h].peer, true
}

// List returns copies of all peers in insertion order. Diagnostics only; the
// order carries no protocol meaning.
func (r *Registry) List() []proto.Peer {
	r.mu.Lock()
	defer r.mu.Unlock()
	peers := make([]proto.Peer, 0, len(r.order))
	for _, h := range r.order {
		if r.slots[h].used {
			peers = append(peers, r.slots[h].peer)
		}
	}
	return peers
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// SetDirectedHandler installs the handler dispatched for directed frames
// from this peer.
func (r *Registry) SetDirectedHandler(h PeerHandle, fn DirectedHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.validLocked(h) {
		r.slots[h].handler = fn
	}
}

func (r *Registry) directedHandler(h PeerHandle) DirectedHandler {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.validLocked(h) {
		return nil
	}
	return r.slots[h].handler
}

func (r *Registry) validLocked(h PeerHandle) bool {
	return h >= 0 && int(h) < len(r.slots) && r.slots[h].used
}

func (r *Registry) lookupLocked(addr proto.PeerAddress) (PeerHandle, bool) {
	for i := range r.slots {
		if r.slots[i].used && r.slots[i].peer.Address == addr {
			return PeerHandle(i), true
		}
	}
	return -1, false
}

func (r *Registry) freeSlotLocked() (PeerHandle, bool) {
	for i := range r.slots {
		if !r.slots[i].used {
			return PeerHandle(i), true
		}
	}
	return -1, false
}

// evictLocked frees the least-recently-seen slot and returns its handle.
// Only called when every slot is used, so it always finds a victim.
func (r *Registry) evictLocked(now uint32) PeerHandle {
	victim := PeerHandle(0)
	var staleness uint32
	for i := range r.slots {
		if age := hal.Elapsed(now, r.slots[i].peer.LastSeen); age >= staleness {
			staleness = age
			victim = PeerHandle(i)
		}
	}

	_ = r.driver.RemovePeer(r.slots[victim].peer.Address)
	r.slots[victim] = slot{}
	for i, h := range r.order {
		if h == victim {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return victim
}
