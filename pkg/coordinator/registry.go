package coordinator

import (
	"log"
	"sort"
	"sync"

	"github.com/mfreeman451/unradar/pkg/models"
)

// Registry is the discovery and notification hub for one coordinator.
// It tracks the known identifier set per resource class, every listener
// registration, and the currently published snapshot. All subscription
// and notification state lives here rather than scattered across
// observers.
type Registry struct {
	mu        sync.RWMutex
	nextToken uint64
	current   *models.Snapshot
	known     map[models.ResourceClass]map[string]struct{}
	generic   map[models.ResourceClass][]listenerRef
	resource  map[models.ResourceClass]map[string][]listenerRef
	snapshot  []snapshotRef
	tokens    map[uint64]tokenSite
}

type listenerRef struct {
	token uint64
	fn    ResourceListener
}

type snapshotRef struct {
	token uint64
	fn    SnapshotListener
}

// tokenSite locates a registration so Unsubscribe can remove it.
// wholeModel registrations carry no class; per-identifier ones carry
// both class and id.
type tokenSite struct {
	class      models.ResourceClass
	id         string
	wholeModel bool
}

// pendingEvent pairs a listener with the event it should receive once
// the registry lock is released.
type pendingEvent struct {
	fn    ResourceListener
	event ResourceEvent
}

func NewRegistry() *Registry {
	return &Registry{
		known:    make(map[models.ResourceClass]map[string]struct{}),
		generic:  make(map[models.ResourceClass][]listenerRef),
		resource: make(map[models.ResourceClass]map[string][]listenerRef),
		tokens:   make(map[uint64]tokenSite),
	}
}

// Current returns the most recently published snapshot, or nil before
// the first successful cycle.
func (r *Registry) Current() *models.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current
}

// SubscribeClass registers a listener for every identifier that newly
// appears in the class. Identifiers already known at subscription time
// are caught up immediately so late subscribers converge with early
// ones; each identifier is still delivered at most once per appearance.
func (r *Registry) SubscribeClass(class models.ResourceClass, fn ResourceListener) uint64 {
	r.mu.Lock()

	token := r.issueToken(tokenSite{class: class})
	r.generic[class] = append(r.generic[class], listenerRef{token: token, fn: fn})

	catchUp := make([]pendingEvent, 0, len(r.known[class]))
	for _, id := range sortedIDs(r.known[class]) {
		catchUp = append(catchUp, pendingEvent{
			fn:    fn,
			event: ResourceEvent{Class: class, ID: id, Kind: EventAppeared, Snapshot: r.current},
		})
	}

	r.mu.Unlock()

	deliver(catchUp)

	return token
}

// SubscribeResource registers a listener for one identifier. The
// listener receives the identifier's removal, and its appearance if it
// was not yet known at subscription time; no catch-up fires for an
// already-known identifier. Removal drops the registration.
func (r *Registry) SubscribeResource(class models.ResourceClass, id string, fn ResourceListener) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	token := r.issueToken(tokenSite{class: class, id: id})

	if r.resource[class] == nil {
		r.resource[class] = make(map[string][]listenerRef)
	}

	r.resource[class][id] = append(r.resource[class][id], listenerRef{token: token, fn: fn})

	return token
}

// SubscribeSnapshot registers a listener invoked after every published
// snapshot.
func (r *Registry) SubscribeSnapshot(fn SnapshotListener) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	token := r.issueToken(tokenSite{wholeModel: true})
	r.snapshot = append(r.snapshot, snapshotRef{token: token, fn: fn})

	return token
}

// Unsubscribe removes a registration. Unknown or already-removed tokens
// are a no-op.
func (r *Registry) Unsubscribe(token uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	site, ok := r.tokens[token]
	if !ok {
		return
	}

	delete(r.tokens, token)

	switch {
	case site.wholeModel:
		r.snapshot = dropSnapshotRef(r.snapshot, token)
	case site.id != "":
		listeners := dropListenerRef(r.resource[site.class][site.id], token)
		if len(listeners) == 0 {
			delete(r.resource[site.class], site.id)
		} else {
			r.resource[site.class][site.id] = listeners
		}
	default:
		r.generic[site.class] = dropListenerRef(r.generic[site.class], token)
	}
}

// Report diffs the full observed identifier set for a class against the
// known set, updates the known set, and fires appearance and removal
// notifications. It must only be called with a complete, successful
// result set for the class; failed or partial cycles report nothing.
// pending is the snapshot under construction and is attached to every
// event. The sorted appeared and removed sets are returned.
func (r *Registry) Report(class models.ResourceClass, observed []string, pending *models.Snapshot) (appeared, removed []string) {
	r.mu.Lock()

	known := r.known[class]
	if known == nil {
		known = make(map[string]struct{})
	}

	observedSet := make(map[string]struct{}, len(observed))
	for _, id := range observed {
		observedSet[id] = struct{}{}

		if _, ok := known[id]; !ok {
			appeared = append(appeared, id)
		}
	}

	for id := range known {
		if _, ok := observedSet[id]; !ok {
			removed = append(removed, id)
		}
	}

	sort.Strings(appeared)
	sort.Strings(removed)

	r.known[class] = observedSet

	events := make([]pendingEvent, 0, len(appeared)+len(removed))

	for _, id := range appeared {
		ev := ResourceEvent{Class: class, ID: id, Kind: EventAppeared, Snapshot: pending}

		for _, ref := range r.generic[class] {
			events = append(events, pendingEvent{fn: ref.fn, event: ev})
		}

		for _, ref := range r.resource[class][id] {
			events = append(events, pendingEvent{fn: ref.fn, event: ev})
		}
	}

	for _, id := range removed {
		ev := ResourceEvent{Class: class, ID: id, Kind: EventRemoved, Snapshot: pending}

		for _, ref := range r.resource[class][id] {
			events = append(events, pendingEvent{fn: ref.fn, event: ev})
			delete(r.tokens, ref.token)
		}

		delete(r.resource[class], id)
	}

	r.mu.Unlock()

	deliver(events)

	return appeared, removed
}

// Publish swaps in the new snapshot and then notifies whole-model
// listeners. Identifier notifications for the same cycle have already
// fired by the time the snapshot becomes readable.
func (r *Registry) Publish(snap *models.Snapshot) {
	r.mu.Lock()
	r.current = snap
	listeners := make([]snapshotRef, len(r.snapshot))
	copy(listeners, r.snapshot)
	r.mu.Unlock()

	for _, ref := range listeners {
		notifySnapshot(ref.fn, snap)
	}
}

// KnownIDs returns the sorted known identifiers for a class.
func (r *Registry) KnownIDs(class models.ResourceClass) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedIDs(r.known[class])
}

// issueToken hands out the next registration token. Callers hold the
// write lock.
func (r *Registry) issueToken(site tokenSite) uint64 {
	r.nextToken++
	r.tokens[r.nextToken] = site

	return r.nextToken
}

func deliver(events []pendingEvent) {
	for _, pe := range events {
		notifyResource(pe.fn, pe.event)
	}
}

// notifyResource invokes one listener. A panicking listener must not
// abort the refresh cycle or starve later listeners.
func notifyResource(fn ResourceListener, ev ResourceEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Listener panic on %s %s/%s: %v", ev.Kind, ev.Class, ev.ID, rec)
		}
	}()

	fn(ev)
}

func notifySnapshot(fn SnapshotListener, snap *models.Snapshot) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Snapshot listener panic: %v", rec)
		}
	}()

	fn(snap)
}

func sortedIDs(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

func dropListenerRef(refs []listenerRef, token uint64) []listenerRef {
	for i, ref := range refs {
		if ref.token == token {
			return append(refs[:i], refs[i+1:]...)
		}
	}

	return refs
}

func dropSnapshotRef(refs []snapshotRef, token uint64) []snapshotRef {
	for i, ref := range refs {
		if ref.token == token {
			return append(refs[:i], refs[i+1:]...)
		}
	}

	return refs
}
