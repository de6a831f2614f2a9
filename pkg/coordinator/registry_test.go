package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreeman451/unradar/pkg/models"
)

func TestRegistryAppearanceFiresOnce(t *testing.T) {
	registry := NewRegistry()
	snap := &models.Snapshot{}

	var events []ResourceEvent

	registry.SubscribeClass(models.ClassDisks, func(ev ResourceEvent) {
		events = append(events, ev)
	})

	appeared, removed := registry.Report(models.ClassDisks, []string{"disk2", "disk1"}, snap)
	assert.Equal(t, []string{"disk1", "disk2"}, appeared)
	assert.Empty(t, removed)

	// Repeating the same observed set must not re-notify.
	for i := 0; i < 3; i++ {
		appeared, removed = registry.Report(models.ClassDisks, []string{"disk1", "disk2"}, snap)
		assert.Empty(t, appeared)
		assert.Empty(t, removed)
	}

	require.Len(t, events, 2)
	assert.Equal(t, "disk1", events[0].ID)
	assert.Equal(t, "disk2", events[1].ID)

	for _, ev := range events {
		assert.Equal(t, EventAppeared, ev.Kind)
		assert.Equal(t, models.ClassDisks, ev.Class)
		assert.Same(t, snap, ev.Snapshot)
	}
}

func TestRegistryGenericListenersFireInRegistrationOrder(t *testing.T) {
	registry := NewRegistry()

	var order []string

	registry.SubscribeClass(models.ClassShares, func(ev ResourceEvent) {
		order = append(order, "first:"+ev.ID)
	})
	registry.SubscribeClass(models.ClassShares, func(ev ResourceEvent) {
		order = append(order, "second:"+ev.ID)
	})

	registry.Report(models.ClassShares, []string{"media", "appdata"}, &models.Snapshot{})

	assert.Equal(t, []string{"first:appdata", "second:appdata", "first:media", "second:media"}, order)
}

func TestRegistryRemovalDropsResourceListeners(t *testing.T) {
	registry := NewRegistry()

	var events []ResourceEvent

	registry.SubscribeResource(models.ClassDisks, "disk3", func(ev ResourceEvent) {
		events = append(events, ev)
	})

	registry.Report(models.ClassDisks, []string{"disk1", "disk3"}, &models.Snapshot{})
	require.Len(t, events, 1, "listener subscribed before appearance sees it appear")
	assert.Equal(t, EventAppeared, events[0].Kind)

	appeared, removed := registry.Report(models.ClassDisks, []string{"disk1"}, &models.Snapshot{})
	assert.Empty(t, appeared)
	assert.Equal(t, []string{"disk3"}, removed)

	require.Len(t, events, 2)
	assert.Equal(t, EventRemoved, events[1].Kind)
	assert.Equal(t, "disk3", events[1].ID)

	// The registration was dropped with the identifier; a reappearance
	// does not revive it.
	registry.Report(models.ClassDisks, []string{"disk1", "disk3"}, &models.Snapshot{})
	assert.Len(t, events, 2)
}

func TestRegistryCatchUpForLateSubscribers(t *testing.T) {
	registry := NewRegistry()
	snap := &models.Snapshot{}

	registry.Report(models.ClassContainers, []string{"c1", "c2"}, snap)
	registry.Publish(snap)

	var events []ResourceEvent

	registry.SubscribeClass(models.ClassContainers, func(ev ResourceEvent) {
		events = append(events, ev)
	})

	require.Len(t, events, 2, "late subscriber catches up on known identifiers")
	assert.Equal(t, "c1", events[0].ID)
	assert.Equal(t, "c2", events[1].ID)
	assert.Same(t, snap, events[0].Snapshot)

	// Catch-up counts as the one delivery per appearance.
	registry.Report(models.ClassContainers, []string{"c1", "c2"}, snap)
	assert.Len(t, events, 2)
}

func TestRegistryResourceSubscriptionSkipsCatchUp(t *testing.T) {
	registry := NewRegistry()

	registry.Report(models.ClassShares, []string{"appdata"}, &models.Snapshot{})

	fired := false

	registry.SubscribeResource(models.ClassShares, "appdata", func(ResourceEvent) {
		fired = true
	})

	assert.False(t, fired, "already-known identifier does not replay its appearance")

	registry.Report(models.ClassShares, []string{}, &models.Snapshot{})
	assert.True(t, fired, "removal still reaches the listener")
}

func TestRegistryUnsubscribeIsIdempotent(t *testing.T) {
	registry := NewRegistry()

	calls := 0
	token := registry.SubscribeClass(models.ClassVMs, func(ResourceEvent) {
		calls++
	})

	registry.Unsubscribe(token)
	registry.Unsubscribe(token)
	registry.Unsubscribe(9999)

	registry.Report(models.ClassVMs, []string{"vm-1"}, &models.Snapshot{})
	assert.Zero(t, calls)
}

func TestRegistryListenerPanicDoesNotStopDelivery(t *testing.T) {
	registry := NewRegistry()

	var delivered []string

	registry.SubscribeClass(models.ClassDisks, func(ResourceEvent) {
		panic("listener bug")
	})
	registry.SubscribeClass(models.ClassDisks, func(ev ResourceEvent) {
		delivered = append(delivered, ev.ID)
	})

	appeared, _ := registry.Report(models.ClassDisks, []string{"disk1"}, &models.Snapshot{})

	assert.Equal(t, []string{"disk1"}, appeared)
	assert.Equal(t, []string{"disk1"}, delivered)
}

func TestRegistryPublishNotifiesSnapshotListeners(t *testing.T) {
	registry := NewRegistry()

	var seen []*models.Snapshot

	token := registry.SubscribeSnapshot(func(snap *models.Snapshot) {
		seen = append(seen, snap)
	})

	first := &models.Snapshot{}
	registry.Publish(first)

	require.Len(t, seen, 1)
	assert.Same(t, first, seen[0])
	assert.Same(t, first, registry.Current())

	registry.Unsubscribe(token)

	registry.Publish(&models.Snapshot{})
	assert.Len(t, seen, 1)
}

func TestRegistryKnownIDs(t *testing.T) {
	registry := NewRegistry()

	assert.Empty(t, registry.KnownIDs(models.ClassUPS))

	registry.Report(models.ClassUPS, []string{"ups-2", "ups-1"}, &models.Snapshot{})
	assert.Equal(t, []string{"ups-1", "ups-2"}, registry.KnownIDs(models.ClassUPS))

	registry.Report(models.ClassUPS, []string{"ups-2"}, &models.Snapshot{})
	assert.Equal(t, []string{"ups-2"}, registry.KnownIDs(models.ClassUPS))
}
