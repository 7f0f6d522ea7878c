package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planloop/planloop/internal/domain/dto"
	"github.com/planloop/planloop/internal/domain/entity"
)

func planActivity(id string, createdAt time.Time) dto.Activity {
	return dto.NewPlanActivity(entity.Plan{ID: id, CreatedAt: createdAt})
}

func postActivity(id string, createdAt time.Time) dto.Activity {
	return dto.NewPostActivity(entity.Post{ID: id, CreatedAt: createdAt})
}

func ids(activities []dto.Activity) []string {
	out := make([]string, 0, len(activities))
	for _, activity := range activities {
		out = append(out, activity.EntityID())
	}
	return out
}

func TestApplyDeltas_RemoveAndAdd(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	cache := []dto.Activity{
		planActivity("a", base.Add(2*time.Hour)),
		postActivity("b", base.Add(1*time.Hour)),
	}
	deltas := []Delta{
		{Change: ChangeRemove, Activity: planActivity("a", base.Add(2*time.Hour))},
		{Change: ChangeAdd, Activity: planActivity("c", base.Add(3*time.Hour))},
	}

	next := ApplyDeltas(cache, deltas)

	assert.Equal(t, []string{"c", "b"}, ids(next))
	// Input cache stays untouched.
	assert.Equal(t, []string{"a", "b"}, ids(cache))
}

func TestApplyDeltas_DuplicateAddsSkipped(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	cache := []dto.Activity{planActivity("a", base)}
	deltas := []Delta{
		{Change: ChangeAdd, Activity: planActivity("a", base)},
		{Change: ChangeAdd, Activity: postActivity("b", base.Add(time.Hour))},
		{Change: ChangeAdd, Activity: postActivity("b", base.Add(time.Hour))},
	}

	next := ApplyDeltas(cache, deltas)

	assert.Equal(t, []string{"b", "a"}, ids(next))
}

func TestApplyDeltas_RemoveWinsOverAdd(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	deltas := []Delta{
		{Change: ChangeAdd, Activity: planActivity("a", base)},
		{Change: ChangeRemove, Activity: planActivity("a", base)},
	}

	next := ApplyDeltas(nil, deltas)

	assert.Empty(t, next)
}

func TestStore_FlushSeedsFromAdds(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore()

	// Removals before the first seed have nothing to remove and are dropped.
	store.Enqueue(Delta{Change: ChangeRemove, Activity: planActivity("x", base)})
	store.Enqueue(Delta{Change: ChangeAdd, Activity: planActivity("a", base.Add(time.Hour))})
	store.Enqueue(Delta{Change: ChangeAdd, Activity: postActivity("b", base)})

	feed := store.Flush()
	assert.Equal(t, []string{"a", "b"}, ids(feed))
}

func TestStore_FlushMergesAfterSeed(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore()

	store.Enqueue(Delta{Change: ChangeAdd, Activity: planActivity("a", base.Add(2*time.Hour))})
	store.Enqueue(Delta{Change: ChangeAdd, Activity: postActivity("b", base.Add(time.Hour))})
	require.Equal(t, []string{"a", "b"}, ids(store.Flush()))

	store.Enqueue(Delta{Change: ChangeRemove, Activity: planActivity("a", base.Add(2*time.Hour))})
	store.Enqueue(Delta{Change: ChangeAdd, Activity: planActivity("c", base.Add(3*time.Hour))})

	assert.Equal(t, []string{"c", "b"}, ids(store.Flush()))
	assert.Equal(t, []string{"c", "b"}, ids(store.Activities()))
}

func TestStore_FlushWithoutPendingIsStable(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore()

	store.Enqueue(Delta{Change: ChangeAdd, Activity: planActivity("a", base)})
	first := store.Flush()
	second := store.Flush()

	assert.Equal(t, ids(first), ids(second))
}
