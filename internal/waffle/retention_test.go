package waffle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mk(id string, createdAt time.Time) Waffle {
	return Waffle{ID: id, CreatedAt: createdAt}
}

func TestSelectForDeletionKeepsTwoNewest(t *testing.T) {
	base := time.Date(2025, 10, 22, 9, 0, 0, 0, time.UTC)
	waffles := []Waffle{
		mk("a", base),
		mk("b", base.Add(1*time.Hour)),
		mk("c", base.Add(2*time.Hour)),
		mk("d", base.Add(3*time.Hour)),
		mk("e", base.Add(4*time.Hour)),
	}

	victims := SelectForDeletion(waffles, 2)
	ids := make([]string, len(victims))
	for i, v := range victims {
		ids[i] = v.ID
	}
	// The three oldest, newest of the victims first.
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestSelectForDeletionSmallSets(t *testing.T) {
	base := time.Date(2025, 10, 22, 9, 0, 0, 0, time.UTC)

	assert.Empty(t, SelectForDeletion(nil, 2))
	assert.Empty(t, SelectForDeletion([]Waffle{mk("a", base)}, 2))
	assert.Empty(t, SelectForDeletion([]Waffle{mk("a", base), mk("b", base.Add(time.Hour))}, 2))
}

func TestSelectForDeletionTieBreaksByID(t *testing.T) {
	base := time.Date(2025, 10, 22, 9, 0, 0, 0, time.UTC)
	waffles := []Waffle{
		mk("c", base),
		mk("a", base),
		mk("b", base),
	}

	victims := SelectForDeletion(waffles, 2)
	// Same timestamp everywhere: "a" and "b" are kept, "c" goes.
	assert.Len(t, victims, 1)
	assert.Equal(t, "c", victims[0].ID)
}

func TestSelectForDeletionDoesNotMutateInput(t *testing.T) {
	base := time.Date(2025, 10, 22, 9, 0, 0, 0, time.UTC)
	waffles := []Waffle{
		mk("a", base),
		mk("b", base.Add(1*time.Hour)),
		mk("c", base.Add(2*time.Hour)),
	}

	_ = SelectForDeletion(waffles, 1)
	assert.Equal(t, "a", waffles[0].ID)
	assert.Equal(t, "b", waffles[1].ID)
	assert.Equal(t, "c", waffles[2].ID)
}
