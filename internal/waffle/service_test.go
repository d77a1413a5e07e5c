package waffle

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waffle-service/internal/shared/httpx"
	"waffle-service/internal/user"
)

type fakeRepo struct {
	waffles map[string]Waffle
	deleted []string
	failRow map[string]error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{waffles: map[string]Waffle{}, failRow: map[string]error{}}
}

func (f *fakeRepo) Create(_ context.Context, w *Waffle) error {
	f.waffles[w.ID] = *w
	return nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID string) ([]Waffle, error) {
	var out []Waffle
	for _, w := range f.waffles {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByUserAndPeriod(_ context.Context, userID, period string) ([]Waffle, error) {
	var out []Waffle
	for _, w := range f.waffles {
		if w.UserID == userID && w.WednesdayDate == period {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByPeriodAndUsers(_ context.Context, period string, userIDs []string) ([]Waffle, error) {
	allowed := map[string]bool{}
	for _, id := range userIDs {
		allowed[id] = true
	}
	var out []Waffle
	for _, w := range f.waffles {
		if w.WednesdayDate == period && allowed[w.UserID] {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByPeriodAndPrivacy(_ context.Context, period, privacy string) ([]Waffle, error) {
	var out []Waffle
	for _, w := range f.waffles {
		if w.WednesdayDate == period && w.Privacy == privacy {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if err := f.failRow[id]; err != nil {
		return err
	}
	delete(f.waffles, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBlobs struct {
	objects map[string][]byte
	removed []string
	failKey map[string]error
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}, failKey: map[string]error{}}
}

func (f *fakeBlobs) Put(_ context.Context, key, _ string, data []byte) error {
	f.objects[key] = data
	return nil
}

func (f *fakeBlobs) Remove(_ context.Context, key string) error {
	if err := f.failKey[key]; err != nil {
		return err
	}
	delete(f.objects, key)
	f.removed = append(f.removed, key)
	return nil
}

type fakeEvents struct {
	published []PostedEvent
}

func (f *fakeEvents) WriteJSON(_ context.Context, _ string, v any) error {
	f.published = append(f.published, v.(PostedEvent))
	return nil
}

type fakeUsers struct {
	users map[string]*user.User
}

func (f *fakeUsers) Get(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return u, nil
}

func newTestService(now time.Time) (*service, *fakeRepo, *fakeBlobs, *fakeEvents) {
	repo := newFakeRepo()
	blobs := newFakeBlobs()
	events := &fakeEvents{}
	users := &fakeUsers{users: map[string]*user.User{
		"alice": {ID: "alice", Name: "Alice", Privacy: user.PrivacyPublic, FriendIDs: user.StringList{"bob"}},
		"bob":   {ID: "bob", Name: "Bob", Privacy: user.PrivacyFriends},
	}}
	svc := NewService(repo, blobs, events, users).(*service)
	svc.now = func() time.Time { return now }
	return svc, repo, blobs, events
}

func TestUploadOnWednesdayLabelsAndRetains(t *testing.T) {
	// Wednesday 2025-10-22; the three existing waffles landed Mon/Tue/Wed.
	wednesday := time.Date(2025, 10, 22, 10, 0, 0, 0, time.UTC)
	svc, repo, blobs, events := newTestService(wednesday)

	for i, day := range []time.Time{
		wednesday.AddDate(0, 0, -2), // Monday
		wednesday.AddDate(0, 0, -1), // Tuesday
		wednesday.Add(-time.Hour),   // earlier today
	} {
		id := string(rune('a' + i))
		repo.waffles[id] = Waffle{
			ID: id, UserID: "alice", AudioURL: "waffles/alice/" + id + ".m4a", CreatedAt: day,
		}
		blobs.objects["waffles/alice/"+id+".m4a"] = []byte("audio")
	}

	created, err := svc.Upload(context.Background(), "alice", []byte("new audio"), "audio/m4a", 12.5)
	require.NoError(t, err)

	assert.Equal(t, "2025-10-22", created.WednesdayDate)
	assert.Equal(t, "Alice", created.UserName)
	assert.Equal(t, user.PrivacyPublic, created.Privacy)

	// Retention keeps the new waffle plus the most recent old one.
	left, _ := repo.ListByUser(context.Background(), "alice")
	assert.Len(t, left, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, repo.deleted)
	assert.ElementsMatch(t, []string{"waffles/alice/a.m4a", "waffles/alice/b.m4a"}, blobs.removed)

	require.Len(t, events.published, 1)
	assert.Equal(t, created.ID, events.published[0].WaffleID)

	posted, err := svc.HasPostedThisPeriod(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, posted)
}

func TestUploadValidation(t *testing.T) {
	svc, _, _, _ := newTestService(time.Date(2025, 10, 22, 10, 0, 0, 0, time.UTC))

	_, err := svc.Upload(context.Background(), "alice", nil, "audio/m4a", 1)
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Upload(context.Background(), "alice", []byte("x"), "audio/m4a", -1)
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Upload(context.Background(), "nobody", []byte("x"), "audio/m4a", 1)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestCleanupPartialFailureStillDeletesTheRest(t *testing.T) {
	base := time.Date(2025, 10, 22, 9, 0, 0, 0, time.UTC)
	svc, repo, blobs, _ := newTestService(base)

	for i := 0; i < 4; i++ {
		id := string(rune('a' + i))
		repo.waffles[id] = Waffle{
			ID: id, UserID: "alice", AudioURL: "waffles/alice/" + id + ".m4a",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	// Blob delete for "a" fails; its row must still be removed, and "b" must
	// still be fully cleaned up.
	blobs.failKey["waffles/alice/a.m4a"] = errors.New("storage down")

	err := svc.Cleanup(context.Background(), "alice")
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, repo.deleted)
	assert.Equal(t, []string{"waffles/alice/b.m4a"}, blobs.removed)
}

func TestFriendsFeedFiltersAndSorts(t *testing.T) {
	wednesday := time.Date(2025, 10, 22, 10, 0, 0, 0, time.UTC)
	svc, repo, _, _ := newTestService(wednesday)

	repo.waffles["w1"] = Waffle{ID: "w1", UserID: "bob", WednesdayDate: "2025-10-22", CreatedAt: wednesday.Add(-2 * time.Hour)}
	repo.waffles["w2"] = Waffle{ID: "w2", UserID: "bob", WednesdayDate: "2025-10-22", CreatedAt: wednesday.Add(-1 * time.Hour)}
	repo.waffles["w3"] = Waffle{ID: "w3", UserID: "carol", WednesdayDate: "2025-10-22", CreatedAt: wednesday}
	repo.waffles["w4"] = Waffle{ID: "w4", UserID: "bob", WednesdayDate: "2025-10-15", CreatedAt: wednesday.AddDate(0, 0, -7)}

	feed, err := svc.FriendsFeed(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "w2", feed[0].ID)
	assert.Equal(t, "w1", feed[1].ID)

	// No friends, no feed.
	feed, err = svc.FriendsFeed(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestPublicFeedCapsAtFifty(t *testing.T) {
	wednesday := time.Date(2025, 10, 22, 10, 0, 0, 0, time.UTC)
	svc, repo, _, _ := newTestService(wednesday)

	for i := 0; i < 60; i++ {
		id := fmt.Sprintf("w%02d", i)
		repo.waffles[id] = Waffle{
			ID: id, UserID: "crowd", WednesdayDate: "2025-10-22",
			Privacy: user.PrivacyPublic, CreatedAt: wednesday.Add(-time.Duration(i) * time.Minute),
		}
	}

	feed, err := svc.PublicFeed(context.Background())
	require.NoError(t, err)
	assert.Len(t, feed, 50)
	// Newest first.
	assert.True(t, !feed[0].CreatedAt.Before(feed[49].CreatedAt))
}
