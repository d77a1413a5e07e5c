package reply

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waffle-service/internal/shared/httpx"
	"waffle-service/internal/user"
)

type fakeRepo struct {
	replies []Reply
}

func (f *fakeRepo) Create(_ context.Context, rp *Reply) error {
	f.replies = append(f.replies, *rp)
	return nil
}

func (f *fakeRepo) ListTo(_ context.Context, userID string) ([]Reply, error) {
	var out []Reply
	for _, rp := range f.replies {
		if rp.ToUserID == userID {
			out = append(out, rp)
		}
	}
	return out, nil
}

type fakeBlobs struct {
	puts int
}

func (f *fakeBlobs) Put(_ context.Context, _, _ string, _ []byte) error {
	f.puts++
	return nil
}

type fakeUsers map[string]*user.User

func (f fakeUsers) Get(_ context.Context, id string) (*user.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return u, nil
}

func TestSendStampsSenderName(t *testing.T) {
	repo := &fakeRepo{}
	blobs := &fakeBlobs{}
	users := fakeUsers{
		"alice": {ID: "alice", Name: "Alice"},
		"bob":   {ID: "bob", Name: "Bob"},
	}
	svc := NewService(repo, blobs, users)

	rp, err := svc.Send(context.Background(), "alice", "bob", []byte("audio"), "audio/m4a", 8)
	require.NoError(t, err)
	assert.Equal(t, "Alice", rp.FromUserName)
	assert.Equal(t, "bob", rp.ToUserID)
	assert.Equal(t, 1, blobs.puts)
}

func TestSendToUnknownUserFailsBeforeUpload(t *testing.T) {
	blobs := &fakeBlobs{}
	svc := NewService(&fakeRepo{}, blobs, fakeUsers{"alice": {ID: "alice", Name: "Alice"}})

	_, err := svc.Send(context.Background(), "alice", "ghost", []byte("audio"), "audio/m4a", 8)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
	assert.Zero(t, blobs.puts)
}

func TestInboxNewestFirst(t *testing.T) {
	now := time.Date(2025, 10, 22, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepo{replies: []Reply{
		{ID: "r1", ToUserID: "bob", CreatedAt: now},
		{ID: "r3", ToUserID: "bob", CreatedAt: now.Add(2 * time.Minute)},
		{ID: "r2", ToUserID: "bob", CreatedAt: now.Add(time.Minute)},
		{ID: "other", ToUserID: "carol", CreatedAt: now},
	}}
	svc := NewService(repo, &fakeBlobs{}, fakeUsers{})

	out, err := svc.ListTo(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"r3", "r2", "r1"}, []string{out[0].ID, out[1].ID, out[2].ID})
}
