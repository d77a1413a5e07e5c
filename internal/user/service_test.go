package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waffle-service/internal/shared/httpx"
)

type fakeRepo struct {
	users       map[string]*User
	phoneCalls  [][]string
	phoneResult map[string][]User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*User{}, phoneResult: map[string][]User{}}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetByPhone(_ context.Context, phone string) (*User, error) {
	for _, u := range f.users {
		if u.PhoneNumber != nil && *u.PhoneNumber == phone {
			return u, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (f *fakeRepo) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	u, ok := f.users[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := fields["friend_ids"]; ok {
		u.FriendIDs = v.(StringList)
	}
	if v, ok := fields["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := fields["privacy"]; ok {
		u.Privacy = v.(string)
	}
	return nil
}

func (f *fakeRepo) FindByPhones(_ context.Context, phones []string) ([]User, error) {
	f.phoneCalls = append(f.phoneCalls, phones)
	var out []User
	for _, p := range phones {
		out = append(out, f.phoneResult[p]...)
	}
	return out, nil
}

func TestFindByPhoneNumbersBatchesByTen(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	numbers := make([]string, 25)
	for i := range numbers {
		numbers[i] = "+1555000" + string(rune('a'+i))
	}
	repo.phoneResult[numbers[0]] = []User{{ID: "u1"}}
	repo.phoneResult[numbers[12]] = []User{{ID: "u2"}}
	repo.phoneResult[numbers[24]] = []User{{ID: "u1"}} // duplicate profile

	users, err := svc.FindByPhoneNumbers(context.Background(), numbers)
	require.NoError(t, err)

	require.Len(t, repo.phoneCalls, 3)
	assert.Len(t, repo.phoneCalls[0], 10)
	assert.Len(t, repo.phoneCalls[1], 10)
	assert.Len(t, repo.phoneCalls[2], 5)

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	assert.ElementsMatch(t, []string{"u1", "u2"}, ids)
}

func TestFindByPhoneNumbersEmptyInput(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	users, err := svc.FindByPhoneNumbers(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Empty(t, repo.phoneCalls)
}

func TestAddFriendIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.users["me"] = &User{ID: "me", FriendIDs: StringList{"a"}}
	svc := NewService(repo)

	u, err := svc.AddFriend(context.Background(), "me", "b")
	require.NoError(t, err)
	assert.Equal(t, StringList{"a", "b"}, u.FriendIDs)

	u, err = svc.AddFriend(context.Background(), "me", "b")
	require.NoError(t, err)
	assert.Equal(t, StringList{"a", "b"}, u.FriendIDs)
}

func TestUpdateRejectsBadPrivacy(t *testing.T) {
	repo := newFakeRepo()
	repo.users["me"] = &User{ID: "me"}
	svc := NewService(repo)

	bad := "everyone"
	_, err := svc.Update(context.Background(), "me", UpdateRequest{Privacy: &bad})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestRegisterNormalizesPhoneAndLogsInExisting(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	first, err := svc.Register(context.Background(), RegisterRequest{PhoneNumber: "555-123-4567", Name: "Keyan"})
	require.NoError(t, err)
	require.NotNil(t, first.User.PhoneNumber)
	assert.Equal(t, "+15551234567", *first.User.PhoneNumber)
	assert.NotEmpty(t, first.Token)

	// Same number in a different format resolves to the same profile.
	second, err := svc.Register(context.Background(), RegisterRequest{PhoneNumber: "+1 (555) 123-4567"})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
}
