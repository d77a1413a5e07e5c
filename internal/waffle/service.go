package waffle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"waffle-service/internal/period"
	"waffle-service/internal/shared/httpx"
	"waffle-service/internal/user"
)

const publicFeedLimit = 50

// BlobStore is the slice of object storage the waffle service needs.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Remove(ctx context.Context, key string) error
}

// Events publishes waffle lifecycle events for the notification fanout.
type Events interface {
	WriteJSON(ctx context.Context, key string, v any) error
}

// Users resolves the uploader's display name, privacy default and friend list.
type Users interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

// PostedEvent is emitted on every successful upload.
type PostedEvent struct {
	WaffleID      string `json:"waffle_id"`
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	WednesdayDate string `json:"wednesday_date"`
	Privacy       string `json:"privacy"`
}

type Service interface {
	Upload(ctx context.Context, userID string, audio []byte, contentType string, duration float64) (*Waffle, error)
	Cleanup(ctx context.Context, userID string) error
	MyWaffles(ctx context.Context, userID string) ([]Waffle, error)
	FriendsFeed(ctx context.Context, userID string) ([]Waffle, error)
	PublicFeed(ctx context.Context) ([]Waffle, error)
	HasPostedThisPeriod(ctx context.Context, userID string) (bool, error)
}

type service struct {
	repo   Repository
	blobs  BlobStore
	events Events
	users  Users
	now    func() time.Time
}

func NewService(repo Repository, blobs BlobStore, events Events, users Users) Service {
	return &service{repo: repo, blobs: blobs, events: events, users: users, now: time.Now}
}

// Upload stores the audio blob, creates the waffle with the server-computed
// period label and the uploader's privacy default, publishes the posted
// event and then runs the retention pass. Event publish and cleanup are best
// effort: the upload has already succeeded and their failures are only
// logged.
func (s *service) Upload(ctx context.Context, userID string, audio []byte, contentType string, duration float64) (*Waffle, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: audio is required", httpx.ErrValidation)
	}
	if duration < 0 {
		return nil, fmt.Errorf("%w: duration cannot be negative", httpx.ErrValidation)
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	key := fmt.Sprintf("waffles/%s/%d.m4a", userID, now.Unix())
	if contentType == "" {
		contentType = "audio/m4a"
	}
	if err := s.blobs.Put(ctx, key, contentType, audio); err != nil {
		return nil, fmt.Errorf("store audio: %w", err)
	}

	privacy := u.Privacy
	if privacy == "" {
		privacy = user.PrivacyPublic
	}
	w := &Waffle{
		ID:            uuid.NewString(),
		UserID:        userID,
		UserName:      u.Name,
		AudioURL:      key,
		Duration:      duration,
		WednesdayDate: period.Resolve(now),
		Privacy:       privacy,
		CreatedAt:     now.UTC(),
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}

	ev := PostedEvent{
		WaffleID:      w.ID,
		UserID:        w.UserID,
		UserName:      w.UserName,
		WednesdayDate: w.WednesdayDate,
		Privacy:       w.Privacy,
	}
	if s.events != nil {
		if err := s.events.WriteJSON(ctx, w.UserID, ev); err != nil {
			log.Printf("waffle posted event: %v", err)
		}
	}

	if err := s.Cleanup(ctx, userID); err != nil {
		log.Printf("waffle cleanup for %s: %v", userID, err)
	}
	return w, nil
}

// Cleanup deletes everything beyond the user's KeepPerUser most recent
// waffles. Row and blob deletion are attempted independently for each
// selected waffle: one failing does not block the other, and every failure
// is collected into the returned error.
func (s *service) Cleanup(ctx context.Context, userID string) error {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	var errs []error
	for _, w := range SelectForDeletion(all, KeepPerUser) {
		if err := s.repo.Delete(ctx, w.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete waffle %s: %w", w.ID, err))
		}
		if err := s.blobs.Remove(ctx, w.AudioURL); err != nil {
			errs = append(errs, fmt.Errorf("delete audio %s: %w", w.AudioURL, err))
		}
	}
	return errors.Join(errs...)
}

func (s *service) MyWaffles(ctx context.Context, userID string) ([]Waffle, error) {
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

// FriendsFeed returns the current period's waffles from the caller's friends,
// newest first. A user with no friends sees an empty feed.
func (s *service) FriendsFeed(ctx context.Context, userID string) ([]Waffle, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(u.FriendIDs) == 0 {
		return []Waffle{}, nil
	}
	out, err := s.repo.ListByPeriodAndUsers(ctx, period.Resolve(s.now()), u.FriendIDs)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

// PublicFeed returns the current period's public waffles, newest first,
// capped at publicFeedLimit entries.
func (s *service) PublicFeed(ctx context.Context) ([]Waffle, error) {
	out, err := s.repo.ListByPeriodAndPrivacy(ctx, period.Resolve(s.now()), user.PrivacyPublic)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	if len(out) > publicFeedLimit {
		out = out[:publicFeedLimit]
	}
	return out, nil
}

func (s *service) HasPostedThisPeriod(ctx context.Context, userID string) (bool, error) {
	out, err := s.repo.ListByUserAndPeriod(ctx, userID, period.Resolve(s.now()))
	if err != nil {
		return false, err
	}
	return len(out) > 0, nil
}

func sortNewestFirst(ws []Waffle) {
	sort.Slice(ws, func(i, j int) bool {
		if !ws[i].CreatedAt.Equal(ws[j].CreatedAt) {
			return ws[i].CreatedAt.After(ws[j].CreatedAt)
		}
		return ws[i].ID < ws[j].ID
	})
}
