package reply

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"waffle-service/internal/shared/httpx"
	"waffle-service/internal/user"
)

type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

type Users interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

type Service interface {
	Send(ctx context.Context, fromUserID, toUserID string, audio []byte, contentType string, duration float64) (*Reply, error)
	ListTo(ctx context.Context, userID string) ([]Reply, error)
}

type service struct {
	repo  Repository
	blobs BlobStore
	users Users
	now   func() time.Time
}

func NewService(repo Repository, blobs BlobStore, users Users) Service {
	return &service{repo: repo, blobs: blobs, users: users, now: time.Now}
}

func (s *service) Send(ctx context.Context, fromUserID, toUserID string, audio []byte, contentType string, duration float64) (*Reply, error) {
	if toUserID == "" {
		return nil, fmt.Errorf("%w: to_user_id is required", httpx.ErrValidation)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: audio is required", httpx.ErrValidation)
	}
	if duration < 0 {
		return nil, fmt.Errorf("%w: duration cannot be negative", httpx.ErrValidation)
	}

	from, err := s.users.Get(ctx, fromUserID)
	if err != nil {
		return nil, err
	}
	// Sending to a missing user is a client error, catch it before uploading.
	if _, err := s.users.Get(ctx, toUserID); err != nil {
		return nil, err
	}

	now := s.now()
	key := fmt.Sprintf("replies/%s/%d.m4a", fromUserID, now.Unix())
	if contentType == "" {
		contentType = "audio/m4a"
	}
	if err := s.blobs.Put(ctx, key, contentType, audio); err != nil {
		return nil, fmt.Errorf("store audio: %w", err)
	}

	rp := &Reply{
		ID:           uuid.NewString(),
		FromUserID:   fromUserID,
		FromUserName: from.Name,
		ToUserID:     toUserID,
		AudioURL:     key,
		Duration:     duration,
		CreatedAt:    now.UTC(),
	}
	if err := s.repo.Create(ctx, rp); err != nil {
		return nil, err
	}
	return rp, nil
}

// ListTo returns replies addressed to the user, newest first.
func (s *service) ListTo(ctx context.Context, userID string) ([]Reply, error) {
	out, err := s.repo.ListTo(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
