package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"waffle-service/internal/user"
	"waffle-service/internal/waffle"
)

type Users interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

type Service interface {
	List(ctx context.Context, userID string, limit int64) ([]Notification, error)
	HandleWafflePosted(ctx context.Context, key, value []byte) error
}

type service struct {
	repo  Repository
	users Users
}

func NewService(repo Repository, users Users) Service {
	return &service{repo: repo, users: users}
}

func (s *service) List(ctx context.Context, userID string, limit int64) ([]Notification, error) {
	return s.repo.List(ctx, userID, limit)
}

// HandleWafflePosted fans a posted event out to each of the poster's friends.
// Malformed payloads are dropped so a poison message cannot wedge the
// partition; per-friend push failures do not stop the fanout.
func (s *service) HandleWafflePosted(ctx context.Context, _, value []byte) error {
	var ev waffle.PostedEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		log.Printf("drop malformed posted event: %v", err)
		return nil
	}

	poster, err := s.users.Get(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("load poster %s: %w", ev.UserID, err)
	}

	var firstErr error
	for _, friendID := range poster.FriendIDs {
		n := Notification{
			ID:     uuid.NewString(),
			UserID: friendID,
			Kind:   KindWafflePosted,
			Title:  "New waffle",
			Body:   fmt.Sprintf("%s posted their waffle", ev.UserName),
			Meta: map[string]any{
				"waffle_id":      ev.WaffleID,
				"wednesday_date": ev.WednesdayDate,
			},
			CreatedAt: time.Now().UTC(),
		}
		if err := s.repo.Push(ctx, n); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
