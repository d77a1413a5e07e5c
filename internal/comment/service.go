package comment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"waffle-service/internal/shared/httpx"
	"waffle-service/internal/user"
)

type Users interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

type Service interface {
	Create(ctx context.Context, waffleID, userID, text string) (*Comment, error)
	List(ctx context.Context, waffleID string) ([]Comment, error)
}

type service struct {
	repo  Repository
	users Users
}

func NewService(repo Repository, users Users) Service {
	return &service{repo: repo, users: users}
}

func (s *service) Create(ctx context.Context, waffleID, userID, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text cannot be empty", httpx.ErrValidation)
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c := &Comment{
		ID:        uuid.NewString(),
		WaffleID:  waffleID,
		UserID:    userID,
		UserName:  u.Name,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns a waffle's comments oldest first, sorted in application code.
func (s *service) List(ctx context.Context, waffleID string) ([]Comment, error) {
	out, err := s.repo.ListByWaffle(ctx, waffleID)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
