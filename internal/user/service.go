package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"waffle-service/internal/phone"
	"waffle-service/internal/shared/httpx"
	"waffle-service/internal/shared/jwt"
)

// lookupBatchSize bounds the IN-list of each phone lookup query. The original
// backing store rejected "in" filters with more than 10 values, so callers
// always saw batched lookups; keeping the chunking keeps query plans small.
const lookupBatchSize = 10

const tokenTTL = 30 * 24 * time.Hour

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Get(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*User, error)
	AddFriend(ctx context.Context, id, friendID string) (*User, error)
	SetProfileImageURL(ctx context.Context, id, url string) error
	FindByPhoneNumbers(ctx context.Context, numbers []string) ([]User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register normalizes the phone number and creates the profile. If a profile
// already exists for that number this behaves like Login.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.PhoneNumber == "" {
		return nil, fmt.Errorf("%w: phone_number is required", httpx.ErrValidation)
	}
	normalized := phone.Normalize(req.PhoneNumber)

	if existing, err := s.repo.GetByPhone(ctx, normalized); err == nil {
		return s.issueToken(existing)
	}

	name := req.Name
	if name == "" {
		name = "User"
	}
	u := &User{
		ID:          uuid.NewString(),
		Name:        name,
		PhoneNumber: &normalized,
		FriendIDs:   StringList{},
		Privacy:     PrivacyPublic,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.issueToken(u)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.PhoneNumber == "" {
		return nil, fmt.Errorf("%w: phone_number is required", httpx.ErrValidation)
	}
	u, err := s.repo.GetByPhone(ctx, phone.Normalize(req.PhoneNumber))
	if err != nil {
		return nil, err
	}
	return s.issueToken(u)
}

func (s *service) issueToken(u *User) (*AuthResponse, error) {
	tok, err := jwt.Sign(u.ID, tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: tok, User: u}, nil
}

func (s *service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*User, error) {
	fields := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", httpx.ErrValidation)
		}
		fields["name"] = *req.Name
	}
	if req.Privacy != nil {
		if *req.Privacy != PrivacyFriends && *req.Privacy != PrivacyPublic {
			return nil, fmt.Errorf("%w: privacy must be %q or %q", httpx.ErrValidation, PrivacyFriends, PrivacyPublic)
		}
		fields["privacy"] = *req.Privacy
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) AddFriend(ctx context.Context, id, friendID string) (*User, error) {
	if friendID == "" {
		return nil, fmt.Errorf("%w: friend_id is required", httpx.ErrValidation)
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.FriendIDs.Contains(friendID) {
		return u, nil
	}
	updated := append(StringList{}, u.FriendIDs...)
	updated = append(updated, friendID)
	if err := s.repo.UpdateFields(ctx, id, map[string]any{"friend_ids": updated}); err != nil {
		return nil, err
	}
	u.FriendIDs = updated
	return u, nil
}

func (s *service) SetProfileImageURL(ctx context.Context, id, url string) error {
	return s.repo.UpdateFields(ctx, id, map[string]any{"profile_image_url": url})
}

// FindByPhoneNumbers looks profiles up in chunks of at most lookupBatchSize
// numbers and concatenates the results, dropping duplicate profiles.
func (s *service) FindByPhoneNumbers(ctx context.Context, numbers []string) ([]User, error) {
	seen := make(map[string]struct{})
	var all []User

	for start := 0; start < len(numbers); start += lookupBatchSize {
		end := start + lookupBatchSize
		if end > len(numbers) {
			end = len(numbers)
		}
		batch, err := s.repo.FindByPhones(ctx, numbers[start:end])
		if err != nil {
			return nil, err
		}
		for _, u := range batch {
			if _, dup := seen[u.ID]; dup {
				continue
			}
			seen[u.ID] = struct{}{}
			all = append(all, u)
		}
	}
	return all, nil
}
