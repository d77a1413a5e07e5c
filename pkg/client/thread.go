package client

import (
	"context"
	"time"

	"github.com/google/uuid"

	"waffle-service/internal/comment"
)

// CommentAPI is the slice of Client a thread needs; tests substitute a fake.
type CommentAPI interface {
	PostComment(ctx context.Context, waffleID, text string) (comment.Comment, error)
	ListComments(ctx context.Context, waffleID string) ([]comment.Comment, error)
}

// Thread is the session-local comment list for one waffle. Posting is
// optimistic: the comment appears immediately and is removed again if the
// remote write fails, handing the draft text back for a retry.
type Thread struct {
	api      CommentAPI
	waffleID string
	comments []comment.Comment
}

func NewThread(api CommentAPI, waffleID string) *Thread {
	return &Thread{api: api, waffleID: waffleID}
}

// Refresh replaces the local list with the server's view.
func (t *Thread) Refresh(ctx context.Context) error {
	out, err := t.api.ListComments(ctx, t.waffleID)
	if err != nil {
		return err
	}
	t.comments = out
	return nil
}

// Comments returns the current local view, pending entries included.
func (t *Thread) Comments() []comment.Comment {
	return t.comments
}

// Post appends the comment locally, then attempts the remote write. On
// success the pending entry is swapped for the server's copy. On failure the
// entry is removed and the draft text is returned so the caller can restore
// the input field.
func (t *Thread) Post(ctx context.Context, authorID, authorName, text string) (draft string, err error) {
	pending := comment.Comment{
		ID:        uuid.NewString(),
		WaffleID:  t.waffleID,
		UserID:    authorID,
		UserName:  authorName,
		Text:      text,
		CreatedAt: time.Now(),
	}
	t.comments = append(t.comments, pending)

	saved, err := t.api.PostComment(ctx, t.waffleID, text)
	if err != nil {
		t.remove(pending.ID)
		return text, err
	}
	for i := range t.comments {
		if t.comments[i].ID == pending.ID {
			t.comments[i] = saved
			break
		}
	}
	return "", nil
}

func (t *Thread) remove(id string) {
	for i := range t.comments {
		if t.comments[i].ID == id {
			t.comments = append(t.comments[:i], t.comments[i+1:]...)
			return
		}
	}
}
