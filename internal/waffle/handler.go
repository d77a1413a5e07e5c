package waffle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"waffle-service/internal/shared/httpx"
)

const maxAudioBytes = 20 << 20

// Presigner redirects media reads to short-lived signed URLs.
type Presigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (*url.URL, error)
}

type Handler struct {
	svc     Service
	presign Presigner
}

func NewHandler(svc Service, presign Presigner) *Handler {
	return &Handler{svc: svc, presign: presign}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		return err
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		return fmt.Errorf("%w: audio file is required", httpx.ErrValidation)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
	if err != nil {
		return err
	}
	duration, _ := strconv.ParseFloat(r.FormValue("duration"), 64)

	created, err := h.svc.Upload(r.Context(), uid, data, header.Header.Get("Content-Type"), duration)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, created, http.StatusCreated)
	return nil
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	out, err := h.svc.MyWaffles(r.Context(), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, out, http.StatusOK)
	return nil
}

func (h *Handler) FriendsFeed(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	out, err := h.svc.FriendsFeed(r.Context(), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, out, http.StatusOK)
	return nil
}

func (h *Handler) PublicFeed(w http.ResponseWriter, r *http.Request) error {
	out, err := h.svc.PublicFeed(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, out, http.StatusOK)
	return nil
}

func (h *Handler) HasPosted(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	posted, err := h.svc.HasPostedThisPeriod(r.Context(), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]bool{"posted": posted}, http.StatusOK)
	return nil
}

// Media issues a redirect to a presigned GET for the stored object key.
func (h *Handler) Media(w http.ResponseWriter, r *http.Request) error {
	key := r.PathValue("key")
	if key == "" {
		return fmt.Errorf("%w: missing media key", httpx.ErrValidation)
	}
	u, err := h.presign.PresignGet(r.Context(), key, 15*time.Minute)
	if err != nil {
		return err
	}
	http.Redirect(w, r, u.String(), http.StatusFound)
	return nil
}
