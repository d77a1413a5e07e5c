package user

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"waffle-service/internal/phone"
	"waffle-service/internal/shared/httpx"
)

// BlobStore is the slice of object storage the profile handler needs for
// avatar uploads.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

const maxAvatarBytes = 5 << 20

type Handler struct {
	svc   Service
	blobs BlobStore
}

func NewHandler(svc Service, blobs BlobStore) *Handler {
	return &Handler{svc: svc, blobs: blobs}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) error {
	req, err := httpx.Decode[RegisterRequest](r)
	if err != nil {
		return err
	}
	resp, err := h.svc.Register(r.Context(), req)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, resp, http.StatusCreated)
	return nil
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	req, err := httpx.Decode[LoginRequest](r)
	if err != nil {
		return err
	}
	resp, err := h.svc.Login(r.Context(), req)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, resp, http.StatusOK)
	return nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	u, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	req, err := httpx.Decode[UpdateRequest](r)
	if err != nil {
		return err
	}
	u, err := h.svc.Update(r.Context(), uid, req)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}

func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	req, err := httpx.Decode[AddFriendRequest](r)
	if err != nil {
		return err
	}
	u, err := h.svc.AddFriend(r.Context(), uid, req.FriendID)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}

func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		return err
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return fmt.Errorf("%w: image file is required", httpx.ErrValidation)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes))
	if err != nil {
		return err
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("profile_pictures/%s.jpg", uid)
	if err := h.blobs.Put(r.Context(), key, contentType, data); err != nil {
		return err
	}
	if err := h.svc.SetProfileImageURL(r.Context(), uid, key); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"profile_image_url": key}, http.StatusOK)
	return nil
}

func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) error {
	if _, err := httpx.UserFromCtx(r); err != nil {
		return err
	}
	req, err := httpx.Decode[LookupRequest](r)
	if err != nil {
		return err
	}
	normalized := make([]string, 0, len(req.PhoneNumbers))
	for _, n := range req.PhoneNumbers {
		normalized = append(normalized, phone.Normalize(n))
	}
	users, err := h.svc.FindByPhoneNumbers(r.Context(), normalized)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, users, http.StatusOK)
	return nil
}
