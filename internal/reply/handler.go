package reply

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"waffle-service/internal/shared/httpx"
)

const maxAudioBytes = 20 << 20

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) error {
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

	rp, err := h.svc.Send(r.Context(), uid, r.FormValue("to_user_id"), data, header.Header.Get("Content-Type"), duration)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, rp, http.StatusCreated)
	return nil
}

func (h *Handler) Inbox(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	out, err := h.svc.ListTo(r.Context(), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, out, http.StatusOK)
	return nil
}
