package handler

import (
	"net/http"

	"github.com/go-contacts-api/internal/application/avatar"
	"github.com/go-contacts-api/internal/transport/http/middleware"
)

const maxAvatarMemory = 32 << 20 // 32 MiB

// AvatarHandler handles avatar uploads for the authenticated user.
type AvatarHandler struct {
	svc avatar.Service
}

func NewAvatarHandler(svc avatar.Service) *AvatarHandler { return &AvatarHandler{svc: svc} }

type avatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

func (h *AvatarHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxAvatarMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	url, err := h.svc.Upload(r.Context(), user, avatar.UploadInput{
		Reader:      file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, avatarResponse{AvatarURL: url})
}
