package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/go-contacts-api/internal/application/contact"
	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/pkg/validate"
	"github.com/go-contacts-api/internal/transport/http/middleware"
)

// ContactHandler handles the contacts CRUD endpoints. Every operation acts on
// behalf of the authenticated user only.
type ContactHandler struct {
	svc contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler { return &ContactHandler{svc: svc} }

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	c, err := h.svc.Create(r.Context(), user.ID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toContactView(c))
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	page, perPage := parsePagination(r)
	contacts, total, err := h.svc.List(r.Context(), user.ID, perPage, (page-1)*perPage)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	maxPage := 1
	if perPage > 0 && total > 0 {
		maxPage = (total + perPage - 1) / perPage
	}
	views := make([]ContactView, len(contacts))
	for i := range contacts {
		views[i] = *toContactView(&contacts[i])
	}
	writeJSON(w, http.StatusOK, PaginatedContactsEnvelope{
		MaxPage: maxPage, ActualPage: page, PerPage: perPage, Data: views,
	})
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, contactID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	c, err := h.svc.Get(r.Context(), contactID, user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toContactView(c))
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, contactID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	var req domain.UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	c, err := h.svc.Update(r.Context(), contactID, user.ID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toContactView(c))
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, contactID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), contactID, user.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "contact deleted"})
}

// requestScope resolves the authenticated user and the {id} URL parameter,
// writing the error response itself when either is missing.
func (h *ContactHandler) requestScope(w http.ResponseWriter, r *http.Request) (*domain.User, int64, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, 0, false
	}
	contactID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return nil, 0, false
	}
	return user, contactID, true
}

func parsePagination(r *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = 50
	}
	return
}
