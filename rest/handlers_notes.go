package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goliatone/go-guard/core"
)

type noteBodyRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Handlers) createNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := core.IdentityFromContext(r.Context())
	if !ok {
		h.fail(w, r, restConfigError("note handlers require an authenticated identity"))
		return
	}

	var body noteBodyRequest
	if err := decodeJSON(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}

	note, err := h.notes.Create(r.Context(), identity.ID, core.CreateNoteInput{
		Title:   body.Title,
		Content: body.Content,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, core.SuccessEnvelope("Note created successfully", toNoteResponse(note)))
}

func (h *Handlers) listMyNotes(w http.ResponseWriter, r *http.Request) {
	identity, ok := core.IdentityFromContext(r.Context())
	if !ok {
		h.fail(w, r, restConfigError("note handlers require an authenticated identity"))
		return
	}

	listed, err := h.notes.ListMine(r.Context(), identity.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, core.SuccessEnvelope("Notes retrieved successfully", toNoteResponses(listed)))
}

func (h *Handlers) listAllNotes(w http.ResponseWriter, r *http.Request) {
	listed, err := h.notes.ListAll(r.Context(), noteFilterFromQuery(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, core.SuccessEnvelope("All notes retrieved successfully", toNoteResponses(listed)))
}

func (h *Handlers) getNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, core.SuccessEnvelope("Note retrieved successfully", toNoteResponse(note)))
}

func (h *Handlers) updateNote(w http.ResponseWriter, r *http.Request) {
	var body noteBodyRequest
	if err := decodeJSON(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}

	note, err := h.notes.Update(r.Context(), chi.URLParam(r, "id"), core.UpdateNoteInput{
		Title:   body.Title,
		Content: body.Content,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, core.SuccessEnvelope("Note updated successfully", toNoteResponse(note)))
}

func (h *Handlers) deleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, core.SuccessEnvelope("Note deleted successfully", nil))
}

func noteFilterFromQuery(r *http.Request) core.NoteFilter {
	query := r.URL.Query()
	limit := intQuery(query.Get("limit"), 10)
	page := intQuery(query.Get("page"), 1)
	return core.NoteFilter{
		OwnerID: strings.TrimSpace(query.Get("userId")),
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}
}
