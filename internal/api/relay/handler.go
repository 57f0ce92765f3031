package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/evgeniy-krivenko/flomo-relay/internal/entity"
	"github.com/evgeniy-krivenko/flomo-relay/internal/flomo"
	"github.com/evgeniy-krivenko/flomo-relay/pkg/logger/slogx"
)

const maxBodySize = 1 << 20

type notesUsecase interface {
	WriteNote(ctx context.Context, note entity.Note) flomo.Result
	Status(ctx context.Context) entity.RelayStatus
}

type Handler struct {
	notes notesUsecase
}

func New(notes notesUsecase) *Handler {
	return &Handler{notes: notes}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("GET /test", h.test)
	mux.HandleFunc("POST /write_note", h.writeNote)

	return mux
}

type statusResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	FlomoAPIURL string `json:"flomo_api_url"`
}

type writeNoteRequest struct {
	Content *string `json:"content"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, indexPage)
}

func (h *Handler) test(w http.ResponseWriter, r *http.Request) {
	st := h.notes.Status(r.Context())

	writeJSON(r.Context(), w, http.StatusOK, statusResponse{
		Status:      st.Status,
		Message:     st.Message,
		FlomoAPIURL: st.FlomoAPIURL,
	})
}

func (h *Handler) writeNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req writeNoteRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(ctx, w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
		return
	}

	if err != nil || req.Content == nil {
		writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: entity.ErrContentRequired.Error()})
		return
	}

	res := h.notes.WriteNote(ctx, entity.Note{Content: *req.Content})

	writeJSON(ctx, w, statusFor(res), res.Payload)
}

// statusFor maps a submission result onto the relay's HTTP status. Faults in
// Flomo's reply and rejected input are the caller's 400, anything that broke
// on our side is a 500. The remote status stays in the payload.
func statusFor(res flomo.Result) int {
	switch {
	case res.OK():
		return http.StatusOK
	case errors.Is(res.Err, flomo.ErrEmptyContent), flomo.IsRemote(res.Err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		slogx.Error(ctx, "encode response", slogx.Err(err))
	}
}
