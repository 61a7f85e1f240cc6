package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/logger"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// smsRequest is an inbound SMS as posted by the phone gateway.
type smsRequest struct {
	From          string `json:"from" validate:"required,max=64"`
	Message       string `json:"message" validate:"required,max=4096"`
	SentTimestamp string `json:"sent_timestamp" validate:"max=64"`
	SentTo        string `json:"sent_to" validate:"max=64"`
}

// smsResponse echoes the stored record and every outbound message it produced.
type smsResponse struct {
	ID       string               `json:"id"`
	Errors   []domain.RecordError `json:"errors"`
	Messages []domain.Response    `json:"messages"`
	Record   *domain.DataRecord   `json:"record"`
}

// saveParams are the query parameters of a contact save.
type saveParams struct {
	ID   string `validate:"max=128"`
	Type string `validate:"required_without=ID,max=64"`
}

func (s *Server) handleReceiveSMS(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSMS(w, r)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}

	rec, err := s.ports.Intake.Receive(r.Context(), &domain.RawMessage{
		From:          req.From,
		Message:       req.Message,
		SentTimestamp: req.SentTimestamp,
		SentTo:        req.SentTo,
		ReceivedAt:    time.Now(),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, smsResponse{
		ID:       rec.ID,
		Errors:   rec.Errors,
		Messages: outbound(rec),
		Record:   rec,
	})
}

// outbound lists the replies followed by the task messages of rec.
func outbound(rec *domain.DataRecord) []domain.Response {
	out := append([]domain.Response{}, rec.Responses...)
	for _, task := range rec.Tasks {
		out = append(out, task.Messages...)
	}
	return out
}

// decodeSMS reads a JSON body or form values, depending on Content-Type.
func decodeSMS(w http.ResponseWriter, r *http.Request) (smsRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req smsRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("decoding body: %w", err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("parsing form: %w", err)
	}
	req.From = r.PostForm.Get("from")
	req.Message = r.PostForm.Get("message")
	req.SentTimestamp = r.PostForm.Get("sent_timestamp")
	req.SentTo = r.PostForm.Get("sent_to")
	return req, nil
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.ports.Intake.GetRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSaveContact(w http.ResponseWriter, r *http.Request) {
	params := saveParams{
		ID:   r.URL.Query().Get("id"),
		Type: r.URL.Query().Get("type"),
	}
	if err := s.validate.Struct(params); err != nil {
		writeError(w, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}

	var sub domain.ContactSubmission
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, fmt.Errorf("%w: decoding submission: %w", domain.ErrInvalidInput, err))
		return
	}
	if sub.Doc == nil {
		writeError(w, fmt.Errorf("%w: submission has no doc", domain.ErrInvalidInput))
		return
	}

	result, err := s.ports.Contacts.Save(r.Context(), sub, params.ID, params.Type)
	if err != nil {
		var batchErr *domain.BatchError
		if errors.As(err, &batchErr) {
			writeJSON(w, statusFor(err), errorResponse{
				Error:  batchErr.Error(),
				Failed: batchErr.Failures,
				Result: result,
			})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	c, err := s.ports.Contacts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// contactRow is one entry of the contact listing.
type contactRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Dead bool   `json:"dead,omitempty"`
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	list, err := s.ports.Contacts.ListSorted(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rows := make([]contactRow, 0, len(list))
	for _, c := range list {
		rows = append(rows, contactRow{ID: c.ID, Name: c.Name, Type: c.Type, Dead: c.Dead})
	}
	writeJSON(w, http.StatusOK, rows)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
