package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/goliatone/go-formpdf/pkg/contact"
	"github.com/goliatone/go-formpdf/pkg/render"
	"github.com/goliatone/go-formpdf/pkg/renderers/page"
	"github.com/goliatone/go-formpdf/pkg/store"
	"github.com/goliatone/go-formpdf/pkg/validation"
)

// Submit actions posted by the form screen's buttons.
const (
	ActionView     = "view"
	ActionDownload = "download"
)

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	rec, _ := s.load(w, r, false)
	s.renderScreen(w, r, page.FormName, http.StatusOK, render.RenderOptions{Record: rec})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}
	rec := recordFromForm(r.PostForm)

	action := r.PostForm.Get("action")
	switch action {
	case "", ActionView, ActionDownload:
	default:
		http.Error(w, fmt.Sprintf("unknown action %q", action), http.StatusBadRequest)
		return
	}

	result := validation.Validate(s.form, rec.Values())
	if !result.Valid {
		s.renderScreen(w, r, page.FormName, http.StatusUnprocessableEntity, render.RenderOptions{
			Record: rec,
			Errors: result.FieldErrors(),
		})
		return
	}

	rec = rec.Normalize()
	if action == ActionDownload {
		s.writePDF(w, r, rec)
		return
	}

	if err := s.save(r, rec); err != nil {
		s.logger.Error("error storing record", zap.Error(err))
		s.renderScreen(w, r, page.FormName, http.StatusInternalServerError, render.RenderOptions{
			Record: rec,
			Errors: map[string][]string{"": {"Your details could not be saved. Please try again."}},
		})
		return
	}
	http.Redirect(w, r, PathPreview, http.StatusSeeOther)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.load(w, r, true)
	if !ok {
		return
	}
	s.renderScreen(w, r, page.PreviewName, http.StatusOK, render.RenderOptions{Record: rec})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.load(w, r, true)
	if !ok {
		return
	}
	s.writePDF(w, r, rec)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	rec, ok, err := s.lookup(r)
	if err != nil {
		s.logger.Warn("error loading record", zap.Error(err))
	}
	if ok {
		if err := s.save(r, rec); err != nil {
			s.logger.Warn("error refreshing record", zap.Error(err))
		}
	}
	http.Redirect(w, r, PathForm, http.StatusSeeOther)
}

type apiError struct {
	Error string `json:"error"`
}

func (s *Server) handleAPIValidate(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecord(w, r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}
	result := validation.Validate(s.form, rec.Values())
	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, result)
}

func (s *Server) handleAPIPDF(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecord(w, r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}
	result := validation.Validate(s.form, rec.Values())
	if !result.Valid {
		s.writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	s.writePDF(w, r, rec.Normalize())
}

// load returns the stored record for the request's session. With redirect
// set, a missing record sends the client back to the form and ok is false.
func (s *Server) load(w http.ResponseWriter, r *http.Request, redirect bool) (contact.Record, bool) {
	rec, ok, err := s.lookup(r)
	if err != nil {
		s.logger.Warn("error loading record", zap.Error(err))
	}
	if !ok && redirect {
		http.Redirect(w, r, PathForm, http.StatusSeeOther)
		return contact.Record{}, false
	}
	return rec, ok
}

func (s *Server) lookup(r *http.Request) (contact.Record, bool, error) {
	id, ok := store.SessionID(r.Context())
	if !ok {
		return contact.Record{}, false, nil
	}
	return s.store.Load(r.Context(), id)
}

func (s *Server) save(r *http.Request, rec contact.Record) error {
	id, ok := store.SessionID(r.Context())
	if !ok {
		return errors.New("server: request has no session")
	}
	return s.store.Save(r.Context(), id, rec)
}

func (s *Server) renderScreen(w http.ResponseWriter, r *http.Request, name string, status int, opts render.RenderOptions) {
	if opts.Theme == nil {
		opts.Theme = s.theme
	}
	out, contentType, err := s.screens.Render(r.Context(), name, s.form, opts)
	if err != nil {
		s.logger.Error("error rendering screen", zap.String("screen", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		s.logger.Debug("write response", zap.Error(err))
	}
}

// writePDF streams the record as an attachment. A failed export leaves any
// stored record untouched.
func (s *Server) writePDF(w http.ResponseWriter, r *http.Request, rec contact.Record) {
	out, err := s.exporter.Render(r.Context(), s.form, render.RenderOptions{Record: rec, Theme: s.theme})
	if err != nil {
		s.logger.Error("error generating PDF", zap.String("engine", s.exporter.Name()), zap.Error(err))
		http.Error(w, "error generating PDF", http.StatusInternalServerError)
		return
	}
	h := w.Header()
	h.Set("Content-Type", s.exporter.ContentType())
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", contact.Filename))
	h.Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		s.logger.Debug("write response", zap.Error(err))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Debug("write json response", zap.Error(err))
	}
}

func recordFromForm(values url.Values) contact.Record {
	fields := make(map[string]string, len(contact.FieldOrder))
	for _, name := range contact.FieldOrder {
		fields[name] = values.Get(name)
	}
	return contact.FromValues(fields)
}

func decodeRecord(w http.ResponseWriter, r *http.Request) (contact.Record, error) {
	var rec contact.Record
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return contact.Record{}, fmt.Errorf("invalid record payload: %w", err)
	}
	return rec, nil
}
