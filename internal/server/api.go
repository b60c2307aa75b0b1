package server

import (
	"context"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/dispatcher"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]string{"status": "ok"}
	for name, check := range s.checks {
		ctx, cancel := context.WithTimeout(r.Context(), s.cfg.HTTPReadTimeout)
		err := check(ctx)
		cancel()
		if err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body[name] = err.Error()
			continue
		}
		body[name] = "ok"
	}
	s.json(w, status, body)
}

func (s *Server) openAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.openapi)
}

func (s *Server) listTypes(w http.ResponseWriter, _ *http.Request) {
	s.json(w, http.StatusOK, content.DescribeAll())
}

func (s *Server) getType(w http.ResponseWriter, r *http.Request) {
	id, err := content.ParseTypeID(chi.URLParam(r, "type"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	desc, err := content.Describe(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.json(w, http.StatusOK, desc)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (dispatcher.Request, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	return dispatcher.DecodeRequest(r.Body, s.palettes)
}

func (s *Server) build(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.dispatcher.Build(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

type payloadResponse struct {
	Type    content.TypeID `json:"type"`
	Payload string         `json:"payload"`
}

func (s *Server) payload(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	payload, err := s.dispatcher.Payload(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.json(w, http.StatusOK, payloadResponse{Type: req.Type, Payload: payload})
}
