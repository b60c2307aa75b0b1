package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/dispatcher"
	"github.com/goliatone/go-qrform/pkg/model"
	"github.com/goliatone/go-qrform/pkg/orchestrator"
	"github.com/goliatone/go-qrform/pkg/render"
)

// langField carries the negotiated locale across form posts.
const langField = "lang"

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, typeURL(content.Types()[0], LocaleFromContext(r.Context())), http.StatusFound)
}

func typeURL(id content.TypeID, locale string) string {
	target := "/types/" + id.String()
	if locale != "" {
		target += "?" + url.Values{langField: {locale}}.Encode()
	}
	return target
}

func typeLinks(active content.TypeID, locale string) []render.TypeLink {
	links := make([]render.TypeLink, 0, len(content.Types()))
	for _, id := range content.Types() {
		links = append(links, render.TypeLink{
			ID:     id.String(),
			Label:  id.Label(),
			URL:    typeURL(id, locale),
			Active: id == active,
		})
	}
	return links
}

func (s *Server) formType(w http.ResponseWriter, r *http.Request) (content.TypeID, bool) {
	id, err := content.ParseTypeID(chi.URLParam(r, "type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func (s *Server) showForm(w http.ResponseWriter, r *http.Request) {
	id, ok := s.formType(w, r)
	if !ok {
		return
	}
	locale := LocaleFromContext(r.Context())
	s.page(w, r, http.StatusOK, id, locale, render.RenderOptions{})
}

func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	id, ok := s.formType(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	locale := LocaleFromContext(r.Context())
	if posted := r.PostForm.Get(langField); posted != "" {
		locale = s.orchestrator.MatchLocale(posted)
	}

	form, err := s.orchestrator.Form(r.Context(), id, locale)
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	sub := render.DecodeSubmission(form, r.PostForm)
	opts := render.RenderOptions{Values: sub.Raw}
	status := http.StatusOK

	res, err := s.submit(r, id, form, sub, &opts)
	switch {
	case err != nil:
		status = statusFor(err)
		mapping := render.MapError(form, err)
		opts.Errors = mapping.Fields
		opts.FormErrors = mapping.Form
	case opts.Errors != nil || opts.FormErrors != nil:
		status = http.StatusUnprocessableEntity
	default:
		opts.Result = render.NewPreview(res.Payload, res.ContentType, res.Filename, res.Data)
	}
	s.page(w, r, status, id, locale, opts)
}

// submit validates every field at once so the page can flag all of them,
// then builds. Field problems land in opts.Errors with a nil error.
func (s *Server) submit(r *http.Request, id content.TypeID, form model.FormModel, sub render.Submission, opts *render.RenderOptions) (dispatcher.Result, error) {
	wire := dispatcher.WireStyleFromMap(sub.Style)
	styleOpts, err := wire.Options(s.palettes)
	if err != nil {
		return dispatcher.Result{}, err
	}

	problems, err := content.ValidateAll(id, sub.Values)
	if err != nil {
		return dispatcher.Result{}, err
	}
	if len(problems) > 0 {
		mapping := render.MapValidationErrors(form, problems)
		opts.Errors = mapping.Fields
		opts.FormErrors = mapping.Form
		return dispatcher.Result{}, nil
	}

	return s.dispatcher.Build(r.Context(), dispatcher.Request{
		Type:   id,
		Values: sub.Values,
		Style:  styleOpts,
	})
}

func (s *Server) page(w http.ResponseWriter, r *http.Request, status int, id content.TypeID, locale string, opts render.RenderOptions) {
	opts.Types = typeLinks(id, locale)
	opts.Hidden = render.MergeHiddenFields(opts.Hidden, render.Hidden(langField, locale))
	html, err := s.orchestrator.Generate(r.Context(), orchestrator.Request{
		Type:          id,
		Locale:        locale,
		RenderOptions: opts,
	})
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(html)
}

func (s *Server) pageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, r.Context().Err()) {
		return
	}
	s.logger.Error().Err(err).Str("request_id", RequestIDFromContext(r.Context())).Msg("render form")
	http.Error(w, "unable to render form", statusFor(err))
}
