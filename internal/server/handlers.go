package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/drainplan/pkg/buildinfo"
	"github.com/matzehuels/drainplan/pkg/errors"
	"github.com/matzehuels/drainplan/pkg/pipeline"
	"github.com/matzehuels/drainplan/pkg/profile"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthBody struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Get()
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Version: info.Version, Commit: info.Commit})
}

// handleLayout decodes Params from the body over the defaults and answers
// with the layout document.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	p := profile.Default()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode parameters"))
		return
	}

	opts := pipeline.Options{Params: p, Formats: []string{pipeline.FormatJSON}}
	if err := applyRunQuery(&opts, r.URL.Query()); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.serveArtifact(w, r, opts, pipeline.FormatJSON)
}

// handleArtifact reads Params and render options from the query string.
func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	p, err := paramsFromQuery(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Params:      p,
		Formats:     []string{format},
		Title:       q.Get("title"),
		MullionGaps: q.Has("mullion_gaps") && q.Get("mullion_gaps") != "false",
		NoGapLabels: q.Get("gap_labels") == "false",
	}
	if err := applyRunQuery(&opts, q); err != nil {
		s.writeError(w, r, err)
		return
	}
	for name, dst := range map[string]*float64{"width": &opts.Width, "height": &opts.Height} {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "%s: not a number: %q", name, v))
				return
			}
			*dst = f
		}
	}

	s.serveArtifact(w, r, opts, format)
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, opts pipeline.Options, format string) {
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Layout-Converged", strconv.FormatBool(res.Layout.Converged))
	w.Header().Set("X-Layout-Violations", strconv.Itoa(len(res.Layout.Violations)))
	if res.LayoutHash != "" {
		w.Header().Set("ETag", `"`+res.LayoutHash[:16]+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// applyRunQuery reads the options shared by both layout routes.
func applyRunQuery(opts *pipeline.Options, q url.Values) error {
	if v := q.Get("max_iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "max_iterations: not an integer: %q", v)
		}
		opts.MaxIterations = n
	}
	opts.Refresh = q.Get("refresh") == "true"
	opts.Name = q.Get("name")
	return nil
}

// paramsFromQuery overlays query parameters named like the JSON fields on
// the defaults.
func paramsFromQuery(q url.Values) (profile.Params, error) {
	p := profile.Default()

	floats := []struct {
		name string
		dst  *float64
	}{
		{"length", &p.Length},
		{"edge_offset", &p.EdgeOffset},
		{"min_spacing", &p.MinSpacing},
		{"max_spacing", &p.MaxSpacing},
		{"min_clearance", &p.MinClearance},
	}
	for _, f := range floats {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, errors.New(errors.ErrCodeInvalidInput, "%s: not a number: %q", f.name, v)
		}
		*f.dst = x
	}

	if v := q.Get("mullion_count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, errors.New(errors.ErrCodeInvalidInput, "mullion_count: not an integer: %q", v)
		}
		p.MullionCount = n
	}

	if v := q.Get("edge_policy"); v != "" {
		p.EdgePolicy = profile.EdgePolicy(v)
	}
	if v := q.Get("strategy"); v != "" {
		p.Strategy = profile.Strategy(v)
	}
	if v := q.Get("target"); v != "" {
		p.Target = profile.Target(v)
	}
	if v := q.Get("clamp"); v != "" {
		p.Clamp = profile.ClampMode(v)
	}
	return p, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch {
	case errors.IsInvalid(err):
		status = http.StatusBadRequest
	case code == errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case r.Context().Err() != nil:
		status = http.StatusServiceUnavailable
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}

	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", RequestID(r.Context()))
		msg = fmt.Sprintf("internal error (request %s)", RequestID(r.Context()))
	}
	writeJSON(w, status, errorBody{Code: string(code), Message: strings.TrimSpace(msg)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
