package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/merge"
	"github.com/certifyme/certrender/pkg/errors"
	"github.com/certifyme/certrender/pkg/pipeline"
)

// Content types per artifact format.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

type renderRequest struct {
	Template *certificate.Template      `json:"template"`
	Record   *certificate.DynamicRecord `json:"record"`
	Options  requestOptions             `json:"options"`
}

type requestOptions struct {
	Format     string  `json:"format"`
	Width      float64 `json:"width"`
	Fullscreen bool    `json:"fullscreen"`
	Scale      float64 `json:"scale"`
	Today      string  `json:"today"` // YYYY-MM-DD; defaults to the server's date
	AssignID   bool    `json:"assign_id"`
	Modules    bool    `json:"modules"`
	Refresh    bool    `json:"refresh"`
}

type layoutInfo struct {
	Kind   certificate.LayoutKind `json:"kind"`
	Title  string                 `json:"title"`
	Preset bool                   `json:"preset"`
}

type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) layouts(w http.ResponseWriter, r *http.Request) {
	out := make([]layoutInfo, 0, len(certificate.PresetKinds)+1)
	for _, k := range certificate.PresetKinds {
		out = append(out, layoutInfo{Kind: k, Title: k.Title(), Preset: true})
	}
	out = append(out, layoutInfo{Kind: certificate.LayoutFreeform, Title: certificate.LayoutFreeform.Title()})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Input-Hash", result.InputHash)
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

func (s *Server) record(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.runner.Record(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// decode reads the request body into pipeline options.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var req renderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", MaxBodySize)
		}
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if req.Template == nil {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidTemplate, "template is required")
	}

	format := req.Options.Format
	if q := r.URL.Query().Get("format"); q != "" {
		format = q
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = pipeline.FormatSVG
	}

	var today time.Time
	if req.Options.Today != "" {
		t, ok := merge.ParseDate(req.Options.Today)
		if !ok {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "invalid today date %q", req.Options.Today)
		}
		today = t
	}

	opts := pipeline.Options{
		Template:     req.Template,
		Record:       req.Record,
		Formats:      []string{format},
		Width:        req.Options.Width,
		Fullscreen:   req.Options.Fullscreen,
		Scale:        req.Options.Scale,
		Origin:       s.origin,
		AssetBase:    s.assetBase,
		Today:        today,
		AssignID:     req.Options.AssignID,
		Modules:      req.Options.Modules,
		Refresh:      req.Options.Refresh,
		AssetTimeout: s.assetTimeout,
		Logger:       s.logger.With("id", RequestID(r.Context())),
	}
	return opts, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= 500 {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "error", err)
	}
	writeJSON(w, status, errorBody{
		Error:     errorDetail{Code: code, Message: errors.UserMessage(err)},
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
