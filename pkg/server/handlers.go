package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/hingecut/pkg/config"
	"github.com/matzehuels/hingecut/pkg/errors"
	"github.com/matzehuels/hingecut/pkg/hinge"
	"github.com/matzehuels/hingecut/pkg/observability"
	"github.com/matzehuels/hingecut/pkg/pipeline"
)

// downloadName is the attachment base name for downloaded patterns.
const downloadName = "living_hinge"

type patternRequest struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	CutLength  float64 `json:"cut_length"`
	Gap        float64 `json:"gap"`
	Separation float64 `json:"separation"`
	CutWidth   float64 `json:"cut_width"`
	Variant    string  `json:"variant"`
	Frame      bool    `json:"frame"`
	Format     string  `json:"format"`
	Layer      string  `json:"layer,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Download   bool    `json:"download,omitempty"`
}

// defaultRequest is the stock preset rendered as DXF.
func defaultRequest() patternRequest {
	p := config.Default()
	return patternRequest{
		Width:      p.Panel.Width,
		Height:     p.Panel.Height,
		CutLength:  p.Pattern.CutLength,
		Gap:        p.Pattern.Gap,
		Separation: p.Pattern.Separation,
		CutWidth:   p.Pattern.CutWidth,
		Variant:    p.Pattern.Variant,
		Frame:      p.Pattern.Frame,
		Format:     pipeline.DefaultFormat,
	}
}

func (s *Server) handlePatternQuery(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.servePattern(w, r, req)
}

func (s *Server) handlePatternJSON(w http.ResponseWriter, r *http.Request) {
	req := defaultRequest()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !stderrors.Is(err, io.EOF) {
		s.writeError(w, r, &inputError{code: errors.ErrCodeInvalidInput, field: "body", reason: err.Error()})
		return
	}
	s.servePattern(w, r, req)
}

func (s *Server) servePattern(w http.ResponseWriter, r *http.Request, req patternRequest) {
	opts, err := s.options(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentType(format))
	h.Set("X-Hinge-Segments", strconv.Itoa(res.Pattern.Stats.Segments))
	if res.CacheInfo.RenderHit {
		h.Set("X-Cache", "HIT")
	} else {
		h.Set("X-Cache", "MISS")
	}
	if req.Download {
		h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, downloadName, format))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// options converts a request into pipeline options. The single requested
// format is normalized and returned as Formats[0]. Numeric range checks are
// left to the pipeline so that they report limits.
func (s *Server) options(req patternRequest) (pipeline.Options, error) {
	variant, err := hinge.ParseVariant(req.Variant)
	if err != nil {
		return pipeline.Options{}, &inputError{code: errors.ErrCodeInvalidVariant, field: "variant", raw: req.Variant,
			reason: "must be straight or chevron"}
	}

	format, err := normalizeFormat(req.Format)
	if err != nil {
		return pipeline.Options{}, err
	}

	return pipeline.Options{
		Panel: hinge.Panel{Width: req.Width, Height: req.Height},
		Params: hinge.Params{
			CutLength:    req.CutLength,
			Gap:          req.Gap,
			Separation:   req.Separation,
			CutWidth:     req.CutWidth,
			Variant:      variant,
			IncludeFrame: req.Frame,
		},
		Config:  s.limits,
		Formats: []string{format},
		Layer:   req.Layer,
		Scale:   req.Scale,
	}, nil
}

// normalizeFormat lowercases and trims a requested format, defaulting an
// empty value to DXF.
func normalizeFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	if format == "" {
		format = pipeline.DefaultFormat
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return "", &inputError{code: errors.ErrCodeInvalidFormat, field: "format", raw: raw,
			reason: "must be one of svg, dxf, json, png, pdf"}
	}
	return format, nil
}

func parseQuery(q url.Values) (patternRequest, error) {
	req := defaultRequest()

	floats := []struct {
		name string
		dst  *float64
	}{
		{"width", &req.Width},
		{"height", &req.Height},
		{"cut_length", &req.CutLength},
		{"gap", &req.Gap},
		{"separation", &req.Separation},
		{"cut_width", &req.CutWidth},
		{"scale", &req.Scale},
	}
	for _, f := range floats {
		if !q.Has(f.name) {
			continue
		}
		raw := q.Get(f.name)
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return req, &inputError{code: errors.ErrCodeInvalidInput, field: f.name, raw: raw, reason: "must be a number"}
		}
		*f.dst = v
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"frame", &req.Frame},
		{"download", &req.Download},
	}
	for _, b := range bools {
		if !q.Has(b.name) {
			continue
		}
		raw := q.Get(b.name)
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return req, &inputError{code: errors.ErrCodeInvalidInput, field: b.name, raw: raw, reason: "must be true or false"}
		}
		*b.dst = v
	}

	if q.Has("variant") {
		req.Variant = q.Get("variant")
	}
	if q.Has("format") {
		req.Format = q.Get("format")
	}
	if q.Has("layer") {
		req.Layer = q.Get("layer")
	}
	return req, nil
}

// =============================================================================
// Errors
// =============================================================================

// inputError reports a request value that could not be parsed at all.
type inputError struct {
	code   errors.Code
	field  string
	raw    string
	reason string
}

func (e *inputError) Error() string {
	return fmt.Sprintf("%s = %q: %s", e.field, e.raw, e.reason)
}

func (e *inputError) ErrorCode() errors.Code { return e.code }

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Field   string      `json:"field,omitempty"`
	Value   *float64    `json:"value,omitempty"`
	Limit   *float64    `json:"limit,omitempty"`
	Message string      `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	var (
		ve *errors.ValidationError
		ie *inputError
	)
	switch {
	case stderrors.As(err, &ie):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: ie.code, Field: ie.field, Message: ie.Error()})
	case stderrors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    ve.Code,
			Field:   ve.Field,
			Value:   finite(ve.Value),
			Limit:   finite(ve.Limit),
			Message: ve.Message(),
		})
	case errors.Is(err, errors.ErrCodeUnsupported):
		writeJSON(w, http.StatusNotImplemented, errorResponse{Code: errors.ErrCodeUnsupported, Message: errors.UserMessage(err)})
	case r.Context().Err() != nil:
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Code: errors.ErrCodeInternal, Message: "request cancelled"})
	default:
		if code := errors.GetCode(err); code != "" && strings.HasPrefix(string(code), "INVALID_") {
			writeJSON(w, http.StatusBadRequest, errorResponse{Code: code, Message: errors.UserMessage(err)})
			return
		}
		s.logger.Error("pattern request failed", "err", err, "request_id", RequestID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Code: errors.ErrCodeInternal, Message: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// finite returns a pointer to v, or nil for NaN and infinities, which JSON
// cannot represent.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
