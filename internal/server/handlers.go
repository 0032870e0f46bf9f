package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bubblechart/pkg/cache"
	"github.com/matzehuels/bubblechart/pkg/errors"
	"github.com/matzehuels/bubblechart/pkg/host"
	"github.com/matzehuels/bubblechart/pkg/pipeline"
	"github.com/matzehuels/bubblechart/pkg/query"
	"github.com/matzehuels/bubblechart/pkg/scale"
)

// renderRequest is the body of a render call.
type renderRequest struct {
	Fields        *query.Fields   `json:"fields,omitempty"`
	QueryResponse *query.Response `json:"query_response,omitempty"`
	Rows          []query.Row     `json:"rows,omitempty"`
	Data          []query.Row     `json:"data,omitempty"`

	Config map[string]any   `json:"config,omitempty"`
	Width  float64          `json:"width,omitempty"`
	Height float64          `json:"height,omitempty"`
	Zoom   *scale.Transform `json:"zoom,omitempty"`
	Hover  *int             `json:"hover,omitempty"`
	Static bool             `json:"static,omitempty"`
	Scale  float64          `json:"scale,omitempty"`
}

func (b renderRequest) request(vizID, format string) pipeline.Request {
	var fields query.Fields
	switch {
	case b.Fields != nil:
		fields = *b.Fields
	case b.QueryResponse != nil:
		fields = b.QueryResponse.Fields
	}
	rows := b.Rows
	if rows == nil {
		rows = b.Data
	}
	return pipeline.Request{
		Fields: fields,
		Rows:   rows,
		Options: pipeline.Options{
			VizID:   vizID,
			Width:   b.Width,
			Height:  b.Height,
			Formats: []string{format},
			Zoom:    b.Zoom,
			Hover:   b.Hover,
			Static:  b.Static,
			Scale:   b.Scale,
			Style:   b.Config,
		},
	}
}

type vizInfo struct {
	ID      string            `json:"id"`
	Label   string            `json:"label"`
	Options []host.OptionSpec `json:"options"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListVisualizations(w http.ResponseWriter, r *http.Request) {
	reg := s.runner.Registry
	out := struct {
		Visualizations []vizInfo `json:"visualizations"`
	}{Visualizations: []vizInfo{}}

	for _, id := range reg.IDs() {
		v, err := reg.Get(id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		out.Visualizations = append(out.Visualizations, vizInfo{ID: v.ID(), Label: v.Label(), Options: v.Options()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.runner.Registry.Get(id); err != nil {
		writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}

	var body renderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), body.request(id, format))
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := result.Artifacts[format]
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("ETag", etag(result, format))
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// etag identifies one artifact. It derives from the artifact key, which
// covers the output flags (interaction, pixel scale) the request hash leaves
// out.
func etag(result *pipeline.Result, format string) string {
	key := result.CacheInfo.Keys[format]
	if key == "" {
		key = result.RequestHash + ":" + format
	}
	return strconv.Quote(cache.Hash([]byte(key)))
}
