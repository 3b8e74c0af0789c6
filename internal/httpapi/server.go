// Package httpapi exposes the matching engine over HTTP, routed with
// gorilla/mux in the same style as the rest of the example pack's REST
// services: a JSON request/response body, a request-scoped UUID for
// correlation, and a uniform error envelope.
package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fulcrumgenomics/ref-solver/internal/catalog"
	"github.com/fulcrumgenomics/ref-solver/internal/logging"
	"github.com/fulcrumgenomics/ref-solver/internal/matching"
	"github.com/fulcrumgenomics/ref-solver/internal/model"
	"github.com/fulcrumgenomics/ref-solver/internal/parse"
)

// Server wraps a mux.Router serving the identification API against a
// fixed catalog and engine configuration.
type Server struct {
	Router    *mux.Router
	StartTime time.Time

	catalog *catalog.Catalog
	engine  *matching.Engine
	logger  *slog.Logger
}

// New builds a Server backed by cat and cfg. Callers run it with
// http.Server the way any net/http handler is run; Server doesn't own
// its own listener.
func New(cat *catalog.Catalog, cfg matching.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		StartTime: time.Now(),
		catalog:   cat,
		engine:    matching.NewEngine(cat, cfg),
		logger:    logger,
	}
	s.Router = s.newRouter()
	return s
}

func (s *Server) newRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware)
	r.HandleFunc("/healthz", s.getHealth).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/identify", s.postIdentify).Methods(http.MethodPost)
	v1.HandleFunc("/catalog", s.getCatalog).Methods(http.MethodGet)
	v1.HandleFunc("/catalog/{id}", s.getCatalogEntry).Methods(http.MethodGet)
	return r
}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
			r.Header.Set("X-Request-Id", id)
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(r *http.Request) *slog.Logger {
	return logging.WithRequestID(s.logger, r.Header.Get("X-Request-Id"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the uniform error envelope every non-2xx response
// carries.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"uptime_secs":  time.Since(s.StartTime).Seconds(),
		"catalog_size": s.catalog.Len(),
	})
}

// identifyRequest is the POST /v1/identify body for the "json" format:
// a QueryHeader expressed as bare contigs plus an optional result
// limit, for clients that already have parsed contig data in hand
// rather than a surface-format file.
type identifyRequest struct {
	Contigs []identifyContig `json:"contigs"`
	Limit   int              `json:"limit,omitempty"`
}

// contentTypeFormats maps the Content-Type a client sends to the
// surface-format parser that reads it, mirroring the CLI's
// --format/auto-detect vocabulary (cmd/refsolve/identify.go).
var contentTypeFormats = map[string]string{
	"application/json":            "json",
	"text/x-sam-header":           "sam",
	"application/sam":             "sam",
	"text/x-picard-dict":          "dict",
	"text/x-samtools-fai":         "fai",
	"text/x-ncbi-assembly-report": "ncbi-report",
	"text/x-fasta":                "fasta",
	"application/x-fasta":         "fasta",
}

// negotiateFormat picks the surface format POST /v1/identify should
// parse its body as: an explicit ?format= query parameter wins,
// otherwise the Content-Type header is consulted, otherwise the
// request is treated as the bespoke "json" body shape.
func negotiateFormat(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return f
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return "json"
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "json"
	}
	if format, ok := contentTypeFormats[mt]; ok {
		return format
	}
	return "json"
}

// parseSurfaceFormat dispatches to the internal/parse reader for
// format, the same dispatch cmd/refsolve/identify.go performs for
// files read from disk.
func parseSurfaceFormat(format string, r io.Reader) (model.QueryHeader, []parse.Warning, error) {
	switch format {
	case "sam":
		return parse.SAMHeader(r)
	case "dict":
		return parse.Dict(r)
	case "fai":
		return parse.FAI(r)
	case "ncbi-report":
		return parse.NCBIReport(r)
	case "fasta":
		return parse.FASTA(r)
	default:
		return model.QueryHeader{}, nil, fmt.Errorf("unrecognized format %q", format)
	}
}

type identifyContig struct {
	Name    string   `json:"name"`
	Length  uint64   `json:"length"`
	MD5     string   `json:"md5,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
}

type identifyResponse struct {
	Matches []matchPayload `json:"matches"`
}

type matchPayload struct {
	ReferenceID string   `json:"reference_id"`
	DisplayName string   `json:"display_name"`
	Composite   float64  `json:"composite"`
	Confidence  string   `json:"confidence"`
	MatchType   string   `json:"match_type"`
	Exact       int      `json:"exact"`
	NameOnly    int      `json:"name_only"`
	Conflict    int      `json:"conflict"`
	Unmatched   int      `json:"unmatched"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (s *Server) postIdentify(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)

	format := negotiateFormat(r)
	limit := 0

	var query model.QueryHeader
	var warnings []parse.Warning
	if format == "json" {
		var req identifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if len(req.Contigs) == 0 {
			writeError(w, http.StatusBadRequest, "contigs must not be empty")
			return
		}

		contigs := make([]model.Contig, 0, len(req.Contigs))
		for _, rc := range req.Contigs {
			c, err := model.NewContig(rc.Name, rc.Length, rc.MD5, rc.Aliases, model.RoleUnknown)
			if err != nil {
				warnings = append(warnings, parse.Warning{Contig: rc.Name, Message: err.Error()})
				continue
			}
			contigs = append(contigs, c)
		}
		if len(contigs) == 0 {
			writeError(w, http.StatusBadRequest, "no valid contigs in request")
			return
		}

		qh, err := model.NewQueryHeader(contigs)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		query = qh
		limit = req.Limit
	} else {
		qh, ws, err := parseSurfaceFormat(format, r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("parsing %s body: %v", format, err))
			return
		}
		if len(qh.Contigs) == 0 {
			writeError(w, http.StatusBadRequest, "no valid contigs in request body")
			return
		}
		query = qh
		warnings = ws
		if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
			limit = l
		}
	}

	if limit <= 0 {
		limit = 5
	}

	results := s.engine.FindMatches(query, limit)
	logger.Info("identify", slog.Int("candidates", len(results)), slog.Int("warnings", len(warnings)))

	resp := identifyResponse{Matches: make([]matchPayload, 0, len(results))}
	for _, res := range results {
		m := matchPayload{
			ReferenceID: res.Reference.ID,
			DisplayName: res.Reference.DisplayName,
			Composite:   res.Score.Composite,
			Confidence:  res.Score.Confidence.String(),
			MatchType:   res.Diagnosis.MatchType.String(),
			Exact:       res.Score.Exact,
			NameOnly:    res.Score.NameLengthOnly,
			Conflict:    res.Score.Conflict,
			Unmatched:   res.Score.Unmatched,
		}
		for _, sug := range res.Diagnosis.Suggestions {
			m.Suggestions = append(m.Suggestions, sug.Message)
		}
		resp.Matches = append(resp.Matches, m)
	}
	writeJSON(w, http.StatusOK, resp)
}

type catalogEntrySummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Assembly    string `json:"assembly"`
	Source      string `json:"source"`
	ContigCount int    `json:"contig_count"`
}

func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	refs := s.catalog.All()
	out := make([]catalogEntrySummary, 0, len(refs))
	for _, ref := range refs {
		out = append(out, catalogEntrySummary{
			ID:          ref.ID,
			DisplayName: ref.DisplayName,
			Assembly:    ref.Assembly,
			Source:      ref.Source,
			ContigCount: len(ref.Contigs),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCatalogEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ref, ok := s.catalog.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no reference %q in catalog", id))
		return
	}
	writeJSON(w, http.StatusOK, ref)
}
