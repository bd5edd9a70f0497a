package server

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/permrank/pkg/buildinfo"
	perrors "github.com/matzehuels/permrank/pkg/errors"
	"github.com/matzehuels/permrank/pkg/pipeline"
	"github.com/matzehuels/permrank/pkg/scheme"
)

// maxBodyBytes bounds POST bodies. Words over large alphabets stay far below.
const maxBodyBytes = 1 << 20

// RankRequest is the body of POST /v1/rank.
type RankRequest struct {
	Scheme   string `json:"scheme"`
	Alphabet string `json:"alphabet"`
	K        int    `json:"k"`
	Word     string `json:"word"`
}

// UnrankRequest is the body of POST /v1/unrank. Rank may be a JSON number or
// a decimal string; ranks past 2^53 should be sent as strings.
type UnrankRequest struct {
	Scheme   string      `json:"scheme"`
	Alphabet string      `json:"alphabet"`
	K        int         `json:"k"`
	Rank     json.Number `json:"rank"`
}

// SchemeInfo describes a registered scheme.
type SchemeInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Ordered     bool     `json:"ordered"`
	Repetition  bool     `json:"repetition"`
	First       *big.Int `json:"first"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleSchemes(w http.ResponseWriter, r *http.Request) {
	var out []SchemeInfo
	for _, sc := range scheme.All() {
		out = append(out, SchemeInfo{
			Name:        sc.Name(),
			Description: sc.Description(),
			Ordered:     sc.Ordered(),
			Repetition:  sc.Repetition(),
			First:       sc.First(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	opts, err := s.queryOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.runner.Count(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	opts := s.options(req.Scheme, req.Alphabet, req.K)
	opts.Logger = s.requestLogger(r)

	res, err := s.runner.Rank(r.Context(), opts, req.Word)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleUnrank(w http.ResponseWriter, r *http.Request) {
	var req UnrankRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	rank, ok := new(big.Int).SetString(req.Rank.String(), 10)
	if !ok {
		s.fail(w, r, perrors.New(perrors.ErrCodeInvalidInput, "rank must be a decimal integer, got %q", req.Rank.String()))
		return
	}
	opts := s.options(req.Scheme, req.Alphabet, req.K)
	opts.Logger = s.requestLogger(r)

	res, err := s.runner.Unrank(r.Context(), opts, rank)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleEnumerate(w http.ResponseWriter, r *http.Request) {
	opts, err := s.queryOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	limit, err := intParam(r.URL.Query(), "limit")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.runner.Enumerate(r.Context(), opts, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.queryOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	limit, err := intParam(r.URL.Query(), "limit")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	svg, hit, err := s.runner.Render(r.Context(), opts, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// options merges request values over the configured defaults.
func (s *Server) options(schemeName, alphabet string, k int) pipeline.Options {
	d := s.cfg.Defaults
	opts := pipeline.Options{Scheme: d.Scheme, Alphabet: d.Alphabet, K: d.K, Order: d.Order}
	if schemeName != "" {
		opts.Scheme = schemeName
	}
	if alphabet != "" {
		opts.Alphabet = alphabet
		// A default k is meaningless for a different alphabet.
		opts.K = 0
	}
	if k != 0 {
		opts.K = k
	}
	return opts
}

func (s *Server) queryOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	k, err := intParam(q, "k")
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := s.options(q.Get("scheme"), q.Get("alphabet"), k)
	if order := q.Get("order"); order != "" {
		opts.Order = order
	}
	opts.Refresh = q.Get("refresh") == "true"
	opts.Logger = s.requestLogger(r)
	return opts, nil
}

func (s *Server) requestLogger(r *http.Request) *log.Logger {
	return s.logger.With("request_id", RequestIDFrom(r.Context()))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", RequestIDFrom(r.Context()))
	}
	code := string(perrors.GetCode(err))
	if code == "" {
		code = string(perrors.ErrCodeInternal)
	}
	writeError(w, status, code, perrors.UserMessage(err))
}

func intParam(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, perrors.New(perrors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, v)
	}
	return n, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return perrors.New(perrors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxErr.Limit)
		}
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}
