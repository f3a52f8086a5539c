package server

import (
	"encoding/json"
	"html"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pardot/pkg/buildinfo"
	"github.com/matzehuels/pardot/pkg/embed"
	"github.com/matzehuels/pardot/pkg/integrations/pardot"
)

// CacheHeader reports whether a value came from the cache or the API.
const CacheHeader = "X-Pardot-Source"

type campaignsResponse struct {
	Campaigns []pardot.Campaign `json:"campaigns"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) campaigns(w http.ResponseWriter, r *http.Request) {
	res := s.fetcher.Campaigns(r.Context())
	if !res.OK {
		writeError(w, http.StatusNotFound, "campaigns unavailable")
		return
	}
	w.Header().Set(CacheHeader, res.Source.String())
	writeJSON(w, http.StatusOK, campaignsResponse{Campaigns: res.Value})
}

func (s *Server) form(w http.ResponseWriter, r *http.Request) {
	res := s.fetcher.FormEmbedCode(r.Context(), chi.URLParam(r, "id"))
	q := r.URL.Query()
	out := embed.FormHTML(res.Value, embed.FormOptions{
		Height:      q.Get("height"),
		Width:       q.Get("width"),
		Class:       q.Get("class"),
		QueryString: q.Get("querystring"),
	})
	writeHTML(w, res.Source, out)
}

func (s *Server) dynamicContent(w http.ResponseWriter, r *http.Request) {
	res := s.fetcher.DynamicContentURL(r.Context(), chi.URLParam(r, "id"))
	q := r.URL.Query()
	// the fallback text comes from the request, so it is never markup here
	out := embed.DynamicContentHTML(res.Value, embed.DynamicContentOptions{
		Height:  q.Get("height"),
		Width:   q.Get("width"),
		Class:   q.Get("class"),
		Default: html.EscapeString(q.Get("default")),
	})
	writeHTML(w, res.Source, out)
}

func (s *Server) trackingCode(w http.ResponseWriter, r *http.Request) {
	st, err := s.settings.Get(r.Context())
	if err != nil {
		s.logger.Error("read settings", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if st.CampaignID == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	res := s.fetcher.TrackingCodeTemplate(r.Context())
	writeHTML(w, res.Source, embed.TrackingCode(res.Value, st))
}

// writeHTML writes a fragment, or 204 when there is nothing to embed.
func writeHTML(w http.ResponseWriter, src pardot.Source, body string) {
	if body == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(CacheHeader, src.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
