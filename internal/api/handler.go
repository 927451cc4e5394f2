package api

import (
	"encoding/json"
	"net/http"

	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/internal/model"
	"github.com/thep200/trending-crawler/internal/store"
	"github.com/thep200/trending-crawler/pkg/log"
)

// Handler answers filtered and optionally grouped snapshot queries
type Handler struct {
	Logger log.Logger
	Config *cfg.Config
	Store  store.Store
}

// TrendingResponse is the read API payload. GroupedBy and Groups only appear
// when a groupBy key was supplied.
type TrendingResponse struct {
	Data      []model.TrendingSnapshot            `json:"data"`
	GroupedBy string                              `json:"groupedBy,omitempty"`
	Groups    map[string][]model.TrendingSnapshot `json:"groups,omitempty"`
}

func NewHandler(logger log.Logger, config *cfg.Config, st store.Store) (*Handler, error) {
	return &Handler{
		Logger: logger,
		Config: config,
		Store:  st,
	}, nil
}

// RegisterRoutes sets up the HTTP routes for the read API
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/trending", h.handleTrending)
	mux.HandleFunc("/healthz", h.handleHealth)
}

func (h *Handler) handleTrending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := parseQuery(r)
	groupBy := parseGroupBy(r)

	snapshots, err := h.Store.Read(r.Context(), query)
	if err != nil {
		h.Logger.Error(r.Context(), "Trending API failure: %v", err)
		writeJson(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to load trending repositories",
		})
		return
	}

	response := TrendingResponse{Data: snapshots}
	if groupBy != "" {
		response.GroupedBy = groupBy
		response.Groups = buildGrouping(snapshots, groupBy)
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "public, max-age=60")
	writeJson(w, http.StatusOK, response)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseQuery builds the store filter from the request. Invalid type and since
// values are treated as absent, matching everything.
func parseQuery(r *http.Request) model.Query {
	query := model.Query{
		Language: r.URL.Query().Get("language"),
		Month:    r.URL.Query().Get("month"),
		Day:      r.URL.Query().Get("day"),
	}
	if t, ok := model.ParseListingType(r.URL.Query().Get("type")); ok {
		query.Type = t
	}
	if s, ok := model.ParseSince(r.URL.Query().Get("since")); ok {
		query.Since = s
	}
	return query
}

func parseGroupBy(r *http.Request) string {
	switch v := r.URL.Query().Get("groupBy"); v {
	case "month", "day", "type":
		return v
	default:
		return ""
	}
}

// buildGrouping partitions snapshots by the literal value of the chosen
// field. Store order is preserved inside each bucket.
func buildGrouping(snapshots []model.TrendingSnapshot, groupBy string) map[string][]model.TrendingSnapshot {
	groups := make(map[string][]model.TrendingSnapshot)
	for _, snapshot := range snapshots {
		var key string
		switch groupBy {
		case "month":
			key = snapshot.Month
		case "day":
			key = snapshot.Day
		case "type":
			key = string(snapshot.Type)
		}
		groups[key] = append(groups[key], snapshot)
	}
	return groups
}

func writeJson(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
