// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"agenticbi/internal/common/config"
	apperrors "agenticbi/internal/common/errors"
	"agenticbi/internal/common/metrics"
	"agenticbi/internal/models"

	"github.com/google/uuid"
)

const defaultSession = "global"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cacheHealthy := false
	if s.cache != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		cacheHealthy = s.cache.Ping(ctx) == nil
	}

	writeJSON(w, http.StatusOK, models.HealthStatus{
		Status:       "healthy",
		Service:      s.cfg.App.Name,
		Version:      s.cfg.App.Version,
		Agents:       s.registry.AgentNames(),
		CacheHealthy: cacheHealthy,
	})
}

// cachedAnalysis is the persisted slice of an analyze result. Request IDs,
// sequence numbers, and render trees are always recomputed.
type cachedAnalysis struct {
	AgentName  string                      `json:"agentName"`
	Components []models.GeneratedComponent `json:"components"`
	Trace      []string                    `json:"trace"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errs.HandleRequestError(w, r, apperrors.NewRequestInvalidError(err.Error()))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.errs.HandleRequestError(w, r, apperrors.NewQueryEmptyError())
		return
	}

	result, fromCache := s.lookupCached(r.Context(), req.Query)
	if !fromCache {
		analyzed, err := s.registry.Analyze(r.Context(), req.Query)
		if err != nil {
			s.errs.HandleRequestError(w, r, err)
			return
		}
		result = &cachedAnalysis{
			AgentName:  analyzed.AgentName,
			Components: s.validateComponents(analyzed.AgentName, analyzed.Components),
			Trace:      analyzed.Trace,
		}
		s.storeCached(r.Context(), req.Query, result)
	}

	s.recordHistory(r.Context(), req, result.AgentName)

	trees := make([]models.RenderedComponent, 0, len(result.Components))
	for _, c := range result.Components {
		trees = append(trees, models.RenderedComponent{
			ComponentID: c.ID,
			Tree:        s.renderer.Render(c.ComponentType, c.ComponentCode),
		})
		metrics.ComponentsGenerated.WithLabelValues(c.AgentName, c.ComponentType).Inc()
	}

	elapsed := time.Since(start)
	metrics.QueriesAnalyzed.WithLabelValues(result.AgentName).Inc()
	metrics.AnalyzeDuration.WithLabelValues(result.AgentName).Observe(elapsed.Seconds())

	writeJSON(w, http.StatusOK, models.AnalyzeResponse{
		Success:         true,
		RequestID:       uuid.NewString(),
		Sequence:        s.seq.Add(1),
		Components:      result.Components,
		RenderTrees:     trees,
		TotalComponents: len(result.Components),
		ProcessingTime:  fmt.Sprintf("%.2fs", elapsed.Seconds()),
		AgentTrace:      result.Trace,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req models.RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errs.HandleRequestError(w, r, apperrors.NewRequestInvalidError(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, models.RenderResponse{
		Success: true,
		Tree:    s.renderer.Render(req.ComponentType, req.ComponentCode),
	})
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"agents":  s.registry.Agents(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.cache == nil {
		s.errs.HandleRequestError(w, r, apperrors.NewHistoryUnavailableError(
			fmt.Errorf("history store not configured")))
		return
	}

	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		sessionID = defaultSession
	}

	raw, err := s.cache.Range(r.Context(), historyKey(sessionID), s.cfg.Cache.HistoryMaxSize)
	if err != nil {
		s.errs.HandleRequestError(w, r, apperrors.NewHistoryUnavailableError(err))
		return
	}

	entries := make([]models.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry models.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"history": entries,
	})
}

// validateComponents drops envelopes that fail schema validation.
func (s *Server) validateComponents(agentName string, components []models.GeneratedComponent) []models.GeneratedComponent {
	valid := components[:0]
	for _, c := range components {
		result, err := s.validator.Validate(c)
		if err != nil || !result.Valid {
			metrics.ComponentsDropped.WithLabelValues(agentName).Inc()
			fields := map[string]interface{}{"componentId": c.ID, "componentType": c.ComponentType}
			if result != nil {
				fields["errors"] = result.GetErrorMessages()
			}
			s.logger.Warn("dropping invalid component envelope", fields)
			continue
		}
		valid = append(valid, c)
	}
	return valid
}

func (s *Server) lookupCached(ctx context.Context, query string) (*cachedAnalysis, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, analyzeKey(query))
	if err != nil {
		metrics.CacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}

	var cached cachedAnalysis
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		metrics.CacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.CacheHits.WithLabelValues("hit").Inc()
	return &cached, true
}

func (s *Server) storeCached(ctx context.Context, query string, result *cachedAnalysis) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	ttl := config.GetDuration(s.cfg.Cache.ResponseTTL)
	if err := s.cache.Set(ctx, analyzeKey(query), raw, ttl); err != nil {
		s.logger.Warn("failed to cache analyze result", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// recordHistory is best effort: a missing store never fails the request.
func (s *Server) recordHistory(ctx context.Context, req models.AnalyzeRequest, agentName string) {
	if s.cache == nil {
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = defaultSession
	}

	entry, err := json.Marshal(models.HistoryEntry{
		Query:     req.Query,
		SessionID: sessionID,
		AgentName: agentName,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return
	}

	if err := s.cache.PushCapped(ctx, historyKey(sessionID), entry, s.cfg.Cache.HistoryMaxSize); err != nil {
		s.logger.Warn("failed to record query history", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func analyzeKey(query string) string {
	return "analyze:" + strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

func historyKey(sessionID string) string {
	return "history:" + sessionID
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
