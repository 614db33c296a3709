package transport

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/haukened/tubegate/internal/block/common/urlx"
	"github.com/haukened/tubegate/internal/block/domain"
	"github.com/haukened/tubegate/internal/block/gateways/contract"
	"github.com/haukened/tubegate/internal/block/services/blockpage"
)

// evaluateRequest is the enforcement-point payload. ContentText is optional;
// when absent, content-keyword rules do not fire.
type evaluateRequest struct {
	URL         string `json:"url"`
	ContentText string `json:"contentText,omitempty"`
}

type evaluateResponse struct {
	Blocked  bool   `json:"blocked"`
	Location string `json:"location,omitempty"`
}

// handleEvaluate runs the blocking pipeline for one navigation event.
// Allowed navigations answer 204 with no body.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	event, err := domain.NewNavigationEvent(req.URL, req.ContentText)
	if err != nil {
		http.Error(w, "invalid url", http.StatusBadRequest)
		return
	}

	decision := s.evaluator.Evaluate(event, s.clk.Now())
	if decision == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, evaluateResponse{
		Blocked:  true,
		Location: "/blocked?" + contract.Encode(*decision).Encode(),
	})
}

// handleBlocked renders the block page from the query-encoded verdict.
// Decoding is total, so a mangled query still renders a sensible page.
func (s *Server) handleBlocked(w http.ResponseWriter, r *http.Request) {
	d := contract.Decode(r.URL.Query())
	if d.Type == domain.BlockChannel && d.ChannelName == contract.DefaultChannelName {
		// older callers omit the channel name; fall back to the URL handle
		if handle := urlx.ChannelHandle(d.BlockedURL); handle != "" {
			d.ChannelName = handle
		}
	}

	data := blockedPageData{
		Message:  blockpage.ComposeMessage(d),
		HomeURL:  s.homeURL,
		GoesHome: domain.ActionFor(d.Type) == domain.NavigateHome,
	}
	if d.Type == domain.BlockQuick {
		data.Countdown = domain.Remaining(d.QuickEndsAt, s.clk.Now()).Display()
		// a zero instant means the encoded end time was missing or
		// malformed; the page renders it as already expired
		if !d.QuickEndsAt.IsZero() {
			data.EndsAtUnixMs = d.QuickEndsAt.UnixMilli()
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := blockedPageTmpl.Execute(w, data); err != nil {
		s.logger.Error(map[string]any{
			"error": err.Error(),
		}, "Failed to render blocked page")
	}
}

type countdownResponse struct {
	Countdown string `json:"countdown"`
	Expired   bool   `json:"expired"`
}

// handleCountdown recomputes the remaining-time display for a quick block.
// The page script polls it once per second until the terminal expired state.
// The end-time parameter uses the same guard as the contract decode: any
// unparsable or non-positive value reads as already expired.
func (s *Server) handleCountdown(w http.ResponseWriter, r *http.Request) {
	var endsAt time.Time
	if ms, err := strconv.ParseInt(r.URL.Query().Get(contract.KeyQuickEndTime), 10, 64); err == nil && ms > 0 {
		endsAt = time.UnixMilli(ms)
	}
	cd := domain.Remaining(endsAt, s.clk.Now())
	writeJSON(w, http.StatusOK, countdownResponse{Countdown: cd.Display(), Expired: cd.Expired})
}

// handleNavHome acknowledges a home-redirect dismissal and tells the caller
// where home is.
func (s *Server) handleNavHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"redirect": s.homeURL})
}

// handleRefresh reloads the rule snapshot from the settings store. Failures
// leave the previous snapshot serving.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.refresher.Refresh(r.Context()); err != nil {
		http.Error(w, "refresh failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	// keep query ampersands literal in the location field
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
