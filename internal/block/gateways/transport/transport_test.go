package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/tubegate/internal/block/common/clock"
	"github.com/haukened/tubegate/internal/block/common/log"
	"github.com/haukened/tubegate/internal/block/domain"
	"github.com/haukened/tubegate/internal/block/gateways/contract"
)

type stubEvaluator struct {
	decision *domain.BlockDecision
	lastURL  string
}

func (s *stubEvaluator) Evaluate(event domain.NavigationEvent, now time.Time) *domain.BlockDecision {
	s.lastURL = event.URL
	return s.decision
}

type stubRefresher struct {
	err   error
	calls int
}

func (s *stubRefresher) Refresh(ctx context.Context) error {
	s.calls++
	return s.err
}

func newTestServer(eval Evaluator, ref Refresher, clk clock.Clock) *Server {
	if clk == nil {
		clk = &clock.MockClock{CurrentTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	}
	return NewServer(Options{
		Addr:      "127.0.0.1:0",
		HomeURL:   "https://www.youtube.com/",
		Evaluator: eval,
		Refresher: ref,
		Clock:     clk,
		Logger:    log.NewNoopLogger(),
	})
}

func TestEvaluate_Allowed(t *testing.T) {
	eval := &stubEvaluator{}
	srv := newTestServer(eval, &stubRefresher{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/evaluate", strings.NewReader(`{"url":"https://example.com/watch"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://example.com/watch", eval.lastURL)
	assert.Empty(t, rec.Body.String())
}

func TestEvaluate_BlockedReturnsContractLocation(t *testing.T) {
	d := domain.NewPermanentDecision("https://example.com/watch", domain.MatchDomain, "example.com")
	srv := newTestServer(&stubEvaluator{decision: &d}, &stubRefresher{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/evaluate", strings.NewReader(`{"url":"https://example.com/watch"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"blocked":true`)

	// the location must round-trip through the contract
	loc, err := url.Parse(extractLocation(t, body))
	require.NoError(t, err)
	assert.Equal(t, "/blocked", loc.Path)
	decoded := contract.Decode(loc.Query())
	assert.Equal(t, domain.BlockPermanent, decoded.Type)
	assert.Equal(t, "example.com", decoded.MatchedValue)
}

func extractLocation(t *testing.T, body string) string {
	t.Helper()
	const marker = `"location":"`
	i := strings.Index(body, marker)
	require.GreaterOrEqual(t, i, 0, "response must carry a location")
	rest := body[i+len(marker):]
	end := strings.Index(rest, `"`)
	require.GreaterOrEqual(t, end, 0)
	return rest[:end]
}

func TestEvaluate_BadRequests(t *testing.T) {
	srv := newTestServer(&stubEvaluator{}, &stubRefresher{}, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{`},
		{name: "url without host", body: `{"url":"not a url"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/evaluate", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestBlocked_RendersQuickCountdown(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := &clock.MockClock{CurrentTime: now}
	srv := newTestServer(&stubEvaluator{}, &stubRefresher{}, clk)

	d := domain.NewQuickDecision("https://example.com/", domain.MatchDomain, "example.com", now.Add(61*time.Second))
	req := httptest.NewRequest(http.MethodGet, "/blocked?"+contract.Encode(d).Encode(), nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "A quick block is active.")
	assert.Contains(t, body, "1m 1s")
	assert.Contains(t, body, "Go back", "quick blocks dismiss via history-back")

	// the page carries the end instant and the refresh script that polls
	// the countdown endpoint until expiry
	assert.Contains(t, body, fmt.Sprintf(`data-ends-at="%d"`, d.QuickEndsAt.UnixMilli()))
	assert.Contains(t, body, "/countdown?quickBlockEndTime=")
}

func TestBlocked_QuickWithoutEndTimeRendersExpired(t *testing.T) {
	srv := newTestServer(&stubEvaluator{}, &stubRefresher{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/blocked?blockType=quick", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "expired")
	assert.Contains(t, body, `data-ends-at="0"`, "a missing end time must not leak a negative instant")
}

func TestCountdownEndpoint(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := &clock.MockClock{CurrentTime: now}
	srv := newTestServer(&stubEvaluator{}, &stubRefresher{}, clk)

	tests := []struct {
		name        string
		query       string
		wantText    string
		wantExpired bool
	}{
		{
			name:     "active",
			query:    "quickBlockEndTime=" + strconv.FormatInt(now.Add(61*time.Second).UnixMilli(), 10),
			wantText: "1m 1s",
		},
		{
			name:        "past end time",
			query:       "quickBlockEndTime=" + strconv.FormatInt(now.Add(-time.Minute).UnixMilli(), 10),
			wantText:    "expired",
			wantExpired: true,
		},
		{
			name:        "malformed end time",
			query:       "quickBlockEndTime=soon",
			wantText:    "expired",
			wantExpired: true,
		},
		{
			name:        "missing end time",
			query:       "",
			wantText:    "expired",
			wantExpired: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/countdown?"+tc.query, nil)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var got countdownResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tc.wantText, got.Countdown)
			assert.Equal(t, tc.wantExpired, got.Expired)
		})
	}
}

func TestBlocked_MangledQueryStillRenders(t *testing.T) {
	srv := newTestServer(&stubEvaluator{}, &stubRefresher{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/blocked?blockType=garbage&quickBlockEndTime=soon", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Unknown Channel is blocked.")
	assert.Contains(t, body, "Go home", "channel fallback dismisses to home")
}

func TestBlocked_ChannelNameFallsBackToHandle(t *testing.T) {
	srv := newTestServer(&stubEvaluator{}, &stubRefresher{}, nil)

	q := url.Values{}
	q.Set(contract.KeyBlockType, "channel")
	q.Set(contract.KeyBlockedURL, "https://www.youtube.com/@somecreator/videos")
	req := httptest.NewRequest(http.MethodGet, "/blocked?"+q.Encode(), nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "@somecreator is blocked.")
}

func TestNavHome_AcksWithRedirect(t *testing.T) {
	srv := newTestServer(&stubEvaluator{}, &stubRefresher{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/nav/home", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://www.youtube.com/")
}

func TestRefresh(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ref := &stubRefresher{}
		srv := newTestServer(&stubEvaluator{}, ref, nil)

		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, 1, ref.calls)
	})

	t.Run("failure", func(t *testing.T) {
		ref := &stubRefresher{err: errors.New("store unavailable")}
		srv := newTestServer(&stubEvaluator{}, ref, nil)

		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestServer_StartStop(t *testing.T) {
	srv := newTestServer(&stubEvaluator{}, &stubRefresher{}, nil)

	ctx := context.Background()
	require.NoError(t, srv.Start(ctx))
	assert.Error(t, srv.Start(ctx), "double start must fail")
	assert.NotEqual(t, "127.0.0.1:0", srv.Address(), "address reflects the bound port")

	require.NoError(t, srv.Stop(ctx))
	require.NoError(t, srv.Stop(ctx), "stop is idempotent")
	assert.Equal(t, "127.0.0.1:0", srv.Address())
}

func TestNavClient(t *testing.T) {
	srv := newTestServer(&stubEvaluator{}, &stubRefresher{}, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	nc := NewNavClient(ts.URL, ts.Client(), log.NewNoopLogger())
	assert.NoError(t, nc.Home(context.Background()))
	assert.NoError(t, nc.Back(context.Background()))

	bad := NewNavClient("http://127.0.0.1:1", &http.Client{Timeout: 250 * time.Millisecond}, log.NewNoopLogger())
	assert.Error(t, bad.Home(context.Background()))
}
