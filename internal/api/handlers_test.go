package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulful-academy/chakra-report/internal/content"
	reporterrors "github.com/soulful-academy/chakra-report/internal/errors"
	"github.com/soulful-academy/chakra-report/internal/logging"
	"github.com/soulful-academy/chakra-report/internal/models"
	"github.com/soulful-academy/chakra-report/internal/notifications"
	"github.com/soulful-academy/chakra-report/internal/reports"
	"github.com/soulful-academy/chakra-report/pkg/reporting"
)

type recordingSender struct {
	msgs []notifications.Message
}

func (s *recordingSender) SendReport(_ context.Context, msg notifications.Message) error {
	s.msgs = append(s.msgs, msg)
	return nil
}

func newTestHandler(t *testing.T, opts reports.Options) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	RegisterRoutes(mux, &Deps{
		Service:        reports.NewService(opts),
		DefaultVariant: reporting.VariantFull,
		Version:        "test",
	})
	return RequestIDMiddleware(logging.New("api", logging.WithWriter(io.Discard)), mux)
}

func recordJSON(t *testing.T, rec *models.Record) []byte {
	t.Helper()
	raw, err := json.Marshal(rec)
	require.NoError(t, err)
	return raw
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(dst))
}

func TestHandleCreateReport_ReturnsPDF(t *testing.T) {
	h := newTestHandler(t, reports.Options{})

	rec := models.NewRecord("Asha")
	rec.SetStatus(models.ChakraHeart, models.StatusOveractive)

	req := httptest.NewRequest(http.MethodPost, "/api/reports?variant=aura", bytes.NewReader(recordJSON(t, rec)))
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Asha_aura_chakra_report.pdf"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "req-123", rr.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, rr.Header().Get("X-Report-ID"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))
}

func TestHandleCreateReport_Errors(t *testing.T) {
	h := newTestHandler(t, reports.Options{})

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		want   string
	}{
		{
			name:   "blank client name",
			method: http.MethodPost,
			target: "/api/reports",
			body:   string(recordJSON(t, models.NewRecord(""))),
			status: http.StatusBadRequest,
			want:   "please enter client name",
		},
		{
			name:   "unknown variant",
			method: http.MethodPost,
			target: "/api/reports?variant=tarot",
			body:   string(recordJSON(t, models.NewRecord("Asha"))),
			status: http.StatusBadRequest,
			want:   "unknown report variant",
		},
		{
			name:   "bad json",
			method: http.MethodPost,
			target: "/api/reports",
			body:   "{",
			status: http.StatusBadRequest,
			want:   "invalid JSON body",
		},
		{
			name:   "missing chakras",
			method: http.MethodPost,
			target: "/api/reports",
			body:   `{"client_name":"Asha"}`,
			status: http.StatusBadRequest,
			want:   "chakra assessment missing",
		},
		{
			name:   "wrong method",
			method: http.MethodGet,
			target: "/api/reports",
			status: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			if tt.want != "" {
				var body map[string]string
				decodeBody(t, rr, &body)
				assert.Contains(t, body["error"], tt.want)
			}
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		message  string
		loggedAs string
	}{
		{
			name:    "validation",
			err:     reporterrors.WrapValidationError("validate_record", reporterrors.ErrMissingClientName),
			status:  http.StatusBadRequest,
			message: "please enter client name",
		},
		{
			name:     "external",
			err:      reporterrors.WrapExternalError("email.send", errors.New("connection refused")),
			status:   http.StatusBadGateway,
			message:  "connection refused",
			loggedAs: "external",
		},
		{
			name:     "render",
			err:      reporterrors.WrapRenderError("render", errors.New("font missing")),
			status:   http.StatusInternalServerError,
			message:  "font missing",
			loggedAs: "render",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			h := RequestIDMiddleware(logging.New("api", logging.WithWriter(&logs)), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeServiceError(w, r, tt.err)
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
			req.Header.Set("X-Request-ID", "req-9")
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			var body map[string]string
			decodeBody(t, rr, &body)
			assert.Equal(t, tt.message, body["error"])

			if tt.loggedAs == "" {
				assert.NotContains(t, logs.String(), "Report request failed")
				return
			}
			var event map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(strings.Split(strings.TrimSpace(logs.String()), "\n")[0]), &event))
			assert.Equal(t, "api", event["component"])
			assert.Equal(t, "req-9", event["request_id"])
			assert.Equal(t, tt.loggedAs, event["error_type"])
		})
	}
}

func TestHandleEmailReport(t *testing.T) {
	t.Run("not configured returns warning", func(t *testing.T) {
		h := newTestHandler(t, reports.Options{})

		payload := map[string]interface{}{
			"record": models.NewRecord("Asha"),
			"to":     "asha@example.com",
		}
		raw, err := json.Marshal(payload)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/reports/email", bytes.NewReader(raw)))

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var resp emailReportResponse
		decodeBody(t, rr, &resp)
		assert.False(t, resp.Emailed)
		assert.Equal(t, []string{reports.WarningEmailNotConfigured}, resp.Warnings)
		assert.Equal(t, "Asha_chakra_report.pdf", resp.Filename)
	})

	t.Run("sends with variant and subject", func(t *testing.T) {
		sender := &recordingSender{}
		h := newTestHandler(t, reports.Options{Mailer: sender})

		payload := map[string]interface{}{
			"record":  models.NewRecord("Asha"),
			"variant": "aura",
			"to":      "asha@example.com",
			"subject": "Your reading",
			"body":    "See attached.",
		}
		raw, err := json.Marshal(payload)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/reports/email", bytes.NewReader(raw)))

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var resp emailReportResponse
		decodeBody(t, rr, &resp)
		assert.True(t, resp.Emailed)
		assert.Empty(t, resp.Warnings)

		require.Len(t, sender.msgs, 1)
		assert.Equal(t, "Your reading", sender.msgs[0].Subject)
		assert.Equal(t, "Asha_aura_chakra_report.pdf", sender.msgs[0].Attachments[0].Filename)
	})

	t.Run("bad recipient rejected before rendering", func(t *testing.T) {
		renders := 0
		h := newTestHandler(t, reports.Options{
			Mailer: &recordingSender{},
			NewEngine: func(string) reporting.Engine {
				renders++
				return reporting.NewPDFGenerator("")
			},
		})

		for _, to := range []string{"", "not an address"} {
			payload := map[string]interface{}{
				"record": models.NewRecord("Asha"),
				"to":     to,
			}
			raw, err := json.Marshal(payload)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/reports/email", bytes.NewReader(raw)))

			assert.Equal(t, http.StatusBadRequest, rr.Code, to)
			var body map[string]string
			decodeBody(t, rr, &body)
			assert.NotEmpty(t, body["error"])
		}
		assert.Zero(t, renders)
	})

		t.Run("missing record", func(t *testing.T) {
		h := newTestHandler(t, reports.Options{})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/reports/email", strings.NewReader(`{"to":"a@b.c"}`)))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleContent(t *testing.T) {
	h := newTestHandler(t, reports.Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/content?chakra=Throat+(Vishuddha)&status=Slightly+Weak", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp contentResponse
	decodeBody(t, rr, &resp)
	want := content.Resolve(models.ChakraThroat, models.StatusWeak)
	assert.Equal(t, want, resp.Fields)
	assert.Equal(t, content.Explanation(models.ChakraThroat), resp.Explanation)

	for _, target := range []string{"/api/content?chakra=Spleen", "/api/content?chakra=Throat+(Vishuddha)&status=Glowing"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
}

func TestHandleStatusChange(t *testing.T) {
	h := newTestHandler(t, reports.Options{})

	oldFields := content.Resolve(models.ChakraRoot, models.StatusBalanced)
	body, err := json.Marshal(statusChangeRequest{
		Chakra:    models.ChakraRoot,
		NewStatus: models.StatusBlocked,
		OldStatus: models.StatusBalanced,
		Current: content.Fields{
			Notes:    oldFields.Notes,
			Remedies: "Coach's own remedy",
			Crystals: "",
		},
	})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/content/status-change", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got content.Fields
	decodeBody(t, rr, &got)
	blocked := content.Resolve(models.ChakraRoot, models.StatusBlocked)
	assert.Equal(t, blocked.Notes, got.Notes)
	assert.Equal(t, "Coach's own remedy", got.Remedies)
	assert.Equal(t, blocked.Crystals, got.Crystals)
}

func TestHandleOptionsAndHealth(t *testing.T) {
	h := newTestHandler(t, reports.Options{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/options", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var opts optionsResponse
	decodeBody(t, rr, &opts)
	assert.Equal(t, models.Chakras, opts.Chakras)
	assert.Len(t, opts.Statuses, 4)
	assert.Len(t, opts.AuraColors, 7)
	assert.Len(t, opts.Variants, 3)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))

	now = now.Add(61 * time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		rl.Allow(fmt.Sprintf("198.51.100.%d", i))
	}
	assert.Equal(t, 100, rl.tracked())

	now = now.Add(2 * time.Minute)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.Equal(t, 1, rl.tracked())
}

func TestRateLimiter_IgnoresForwardedForByDefault(t *testing.T) {
	h := newTestHandler(t, reports.Options{})

	// The default limit is 30 renders per minute; rotating the header must
	// not buy extra requests from the same peer.
	limited := false
	for i := 0; i < 40; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader("{"))
		req.RemoteAddr = "192.0.2.50:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	assert.True(t, limited)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	assert.Equal(t, "192.0.2.10", clientIP(req, false))
	assert.Equal(t, "192.0.2.10", clientIP(req, true))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "192.0.2.10", clientIP(req, false))
	assert.Equal(t, "203.0.113.7", clientIP(req, true))
}
