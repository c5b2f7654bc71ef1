package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/store"
)

func (ts *testServer) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := ts.do(postForm("/admin/login", url.Values{"username": {"admin"}, "password": {"s3cret"}}))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookie {
			return c
		}
	}
	t.Fatal("no admin cookie set")
	return nil
}

func (ts *testServer) asAdmin(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(ts.login(t))
	return ts.do(req)
}

func TestAdminRequiresLogin(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/admin/dashboard", "/admin/api/stats", "/admin/messages"} {
		w := ts.get(path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: adminCookie, Value: "forged"})
	assert.Equal(t, http.StatusFound, ts.do(req).Code)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(postForm("/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Empty(t, w.Result().Cookies())
}

func TestAdminDashboardAndStats(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, ts.store.RecordVisit(ctx, store.Visit{IP: "192.0.2.1", Path: "/"}))
	_, err := ts.store.SaveMessage(ctx, "Ada", "ada@example.com", "Hello")
	require.NoError(t, err)

	w := ts.asAdmin(t, http.MethodGet, "/admin/dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dashboard")
	assert.Contains(t, w.Body.String(), "ada@example.com")

	w = ts.asAdmin(t, http.MethodGet, "/admin/api/stats")
	require.Equal(t, http.StatusOK, w.Code)
	var stats store.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats.TotalVisitors)
	assert.EqualValues(t, 1, stats.TotalMessages)

	w = ts.asAdmin(t, http.MethodGet, "/admin/export/stats")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=admin-stats.json", w.Header().Get("Content-Disposition"))
}

func TestAdminPages(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, ts.store.RecordVisit(ctx, store.Visit{IP: "192.0.2.1", UserAgent: "curl/8", Path: "/"}))
	_, err := ts.store.SaveMessage(ctx, "Grace", "grace@example.com", "Hi <b>there</b>")
	require.NoError(t, err)

	w := ts.asAdmin(t, http.MethodGet, "/admin/visitors")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ts.store.HashIP("192.0.2.1"))
	assert.NotContains(t, w.Body.String(), "192.0.2.1")

	w = ts.asAdmin(t, http.MethodGet, "/admin/messages")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hi &lt;b&gt;there&lt;/b&gt;")
}

func TestAdminDeleteMessage(t *testing.T) {
	ts := newTestServer(t)
	msg, err := ts.store.SaveMessage(context.Background(), "Ada", "ada@example.com", "Hello")
	require.NoError(t, err)

	path := fmt.Sprintf("/admin/messages/%d", msg.ID)
	assert.Equal(t, http.StatusOK, ts.asAdmin(t, http.MethodDelete, path).Code)
	assert.Equal(t, http.StatusNotFound, ts.asAdmin(t, http.MethodDelete, path).Code)
	assert.Equal(t, http.StatusBadRequest, ts.asAdmin(t, http.MethodDelete, "/admin/messages/abc").Code)
}

func TestAdminPrivacyCleanup(t *testing.T) {
	ts := newTestServer(t)

	w := ts.asAdmin(t, http.MethodPost, "/admin/privacy/cleanup")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":0}`, w.Body.String())
}

func TestAdminLogout(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get("/admin/logout")
	assert.Equal(t, http.StatusFound, w.Code)
	require.NotEmpty(t, w.Result().Cookies())
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)
}

func TestPrivacyPage(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get("/privacy")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Privacy Policy")
	assert.Contains(t, w.Body.String(), "24h0m0s")
}
