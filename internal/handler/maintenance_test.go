package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeScheduler struct {
	running bool
	err     error
}

func (f *fakeScheduler) Start() error {
	if f.err != nil {
		return f.err
	}
	f.running = true
	return nil
}

func (f *fakeScheduler) Stop() error {
	if f.err != nil {
		return f.err
	}
	f.running = false
	return nil
}

func (f *fakeScheduler) IsRunning() bool { return f.running }

func (f *fakeScheduler) Close() error { return nil }

func postAction(h *MaintenanceHandler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.StartStop(rec, httptest.NewRequest(http.MethodPost, "/maintenance", strings.NewReader(body)))
	return rec
}

func TestMaintenance_StartStop(t *testing.T) {
	sch := &fakeScheduler{}
	h := NewMaintenanceHandler(sch)

	rec := postAction(h, `{"action":"start"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sch.running)
	assert.Contains(t, rec.Body.String(), `"running":true`)

	rec = postAction(h, `{"action":"stop"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sch.running)
	assert.Contains(t, rec.Body.String(), "maintenance stopped")
}

func TestMaintenance_BadRequests(t *testing.T) {
	h := NewMaintenanceHandler(&fakeScheduler{})

	assert.Equal(t, http.StatusBadRequest, postAction(h, `{"action":"pause"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postAction(h, `not json`).Code)
}

func TestMaintenance_Unresponsive(t *testing.T) {
	h := NewMaintenanceHandler(&fakeScheduler{err: assert.AnError})

	assert.Equal(t, http.StatusServiceUnavailable, postAction(h, `{"action":"start"}`).Code)
}

func TestMaintenance_Status(t *testing.T) {
	h := NewMaintenanceHandler(&fakeScheduler{running: true})

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/maintenance", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"running":true`)
}
