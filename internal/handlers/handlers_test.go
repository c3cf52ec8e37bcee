package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hallwaymonitor/internal/config"
	"hallwaymonitor/internal/detect"
	"hallwaymonitor/internal/logger"
	"hallwaymonitor/internal/models"
	"hallwaymonitor/internal/settings"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.NewLogger(t.TempDir())
}

// fakeSessionRepo is an in-memory repository.SessionRepository.
type fakeSessionRepo struct {
	logs []models.SessionLog
	err  error
}

func (f *fakeSessionRepo) Insert(log *models.SessionLog) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.logs = append(f.logs, *log)
	return int64(len(f.logs)), nil
}

func (f *fakeSessionRepo) GetAll() ([]models.SessionLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.logs, nil
}

func (f *fakeSessionRepo) DeleteAll() error {
	if f.err != nil {
		return f.err
	}
	f.logs = nil
	return nil
}

func TestSettingsHandler_Get(t *testing.T) {
	store := settings.NewStore(settings.Values{ZoneFraction: 0.6, AlertThreshold: 3})
	handler := SettingsHandler(store, testLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d", rec.Code)
	}

	var vals settings.Values
	if err := json.NewDecoder(rec.Body).Decode(&vals); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if vals.ZoneFraction != 0.6 || vals.AlertThreshold != 3 {
		t.Errorf("Response = %+v", vals)
	}
}

func TestSettingsHandler_PostUpdatesStore(t *testing.T) {
	store := settings.NewStore(settings.Values{ZoneFraction: 0.5, AlertThreshold: 4})
	handler := SettingsHandler(store, testLogger(t))

	body := strings.NewReader(`{"zoneFraction": 0.8, "alertThreshold": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/settings", body)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d", rec.Code)
	}

	got := store.Get()
	if got.ZoneFraction != 0.8 || got.AlertThreshold != 2 {
		t.Errorf("Store after update = %+v", got)
	}
}

func TestSettingsHandler_PostClampsFraction(t *testing.T) {
	store := settings.NewStore(settings.Values{ZoneFraction: 0.5, AlertThreshold: 4})
	handler := SettingsHandler(store, testLogger(t))

	body := strings.NewReader(`{"zoneFraction": 9.0, "alertThreshold": 4}`)
	req := httptest.NewRequest(http.MethodPost, "/api/settings", body)
	rec := httptest.NewRecorder()
	handler(rec, req)

	var vals settings.Values
	if err := json.NewDecoder(rec.Body).Decode(&vals); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if vals.ZoneFraction != 1.0 {
		t.Errorf("Fraction not clamped: %v", vals.ZoneFraction)
	}
}

func TestSettingsHandler_BadPayload(t *testing.T) {
	store := settings.NewStore(settings.Values{ZoneFraction: 0.5, AlertThreshold: 4})
	handler := SettingsHandler(store, testLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/settings", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, expected 400", rec.Code)
	}
	if got := store.Get(); got.ZoneFraction != 0.5 {
		t.Errorf("Bad payload mutated store: %+v", got)
	}
}

func TestGetSessionsHandler(t *testing.T) {
	repo := &fakeSessionRepo{logs: []models.SessionLog{
		{ID: 1, Title: "clip.mp4", ExitCount: 3},
	}}
	handler := GetSessionsHandler(repo, testLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d", rec.Code)
	}

	var logs []models.SessionLog
	if err := json.NewDecoder(rec.Body).Decode(&logs); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(logs) != 1 || logs[0].Title != "clip.mp4" {
		t.Errorf("Response = %+v", logs)
	}
}

func TestGetSessionsHandler_EmptyIsArray(t *testing.T) {
	handler := GetSessionsHandler(&fakeSessionRepo{}, testLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("Empty list serialized as %q, expected []", body)
	}
}

func TestClearSessionsHandler(t *testing.T) {
	repo := &fakeSessionRepo{logs: []models.SessionLog{{ID: 1, Title: "clip.mp4"}}}
	handler := ClearSessionsHandler(repo, testLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/clear", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Status = %d", rec.Code)
	}
	if len(repo.logs) != 0 {
		t.Errorf("Sessions not cleared: %d left", len(repo.logs))
	}
}

func TestClearSessionsHandler_GetRejected(t *testing.T) {
	handler := ClearSessionsHandler(&fakeSessionRepo{}, testLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/clear", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Status = %d, expected 405", rec.Code)
	}
}

func noDetector() (detect.DetectorTracker, error) {
	return nil, errors.New("no detector in tests")
}

func TestUploadFeedHandler_RejectsBadFilenames(t *testing.T) {
	store := settings.NewStore(settings.Values{ZoneFraction: 0.5, AlertThreshold: 4})
	handler := UploadFeedHandler(noDetector, store, nil, &fakeSessionRepo{}, testLogger(t), t.TempDir())

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"missing file", "", http.StatusBadRequest},
		{"path traversal", "file=..%2Fsecret.mp4", http.StatusBadRequest},
		{"nested path", "file=sub%2Fclip.mp4", http.StatusBadRequest},
		{"unknown file", "file=missing.mp4", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/feed/upload?"+tt.query, nil)
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.expected {
				t.Errorf("Status = %d, expected %d", rec.Code, tt.expected)
			}
		})
	}
}

func TestUploadVideoHandler_GetRejected(t *testing.T) {
	handler := UploadVideoHandler(t.TempDir(), testLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/api/upload", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Status = %d, expected 405", rec.Code)
	}
}

func TestListUploadsHandler_MissingDirIsEmptyList(t *testing.T) {
	handler := ListUploadsHandler("/nonexistent/uploads", testLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/api/uploads", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("Response = %q, expected []", body)
	}
}

func TestLoginHandler(t *testing.T) {
	cfg := &config.Config{Password: "secret"}
	handler := LoginHandler(cfg, testLogger(t))

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("password=wrong"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		handler(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Status = %d, expected 401", rec.Code)
		}
	})

	t.Run("correct password sets cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("password=secret"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		handler(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("Status = %d, expected 303", rec.Code)
		}

		found := false
		for _, c := range rec.Result().Cookies() {
			if c.Name == "authenticated" && c.Value == "true" {
				found = true
			}
		}
		if !found {
			t.Error("authenticated cookie not set")
		}
	})
}
