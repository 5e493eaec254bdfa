package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promptkeep/go-prompt-backend/internal/domain"
	"github.com/promptkeep/go-prompt-backend/internal/services"
)

func TestGetStats_ReturnsAggregateForUser(t *testing.T) {
	ss := stubStatsSvc{get: func(ctx context.Context, uid string) (*domain.UserStats, error) {
		return &domain.UserStats{
			ID:           "s1",
			UserID:       uid,
			MessageCount: 3,
			Achievements: []domain.Achievement{
				{Name: "First Steps", Category: domain.AchievementUsage, Requirement: 1, Progress: 1, Unlocked: true},
			},
		}, nil
	}}
	h := New(stubPromptSvc{}, stubLicenseSvc{}, ss)
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.Header.Set("X-User-ID", "user-7")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var st domain.UserStats
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("json: %v", err)
	}
	if st.UserID != "user-7" || st.MessageCount != 3 || len(st.Achievements) != 1 {
		t.Fatalf("unexpected aggregate: %+v", st)
	}
	if !st.Achievements[0].Unlocked {
		t.Fatalf("expected unlocked achievement in payload")
	}
}

func TestStatsCounters_RouteToMatchingServiceCall(t *testing.T) {
	var called string
	mk := func(name string) func(context.Context, string) (*domain.UserStats, error) {
		return func(ctx context.Context, uid string) (*domain.UserStats, error) {
			called = name
			return &domain.UserStats{UserID: uid}, nil
		}
	}
	ss := stubStatsSvc{login: mk("login"), message: mk("message"), share: mk("share")}
	h := New(stubPromptSvc{}, stubLicenseSvc{}, ss)
	r := newTestRouter(h)

	cases := []struct {
		path string
		want string
	}{
		{"/stats/login", "login"},
		{"/stats/messages", "message"},
		{"/stats/shares", "share"},
	}
	for _, tc := range cases {
		called = ""
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, tc.path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("POST %s -> %d", tc.path, w.Code)
		}
		if called != tc.want {
			t.Fatalf("POST %s called %q; want %q", tc.path, called, tc.want)
		}
	}
}

func TestStats_StoreUnavailable503(t *testing.T) {
	ss := stubStatsSvc{get: func(ctx context.Context, uid string) (*domain.UserStats, error) {
		return nil, services.ErrStoreUnavailable
	}}
	h := New(stubPromptSvc{}, stubLicenseSvc{}, ss)
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json: %v", err)
	}
	if er.Code != ErrCodeStoreUnavailable {
		t.Fatalf("code=%q, want %q", er.Code, ErrCodeStoreUnavailable)
	}
}

func TestRecordLogin_InternalError500(t *testing.T) {
	ss := stubStatsSvc{login: func(ctx context.Context, uid string) (*domain.UserStats, error) {
		return nil, context.DeadlineExceeded
	}}
	h := New(stubPromptSvc{}, stubLicenseSvc{}, ss)
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stats/login", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
