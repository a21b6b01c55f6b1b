// Package internal contains integration tests that verify the session gate,
// API client and assignment store work together across a full operator
// workflow: login, issue, return, dashboard fetch, logout.
package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/keydesk/keydesk/internal/api"
	"github.com/keydesk/keydesk/internal/errors"
	"github.com/keydesk/keydesk/internal/logging"
	"github.com/keydesk/keydesk/internal/session"
	"github.com/keydesk/keydesk/internal/store"
)

// fakeService is an in-memory stand-in for the key assignment service.
type fakeService struct {
	mu          sync.Mutex
	nextID      int
	assignments []api.KeyAssignment
	token       string
}

func newFakeService() *fakeService {
	return &fakeService{nextID: 1, token: "integration-token"}
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api-token-auth/", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username != "operator" || creds.Password != "hunter2" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": f.token})
	})

	mux.HandleFunc("/api/key-assignments/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token "+f.token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(f.assignments)

		case http.MethodPost:
			var req struct {
				StaffID string `json:"staff_id"`
				KeyID   string `json:"key_id"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			created := api.KeyAssignment{
				ID:        f.nextID,
				StaffID:   req.StaffID,
				KeyID:     req.KeyID,
				Status:    api.StatusIssued,
				IssueTime: time.Now().UTC(),
			}
			f.nextID++
			f.assignments = append([]api.KeyAssignment{created}, f.assignments...)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(created)
		}
	})

	mux.HandleFunc("PATCH /api/key-assignments/{id}/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token "+f.token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var req struct {
			Status     api.Status `json:"status"`
			ReturnTime string     `json:"return_time"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.assignments {
			if f.assignments[i].ID == id {
				rt, _ := time.Parse(time.RFC3339, req.ReturnTime)
				f.assignments[i].Status = req.Status
				f.assignments[i].ReturnTime = &rt
				_ = json.NewEncoder(w).Encode(f.assignments[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	return mux
}

// TestOperatorWorkflow runs the whole issue/return cycle against the fake
// service, mirroring what the TUI drives: login, fetch, issue, re-fetch,
// return, re-fetch, logout.
func TestOperatorWorkflow(t *testing.T) {
	svc := newFakeService()
	server := httptest.NewServer(svc.handler())
	defer server.Close()

	gate := session.NewGate()
	client := api.NewClient(server.URL, 5*time.Second, gate, logging.Discard())
	st := store.New()
	ctx := t.Context()

	// Unauthenticated fetch must be rejected.
	if _, err := client.List(ctx); !errors.Is(err, errors.ErrUnauthorized) {
		t.Fatalf("unauthenticated List error = %v, want ErrUnauthorized", err)
	}

	// Login.
	token, err := client.Login(ctx, "operator", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	gate.Login(token)
	if !gate.Authenticated() {
		t.Fatal("gate should be authenticated")
	}

	// Initial fetch: empty collection.
	assignments, err := client.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	st.Replace(assignments)
	if st.Len() != 0 {
		t.Fatalf("fresh service should have no assignments, got %d", st.Len())
	}

	// Issue two keys, re-fetching after each as the UI does.
	for _, pair := range [][2]string{{"S100", "K1"}, {"S200", "K2"}} {
		if _, err := client.Issue(ctx, pair[0], pair[1]); err != nil {
			t.Fatalf("Issue(%s, %s): %v", pair[0], pair[1], err)
		}
		assignments, err = client.List(ctx)
		if err != nil {
			t.Fatalf("List after issue: %v", err)
		}
		st.Replace(assignments)
	}

	if got := st.Counts(); got.Total != 2 || got.Issued != 2 {
		t.Fatalf("counts after issuing = %+v", got)
	}

	// Return the first issued key.
	active := st.Active()
	if len(active) != 2 {
		t.Fatalf("active = %d, want 2", len(active))
	}
	if _, err := client.Return(ctx, active[0].ID, time.Now()); err != nil {
		t.Fatalf("Return: %v", err)
	}

	assignments, err = client.List(ctx)
	if err != nil {
		t.Fatalf("List after return: %v", err)
	}
	st.Replace(assignments)

	if got := st.Counts(); got.Total != 2 || got.Issued != 1 || got.Returned != 1 {
		t.Fatalf("counts after return = %+v", got)
	}
	for _, a := range st.Snapshot() {
		if a.Status == api.StatusReturned && a.ReturnTime == nil {
			t.Errorf("returned assignment %d has no return time", a.ID)
		}
	}

	// Search mirrors the dashboard filter.
	if got := st.Filter("S100"); len(got) != 1 {
		t.Errorf("Filter(S100) = %d results, want 1", len(got))
	}

	// Logout invalidates everything client-side.
	epoch := gate.Epoch()
	gate.Logout()
	st.Clear()
	if gate.Authenticated() {
		t.Error("gate should be unauthenticated after logout")
	}
	if gate.Epoch() == epoch {
		t.Error("logout must advance the epoch")
	}
	if _, err := client.List(ctx); !errors.Is(err, errors.ErrUnauthorized) {
		t.Errorf("List after logout error = %v, want ErrUnauthorized", err)
	}
}
