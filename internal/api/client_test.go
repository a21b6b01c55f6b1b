package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/keydesk/keydesk/internal/errors"
	"github.com/keydesk/keydesk/internal/logging"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, staticToken(token), logging.Discard())
}

func TestListSendsCredentialAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		if r.Method != http.MethodGet || r.URL.Path != "/api/key-assignments/" {
			t.Errorf("got %s %s, want GET /api/key-assignments/", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`[]`))
	}, "abc")

	assignments, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(assignments) != 0 {
		t.Errorf("List() = %v, want empty", assignments)
	}
	if gotAuth != "Token abc" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Token abc")
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestListWithoutTokenSendsNoAuthorization(t *testing.T) {
	var gotAuth string
	sent := false

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		sent = true
		w.WriteHeader(http.StatusUnauthorized)
	}, "")

	_, err := c.List(context.Background())
	if err == nil {
		t.Fatal("List() error = nil, want unauthorized error")
	}
	if !sent {
		t.Fatal("request never reached the server")
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
	if !errors.Is(err, errors.ErrUnauthorized) {
		t.Errorf("Is(err, ErrUnauthorized) = false, err = %v", err)
	}
}

func TestListParsesCollection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":1,"staff_id":"S1","key_id":"K1","status":"Issued","issue_time":"2024-03-01T09:00:00Z"},
			{"id":2,"staff_id":"S2","key_id":"K2","status":"Returned","issue_time":"2024-03-01T09:00:00Z","return_time":"2024-03-01T11:00:00Z"}
		]`))
	}, "abc")

	assignments, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(assignments) != 2 {
		t.Fatalf("List() returned %d assignments, want 2", len(assignments))
	}
	if assignments[0].Status != StatusIssued || assignments[1].Status != StatusReturned {
		t.Errorf("statuses = %q, %q", assignments[0].Status, assignments[1].Status)
	}
	if assignments[1].ReturnTime == nil {
		t.Error("returned assignment has nil ReturnTime")
	}
}

func TestIssuePostsRecord(t *testing.T) {
	var gotBody map[string]string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/key-assignments/" {
			t.Errorf("got %s %s, want POST /api/key-assignments/", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"staff_id":"S1","key_id":"K1","status":"Issued","issue_time":"2024-03-01T09:00:00Z"}`))
	}, "abc")

	created, err := c.Issue(context.Background(), "S1", "K1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	want := map[string]string{"staff_id": "S1", "key_id": "K1", "status": "Issued"}
	for k, v := range want {
		if gotBody[k] != v {
			t.Errorf("request body %s = %q, want %q", k, gotBody[k], v)
		}
	}
	if created.ID != 1 || created.Status != StatusIssued {
		t.Errorf("created = %+v, want id=1 Issued", created)
	}
}

func TestIssueRejectsEmptyFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent despite empty field")
	}, "abc")

	if _, err := c.Issue(context.Background(), "", "K1"); !errors.Is(err, errors.ErrEmptyField) {
		t.Errorf("Issue with empty staff id: err = %v, want ErrEmptyField", err)
	}
	if _, err := c.Issue(context.Background(), "S1", ""); !errors.Is(err, errors.ErrEmptyField) {
		t.Errorf("Issue with empty key id: err = %v, want ErrEmptyField", err)
	}
}

func TestReturnPatchesRecord(t *testing.T) {
	returnTime := time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC)
	var gotBody map[string]string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/key-assignments/7/" {
			t.Errorf("got %s %s, want PATCH /api/key-assignments/7/", r.Method, r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		_, _ = w.Write([]byte(`{"id":7,"staff_id":"S1","key_id":"K1","status":"Returned","issue_time":"2024-03-01T09:00:00Z","return_time":"2024-03-01T17:30:00Z"}`))
	}, "abc")

	updated, err := c.Return(context.Background(), 7, returnTime)
	if err != nil {
		t.Fatalf("Return() error = %v", err)
	}

	if gotBody["status"] != "Returned" {
		t.Errorf("request body status = %q, want Returned", gotBody["status"])
	}
	if gotBody["return_time"] != "2024-03-01T17:30:00Z" {
		t.Errorf("request body return_time = %q, want RFC 3339 UTC", gotBody["return_time"])
	}
	if updated.Status != StatusReturned || updated.ReturnTime == nil {
		t.Errorf("updated = %+v, want Returned with return_time", updated)
	}
}

func TestLoginExchangesCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api-token-auth/" {
			t.Errorf("got %s %s, want POST /api-token-auth/", r.Method, r.URL.Path)
		}
		var body map[string]string
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		if body["username"] != "admin" || body["password"] != "hunter2" {
			t.Errorf("credentials = %v", body)
		}
		_, _ = w.Write([]byte(`{"token":"abc"}`))
	}, "")

	token, err := c.Login(context.Background(), "admin", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token != "abc" {
		t.Errorf("Login() = %q, want %q", token, "abc")
	}
}

func TestLoginFailureIsLoginError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}, "")

	_, err := c.Login(context.Background(), "admin", "wrong")
	if err == nil {
		t.Fatal("Login() error = nil, want failure")
	}

	var apiErr *errors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not an APIError", err)
	}
	if apiErr.Op != errors.OpLogin {
		t.Errorf("Op = %q, want %q", apiErr.Op, errors.OpLogin)
	}
	if got := errors.UserMessage(err); got != "Login failed. Check your credentials." {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestServerErrorBecomesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "abc")

	_, err := c.List(context.Background())
	if err == nil {
		t.Fatal("List() error = nil, want server error")
	}

	var apiErr *errors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not an APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
	if apiErr.Op != errors.OpList {
		t.Errorf("Op = %q, want %q", apiErr.Op, errors.OpList)
	}
}

func TestNetworkFailureBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, time.Second, staticToken("abc"), logging.Discard())
	_, err := c.List(context.Background())
	if err == nil {
		t.Fatal("List() error = nil, want transport failure")
	}

	var apiErr *errors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not an APIError", err)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d for transport failure, want 0", apiErr.StatusCode)
	}
}
