package stub

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-directory/internal/api/dto"
	"github.com/spec-kit/user-directory/internal/client"
	"github.com/spec-kit/user-directory/internal/domain"
)

func seedUser(t *testing.T, id, name string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(id, name, "user"+id+"@example.com")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	return user
}

func decodeEnvelope(t *testing.T, resp *http.Response) dto.Envelope[domain.User] {
	t.Helper()
	defer resp.Body.Close()
	var env dto.Envelope[domain.User]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestGetUser(t *testing.T) {
	server := New(nil, []*domain.User{seedUser(t, "1", "Alice")})

	resp, err := server.App().Test(httptest.NewRequest(http.MethodGet, "/users/1", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if !env.Success || env.Data == nil || env.Data.Name != "Alice" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestGetUserUnknown(t *testing.T) {
	server := New(nil, nil)

	resp, err := server.App().Test(httptest.NewRequest(http.MethodGet, "/users/ghost", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if env.Success || env.Error == nil || *env.Error != "user not found" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestGetUserReturnsCopies(t *testing.T) {
	seed := seedUser(t, "1", "Alice")
	server := New(nil, []*domain.User{seed})

	// Mutating the seed after construction must not reach the dataset.
	seed.Name = "Mutated"

	resp, err := server.App().Test(httptest.NewRequest(http.MethodGet, "/users/1", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if env.Data == nil || env.Data.Name != "Alice" {
		t.Errorf("dataset affected by seed mutation: %+v", env.Data)
	}
}

func TestUpdateUser(t *testing.T) {
	server := New(nil, []*domain.User{seedUser(t, "1", "Alice")})

	body, _ := json.Marshal(map[string]any{
		"name":   "Alice B",
		"status": "pending",
		"team":   "core",
	})
	req := httptest.NewRequest(http.MethodPut, "/users/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.App().Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if env.Data == nil {
		t.Fatal("update envelope has no payload")
	}
	if env.Data.Name != "Alice B" {
		t.Errorf("name = %q, want Alice B", env.Data.Name)
	}
	if env.Data.Status != domain.UserStatusPending {
		t.Errorf("status = %q, want pending", env.Data.Status)
	}
	if team, ok := env.Data.GetMetadata("team"); !ok || team != "core" {
		t.Errorf("metadata team = %v, %v", team, ok)
	}

	// The update persists for later reads.
	resp, err = server.App().Test(httptest.NewRequest(http.MethodGet, "/users/1", nil))
	if err != nil {
		t.Fatalf("follow-up request: %v", err)
	}
	env = decodeEnvelope(t, resp)
	if env.Data == nil || env.Data.Name != "Alice B" {
		t.Errorf("follow-up read = %+v", env.Data)
	}
}

func TestUpdateUserIgnoresBadStatusToken(t *testing.T) {
	server := New(nil, []*domain.User{seedUser(t, "1", "Alice")})

	body, _ := json.Marshal(map[string]any{"status": "exploded"})
	req := httptest.NewRequest(http.MethodPut, "/users/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.App().Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if env.Data == nil || env.Data.Status != domain.UserStatusActive {
		t.Errorf("status after bad token = %+v", env.Data)
	}
}

func TestUpdateUserUnknown(t *testing.T) {
	server := New(nil, nil)

	body, _ := json.Marshal(map[string]any{"name": "Nobody"})
	req := httptest.NewRequest(http.MethodPut, "/users/ghost", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.App().Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestLive(t *testing.T) {
	server := New(nil, nil)

	resp, err := server.App().Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestPanicRecovery(t *testing.T) {
	server := New(nil, nil)
	server.App().Get("/boom", func(c *fiber.Ctx) error {
		panic("kaboom")
	})

	resp, err := server.App().Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if env.Success || env.Error == nil || *env.Error != "internal error" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestEchoRequestID(t *testing.T) {
	server := New(nil, []*domain.User{seedUser(t, "1", "Alice")})

	req := httptest.NewRequest(http.MethodGet, "/users/1", nil)
	req.Header.Set("X-Request-Id", "req-1234")

	resp, err := server.App().Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if got := resp.Header.Get("X-Request-Id"); got != "req-1234" {
		t.Errorf("echoed request id = %q, want req-1234", got)
	}
}

func TestManagerAgainstStub(t *testing.T) {
	server := New(nil, []*domain.User{seedUser(t, "1", "Alice"), seedUser(t, "2", "Bob")})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = server.Listener(ln) }()
	t.Cleanup(func() { _ = server.Shutdown() })

	manager := client.NewUserManager("http://"+ln.Addr().String(), nil, nil)
	ctx := context.Background()

	alice, err := manager.FetchUser(ctx, "1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if alice == nil || alice.Name != "Alice" {
		t.Fatalf("fetched user = %v", alice)
	}

	ok, err := manager.UpdateUser(ctx, "1", map[string]any{"name": "Alice B", "status": "inactive"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !ok {
		t.Fatal("update rejected")
	}

	// The update evicted the cache entry, so this fetch sees the stub's
	// new state.
	updated, err := manager.FetchUser(ctx, "1")
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if updated == nil || updated.Name != "Alice B" || updated.Status != domain.UserStatusInactive {
		t.Errorf("refetched user = %v", updated)
	}

	results := manager.BatchFetchUsers(ctx, []string{"1", "2", "ghost"})
	if results["1"] == nil || results["2"] == nil || results["ghost"] != nil {
		t.Errorf("batch results = %v", results)
	}

	if removed := manager.ClearCache(); removed == 0 {
		t.Error("ClearCache removed nothing")
	}

	absent, err := manager.FetchUser(ctx, "ghost")
	if err != nil || absent != nil {
		t.Errorf("absent fetch = %v, %v", absent, err)
	}
}
