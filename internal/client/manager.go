package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/api/dto"
	"github.com/spec-kit/user-directory/internal/domain"
	"github.com/spec-kit/user-directory/internal/observability"
)

// requestTimeout is the fixed per-request budget. There are no retries and
// no backoff: a timeout is a terminal failure for that call.
const requestTimeout = 5 * time.Second

// Operation names used for metrics counters.
const (
	opFetchUser  = "fetch_user"
	opUpdateUser = "update_user"
	opClearCache = "clear_cache"
)

// UserManager fronts the remote user-directory API with an in-memory cache.
// The cache is owned exclusively by the manager; fetched records are value
// copies independent of the cached entries.
type UserManager struct {
	cache   *userCache
	client  *http.Client
	baseURL string
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewUserManager builds a manager for the given API base URL. A nil logger
// disables logging; a nil metrics disables counters.
func NewUserManager(baseURL string, logger *zap.Logger, metrics *observability.Metrics) *UserManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserManager{
		cache:   newUserCache(),
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		metrics: metrics,
	}
}

// FetchUser returns the user for id, consulting the cache before the
// network. A nil user with a nil error means the directory has no such
// user: non-2xx responses report absence, not failure.
func (m *UserManager) FetchUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		m.metrics.RecordError(opFetchUser, "not_found")
		return nil, &domain.NotFoundError{ID: id}
	}

	if user, ok := m.cache.get(id); ok {
		m.logger.Info("user found in cache", zap.String("user_id", id))
		m.metrics.RecordOperation(opFetchUser, "hit")
		return user, nil
	}
	m.metrics.RecordOperation(opFetchUser, "miss")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.userURL(id), nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := m.client.Do(req)
	if err != nil {
		m.metrics.RecordError(opFetchUser, "transport")
		return nil, fmt.Errorf("send fetch request: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccessStatus(resp.StatusCode) {
		m.logger.Warn("fetch rejected by directory",
			zap.String("user_id", id),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode))
		m.metrics.RecordOperation(opFetchUser, "absent")
		return nil, nil
	}

	var envelope dto.Envelope[domain.User]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		m.metrics.RecordError(opFetchUser, "decode")
		return nil, fmt.Errorf("decode fetch response: %w", err)
	}

	if !envelope.Success {
		message := "Unknown error"
		if envelope.Error != nil {
			message = *envelope.Error
		}
		m.metrics.RecordError(opFetchUser, "api")
		return nil, &domain.APIError{Message: message}
	}
	if envelope.Data == nil {
		m.metrics.RecordOperation(opFetchUser, "absent")
		return nil, nil
	}

	m.cache.set(id, envelope.Data)
	m.logger.Info("user fetched and cached",
		zap.String("user_id", id),
		zap.String("request_id", requestID))
	m.metrics.RecordOperation(opFetchUser, "fetched")
	return envelope.Data, nil
}

// BatchFetchUsers fetches every id concurrently, one goroutine per id with
// no cap and no ordering. Per-item failures are swallowed: the result holds
// one entry per distinct input id, nil when the fetch failed or the user
// does not exist.
func (m *UserManager) BatchFetchUsers(ctx context.Context, ids []string) map[string]*domain.User {
	results := make(map[string]*domain.User, len(ids))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			user, err := m.FetchUser(ctx, id)
			if err != nil {
				m.logger.Warn("batch fetch item failed", zap.String("user_id", id), zap.Error(err))
				user = nil
			}
			mu.Lock()
			results[id] = user
			mu.Unlock()
		}(id)
	}

	wg.Wait()
	return results
}

// UpdateUser sends the updates map as a PUT. A 2xx response evicts the id
// from the cache and reports true; any other status reports false without
// an error, since a rejected update is an expected business outcome.
func (m *UserManager) UpdateUser(ctx context.Context, id string, updates map[string]any) (bool, error) {
	body, err := json.Marshal(updates)
	if err != nil {
		return false, fmt.Errorf("marshal updates: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, m.userURL(id), bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build update request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := m.client.Do(req)
	if err != nil {
		m.metrics.RecordError(opUpdateUser, "transport")
		return false, fmt.Errorf("send update request: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccessStatus(resp.StatusCode) {
		m.logger.Error("update rejected by directory",
			zap.String("user_id", id),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode))
		m.metrics.RecordOperation(opUpdateUser, "rejected")
		return false, nil
	}

	m.cache.delete(id)
	m.logger.Info("user updated, cache entry evicted",
		zap.String("user_id", id),
		zap.String("request_id", requestID))
	m.metrics.RecordOperation(opUpdateUser, "ok")
	return true, nil
}

// ClearCache empties the cache and returns the number of entries removed.
func (m *UserManager) ClearCache() int {
	count := m.cache.clear()
	m.logger.Info("cache cleared", zap.Int("entries_removed", count))
	m.metrics.RecordOperation(opClearCache, "cleared")
	return count
}

// CacheSize returns the number of users currently cached.
func (m *UserManager) CacheSize() int {
	return m.cache.size()
}

func (m *UserManager) userURL(id string) string {
	return fmt.Sprintf("%s/users/%s", m.baseURL, id)
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code <= 299
}
