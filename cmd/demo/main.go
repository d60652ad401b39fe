package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/api/stub"
	"github.com/spec-kit/user-directory/internal/client"
	"github.com/spec-kit/user-directory/internal/config"
	"github.com/spec-kit/user-directory/internal/domain"
	"github.com/spec-kit/user-directory/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	users := sampleUsers(logger)

	runLocalPasses(users)

	if cfg.Stub.Enabled {
		runDirectoryFlow(cfg, logger, users)
	}
}

// sampleUsers builds the demo dataset: one active user with metadata, one
// pending, one inactive.
func sampleUsers(logger *zap.Logger) []*domain.User {
	john, err := domain.NewUser("1", "John Doe", "john@example.com")
	if err != nil {
		logger.Fatal("create sample user", zap.Error(err))
	}
	jane, err := domain.NewUser("2", "Jane Smith", "jane@example.com")
	if err != nil {
		logger.Fatal("create sample user", zap.Error(err))
	}
	bob, err := domain.NewUser("3", "Bob Johnson", "bob@example.com")
	if err != nil {
		logger.Fatal("create sample user", zap.Error(err))
	}

	jane = jane.WithStatus(domain.UserStatusPending)
	bob = bob.WithStatus(domain.UserStatusInactive)

	john.AddMetadata("last_login", time.Now().UTC().Format(time.RFC3339))
	john.AddMetadata("preferences", map[string]any{"theme": "dark", "language": "en"})

	return []*domain.User{john, jane, bob}
}

// runLocalPasses exercises the pure collection helpers on the sample set.
func runLocalPasses(users []*domain.User) {
	active := domain.FilterUsersByStatus(users, domain.UserStatusActive)
	fmt.Printf("Active users: %d\n", len(active))

	stats := domain.ComputeUserStatistics(users)
	fmt.Printf("User statistics: %s\n", stats)

	for _, user := range users {
		if err := user.Validate(); err != nil {
			fmt.Printf("User %s failed validation: %v\n", user.DisplayName(), err)
			continue
		}
		fmt.Printf("User %s is valid (%s account)\n", user.DisplayName(), user.AgeCategory())
	}

	for _, user := range users {
		fmt.Println(statusMessage(user))
	}

	exported, err := domain.ExportUsersJSON(users)
	if err != nil {
		fmt.Printf("Export failed: %v\n", err)
		return
	}
	fmt.Printf("Exported users:\n%s\n", exported)
}

func statusMessage(user *domain.User) string {
	switch user.Status {
	case domain.UserStatusActive:
		return fmt.Sprintf("%s is currently active", user.DisplayName())
	case domain.UserStatusPending:
		return fmt.Sprintf("%s is awaiting approval", user.DisplayName())
	case domain.UserStatusInactive:
		return fmt.Sprintf("%s is inactive", user.DisplayName())
	case domain.UserStatusSuspended:
		return fmt.Sprintf("%s is suspended", user.DisplayName())
	default:
		return fmt.Sprintf("%s has unknown status %q", user.DisplayName(), user.Status)
	}
}

// runDirectoryFlow boots the stub directory and drives the client against
// it the way a real caller would.
func runDirectoryFlow(cfg *config.Config, logger *zap.Logger, users []*domain.User) {
	server := stub.New(logger, users)

	ln, err := net.Listen("tcp", cfg.Stub.Addr)
	if err != nil {
		logger.Fatal("stub listen", zap.Error(err))
	}
	go func() {
		if err := server.Listener(ln); err != nil {
			logger.Error("stub serve", zap.Error(err))
		}
	}()
	defer func() { _ = server.Shutdown() }()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.DemoTimeout())
	defer cancel()

	metrics := observability.NewMetrics()
	manager := client.NewUserManager(cfg.Directory.BaseURL, logger, metrics)

	fetched, err := manager.FetchUser(ctx, "1")
	if err != nil {
		logger.Fatal("fetch user", zap.Error(err))
	}
	if fetched != nil {
		fmt.Printf("Fetched user: %s\n", fetched)
	}

	cached, err := manager.FetchUser(ctx, "1")
	if err == nil && cached != nil {
		fmt.Printf("Cached fetch: %s\n", cached)
	}

	results := manager.BatchFetchUsers(ctx, []string{"1", "2", "3", "nonexistent"})
	found := 0
	for _, user := range results {
		if user != nil {
			found++
		}
	}
	fmt.Printf("Batch fetch: %d/%d users found\n", found, len(results))

	updated, err := manager.UpdateUser(ctx, "1", map[string]any{"name": "John Q. Doe", "status": "pending"})
	if err != nil {
		logger.Fatal("update user", zap.Error(err))
	}
	fmt.Printf("Update accepted: %v\n", updated)

	refetched, err := manager.FetchUser(ctx, "1")
	if err == nil && refetched != nil {
		fmt.Printf("After update: %s\n", refetched)
	}

	removed := manager.ClearCache()
	fmt.Printf("Cache cleared: %d entries removed\n", removed)

	printMetrics(metrics)
}

func printMetrics(metrics *observability.Metrics) {
	snapshot := metrics.Snapshot()
	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Println("Client metrics:")
	for _, key := range keys {
		fmt.Printf("  %s = %d\n", key, snapshot[key])
	}
}
