package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/EcoHunt_Go/internal/database"
)

const testMigrationsDir = "../../../migrations"

var (
	testDBConnString string
	testPool         *pgxpool.Pool
)

// startTestDatabase starts one postgres container for the package and applies
// migrations through goose; it returns a cleanup func for TestMain
func startTestDatabase(ctx context.Context) (cleanup func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("testcontainers panic (likely no Docker): %v", r)
		}
	}()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("ecohunt_test"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return func() {}, err
	}
	terminate := func() { _ = container.Terminate(ctx) }

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		return func() {}, err
	}
	if err := database.Migrate(ctx, connStr, testMigrationsDir); err != nil {
		terminate()
		return func() {}, err
	}

	pool, err := database.NewPool(ctx, connStr, 10, time.Minute, 5*time.Minute)
	if err != nil {
		terminate()
		return func() {}, err
	}

	testDBConnString = connStr
	testPool = pool
	return func() {
		pool.Close()
		terminate()
	}, nil
}

// requirePool skips the test when no database is available and truncates
// all tables otherwise
func requirePool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
	_, err := testPool.Exec(context.Background(),
		"TRUNCATE events, reward_issuances, activity_history, user_profiles RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	return testPool
}
