//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDailyqWithMySQL tests the dailyq CLI with a MySQL history backend.
func TestDailyqWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "dailyq",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/dailyq?parseTime=true", host, port.Port())
	runHistoryScenario(t, "mysql", connStr)
}

// TestDailyqWithPostgres tests the dailyq CLI with a PostgreSQL history backend.
func TestDailyqWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	runHistoryScenario(t, "postgresql", connStr)
}

// runHistoryScenario migrates, records two report runs, checks status and clears.
func runHistoryScenario(t *testing.T, backend, connStr string) {
	t.Helper()
	logPath := writeSampleLog(t)
	env := []string{
		"DAILYQ_HISTORY_BACKEND=" + backend,
		"DAILYQ_HISTORY_DB_CONNECT=" + connStr,
	}

	// Start from an empty schema
	_, err := runDailyq(t, env, "history", "clear")
	require.NoError(t, err)

	_, err = runDailyq(t, env, "history", "migrate")
	require.NoError(t, err)

	_, err = runDailyq(t, env, "days", logPath, "--today", sampleToday, "--output", "json")
	require.NoError(t, err)

	_, err = runDailyq(t, env, "months", logPath, "--today", sampleToday, "--output", "csv")
	require.NoError(t, err)

	status, err := runDailyq(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, status, "History Backend: "+backend)
	assert.Contains(t, status, "Total Runs: 2")
	// The sample log answers two days in February, recorded once per run
	assert.Contains(t, status, "dailyq_daily_scores: 4 rows")

	_, err = runDailyq(t, env, "history", "clear")
	require.NoError(t, err)
}
