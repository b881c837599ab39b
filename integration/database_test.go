//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestLogbookWithMySQL runs the entry workflow on a MySQL backend.
func TestLogbookWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "hangarlog",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/hangarlog?parseTime=true", host, port.Port())
	env := logbookEnv(t,
		"HANGARLOG_STORE_BACKEND=mysql",
		"HANGARLOG_STORE_DB_CONNECT="+connStr,
	)

	exerciseLogbook(t, env)

	_, err = runHangarlog(t, env, "store", "migrate")
	require.NoError(t, err)
}

// TestLogbookWithPostgres runs the entry workflow on a PostgreSQL backend.
func TestLogbookWithPostgres(t *testing.T) {
	ctx := context.Background()

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

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	env := logbookEnv(t,
		"HANGARLOG_STORE_BACKEND=postgresql",
		"HANGARLOG_STORE_DB_CONNECT="+connStr,
	)

	exerciseLogbook(t, env)

	_, err = runHangarlog(t, env, "store", "migrate")
	require.NoError(t, err)
}
