package api

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"cricketmgr.dev/core/internal/config"
	"cricketmgr.dev/core/internal/db"
	"cricketmgr.dev/core/internal/testutils"
)

var (
	testServer  *Server
	testDB      *sql.DB
	testCleanup func()
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	projectRoot, err := testutils.GetProjectRoot()
	if err != nil {
		panic("failed to get project root: " + err.Error())
	}

	originalDir, err := os.Getwd()
	if err != nil {
		panic("failed to get current directory: " + err.Error())
	}

	if err := os.Chdir(projectRoot); err != nil {
		panic("failed to change to project root: " + err.Error())
	}

	container, err := testutils.NewPostgresContainer(ctx)
	if err != nil {
		panic("failed to create postgres container: " + err.Error())
	}

	testCleanup = func() {
		os.Chdir(originalDir)
		if err := container.Terminate(ctx); err != nil {
			panic("failed to terminate container: " + err.Error())
		}
	}

	database, err := db.Connect(container.ConnStr)
	if err != nil {
		testCleanup()
		panic("failed to connect to database: " + err.Error())
	}

	if err := database.Migrate(ctx); err != nil {
		testCleanup()
		panic("failed to run migrations: " + err.Error())
	}

	cfg, err := config.Load("")
	if err != nil {
		testCleanup()
		panic("failed to load config: " + err.Error())
	}

	testDB = database.DB
	testServer = NewServer(database.DB, nil, cfg.Career)

	code := m.Run()

	testCleanup()

	os.Exit(code)
}
