package testhelper

import (
	"fmt"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/equicrm/equicrm/internal/repository/dao"
)

// StartPostgres spins up a throwaway postgres container, migrates the
// schema and returns a connected gorm handle. The container is torn
// down via t.Cleanup.
func StartPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest.NewPool: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=equicrm_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("pool.RunWithOptions: %v", err)
	}

	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	dsn := fmt.Sprintf("host=localhost port=%v user=test password=test dbname=equicrm_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	var gormDB *gorm.DB
	if err = pool.Retry(func() error {
		gormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return err
		}

		sqlDB, err := gormDB.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	}); err != nil {
		t.Fatalf("pool.Retry: %v", err)
	}

	if err = dao.InitTables(gormDB); err != nil {
		t.Fatalf("dao.InitTables: %v", err)
	}

	return gormDB
}
