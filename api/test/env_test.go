package test

import (
	"fmt"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/goshop/api"
	"github.com/irsalhamdi/goshop/config"
	"github.com/irsalhamdi/goshop/database"
	"github.com/irsalhamdi/goshop/rate"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

type TestEnv struct {
	*httptest.Server
	DB *sqlx.DB
}

// NewTestEnv starts a throwaway postgres, migrates it and serves the API
// on top of it. The test is skipped when no Docker daemon is reachable.
func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
	pool.MaxWait = time.Minute

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "14-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=" + name,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("starting postgres: %w", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	cfg := config.DB{
		User:       "postgres",
		Password:   "postgres",
		Host:       resource.GetHostPort("5432/tcp"),
		Name:       name,
		DisableTLS: true,
	}

	var db *sqlx.DB
	err = pool.Retry(func() error {
		var err error
		if db, err = database.Open(cfg); err != nil {
			return err
		}
		return db.Ping()
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	log, _ := logtest.NewNullLogger()

	lim := rate.NewLimiter(100, time.Minute, rate.Every(time.Millisecond), time.Minute)
	t.Cleanup(lim.Close)

	srv := httptest.NewServer(api.APIMux(api.APIConfig{
		Log:           log,
		DB:            db,
		Session:       scs.New(),
		CouponLimiter: lim,
	}))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	srv.Client().Jar = jar

	return &TestEnv{Server: srv, DB: db}, nil
}
