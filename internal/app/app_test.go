package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jewelbridge/internal/config"
	"github.com/jewelbridge/internal/provider"
	"github.com/jewelbridge/internal/service"

	"github.com/gin-gonic/gin"
)

type stubService struct {
	name     string
	startErr error
	stopped  atomic.Bool
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-ctx.Done()
	return nil
}

func (s *stubService) Stop(ctx context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllServicesOnFailure(t *testing.T) {
	boom := errors.New("boom")
	failing := &stubService{name: "failing", startErr: boom}
	healthy := &stubService{name: "healthy"}
	runner := NewRunner(failing, healthy)

	err := runner.Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) || err.Error() != "failing: boom" {
		t.Fatalf("expected wrapped boom error, got %v", err)
	}
	if !failing.stopped.Load() || !healthy.stopped.Load() {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerCancelReturnsNil(t *testing.T) {
	healthy := &stubService{name: "healthy"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewRunner(healthy).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancel should return nil, got %v", err)
	}
}

func TestBackgroundServiceRunsUntilCancel(t *testing.T) {
	var calls atomic.Int32
	svc := NewBackgroundService("loop", func(ctx context.Context) {
		calls.Add(1)
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("background service should stop on cancel")
	}
	if calls.Load() != 1 {
		t.Fatalf("run should be invoked once, got %d", calls.Load())
	}
	if err := NewBackgroundService("empty", nil).Start(context.Background()); err == nil {
		t.Fatalf("nil run should fail")
	}
}

func TestBuildServicesByMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	container := &provider.Container{
		Config: cfg,
		SessionService: service.NewSessionService(
			config.JWTConfig{SecretKey: "app-test-secret"},
			config.SessionConfig{},
			service.NewSimulatedAuthProvider(0, 0),
		),
	}

	cases := []struct {
		mode  string
		names []string
	}{
		{mode: ModeAPI, names: []string{"http", "session_janitor"}},
		{mode: ModeWorker, names: []string{"hold_sweeper"}},
		{mode: ModeAll, names: []string{"http", "session_janitor", "hold_sweeper"}},
	}
	for _, tc := range cases {
		services, err := buildServices(cfg, tc.mode, container)
		if err != nil {
			t.Fatalf("mode %s build failed: %v", tc.mode, err)
		}
		if len(services) != len(tc.names) {
			t.Fatalf("mode %s want %d services got %d", tc.mode, len(tc.names), len(services))
		}
		for i, name := range tc.names {
			if services[i].Name() != name {
				t.Fatalf("mode %s service %d want %s got %s", tc.mode, i, name, services[i].Name())
			}
		}
	}

	if _, err := buildServices(cfg, "unknown", container); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]string{"": ModeAll, " API ": ModeAPI, "worker": ModeWorker, "all": ModeAll}
	for raw, want := range cases {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := ParseMode("cron"); err == nil {
		t.Fatalf("expected unknown mode error")
	}
}
