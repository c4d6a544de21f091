package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("driver want sqlite got %s", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "file::memory:?cache=shared" {
		t.Fatalf("dsn should default to in-memory sqlite, got %s", cfg.Database.DSN)
	}
	if cfg.Auth.Provider != "simulated" {
		t.Fatalf("auth provider want simulated got %s", cfg.Auth.Provider)
	}
	if cfg.Auth.LoginDelayMS != 800 || cfg.Auth.RegisterDelayMS != 1000 {
		t.Fatalf("unexpected auth delays: %+v", cfg.Auth)
	}
	if cfg.Catalog.MaxPrice != 500000 {
		t.Fatalf("max price want 500000 got %d", cfg.Catalog.MaxPrice)
	}
	if cfg.VisitRequest.PlaceholderCustomer != "current-user" {
		t.Fatalf("placeholder customer want current-user got %s", cfg.VisitRequest.PlaceholderCustomer)
	}
	if cfg.Queue.Queues["default"] != 10 {
		t.Fatalf("default queue weight want 10 got %d", cfg.Queue.Queues["default"])
	}
}

func TestHoldDuration(t *testing.T) {
	if got := (VisitRequestConfig{}).HoldDuration(); got != 48*time.Hour {
		t.Fatalf("zero hold hours should fall back to 48h, got %s", got)
	}
	if got := (VisitRequestConfig{HoldHours: 2}).HoldDuration(); got != 2*time.Hour {
		t.Fatalf("hold duration want 2h got %s", got)
	}
}

func TestSessionDurations(t *testing.T) {
	cfg := SessionConfig{}
	if cfg.IdleTimeout() != 24*time.Hour {
		t.Fatalf("idle timeout fallback want 24h got %s", cfg.IdleTimeout())
	}
	if cfg.SweepInterval() != time.Minute {
		t.Fatalf("sweep interval fallback want 1m got %s", cfg.SweepInterval())
	}
}

func TestRedisAddrAndPrefix(t *testing.T) {
	if got := (RedisConfig{}).Addr(); got != "127.0.0.1:6379" {
		t.Fatalf("default addr want 127.0.0.1:6379 got %s", got)
	}
	if got := (QueueConfig{Host: " redis ", Port: 6380}).Addr(); got != "redis:6380" {
		t.Fatalf("queue addr want redis:6380 got %s", got)
	}
	if got := (RedisConfig{Prefix: "  "}).KeyPrefix(); got != "jb" {
		t.Fatalf("blank prefix should fall back to jb, got %s", got)
	}
}
