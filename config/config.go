package config

import "time"

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User         string `conf:"default:postgres"`
	Password     string `conf:"default:postgres,mask"`
	Host         string `conf:"default:localhost:5432"`
	Name         string `conf:"default:goshop"`
	MaxIdleConns int    `conf:"default:0"`
	MaxOpenConns int    `conf:"default:0"`
	DisableTLS   bool   `conf:"default:true"`
}

type Cors struct {
	Origin string
}

type Session struct {
	Lifetime    time.Duration `conf:"default:336h"`
	IdleTimeout time.Duration `conf:"default:0s"`
	CookieName  string        `conf:"default:goshop_session"`
	Secure      bool          `conf:"default:false"`
}

// RateLimit bounds how often a single client may submit coupon codes.
type RateLimit struct {
	Burst    int           `conf:"default:5"`
	Interval time.Duration `conf:"default:2s"`
	Expiry   time.Duration `conf:"default:10m"`
}

type Config struct {
	Web       Web
	DB        DB
	Cors      Cors
	Session   Session
	RateLimit RateLimit
}
