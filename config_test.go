/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			movies:         "movies.csv",
			credits:        "credits.csv",
			port:           8080,
			sessionTimeout: time.Hour,
		}
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"snapshot only", func(c *Config) { c.movies, c.credits, c.snapshot = "", "", "movies.db" }, false},
		{"nothing to load", func(c *Config) { c.movies, c.credits = "", "" }, true},
		{"movies without credits", func(c *Config) { c.credits = "" }, true},
		{"cert without key", func(c *Config) { c.tlsCert = "cert.pem" }, true},
		{"port too low", func(c *Config) { c.port = 0 }, true},
		{"port too high", func(c *Config) { c.port = 65536 }, true},
		{"negative timeout", func(c *Config) { c.sessionTimeout = -time.Second }, true},
		{"sub-second timeout", func(c *Config) { c.sessionTimeout = time.Nanosecond }, true},
		{"timeout disabled", func(c *Config) { c.sessionTimeout = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)

			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	cfg := &Config{}
	if got := cfg.scheme(); got != "http" {
		t.Errorf("scheme() = %q, want http", got)
	}

	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	if got := cfg.scheme(); got != "https" {
		t.Errorf("scheme() = %q, want https", got)
	}
}

func TestNewCmd_EnvironmentBinding(t *testing.T) {
	t.Setenv("CINEMASTER_PORT", "9090")
	t.Setenv("CINEMASTER_SESSION_TIMEOUT", "5m")
	t.Setenv("CINEMASTER_MOVIES", "/data/movies.csv")

	cfg := &Config{}
	_ = newCmd(cfg)

	if cfg.port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.port)
	}
	if cfg.sessionTimeout != 5*time.Minute {
		t.Errorf("sessionTimeout = %s, want 5m", cfg.sessionTimeout)
	}
	if cfg.movies != "/data/movies.csv" {
		t.Errorf("movies = %q, want /data/movies.csv", cfg.movies)
	}
	if cfg.bind != "0.0.0.0" {
		t.Errorf("bind = %q, want default 0.0.0.0", cfg.bind)
	}
}

func TestHumanReadableSize(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1500, "1.5 kB"},
		{2_000_000, "2.0 MB"},
	}

	for _, tt := range tests {
		if got := humanReadableSize(tt.input); got != tt.want {
			t.Errorf("humanReadableSize(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
