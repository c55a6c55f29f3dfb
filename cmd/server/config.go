package main

import (
	"strings"
	"time"
)

type Config struct {
	Host               string        `env:"HOST,default=0.0.0.0"`
	Port               int           `env:"PORT,default=8080"`
	BadgerFilepath     string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel           string        `env:"LOG_LEVEL,default=INFO"`
	JWTSecret          string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration  time.Duration `env:"AUTH_TOKEN_DURATION,default=12h"`
	RoomBufferSize     int           `env:"ROOM_BUFFER_SIZE,default=64"`
	SessionBufferSize  int           `env:"SESSION_BUFFER_SIZE,default=64"`
	WriteTimeout       time.Duration `env:"WRITE_TIMEOUT,default=5s"`
	PongTimeout        time.Duration `env:"PONG_TIMEOUT,default=60s"`
	HeartbeatInterval  time.Duration `env:"HEARTBEAT_INTERVAL,default=15s"`
	RestartInterval    time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	RateLimitPerSecond float64       `env:"RATE_LIMIT_PER_SECOND,default=5"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST,default=20"`
	AllowedOrigins     string        `env:"ALLOWED_ORIGINS"`
	DebugPort          int           `env:"DEBUG_PORT,default=8081"`
}

// Origins splits the comma separated ALLOWED_ORIGINS.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
