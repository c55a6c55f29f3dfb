package main

import (
	"os"
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("BADGER_FILEPATH", t.TempDir())
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example, ,https://b.example")

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)

	req.NoError(err)
	req.Equal(8080, config.Port)
	req.Equal(64, config.RoomBufferSize)
	req.Equal(5*time.Second, config.WriteTimeout)
	req.Equal(200*time.Millisecond, config.RestartInterval)
	req.Equal([]string{"https://a.example", "https://b.example"}, config.Origins())
}

func TestConfig_Required(t *testing.T) {
	req := require.New(t)
	t.Setenv("BADGER_FILEPATH", "unused")
	t.Setenv("JWT_SECRET", "unused")
	req.NoError(os.Unsetenv("BADGER_FILEPATH"))
	req.NoError(os.Unsetenv("JWT_SECRET"))

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)

	req.Error(err)
}
