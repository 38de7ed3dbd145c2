package config

import (
	"holdemshot-server/internal/util"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("HOLDEMSHOT_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("HOLDEMSHOT_CODE_LENGTH", "7")
	defer clear2()

	a := assert.New(t)
	config = Config{}
	cfg := Instance()
	a.Equal(":6000", cfg.Addr)
	a.Equal("debug", cfg.Log.Level)
	a.True(cfg.Log.DisableAccessLogs)
	a.Equal(7, cfg.CodeLength)
	a.Equal(time.Second*3, cfg.Fallback())
	a.Equal("redis://localhost:6379/2", cfg.Redis.URL)
	a.Equal(50, cfg.Redis.MaxRecords)

	// untouched by the file
	a.Equal("holdemshot:games", cfg.Redis.Key)
	a.Equal([]string{"*"}, cfg.AllowedOrigins)

	// ensure that it's only loaded once
	_ = os.Setenv("HOLDEMSHOT_CODE_LENGTH", "8")
	// ensure we aren't using a pointer
	cfg.CodeLength = 1
	cfg = Instance()
	a.Equal(7, cfg.CodeLength)
}

func TestLoad_defaults(t *testing.T) {
	clear1 := util.SetEnv("HOLDEMSHOT_CONFIG_FILE", "testdata/missing.yaml")
	defer clear1()

	require.NoError(t, Load())
	cfg := Instance()

	expects := DefaultConfig()
	expects.loaded = true
	assert.Equal(t, expects, cfg)
	assert.Equal(t, time.Second*8, cfg.Fallback())
}

func TestLoad_emptyFile(t *testing.T) {
	clear1 := util.SetEnv("HOLDEMSHOT_CONFIG_FILE", "testdata/empty.yaml")
	defer clear1()

	require.NoError(t, Load())
	assert.Equal(t, ":5000", Instance().Addr)
}

func TestLoad_envFile(t *testing.T) {
	clear1 := util.SetEnv("HOLDEMSHOT_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("HOLDEMSHOT_ENV_FILE", "testdata/test.env")
	defer clear2()
	defer os.Unsetenv("HOLDEMSHOT_REDIS_KEY")
	defer os.Unsetenv("HOLDEMSHOT_FALLBACK_SECONDS")

	require.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, "from-dotenv", cfg.Redis.Key)
	assert.Equal(t, 4, cfg.FallbackSeconds)
}

func TestLoad_badEnv(t *testing.T) {
	clear1 := util.SetEnv("HOLDEMSHOT_FALLBACK_SECONDS", "soon")
	defer clear1()

	assert.Error(t, Load())
}
