package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadAppConfigLoader 测试配置文件读取与环境变量覆盖
func TestLoadAppConfigLoader(t *testing.T) {
	t.Run("无配置文件", func(t *testing.T) {
		cfg, err := LoadAppConfig("")
		require.NoError(t, err)
		assert.Nil(t, cfg.Codec)
	})

	t.Run("配置文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"log":{"level":"debug"},"codec":{"abi_dir":"abis","contracts":{"Token":"token.json"}}}`), 0o644))

		cfg, err := LoadAppConfig(path)
		require.NoError(t, err)
		require.NotNil(t, cfg.Log)
		assert.Equal(t, "debug", *cfg.Log.Level)
		assert.Equal(t, "abis", *cfg.Codec.ABIDir)
		assert.Equal(t, "token.json", cfg.Codec.Contracts["Token"])
		assert.Nil(t, cfg.Codec.StrictDecode)
	})

	t.Run("环境变量覆盖文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"log":{"level":"debug"}}`), 0o644))
		t.Setenv(EnvLogLevel, "error")
		t.Setenv(EnvABIDir, "/srv/abis")

		cfg, err := LoadAppConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "error", *cfg.Log.Level)
		assert.Equal(t, "/srv/abis", *cfg.Codec.ABIDir)
	})

	t.Run("格式错误", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
		_, err := LoadAppConfig(path)
		assert.Error(t, err)
	})
}
