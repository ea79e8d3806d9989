package params

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.toml")
	err := ioutil.WriteFile(path, []byte(content), 0600)
	require.NoError(t, err)
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `
[Gateway]
APIAddress = "http://127.0.0.1:8545"
NetworkID = 5

[Scan]
StartHeight = 100
MaxCacheEntries = 1000
BackoffInterval = 200
ReportInterval = 10
`)
	config := LoadConfig(path)
	assert.Equal(t, "http://127.0.0.1:8545", config.Gateway.APIAddress)
	assert.Equal(t, uint64(5), config.Gateway.NetworkID)
	assert.Equal(t, uint64(100), config.Scan.StartHeight)
	assert.Equal(t, 1000, config.Scan.MaxCacheEntries)
	assert.Equal(t, 200*time.Millisecond, GetBackoffInterval())
	assert.Equal(t, 10*time.Second, GetReportInterval())
	assert.Equal(t, config, GetScanConfig())
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeTempConfig(t, `
[Gateway]
APIAddress = "http://127.0.0.1:8545"
`)
	config := LoadConfig(path)
	assert.Equal(t, DefaultStartHeight, config.Scan.StartHeight)
	assert.Equal(t, DefaultMaxCacheEntries, config.Scan.MaxCacheEntries)
	assert.Equal(t, DefaultBackoffInterval, config.Scan.BackoffInterval)
	assert.Equal(t, DefaultReportInterval, config.Scan.ReportInterval)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	config := LoadConfig("")
	assert.Equal(t, "", config.Gateway.APIAddress)
	assert.Equal(t, DefaultStartHeight, config.Scan.StartHeight)
	assert.Equal(t, DefaultMaxCacheEntries, config.Scan.MaxCacheEntries)
}

func TestCheckConfig(t *testing.T) {
	config := NewScanConfig()
	assert.NoError(t, config.CheckConfig())

	config = NewScanConfig()
	config.Scan.MaxCacheEntries = 0
	assert.Error(t, config.CheckConfig())

	config = NewScanConfig()
	config.Scan.MaxCacheEntries = -1
	assert.Error(t, config.CheckConfig())

	config = NewScanConfig()
	config.Scan.BackoffInterval = 0
	assert.Error(t, config.CheckConfig())

	config = NewScanConfig()
	config.Scan.ReportInterval = 0
	assert.Error(t, config.CheckConfig())
}

func TestReloadConfig(t *testing.T) {
	path := writeTempConfig(t, `
[Gateway]
APIAddress = "http://127.0.0.1:8545"

[Scan]
BackoffInterval = 500
`)
	LoadConfig(path)
	assert.Equal(t, 500*time.Millisecond, GetBackoffInterval())

	err := ioutil.WriteFile(path, []byte(`
[Gateway]
APIAddress = "http://127.0.0.1:8545"

[Scan]
BackoffInterval = 250
`), 0600)
	require.NoError(t, err)

	ReloadConfig()
	assert.Equal(t, 250*time.Millisecond, GetBackoffInterval())

	// an invalid reload is rejected and the old config kept
	err = ioutil.WriteFile(path, []byte(`
[Scan]
MaxCacheEntries = 0
`), 0600)
	require.NoError(t, err)

	ReloadConfig()
	assert.Equal(t, 250*time.Millisecond, GetBackoffInterval())
}
