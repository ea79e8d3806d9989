package params

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/anyswap/CrossChain-Bridge/common"
	"github.com/anyswap/CrossChain-Bridge/log"
)

// default config values
const (
	DefaultStartHeight     uint64 = 1
	DefaultMaxCacheEntries        = 5000000
	DefaultBackoffInterval uint64 = 500 // milliseconds
	DefaultReportInterval  uint64 = 30  // seconds
)

var (
	scanConfig = NewScanConfig()
	configFile string
)

// ScanConfig scan config
type ScanConfig struct {
	Gateway GatewayConfig
	Scan    ScanOptions
}

// GatewayConfig full node gateway config
type GatewayConfig struct {
	APIAddress string
	NetworkID  uint64 `toml:",omitempty" json:",omitempty"`
}

// ScanOptions scan loop options
type ScanOptions struct {
	StartHeight     uint64
	MaxCacheEntries int
	BackoffInterval uint64 // milliseconds
	ReportInterval  uint64 // seconds
}

// NewScanConfig new scan config with default values
func NewScanConfig() *ScanConfig {
	return &ScanConfig{
		Scan: ScanOptions{
			StartHeight:     DefaultStartHeight,
			MaxCacheEntries: DefaultMaxCacheEntries,
			BackoffInterval: DefaultBackoffInterval,
			ReportInterval:  DefaultReportInterval,
		},
	}
}

// CheckConfig check scan config
func (c *ScanConfig) CheckConfig() error {
	if c.Scan.MaxCacheEntries <= 0 {
		return errors.New("must config positive 'MaxCacheEntries'")
	}
	if c.Scan.BackoffInterval == 0 {
		return errors.New("must config positive 'BackoffInterval'")
	}
	if c.Scan.ReportInterval == 0 {
		return errors.New("must config positive 'ReportInterval'")
	}
	return nil
}

// GetScanConfig get scan config
func GetScanConfig() *ScanConfig {
	return scanConfig
}

// GetBackoffInterval wait duration between unsuccessful block fetches
func GetBackoffInterval() time.Duration {
	return time.Duration(scanConfig.Scan.BackoffInterval) * time.Millisecond
}

// GetReportInterval wait duration between aggregate progress reports
func GetReportInterval() time.Duration {
	return time.Duration(scanConfig.Scan.ReportInterval) * time.Second
}

// LoadConfig load config
func LoadConfig(filePath string) *ScanConfig {
	log.Println("Config file is", filePath)
	config := NewScanConfig()
	if filePath == "" {
		log.Println("no config file specified, use default config")
	} else {
		if !common.FileExist(filePath) {
			log.Fatalf("LoadConfig error: config file '%v' not exist", filePath)
		}
		if _, err := toml.DecodeFile(filePath, config); err != nil {
			log.Fatalf("LoadConfig error (toml DecodeFile): %v", err)
		}
	}
	scanConfig = config
	configFile = filePath

	var bs []byte
	if log.JSONFormat {
		bs, _ = json.Marshal(config)
	} else {
		bs, _ = json.MarshalIndent(config, "", "  ")
	}
	log.Println("LoadConfig finished.", string(bs))

	if err := config.CheckConfig(); err != nil {
		log.Fatalf("Check config failed. %v", err)
	}
	return scanConfig
}

// ReloadConfig reload config. only the interval options take effect on a
// running scan, the gateway, start height and cache size are fixed at startup.
func ReloadConfig() {
	log.Println("ReloadConfig. Config file is", configFile)
	config := NewScanConfig()
	if _, err := toml.DecodeFile(configFile, config); err != nil {
		log.Errorf("ReloadConfig error (toml DecodeFile): %v", err)
		return
	}
	if err := config.CheckConfig(); err != nil {
		log.Errorf("ReloadConfig check config failed. %v", err)
		return
	}
	scanConfig = config
	log.Println("ReloadConfig success.")
}
