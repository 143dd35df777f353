// services/config/config.go
package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"chargecode-go/types"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Chargers []ChargerConfig `yaml:"chargers"`
	Exports  []ExportConfig  `yaml:"exports"`

	Heartbeat types.HeartbeatConfig `yaml:"heartbeat"`
}

// ---- CHARGER ----

type ChargerConfig struct {
	Name         string          `yaml:"name"`
	Transport    TransportConfig `yaml:"transport"`
	Address      uint16          `yaml:"address"` // 0 => device default
	PollMs       int             `yaml:"poll_ms"` // 0 => service default
	ResetOnStart bool            `yaml:"reset_on_start"`

	Profile types.ChargerConfigure `yaml:"profile"`
}

// ---- TRANSPORT ----

const (
	TransportPeriph = "periph" // periph.io host I2C, any Linux i2c-dev bus
	TransportSMBus  = "smbus"  // SMBus byte-data via /dev/i2c-N
)

type TransportConfig struct {
	Kind   string `yaml:"kind"`
	Bus    string `yaml:"bus"`    // periph: bus name ("" => first available)
	Number int    `yaml:"number"` // smbus: N in /dev/i2c-N
}

// ---- MODBUS EXPORT ----

type ExportConfig struct {
	Charger   string `yaml:"charger"`  // charger name
	Endpoint  string `yaml:"endpoint"` // host:port
	UnitID    uint8  `yaml:"unit_id"`
	Address   uint16 `yaml:"address"` // first holding register
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Load reads and decodes a YAML file. It does not validate.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes YAML, rejecting unknown keys. An empty document yields an
// empty Config.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}
