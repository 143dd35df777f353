// services/config/validate.go
package config

import (
	"fmt"

	"chargecode-go/services/charger"
	"chargecode-go/services/modbusx"
)

// Validate checks configuration correctness.
// It performs declarative validation only; charger profiles are compiled
// against the driver codec so a bad value fails here, before any bus access.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if len(cfg.Chargers) == 0 {
		return fmt.Errorf("no chargers configured")
	}
	if cfg.Heartbeat.Interval_ms < 0 {
		return fmt.Errorf("heartbeat: interval_ms must be >= 0")
	}

	names := make(map[string]bool)
	for i, c := range cfg.Chargers {
		if c.Name == "" {
			return fmt.Errorf("charger[%d]: name is required", i)
		}
		if names[c.Name] {
			return fmt.Errorf("charger %q: duplicate name", c.Name)
		}
		names[c.Name] = true

		switch c.Transport.Kind {
		case TransportPeriph:
		case TransportSMBus:
			if c.Transport.Number < 0 {
				return fmt.Errorf("charger %q: smbus number must be >= 0", c.Name)
			}
		default:
			return fmt.Errorf("charger %q: unknown transport kind %q", c.Name, c.Transport.Kind)
		}

		if c.Address > 0x7F {
			return fmt.Errorf("charger %q: address 0x%x is not a 7-bit address", c.Name, c.Address)
		}
		if c.PollMs < 0 {
			return fmt.Errorf("charger %q: poll_ms must be >= 0", c.Name)
		}
		if _, err := charger.Compile(c.Profile); err != nil {
			return fmt.Errorf("charger %q: profile: %w", c.Name, err)
		}
	}

	type span struct {
		start, end uint32
		charger    string
	}
	// key = endpoint | unit_id
	spans := make(map[string][]span)
	for i, e := range cfg.Exports {
		if !names[e.Charger] {
			return fmt.Errorf("export[%d]: unknown charger %q", i, e.Charger)
		}
		if e.Endpoint == "" {
			return fmt.Errorf("export[%d]: endpoint is required", i)
		}
		if e.TimeoutMs < 0 {
			return fmt.Errorf("export[%d]: timeout_ms must be >= 0", i)
		}
		start := uint32(e.Address)
		end := start + modbusx.BlockSize - 1
		if end > 0xFFFF {
			return fmt.Errorf("export[%d]: block at %d runs past register 65535", i, e.Address)
		}
		key := fmt.Sprintf("%s|%d", e.Endpoint, e.UnitID)
		for _, s := range spans[key] {
			if start <= s.end && s.start <= end {
				return fmt.Errorf(
					"export overlap: endpoint=%s unit_id=%d chargers %q and %q",
					e.Endpoint, e.UnitID, s.charger, e.Charger,
				)
			}
		}
		spans[key] = append(spans[key], span{start, end, e.Charger})
	}
	return nil
}
