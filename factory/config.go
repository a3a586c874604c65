/*
Package factory provides JSON to engine configuration conversion.

PURPOSE:
  Converts a JSON document into engine.Config. The classification
  constants (chargeable code, counted application flags) are deployment
  values, not code: operations can adjust them without a rebuild.

JSON SCHEMA:
  {
    "chargeable_code": 100,
    "application_overridden": "O",
    "application_automatic": "A"
  }

  Every field is optional; omitted fields take the engine defaults.

USAGE:
  cfg, err := factory.LoadConfig("./claims-config.json")
  eng := engine.New(directory, cfg, gis, other)

SEE ALSO:
  - engine/types.go: Config definition and defaults
  - cmd/server/main.go: Where the config file is loaded
*/
package factory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/warp/claims-engine/engine"
)

// ConfigJSON is the JSON representation of the engine configuration.
type ConfigJSON struct {
	ChargeableCode        *int   `json:"chargeable_code,omitempty"`
	ApplicationOverridden string `json:"application_overridden,omitempty"`
	ApplicationAutomatic  string `json:"application_automatic,omitempty"`
}

// ParseConfig converts JSON into an engine.Config, applying defaults for
// omitted fields and validating the result.
func ParseConfig(data []byte) (engine.Config, error) {
	var raw ConfigJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return engine.Config{}, fmt.Errorf("invalid config JSON: %w", err)
	}

	cfg := engine.DefaultConfig()
	if raw.ChargeableCode != nil {
		cfg.ChargeableCode = *raw.ChargeableCode
	}
	if raw.ApplicationOverridden != "" {
		cfg.ApplicationOverridden = raw.ApplicationOverridden
	}
	if raw.ApplicationAutomatic != "" {
		cfg.ApplicationAutomatic = raw.ApplicationAutomatic
	}

	if err := validate(cfg); err != nil {
		return engine.Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a config file.
func LoadConfig(path string) (engine.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

func validate(cfg engine.Config) error {
	if cfg.ChargeableCode < 0 {
		return fmt.Errorf("chargeable_code must be non-negative, got %d", cfg.ChargeableCode)
	}
	if cfg.ApplicationOverridden == cfg.ApplicationAutomatic {
		return fmt.Errorf("application flags must be distinct, both are %q", cfg.ApplicationAutomatic)
	}
	return nil
}
