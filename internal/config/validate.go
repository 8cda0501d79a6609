package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Model.validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}

	if err := c.Datasets.validate(); err != nil {
		return fmt.Errorf("datasets: %w", err)
	}

	if c.Analysis.MaxInputRunes <= 0 {
		return fmt.Errorf("analysis.max_input_runes must be > 0 (got %d)", c.Analysis.MaxInputRunes)
	}
	if c.Analysis.RateLimitPerMinute <= 0 {
		return fmt.Errorf("analysis.rate_limit_per_minute must be > 0 (got %d)", c.Analysis.RateLimitPerMinute)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (m *ModelConfig) validate() error {
	if !m.IsBackendKnown() {
		return fmt.Errorf("unknown backend %q (known: %s)", m.Backend, strings.Join(KnownBackends(), ", "))
	}
	if strings.TrimSpace(m.Checkpoint) == "" {
		return fmt.Errorf("checkpoint is required")
	}
	if m.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", m.Timeout)
	}

	switch m.Backend {
	case BackendRemote:
		if strings.TrimSpace(m.BaseURL) == "" {
			return fmt.Errorf("base_url is required for the %s backend", BackendRemote)
		}
	case BackendHugot:
		if strings.TrimSpace(m.ModelPath) == "" {
			return fmt.Errorf("model_path is required for the %s backend", BackendHugot)
		}
	}

	return nil
}

func (d *DatasetsConfig) validate() error {
	d.Names = ParseNames(d.NamesRaw)
	if len(d.Names) == 0 {
		return fmt.Errorf("names must list at least one dataset")
	}
	return nil
}

// ParseNames parses a comma-separated list of dataset names (e.g. "Laptop14,Twitter").
// Blank items and repeated names are dropped; order of first appearance is kept.
// An empty string returns a nil slice.
func ParseNames(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		names = append(names, p)
	}

	return names
}
