// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	enc := &cfg.Encoder

	// ------------------------------------------------------------
	// BRIDGE
	// ------------------------------------------------------------

	if enc.Bridge.Endpoint == "" {
		return fmt.Errorf("bridge: endpoint is required")
	}
	if enc.Bridge.TimeoutMs < 0 {
		return fmt.Errorf("bridge: timeout_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// TIMING
	// ------------------------------------------------------------

	if enc.Timing.PeriodUs <= 0 {
		return fmt.Errorf("timing: period_us must be > 0")
	}

	// 0 means "use the default"; anything shorter than 10 cycles does
	// not guarantee a clean device reset.
	if enc.Timing.ResetCycles != 0 && enc.Timing.ResetCycles < 10 {
		return fmt.Errorf("timing: reset_cycles must be 0 (default) or >= 10")
	}

	if enc.CompletionTimeoutMs < 0 {
		return fmt.Errorf("completion_timeout_ms must be >= 0")
	}

	if enc.Threshold != nil {
		if *enc.Threshold < 0 || *enc.Threshold > 100 {
			return fmt.Errorf("threshold must be between 0 and 100")
		}
	}

	// ------------------------------------------------------------
	// IMAGE JOBS
	// ------------------------------------------------------------

	if len(enc.Images) == 0 {
		return fmt.Errorf("at least one image is required")
	}

	outputs := make(map[string]string)
	for i, img := range enc.Images {
		if img.Input == "" {
			return fmt.Errorf("images[%d]: input is required", i)
		}

		if img.Output == "" {
			continue
		}
		if prev, exists := outputs[img.Output]; exists {
			return fmt.Errorf(
				"output collision: %q used by inputs %q and %q",
				img.Output, prev, img.Input,
			)
		}
		outputs[img.Output] = img.Input
	}

	return nil
}
