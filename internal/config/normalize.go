// internal/config/normalize.go
package config

// DefaultThreshold is the reference pass/fail similarity percentage.
const DefaultThreshold = 0.22

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	enc := &cfg.Encoder

	if enc.Bridge.TimeoutMs == 0 {
		enc.Bridge.TimeoutMs = 1000
	}
	if enc.Timing.ResetCycles == 0 {
		enc.Timing.ResetCycles = 10
	}
	if enc.Threshold == nil {
		t := DefaultThreshold
		enc.Threshold = &t
	}
}
