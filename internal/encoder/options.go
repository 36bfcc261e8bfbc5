// internal/encoder/options.go
package encoder

import "time"

// Config holds the driver configuration.
type Config struct {
	// Logger receives driver progress messages (optional).
	Logger Logger

	// Luminance and Chrominance are the quantizer tables programmed
	// during Initialise.
	Luminance   Table
	Chrominance Table

	// ResetCycles is the number of timing edges the reset line is held
	// asserted before the first transaction. The device state machine
	// needs at least 10.
	ResetCycles int

	// CompletionTimeout bounds AwaitCompletion. Zero means poll forever,
	// matching the hardware testbench this driver descends from.
	CompletionTimeout time.Duration
}

func defaultConfig() Config {
	return Config{
		Luminance:   DefaultLuminanceTable,
		Chrominance: DefaultChrominanceTable,
		ResetCycles: 10,
	}
}

// Option is a functional option for configuring the Driver.
type Option func(*Config)

// WithLogger sets a logger for driver operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithTables replaces the default quantizer tables.
func WithTables(lum, chr Table) Option {
	return func(c *Config) {
		c.Luminance = lum
		c.Chrominance = chr
	}
}

// WithResetCycles sets how many edges reset is held. Values below 10 are
// ignored: the device does not guarantee a clean state machine reset with
// a shorter pulse.
func WithResetCycles(cycles int) Option {
	return func(c *Config) {
		if cycles >= 10 {
			c.ResetCycles = cycles
		}
	}
}

// WithCompletionTimeout bounds the completion poll. Zero restores the
// unbounded reference behavior.
func WithCompletionTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.CompletionTimeout = d
		}
	}
}
