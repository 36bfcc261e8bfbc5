// internal/config/config.go
package config

type Config struct {
	Encoder EncoderConfig `yaml:"encoder"`
}

type EncoderConfig struct {
	Bridge BridgeConfig `yaml:"bridge"`
	Timing TimingConfig `yaml:"timing"`

	// CompletionTimeoutMs bounds the completion poll; 0 polls forever.
	CompletionTimeoutMs int `yaml:"completion_timeout_ms"`

	// Threshold is the pass/fail similarity percentage (optional).
	// Lower is stricter.
	Threshold *float64 `yaml:"threshold"`

	Images []ImageConfig `yaml:"images"`
}

// ---- BRIDGE ----

type BridgeConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`

	// Signal mapping on the bridge.
	PixelDataBase   uint16 `yaml:"pixel_data_base"`
	WriteEnableCoil uint16 `yaml:"write_enable_coil"`
	ResetCoil       uint16 `yaml:"reset_coil"`
	AlmostFullInput uint16 `yaml:"almost_full_input"`
}

// ---- TIMING ----

type TimingConfig struct {
	PeriodUs    int `yaml:"period_us"`
	ResetCycles int `yaml:"reset_cycles"`
}

// ---- IMAGE JOB ----

type ImageConfig struct {
	Input string `yaml:"input"`

	// Output is where the bridge host dumps the encoded bitstream
	// (optional). When set, the harness decodes it and compares it
	// against the input.
	Output string `yaml:"output"`
}
