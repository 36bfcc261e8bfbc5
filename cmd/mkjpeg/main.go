// cmd/mkjpeg/main.go
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/chiggs/oc-mkjpeg/internal/bus/modbus"
	"github.com/chiggs/oc-mkjpeg/internal/config"
	"github.com/chiggs/oc-mkjpeg/internal/encoder"
	"github.com/chiggs/oc-mkjpeg/internal/imagecmp"
	"github.com/chiggs/oc-mkjpeg/internal/imgio"
	"github.com/chiggs/oc-mkjpeg/internal/timing"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: mkjpeg <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)
	enc := cfg.Encoder

	ctx := context.Background()

	// --------------------
	// Build bridge + timing
	// --------------------

	bridge, err := modbus.New(modbus.Config{
		Endpoint:        enc.Bridge.Endpoint,
		UnitID:          enc.Bridge.UnitID,
		Timeout:         time.Duration(enc.Bridge.TimeoutMs) * time.Millisecond,
		PixelDataBase:   enc.Bridge.PixelDataBase,
		WriteEnableCoil: enc.Bridge.WriteEnableCoil,
		ResetCoil:       enc.Bridge.ResetCoil,
		AlmostFullInput: enc.Bridge.AlmostFullInput,
	})
	if err != nil {
		log.Fatalf("bridge connect failed: %v", err)
	}
	defer bridge.Close()

	clk, err := timing.NewTicker(time.Duration(enc.Timing.PeriodUs) * time.Microsecond)
	if err != nil {
		log.Fatalf("timing source failed: %v", err)
	}
	defer clk.Close()

	// --------------------
	// Build + initialise driver
	// --------------------

	drv := encoder.New(bridge, clk, bridge,
		encoder.WithLogger(stdLogger{}),
		encoder.WithResetCycles(enc.Timing.ResetCycles),
		encoder.WithCompletionTimeout(time.Duration(enc.CompletionTimeoutMs)*time.Millisecond),
	)

	if err := drv.Initialise(ctx); err != nil {
		log.Fatalf("encoder initialise failed: %v", err)
	}

	// --------------------
	// Per-image process + compare
	// --------------------

	failures := 0

	for _, job := range enc.Images {
		src, format, err := imgio.Load(job.Input)
		if err != nil {
			log.Printf("FAIL %s: %v", job.Input, err)
			failures++
			continue
		}
		log.Printf("processing %s (%s, %dx%d)",
			job.Input, format, src.Bounds().Dx(), src.Bounds().Dy())

		length, err := drv.Process(ctx, src)
		if err != nil {
			log.Fatalf("encode failed (%s): %v", job.Input, err)
		}
		log.Printf("encoded %s: %d bytes", job.Input, length)

		if job.Output == "" {
			continue
		}

		out, _, err := imgio.Load(job.Output)
		if err != nil {
			log.Printf("FAIL %s: output decode: %v", job.Input, err)
			failures++
			continue
		}

		diff, err := imagecmp.Compare(imgio.ToRGBA(src), imgio.ToRGBA(out))
		if err != nil {
			log.Printf("FAIL %s: compare: %v", job.Input, err)
			failures++
			continue
		}

		if diff > *enc.Threshold {
			log.Printf("FAIL %s: difference %.4f%% exceeds threshold %.4f%%",
				job.Input, diff, *enc.Threshold)
			failures++
		} else {
			log.Printf("PASS %s: difference %.4f%%", job.Input, diff)
		}
	}

	if failures > 0 {
		log.Fatalf("%d image(s) failed", failures)
	}
}

// stdLogger adapts the standard log package to encoder.Logger.
type stdLogger struct{}

func (stdLogger) Debug(msg string, keysAndValues ...interface{}) {
	logKV("DEBUG", msg, keysAndValues)
}

func (stdLogger) Info(msg string, keysAndValues ...interface{}) {
	logKV("INFO", msg, keysAndValues)
}

func (stdLogger) Error(msg string, keysAndValues ...interface{}) {
	logKV("ERROR", msg, keysAndValues)
}

func logKV(level, msg string, kv []interface{}) {
	args := append([]interface{}{level, msg}, kv...)
	log.Println(args...)
}
