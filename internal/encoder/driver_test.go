// internal/encoder/driver_test.go
package encoder

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"
)

// ---- fake bench ----
// One fake implements the bus channel, the timing source, and the signal
// pins, recording every call into a single ordered event stream.

type event struct {
	kind  string // "write", "read", "edge", "reset", "pixel", "wren", "afull"
	addr  uint32
	value uint32
	on    bool
}

type fakeBench struct {
	events []event

	regs        map[uint32]uint32
	statusSeq   []uint32 // successive STATUS reads; last value repeats
	statusReads int
	length      uint32

	afullSeq []uint32 // successive almost-full samples; 0=false, past end=false

	writeErrAfter int // fail the Nth register write (1-based); 0 = never
	writeCount    int
}

func newFakeBench() *fakeBench {
	return &fakeBench{regs: make(map[uint32]uint32)}
}

func (tb *fakeBench) Write(ctx context.Context, addr, value uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tb.writeCount++
	if tb.writeErrAfter > 0 && tb.writeCount >= tb.writeErrAfter {
		return errors.New("bus write failed")
	}
	tb.events = append(tb.events, event{kind: "write", addr: addr, value: value})
	tb.regs[addr] = value
	return nil
}

func (tb *fakeBench) Read(ctx context.Context, addr uint32) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if addr == RegStatus {
		i := tb.statusReads
		tb.statusReads++
		if i >= len(tb.statusSeq) {
			i = len(tb.statusSeq) - 1
		}
		if i < 0 {
			return 0, nil
		}
		tb.events = append(tb.events, event{kind: "read", addr: addr})
		return tb.statusSeq[i], nil
	}
	if addr == RegLength {
		return tb.length, nil
	}
	return tb.regs[addr], nil
}

func (tb *fakeBench) WaitEdge(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tb.events = append(tb.events, event{kind: "edge"})
	return nil
}

func (tb *fakeBench) SetReset(ctx context.Context, asserted bool) error {
	tb.events = append(tb.events, event{kind: "reset", on: asserted})
	return nil
}

func (tb *fakeBench) SetPixel(ctx context.Context, word uint32) error {
	tb.events = append(tb.events, event{kind: "pixel", value: word})
	return nil
}

func (tb *fakeBench) SetWriteEnable(ctx context.Context, asserted bool) error {
	tb.events = append(tb.events, event{kind: "wren", on: asserted})
	return nil
}

func (tb *fakeBench) AlmostFull(ctx context.Context) (bool, error) {
	var full bool
	if len(tb.afullSeq) > 0 {
		full = tb.afullSeq[0] != 0
		tb.afullSeq = tb.afullSeq[1:]
	}
	tb.events = append(tb.events, event{kind: "afull", on: full})
	return full, nil
}

func (tb *fakeBench) byKind(kind string) []event {
	var out []event
	for _, e := range tb.events {
		if e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// ---- helpers ----

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// ---- tests ----

func TestInitialise_ResetThenTablesInOrder(t *testing.T) {
	tb := newFakeBench()
	d := New(tb, tb, tb)

	if err := d.Initialise(context.Background()); err != nil {
		t.Fatalf("Initialise err=%v", err)
	}

	// Reset discipline: assert, >= 10 edges, deassert, one more edge,
	// all before the first register write.
	if len(tb.events) == 0 {
		t.Fatal("no events recorded")
	}
	if first := tb.events[0]; first.kind != "reset" || !first.on {
		t.Fatalf("first event = %+v, want reset asserted", first)
	}

	edges := 0
	deassertAt := -1
	for i, e := range tb.events {
		switch {
		case e.kind == "edge" && deassertAt < 0:
			edges++
		case e.kind == "reset" && !e.on:
			deassertAt = i
		case e.kind == "write" && deassertAt < 0:
			t.Fatalf("register write at event %d before reset deassert", i)
		}
	}
	if deassertAt < 0 {
		t.Fatal("reset never deasserted")
	}
	if edges < 10 {
		t.Fatalf("reset held for %d edges, want >= 10", edges)
	}
	if tb.events[deassertAt+1].kind != "edge" {
		t.Fatalf("expected settle edge after reset deassert, got %+v", tb.events[deassertAt+1])
	}

	// Exactly 128 writes, luminance then chrominance, ascending index.
	writes := tb.byKind("write")
	if len(writes) != 128 {
		t.Fatalf("got %d table writes, want 128", len(writes))
	}
	for i := 0; i < 64; i++ {
		wantAddr := QuantLumBase + uint32(i)*4
		if writes[i].addr != wantAddr {
			t.Fatalf("lum write %d at 0x%04X, want 0x%04X", i, writes[i].addr, wantAddr)
		}
		if writes[i].value != uint32(DefaultLuminanceTable[i]) {
			t.Fatalf("lum write %d = 0x%02X, want 0x%02X",
				i, writes[i].value, DefaultLuminanceTable[i])
		}
	}
	for i := 0; i < 64; i++ {
		w := writes[64+i]
		wantAddr := QuantChrBase + uint32(i)*4
		if w.addr != wantAddr {
			t.Fatalf("chr write %d at 0x%04X, want 0x%04X", i, w.addr, wantAddr)
		}
		if w.value != uint32(DefaultChrominanceTable[i]) {
			t.Fatalf("chr write %d = 0x%02X, want 0x%02X",
				i, w.value, DefaultChrominanceTable[i])
		}
	}
}

func TestInitialise_BusFailureAborts(t *testing.T) {
	tb := newFakeBench()
	tb.writeErrAfter = 10
	d := New(tb, tb, tb)

	err := d.Initialise(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	// No retry: the failing write is attempted once and nothing follows.
	if tb.writeCount != 10 {
		t.Fatalf("got %d write attempts, want 10", tb.writeCount)
	}
}

func TestEncode_StartAndSizeBeforePixels(t *testing.T) {
	tb := newFakeBench()
	d := New(tb, tb, tb)

	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})

	if err := d.Encode(context.Background(), img); err != nil {
		t.Fatalf("Encode err=%v", err)
	}

	writes := tb.byKind("write")
	if len(writes) != 2 {
		t.Fatalf("got %d register writes, want 2", len(writes))
	}
	if writes[0].addr != RegStart || writes[0].value != (ModeRGB|CtrlEnable) {
		t.Fatalf("first write %+v, want START <- 0x%02X", writes[0], ModeRGB|CtrlEnable)
	}
	if writes[1].addr != RegImageSize || writes[1].value != 0x20001 {
		t.Fatalf("second write %+v, want IMAGE_SIZE <- 0x20001", writes[1])
	}

	pixels := tb.byKind("pixel")
	if len(pixels) != 2 {
		t.Fatalf("got %d pixel words, want 2", len(pixels))
	}
	if pixels[0].value != 0x0000FF || pixels[1].value != 0x00FF00 {
		t.Fatalf("pixel words = [0x%06X, 0x%06X], want [0x0000FF, 0x00FF00]",
			pixels[0].value, pixels[1].value)
	}

	// IMAGE_SIZE lands before either pixel word.
	sawSize := false
	for _, e := range tb.events {
		if e.kind == "write" && e.addr == RegImageSize {
			sawSize = true
		}
		if e.kind == "pixel" && !sawSize {
			t.Fatal("pixel word presented before IMAGE_SIZE write")
		}
	}
}

func TestEncode_RasterOrderPixelCount(t *testing.T) {
	tb := newFakeBench()
	d := New(tb, tb, tb)

	const w, h = 4, 3
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var want []uint32
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x * y), A: 255}
			img.SetRGBA(x, y, c)
			want = append(want, PackPixel(c.R, c.G, c.B))
		}
	}

	if err := d.Encode(context.Background(), img); err != nil {
		t.Fatalf("Encode err=%v", err)
	}

	pixels := tb.byKind("pixel")
	if len(pixels) != w*h {
		t.Fatalf("got %d pixel words, want %d", len(pixels), w*h)
	}
	for i, e := range pixels {
		if e.value != want[i] {
			t.Fatalf("pixel %d = 0x%06X, want 0x%06X", i, e.value, want[i])
		}
	}

	// One enable pulse per word.
	asserts := 0
	for _, e := range tb.byKind("wren") {
		if e.on {
			asserts++
		}
	}
	if asserts != w*h {
		t.Fatalf("got %d write-enable pulses, want %d", asserts, w*h)
	}
}

func TestEncode_BackpressureHoldsWord(t *testing.T) {
	tb := newFakeBench()
	tb.afullSeq = []uint32{1, 1, 1, 0}
	d := New(tb, tb, tb)

	img := solidImage(1, 1, color.RGBA{R: 0x42, A: 255})
	if err := d.Encode(context.Background(), img); err != nil {
		t.Fatalf("Encode err=%v", err)
	}

	// The word is held through three full samples and advances only on
	// the fourth, where almost-full reads false.
	samples := tb.byKind("afull")
	if len(samples) != 4 {
		t.Fatalf("got %d almost-full samples, want 4", len(samples))
	}
	if samples[3].on {
		t.Fatal("advanced on an asserted almost-full sample")
	}

	// Write-enable never drops while a sample reads full.
	enabled := false
	lastFull := false
	for _, e := range tb.events {
		switch e.kind {
		case "wren":
			if !e.on && enabled && lastFull {
				t.Fatal("write-enable deasserted while almost-full held")
			}
			enabled = e.on
		case "afull":
			lastFull = e.on
		}
	}

	if got := tb.byKind("pixel"); len(got) != 1 {
		t.Fatalf("got %d pixel words, want exactly 1", len(got))
	}
}

func TestEncode_FreshSamplePerEdge(t *testing.T) {
	tb := newFakeBench()
	tb.afullSeq = []uint32{1, 0}
	d := New(tb, tb, tb)

	img := solidImage(1, 1, color.RGBA{A: 255})
	if err := d.Encode(context.Background(), img); err != nil {
		t.Fatalf("Encode err=%v", err)
	}

	// Every almost-full sample is preceded by its own timing edge: no
	// cached reads.
	prev := ""
	for _, e := range tb.events {
		if e.kind == "afull" && prev != "edge" {
			t.Fatalf("almost-full sampled without a fresh edge (prev=%s)", prev)
		}
		prev = e.kind
	}
}

func TestEncode_BadGeometry(t *testing.T) {
	tb := newFakeBench()
	d := New(tb, tb, tb)

	err := d.Encode(context.Background(), image.NewRGBA(image.Rect(0, 0, 0, 0)))

	var fse *FrameSizeError
	if !errors.As(err, &fse) {
		t.Fatalf("err=%v, want FrameSizeError", err)
	}
	if len(tb.events) != 0 {
		t.Fatalf("bus activity before geometry check: %d events", len(tb.events))
	}
}

func TestEncode_Cancelled(t *testing.T) {
	tb := newFakeBench()
	d := New(tb, tb, tb)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Encode(ctx, solidImage(1, 1, color.RGBA{A: 255}))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}

func TestAwaitCompletion_StrictDoneMatch(t *testing.T) {
	tb := newFakeBench()
	// 0x03 has the done bit set but is not the done value; polling must
	// continue past it.
	tb.statusSeq = []uint32{0x00, 0x03, 0x02}
	tb.length = 1234
	d := New(tb, tb, tb)

	length, err := d.AwaitCompletion(context.Background())
	if err != nil {
		t.Fatalf("AwaitCompletion err=%v", err)
	}
	if length != 1234 {
		t.Fatalf("length=%d, want 1234", length)
	}
	if tb.statusReads != 3 {
		t.Fatalf("got %d status reads, want 3", tb.statusReads)
	}
}

func TestAwaitCompletion_Timeout(t *testing.T) {
	tb := newFakeBench()
	tb.statusSeq = []uint32{0x01}
	d := New(tb, tb, tb, WithCompletionTimeout(time.Nanosecond))

	_, err := d.AwaitCompletion(context.Background())

	var cte *CompletionTimeoutError
	if !errors.As(err, &cte) {
		t.Fatalf("err=%v, want CompletionTimeoutError", err)
	}
	if cte.LastStatus != 0x01 {
		t.Fatalf("LastStatus=0x%02X, want 0x01", cte.LastStatus)
	}
}

func TestPackPixel(t *testing.T) {
	for v := 0; v < 256; v++ {
		b := byte(v)
		if got := PackPixel(b, 0, 0); got != uint32(v) {
			t.Fatalf("PackPixel(%d,0,0) = 0x%06X", v, got)
		}
		if got := PackPixel(0, b, 0); got != uint32(v)<<8 {
			t.Fatalf("PackPixel(0,%d,0) = 0x%06X", v, got)
		}
		if got := PackPixel(0, 0, b); got != uint32(v)<<16 {
			t.Fatalf("PackPixel(0,0,%d) = 0x%06X", v, got)
		}
	}
	if got := PackPixel(0x11, 0x22, 0x33); got != 0x332211 {
		t.Fatalf("PackPixel(0x11,0x22,0x33) = 0x%06X, want 0x332211", got)
	}
}

func TestSizeWord(t *testing.T) {
	if got := SizeWord(2, 1); got != 0x20001 {
		t.Fatalf("SizeWord(2,1) = 0x%X, want 0x20001", got)
	}
	if got := SizeWord(96, 96); got != 96<<16|96 {
		t.Fatalf("SizeWord(96,96) = 0x%X", got)
	}
}
