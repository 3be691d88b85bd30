package backend

import (
	"testing"

	"github.com/AlonBiner/vmtranslate/vmem"
)

func testConfig(t *testing.T) vmem.Config {
	t.Helper()
	cfg, err := vmem.NewConfig(5, 4, 1)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	return cfg
}

func TestMemoryReadWrite(t *testing.T) {
	cfg := testConfig(t)
	m := New(cfg)

	m.Write(5, 42)
	if got := m.Read(5); got != 42 {
		t.Errorf("Read(5) = %d, want 42", got)
	}
}

func TestMemoryRestoreOfNeverEvictedPageIsZero(t *testing.T) {
	cfg := testConfig(t)
	m := New(cfg)

	m.Write(2, 99) // dirty the frame first
	m.Restore(1, 7)
	for i := vmem.Word(0); i < cfg.PageSize; i++ {
		if got := m.Read(1*cfg.PageSize + i); got != 0 {
			t.Errorf("frame 1 word %d after restoring an unevicted page = %d, want 0", i, got)
		}
	}
}

func TestMemoryEvictThenRestoreRoundTrips(t *testing.T) {
	cfg := testConfig(t)
	m := New(cfg)

	base := vmem.Word(2) * cfg.PageSize
	for i := vmem.Word(0); i < cfg.PageSize; i++ {
		m.Write(base+i, 10+i)
	}
	m.Evict(2, 3)

	// Overwrite the frame so Restore can't be a no-op by coincidence.
	for i := vmem.Word(0); i < cfg.PageSize; i++ {
		m.Write(base+i, 0)
	}
	m.Restore(2, 3)
	for i := vmem.Word(0); i < cfg.PageSize; i++ {
		if got := m.Read(base + i); got != 10+i {
			t.Errorf("word %d after evict/restore = %d, want %d", i, got, 10+i)
		}
	}
}

func TestRecordingPassesThroughAndLogs(t *testing.T) {
	cfg := testConfig(t)
	m := New(cfg)
	rec := NewRecording(m)

	vm := vmem.New(cfg, rec)
	rec.Reset()

	if err := vm.Write(13, 7); err != nil {
		t.Fatalf("Write(13): %v", err)
	}
	var out vmem.Word
	if err := vm.Read(13, &out); err != nil {
		t.Fatalf("Read(13): %v", err)
	}
	if out != 7 {
		t.Errorf("Read(13) = %d, want 7", out)
	}
	if len(rec.Calls()) == 0 {
		t.Error("expected Recording to have logged at least one call")
	}

	rec.Reset()
	if err := vm.Read(cfg.VirtualMemorySize, &out); err != vmem.ErrAddressOutOfRange {
		t.Fatalf("Read out of range: got %v", err)
	}
	if len(rec.Calls()) != 0 {
		t.Errorf("out-of-range Read reached the backend %d times, want 0", len(rec.Calls()))
	}
}

func TestRecordingWriteCount(t *testing.T) {
	cfg := testConfig(t)
	rec := NewRecording(New(cfg))

	rec.Write(3, 1)
	rec.Write(3, 2)
	rec.Write(4, 9)

	if got := rec.WriteCount(3); got != 2 {
		t.Errorf("WriteCount(3) = %d, want 2", got)
	}
	if got := rec.WriteCount(4); got != 1 {
		t.Errorf("WriteCount(4) = %d, want 1", got)
	}
	if got := rec.WriteCount(99); got != 0 {
		t.Errorf("WriteCount(99) = %d, want 0", got)
	}
}

func TestRecordingWriteCountAndEvictions(t *testing.T) {
	cfg, err := vmem.NewConfig(4, 4, 2) // TablesDepth=1, NumFrames=4
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	m := New(cfg)
	rec := NewRecording(m)
	vm := vmem.New(cfg, rec)

	for _, addr := range []vmem.Word{0, 4, 8} {
		if err := vm.Write(addr, addr); err != nil {
			t.Fatalf("Write(%d): %v", addr, err)
		}
	}

	rec.Reset()
	if err := vm.Write(12, 99); err != nil {
		t.Fatalf("Write(12): %v", err)
	}
	evictions := rec.Evictions()
	if len(evictions) != 1 {
		t.Fatalf("got %d evictions, want 1", len(evictions))
	}
	if evictions[0] != 1 {
		t.Errorf("evicted page = %d, want 1", evictions[0])
	}

	rec.Reset()
	if err := vm.Write(0, 55); err != nil {
		t.Fatalf("Write(0): %v", err)
	}
	writeCalls := 0
	for _, c := range rec.Calls() {
		if c.Op == "write" {
			writeCalls++
		}
	}
	if writeCalls != 1 {
		t.Errorf("re-writing an already-mapped address made %d backend writes, want 1", writeCalls)
	}
	var out vmem.Word
	if err := vm.Read(0, &out); err != nil {
		t.Fatalf("Read(0): %v", err)
	}
	if out != 55 {
		t.Errorf("Read(0) = %d, want 55", out)
	}
}
