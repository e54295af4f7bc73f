package difficulty

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLookupCalibrated(t *testing.T) {
	table := Default()

	if got := table.MaxCalibration(); got != MaxCalibration {
		t.Fatalf("MaxCalibration() = %d, want %d", got, MaxCalibration)
	}

	for i, row := range defaultRows {
		lvl := table.Lookup(uint32(i))
		if lvl.Quota != row.Quota || lvl.Interval != row.Interval || lvl.Batch != row.Batch {
			t.Errorf("Lookup(%d) = %+v, want row %+v", i, lvl, row)
		}
	}
}

func TestLookupScaled(t *testing.T) {
	table := Default()

	tests := []struct {
		name      string
		index     uint32
		wantMult  uint32
		wantQuota uint32
	}{
		{"first scaled level doubles", 10, 2, 3200},
		{"level 11", 11, 3, 4800},
		{"level 12", 12, 4, 6400},
		{"level 30", 30, 22, 35200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if m := Multiplier(tt.index, MaxCalibration); m != tt.wantMult {
				t.Fatalf("Multiplier(%d) = %d, want %d", tt.index, m, tt.wantMult)
			}
			lvl := table.Lookup(tt.index)
			if lvl.Quota != tt.wantQuota {
				t.Errorf("Quota = %d, want %d", lvl.Quota, tt.wantQuota)
			}
			if lvl.Batch != 15*tt.wantMult {
				t.Errorf("Batch = %d, want %d", lvl.Batch, 15*tt.wantMult)
			}
			wantInterval := float32(0.9) * float32(tt.wantMult)
			if lvl.Interval != wantInterval {
				t.Errorf("Interval = %v, want %v", lvl.Interval, wantInterval)
			}
		})
	}
}

func TestQuotaMonotonic(t *testing.T) {
	table := Default()
	prev := table.Lookup(0).Quota
	for i := uint32(1); i < 200; i++ {
		q := table.Lookup(i).Quota
		if q < prev {
			t.Fatalf("quota decreased at level %d: %d < %d", i, q, prev)
		}
		prev = q
	}

	// Near the overflow point of quota*multiplier the quota saturates.
	tests := []uint32{2684361, 2684362, 2684363, 2684364, 10_000_000, math.MaxUint32 - 1, math.MaxUint32}
	for _, i := range tests {
		q := table.Lookup(i).Quota
		if q < prev {
			t.Fatalf("quota decreased at level %d: %d < %d", i, q, prev)
		}
		prev = q
	}
	if prev != math.MaxUint32 {
		t.Errorf("quota at level %d = %d, want saturated %d", uint32(math.MaxUint32), prev, uint32(math.MaxUint32))
	}
	if b := table.Lookup(math.MaxUint32).Batch; b != math.MaxUint32 {
		t.Errorf("batch at level %d = %d, want saturated", uint32(math.MaxUint32), b)
	}
}

func TestMultiplierStrictlyIncreasing(t *testing.T) {
	prev := Multiplier(MaxCalibration+1, MaxCalibration)
	if prev < 1 {
		t.Fatalf("multiplier below 1: %d", prev)
	}
	for i := uint32(MaxCalibration + 2); i < 100; i++ {
		m := Multiplier(i, MaxCalibration)
		if m <= prev {
			t.Fatalf("multiplier not increasing at %d: %d <= %d", i, m, prev)
		}
		prev = m
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		wantMax uint32
	}{
		{
			name:    "valid two rows",
			yaml:    "rows:\n  - {quota: 5, interval: 1.5, batch: 1}\n  - {quota: 9, interval: 1.0, batch: 2}\n",
			wantMax: 1,
		},
		{name: "empty", yaml: "rows: []\n", wantErr: true},
		{
			name:    "decreasing quota",
			yaml:    "rows:\n  - {quota: 9, interval: 1.5, batch: 1}\n  - {quota: 5, interval: 1.0, batch: 2}\n",
			wantErr: true,
		},
		{name: "zero interval", yaml: "rows:\n  - {quota: 5, interval: 0, batch: 1}\n", wantErr: true},
		{name: "zero batch", yaml: "rows:\n  - {quota: 5, interval: 1, batch: 0}\n", wantErr: true},
		{name: "not yaml", yaml: "rows: [", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if table.MaxCalibration() != tt.wantMax {
				t.Errorf("MaxCalibration() = %d, want %d", table.MaxCalibration(), tt.wantMax)
			}
		})
	}
}

func TestParseEmptyIsErrEmptyTable(t *testing.T) {
	_, err := Parse([]byte("rows: []\n"))
	if !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("expected ErrEmptyTable, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	table, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if table.Lookup(9).Quota != 1600 {
		t.Errorf("default table last quota = %d, want 1600", table.Lookup(9).Quota)
	}

	path := filepath.Join(t.TempDir(), "difficulty.yaml")
	content := "rows:\n  - {quota: 3, interval: 0.5, batch: 3}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err = Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}
	// Single-row table: index 1 is already scaled by 2.
	if got := table.Lookup(1).Quota; got != 6 {
		t.Errorf("Lookup(1).Quota = %d, want 6", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
