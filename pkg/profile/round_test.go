package profile

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.16, 0.16},
		{0.8300000001, 0.83},
		{1.0533333, 1.05},
		{2.3933333, 2.39},
		{1.5 - 0.04, 1.46},
		{0.125, 0.13},
		{-0.125, -0.13},
		{0, 0},
	}

	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoundIsIdempotent(t *testing.T) {
	for i := 0; i < 10000; i++ {
		x := float64(i) * 0.0037
		once := Round(x)
		if twice := Round(once); twice != once {
			t.Fatalf("Round(Round(%v)) = %v, want %v", x, twice, once)
		}
	}
}

func TestRoundAll(t *testing.T) {
	in := []float64{0.161, 1.4999, 2.846}
	got := RoundAll(in)
	want := []float64{0.16, 1.5, 2.85}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RoundAll()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if in[0] != 0.161 {
		t.Error("RoundAll must not modify its input")
	}
}

func TestKeyAndEqual(t *testing.T) {
	if Key(0.83) != 83 {
		t.Errorf("Key(0.83) = %d, want 83", Key(0.83))
	}
	if !Equal(0.1+0.2, 0.3) {
		t.Error("Equal(0.1+0.2, 0.3) = false, want true")
	}
	if Equal(0.3, 0.31) {
		t.Error("Equal(0.3, 0.31) = true, want false")
	}
}

func TestFloorCeilUnit(t *testing.T) {
	tests := []struct {
		in          float64
		floor, ceil float64
	}{
		{2.84, 2.84, 2.84},
		{3 - 0.16, 2.84, 2.84},
		{2.005, 2, 2.01},
		{0.161, 0.16, 0.17},
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := FloorUnit(tt.in); got != tt.floor {
			t.Errorf("FloorUnit(%v) = %v, want %v", tt.in, got, tt.floor)
		}
		if got := CeilUnit(tt.in); got != tt.ceil {
			t.Errorf("CeilUnit(%v) = %v, want %v", tt.in, got, tt.ceil)
		}
	}
}
