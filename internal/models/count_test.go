package models

import "testing"

func TestCountDiffers(t *testing.T) {
	cases := []struct {
		name     string
		previous Count
		current  int
		want     bool
	}{
		{"unknown previous", Count{}, 162, true},
		{"unknown previous zero current", Count{}, 0, true},
		{"increase", KnownCount(150), 162, true},
		{"decrease", KnownCount(150), 140, true},
		{"unchanged", KnownCount(150), 150, false},
		{"unchanged zero", KnownCount(0), 0, false},
	}

	for _, tc := range cases {
		if got := tc.previous.Differs(tc.current); got != tc.want {
			t.Fatalf("%s: Differs(%d) = %v, want %v", tc.name, tc.current, got, tc.want)
		}
	}
}

func TestCountDeltaAndString(t *testing.T) {
	if _, ok := (Count{}).Delta(5); ok {
		t.Fatalf("expected unknown count to have no delta")
	}
	delta, ok := KnownCount(150).Delta(162)
	if !ok || delta != 12 {
		t.Fatalf("Delta() = %d, %v, want 12, true", delta, ok)
	}
	if got := (Count{}).String(); got != "unknown" {
		t.Fatalf("String() = %q, want unknown", got)
	}
	if got := KnownCount(0).String(); got != "0" {
		t.Fatalf("String() = %q, want 0", got)
	}
}

func TestSignedDelta(t *testing.T) {
	cases := map[int]string{12: "+12", -3: "-3", 0: "0"}
	for input, want := range cases {
		if got := SignedDelta(input); got != want {
			t.Fatalf("SignedDelta(%d) = %q, want %q", input, got, want)
		}
	}
}
