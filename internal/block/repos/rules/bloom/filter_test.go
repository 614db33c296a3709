package bloom

import (
	"fmt"
	"testing"
)

func TestFilter_AddAndMightContain(t *testing.T) {
	f := NewFactory().New(100, 0.01)
	f.Add([]byte("example.com"))
	f.Add([]byte("blocked.org"))

	if !f.MightContain([]byte("example.com")) {
		t.Errorf("added key must test positive")
	}
	if !f.MightContain([]byte("blocked.org")) {
		t.Errorf("added key must test positive")
	}
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	const n = 1000
	f := NewFactory().New(n, 0.01)
	for i := 0; i < n; i++ {
		f.Add([]byte(fmt.Sprintf("host-%d.example.com", i)))
	}
	fp := 0
	for i := 0; i < n; i++ {
		if f.MightContain([]byte(fmt.Sprintf("absent-%d.example.org", i))) {
			fp++
		}
	}
	// target 1%; allow generous slack to keep the test stable
	if fp > n/20 {
		t.Errorf("false positives = %d of %d, want well under 5%%", fp, n)
	}
}

func TestSize_Clamps(t *testing.T) {
	cases := []struct {
		n uint64
		p float64
	}{
		{0, 0.01},
		{10, 0},
		{10, 1},
		{10, -3},
		{1, 0.5},
	}
	for _, tc := range cases {
		m, k := size(tc.n, tc.p)
		if m < 1 || k < 1 {
			t.Errorf("size(%d, %v) = (%d, %d), want both >= 1", tc.n, tc.p, m, k)
		}
	}
}
