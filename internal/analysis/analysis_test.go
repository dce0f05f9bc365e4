package analysis

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/san-kum/walnuts/internal/vec"
)

func TestFFTRoundTrip(t *testing.T) {
	data := []float64{1, 2, 3, 4, 0, -1, -2, 5}
	back := InverseFFT(FFT(data))
	for i := range data {
		if cmplx.Abs(back[i]-complex(data[i], 0)) > 1e-9 {
			t.Errorf("index %d: got %v, want %f", i, back[i], data[i])
		}
	}
}

func TestFFTImpulse(t *testing.T) {
	spectrum := FFT([]float64{1, 0, 0, 0})
	for i, v := range spectrum {
		if cmplx.Abs(v-1) > 1e-9 {
			t.Errorf("bin %d: got %v, want 1", i, v)
		}
	}
}

func TestAutocorrelation(t *testing.T) {
	t.Run("alternating", func(t *testing.T) {
		n := 100
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = 1
			if i%2 == 1 {
				xs[i] = -1
			}
		}
		rho := Autocorrelation(xs, 2)
		if rho[0] != 1 {
			t.Errorf("rho[0] = %f, want 1", rho[0])
		}
		if want := -float64(n-1) / float64(n); math.Abs(rho[1]-want) > 1e-9 {
			t.Errorf("rho[1] = %f, want %f", rho[1], want)
		}
		if want := float64(n-2) / float64(n); math.Abs(rho[2]-want) > 1e-9 {
			t.Errorf("rho[2] = %f, want %f", rho[2], want)
		}
	})

	t.Run("constant", func(t *testing.T) {
		rho := Autocorrelation([]float64{2, 2, 2, 2, 2}, 3)
		if rho[0] != 1 || rho[1] != 0 || rho[3] != 0 {
			t.Errorf("unexpected autocorrelation %v", rho)
		}
	})

	t.Run("lag capped by length", func(t *testing.T) {
		if got := len(Autocorrelation([]float64{1, 2, 3}, 10)); got != 3 {
			t.Errorf("len = %d, want 3", got)
		}
	})
}

func TestESS(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	t.Run("independent draws", func(t *testing.T) {
		n := 4000
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = rng.NormFloat64()
		}
		ess := ESS(xs)
		if ess < 0.7*float64(n) || ess > 1.3*float64(n) {
			t.Errorf("ESS = %.0f, expected close to %d", ess, n)
		}
	})

	t.Run("ar1", func(t *testing.T) {
		n := 10000
		phi := 0.9
		xs := make([]float64, n)
		for i := 1; i < n; i++ {
			xs[i] = phi*xs[i-1] + rng.NormFloat64()
		}
		want := float64(n) * (1 - phi) / (1 + phi)
		ess := ESS(xs)
		if ess < 0.5*want || ess > 2*want {
			t.Errorf("ESS = %.0f, expected near %.0f", ess, want)
		}
	})

	t.Run("short series", func(t *testing.T) {
		if got := ESS([]float64{1, 2}); got != 2 {
			t.Errorf("ESS = %f, want 2", got)
		}
	})
}

func TestSummarize(t *testing.T) {
	chain := []vec.Vector{{1, 10}, {2, 20}, {3, 30}, {4, 40}, {5, 50}}

	s, err := Summarize(chain, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.N != 5 || s.Mean != 3 || s.Variance != 2.5 {
		t.Errorf("unexpected summary %+v", s)
	}
	if math.Abs(s.Std-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("Std = %f, want %f", s.Std, math.Sqrt(2.5))
	}
	if s.Q05 != 1 || s.Q50 != 3 || s.Q95 != 5 {
		t.Errorf("quantiles = (%f, %f, %f), want (1, 3, 5)", s.Q05, s.Q50, s.Q95)
	}

	all, err := SummarizeAll(chain)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[1].Mean != 30 {
		t.Errorf("unexpected summaries %+v", all)
	}
}

func TestSummarizeErrors(t *testing.T) {
	if _, err := Summarize(nil, 0); !errors.Is(err, ErrEmptyChain) {
		t.Errorf("expected ErrEmptyChain, got %v", err)
	}
	if _, err := Summarize([]vec.Vector{{1}}, 1); !errors.Is(err, ErrCoordinate) {
		t.Errorf("expected ErrCoordinate, got %v", err)
	}
	s, err := Summarize([]vec.Vector{{4}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.Variance != 0 {
		t.Errorf("single draw variance = %f, want 0", s.Variance)
	}
}

func TestScatterToASCII(t *testing.T) {
	chain := []vec.Vector{{-1, -1}, {1, 1}, {0.5, -0.5}}
	out := ScatterToASCII(Project(chain, 0, 1), 20, 10)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	if !strings.ContainsRune(out, '·') {
		t.Error("expected plotted points")
	}
	if !strings.ContainsRune(out, '│') || !strings.ContainsRune(out, '─') {
		t.Error("expected axes through the origin")
	}
	if Project(chain, 0, 2) != nil {
		t.Error("expected nil projection for an out-of-range coordinate")
	}
}
