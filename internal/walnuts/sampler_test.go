package walnuts_test

import (
	"context"
	"math"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/walnuts/internal/target"
	"github.com/san-kum/walnuts/internal/vec"
	"github.com/san-kum/walnuts/internal/walnuts"
)

func seededConfig(seed int64) walnuts.Config {
	cfg := walnuts.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func firstCoordinate(chain []vec.Vector) []float64 {
	xs := make([]float64, len(chain))
	for i, q := range chain {
		xs[i] = q[0]
	}
	return xs
}

var _ = Describe("Sampler", func() {
	Describe("New", func() {
		It("rejects a nil target", func() {
			_, err := walnuts.New(nil, walnuts.DefaultConfig())
			Expect(err).To(MatchError(walnuts.ErrNilTarget))
		})

		It("rejects an invalid configuration", func() {
			cfg := walnuts.DefaultConfig()
			cfg.Dt = 0
			_, err := walnuts.New(target.NewGaussian(1, 1), cfg)
			Expect(err).To(MatchError(walnuts.ErrInvalidConfig))
		})

		It("rejects an initial position of the wrong dimension", func() {
			_, err := walnuts.New(target.NewGaussian(2, 1), walnuts.DefaultConfig(), walnuts.WithInitial(vec.Vector{1}))
			Expect(err).To(MatchError(walnuts.ErrDimensionMismatch))
		})

		It("rejects a non-finite initial position", func() {
			_, err := walnuts.New(target.NewGaussian(1, 1), walnuts.DefaultConfig(), walnuts.WithInitial(vec.Vector{math.NaN()}))
			Expect(err).To(MatchError(walnuts.ErrInvalidPosition))
		})

		It("seeds the chain with a single finite position", func() {
			s, err := walnuts.New(target.NewGaussian(3, 1), seededConfig(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Len()).To(Equal(1))
			Expect(s.Tip()).To(HaveLen(3))
			Expect(s.Tip().IsValid()).To(BeTrue())
		})

		It("starts from the given initial position", func() {
			s, err := walnuts.New(target.NewGaussian(2, 1), walnuts.DefaultConfig(), walnuts.WithInitial(vec.Vector{0.5, -0.5}))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Tip()).To(Equal(vec.Vector{0.5, -0.5}))
		})
	})

	Describe("Transition", func() {
		It("appends exactly one draw per transition", func() {
			s, err := walnuts.New(target.NewGaussian(2, 1), seededConfig(3))
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 25; i++ {
				s.Transition()
			}
			Expect(s.Len()).To(Equal(26))
			Expect(s.Stats().Transitions).To(Equal(25))
			for _, q := range s.Chain() {
				Expect(q).To(HaveLen(2))
				Expect(q.IsValid()).To(BeTrue())
			}
		})

		It("never exceeds the depth cap", func() {
			cfg := seededConfig(5)
			cfg.MaxDepth = 2
			s, err := walnuts.New(target.NewGaussian(4, 1), cfg)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 30; i++ {
				st := s.Transition()
				Expect(st.Depth).To(BeNumerically("<=", 2))
				if st.Stop == walnuts.StopMaxDepth {
					Expect(st.Depth).To(Equal(2))
				}
			}
		})

		It("is deterministic for a fixed seed", func() {
			run := func(seed int64) []vec.Vector {
				s, err := walnuts.New(target.NewBanana(2, 0.5), seededConfig(seed))
				Expect(err).NotTo(HaveOccurred())
				Expect(s.Run(context.Background(), 40)).To(Succeed())
				return s.Chain()
			}

			Expect(run(17)).To(Equal(run(17)))
			Expect(run(17)).NotTo(Equal(run(18)))
		})

		It("produces the same chain whether or not anything observes it", func() {
			plain, err := walnuts.New(target.NewFunnel(3, 3), seededConfig(9))
			Expect(err).NotTo(HaveOccurred())

			events := 0
			observed, err := walnuts.New(target.NewFunnel(3, 3), seededConfig(9),
				walnuts.WithObserver(walnuts.ObserverFunc(func(walnuts.Event) { events++ })))
			Expect(err).NotTo(HaveOccurred())

			Expect(plain.Run(context.Background(), 30)).To(Succeed())
			Expect(observed.Run(context.Background(), 30)).To(Succeed())
			Expect(observed.Chain()).To(Equal(plain.Chain()))
			Expect(events).To(BeNumerically(">", 0))
		})

		It("keeps the tip when the gradient is NaN", func() {
			tip := vec.Vector{0.25, -1.5}
			s, err := walnuts.New(&target.Broken{N: 2}, seededConfig(1), walnuts.WithInitial(tip))
			Expect(err).NotTo(HaveOccurred())

			var rejects []walnuts.Event
			s.AddObserver(walnuts.ObserverFunc(func(ev walnuts.Event) {
				if ev.Kind == walnuts.KindReject {
					rejects = append(rejects, ev)
				}
			}))

			st := s.Transition()
			Expect(st.Stop).To(Equal(walnuts.StopRejected))
			Expect(st.Depth).To(Equal(0))
			Expect(st.Moved).To(BeFalse())
			Expect(s.Len()).To(Equal(2))
			Expect(s.Tip()).To(Equal(tip))
			Expect(rejects).To(HaveLen(1))
			Expect(rejects[0].Reason).To(Equal(walnuts.RejectNonFinite))
		})
	})

	Describe("events", func() {
		It("publishes one proposal and one draw per transition", func() {
			var proposals, draws []walnuts.Event
			s, err := walnuts.New(target.NewGaussian(2, 1), seededConfig(21),
				walnuts.WithObserver(walnuts.ObserverFunc(func(ev walnuts.Event) {
					switch ev.Kind {
					case walnuts.KindProposal:
						proposals = append(proposals, ev)
					case walnuts.KindDraw:
						draws = append(draws, ev)
					}
				})))
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Run(context.Background(), 10)).To(Succeed())
			Expect(proposals).To(HaveLen(10))
			Expect(draws).To(HaveLen(10))

			chain := s.Chain()
			for i, ev := range draws {
				Expect(ev.Position).To(Equal(chain[i+1]))
				Expect(proposals[i].Position).To(Equal(chain[i+1]))
				Expect(proposals[i].Momentum).To(HaveLen(2))
				Expect(proposals[i].Stats.Depth).To(BeNumerically(">=", 0))
			}
		})

		It("records a direction before every doubling", func() {
			var kinds []walnuts.Kind
			s, err := walnuts.New(target.NewGaussian(1, 1), seededConfig(4),
				walnuts.WithObserver(walnuts.ObserverFunc(func(ev walnuts.Event) {
					kinds = append(kinds, ev.Kind)
				})))
			Expect(err).NotTo(HaveOccurred())

			st := s.Transition()
			Expect(kinds).NotTo(BeEmpty())
			Expect(kinds[0]).To(Equal(walnuts.KindDirection))

			directions := 0
			for _, k := range kinds {
				if k == walnuts.KindDirection {
					directions++
				}
			}
			if st.Stop == walnuts.StopRejected {
				Expect(directions).To(Equal(st.Depth + 1))
			} else {
				Expect(directions).To(Equal(st.Depth))
			}
			Expect(kinds[len(kinds)-1]).To(Equal(walnuts.KindDraw))
		})
	})

	Describe("sampling a standard normal", func() {
		// Statistical regression on fixed seeds. A single 100-draw window is
		// too noisy to hold the bounds for every seed, so the median over the
		// seeds 1..25 is checked instead.
		It("matches the first two moments over short chains", func() {
			var means, variances []float64
			for seed := int64(1); seed <= 25; seed++ {
				cfg := walnuts.Config{Dt: 0.4, MaxError: 0.1, MaxHalvings: 10, MaxDepth: 12, Seed: seed}
				s, err := walnuts.New(target.NewGaussian(1, 1), cfg)
				Expect(err).NotTo(HaveOccurred())
				Expect(s.Run(context.Background(), 100)).To(Succeed())

				mean, variance := stat.MeanVariance(firstCoordinate(s.Chain()[1:]), nil)
				means = append(means, mean)
				variances = append(variances, variance)
			}
			slices.Sort(means)
			slices.Sort(variances)

			Expect(stat.Quantile(0.5, stat.Empirical, means, nil)).To(BeNumerically("~", 0, 0.3))
			Expect(stat.Quantile(0.5, stat.Empirical, variances, nil)).To(BeNumerically("~", 1, 0.3))
		})

		// Statistical regression on a fixed seed.
		It("matches the first two moments over a long chain", func() {
			cfg := walnuts.Config{Dt: 0.4, MaxError: 0.1, MaxHalvings: 10, MaxDepth: 12, Seed: 42}
			s, err := walnuts.New(target.NewGaussian(1, 1), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Run(context.Background(), 5000)).To(Succeed())

			mean, variance := stat.MeanVariance(firstCoordinate(s.Chain()[1:]), nil)
			Expect(mean).To(BeNumerically("~", 0, 0.1))
			Expect(variance).To(BeNumerically("~", 1, 0.15))
		})

		It("mixes in several dimensions over a longer chain", func() {
			s, err := walnuts.New(target.NewGaussian(5, 1), seededConfig(7))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Run(context.Background(), 1000)).To(Succeed())

			draws := s.Chain()[1:]
			for d := 0; d < 5; d++ {
				xs := make([]float64, len(draws))
				for i, q := range draws {
					xs[i] = q[d]
				}
				mean, variance := stat.MeanVariance(xs, nil)
				Expect(mean).To(BeNumerically("~", 0, 0.15))
				Expect(variance).To(BeNumerically("~", 1, 0.2))
			}
			Expect(s.Stats().MoveRate()).To(BeNumerically(">", 0.7))
		})
	})

	Describe("configuration", func() {
		var s *walnuts.Sampler

		BeforeEach(func() {
			var err error
			s, err = walnuts.New(target.NewGaussian(2, 1), seededConfig(2))
			Expect(err).NotTo(HaveOccurred())
		})

		It("applies a new step size to later transitions", func() {
			cfg := s.Config()
			cfg.Dt = 0.1
			Expect(s.SetConfig(cfg)).To(Succeed())
			Expect(s.Config().Dt).To(Equal(0.1))

			s.Transition()
			Expect(s.Len()).To(Equal(2))
		})

		It("keeps the old configuration when the new one is invalid", func() {
			cfg := s.Config()
			cfg.MaxError = -1
			Expect(s.SetConfig(cfg)).To(MatchError(walnuts.ErrInvalidConfig))
			Expect(s.Config().MaxError).To(Equal(walnuts.DefaultMaxError))
		})

		It("restarts the chain on Reset", func() {
			Expect(s.Run(context.Background(), 5)).To(Succeed())
			s.Reset(99)
			Expect(s.Len()).To(Equal(1))
			Expect(s.Stats().Transitions).To(Equal(0))
			Expect(s.Config().Seed).To(Equal(int64(99)))

			fresh, err := walnuts.New(target.NewGaussian(2, 1), seededConfig(99))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Tip()).To(Equal(fresh.Tip()))
		})
	})

	Describe("Run", func() {
		It("stops when the context is cancelled", func() {
			s, err := walnuts.New(target.NewGaussian(1, 1), seededConfig(1))
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(s.Run(ctx, 10)).To(MatchError(context.Canceled))
			Expect(s.Len()).To(Equal(1))
		})
	})
})
