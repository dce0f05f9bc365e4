package walnuts

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/san-kum/walnuts/internal/target"
	"github.com/san-kum/walnuts/internal/vec"
)

// Sampler draws a Markov chain from a target with WALNUTS transitions.
type Sampler struct {
	target         target.Target
	cfg            Config
	rng            *rand.Rand
	momentum       MomentumSource
	customMomentum bool
	chain          []vec.Vector
	observers      []Observer
	logger         *slog.Logger
	stats          Stats
}

// Option configures a Sampler in New.
type Option func(*Sampler) error

// WithInitial starts the chain at q instead of a standard normal draw.
func WithInitial(q vec.Vector) Option {
	return func(s *Sampler) error {
		if len(q) != s.target.Dim() {
			return fmt.Errorf("%w: initial position has length %d, target dimension %d", ErrDimensionMismatch, len(q), s.target.Dim())
		}
		if !q.IsValid() {
			return ErrInvalidPosition
		}
		s.chain = []vec.Vector{q.Clone()}
		return nil
	}
}

func WithObserver(o Observer) Option {
	return func(s *Sampler) error {
		s.observers = append(s.observers, o)
		return nil
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Sampler) error {
		s.logger = l
		return nil
	}
}

// WithMomentumSource replaces the standard normal momentum draws.
func WithMomentumSource(m MomentumSource) Option {
	return func(s *Sampler) error {
		s.momentum = m
		s.customMomentum = true
		return nil
	}
}

// New creates a sampler for tgt. Without WithInitial the chain is seeded
// with a standard normal draw from the configured seed.
func New(tgt target.Target, cfg Config, opts ...Option) (*Sampler, error) {
	if tgt == nil {
		return nil, ErrNilTarget
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Sampler{
		target: tgt,
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
	}
	s.seed(cfg.Seed)

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if len(s.chain) == 0 {
		s.chain = []vec.Vector{NewStandardNormal(s.rng).Draw(tgt.Dim())}
	}
	return s, nil
}

func (s *Sampler) seed(seed int64) {
	s.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	if !s.customMomentum {
		s.momentum = NewStandardNormal(s.rng)
	}
}

func (s *Sampler) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Sampler) Config() Config { return s.cfg }

// SetConfig replaces the tunables for subsequent transitions. The seed of
// the new configuration is ignored until Reset.
func (s *Sampler) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

// Reset re-seeds the generator and restarts the chain from a fresh standard
// normal draw. Accumulated stats are cleared.
func (s *Sampler) Reset(seed int64) {
	s.cfg.Seed = seed
	s.seed(seed)
	s.chain = []vec.Vector{NewStandardNormal(s.rng).Draw(s.target.Dim())}
	s.stats = Stats{}
}

// Chain returns the positions drawn so far, seed first. The vectors are
// shared with the sampler and must not be modified.
func (s *Sampler) Chain() []vec.Vector {
	out := make([]vec.Vector, len(s.chain))
	copy(out, s.chain)
	return out
}

// Tip returns the latest draw. The vector is shared with the sampler and
// must not be modified.
func (s *Sampler) Tip() vec.Vector { return s.chain[len(s.chain)-1] }

func (s *Sampler) Len() int { return len(s.chain) }

func (s *Sampler) Stats() Stats { return s.stats }

func (s *Sampler) Target() target.Target { return s.target }

// Transition draws one new position and appends it to the chain.
func (s *Sampler) Transition() TransitionStats {
	var stats TransitionStats
	rec := newRecorder(s.observers)
	tr := &trajectory{
		integ: &integrator{target: s.target, cfg: s.cfg, rec: rec, stats: &stats},
		rng:   s.rng,
		stats: &stats,
	}

	tip := s.Tip()
	p := s.momentum.Draw(s.target.Dim())
	start := point{
		q:    tip,
		p:    p,
		grad: s.target.GradLogDensity(tip),
		logp: s.target.LogDensity(tip) - 0.5*p.Norm2(),
	}
	accum := leafSpan(start)

	stats.Stop = StopMaxDepth
	for depth := 0; depth < s.cfg.MaxDepth; depth++ {
		dir := Forward
		if s.rng.Float64() < 0.5 {
			dir = Backward
		}
		rec.step(Event{Kind: KindDirection, Direction: dir})

		next := tr.build(accum, dir, depth)
		if next == nil {
			stats.Stop = StopRejected
			break
		}
		turned := uturn(accum, next, dir)
		accum = tr.combine(accum, next, false, dir)
		stats.Depth = depth + 1
		if turned {
			stats.Stop = StopUTurn
			break
		}
	}

	draw := accum.selected.Clone()
	stats.Moved = !draw.Equal(tip)
	s.chain = append(s.chain, draw)
	s.stats.add(stats)

	if rec.active() {
		rec.publish(Event{
			Kind:       KindProposal,
			Position:   draw,
			Momentum:   p,
			Trajectory: rec.trajectory,
			Stats:      stats,
		})
		rec.publish(Event{Kind: KindDraw, Position: draw})
	}

	s.logger.Debug("transition",
		"n", s.stats.Transitions,
		"depth", stats.Depth,
		"stop", stats.Stop,
		"macro_steps", stats.MacroSteps,
		"rejected", stats.RejectedMacroSteps,
		"moved", stats.Moved,
	)
	return stats
}

// Run performs n transitions. The context is checked between transitions.
func (s *Sampler) Run(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.Transition()
	}

	s.logger.Info("run complete",
		"transitions", s.stats.Transitions,
		"move_rate", s.stats.MoveRate(),
		"mean_depth", s.stats.MeanDepth(),
		"leapfrog_steps", s.stats.LeapfrogSteps,
	)
	return nil
}
