// Package physics implements the force-directed particle engine: charged
// point masses connected by damped springs, integrated with a fixed-step
// Euler scheme inside a rectangular bounding region.
//
// The engine never fails on malformed physical input. It runs unattended
// inside an animation loop where a propagated error would stall rendering
// indefinitely, so every invalid value is clamped or substituted with a
// documented default instead (see NewParticle and Config.normalize).
package physics

import (
	"math"
	"math/rand"
	"time"

	"github.com/quartercastle/vector"
)

// DefaultMinSeparation is the distance floor used when evaluating the
// inverse-square charge force. Separations below it are clamped before
// squaring so near-coincident particles produce a large but finite push.
const DefaultMinSeparation = 0.05

// Rect is an axis-aligned rectangle in simulation-space units.
type Rect struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.XMax - r.XMin }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.YMax - r.YMin }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.XMax <= r.XMin || r.YMax <= r.YMin }

// DefaultBounds is the bounding region used when a Config does not
// provide one.
var DefaultBounds = Rect{XMin: -10, XMax: 10, YMin: -10, YMax: 10}

// Config holds the simulation constants. The zero value is usable: every
// field is normalized to a documented default on construction.
type Config struct {
	// Bounds is the rectangular region particles are clamped to after
	// each step. An empty rect is replaced with DefaultBounds.
	Bounds Rect

	// MinSeparation is the charge-force distance floor. Non-positive or
	// non-finite values are replaced with DefaultMinSeparation.
	MinSeparation float64

	// Attract inverts the charge force so like charges pull together.
	// The default (false) repels, producing spread-out layouts.
	Attract bool

	// Seed seeds the tie-break random source used when two particles
	// coincide exactly. Zero selects a time-based seed. Tests that hit
	// the zero-distance path should set it for reproducibility.
	Seed int64
}

func (c Config) normalize() Config {
	if c.Bounds.Empty() {
		c.Bounds = DefaultBounds
	}
	if math.IsNaN(c.MinSeparation) || math.IsInf(c.MinSeparation, 0) || c.MinSeparation <= 0 {
		c.MinSeparation = DefaultMinSeparation
	}
	return c
}

// Simulation owns all particles, evaluates pairwise charge repulsion and
// spring forces, integrates motion and enforces the bounding region.
// Particle indices are append-only and stable; removal is only possible
// by clearing the whole simulation.
//
// Simulation is not safe for concurrent use. The layout facade owns one
// and serializes access to it.
type Simulation struct {
	cfg       Config
	particles []*Particle
	rng       *rand.Rand
}

// NewSimulation creates an empty simulation with the given configuration.
func NewSimulation(cfg Config) *Simulation {
	cfg = cfg.normalize()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulation{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Len returns the number of particles.
func (s *Simulation) Len() int { return len(s.particles) }

// Particle returns the particle at index i, or nil for an invalid index.
func (s *Simulation) Particle(i int) *Particle {
	if i < 0 || i >= len(s.particles) {
		return nil
	}
	return s.particles[i]
}

// Bounds returns the current bounding region.
func (s *Simulation) Bounds() Rect { return s.cfg.Bounds }

// SetBounds replaces the bounding region. Empty rects are ignored so a
// caller can never disable clamping by accident.
func (s *Simulation) SetBounds(r Rect) {
	if r.Empty() {
		return
	}
	s.cfg.Bounds = r
}

// AddParticle appends p and, if parentIndex addresses an existing
// particle, appends a spring to that parent's child list pointing at the
// new index. A negative parentIndex adds an unconnected particle.
// The new particle's index is returned.
func (s *Simulation) AddParticle(p *Particle, parentIndex int, restLength, springConstant, dampingRatio float64) int {
	s.particles = append(s.particles, p)
	idx := len(s.particles) - 1

	if parentIndex >= 0 && parentIndex < idx {
		parent := s.particles[parentIndex]
		parent.Springs = append(parent.Springs, Spring{
			RestLength:     sanitize(restLength, 0),
			SpringConstant: sanitize(springConstant, 0),
			DampingRatio:   sanitize(dampingRatio, 0),
			ChildIndex:     idx,
		})
		alpha := parent.filterAlpha()
		parent.fx.SetAlpha(alpha)
		parent.fy.SetAlpha(alpha)
	}
	return idx
}

// SetParticlePosition overwrites the raw position and filter state of
// the particle at index i, bypassing integration. Used for drag updates.
// Invalid indices are ignored.
func (s *Simulation) SetParticlePosition(i int, x, y float64) {
	if p := s.Particle(i); p != nil {
		p.SetPosition(x, y)
	}
}

// Clear discards all particles.
func (s *Simulation) Clear() {
	s.particles = nil
}

// ParticleBounds computes the axis-aligned bounding box over all current
// particle positions. It returns the zero Rect for an empty simulation.
func (s *Simulation) ParticleBounds() Rect {
	if len(s.particles) == 0 {
		return Rect{}
	}
	b := Rect{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
	for _, p := range s.particles {
		b.XMin = math.Min(b.XMin, p.Pos.X())
		b.XMax = math.Max(b.XMax, p.Pos.X())
		b.YMin = math.Min(b.YMin, p.Pos.Y())
		b.YMax = math.Max(b.YMax, p.Pos.Y())
	}
	return b
}

// Step advances the simulation by dt seconds: forces are reset and
// re-accumulated, every free particle is integrated and all positions
// are clamped to the bounding region. Non-positive or non-finite dt is
// ignored.
func (s *Simulation) Step(dt float64) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return
	}

	for _, p := range s.particles {
		p.force = vector.Vector{0, 0}
		p.Acc = vector.Vector{0, 0}
		if p.Fixed || p.Held {
			p.Vel = vector.Vector{0, 0}
		}
	}

	s.accumulateChargeForces()
	s.accumulateSpringForces()

	for _, p := range s.particles {
		p.integrate(dt)
	}

	s.clampToBounds()
}

// accumulateChargeForces applies the pairwise inverse-square charge
// force. For each ordered pair (i, j) the force on i acts along the
// separation vector from j to i, pushing like charges apart unless the
// Attract flag is set.
func (s *Simulation) accumulateChargeForces() {
	sign := 1.0
	if s.cfg.Attract {
		sign = -1.0
	}
	for i, p := range s.particles {
		for j, q := range s.particles {
			if i == j {
				continue
			}
			delta := p.Pos.Sub(q.Pos)
			r := delta.Magnitude()
			ux, uy := s.unitDirection(delta, r)
			if r < s.cfg.MinSeparation {
				r = s.cfg.MinSeparation
			}
			f := sign * p.Charge * q.Charge / (r * r)
			vector.In(p.force).Add(vector.Vector{ux * f, uy * f})
		}
	}
}

// accumulateSpringForces applies the damped spring force for every
// parent/child pair. Each endpoint is skipped independently while held
// or fixed; the damping coefficient 2*sqrt(m*k)*zeta scales the
// configured damping ratio against critical damping for that endpoint.
func (s *Simulation) accumulateSpringForces() {
	for pi, parent := range s.particles {
		for _, sp := range parent.Springs {
			// Self-loops are ignored here rather than rejected at insertion.
			if sp.ChildIndex == pi || sp.ChildIndex < 0 || sp.ChildIndex >= len(s.particles) {
				continue
			}
			child := s.particles[sp.ChildIndex]

			delta := child.Pos.Sub(parent.Pos)
			r := delta.Magnitude()
			ux, uy := s.unitDirection(delta, r)

			strain := r - sp.RestLength
			f := sp.SpringConstant * strain

			if !parent.Fixed && !parent.Held {
				damp := 2 * math.Sqrt(parent.Mass*sp.SpringConstant) * sp.DampingRatio
				vector.In(parent.force).Add(vector.Vector{
					ux*f - damp*parent.Vel.X(),
					uy*f - damp*parent.Vel.Y(),
				})
			}
			if !child.Fixed && !child.Held {
				damp := 2 * math.Sqrt(child.Mass*sp.SpringConstant) * sp.DampingRatio
				vector.In(child.force).Add(vector.Vector{
					-ux*f - damp*child.Vel.X(),
					-uy*f - damp*child.Vel.Y(),
				})
			}
		}
	}
}

// unitDirection returns the unit vector of delta, falling back to a
// uniformly random angle when the separation is exactly zero so the
// force direction is never undefined.
func (s *Simulation) unitDirection(delta vector.Vector, r float64) (float64, float64) {
	if r == 0 {
		theta := s.rng.Float64() * 2 * math.Pi
		return math.Cos(theta), math.Sin(theta)
	}
	return delta.X() / r, delta.Y() / r
}

// clampToBounds keeps every particle inside the bounding region,
// re-syncing the corresponding axis filter on clamp so the reported
// position tracks the clamped one without lag.
func (s *Simulation) clampToBounds() {
	b := s.cfg.Bounds
	for _, p := range s.particles {
		x, y := p.Pos.X(), p.Pos.Y()
		if cx := clamp(x, b.XMin, b.XMax); cx != x {
			p.Pos = vector.Vector{cx, p.Pos.Y()}
			p.fx.Sync(cx)
		}
		if cy := clamp(y, b.YMin, b.YMax); cy != y {
			p.Pos = vector.Vector{p.Pos.X(), cy}
			p.fy.Sync(cy)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

func sanitize(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
