package physics

import (
	"math"

	"github.com/quartercastle/vector"
)

// Acceleration clamp: magnitudes above maxAcceleration are rescaled to
// clampedAcceleration, direction preserved. Keeps a single force spike
// (e.g. two nodes created on top of each other) from launching a particle
// across the frame.
const (
	maxAcceleration     = 100.0
	clampedAcceleration = 10.0
)

// Spring is a damped elastic constraint from a parent particle to one
// child particle. All parameters are fixed for the spring's lifetime.
type Spring struct {
	RestLength     float64
	SpringConstant float64
	DampingRatio   float64
	ChildIndex     int
}

// Particle is the physical state of one graph node. Particles are owned
// by a Simulation and referenced externally only by integer index.
type Particle struct {
	// ID is an opaque external identifier supplied at creation. The
	// engine never interprets or reuses it.
	ID string

	Mass   float64
	Charge float64

	Pos vector.Vector
	Vel vector.Vector
	Acc vector.Vector

	force vector.Vector

	// Fixed permanently anchors the particle (set at creation for the
	// layout root). Held anchors it temporarily during a drag. Either
	// flag excludes the particle from force integration.
	Fixed bool
	Held  bool

	// Springs lists this particle's child constraints, in insertion order.
	Springs []Spring

	fx, fy *Lowpass
}

// NewParticle creates a particle at (x, y). Invalid physical inputs are
// substituted with safe defaults rather than rejected: a non-finite or
// non-positive mass becomes 1, a non-finite charge becomes 0 and
// non-finite coordinates become 0.
func NewParticle(id string, mass, charge, x, y float64) *Particle {
	if math.IsNaN(mass) || math.IsInf(mass, 0) || mass <= 0 {
		mass = 1
	}
	if math.IsNaN(charge) || math.IsInf(charge, 0) {
		charge = 0
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		y = 0
	}
	alpha := 1.0
	return &Particle{
		ID:     id,
		Mass:   mass,
		Charge: charge,
		Pos:    vector.Vector{x, y},
		Vel:    vector.Vector{0, 0},
		Acc:    vector.Vector{0, 0},
		force:  vector.Vector{0, 0},
		fx:     NewLowpass(alpha),
		fy:     NewLowpass(alpha),
	}
}

// filterAlpha is the smoothing coefficient for the position filters:
// 1/(1+children). Heavily connected parents are smoothed more
// aggressively than leaves, which damps the jitter they would otherwise
// inherit from every child's force contribution.
func (p *Particle) filterAlpha() float64 {
	return 1 / (1 + float64(len(p.Springs)))
}

// integrate advances the particle by dt seconds using the forces
// accumulated this tick. Held and fixed particles are not integrated;
// their filters are synced so they report their externally set position
// with no lag.
func (p *Particle) integrate(dt float64) {
	if p.Fixed || p.Held {
		p.syncFilters()
		return
	}

	vector.In(p.Acc).Add(p.force.Scale(1 / p.Mass))
	if mag := p.Acc.Magnitude(); mag > maxAcceleration {
		p.Acc = p.Acc.Scale(clampedAcceleration / mag)
	}

	vector.In(p.Vel).Add(p.Acc.Scale(dt))
	vector.In(p.Pos).Add(p.Vel.Scale(dt))

	alpha := p.filterAlpha()
	p.fx.SetAlpha(alpha)
	p.fy.SetAlpha(alpha)

	// The filter input advances the position by velocity*dt a second
	// time. This double integration is intentional smoothing inherited
	// from the reference behavior, not a bug: the extra nudge biases the
	// filter toward where the particle is heading, which settles faster
	// than filtering the raw position.
	p.Pos = vector.Vector{
		p.fx.Update(p.Pos.X() + p.Vel.X()*dt),
		p.fy.Update(p.Pos.Y() + p.Vel.Y()*dt),
	}
}

// syncFilters forces both axis filters to the current position.
func (p *Particle) syncFilters() {
	p.fx.Sync(p.Pos.X())
	p.fy.Sync(p.Pos.Y())
}

// SetPosition overwrites the raw position and filter state, bypassing
// integration. Used for drag updates and bounds clamping. Non-finite
// coordinates are ignored.
func (p *Particle) SetPosition(x, y float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return
	}
	p.Pos = vector.Vector{x, y}
	p.syncFilters()
}
