// Package layout provides the force-directed layout facade: it maps
// external node identifiers to simulation particles, converts between
// simulation space and display space, and paces the physics simulation
// against wall-clock time.
//
// The facade is the single entry point the shell talks to. Topology
// events go in through AddNode, pointer gestures through DragStart,
// MoveNode and DragEnd, and the renderer polls Coordinates once per
// frame. Unknown identifiers are silently ignored on every operation;
// the layer above must never have to guard a lookup.
package layout

import (
	"math"
	"sync"
	"time"

	"github.com/webforce/webforce/pkg/observability"
	"github.com/webforce/webforce/pkg/physics"
	"github.com/webforce/webforce/pkg/scale"
)

// Defaults for the per-node physical parameters and the pacing loop.
const (
	DefaultNodeMass       = 1.0
	DefaultNodeCharge     = 0.5
	DefaultSpringConstant = 10.0
	DefaultRestLength     = 0.5
	DefaultDampingRatio   = 0.5

	// DefaultFramePeriod is the nominal simulation step, 60 Hz.
	DefaultFramePeriod = time.Second / 60

	// DefaultMaxStep caps the measured elapsed time between ticks so a
	// stalled host (suspended laptop, blocked event loop) does not turn
	// into one giant unstable integration step.
	DefaultMaxStep = 250 * time.Millisecond
)

// Config holds every constant the engine exposes. All fields are
// overridable; invalid values are replaced with the documented
// defaults. NodeCharge is the one field where zero is meaningful (a
// chargeless node feels no repulsion), so an explicit 0 is preserved;
// callers wanting the defaults start from DefaultConfig.
type Config struct {
	// Per-node physical parameters applied by AddNode.
	NodeMass       float64
	NodeCharge     float64
	SpringConstant float64
	RestLength     float64
	DampingRatio   float64

	// MinSeparation is the charge-force distance floor, and Attract
	// flips the charge force sign. Both pass through to physics.Config.
	MinSeparation float64
	Attract       bool

	// Seed seeds the simulation's tie-break random source (0 = time-based).
	Seed int64

	// FramePeriod is the fixed physics timestep and the pacing target.
	FramePeriod time.Duration

	// MaxStep caps the measured elapsed time between paced ticks.
	MaxStep time.Duration
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		NodeMass:       DefaultNodeMass,
		NodeCharge:     DefaultNodeCharge,
		SpringConstant: DefaultSpringConstant,
		RestLength:     DefaultRestLength,
		DampingRatio:   DefaultDampingRatio,
		MinSeparation:  physics.DefaultMinSeparation,
		FramePeriod:    DefaultFramePeriod,
		MaxStep:        DefaultMaxStep,
	}
}

func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.NodeMass <= 0 || math.IsNaN(c.NodeMass) || math.IsInf(c.NodeMass, 0) {
		c.NodeMass = d.NodeMass
	}
	if math.IsNaN(c.NodeCharge) || math.IsInf(c.NodeCharge, 0) {
		c.NodeCharge = d.NodeCharge
	}
	if c.SpringConstant <= 0 || math.IsNaN(c.SpringConstant) || math.IsInf(c.SpringConstant, 0) {
		c.SpringConstant = d.SpringConstant
	}
	if c.RestLength <= 0 || math.IsNaN(c.RestLength) || math.IsInf(c.RestLength, 0) {
		c.RestLength = d.RestLength
	}
	if c.DampingRatio <= 0 || math.IsNaN(c.DampingRatio) || math.IsInf(c.DampingRatio, 0) {
		c.DampingRatio = d.DampingRatio
	}
	if c.FramePeriod <= 0 {
		c.FramePeriod = d.FramePeriod
	}
	if c.MaxStep <= 0 {
		c.MaxStep = d.MaxStep
	}
	return c
}

// Point is a display-space coordinate pair in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Engine is the layout facade. It owns the simulation, the id→index
// lookup table and the two linear scales for simulation↔display
// conversion. Construct one per layout; there is no shared state
// between engines.
type Engine struct {
	// mu serializes all entry points against the paced tick, which
	// fires on the scheduler's goroutine. The step body never suspends
	// mid-computation, so at most one step is in flight at a time.
	mu sync.Mutex

	cfg Config

	sim    *physics.Simulation
	index  map[string]int
	xScale *scale.Linear
	yScale *scale.Linear

	sched      Scheduler
	onStep     func(*physics.Simulation)
	running    bool
	lastTick   time.Time
	cancelTick func()
}

// New creates an engine with the real-time scheduler.
func New(cfg Config) *Engine {
	return NewWithScheduler(cfg, timerScheduler{})
}

// NewWithScheduler creates an engine with an injected tick scheduler.
// Tests use this to drive the pacing loop deterministically.
func NewWithScheduler(cfg Config, sched Scheduler) *Engine {
	cfg = cfg.normalize()
	if sched == nil {
		sched = timerScheduler{}
	}
	return &Engine{
		cfg: cfg,
		sim: physics.NewSimulation(physics.Config{
			MinSeparation: cfg.MinSeparation,
			Attract:       cfg.Attract,
			Seed:          cfg.Seed,
		}),
		index:  make(map[string]int),
		xScale: scale.NewLinear(-1, 1, 0, 1),
		yScale: scale.NewLinear(1, -1, 0, 1),
		sched:  sched,
	}
}

// Simulation exposes the underlying simulation, primarily for the
// per-step callback and tests. Callers must respect the cooperative
// single-goroutine model.
func (e *Engine) Simulation() *physics.Simulation { return e.sim }

// OnStep registers a callback invoked after every paced simulation
// tick. Pass nil to remove it.
func (e *Engine) OnStep(fn func(*physics.Simulation)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onStep = fn
}

// SetDisplayScale configures the simulation↔display mapping for a
// viewport of width×height pixels showing physicalHeight simulation
// units vertically; the horizontal extent follows the aspect ratio.
// The simulation bounds are set to match the visible physical extent.
// Safe to call repeatedly, e.g. on every viewport resize. Invalid
// dimensions are ignored.
func (e *Engine) SetDisplayScale(width, height, physicalHeight float64) {
	if !(width > 0) || !(height > 0) || !(physicalHeight > 0) ||
		math.IsInf(width, 0) || math.IsInf(height, 0) || math.IsInf(physicalHeight, 0) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	ar := width / height
	halfH := physicalHeight / 2
	halfW := halfH * ar

	// Display y grows downward, so the y input range is inverted.
	e.yScale.SetRanges(halfH, -halfH, 0, height)
	e.xScale.SetRanges(-halfW, halfW, 0, width)

	e.sim.SetBounds(physics.Rect{XMin: -halfW, XMax: halfW, YMin: -halfH, YMax: halfH})
}

// AddNode creates a particle for id, springing it to the particle of
// parentID when that parent is known (pass "" for none). The new
// particle starts at its parent's current position, or the origin
// without one. The very first particle added to an empty simulation is
// permanently fixed as the layout root.
//
// Identifiers must be unique for the engine's lifetime: re-adding an
// existing id overwrites its lookup entry and orphans the old particle.
// That is a caller error the engine tolerates rather than reports.
func (e *Engine) AddNode(id, parentID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	parentIdx := -1
	if parentID != "" {
		if i, ok := e.index[parentID]; ok {
			parentIdx = i
		}
	}

	var x, y float64
	if p := e.sim.Particle(parentIdx); p != nil {
		x, y = p.Pos.X(), p.Pos.Y()
	}

	p := physics.NewParticle(id, e.cfg.NodeMass, e.cfg.NodeCharge, x, y)
	if e.sim.Len() == 0 {
		p.Fixed = true
	}

	idx := e.sim.AddParticle(p, parentIdx, e.cfg.RestLength, e.cfg.SpringConstant, e.cfg.DampingRatio)
	e.index[id] = idx

	observability.Engine().OnNodeAdded(id, idx, parentIdx)
	return idx
}

// Coordinates returns the display-space position of id.
// The second return value is false for unknown identifiers.
func (e *Engine) Coordinates(id string) (Point, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.particle(id)
	if p == nil {
		return Point{}, false
	}
	return e.toDisplay(p), true
}

// AllCoordinates returns the display-space positions of every tracked
// node. This is the renderer's per-frame read path.
func (e *Engine) AllCoordinates() map[string]Point {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]Point, len(e.index))
	for id, idx := range e.index {
		if p := e.sim.Particle(idx); p != nil {
			out[id] = e.toDisplay(p)
		}
	}
	return out
}

// DragStart marks the node as held: the integrator stops writing its
// velocity and position until DragEnd. Unknown ids are ignored.
func (e *Engine) DragStart(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p := e.particle(id); p != nil {
		p.Held = true
		observability.Engine().OnDragStart(id)
	}
}

// DragEnd releases a held node back to the integrator.
func (e *Engine) DragEnd(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p := e.particle(id); p != nil {
		p.Held = false
		observability.Engine().OnDragEnd(id)
	}
}

// MoveNode places the node at a display-space position, converting
// through the inverse scale transforms. Used for drag move events.
func (e *Engine) MoveNode(id string, displayX, displayY float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.index[id]
	if !ok {
		return
	}
	e.sim.SetParticlePosition(idx, e.xScale.ToInput(displayX), e.yScale.ToInput(displayY))
}

// Step advances the simulation by dt seconds. Direct entry point for
// hosts that drive their own clock instead of the paced loop.
func (e *Engine) Step(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sim.Step(dt)
}

// Clear discards all particles and forgets every identifier.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sim.Clear()
	e.index = make(map[string]int)
	observability.Engine().OnCleared()
}

// Len returns the number of tracked nodes.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sim.Len()
}

func (e *Engine) particle(id string) *physics.Particle {
	idx, ok := e.index[id]
	if !ok {
		return nil
	}
	return e.sim.Particle(idx)
}

func (e *Engine) toDisplay(p *physics.Particle) Point {
	return Point{
		X: e.xScale.ToOutput(p.Pos.X()),
		Y: e.yScale.ToOutput(p.Pos.Y()),
	}
}
