package physics

import (
	"math"
	"testing"
)

const stepDt = 1.0 / 60

func distance(a, b *Particle) float64 {
	return a.Pos.Sub(b.Pos).Magnitude()
}

func TestConfigNormalize(t *testing.T) {
	s := NewSimulation(Config{})
	if got := s.Bounds(); got != DefaultBounds {
		t.Errorf("Bounds() = %+v, want %+v", got, DefaultBounds)
	}
	if got := s.cfg.MinSeparation; got != DefaultMinSeparation {
		t.Errorf("MinSeparation = %v, want %v", got, DefaultMinSeparation)
	}

	s = NewSimulation(Config{MinSeparation: math.NaN()})
	if got := s.cfg.MinSeparation; got != DefaultMinSeparation {
		t.Errorf("MinSeparation with NaN input = %v, want %v", got, DefaultMinSeparation)
	}
}

func TestAddParticleSpringWiring(t *testing.T) {
	s := NewSimulation(Config{Seed: 1})

	root := s.AddParticle(NewParticle("root", 1, 0, 0, 0), -1, 0, 0, 0)
	if root != 0 {
		t.Fatalf("root index = %d, want 0", root)
	}
	if len(s.Particle(root).Springs) != 0 {
		t.Errorf("unconnected root has %d springs", len(s.Particle(root).Springs))
	}

	child := s.AddParticle(NewParticle("child", 1, 0, 0, 0), root, 0.5, 10, 0.5)
	if child != 1 {
		t.Fatalf("child index = %d, want 1", child)
	}

	springs := s.Particle(root).Springs
	if len(springs) != 1 {
		t.Fatalf("root has %d springs, want 1", len(springs))
	}
	sp := springs[0]
	if sp.ChildIndex != child || sp.RestLength != 0.5 || sp.SpringConstant != 10 || sp.DampingRatio != 0.5 {
		t.Errorf("spring = %+v", sp)
	}

	// A parent index that does not address an earlier particle adds an
	// unconnected particle.
	orphan := s.AddParticle(NewParticle("orphan", 1, 0, 0, 0), 99, 0.5, 10, 0.5)
	if orphan != 2 {
		t.Fatalf("orphan index = %d, want 2", orphan)
	}
	if len(s.Particle(root).Springs) != 1 || len(s.Particle(child).Springs) != 0 {
		t.Error("out-of-range parent index created a spring")
	}
}

func TestParticleIndexLookup(t *testing.T) {
	s := NewSimulation(Config{Seed: 1})
	s.AddParticle(NewParticle("a", 1, 0, 0, 0), -1, 0, 0, 0)

	if s.Particle(-1) != nil {
		t.Error("Particle(-1) should be nil")
	}
	if s.Particle(1) != nil {
		t.Error("Particle(1) should be nil past the end")
	}
	if s.Particle(0) == nil {
		t.Error("Particle(0) should exist")
	}
}

func TestSetBoundsIgnoresEmpty(t *testing.T) {
	s := NewSimulation(Config{Seed: 1})
	want := Rect{XMin: -2, XMax: 2, YMin: -1, YMax: 1}
	s.SetBounds(want)

	s.SetBounds(Rect{})
	s.SetBounds(Rect{XMin: 5, XMax: 5, YMin: 0, YMax: 1})
	s.SetBounds(Rect{XMin: 0, XMax: 1, YMin: 3, YMax: -3})

	if got := s.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestStepIgnoresInvalidDt(t *testing.T) {
	s := NewSimulation(Config{Seed: 1})
	s.AddParticle(NewParticle("a", 1, 1, 1, 0), -1, 0, 0, 0)
	s.AddParticle(NewParticle("b", 1, 1, -1, 0), -1, 0, 0, 0)

	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		s.Step(dt)
	}

	if x := s.Particle(0).Pos.X(); x != 1 {
		t.Errorf("position changed on invalid dt: x = %v", x)
	}
}

func TestChargeRepulsionPushesApart(t *testing.T) {
	s := NewSimulation(Config{Seed: 1})
	s.AddParticle(NewParticle("a", 1, 1, -0.2, 0), -1, 0, 0, 0)
	s.AddParticle(NewParticle("b", 1, 1, 0.2, 0), -1, 0, 0, 0)

	before := distance(s.Particle(0), s.Particle(1))
	for i := 0; i < 30; i++ {
		s.Step(stepDt)
	}
	after := distance(s.Particle(0), s.Particle(1))

	if after <= before {
		t.Errorf("distance did not grow under repulsion: before %v, after %v", before, after)
	}
}

func TestChargeAttractPullsTogether(t *testing.T) {
	s := NewSimulation(Config{Seed: 1, Attract: true})
	s.AddParticle(NewParticle("a", 1, 1, -1, 0), -1, 0, 0, 0)
	s.AddParticle(NewParticle("b", 1, 1, 1, 0), -1, 0, 0, 0)

	before := distance(s.Particle(0), s.Particle(1))
	for i := 0; i < 10; i++ {
		s.Step(stepDt)
	}
	after := distance(s.Particle(0), s.Particle(1))

	if after >= before {
		t.Errorf("distance did not shrink under attraction: before %v, after %v", before, after)
	}
}

func TestZeroSeparationTieBreak(t *testing.T) {
	build := func() *Simulation {
		s := NewSimulation(Config{Seed: 42})
		s.AddParticle(NewParticle("a", 1, 1, 0, 0), -1, 0, 0, 0)
		s.AddParticle(NewParticle("b", 1, 1, 0, 0), -1, 0, 0, 0)
		return s
	}

	s1 := build()
	s1.Step(stepDt)
	if d := distance(s1.Particle(0), s1.Particle(1)); d == 0 {
		t.Fatal("coincident particles did not separate")
	}

	// Same seed, same tie-break directions.
	s2 := build()
	s2.Step(stepDt)
	for i := 0; i < 2; i++ {
		p1, p2 := s1.Particle(i), s2.Particle(i)
		if p1.Pos.X() != p2.Pos.X() || p1.Pos.Y() != p2.Pos.Y() {
			t.Errorf("particle %d diverged across equal seeds: (%v, %v) vs (%v, %v)",
				i, p1.Pos.X(), p1.Pos.Y(), p2.Pos.X(), p2.Pos.Y())
		}
	}
}

func TestBoundsInvariant(t *testing.T) {
	bounds := Rect{XMin: -2, XMax: 2, YMin: -2, YMax: 2}
	s := NewSimulation(Config{Seed: 7, Bounds: bounds})

	// Strong mutual repulsion from close quarters tries to fling
	// particles far outside the region.
	s.AddParticle(NewParticle("a", 1, 10, -0.1, -0.1), -1, 0, 0, 0)
	s.AddParticle(NewParticle("b", 1, 10, 0.1, 0.1), -1, 0, 0, 0)
	s.AddParticle(NewParticle("c", 1, 10, 0, 0.05), -1, 0, 0, 0)

	for i := 0; i < 200; i++ {
		s.Step(stepDt)
		for j := 0; j < s.Len(); j++ {
			p := s.Particle(j)
			x, y := p.Pos.X(), p.Pos.Y()
			if x < bounds.XMin || x > bounds.XMax || y < bounds.YMin || y > bounds.YMax {
				t.Fatalf("step %d: particle %d escaped bounds at (%v, %v)", i, j, x, y)
			}
		}
	}
}

func TestSpringSettlesAtRestLength(t *testing.T) {
	s := NewSimulation(Config{Seed: 3})

	root := NewParticle("root", 1, 0.5, 0, 0)
	root.Fixed = true
	ri := s.AddParticle(root, -1, 0, 0, 0)

	child := NewParticle("child", 1, 0, 0, 0)
	ci := s.AddParticle(child, ri, 0.5, 10, 0.5)

	for i := 0; i < 500; i++ {
		s.Step(stepDt)
	}

	d := distance(s.Particle(ri), s.Particle(ci))
	if math.Abs(d-0.5) > 0.05 {
		t.Errorf("settled distance = %v, want 0.5 ± 0.05", d)
	}
	if x, y := root.Pos.X(), root.Pos.Y(); x != 0 || y != 0 {
		t.Errorf("fixed root moved to (%v, %v)", x, y)
	}
}

func TestHeldParticleIgnoresForces(t *testing.T) {
	s := NewSimulation(Config{Seed: 1})
	s.AddParticle(NewParticle("a", 1, 1, 0.3, 0), -1, 0, 0, 0)
	held := s.AddParticle(NewParticle("b", 1, 1, -0.3, 0), -1, 0, 0, 0)

	p := s.Particle(held)
	p.Held = true
	s.SetParticlePosition(held, -0.3, 0)

	for i := 0; i < 10; i++ {
		s.Step(stepDt)
	}
	if x, y := p.Pos.X(), p.Pos.Y(); x != -0.3 || y != 0 {
		t.Errorf("held particle moved to (%v, %v)", x, y)
	}

	p.Held = false
	s.Step(stepDt)
	if x := p.Pos.X(); x == -0.3 {
		t.Error("released particle did not move under net repulsion")
	}
}

func TestSelfLoopSpringIgnored(t *testing.T) {
	s := NewSimulation(Config{Seed: 1})
	i := s.AddParticle(NewParticle("a", 1, 0, 1, 1), -1, 0, 0, 0)
	p := s.Particle(i)
	p.Springs = append(p.Springs, Spring{RestLength: 0.5, SpringConstant: 10, ChildIndex: i})

	s.Step(stepDt)

	if x, y := p.Pos.X(), p.Pos.Y(); x != 1 || y != 1 {
		t.Errorf("self-loop spring moved the particle to (%v, %v)", x, y)
	}
}

func TestParticleBounds(t *testing.T) {
	s := NewSimulation(Config{Seed: 1})
	if got := s.ParticleBounds(); got != (Rect{}) {
		t.Errorf("ParticleBounds() on empty simulation = %+v, want zero", got)
	}

	s.AddParticle(NewParticle("a", 1, 0, -1, 2), -1, 0, 0, 0)
	s.AddParticle(NewParticle("b", 1, 0, 3, -4), -1, 0, 0, 0)

	want := Rect{XMin: -1, XMax: 3, YMin: -4, YMax: 2}
	if got := s.ParticleBounds(); got != want {
		t.Errorf("ParticleBounds() = %+v, want %+v", got, want)
	}
}

func TestClear(t *testing.T) {
	s := NewSimulation(Config{Seed: 1})
	s.AddParticle(NewParticle("a", 1, 0, 0, 0), -1, 0, 0, 0)
	s.AddParticle(NewParticle("b", 1, 0, 0, 0), 0, 0.5, 10, 0.5)

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", s.Len())
	}

	// The simulation is reusable after clearing.
	if idx := s.AddParticle(NewParticle("c", 1, 0, 0, 0), -1, 0, 0, 0); idx != 0 {
		t.Errorf("first index after Clear = %d, want 0", idx)
	}
}
