package topology

import (
	"math/rand"

	"github.com/google/uuid"
)

// Generator produces a synthetic growing tree, one event at a time.
// It exists for demos and load tests: the stream looks like a crawl
// frontier where each discovered page links back to a random page seen
// earlier.
type Generator struct {
	ids []string
	rng *rand.Rand
}

// NewGenerator creates a generator. Seed selects the parent-choice
// sequence; uuid node ids stay globally unique regardless.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next synthetic event. The first event is the root;
// later events attach to a uniformly random earlier node.
func (g *Generator) Next() Event {
	ev := Event{ID: uuid.NewString()}
	if len(g.ids) > 0 {
		ev.Parent = g.ids[g.rng.Intn(len(g.ids))]
	}
	g.ids = append(g.ids, ev.ID)
	return ev
}

// Count returns the number of events generated so far.
func (g *Generator) Count() int { return len(g.ids) }
