package scene

import "sync"

// Graph holds the live objects of the running scene.
type Graph struct {
	mu      sync.RWMutex
	objects []*Object
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Objects returns the live objects in load order. The slice is a copy.
func (g *Graph) Objects() []*Object {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Object, len(g.objects))
	copy(out, g.objects)
	return out
}

// Load makes objects live. In LoadSingle mode every non-persistent object
// already live is dropped first. It returns the number of dropped objects.
func (g *Graph) Load(objects []*Object, mode LoadMode) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	dropped := 0
	if mode == LoadSingle {
		kept := g.objects[:0:0]
		for _, o := range g.objects {
			if o.Persistent {
				kept = append(kept, o)
				continue
			}
			dropped++
		}
		g.objects = kept
	}
	g.objects = append(g.objects, objects...)
	return dropped
}

// Find returns the first live object with the given name.
func (g *Graph) Find(name string) (*Object, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, o := range g.objects {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}
