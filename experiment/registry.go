package experiment

import (
	"fmt"
	"sort"
	"sync"

	"github.com/oqtopus-team/oqtopus-engine/noiseapp/circuit"
	"go.uber.org/zap"
)

type Kind string

// BuildFunc builds the circuit of e at the parameter point params.
// The returned observables are closed-form predictions attached to the job.
type BuildFunc func(e *Experiment, params Params) (*circuit.Circuit, map[string]float64, error)

// Registry maps experiment kinds to their circuit builders.
type Registry struct {
	mu       sync.RWMutex
	builders map[Kind]BuildFunc
}

func NewRegistry() *Registry {
	return &Registry{builders: make(map[Kind]BuildFunc)}
}

func (r *Registry) Register(kind Kind, f BuildFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.builders[kind]; ok {
		return fmt.Errorf("kind:%s is already registered", kind)
	}
	zap.L().Debug(fmt.Sprintf("registering experiment kind %s", kind))
	r.builders[kind] = f
	return nil
}

func (r *Registry) Has(kind Kind) bool {
	_, ok := r.lookup(kind)
	return ok
}

func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, 0, len(r.builders))
	for k := range r.builders {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (r *Registry) lookup(kind Kind) (BuildFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.builders[kind]
	return f, ok
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry holds every channel kind of this module.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		r := NewRegistry()
		for kind, f := range builtinKinds() {
			if err := r.Register(kind, f); err != nil {
				panic(err)
			}
		}
		defaultRegistry = r
	})
	return defaultRegistry
}
