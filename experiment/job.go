package experiment

import (
	"fmt"
	"sort"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/circuit"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"github.com/tidwall/pretty"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Job is one point of a sweep: a circuit ready to be handed to an executor.
type Job struct {
	ID          string
	Experiment  string
	Kind        Kind
	Param       string
	Value       float64
	Params      Params
	Observables map[string]float64
	Circuit     *circuit.Circuit
	QASM        string
}

// BuildFromConf loads the setting at conf.SettingPath and builds its jobs.
func BuildFromConf(conf *core.Conf) ([]*Job, error) {
	s, err := LoadSetting(conf.SettingPath)
	if err != nil {
		return nil, err
	}
	return Build(s)
}

// Build expands every experiment of s with the default registry.
func Build(s *Setting) ([]*Job, error) {
	return DefaultRegistry().Build(s)
}

// Build expands every experiment of s into jobs, one per sweep value.
// Failing experiments are skipped and their errors returned together.
func (r *Registry) Build(s *Setting) ([]*Job, error) {
	if err := s.Validate(r); err != nil {
		return nil, err
	}
	jobs := []*Job{}
	var errs error
	for _, e := range s.Experiments {
		ej, err := r.expand(e)
		if err != nil {
			zap.L().Info(fmt.Sprintf("failed to build experiment/name:%s/reason:%s", e.Name, err))
			errs = multierr.Append(errs, fmt.Errorf("experiment %q: %w", e.Name, err))
			continue
		}
		jobs = append(jobs, ej...)
	}
	return jobs, errs
}

func (r *Registry) expand(e *Experiment) ([]*Job, error) {
	f, ok := r.lookup(e.Kind)
	if !ok {
		return nil, fmt.Errorf("kind %s is not registered", e.Kind)
	}
	values := e.Sweep.Values()
	jobs := make([]*Job, 0, len(values))
	for _, v := range values {
		params := e.At(v)
		c, obs, err := f(e, params)
		if err != nil {
			return nil, fmt.Errorf("%s=%v: %w", e.Sweep.Param, v, err)
		}
		jobs = append(jobs, &Job{
			ID:          uuid.New().String(),
			Experiment:  e.Name,
			Kind:        e.Kind,
			Param:       e.Sweep.Param,
			Value:       v,
			Params:      params,
			Observables: obs,
			Circuit:     c,
			QASM:        c.QASM(),
		})
	}
	zap.L().Debug(fmt.Sprintf("experiment %s expanded into %d jobs", e.Name, len(jobs)))
	return jobs, nil
}

func (j *Job) MarshalJSON() ([]byte, error) {
	var circuitJSON []byte
	if j.Circuit != nil {
		b, err := j.Circuit.MarshalJSON()
		if err != nil {
			return nil, err
		}
		circuitJSON = b
	}
	e := &jx.Encoder{}
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(j.ID) })
		e.Field("experiment", func(e *jx.Encoder) { e.Str(j.Experiment) })
		e.Field("kind", func(e *jx.Encoder) { e.Str(string(j.Kind)) })
		e.Field("param", func(e *jx.Encoder) { e.Str(j.Param) })
		e.Field("value", func(e *jx.Encoder) { e.Float64(j.Value) })
		e.Field("params", func(e *jx.Encoder) { encodeFloatMap(e, j.Params) })
		e.Field("observables", func(e *jx.Encoder) { encodeFloatMap(e, j.Observables) })
		e.Field("qasm", func(e *jx.Encoder) { e.Str(j.QASM) })
		if j.Circuit != nil {
			e.Field("circuit", func(e *jx.Encoder) { e.Raw(circuitJSON) })
		}
	})
	return e.Bytes(), nil
}

func encodeFloatMap(e *jx.Encoder, m map[string]float64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	e.Obj(func(e *jx.Encoder) {
		for _, k := range keys {
			v := m[k]
			e.Field(k, func(e *jx.Encoder) { e.Float64(v) })
		}
	})
}

func (j *Job) String() string {
	b, err := j.MarshalJSON()
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to marshal job/id:%s/reason:%s", j.ID, err))
		return ""
	}
	return string(pretty.Pretty(b))
}
