// Package experiment expands TOML parameter sweeps into labelled channel
// circuits.
package experiment

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/common"
	"github.com/oqtopus-team/oqtopus-engine/noiseapp/core"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Setting struct {
	Experiments []*Experiment `toml:"experiment"`
}

// Experiment is a single channel swept over one parameter.
type Experiment struct {
	Name      string `toml:"name" validate:"required"`
	Kind      Kind   `toml:"kind" validate:"required"`
	NumQubits int    `toml:"num_qubits" validate:"gte=1"`
	System    []int  `toml:"system" validate:"min=1,max=2,dive,gte=0"`
	Ancillae  []int  `toml:"ancillae" validate:"dive,gte=0"`

	Observable       string `toml:"observable"`
	Mode             string `toml:"mode"`
	EnvironmentState string `toml:"environment_state"`
	// CollisionNumber defaults to one collision per environment qubit.
	CollisionNumber *int `toml:"collision_number" validate:"omitempty,gte=0"`
	Measure         bool `toml:"measure"`

	Params Params `toml:"params"`
	Sweep  Sweep  `toml:"sweep"`
}

// Params are the fixed physical parameters keyed by name (R, t, p, g, tau,
// eta, omega).
type Params map[string]float64

type Sweep struct {
	Param string  `toml:"param" validate:"required"`
	Start float64 `toml:"start" validate:"finite"`
	Stop  float64 `toml:"stop" validate:"finite"`
	Steps int     `toml:"steps" validate:"gte=1"`
}

func (s Sweep) Values() []float64 {
	return common.Linspace(s.Start, s.Stop, s.Steps)
}

// ParseSetting decodes and validates a TOML setting.
func ParseSetting(tomlString string) (*Setting, error) {
	s := &Setting{}
	if _, err := toml.Decode(tomlString, s); err != nil {
		zap.L().Error(fmt.Sprintf("failed to parse setting/reason:%s", err))
		return nil, err
	}
	if err := s.Validate(DefaultRegistry()); err != nil {
		return nil, err
	}
	zap.L().Debug(fmt.Sprintf("loaded %d experiments", len(s.Experiments)))
	return s, nil
}

func LoadSetting(settingPath string) (*Setting, error) {
	tomlString, err := common.ReadSettingsFile(settingPath)
	if err != nil {
		return nil, err
	}
	return ParseSetting(tomlString)
}

// Validate reports every invalid experiment at once.
func (s *Setting) Validate(r *Registry) error {
	if len(s.Experiments) == 0 {
		return core.InvalidParameterf("no experiment in setting")
	}
	var errs error
	names := make(map[string]struct{}, len(s.Experiments))
	for i, e := range s.Experiments {
		if e == nil {
			errs = multierr.Append(errs, core.InvalidParameterf("experiment[%d] is empty", i))
			continue
		}
		if _, ok := names[e.Name]; ok {
			errs = multierr.Append(errs, core.InvalidParameterf("experiment name %q is duplicated", e.Name))
		}
		names[e.Name] = struct{}{}
		if err := e.validate(r); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("experiment %q: %w", e.Name, err))
		}
	}
	return errs
}

func (e *Experiment) validate(r *Registry) error {
	if err := core.ValidateParams(e); err != nil {
		return err
	}
	if !r.Has(e.Kind) {
		return core.InvalidParameterf("kind %q is not registered", e.Kind)
	}
	for k, v := range e.Params {
		if err := core.ValidateParams(&struct {
			V float64 `validate:"finite"`
		}{v}); err != nil {
			return fmt.Errorf("param %s: %w", k, err)
		}
	}
	return nil
}

// At returns the fixed parameters with the swept parameter set to v.
func (e *Experiment) At(v float64) Params {
	p := make(Params, len(e.Params)+1)
	for k, x := range e.Params {
		p[k] = x
	}
	p[e.Sweep.Param] = v
	return p
}

// Get returns the parameter name, or def when it is not set.
func (p Params) Get(name string, def float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}

// Require returns the parameter name or an ErrInvalidParameter.
func (p Params) Require(name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, core.InvalidParameterf("parameter %s is required", name)
	}
	return v, nil
}
