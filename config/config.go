package config

import (
	"github.com/wippyai/ffigen/abi"
	"github.com/wippyai/ffigen/decl"
	"github.com/wippyai/ffigen/errors"
)

// AttrName is the attribute recognized as configuration.
const AttrName = "ffi"

// sentinel is the textual value that resets a field to its unset state.
const sentinel = "none"

// Mode selects the transformation applied to the declaration.
type Mode int

const (
	// ModeInfer leaves the choice to the body-emptiness heuristic.
	ModeInfer Mode = iota
	ModeExport
	ModeImport
)

func (m Mode) String() string {
	switch m {
	case ModeExport:
		return "export"
	case ModeImport:
		return "import"
	}
	return "infer"
}

// Config is the parsed configuration of one annotated declaration. Nil
// pointer fields are unset. Constructed fresh per invocation, never reused.
type Config struct {
	ABI     *string // validated registry member, nil = use default convention
	Name    *string // exported symbol name, nil = use the declaration's name
	Feature *string // feature guard, nil = unconditional
	Mode    Mode
	Caps    abi.Capabilities
}

// ResolvedABI returns the calling convention the declaration is emitted
// under: the configured one, or the default convention when unset.
func (c *Config) ResolvedABI() string {
	if c.ABI != nil {
		return *c.ABI
	}
	return abi.Default
}

// Parse builds a Config from the attribute's key/value list. attr may be nil
// (declaration annotated with an empty configuration), which yields the
// all-unset Config.
func Parse(attr *decl.Attr) (*Config, error) {
	cfg := &Config{}

	if attr != nil && attr.Inner != "" {
		pairs, err := scanPairs(attr.Inner, attr.InnerPos)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			if err := cfg.apply(p); err != nil {
				return nil, err
			}
		}
	}

	// The capability record depends only on the resolved convention, and the
	// two flags are always computed together: this is the single place the
	// three-exceptions rule is applied.
	var id string
	if cfg.ABI != nil {
		id = *cfg.ABI
	}
	cfg.Caps = abi.Lookup(id)

	return cfg, nil
}

// apply folds one key/value pair into the configuration. A later duplicate
// key overrides an earlier one.
func (cfg *Config) apply(p pair) error {
	switch p.Key {
	case "abi":
		if p.Val == sentinel {
			cfg.ABI = nil
			return nil
		}
		id, err := abi.Validate(p.Val)
		if err != nil {
			return errors.WithPos(err.(*errors.Error), p.ValPos)
		}
		cfg.ABI = &id
	case "name":
		cfg.Name = optional(p.Val)
	case "mode":
		switch p.Val {
		case sentinel:
			cfg.Mode = ModeInfer
		case "export":
			cfg.Mode = ModeExport
		case "import":
			cfg.Mode = ModeImport
		default:
			return errors.New(errors.PhaseConfig, errors.KindInvalidMode).
				At(p.ValPos).
				Value(p.Val).
				Detail("invalid mode %q, expecting one of ['none', 'import', 'export']", p.Val).
				Build()
		}
	case "feature":
		cfg.Feature = optional(p.Val)
	default:
		// Unrecognized keys are accepted without effect.
	}
	return nil
}

func optional(v string) *string {
	if v == sentinel {
		return nil
	}
	return &v
}
