package bmc

import (
	"math"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Option names, grounded on boolectormc.c's BTORMC_OPT_VERBOSITY /
// BTORMC_OPT_STOP_FIRST / BTORMC_OPT_TRACE_GEN enumerators.
const (
	OptVerbosity = "verbosity"
	OptStopFirst = "stop-first"
	OptTraceGen  = "trace-gen"
)

type optionSpec struct {
	shorthand   string
	description string
	def         uint32
	min         uint32
	max         uint32
}

var optionSpecs = map[string]optionSpec{
	OptVerbosity: {shorthand: "v", description: "logging verbosity", def: 0, min: 0, max: math.MaxUint32},
	OptStopFirst: {shorthand: "s", description: "stop bmc at the first bad property reached", def: 1, min: 0, max: 1},
	OptTraceGen:  {shorthand: "t", description: "enable witness/trace generation", def: 0, min: 0, max: 1},
}

// optionValues is the typed destination mapstructure decodes option.viper's
// settings map into, per SPEC_FULL.md §4.7: viper pre-seeds from the
// environment (BTORMC_VERBOSITY, BTORMC_STOP_FIRST, BTORMC_TRACE_GEN), the
// bound pflag set (never parsed here) supplies each option's default,
// mapstructure decodes the merged settings map into this struct, and
// SetOpt/GetOpt clamp against optionSpecs afterward.
type optionValues struct {
	Verbosity uint32 `mapstructure:"verbosity"`
	StopFirst uint32 `mapstructure:"stop-first"`
	TraceGen  uint32 `mapstructure:"trace-gen"`
}

// Options is the C7 Option Registry: a small typed front end over pflag
// (per-option name/shorthand/description/value shape) and viper (env-var
// pre-seeding), mirroring boolectormc.c's init_opt/init_options/
// boolector_mc_set_opt family.
type Options struct {
	flags      *pflag.FlagSet
	v          *viper.Viper
	framesBuilt bool
}

func newOptions() *Options {
	fs := pflag.NewFlagSet("btormc", pflag.ContinueOnError)
	fs.Uint32(OptVerbosity, optionSpecs[OptVerbosity].def, optionSpecs[OptVerbosity].description)
	fs.Uint32(OptStopFirst, optionSpecs[OptStopFirst].def, optionSpecs[OptStopFirst].description)
	fs.Uint32(OptTraceGen, optionSpecs[OptTraceGen].def, optionSpecs[OptTraceGen].description)

	v := viper.New()
	v.SetEnvPrefix("btormc")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(fs)
	for name, spec := range optionSpecs {
		v.SetDefault(name, spec.def)
	}

	return &Options{flags: fs, v: v}
}

func (o *Options) snapshot() optionValues {
	var vals optionValues
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &vals,
		WeaklyTypedInput: true,
	})
	if err != nil {
		abort("Options.snapshot", err.Error())
	}
	if err := dec.Decode(o.v.AllSettings()); err != nil {
		abort("Options.snapshot", err.Error())
	}
	return vals
}

// IsValidOpt reports whether name is one of the three enumerated options.
func (o *Options) IsValidOpt(name string) bool {
	_, ok := optionSpecs[name]
	return ok
}

func clampU32(v, min, max uint32) uint32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// SetOpt assigns val to the named option, clamped to its [min,max] range.
// Returns a ConfigError for an unknown name. Toggling TRACE_GEN after any
// frame has been built is a usage error (it would silently change whether
// prior frames carry model-generation support), reported by panic per §7.
func (o *Options) SetOpt(name string, val uint32) error {
	spec, ok := optionSpecs[name]
	if !ok {
		return ConfigError{Option: name, Msg: "unknown option"}
	}
	if name == OptTraceGen && o.framesBuilt {
		abort("SetOpt", "TRACE_GEN may only be changed before any frame is built")
	}
	o.v.Set(name, clampU32(val, spec.min, spec.max))
	return nil
}

// GetOpt returns the option's current (clamped) value.
func (o *Options) GetOpt(name string) uint32 {
	if !o.IsValidOpt(name) {
		abort("GetOpt", "unknown option "+name)
	}
	vals := o.snapshot()
	switch name {
	case OptVerbosity:
		return clampU32(vals.Verbosity, optionSpecs[name].min, optionSpecs[name].max)
	case OptStopFirst:
		return clampU32(vals.StopFirst, optionSpecs[name].min, optionSpecs[name].max)
	case OptTraceGen:
		return clampU32(vals.TraceGen, optionSpecs[name].min, optionSpecs[name].max)
	default:
		abort("GetOpt", "unknown option "+name)
		return 0
	}
}

func (o *Options) GetOptMin(name string) uint32  { return optionSpecs[name].min }
func (o *Options) GetOptMax(name string) uint32  { return optionSpecs[name].max }
func (o *Options) GetOptDflt(name string) uint32 { return optionSpecs[name].def }
func (o *Options) GetOptLng(name string) string  { return name }
func (o *Options) GetOptShrt(name string) string { return optionSpecs[name].shorthand }
func (o *Options) GetOptDesc(name string) string { return optionSpecs[name].description }

// ConfigError reports an invalid option name or value, recoverable as an
// ordinary error rather than a panic (§7: ConfigError is recoverable).
type ConfigError struct {
	Option string
	Msg    string
}

func (e ConfigError) Error() string {
	return "bmc: invalid option " + e.Option + ": " + e.Msg
}
