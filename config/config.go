// Package config loads appender definitions from a YAML file with viper.
//
//	default_target: com.example.app
//	appenders:
//	  - name: host
//	    target: com.example.app
//	    pattern: "[%logger] %msg%n"
//	    min_level: debug
//	  - name: json
//	    encoding: json
//
// default_target can be overridden with HOSTLOG_DEFAULT_TARGET, and any
// string value of the form env://NAME is replaced by $NAME.
package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/trickstertwo/hostlog"
	"github.com/trickstertwo/hostlog/appender"
	"github.com/trickstertwo/hostlog/layout"
	"github.com/trickstertwo/hostlog/platform"
	"github.com/trickstertwo/hostlog/status"
)

const (
	envPrefix    = "HOSTLOG"
	envVarPrefix = "env://" // Prefix for environment variable placeholders
)

// AppenderConfig describes one appender. Pattern and Encoding are mutually
// exclusive; leaving both empty is allowed here and rejected by Start.
type AppenderConfig struct {
	Name     string `mapstructure:"name" validate:"required"`
	Target   string `mapstructure:"target"`
	Pattern  string `mapstructure:"pattern" validate:"excluded_with=Encoding"`
	Encoding string `mapstructure:"encoding" validate:"omitempty,oneof=json console"`
	MinLevel string `mapstructure:"min_level" validate:"omitempty,oneof=trace debug info warn warning error off"`
}

// File is the root of a configuration file.
type File struct {
	// DefaultTarget fills in appenders that name no target.
	DefaultTarget string           `mapstructure:"default_target"`
	Appenders     []AppenderConfig `mapstructure:"appenders" validate:"dive"`
}

// Option customizes Load.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger makes Load report what it does on l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Load reads, expands and validates the file at path.
func Load(path string, opts ...Option) (*File, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("default_target", "")

	o.logger.Info("reading hostlog configuration", zap.String("path", path))
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read configuration file %s", path)
	}

	for _, key := range v.AllKeys() {
		expandEnv(v, key, o.logger)
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal configuration")
	}
	expandAppenders(f.Appenders, o.logger)

	if err := validator.New().Struct(&f); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &f, nil
}

func expandEnv(v *viper.Viper, key string, logger *zap.Logger) {
	str, ok := v.Get(key).(string)
	if !ok {
		return
	}
	if expanded, ok := lookupPlaceholder(str, logger); ok {
		v.Set(key, expanded)
	}
}

// expandAppenders handles placeholders inside the appenders list, which
// viper reports as a single key.
func expandAppenders(acs []AppenderConfig, logger *zap.Logger) {
	for i := range acs {
		for _, s := range []*string{&acs[i].Name, &acs[i].Target, &acs[i].Pattern, &acs[i].Encoding, &acs[i].MinLevel} {
			if expanded, ok := lookupPlaceholder(*s, logger); ok {
				*s = expanded
			}
		}
	}
}

func lookupPlaceholder(s string, logger *zap.Logger) (string, bool) {
	if !strings.HasPrefix(s, envVarPrefix) {
		return "", false
	}
	name := s[len(envVarPrefix):]
	val, exists := os.LookupEnv(name)
	if !exists {
		logger.Warn("environment variable not found", zap.String("variableName", name))
		return "", true
	}
	logger.Info("set environment variable", zap.String("variableName", name))
	return val, true
}

// Layout builds the layout ac describes.
func (ac AppenderConfig) Layout() (layout.Layout, error) {
	if ac.Encoding != "" {
		return layout.NewEncoderLayout(ac.Encoding, layout.DefaultEncoderConfig())
	}
	return layout.NewPatternLayout(ac.Pattern)
}

// Level parses MinLevel, defaulting to info.
func (ac AppenderConfig) Level() (hostlog.Level, error) {
	return hostlog.ParseLevel(ac.MinLevel)
}

// Apply copies ac onto an appender, min level included. It does not start it.
func (ac AppenderConfig) Apply(a *appender.Appender) error {
	l, err := ac.Layout()
	if err != nil {
		return errors.Wrapf(err, "appender %q", ac.Name)
	}
	lvl, err := ac.Level()
	if err != nil {
		return errors.Wrapf(err, "appender %q", ac.Name)
	}
	a.SetName(ac.Name)
	a.SetLayout(l)
	a.SetTarget(ac.Target)
	a.SetMinLevel(lvl)
	return nil
}

// Build creates and starts every appender in f against p. Appenders that fail
// to start are still returned; their reasons are on sm.
func (f *File) Build(p platform.Platform, sm *status.Manager) ([]*appender.Appender, error) {
	out := make([]*appender.Appender, 0, len(f.Appenders))
	for _, ac := range f.Appenders {
		if ac.Target == "" {
			ac.Target = f.DefaultTarget
		}
		a := appender.New(p, sm)
		if err := ac.Apply(a); err != nil {
			return nil, err
		}
		a.Start()
		out = append(out, a)
	}
	return out, nil
}
