// Package config stores user preferences in a YAML file managed by viper.
//
// Every getter validates the stored value and falls back to a safe default
// when it is missing or malformed, so a hand-edited file never breaks a command.
// Setters validate before writing and leave the file untouched on bad input.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	tmrerrors "github.com/balkashynov/tmr/internal/errors"
	"github.com/balkashynov/tmr/internal/models"
)

// FileName is the settings file created inside the tmr home directory
const FileName = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. TMR_ROUNDING_MINUTES
const EnvPrefix = "TMR"

// Setting keys
const (
	KeyDefaultActivityType    = "default_activity_type"
	KeyDefaultDurationMinutes = "default_duration_minutes"
	KeyRoundingMinutes        = "rounding_minutes"
	KeyDefaultStartTime       = "default_start_time"
	KeyCSVDelimiter           = "csv_delimiter"
)

// setting describes one key: its validation rule, the value written to a
// fresh file and the value used when the stored one is invalid
type setting struct {
	key      string
	rule     string
	numeric  bool
	initial  any
	fallback any
}

var settings = []setting{
	{key: KeyDefaultActivityType, rule: "required,activitytype", initial: string(models.TypeDevelop), fallback: string(models.TypeDevelop)},
	{key: KeyDefaultDurationMinutes, rule: "gt=0", numeric: true, initial: 60, fallback: 60},
	{key: KeyRoundingMinutes, rule: "oneof=0 1 5 10 15 30 60", numeric: true, initial: 5, fallback: 0},
	{key: KeyDefaultStartTime, rule: "required,hhmm", initial: "09:00", fallback: "09:00"},
	{key: KeyCSVDelimiter, rule: "required", initial: ",", fallback: ","},
}

// Settings is a snapshot of the effective configuration
type Settings struct {
	DefaultActivityType    models.ActivityType `json:"default_activity_type"`
	DefaultDurationMinutes int                 `json:"default_duration_minutes"`
	RoundingMinutes        int                 `json:"rounding_minutes"`
	DefaultStartTime       string              `json:"default_start_time"`
	CSVDelimiter           string              `json:"csv_delimiter"`
}

// Provider reads and writes the settings file
type Provider struct {
	v        *viper.Viper
	path     string
	validate *validator.Validate
	logger   zerolog.Logger
}

// Load opens the settings file at path, creating it with defaults when it
// does not exist yet. A file that cannot be parsed is reported in the log
// and treated as empty.
func Load(path string, logger zerolog.Logger) (*Provider, error) {
	p := &Provider{
		v:        newViperInstance(path),
		path:     path,
		validate: newValidator(),
		logger:   logger.With().Str("component", "config").Logger(),
	}

	_, err := os.Stat(path)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		if err := p.writeDefaults(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, tmrerrors.Wrapf(err, "failed to stat config file %s", path)
	default:
		if err := p.v.ReadInConfig(); err != nil {
			p.logger.Warn().Err(err).Str("path", path).Msg("config file unreadable, using defaults")
		}
	}

	return p, nil
}

// DefaultPath returns the settings location inside the tmr home directory
func DefaultPath(home string) string {
	return filepath.Join(home, FileName)
}

// Path returns the file backing this provider
func (p *Provider) Path() string {
	return p.path
}

// newViperInstance creates a viper instance bound to path with TMR_ env overrides
func newViperInstance(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// writeDefaults creates the settings file with the initial values
func (p *Provider) writeDefaults() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return tmrerrors.Wrap(err, "failed to create config directory")
	}
	// written through a separate instance so env overrides keep precedence
	initial := viper.New()
	initial.SetConfigType("yaml")
	for _, s := range settings {
		initial.Set(s.key, s.initial)
	}
	if err := initial.WriteConfigAs(p.path); err != nil {
		return tmrerrors.Wrapf(err, "failed to write config file %s", p.path)
	}
	if err := p.v.ReadInConfig(); err != nil {
		return tmrerrors.Wrapf(err, "failed to read config file %s", p.path)
	}
	p.logger.Debug().Str("path", p.path).Msg("created default config")
	return nil
}

// DefaultActivityType returns the type preselected in prompts
func (p *Provider) DefaultActivityType() models.ActivityType {
	return models.ActivityType(strings.ToUpper(p.getString(KeyDefaultActivityType)))
}

// DefaultDurationMinutes returns the length proposed for manually added activities
func (p *Provider) DefaultDurationMinutes() int {
	return p.getInt(KeyDefaultDurationMinutes)
}

// RoundingMinutes returns the interval stop times are rounded up to
func (p *Provider) RoundingMinutes() int {
	return p.getInt(KeyRoundingMinutes)
}

// DefaultStartTime returns the HH:MM proposed when no earlier activity exists
func (p *Provider) DefaultStartTime() string {
	return p.getString(KeyDefaultStartTime)
}

// CSVDelimiter returns the field separator for exports
func (p *Provider) CSVDelimiter() string {
	return p.getString(KeyCSVDelimiter)
}

// Snapshot returns every effective value
func (p *Provider) Snapshot() Settings {
	return Settings{
		DefaultActivityType:    p.DefaultActivityType(),
		DefaultDurationMinutes: p.DefaultDurationMinutes(),
		RoundingMinutes:        p.RoundingMinutes(),
		DefaultStartTime:       p.DefaultStartTime(),
		CSVDelimiter:           p.CSVDelimiter(),
	}
}

// SetDefaultActivityType validates and persists the default type
func (p *Provider) SetDefaultActivityType(t models.ActivityType) error {
	return p.set(KeyDefaultActivityType, string(t))
}

// SetDefaultDurationMinutes validates and persists the default duration
func (p *Provider) SetDefaultDurationMinutes(minutes int) error {
	return p.set(KeyDefaultDurationMinutes, minutes)
}

// SetRoundingMinutes validates and persists the rounding interval
func (p *Provider) SetRoundingMinutes(minutes int) error {
	return p.set(KeyRoundingMinutes, minutes)
}

// SetDefaultStartTime validates and persists the default start time
func (p *Provider) SetDefaultStartTime(hhmm string) error {
	return p.set(KeyDefaultStartTime, hhmm)
}

// SetCSVDelimiter validates and persists the export delimiter
func (p *Provider) SetCSVDelimiter(delimiter string) error {
	return p.set(KeyCSVDelimiter, delimiter)
}

// Keys lists the known setting names in alphabetical order
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for _, s := range settings {
		keys = append(keys, s.key)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the effective value of key as text
func (p *Provider) Get(key string) (string, error) {
	s, ok := lookup(key)
	if !ok {
		return "", unknownKey(key)
	}
	if s.numeric {
		return strconv.Itoa(p.getInt(key)), nil
	}
	return p.getString(key), nil
}

// Set parses value for key and persists it
func (p *Provider) Set(key, value string) error {
	s, ok := lookup(key)
	if !ok {
		return unknownKey(key)
	}
	if !s.numeric {
		if key == KeyDefaultActivityType {
			value = strings.ToUpper(strings.TrimSpace(value))
		}
		return p.set(key, value)
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s must be a whole number, got %q", tmrerrors.ErrInvalidArgument, key, value)
	}
	return p.set(key, n)
}

// set validates value and writes it to the file. Nothing changes when the write fails.
func (p *Provider) set(key string, value any) error {
	s, _ := lookup(key)
	if err := p.validate.Var(value, s.rule); err != nil {
		return fmt.Errorf("%w: invalid value %v for %s", tmrerrors.ErrInvalidArgument, value, key)
	}

	// the file is rewritten from an env-free instance so TMR_ overrides stay out of it
	file := viper.New()
	file.SetConfigFile(p.path)
	file.SetConfigType("yaml")
	if err := file.ReadInConfig(); err != nil {
		p.logger.Warn().Err(err).Str("path", p.path).Msg("config file unreadable, rewriting it")
	}
	file.Set(key, value)
	if err := file.WriteConfigAs(p.path); err != nil {
		return tmrerrors.Persistence(err, "failed to save config")
	}
	if err := p.v.ReadInConfig(); err != nil {
		return tmrerrors.Persistence(err, "failed to reload config")
	}

	p.logger.Debug().Str("key", key).Interface("value", value).Msg("config updated")
	return nil
}

// getString returns the stored text value or the fallback when it fails validation
func (p *Provider) getString(key string) string {
	s, _ := lookup(key)
	value := p.v.GetString(key)
	if err := p.validate.Var(value, s.rule); err != nil {
		p.logger.Debug().Str("key", key).Str("value", value).Msg("invalid config value, using fallback")
		return s.fallback.(string)
	}
	return value
}

// getInt returns the stored number or the fallback when it is missing or invalid
func (p *Provider) getInt(key string) int {
	s, _ := lookup(key)
	raw := strings.TrimSpace(p.v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err == nil {
		err = p.validate.Var(n, s.rule)
	}
	if err != nil {
		p.logger.Debug().Str("key", key).Str("value", raw).Msg("invalid config value, using fallback")
		return s.fallback.(int)
	}
	return n
}

func lookup(key string) (setting, bool) {
	for _, s := range settings {
		if s.key == key {
			return s, true
		}
	}
	return setting{}, false
}

func unknownKey(key string) error {
	return fmt.Errorf("%w: unknown config key %q (known: %s)", tmrerrors.ErrInvalidArgument, key, strings.Join(Keys(), ", "))
}
