package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into Config.
const EnvPrefix = "PROFILEGRID_"

// DefaultExecPath is the command search path given to exec resources.
const DefaultExecPath = "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Hierarchy string   `koanf:"hierarchy" validate:"required"`
	Profiles  []string `koanf:"profiles"`

	Format string   `koanf:"format" validate:"oneof=hcl json yaml"`
	Output string   `koanf:"output"`
	Only   []string `koanf:"only"`

	Strict   bool   `koanf:"strict"`
	Noop     bool   `koanf:"noop"`
	ExecPath string `koanf:"exec_path"`

	Facts   []string `koanf:"facts"`
	EnvFile string   `koanf:"env_file"`

	AgentURL      string        `koanf:"agent_url" validate:"omitempty,url"`
	AgentTimeout  time.Duration `koanf:"agent_timeout"`
	AgentInsecure bool          `koanf:"agent_insecure"`

	LogFormat string `koanf:"log_format" validate:"oneof=text json"`
	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Format:       "hcl",
		ExecPath:     DefaultExecPath,
		AgentTimeout: 10 * time.Second,
		LogFormat:    "text",
		LogLevel:     "info",
	}
}

// overrides is a koanf provider over explicitly set values.
type overrides map[string]any

func (o overrides) Read() (map[string]any, error) {
	return map[string]any(o), nil
}

func (o overrides) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("ReadBytes not implemented")
}

// LoadConfig layers defaults, PROFILEGRID_* environment variables and set,
// then validates the result. Keys in set use the koanf tag names.
func LoadConfig(set map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if len(set) > 0 {
		if err := k.Load(overrides(set), nil); err != nil {
			return nil, fmt.Errorf("failed to apply overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}
