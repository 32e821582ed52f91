package guard

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	yaml "gopkg.in/yaml.v2"
)

type yamlGuardConfig struct {
	Mode struct {
		Debug *bool `yaml:"debug"`
	} `yaml:"mode"`
	FlushTimeoutMillis        *int64            `yaml:"flushTimeoutMillis"`
	CaptureTimeoutWarning     *bool             `yaml:"captureTimeoutWarning"`
	TimeoutWarningLimitMillis *int64            `yaml:"timeoutWarningLimitMillis"`
	Tags                      map[string]string `yaml:"tags"`
	EventTags                 map[string]string `yaml:"eventTags"`
	Sentry                    *struct {
		Dsn         string   `yaml:"dsn"`
		Environment string   `yaml:"environment"`
		Release     string   `yaml:"release"`
		ServerName  string   `yaml:"serverName"`
		Debug       bool     `yaml:"debug"`
		SampleRate  *float64 `yaml:"sampleRate"`
	} `yaml:"sentry"`
}

func optionFromGuardConfig(cfg yamlGuardConfig) Option {
	return OptionFunc(func(o *Options) {
		if cfg.Mode.Debug != nil {
			o.DebugMode = *cfg.Mode.Debug
		}

		if cfg.FlushTimeoutMillis != nil {
			if *cfg.FlushTimeoutMillis < 0 {
				panic(fmt.Errorf("guard: negative flushTimeoutMillis: %d", *cfg.FlushTimeoutMillis))
			}
			o.FlushTimeout = time.Duration(*cfg.FlushTimeoutMillis) * time.Millisecond
		}
		if cfg.CaptureTimeoutWarning != nil {
			o.CaptureTimeoutWarning = *cfg.CaptureTimeoutWarning
		}
		if cfg.TimeoutWarningLimitMillis != nil {
			if *cfg.TimeoutWarningLimitMillis < 0 {
				panic(fmt.Errorf("guard: negative timeoutWarningLimitMillis: %d", *cfg.TimeoutWarningLimitMillis))
			}
			o.TimeoutWarningLimit = time.Duration(*cfg.TimeoutWarningLimitMillis) * time.Millisecond
		}

		if o.Tags == nil {
			o.Tags = make(map[string]string)
		}
		for k, v := range cfg.Tags {
			if k == "" {
				continue
			}
			o.Tags[k] = v
		}

		if o.EventTags == nil {
			o.EventTags = make(map[string]string)
		}
		for k, path := range cfg.EventTags {
			if k == "" || path == "" {
				continue
			}
			o.EventTags[k] = path
		}

		if cfg.Sentry != nil {
			co := sentry.ClientOptions{
				Dsn:         cfg.Sentry.Dsn,
				Environment: cfg.Sentry.Environment,
				Release:     cfg.Sentry.Release,
				ServerName:  cfg.Sentry.ServerName,
				Debug:       cfg.Sentry.Debug,
			}
			if cfg.Sentry.SampleRate != nil {
				co.SampleRate = *cfg.Sentry.SampleRate
			}
			o.ClientOptions = &co
		}
	})
}

func optionFromConfigBytes(b []byte) (Option, error) {
	var cfg yamlGuardConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	return optionFromGuardConfig(cfg), nil
}

// WithConfig parses YAML bytes following guard.yml structure and applies it to Options.
// It panics if the YAML is invalid.
func WithConfig(yamlBytes []byte) Option {
	opt, err := optionFromConfigBytes(yamlBytes)
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("guard.WithConfig: %w", err))
		})
	}
	return opt
}

// WithConfigFile loads a YAML file and applies it to Options.
// It panics if the file cannot be read or YAML is invalid.
func WithConfigFile(path string) Option {
	b, err := os.ReadFile(path)
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("guard.WithConfigFile(%s): %w", path, err))
		})
	}
	return WithConfig(b)
}
