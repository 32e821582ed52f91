package guard

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/mohae/deepcopy"
	"github.com/sirupsen/logrus"
)

type Option interface {
	Apply(o *Options)
}

type OptionFunc func(*Options)

func (f OptionFunc) Apply(o *Options) { f(o) }

type Options struct {
	FlushTimeout          time.Duration
	CaptureTimeoutWarning bool
	TimeoutWarningLimit   time.Duration
	Tags                  map[string]string
	EventTags             map[string]string // tag name -> gjson path
	ClientOptions         *sentry.ClientOptions
	DebugMode             bool

	Client Client
	Logger logrus.FieldLogger
}

const (
	DefaultFlushTimeout        = 2000 * time.Millisecond
	DefaultTimeoutWarningLimit = 500 * time.Millisecond
)

var defaultOptions = &Options{
	FlushTimeout:          DefaultFlushTimeout,
	CaptureTimeoutWarning: true,
	TimeoutWarningLimit:   DefaultTimeoutWarningLimit,
	Tags:                  map[string]string{},
	EventTags:             map[string]string{},
	DebugMode:             false,
}

func NewOptions(opts ...Option) *Options {
	options := deepcopy.Copy(defaultOptions).(*Options)
	options.init(opts...)
	return options
}

func (o *Options) init(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(o)
		}
	}
}

// WithFlushTimeout bounds how long an invocation waits for buffered events.
func WithFlushTimeout(d time.Duration) Option {
	return OptionFunc(func(o *Options) {
		o.FlushTimeout = d
	})
}

// WithTimeoutWarning enables or disables the pre-timeout warning.
func WithTimeoutWarning(enabled bool) Option {
	return OptionFunc(func(o *Options) {
		o.CaptureTimeoutWarning = enabled
	})
}

// WithTimeoutWarningLimit sets how long before the deadline the warning fires.
func WithTimeoutWarningLimit(d time.Duration) Option {
	return OptionFunc(func(o *Options) {
		o.TimeoutWarningLimit = d
	})
}

// WithTag adds a static tag attached to every captured exception.
func WithTag(key, value string) Option {
	return OptionFunc(func(o *Options) {
		o.Tags[key] = value
	})
}

// WithTags adds every entry of tags as a static tag.
func WithTags(tags map[string]string) Option {
	return OptionFunc(func(o *Options) {
		for k, v := range tags {
			o.Tags[k] = v
		}
	})
}

// WithEventTag tags captured exceptions with the value found at path in the
// JSON form of the event. Missing paths are skipped.
func WithEventTag(key, path string) Option {
	return OptionFunc(func(o *Options) {
		o.EventTags[key] = path
	})
}

// WithClient reports through client. It takes precedence over WithClientOptions.
func WithClient(client Client) Option {
	return OptionFunc(func(o *Options) {
		o.Client = client
	})
}

// WithHub reports through hub instead of the current hub.
func WithHub(hub *sentry.Hub) Option {
	return OptionFunc(func(o *Options) {
		o.Client = NewHubClient(hub)
	})
}

// WithClientOptions makes the guard build its own Sentry client when no
// Client is given.
func WithClientOptions(co sentry.ClientOptions) Option {
	return OptionFunc(func(o *Options) {
		o.ClientOptions = &co
	})
}

// WithLogger sets the logger for flush failures and debug output.
func WithLogger(logger logrus.FieldLogger) Option {
	return OptionFunc(func(o *Options) {
		o.Logger = logger
	})
}

// WithDebugMode logs every invocation, capture and warning at debug level.
func WithDebugMode(debug bool) Option {
	return OptionFunc(func(o *Options) {
		o.DebugMode = debug
	})
}
