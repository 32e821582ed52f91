package localrun

import (
	"time"

	"github.com/mohae/deepcopy"
	"github.com/sirupsen/logrus"
)

type Option interface {
	Apply(o *Options)
}

type OptionFunc func(*Options)

func (f OptionFunc) Apply(o *Options) { f(o) }

type Options struct {
	FunctionName    string
	FunctionVersion string
	Region          string
	AccountID       string
	Timeout         time.Duration
	ReleaseMode     bool
	DebugMode       bool

	Logger logrus.FieldLogger
}

var defaultOptions = &Options{
	FunctionName:    "local",
	FunctionVersion: "$LATEST",
	Region:          "us-east-1",
	AccountID:       "000000000000",
	Timeout:         3 * time.Second,
	ReleaseMode:     false,
	DebugMode:       false,
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

func WithFunctionName(name string) Option {
	return OptionFunc(func(o *Options) {
		o.FunctionName = name
	})
}

func WithFunctionVersion(version string) Option {
	return OptionFunc(func(o *Options) {
		o.FunctionVersion = version
	})
}

func WithRegion(region string) Option {
	return OptionFunc(func(o *Options) {
		o.Region = region
	})
}

func WithAccountID(id string) Option {
	return OptionFunc(func(o *Options) {
		o.AccountID = id
	})
}

// WithTimeout sets the deadline given to every invocation.
func WithTimeout(d time.Duration) Option {
	return OptionFunc(func(o *Options) {
		o.Timeout = d
	})
}

func WithReleaseMode(release bool) Option {
	return OptionFunc(func(o *Options) {
		o.ReleaseMode = release
	})
}

func WithDebugMode(debug bool) Option {
	return OptionFunc(func(o *Options) {
		o.DebugMode = debug
	})
}

func WithLogger(logger logrus.FieldLogger) Option {
	return OptionFunc(func(o *Options) {
		o.Logger = logger
	})
}
