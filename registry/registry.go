// Package registry tracks descriptive product metadata: a name, a version
// and an ordered set of feature strings, and persists it as a flat JSON
// snapshot.
package registry

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/lexcodex/featurekit/framework"
)

// DefaultVersion is used when no version is supplied.
const DefaultVersion = "1.0.0"

// DefaultFeatures seeds every new Registry.
var DefaultFeatures = []string{
	"Code editing with syntax highlighting",
	"File management",
	"Terminal access",
	"Multi-tab support",
	"Upload/Download files",
	"Dark theme interface",
}

// AddResult reports the outcome of AddFeature.
type AddResult int

const (
	// FeatureAdded means the feature was appended.
	FeatureAdded AddResult = iota
	// FeatureExists means an identical entry was already present.
	FeatureExists
)

func (r AddResult) String() string {
	switch r {
	case FeatureAdded:
		return "added"
	case FeatureExists:
		return "already exists"
	default:
		return "unknown"
	}
}

// Info is an immutable view of a Registry at one point in time.
type Info struct {
	Name      string   `json:"name" yaml:"name"`
	Version   string   `json:"version" yaml:"version"`
	Features  []string `json:"features" yaml:"features"`
	CreatedAt string   `json:"created_at" yaml:"created_at"`
	Platform  string   `json:"platform" yaml:"platform"`
}

// Option customizes a Registry at construction.
type Option func(*Registry)

// WithVersion overrides DefaultVersion. An empty value keeps the default.
func WithVersion(version string) Option {
	return func(r *Registry) {
		if version != "" {
			r.version = version
		}
	}
}

// WithClock injects the time source used for createdAt and last_updated.
func WithClock(clock func() time.Time) Option {
	return func(r *Registry) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithPlatform injects the platform identifier reported by Info.
func WithPlatform(platform func() string) Option {
	return func(r *Registry) {
		if platform != nil {
			r.platform = platform
		}
	}
}

// WithLogger sets the logger used for feature and save reports.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithTelemetry attaches a telemetry sink.
func WithTelemetry(t framework.Telemetry) Option {
	return func(r *Registry) { r.telemetry = t }
}

// Registry holds the metadata. It is not safe for concurrent use.
type Registry struct {
	name      string
	version   string
	features  []string
	index     map[string]struct{}
	createdAt time.Time

	clock     func() time.Time
	platform  func() string
	logger    *slog.Logger
	telemetry framework.Telemetry
}

// New builds a Registry seeded with DefaultFeatures. An empty name fails
// with framework.ErrInvalidArgument.
func New(name string, opts ...Option) (*Registry, error) {
	if name == "" {
		return nil, framework.InvalidArgument("registry name must not be empty")
	}
	r := &Registry{
		name:     name,
		version:  DefaultVersion,
		clock:    time.Now,
		platform: func() string { return runtime.GOOS },
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.features = make([]string, 0, len(DefaultFeatures))
	r.index = make(map[string]struct{}, len(DefaultFeatures))
	for _, f := range DefaultFeatures {
		r.appendFeature(f)
	}
	r.createdAt = r.clock()
	return r, nil
}

// Name returns the registry name.
func (r *Registry) Name() string { return r.name }

// Version returns the registry version.
func (r *Registry) Version() string { return r.version }

// CreatedAt returns the construction time.
func (r *Registry) CreatedAt() time.Time { return r.createdAt }

// Len returns the number of features.
func (r *Registry) Len() int { return len(r.features) }

// Features returns a copy of the feature list in insertion order.
func (r *Registry) Features() []string {
	return append([]string(nil), r.features...)
}

// Has reports whether feature is registered.
func (r *Registry) Has(feature string) bool {
	_, ok := r.index[feature]
	return ok
}

// Info returns a snapshot; later mutations do not affect it.
func (r *Registry) Info() Info {
	return Info{
		Name:      r.name,
		Version:   r.version,
		Features:  r.Features(),
		CreatedAt: framework.FormatTime(r.createdAt),
		Platform:  r.platform(),
	}
}

// AddFeature appends feature unless an identical entry exists. Existing
// entries are never reordered.
func (r *Registry) AddFeature(feature string) AddResult {
	if r.Has(feature) {
		r.logger.Info("feature already exists", slog.String("feature", feature))
		framework.Emit(r.telemetry, framework.Event{Type: framework.EventFeatureExists, Subject: feature, Timestamp: r.clock()})
		return FeatureExists
	}
	r.appendFeature(feature)
	r.logger.Info("added feature", slog.String("feature", feature))
	framework.Emit(r.telemetry, framework.Event{Type: framework.EventFeatureAdded, Subject: feature, Timestamp: r.clock()})
	return FeatureAdded
}

func (r *Registry) appendFeature(feature string) bool {
	if _, ok := r.index[feature]; ok {
		return false
	}
	r.index[feature] = struct{}{}
	r.features = append(r.features, feature)
	return true
}
