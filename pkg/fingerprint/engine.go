package fingerprint

import (
	"context"
	"fmt"

	"github.com/aarondl/opt/omit"
	"golang.org/x/sync/errgroup"

	"github.com/x1thexxx-lgtm/pinger/pkg/instancetype"
	"github.com/x1thexxx-lgtm/pinger/pkg/inventory"
	"github.com/x1thexxx-lgtm/pinger/pkg/logging"
	"github.com/x1thexxx-lgtm/pinger/pkg/osversion"
	"github.com/x1thexxx-lgtm/pinger/pkg/platform"
)

// Sources are the locations the engine reads facts from.
type Sources struct {
	KernelArgs        string
	AlephVersion      string
	AfterburnMetadata string
}

// DefaultSources returns the standard locations on a running host.
func DefaultSources() Sources {
	return Sources{
		KernelArgs:        platform.DefaultKernelArgsPath,
		AlephVersion:      osversion.DefaultAlephPath,
		AfterburnMetadata: instancetype.DefaultMetadataPath,
	}
}

func (s Sources) withDefaults() Sources {
	def := DefaultSources()
	if s.KernelArgs == "" {
		s.KernelArgs = def.KernelArgs
	}
	if s.AlephVersion == "" {
		s.AlephVersion = def.AlephVersion
	}
	if s.AfterburnMetadata == "" {
		s.AfterburnMetadata = def.AfterburnMetadata
	}
	return s
}

// Engine builds machine identities.
type Engine struct {
	sources Sources
	status  osversion.StatusQuerier
	log     *logging.Logger
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithStatusQuerier replaces the booted-deployment query.
func WithStatusQuerier(q osversion.StatusQuerier) EngineOption {
	return func(e *Engine) {
		e.status = q
	}
}

// WithLogger enables debug logging of collected facts.
func WithLogger(log *logging.Logger) EngineOption {
	return func(e *Engine) {
		e.log = log
	}
}

// NewEngine creates an engine reading from sources. Empty source fields fall
// back to the standard host locations.
func NewEngine(sources Sources, opts ...EngineOption) *Engine {
	e := &Engine{
		sources: sources.withDefaults(),
		status:  osversion.NewCommandQuerier(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Collect builds the identity for the requested level. Unknown levels are
// collected as minimal. Any failing source aborts the run; no partial
// identity is returned.
func (e *Engine) Collect(ctx context.Context, level string) (inventory.Identity, error) {
	lvl := inventory.ParseLevel(level)
	id, err := e.collect(ctx, lvl)
	if err != nil {
		return inventory.Identity{}, fmt.Errorf("failed to build '%s' identity: %w", lvl, err)
	}
	return id, nil
}

func (e *Engine) collect(ctx context.Context, lvl inventory.Level) (inventory.Identity, error) {
	var (
		plat         platform.Platform
		instanceType omit.Val[string]
		original     string
		current      string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := platform.Detect(e.sources.KernelArgs)
		if err != nil {
			return err
		}
		plat = p
		e.log.Debugf("platform %s (%s)", p.Name, p.Kind)
		if !p.IsCloud() {
			return nil
		}
		t, err := instancetype.Read(e.sources.AfterburnMetadata, p)
		if err != nil {
			return err
		}
		instanceType = omit.From(t)
		e.log.Debugf("instance type %s", t)
		return nil
	})
	g.Go(func() error {
		v, err := osversion.ReadAleph(e.sources.AlephVersion)
		if err != nil {
			return err
		}
		original = v
		e.log.Debugf("original os version %s", v)
		return nil
	})
	g.Go(func() error {
		dep, err := osversion.Booted(gctx, e.status)
		if err != nil {
			return err
		}
		current = dep.Version
		e.log.Debugf("current os version %s (%s)", dep.Version, dep.Checksum)
		return nil
	})
	if err := g.Wait(); err != nil {
		return inventory.Identity{}, err
	}

	return inventory.NewIdentity(lvl, plat.Name, original, current, instanceType), nil
}
