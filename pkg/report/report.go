// Package report delivers flattened identity records to a collector.
package report

import (
	"context"
	"fmt"

	"github.com/x1thexxx-lgtm/pinger/pkg/config"
)

const userAgent = "pinger/1"

// Reporter sends one identity record. Implementations do not retry.
type Reporter interface {
	Name() string
	Send(ctx context.Context, data map[string]string) error
}

// New picks the reporter for the configured transport. Disabled reporting
// yields a Noop reporter.
func New(cfg config.ReportingConfig) (Reporter, error) {
	if !cfg.Enabled {
		return Noop{}, nil
	}
	switch cfg.Transport {
	case config.TransportHTTP, "":
		return NewHTTPReporter(cfg), nil
	case config.TransportSNMP:
		return NewTrapReporter(cfg), nil
	default:
		return nil, fmt.Errorf("unknown reporting transport %q", cfg.Transport)
	}
}

// Noop discards records.
type Noop struct{}

func (Noop) Name() string { return "noop" }

func (Noop) Send(context.Context, map[string]string) error { return nil }
