package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/x1thexxx-lgtm/pinger/pkg/config"
	"github.com/x1thexxx-lgtm/pinger/pkg/fingerprint"
	"github.com/x1thexxx-lgtm/pinger/pkg/logging"
	"github.com/x1thexxx-lgtm/pinger/pkg/metrics"
	"github.com/x1thexxx-lgtm/pinger/pkg/osversion"
	"github.com/x1thexxx-lgtm/pinger/pkg/report"
)

// collector is the part of the engine the app depends on.
type collector interface {
	Collect(ctx context.Context, level string) (identity, error)
}

type identity interface {
	Data() map[string]string
}

type engineCollector struct {
	engine *fingerprint.Engine
}

func (c engineCollector) Collect(ctx context.Context, level string) (identity, error) {
	id, err := c.engine.Collect(ctx, level)
	if err != nil {
		return nil, err
	}
	return id, nil
}

func newEngine(cfg *config.Config, log *logging.Logger) *fingerprint.Engine {
	return fingerprint.NewEngine(fingerprint.Sources{
		KernelArgs:        cfg.Sources.KernelArgs,
		AlephVersion:      cfg.Sources.AlephVersion,
		AfterburnMetadata: cfg.Sources.AfterburnMetadata,
	},
		fingerprint.WithStatusQuerier(osversion.NewCommandQuerier(cfg.Sources.StatusCommand...)),
		fingerprint.WithLogger(log),
	)
}

// pinger runs one collect-and-report cycle.
type pinger struct {
	level    string
	textfile string
	collect  collector
	reporter report.Reporter
	metrics  *metrics.Recorder
	log      *logging.Logger
}

// Run implements scheduler.TaskRunner.
func (p *pinger) Run(ctx context.Context) error {
	defer func() {
		if err := p.metrics.WriteTextfile(p.textfile); err != nil {
			p.log.Warnf("%v", err)
		}
	}()

	id, err := p.collect.Collect(ctx, p.level)
	p.metrics.Collection(p.level, err)
	if err != nil {
		return err
	}
	data := id.Data()
	p.log.Infof("collected identity: platform=%s current=%s", data["platform"], data["current_os_version"])

	err = p.reporter.Send(ctx, data)
	p.metrics.Report(p.reporter.Name(), err)
	if err != nil {
		return fmt.Errorf("send identity via %s: %w", p.reporter.Name(), err)
	}
	p.log.Debugf("identity sent via %s", p.reporter.Name())
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
