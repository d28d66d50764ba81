package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"protocol-generator/internal/analyze"
	"protocol-generator/internal/config"
	"protocol-generator/internal/diagnostic"
	"protocol-generator/internal/gen"
	"protocol-generator/internal/ir"
	"protocol-generator/internal/mapping"
	"protocol-generator/internal/schema"
	"protocol-generator/internal/transform"
)

// dumpConfig prints the full IR without pointer addresses so dumps diff
// cleanly. Stringers are bypassed; ResolvedType.String hides nested types.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

type generator struct {
	cfg  *config.Config
	log  *slog.Logger
	dump io.Writer
}

// generate runs one full pass: load, resolve every phase, emit, write.
func (g *generator) generate(ctx context.Context) error {
	cfg := g.cfg

	doc, err := schema.LoadVersion(schema.DirSource{Root: cfg.DataDir}, cfg.ProtocolVersion)
	if err != nil {
		return err
	}

	table, err := g.table()
	if err != nil {
		return err
	}

	if cfg.CheckRuntime {
		if err := g.checkRuntime(table); err != nil {
			return err
		}
	}

	protocols, err := g.resolve(ctx, doc, table)
	if err != nil {
		return err
	}

	if cfg.DumpIR {
		dumpConfig.Fdump(g.dump, protocols)
	}

	emitters := []gen.Emitter{gen.NewGoEmitter(cfg.RuntimePackage)}
	if cfg.Manifest {
		emitters = append(emitters, &gen.ManifestEmitter{ProtocolVersion: cfg.ProtocolVersion})
	}

	files, err := gen.EmitAll(protocols, emitters...)
	if err != nil {
		return err
	}

	w := gen.NewWriter(cfg.OutputDir)
	if err := w.RemoveStale(); err != nil {
		return err
	}

	if err := w.WriteFiles(files); err != nil {
		return err
	}

	g.log.Info("generated protocol",
		"version", cfg.ProtocolVersion,
		"phases", len(protocols),
		"files", len(files),
		"out", cfg.OutputDir,
	)

	return nil
}

func (g *generator) table() (*mapping.Table, error) {
	table := mapping.NewTable(g.cfg.RuntimePackage)
	if g.cfg.TypesFile == "" {
		return table, nil
	}

	overrides, err := mapping.LoadFile(g.cfg.TypesFile)
	if err != nil {
		return nil, err
	}

	for _, w := range mapping.Validate(overrides, table).Warnings {
		g.log.Warn("type override", "subject", w.Subject, "code", w.Code, "message", w.Message)
	}

	return table.Extend(overrides)
}

// checkRuntime verifies that the packages referenced by table and the
// emitter declare the expected symbols.
func (g *generator) checkRuntime(table *mapping.Table) error {
	reqs := append(analyze.TableRequirements(table), gen.RuntimeRequirements(g.cfg.RuntimePackage)...)

	exports, err := analyze.NewAnalyzer().LoadPackages(analyze.Packages(reqs)...)
	if err != nil {
		return err
	}

	diags := analyze.CheckRuntime(reqs, exports)
	for _, w := range diags.Warnings {
		g.log.Warn("runtime check", "subject", w.Subject, "code", w.Code, "message", w.Message)
	}

	if err := diags.Err(); err != nil {
		return fmt.Errorf("runtime check failed: %w", err)
	}

	g.log.Debug("runtime check passed", "packages", len(exports.Packages), "symbols", len(reqs))

	return nil
}

// resolve transforms the phases concurrently. Results keep document order.
func (g *generator) resolve(ctx context.Context, doc *schema.Document, table *mapping.Table) ([]ir.Protocol, error) {
	opts := transform.Options{ImplicitVoidDefault: g.cfg.ImplicitVoidDefault}
	protocols := make([]ir.Protocol, len(doc.Phases))

	eg, ctx := errgroup.WithContext(ctx)
	if g.cfg.Workers > 0 {
		eg.SetLimit(g.cfg.Workers)
	}

	for i := range doc.Phases {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			p, err := transform.TransformPhase(&doc.Phases[i], table, opts)
			if err != nil {
				return err
			}

			g.log.Debug("resolved phase",
				"phase", p.Name(),
				"serverbound", len(p.ServerBound),
				"clientbound", len(p.ClientBound),
			)

			protocols[i] = p

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		var unknown *diagnostic.UnknownTypeError
		if errors.As(err, &unknown) {
			if s, ok := table.Suggest(unknown.TypeName); ok {
				g.log.Info("unknown type has a close match", "type", unknown.TypeName, "suggestion", s)
			}
		}

		return nil, fmt.Errorf("resolving protocol %s: %w", g.cfg.ProtocolVersion, err)
	}

	return protocols, nil
}
