package analyzer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ccollicutt/actlog/pkg/parser"
)

// Analyzer runs a single pass over a record source.
type Analyzer struct {
	taxonomy *Taxonomy
	metrics  *Metrics
}

// AnalyzerOption configures analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithTaxonomy replaces the built-in activity mapping.
func WithTaxonomy(t *Taxonomy) AnalyzerOption {
	return func(a *Analyzer) {
		a.taxonomy = t
	}
}

// WithMetrics records counters while analyzing.
func WithMetrics(m *Metrics) AnalyzerOption {
	return func(a *Analyzer) {
		a.metrics = m
	}
}

// NewAnalyzer creates an analyzer. The default taxonomy is used unless
// WithTaxonomy is given.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	if a.taxonomy == nil {
		a.taxonomy = DefaultTaxonomy()
	}
	return a
}

// Analyze consumes source once and returns the statistics and normalized rows.
func (a *Analyzer) Analyze(ctx context.Context, source parser.RecordSource) (*Result, error) {
	result := &Result{
		Metadata: Metadata{StartTime: time.Now()},
	}

	agg := NewAggregator(a.taxonomy, a.metrics)
	sourcesMap := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record source: %w", err)
		}

		if !sourcesMap[rec.Source] {
			sourcesMap[rec.Source] = true
			result.Metadata.Sources = append(result.Metadata.Sources, rec.Source)
		}

		if err := agg.Process(ctx, rec); err != nil {
			return nil, fmt.Errorf("processing record: %w", err)
		}
	}

	result.Stats, result.Rows = agg.Finalize()
	result.Metadata.EndTime = time.Now()
	a.metrics.observeRun(result.Metadata.StartTime, result.Metadata.EndTime)

	slog.Debug("analysis complete",
		"lineReads", result.Stats.LineReads,
		"retained", len(result.Rows),
		"dropped", result.Stats.DroppedEventsCounts)

	return result, nil
}
