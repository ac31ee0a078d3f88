// Package ingest drives the fetch/transform half of an import run: it fans
// out over every eligible employer, runs the provider adapters, and returns
// one combined slice of canonical jobs.
package ingest

import (
	"context"
	"log"
	"sync"
	"time"

	"boardfeed-engine/internal/domain"
	"boardfeed-engine/internal/ingest/ats"

	"golang.org/x/sync/errgroup"
)

// Aggregator collects jobs from every provider. A failed employer never
// fails the run; the failure lands on the collector and the run moves on.
type Aggregator struct {
	Registry *ats.Registry

	// Workers bounds the per-employer fan-out. Zero means 8.
	Workers int
	// FetchTimeout bounds each provider call. Zero means 2 minutes.
	FetchTimeout time.Duration
}

func (a *Aggregator) workers() int {
	if a.Workers > 0 {
		return a.Workers
	}
	return 8
}

func (a *Aggregator) timeout() time.Duration {
	if a.FetchTimeout > 0 {
		return a.FetchTimeout
	}
	return 2 * time.Minute
}

// FetchAll runs every eligible employer through its adapter plus each
// cross-employer feed once, and returns the combined canonical jobs.
func (a *Aggregator) FetchAll(ctx context.Context, employers []domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	var (
		mu  sync.Mutex
		all []domain.CanonicalJob
	)
	add := func(jobs []domain.CanonicalJob) {
		if len(jobs) == 0 {
			return
		}
		mu.Lock()
		all = append(all, jobs...)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers())

	for _, emp := range employers {
		if !emp.Eligible() || a.Registry.CrossKind(emp.ATS) {
			continue
		}
		conn, ok := a.Registry.Lookup(emp.ATS)
		if !ok {
			rep.Add(domain.BrokenImport{
				Email:  emp.Email,
				Error:  "no adapter for provider " + string(emp.ATS),
				ATS:    string(emp.ATS),
				Source: "error_during_api_call",
			})
			continue
		}
		emp := emp
		g.Go(func() error {
			add(a.runEmployer(gctx, conn, emp, rep))
			return nil
		})
	}

	for _, cross := range a.Registry.Cross() {
		cross := cross
		g.Go(func() error {
			add(a.runCross(gctx, cross, employers, rep))
			return nil
		})
	}

	// Workers only return nil; Wait is for the barrier.
	_ = g.Wait()

	log.Printf("[ingest] fetched %d jobs from %d employers", len(all), len(employers))
	return all
}

func (a *Aggregator) runEmployer(ctx context.Context, conn ats.Connector, emp domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	ctx, cancel := context.WithTimeout(ctx, a.timeout())
	defer cancel()

	batch, err := conn.Fetch(ctx, emp)
	if err != nil {
		log.Printf("[ingest:%s] %s: fetch failed: %v", emp.ATS, emp.CompanyName, err)
		rep.Add(domain.BrokenImport{
			Email:  emp.Email,
			Error:  err.Error(),
			ATS:    string(emp.ATS),
			Source: "error_during_api_call",
		})
		return nil
	}
	return conn.Transform(batch, emp, rep)
}

func (a *Aggregator) runCross(ctx context.Context, conn ats.CrossEmployerConnector, employers []domain.Employer, rep *domain.Collector) []domain.CanonicalJob {
	ctx, cancel := context.WithTimeout(ctx, a.timeout())
	defer cancel()

	batch, err := conn.FetchAll(ctx)
	if err != nil {
		log.Printf("[ingest:%s] fetch failed: %v", conn.Kind(), err)
		rep.Add(domain.BrokenImport{
			Error:  err.Error(),
			ATS:    string(conn.Kind()),
			Source: "error_during_api_call",
		})
		return nil
	}
	return conn.TransformAll(batch, employers, rep)
}
