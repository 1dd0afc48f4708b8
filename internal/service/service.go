package service

import (
	"context"
	"fmt"
	"krkarrivals/internal/components/assert"
	"krkarrivals/internal/components/telemetry"
	"krkarrivals/internal/scrapers/krakowairport"
)

// FetcherAPI produces the arrivals currently on the board.
//
// note: fault injection point
type FetcherAPI interface {
	FetchArrivals(ctx context.Context) ([]krakowairport.Arrival, error)
}

// PersisterAPI stores arrivals somewhere durable.
//
// note: fault injection point
type PersisterAPI interface {
	Append(records []krakowairport.Arrival) error
}

const (
	report_service_fetch   = "service.fetch"
	report_service_persist = "service.persist"
	report_service_written = "service.written"
)

type Result struct {
	// Written is the amount of arrivals appended, 0 means the board had nothing
	// and the persister was never called.
	Written int
}

// Service runs the fetch -> parse -> persist pipeline once.
type Service struct {
	fetcher FetcherAPI
	store   PersisterAPI
	tel     telemetry.API
}

func New(fetcher FetcherAPI, store PersisterAPI, tel telemetry.API) Service {
	assert.NotNil(fetcher)
	assert.NotNil(store)
	assert.NotNil(tel)

	return Service{
		fetcher: fetcher,
		store:   store,
		tel:     telemetry.NewScopedAPI("service", tel),
	}
}

// Run executes every stage exactly once, the first error stops the run.
func (s Service) Run(ctx context.Context) (Result, error) {
	arrivals, err := s.fetcher.FetchArrivals(ctx)
	if err != nil {
		s.tel.ReportBroken(report_service_fetch, err)
		return Result{}, fmt.Errorf("fetch: %w", err)
	}
	if len(arrivals) == 0 {
		s.tel.ReportCount(report_service_written, 0)
		return Result{}, nil
	}

	err = s.store.Append(arrivals)
	if err != nil {
		s.tel.ReportBroken(report_service_persist, err)
		return Result{}, fmt.Errorf("persist: %w", err)
	}

	s.tel.ReportCount(report_service_written, int64(len(arrivals)))
	return Result{Written: len(arrivals)}, nil
}
