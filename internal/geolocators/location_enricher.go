package geolocators

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"log-insights/internal/models"
	"log-insights/internal/shared/loggers"
)

// LocationEnricher resolves a set of addresses, once per unique address.
//
//go:generate mockgen -source=location_enricher.go -destination=./mocks/location_enricher_mock.go -package=mocks
type LocationEnricher interface {
	// Enrich returns a location for every address. It never fails: lookups that
	// error, time out or panic are reported as Unknown.
	Enrich(ctx context.Context, addresses []string) map[string]models.Location
}

type locationEnricher struct {
	resolver LocationResolver
	workers  int
}

func NewLocationEnricher(resolver LocationResolver, workers int) LocationEnricher {
	if workers < 1 {
		workers = 1
	}
	return &locationEnricher{resolver: resolver, workers: workers}
}

func (e *locationEnricher) Enrich(ctx context.Context, addresses []string) map[string]models.Location {
	unique := make([]string, 0, len(addresses))
	locations := make(map[string]models.Location, len(addresses))
	for _, address := range addresses {
		if _, seen := locations[address]; seen {
			continue
		}
		locations[address] = models.NewUnknownLocation()
		unique = append(unique, address)
	}
	if len(unique) == 0 {
		return locations
	}

	jobs := make(chan string)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	workers := min(e.workers, len(unique))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for address := range jobs {
				location := e.resolve(ctx, address)
				mu.Lock()
				locations[address] = location
				mu.Unlock()
			}
		}()
	}

feed:
	for _, address := range unique {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- address:
		}
	}
	close(jobs)
	wg.Wait()

	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldProvider, e.resolver.Provider()).
		Int("addresses", len(unique)).
		Msg("finished resolving address locations")

	return locations
}

// resolve shields the worker from a misbehaving resolver.
func (e *locationEnricher) resolve(ctx context.Context, address string) (location models.Location) {
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Str(loggers.FieldAddress, address).
				Msg(fmt.Sprintf("geolocation panic recovered: %v", r))
			metricLookupsTotal.WithLabelValues(e.resolver.Provider(), outcomePanic).Inc()
			location = models.NewUnknownLocation()
		}
	}()
	return e.resolver.ResolveLocation(ctx, address)
}
