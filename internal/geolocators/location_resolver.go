package geolocators

import (
	"context"
	"fmt"
	"time"

	"log-insights/internal/models"
)

const (
	ProviderIPInfo = "ipinfo"
	ProviderIPAPI  = "ipapi"
	ProviderNone   = "none"
)

// LocationResolver looks up where an address is. Lookups are best effort:
// any failure yields an Unknown location instead of an error.
//
//go:generate mockgen -source=location_resolver.go -destination=./mocks/location_resolver_mock.go -package=mocks
type LocationResolver interface {
	ResolveLocation(ctx context.Context, address string) models.Location
	Provider() string
}

// NewLocationResolver returns the resolver registered under provider.
func NewLocationResolver(provider string, timeout time.Duration, opts ...Option) (LocationResolver, error) {
	switch provider {
	case ProviderIPInfo:
		return NewIPInfoResolver(timeout, opts...), nil
	case ProviderIPAPI:
		return NewIPAPIResolver(timeout, opts...), nil
	case ProviderNone:
		return NewUnknownResolver(), nil
	default:
		return nil, fmt.Errorf("unknown geolocation provider %q", provider)
	}
}

type unknownResolver struct{}

// NewUnknownResolver returns a resolver that never leaves the process and always answers Unknown.
func NewUnknownResolver() LocationResolver {
	return unknownResolver{}
}

func (unknownResolver) ResolveLocation(context.Context, string) models.Location {
	return models.NewUnknownLocation()
}

func (unknownResolver) Provider() string {
	return ProviderNone
}
