package geolocation

import (
	"context"
	"errors"
)

// ErrUnavailable reports that no position source exists.
var ErrUnavailable = errors.New("geolocation unavailable")

// Provider yields a latitude/longitude pair best-effort. Both success and
// failure are normal control flow for the attendance tracker; a failed
// lookup degrades to a placeholder location string.
type Provider interface {
	Locate(ctx context.Context) (lat float64, lng float64, err error)
}

// Func adapts a plain function to a Provider.
type Func func(ctx context.Context) (float64, float64, error)

func (f Func) Locate(ctx context.Context) (float64, float64, error) {
	return f(ctx)
}

// Fixed returns a Provider that always reports the given coordinates,
// for kiosk-style deployments bound to one office terminal.
func Fixed(lat, lng float64) Provider {
	return Func(func(context.Context) (float64, float64, error) {
		return lat, lng, nil
	})
}

// Unavailable returns a Provider that never resolves a position. Used when
// the deployment has no location source at all.
func Unavailable() Provider {
	return Func(func(context.Context) (float64, float64, error) {
		return 0, 0, ErrUnavailable
	})
}
