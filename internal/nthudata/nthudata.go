// Package nthudata fetches JSON documents published by the NTHU data
// repository and caches them by the commit that last touched each file.
package nthudata

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrNotFound is returned when the data repository has no such file.
	ErrNotFound = errors.New("nthudata: file not found")
	// ErrUpstream is returned when the data repository answers with an error.
	ErrUpstream = errors.New("nthudata: upstream error")
)

// Snapshot is one version of a data file.
type Snapshot struct {
	CommitHash string
	Payload    json.RawMessage
}

// Fetcher returns the current version of a data file.
type Fetcher interface {
	Get(ctx context.Context, key string) (*Snapshot, error)
}
