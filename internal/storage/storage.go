package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage keeps a short-lived journal of completed exchanges.

// Journal stores opaque exchange summaries keyed by exchange id.
type Journal interface {
	Close() error
	Record(id string, payload []byte) error
	Lookup(id string) ([]byte, bool, error)
}

// Options controls retention characteristics for concrete journal implementations.
type Options struct {
	EntryTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultEntryTTL        = 24 * time.Hour
	defaultCleanupInterval = time.Hour
)

// NewJournal creates the configured journal backend.
func NewJournal(typ, path string, opts Options) (Journal, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopJournal{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt journal requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported journal type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopJournal struct{}

func (noopJournal) Close() error                        { return nil }
func (noopJournal) Record(string, []byte) error         { return nil }
func (noopJournal) Lookup(string) ([]byte, bool, error) { return nil, false, nil }
