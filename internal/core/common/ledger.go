package common

import (
	"context"
	"sync"
)

type ledgerKey struct{}

// LinkLedger remembers every URL the search provider returned during one request.
// It is diagnostic only: nothing in the pipeline branches on it except logging.
type LinkLedger struct {
	mu    sync.RWMutex
	links map[string]struct{}
}

func NewLinkLedger() *LinkLedger {
	return &LinkLedger{links: make(map[string]struct{})}
}

func (l *LinkLedger) Record(urls ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, u := range urls {
		l.links[u] = struct{}{}
	}
}

func (l *LinkLedger) Seen(url string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.links[url]
	return ok
}

func (l *LinkLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.links)
}

// WithLinkLedger attaches a fresh ledger to ctx.
func WithLinkLedger(ctx context.Context) (context.Context, *LinkLedger) {
	l := NewLinkLedger()
	return context.WithValue(ctx, ledgerKey{}, l), l
}

// LinkLedgerFrom returns the ledger attached to ctx, or nil.
func LinkLedgerFrom(ctx context.Context) *LinkLedger {
	l, _ := ctx.Value(ledgerKey{}).(*LinkLedger)
	return l
}
