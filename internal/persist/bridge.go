package persist

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/djb242/inkwell/internal/remote"
	"github.com/djb242/inkwell/internal/store"
)

// Remote is the slice of the document API the bridge needs.
type Remote interface {
	Fetch(ctx context.Context, accountID string) (store.Bundle, error)
	Upsert(ctx context.Context, accountID string, b store.Bundle) error
}

const upsertTimeout = 15 * time.Second

// Bridge mirrors every store change to the local cache and, while an
// account is signed in, pushes the full bundle to the remote store.
//
// The remote path is gated on hydration: until the one-time load on
// sign-in has fully resolved, change-triggered upserts do not fire, so a
// fresh sign-in can never clobber previously saved remote data with
// still-empty local state.
type Bridge struct {
	store  *store.Store
	cache  *Cache
	remote Remote
	logger *slog.Logger

	mu        sync.Mutex
	accountID string
	hydrated  bool
}

// NewBridge wires the bridge; rc may be nil when no sync server is
// configured. Call Attach to start observing the store.
func NewBridge(st *store.Store, cache *Cache, rc Remote, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{store: st, cache: cache, remote: rc, logger: logger}
}

// Attach subscribes the bridge to the store's change events.
func (b *Bridge) Attach() {
	b.store.Subscribe(b.onChange)
}

func (b *Bridge) onChange(bundle store.Bundle) {
	if err := b.cache.Save(bundle); err != nil {
		b.logger.Error("local mirror write failed", "error", err)
	}

	b.mu.Lock()
	account := b.accountID
	hydrated := b.hydrated
	b.mu.Unlock()

	if account == "" || !hydrated || b.remote == nil {
		return
	}

	// Fire-and-forget; overlapping saves are not serialized and the
	// server resolves them last-write-wins.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), upsertTimeout)
		defer cancel()
		if err := b.remote.Upsert(ctx, account, bundle); err != nil {
			b.logger.Error("remote upsert failed", "account", account, "error", err)
		}
	}()
}

// SignIn performs the one-time remote load for the account. A found
// document replaces local state wholesale (remote wins, no merge); a
// missing document gets an empty placeholder written for future saves.
// Only after either outcome does the change-triggered upsert path open.
func (b *Bridge) SignIn(ctx context.Context, accountID string) error {
	if b.remote == nil {
		return errors.New("no sync server configured")
	}

	b.mu.Lock()
	b.accountID = accountID
	b.hydrated = false
	b.mu.Unlock()

	bundle, err := b.remote.Fetch(ctx, accountID)
	switch {
	case errors.Is(err, remote.ErrNotFound):
		if err := b.remote.Upsert(ctx, accountID, store.Bundle{}); err != nil {
			b.logger.Error("placeholder write failed", "account", accountID, "error", err)
			return err
		}
	case err != nil:
		// Local mirror stays authoritative; upserts remain gated.
		b.logger.Error("remote load failed", "account", accountID, "error", err)
		return err
	default:
		b.store.Replace(bundle)
	}

	b.mu.Lock()
	b.hydrated = true
	b.mu.Unlock()
	b.logger.Info("remote hydration complete", "account", accountID)
	return nil
}

func (b *Bridge) SignOut() {
	b.mu.Lock()
	b.accountID = ""
	b.hydrated = false
	b.mu.Unlock()
}

// Account returns the signed-in account id, or empty.
func (b *Bridge) Account() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.accountID
}

// Hydrated reports whether the sign-in load has completed.
func (b *Bridge) Hydrated() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hydrated
}
