package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/rocketscienceinc/gridtictactoe/internal/apperror"
	"github.com/rocketscienceinc/gridtictactoe/internal/entity"
)

const maxSweepInterval = time.Minute

type memoryEntry struct {
	game      *entity.Game
	expiresAt time.Time
}

func (that memoryEntry) expired(now time.Time) bool {
	return !that.expiresAt.IsZero() && !now.Before(that.expiresAt)
}

// MemoryGameRepository keeps games in process memory. Stored and returned
// games are copies.
type MemoryGameRepository struct {
	games *xsync.MapOf[string, memoryEntry]
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryGameRepository expires each game ttl after its last write, like
// the Redis store. A zero ttl keeps games until they are deleted.
func NewMemoryGameRepository(ttl time.Duration) *MemoryGameRepository {
	return &MemoryGameRepository{
		games: xsync.NewMapOf[string, memoryEntry](),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *MemoryGameRepository) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	entry := memoryEntry{game: game.Clone()}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.games.Store(game.ID, entry)

	return nil
}

func (that *MemoryGameRepository) GetByID(_ context.Context, id string) (*entity.Game, error) {
	entry, ok := that.games.Load(id)
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	if entry.expired(that.now()) {
		that.evict(id)
		return nil, apperror.ErrGameNotFound
	}

	return entry.game.Clone(), nil
}

func (that *MemoryGameRepository) DeleteByID(_ context.Context, id string) error {
	entry, ok := that.games.LoadAndDelete(id)
	if !ok || entry.expired(that.now()) {
		return apperror.ErrGameNotFound
	}

	return nil
}

// Sweep removes every expired game and returns how many were removed.
func (that *MemoryGameRepository) Sweep() int {
	removed := 0
	that.games.Range(func(id string, entry memoryEntry) bool {
		if entry.expired(that.now()) && that.evict(id) {
			removed++
		}
		return true
	})

	return removed
}

// RunSweeper calls Sweep periodically until ctx is canceled. It returns at
// once when games never expire.
func (that *MemoryGameRepository) RunSweeper(ctx context.Context, logger *slog.Logger) error {
	if that.ttl <= 0 {
		return nil
	}

	ticker := time.NewTicker(min(that.ttl, maxSweepInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			if removed := that.Sweep(); removed > 0 {
				logger.Debug("expired games removed", "count", removed)
			}
		}
	}
}

// evict deletes id only if it is still expired, so a concurrent write wins.
func (that *MemoryGameRepository) evict(id string) bool {
	evicted := false
	that.games.Compute(id, func(entry memoryEntry, loaded bool) (memoryEntry, bool) {
		if !loaded {
			return entry, true
		}

		evicted = entry.expired(that.now())
		return entry, evicted
	})

	return evicted
}
