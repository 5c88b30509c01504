package tariff

import (
	"context"
	"sync/atomic"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
)

// Store holds the active tariff table behind an atomic pointer. Readers always
// see a complete table: a reload swaps the whole pointer, never fields, so an
// in-flight computation observes either the old or the new revision.
type Store struct {
	table atomic.Pointer[models.TariffTable]
	path  string

	log logger.Logger
}

// NewStore loads the tariff file once and keeps the path for reloads.
func NewStore(ctx context.Context, path string, log logger.Logger) (*Store, error) {
	table, err := Load(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path: path,
		log:  log,
	}
	s.table.Store(table)

	log.Info(wrap.WithAction(ctx, types.ActionTariffLoaded), "tariff table loaded",
		"version", table.Version,
		"competitors", len(table.Competitors),
	)

	return s, nil
}

// Current returns the active table. The returned value must be treated as
// read-only.
func (s *Store) Current() *models.TariffTable {
	return s.table.Load()
}

// Version returns the active tariff revision.
func (s *Store) Version() string {
	return s.table.Load().Version
}

// Reload re-reads the tariff file and swaps it in atomically. On failure the
// previous table stays active.
func (s *Store) Reload(ctx context.Context) error {
	ctx = wrap.WithAction(ctx, types.ActionTariffReloaded)

	table, err := Load(s.path)
	if err != nil {
		s.log.Error(ctx, "tariff reload failed, keeping previous revision", err,
			"active_version", s.Version(),
		)
		return err
	}

	old := s.table.Swap(table)
	s.log.Info(ctx, "tariff table reloaded",
		"old_version", old.Version,
		"new_version", table.Version,
	)

	return nil
}
