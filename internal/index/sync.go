package index

import (
	"log/slog"

	"github.com/starford/dagaz/internal/eventstore"
	"github.com/starford/dagaz/internal/models"
)

// Sync brings the index up to date with events:
//   - new/changed events are upserted
//   - events no longer present are deleted from the index
func Sync(db EventIndex, events []models.Event, logger *slog.Logger) error {
	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	live := make(map[string]struct{}, len(events))
	for _, ev := range events {
		live[ev.ID] = struct{}{}

		if checksums[ev.ID] == Fingerprint(ev) {
			continue
		}
		if err := db.UpsertEvent(ev); err != nil {
			logger.Warn("sync: index failed", slog.String("id", ev.ID), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("id", ev.ID))
		}
	}

	// Remove stale entries.
	for id := range checksums {
		if _, ok := live[id]; !ok {
			if err := db.DeleteEvent(id); err != nil {
				logger.Warn("sync: delete failed", slog.String("id", id), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("id", id))
			}
		}
	}

	return nil
}

// Listener returns a store listener that mirrors every change into db.
// Index failures are logged; the store stays authoritative.
func Listener(db EventIndex, logger *slog.Logger) eventstore.Listener {
	return func(c eventstore.Change) {
		var err error
		switch c.Op {
		case eventstore.OpCreated, eventstore.OpUpdated:
			err = db.UpsertEvent(c.Event)
		case eventstore.OpDeleted:
			err = db.DeleteEvent(c.Event.ID)
		case eventstore.OpReset:
			err = Sync(db, c.Events, logger)
		}
		if err != nil {
			logger.Warn("index: apply change failed",
				slog.String("op", string(c.Op)),
				slog.String("id", c.Event.ID),
				slog.String("error", err.Error()))
		}
	}
}
