package binmgr

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/updateos/binmgr/internal/shared/paths"
)

// ClearStaleVersions removes every on-disk file of the slot's binary
// except the one matching the registry's currently active version. The
// active version is not necessarily the newest file: a freshly staged
// version stays on disk until activation flips the registry's fact and a
// later GC pass reclaims the old one.
//
// A file belongs to the binary only when the separator follows the full
// name, so clearing "foo" never touches "foobar_1". A missing storage
// directory is not an error; any other open failure aborts the caller's
// create-entry flow. Individual deletions are best-effort.
func (m *Manager) ClearStaleVersions(slotIndex int) error {
	name, err := m.registry.NameOf(slotIndex)
	if err != nil {
		return fmt.Errorf("clear stale versions: %w", err)
	}
	active, err := m.registry.ActiveVersion(slotIndex)
	if err != nil {
		return fmt.Errorf("clear stale versions: %w", err)
	}
	keep := paths.BinaryFile{Name: name, Version: active}.String()

	entries, err := os.ReadDir(m.cfg.StorageDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("clear stale versions: open %s: %w", m.cfg.StorageDir, err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		fileName := entry.Name()
		if !paths.BelongsTo(fileName, name) || fileName == keep {
			continue
		}

		if err := os.Remove(filepath.Join(m.cfg.StorageDir, fileName)); err != nil {
			m.logger.Warn("failed to remove stale binary file",
				zap.String("file", fileName),
				zap.Error(err),
			)
			continue
		}

		m.metrics.StaleFilesRemoved.Inc()
		m.logger.Debug("removed stale binary file", zap.String("file", fileName))
	}

	return nil
}
