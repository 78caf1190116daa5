package binmgr

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ScanAll walks the storage directory and registers every binary whose
// header can be read. Files with unreadable headers are skipped, not
// fatal. A missing directory means there is nothing to scan yet: the
// system may be running for the first time.
//
// Registration is idempotent, so rescanning an unchanged directory never
// creates duplicate slots. Scan order is unspecified.
func (m *Manager) ScanAll() {
	entries, err := os.ReadDir(m.cfg.StorageDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("storage directory absent, nothing to scan",
				zap.String("dir", m.cfg.StorageDir))
			return
		}
		m.logger.Error("failed to open storage directory",
			zap.String("dir", m.cfg.StorageDir),
			zap.Error(err),
		)
		return
	}

	m.metrics.ScansTotal.Inc()

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		path := filepath.Join(m.cfg.StorageDir, entry.Name())
		info, err := m.headers.Read(path)
		if err != nil {
			m.metrics.FilesSkipped.Inc()
			m.logger.Debug("skipping file with unreadable header",
				zap.String("file", entry.Name()),
				zap.Error(err),
			)
			continue
		}

		m.metrics.FilesScanned.Inc()

		if _, err := m.registry.RegisterIfAbsent(info.Name); err != nil {
			m.logger.Warn("failed to register scanned binary",
				zap.String("name", info.Name),
				zap.Error(err),
			)
		}
	}

	m.metrics.SlotsRegistered.Set(float64(m.registry.Count()))
}
