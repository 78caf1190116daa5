package binmgr

import (
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/updateos/binmgr/internal/shared/paths"
	"github.com/updateos/binmgr/internal/shared/types"
	"github.com/updateos/binmgr/internal/shared/utils"
)

// CreateEntry stages a new version of a binary on behalf of a requester.
//
// For the reserved kernel name no file I/O happens: the answer is the
// device path of the partition bank not currently in use, or NOT_FOUND
// when no second bank exists. For user binaries the old versions are
// reclaimed (at the slot's OLD active version) and a new empty file
// <name>_<version> is created for the requester to fill; the registry's
// active version is untouched until the activation step.
//
// Exactly one response message is sent to the requester's channel
// regardless of outcome, and the same result code is returned.
func (m *Manager) CreateEntry(requesterID int, name string, version int) types.Result {
	resp := m.createEntry(requesterID, name, version)

	m.metrics.EntriesCreated.WithLabelValues(resp.Result.String()).Inc()
	m.respond(requesterID, resp)
	return resp.Result
}

func (m *Manager) createEntry(requesterID int, name string, version int) types.CreateEntryResponse {
	if err := firstErr(
		utils.ValidateRequesterID(requesterID),
		utils.ValidateBinaryName(name),
		utils.ValidateVersion(version),
	); err != nil {
		m.logger.Warn("invalid create-entry request",
			zap.Int("requester_id", requesterID),
			zap.String("name", name),
			zap.Int("version", version),
			zap.Error(err),
		)
		return types.CreateEntryResponse{Result: types.ResultInvalidParam}
	}

	if name == types.KernelName {
		return m.kernelEntry()
	}
	return m.userEntry(name, version)
}

// kernelEntry answers a kernel update request from the partition table.
// The version argument is never consulted: the only valid target is the
// inactive bank.
func (m *Manager) kernelEntry() types.CreateEntryResponse {
	info, ok := m.registry.Kernel()
	if !ok {
		return types.CreateEntryResponse{Result: types.ResultNotFound}
	}

	target, ok := info.UpdateTarget()
	if !ok {
		return types.CreateEntryResponse{Result: types.ResultNotFound}
	}

	return types.CreateEntryResponse{
		Result: types.ResultOK,
		Path:   paths.KernelDevice(m.cfg.DevnameFmt, target.Num),
	}
}

func (m *Manager) userEntry(name string, version int) types.CreateEntryResponse {
	unlock := m.lockSlot(name)
	defer unlock()

	slot, found := m.registry.FindSlot(name)
	if found {
		if slot.Version == version {
			m.logger.Debug("version already active",
				zap.String("name", name),
				zap.Int("version", version),
			)
			return types.CreateEntryResponse{Result: types.ResultAlreadyUpdated}
		}
		// Reclaim space before staging; the active version survives.
		if err := m.ClearStaleVersions(slot.Index); err != nil {
			m.logger.Error("garbage collection failed",
				zap.String("name", name),
				zap.Error(err),
			)
			return types.CreateEntryResponse{Result: types.ResultOperationFail}
		}
	} else {
		if _, err := m.registry.RegisterIfAbsent(name); err != nil {
			m.logger.Error("failed to register binary",
				zap.String("name", name),
				zap.Error(err),
			)
			return types.CreateEntryResponse{Result: types.ResultOperationFail}
		}
		m.metrics.SlotsRegistered.Set(float64(m.registry.Count()))
	}

	path := paths.BinaryFile{Name: name, Version: version}.In(m.cfg.StorageDir)
	if err := m.createFile(path); err != nil {
		m.logger.Error("failed to create binary file",
			zap.String("path", path),
			zap.Error(err),
		)
		return types.CreateEntryResponse{Result: types.ResultOperationFail}
	}

	m.logger.Info("staged binary entry",
		zap.String("name", name),
		zap.Int("version", version),
		zap.String("path", path),
	)
	return types.CreateEntryResponse{Result: types.ResultOK, Path: path}
}

// createFile creates an empty file at path, truncating any leftover
// same-named file so the requester always starts from zero bytes. When
// the storage directory itself is missing it is created once and the
// open retried.
func (m *Manager) createFile(path string) error {
	const flags = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	f, err := os.OpenFile(path, flags, 0o666)
	if errors.Is(err, fs.ErrNotExist) {
		if mkErr := os.MkdirAll(m.cfg.StorageDir, 0o777); mkErr != nil {
			return mkErr
		}
		f, err = os.OpenFile(path, flags, 0o666)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
