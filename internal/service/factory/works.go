package factory

import (
	"context"
	"slices"
	"strings"

	"github.com/mamadbah2/factory/internal/domain/models"
	"github.com/mamadbah2/factory/internal/ledger"
)

// CreateMachineWork books a production run, consuming raw stock.
func (s *Service) CreateMachineWork(ctx context.Context, d MachineWorkDraft) (models.MachineWork, error) {
	w, err := s.machineWork(s.newID(), d)
	if err != nil {
		return models.MachineWork{}, err
	}
	if _, err := s.commit(ctx, "machine_work.create", w.ID, func(st *models.State) (ledger.Result, error) {
		return s.ledger.CreateMachineWork(st, w)
	}); err != nil {
		return models.MachineWork{}, err
	}
	return w, nil
}

// UpdateMachineWork replaces a production run.
func (s *Service) UpdateMachineWork(ctx context.Context, id string, d MachineWorkDraft) (models.MachineWork, []ledger.Clamp, error) {
	w, err := s.machineWork(id, d)
	if err != nil {
		return models.MachineWork{}, nil, err
	}
	clamps, err := s.commit(ctx, "machine_work.update", id, func(st *models.State) (ledger.Result, error) {
		return s.ledger.UpdateMachineWork(st, w)
	})
	if err != nil {
		return models.MachineWork{}, nil, err
	}
	return w, clamps, nil
}

// DeleteMachineWork removes a production run and returns its raw material.
func (s *Service) DeleteMachineWork(ctx context.Context, id string) ([]ledger.Clamp, error) {
	return s.commit(ctx, "machine_work.delete", id, func(st *models.State) (ledger.Result, error) {
		return s.ledger.DeleteMachineWork(st, id)
	})
}

// DeleteMachineWorks removes several production runs; all or none.
func (s *Service) DeleteMachineWorks(ctx context.Context, ids []string) ([]ledger.Clamp, error) {
	return s.commit(ctx, "machine_work.delete_bulk", strings.Join(ids, ","), func(st *models.State) (ledger.Result, error) {
		return s.ledger.DeleteMachineWorks(st, ids)
	})
}

// MachineWorks lists production runs, newest first.
func (s *Service) MachineWorks() []models.MachineWork {
	out := s.store.Snapshot().MachineWorks
	slices.SortStableFunc(out, func(a, b models.MachineWork) int {
		return strings.Compare(b.Date, a.Date)
	})
	return out
}

// MachineWork returns one production run.
func (s *Service) MachineWork(id string) (models.MachineWork, error) {
	for _, w := range s.MachineWorks() {
		if w.ID == id {
			return w, nil
		}
	}
	return models.MachineWork{}, &models.NotFoundError{Entity: "machine work", ID: id}
}

// CreateProcessingWork books a finishing batch.
func (s *Service) CreateProcessingWork(ctx context.Context, d ProcessingWorkDraft) (models.ProcessingWork, error) {
	w := s.processingWork(s.newID(), d)
	if _, err := s.commit(ctx, "processing_work.create", w.ID, func(st *models.State) (ledger.Result, error) {
		return s.ledger.CreateProcessingWork(st, w)
	}); err != nil {
		return models.ProcessingWork{}, err
	}
	return w, nil
}

// UpdateProcessingWork replaces a finishing batch.
func (s *Service) UpdateProcessingWork(ctx context.Context, id string, d ProcessingWorkDraft) (models.ProcessingWork, []ledger.Clamp, error) {
	w := s.processingWork(id, d)
	clamps, err := s.commit(ctx, "processing_work.update", id, func(st *models.State) (ledger.Result, error) {
		return s.ledger.UpdateProcessingWork(st, w)
	})
	if err != nil {
		return models.ProcessingWork{}, nil, err
	}
	return w, clamps, nil
}

// DeleteProcessingWork removes a finishing batch.
func (s *Service) DeleteProcessingWork(ctx context.Context, id string) ([]ledger.Clamp, error) {
	return s.commit(ctx, "processing_work.delete", id, func(st *models.State) (ledger.Result, error) {
		return s.ledger.DeleteProcessingWork(st, id)
	})
}

// ProcessingWorks lists finishing batches, newest first.
func (s *Service) ProcessingWorks() []models.ProcessingWork {
	out := s.store.Snapshot().ProcessingWorks
	slices.SortStableFunc(out, func(a, b models.ProcessingWork) int {
		return strings.Compare(b.Date, a.Date)
	})
	return out
}

// ProcessingWork returns one finishing batch.
func (s *Service) ProcessingWork(id string) (models.ProcessingWork, error) {
	for _, w := range s.ProcessingWorks() {
		if w.ID == id {
			return w, nil
		}
	}
	return models.ProcessingWork{}, &models.NotFoundError{Entity: "processing work", ID: id}
}
