package factory

import (
	"context"
	"slices"
	"strings"

	"github.com/mamadbah2/factory/internal/domain/models"
	"github.com/mamadbah2/factory/internal/ledger"
)

// HistoryEntry is one machine work line that produced a model.
type HistoryEntry struct {
	WorkID      string              `json:"workId"`
	Date        string              `json:"date"`
	MachineName string              `json:"machineName"`
	Quantity    int                 `json:"quantity"`
	RawType     models.MaterialType `json:"rawType"`
	RawSize     models.MaterialSize `json:"rawSize"`
	RawColor    string              `json:"rawColor"`
}

// CreateModel adds a model to the catalogue with empty counters.
func (s *Service) CreateModel(ctx context.Context, d ModelDraft) (models.FabricModel, error) {
	m := d.model(s.newID())
	err := s.change(ctx, "model.create", m.ID, func(st *models.State) error {
		return ledger.AddModel(st, m)
	})
	if err != nil {
		return models.FabricModel{}, err
	}
	return m, nil
}

// UpdateModel edits a model's description; its counters are kept.
func (s *Service) UpdateModel(ctx context.Context, id string, d ModelDraft) (models.FabricModel, error) {
	var out models.FabricModel
	err := s.change(ctx, "model.update", id, func(st *models.State) error {
		m, err := ledger.EditModel(st, d.model(id))
		out = m
		return err
	})
	return out, err
}

// DeleteModel removes a model no record refers to.
func (s *Service) DeleteModel(ctx context.Context, id string) error {
	return s.change(ctx, "model.delete", id, func(st *models.State) error {
		return ledger.RemoveModel(st, id)
	})
}

// Models lists the catalogue.
func (s *Service) Models() []models.FabricModel {
	var out []models.FabricModel
	s.store.Read(func(st *models.State) {
		out = slices.Clone(st.Models)
	})
	return out
}

// Model returns one model.
func (s *Service) Model(id string) (models.FabricModel, error) {
	var (
		out   models.FabricModel
		found bool
	)
	s.store.Read(func(st *models.State) {
		if idx := st.ModelIndex(id); idx >= 0 {
			out, found = st.Models[idx], true
		}
	})
	if !found {
		return models.FabricModel{}, &models.NotFoundError{Entity: "model", ID: id}
	}
	return out, nil
}

// ModelHistory lists the machine work lines that produced a model, newest first.
func (s *Service) ModelHistory(id string) ([]HistoryEntry, error) {
	var (
		out   []HistoryEntry
		found bool
	)
	s.store.Read(func(st *models.State) {
		if st.ModelIndex(id) < 0 {
			return
		}
		found = true
		for _, w := range st.MachineWorks {
			for _, e := range w.Entries {
				if e.Produced.ModelID != id {
					continue
				}
				out = append(out, HistoryEntry{
					WorkID:      w.ID,
					Date:        w.Date,
					MachineName: w.MachineName,
					Quantity:    e.Produced.Quantity,
					RawType:     e.Raw.Type,
					RawSize:     e.Raw.Size,
					RawColor:    e.Raw.Color,
				})
			}
		}
	})
	if !found {
		return nil, &models.NotFoundError{Entity: "model", ID: id}
	}
	slices.SortStableFunc(out, func(a, b HistoryEntry) int {
		return strings.Compare(b.Date, a.Date)
	})
	return out, nil
}

// SalesAvailability lists what each machine has left to sell per model.
func (s *Service) SalesAvailability() []ledger.Availability {
	var out []ledger.Availability
	s.store.Read(func(st *models.State) {
		out = ledger.SalesAvailability(st)
	})
	return out
}
