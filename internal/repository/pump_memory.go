package repository

import (
	"context"
	"sync"

	"github.com/google/btree"

	"fuel_pump_registry/internal/models"
)

const memoryTreeDegree = 32

// PumpMemory is an in-process ordered map backed by a B-tree.
// Values are cloned on the way in and out so callers never share slices with the tree.
type PumpMemory struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[models.FuelPump]
}

func lessByID(a, b models.FuelPump) bool {
	return a.ID < b.ID
}

func NewPumpMemory() *PumpMemory {
	return &PumpMemory{
		tree: btree.NewG(memoryTreeDegree, lessByID),
	}
}

var _ PumpStore = (*PumpMemory)(nil)

func (s *PumpMemory) Get(_ context.Context, id string) (models.FuelPump, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.tree.Get(models.FuelPump{ID: id})
	if !ok {
		return models.FuelPump{}, ErrPumpNotFound
	}
	return p.Clone(), nil
}

func (s *PumpMemory) Insert(_ context.Context, p models.FuelPump) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tree.ReplaceOrInsert(p.Clone())
	return nil
}

func (s *PumpMemory) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tree.Delete(models.FuelPump{ID: id}); !ok {
		return ErrPumpNotFound
	}
	return nil
}

func (s *PumpMemory) Values(_ context.Context) ([]models.FuelPump, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FuelPump, 0, s.tree.Len())
	s.tree.Ascend(func(p models.FuelPump) bool {
		out = append(out, p.Clone())
		return true
	})
	return out, nil
}
