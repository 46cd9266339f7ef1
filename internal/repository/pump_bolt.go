package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"

	"fuel_pump_registry/internal/models"
)

const (
	pumpsBucket = "fuel_pumps"
	usersBucket = "users"

	boltOpenTimeout = 1 * time.Second
)

// OpenBolt opens (or creates) a BoltDB file and ensures the buckets exist.
func OpenBolt(path string) (*bolt.DB, error) {
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt at %q: %w", path, err)
	}

	err = bdb.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{pumpsBucket, usersBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = bdb.Close()
		return nil, err
	}
	return bdb, nil
}

// PumpBolt keeps pumps as JSON values keyed by id; bolt iterates keys in byte order.
type PumpBolt struct {
	db *bolt.DB
}

func NewPumpBolt(db *bolt.DB) *PumpBolt {
	return &PumpBolt{db: db}
}

var _ PumpStore = (*PumpBolt)(nil)

func (s *PumpBolt) Get(_ context.Context, id string) (models.FuelPump, error) {
	var p models.FuelPump
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(pumpsBucket)).Get([]byte(id))
		if v == nil {
			return ErrPumpNotFound
		}
		return json.Unmarshal(v, &p)
	})
	if err != nil {
		return models.FuelPump{}, err
	}
	return normalizeDecoded(p), nil
}

func (s *PumpBolt) Insert(_ context.Context, p models.FuelPump) error {
	data, err := json.Marshal(normalizeDecoded(p))
	if err != nil {
		return fmt.Errorf("encode pump %q: %w", p.ID, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(pumpsBucket)).Put([]byte(p.ID), data)
	})
}

func (s *PumpBolt) Remove(_ context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(pumpsBucket))
		if b.Get([]byte(id)) == nil {
			return ErrPumpNotFound
		}
		return b.Delete([]byte(id))
	})
}

func (s *PumpBolt) Values(_ context.Context) ([]models.FuelPump, error) {
	items := []models.FuelPump{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(pumpsBucket)).ForEach(func(k, v []byte) error {
			var p models.FuelPump
			if err := json.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("decode pump %q: %w", k, err)
			}
			items = append(items, normalizeDecoded(p))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// normalizeDecoded keeps UTC timestamps and a non-nil transaction log.
func normalizeDecoded(p models.FuelPump) models.FuelPump {
	p = p.Clone()
	p.CreatedAt = p.CreatedAt.UTC()
	if p.UpdatedAt != nil {
		ts := p.UpdatedAt.UTC()
		p.UpdatedAt = &ts
	}
	for i := range p.Transactions {
		p.Transactions[i].Timestamp = p.Transactions[i].Timestamp.UTC()
	}
	return p
}
