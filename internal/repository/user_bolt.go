package repository

import (
	"encoding/json"
	"fmt"

	bolt "github.com/boltdb/bolt"

	"fuel_pump_registry/internal/models"
)

// boltUser is the stored shape; models.User hides the hash from JSON.
type boltUser struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// UserBolt stores users keyed by username in the users bucket.
type UserBolt struct {
	db *bolt.DB
}

func NewUserBolt(db *bolt.DB) *UserBolt {
	return &UserBolt{db: db}
}

var _ Authorization = (*UserBolt)(nil)

func (r *UserBolt) Create(username, passwordHash string) (int, error) {
	var id int
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(usersBucket))
		if b.Get([]byte(username)) != nil {
			return ErrUsernameTaken
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		id = int(seq)
		data, err := json.Marshal(boltUser{ID: id, Username: username, PasswordHash: passwordHash})
		if err != nil {
			return err
		}
		return b.Put([]byte(username), data)
	})
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	return id, nil
}

// GetByUsername returns (nil, nil) when the user does not exist.
func (r *UserBolt) GetByUsername(username string) (*models.User, error) {
	var (
		u     boltUser
		found bool
	)
	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(usersBucket)).Get([]byte(username))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &u)
	})
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	if !found {
		return nil, nil
	}
	return &models.User{ID: u.ID, Username: u.Username, PasswordHash: u.PasswordHash}, nil
}
