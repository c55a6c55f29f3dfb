//go:generate go run go.uber.org/mock/mockgen -source=profile.go -destination=../mocks/mock_profile_repository.go -package=mocks
package repositories

import (
	"billiard-live/domain"
	"billiard-live/errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

type IProfileRepository interface {
	CreateProfile(p domain.Profile) (domain.Profile, error)
	GetProfile(id domain.ProfileID) (domain.Profile, error)
	GetProfiles(ids ...domain.ProfileID) (map[domain.ProfileID]domain.Profile, error)
}

type ProfileRepository struct {
	db  *badger.DB
	ids *IDGenerator
}

func NewProfileRepository(db *badger.DB, ids *IDGenerator) *ProfileRepository {
	return &ProfileRepository{db: db, ids: ids}
}

type DiskProfile struct {
	ID        int64  `msgpack:"id"`
	FirstName string `msgpack:"first_name,omitempty"`
	LastName  string `msgpack:"last_name,omitempty"`
	Username  string `msgpack:"username,omitempty"`
	IsBiro    bool   `msgpack:"is_biro"`
}

func (r *ProfileRepository) CreateProfile(p domain.Profile) (domain.Profile, error) {
	id, err := r.ids.Next()
	if err != nil {
		return domain.Profile{}, err
	}
	p.ID = domain.ProfileID(id)
	err = r.db.Update(func(txn *badger.Txn) error {
		return setRecord(txn, profileKey(id), DiskProfile{
			ID:        id,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Username:  p.Username,
			IsBiro:    p.IsBiro,
		})
	})
	if err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

func (r *ProfileRepository) GetProfile(id domain.ProfileID) (domain.Profile, error) {
	var p domain.Profile
	err := r.db.View(func(txn *badger.Txn) error {
		disk, err := getRecord[DiskProfile](txn, profileKey(int64(id)), fmt.Errorf("%w: %d", errors.ErrProfileNotFound, id))
		if err != nil {
			return err
		}
		p = toProfile(disk)
		return nil
	})
	return p, err
}

// GetProfiles skips unknown ids, callers render them as bare references.
func (r *ProfileRepository) GetProfiles(ids ...domain.ProfileID) (map[domain.ProfileID]domain.Profile, error) {
	profiles := make(map[domain.ProfileID]domain.Profile, len(ids))
	err := r.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			disk, err := getRecord[DiskProfile](txn, profileKey(int64(id)), errors.ErrProfileNotFound)
			if errors.Is(err, errors.ErrProfileNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			profiles[id] = toProfile(disk)
		}
		return nil
	})
	return profiles, err
}

func toProfile(d DiskProfile) domain.Profile {
	return domain.Profile{
		ID:        domain.ProfileID(d.ID),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Username:  d.Username,
		IsBiro:    d.IsBiro,
	}
}
