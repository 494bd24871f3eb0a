package identitystore

import (
	dbmodels "hr-onboarding-backend/models/db"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func NewMemInstance() Provider {
	return &memImpl{
		records: map[string]dbmodels.AccountUser{},
	}
}

type memImpl struct {
	mu      sync.RWMutex
	records map[string]dbmodels.AccountUser
}

func (i *memImpl) Create(rec dbmodels.AccountUser) (id string, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, exist := range i.records {
		if exist.CandidateID == rec.CandidateID || strings.EqualFold(exist.Email, rec.Email) {
			return "", errors.New("duplicate key value violates unique constraint")
		}
	}
	now := time.Now()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	i.records[rec.ID] = rec
	return rec.ID, nil
}

func (i *memImpl) GetByCandidateID(candidateID string) (*dbmodels.AccountUser, error) {
	return i.find(func(rec dbmodels.AccountUser) bool {
		return rec.CandidateID == candidateID
	}), nil
}

func (i *memImpl) GetByEmail(email string) (*dbmodels.AccountUser, error) {
	return i.find(func(rec dbmodels.AccountUser) bool {
		return strings.EqualFold(rec.Email, email)
	}), nil
}

func (i *memImpl) UpdatePassword(id string, hash string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	rec, ok := i.records[id]
	if !ok {
		return errors.New("record not found")
	}
	rec.Password = hash
	rec.MustChangePassword = true
	rec.UpdatedAt = time.Now()
	i.records[rec.ID] = rec
	return nil
}

func (i *memImpl) find(match func(rec dbmodels.AccountUser) bool) *dbmodels.AccountUser {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, rec := range i.records {
		if match(rec) {
			return &rec
		}
	}
	return nil
}
