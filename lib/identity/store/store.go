package identitystore

import (
	dbmodels "hr-onboarding-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.AccountUser) (id string, err error)
	GetByCandidateID(candidateID string) (rec *dbmodels.AccountUser, err error)
	GetByEmail(email string) (rec *dbmodels.AccountUser, err error)
	// UpdatePassword заменяет хеш пароля и требует его смены при входе
	UpdatePassword(id string, hash string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AccountUser) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByCandidateID(candidateID string) (*dbmodels.AccountUser, error) {
	return i.getBy("candidate_id = ?", candidateID)
}

func (i impl) GetByEmail(email string) (*dbmodels.AccountUser, error) {
	return i.getBy("LOWER(email) = LOWER(?)", email)
}

func (i impl) UpdatePassword(id string, hash string) error {
	res := i.db.
		Model(&dbmodels.AccountUser{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password":             hash,
			"must_change_password": true,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (i impl) getBy(query string, value string) (*dbmodels.AccountUser, error) {
	rec := dbmodels.AccountUser{}
	err := i.db.
		Model(&dbmodels.AccountUser{}).
		Where(query, value).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
