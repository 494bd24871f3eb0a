package candidatestore

import (
	"hr-onboarding-backend/models"
	candidateapimodels "hr-onboarding-backend/models/api/candidate"
	dbmodels "hr-onboarding-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Candidate, history dbmodels.CandidateHistory) (id string, err error)
	GetByID(id string) (rec *dbmodels.Candidate, err error)
	List(filter dbmodels.CandidateFilter) (list []dbmodels.Candidate, err error)
	ListCount(filter dbmodels.CandidateFilter) (count int64, err error)
	ListSkills(stages []models.CandidateStage) (list []dbmodels.Candidate, err error)
	// Commit обновляет кандидата при совпадении версии и добавляет запись в журнал одной транзакцией
	Commit(commit dbmodels.CandidateCommit) error
	LastHistory(candidateID string) (rec *dbmodels.CandidateHistory, err error)
	HistoryCount(candidateID string, filter candidateapimodels.CandidateHistoryFilter) (count int64, err error)
	HistoryList(candidateID string, filter candidateapimodels.CandidateHistoryFilter) (list []dbmodels.CandidateHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate, history dbmodels.CandidateHistory) (id string, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		history.CandidateID = rec.ID
		return tx.Create(&history).Error
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
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

func (i impl) List(filter dbmodels.CandidateFilter) (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	tx := i.db.Model(dbmodels.Candidate{})
	i.addFilter(tx, filter)
	i.setPage(tx, filter.Page, filter.Limit)
	err = tx.Order("created_at desc").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter dbmodels.CandidateFilter) (count int64, err error) {
	tx := i.db.Model(dbmodels.Candidate{})
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	return count, err
}

func (i impl) ListSkills(stages []models.CandidateStage) (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	tx := i.db.
		Model(dbmodels.Candidate{}).
		Select("id", "skills", "created_at")
	if len(stages) != 0 {
		tx = tx.Where("stage in (?)", stages)
	}
	err = tx.Order("created_at, id").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Commit(commit dbmodels.CandidateCommit) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		rec := commit.Record
		rec.Version = commit.ExpectedVersion + 1
		res := tx.
			Model(&dbmodels.Candidate{}).
			Where("id = ? AND version = ?", rec.ID, commit.ExpectedVersion).
			Select("*").
			Omit("id", "created_at").
			Updates(&rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrVersionConflict
		}
		history := commit.History
		history.CandidateID = rec.ID
		return tx.Create(&history).Error
	})
}

func (i impl) LastHistory(candidateID string) (*dbmodels.CandidateHistory, error) {
	rec := dbmodels.CandidateHistory{}
	err := i.db.
		Model(&dbmodels.CandidateHistory{}).
		Where("candidate_id = ?", candidateID).
		Order("created_at desc").
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

func (i impl) HistoryCount(candidateID string, filter candidateapimodels.CandidateHistoryFilter) (count int64, err error) {
	tx := i.db.
		Model(dbmodels.CandidateHistory{}).
		Where("candidate_id = ?", candidateID)
	if len(filter.ActionTypes) != 0 {
		tx = tx.Where("action_type in (?)", filter.ActionTypes)
	}
	err = tx.Count(&count).Error
	return count, err
}

func (i impl) HistoryList(candidateID string, filter candidateapimodels.CandidateHistoryFilter) (list []dbmodels.CandidateHistory, err error) {
	list = []dbmodels.CandidateHistory{}
	tx := i.db.
		Model(dbmodels.CandidateHistory{}).
		Where("candidate_id = ?", candidateID)
	if len(filter.ActionTypes) != 0 {
		tx = tx.Where("action_type in (?)", filter.ActionTypes)
	}
	page, limit := filter.GetPage()
	i.setPage(tx, page, limit)
	err = tx.Order("created_at").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter dbmodels.CandidateFilter) {
	if len(filter.Stages) != 0 {
		tx.Where("stage in (?)", filter.Stages)
	}
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("(LOWER(CONCAT(last_name,' ', first_name)) like ? or phone like ? or LOWER(email) like ?)", searchValue, searchValue, searchValue)
	}
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	if limit <= 0 {
		return
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}
