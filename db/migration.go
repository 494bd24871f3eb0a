package db

import (
	dbmodels "hr-onboarding-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Candidate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Candidate")
	}
	if err := DB.AutoMigrate(&dbmodels.CandidateHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры CandidateHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.AccountUser{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AccountUser")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
