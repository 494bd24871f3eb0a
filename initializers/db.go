package initializers

import (
	"hr-onboarding-backend/config"
	"hr-onboarding-backend/db"
	candidatestore "hr-onboarding-backend/lib/candidate/store"
	identitystore "hr-onboarding-backend/lib/identity/store"

	log "github.com/sirupsen/logrus"
)

// Stores хранилища сервиса: postgres или память процесса
type Stores struct {
	candidate candidatestore.Provider
	identity  identitystore.Provider
}

func InitDBConnection() Stores {
	if *config.Conf.Database.InMemory {
		log.Warn("БД не используется, данные хранятся в памяти процесса")
		return Stores{
			candidate: candidatestore.NewMemInstance(),
			identity:  identitystore.NewMemInstance(),
		}
	}
	err := db.Connect(config.Conf.Database.Host, config.Conf.Database.Port, config.Conf.Database.Name,
		config.Conf.Database.User, config.Conf.Database.Password, *config.Conf.Database.DebugMode, *config.Conf.Database.MigrateOnStart)
	if err != nil {
		panic(err.Error())
	}
	return Stores{
		candidate: candidatestore.NewInstance(db.DB),
		identity:  identitystore.NewInstance(db.DB),
	}
}
