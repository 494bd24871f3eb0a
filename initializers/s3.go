package initializers

import (
	"context"
	"hr-onboarding-backend/config"
	s3client "hr-onboarding-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) s3client.Provider {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("S3 не настроен, резюме хранятся в памяти процесса")
		return s3client.NewMemClient()
	}
	client, err := s3client.NewClient(s3client.Config{
		Endpoint:        config.Conf.S3.Endpoint,
		AccessKeyID:     config.Conf.S3.AccessKeyID,
		SecretAccessKey: config.Conf.S3.SecretAccessKey,
		UseSSL:          *config.Conf.S3.UseSSL,
		BucketName:      config.Conf.S3.BucketName,
	})
	if err != nil {
		panic("Ошибка инициализации клиента S3: " + err.Error())
	}
	// Проверка соединения
	if err = client.MakeBucket(ctx); err != nil {
		log.WithError(err).Error("S3 соединение не удалось, бакет недоступен")
	}
	log.Info("S3 клиент успешно инициализирован")
	return client
}
