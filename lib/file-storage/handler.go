package filestorage

import (
	"context"
	"fmt"
	candidatestore "hr-onboarding-backend/lib/candidate/store"
	pipelinehandler "hr-onboarding-backend/lib/pipeline"
	"hr-onboarding-backend/models"
	candidateapimodels "hr-onboarding-backend/models/api/candidate"
	dbmodels "hr-onboarding-backend/models/db"
	s3client "hr-onboarding-backend/s3"
	"net/http"
	"path"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// максимальный размер файла резюме
const MaxResumeSize = 10 << 20

type Provider interface {
	UploadResume(ctx context.Context, candidateID string, file []byte, fileName string, author candidateapimodels.Author) (key string, err error)
	GetResume(ctx context.Context, candidateID string) (file []byte, fileName string, err error)
}

var Instance Provider

func NewHandler(client s3client.Provider, store candidatestore.Provider, pipeline pipelinehandler.Provider) {
	Instance = NewInstance(client, store, pipeline)
}

func NewInstance(client s3client.Provider, store candidatestore.Provider, pipeline pipelinehandler.Provider) Provider {
	return impl{
		client:   client,
		store:    store,
		pipeline: pipeline,
	}
}

type impl struct {
	client   s3client.Provider
	store    candidatestore.Provider
	pipeline pipelinehandler.Provider
}

func (i impl) UploadResume(ctx context.Context, candidateID string, file []byte, fileName string, author candidateapimodels.Author) (string, error) {
	logger := log.
		WithField("candidate_id", candidateID).
		WithField("file_name", fileName)
	if len(file) == 0 {
		return "", models.NewValidationError("file", "файл пустой")
	}
	if len(file) > MaxResumeSize {
		return "", models.NewValidationError("file", "размер файла превышает 10 МБ")
	}
	fileName = path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), "\\", "/"))
	if fileName == "" || fileName == "." || fileName == "/" {
		return "", models.NewValidationError("file", "не указано имя файла")
	}
	rec, err := i.store.GetByID(candidateID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения кандидата")
		return "", errors.New("ошибка получения кандидата")
	}
	if rec == nil {
		return "", models.ErrCandidateNotFound
	}

	key := GetResumeKey(candidateID, fileName)
	err = i.client.PutObject(ctx, key, file, http.DetectContentType(file))
	if err != nil {
		logger.WithError(err).Error("ошибка загрузки резюме в хранилище")
		return "", errors.New("ошибка загрузки резюме в хранилище")
	}
	_, err = i.pipeline.Update(ctx, pipelinehandler.UpdateCommand{
		CandidateID: candidateID,
		Mutate: func(rec *dbmodels.Candidate) (dbmodels.CandidateHistory, error) {
			oldKey := rec.ResumeKey
			rec.ResumeKey = key
			history := dbmodels.CandidateHistory{
				UserName:   author.GetName(),
				ActionType: dbmodels.HistoryTypeResumeUpload,
				Changes: dbmodels.EntityChanges{
					Description: fmt.Sprintf("Загружено резюме %v", fileName),
				}.WithChange("resume", oldKey, key),
			}
			if author.UserID != "" {
				userID := author.UserID
				history.UserID = &userID
			}
			return history, nil
		},
	})
	if err != nil {
		return "", err
	}
	logger.Info("резюме загружено")
	return key, nil
}

func (i impl) GetResume(ctx context.Context, candidateID string) ([]byte, string, error) {
	logger := log.WithField("candidate_id", candidateID)
	rec, err := i.store.GetByID(candidateID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения кандидата")
		return nil, "", errors.New("ошибка получения кандидата")
	}
	if rec == nil {
		return nil, "", models.ErrCandidateNotFound
	}
	if rec.ResumeKey == "" {
		return nil, "", models.ErrFileNotFound
	}
	body, err := i.client.GetObject(ctx, rec.ResumeKey)
	if err != nil {
		if errors.Is(err, models.ErrFileNotFound) {
			return nil, "", err
		}
		logger.WithError(err).Error("ошибка получения резюме из хранилища")
		return nil, "", errors.New("ошибка получения резюме из хранилища")
	}
	return body, path.Base(rec.ResumeKey), nil
}

func GetResumeKey(candidateID, fileName string) string {
	return fmt.Sprintf("resumes/%s/%s", candidateID, fileName)
}
