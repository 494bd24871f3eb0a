package profileextract

import (
	"context"
	yagptclient "hr-onboarding-backend/lib/profile-extract/yagpt-client"
	"hr-onboarding-backend/lib/utils/lock"
	profileapimodels "hr-onboarding-backend/models/api/profile"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ограничение текста, передаваемого модели
const maxPromptText = 12000

const resourceName = "profile-extract"

type Provider interface {
	// Extract разбирает резюме или профиль, все поля результата необязательны
	Extract(ctx context.Context, source profileapimodels.Source) (profileapimodels.ExtractedProfile, error)
}

var Instance Provider

func NewHandler(client yagptclient.Provider, timeout time.Duration) {
	Instance = NewInstance(client, ConvertDocument, FetchPage, timeout)
}

func NewInstance(client yagptclient.Provider, converter DocumentConverter, fetcher PageFetcher, timeout time.Duration) Provider {
	return impl{
		client:    client,
		converter: converter,
		fetcher:   fetcher,
		timeout:   timeout,
	}
}

type impl struct {
	client    yagptclient.Provider
	converter DocumentConverter
	fetcher   PageFetcher
	timeout   time.Duration
}

func (i impl) Extract(ctx context.Context, source profileapimodels.Source) (result profileapimodels.ExtractedProfile, err error) {
	logger := log.
		WithField("url", source.URL).
		WithField("file_name", source.FileName)
	if err = source.Validate(); err != nil {
		return result, err
	}
	if i.client == nil {
		return result, errors.New("сервис разбора резюме не настроен")
	}
	text, err := i.getText(ctx, source)
	if err != nil {
		logger.WithError(err).Warn("не удалось получить текст резюме")
		return result, err
	}
	if strings.TrimSpace(text) == "" {
		logger.Info("резюме не содержит текста")
		return result, nil
	}

	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}
	if !lock.Resource.Acquire(ctx, resourceName) {
		return result, errors.New("превышено время ожидания сервиса разбора резюме")
	}
	answer, err := i.client.GenerateByPromtAndText(ctx, extractPromt, truncate(text, maxPromptText))
	lock.Resource.Release(resourceName)
	if err != nil {
		logger.WithError(err).Error("ошибка разбора резюме через YandexGPT")
		return result, errors.New("ошибка разбора резюме")
	}
	result, ok := parseExtraction(answer)
	if !ok {
		logger.Warn("ответ YandexGPT не содержит данных кандидата")
	}
	return result, nil
}

func (i impl) getText(ctx context.Context, source profileapimodels.Source) (string, error) {
	if len(source.Body) != 0 {
		return i.converter(source.Body, source.FileName)
	}
	return i.fetcher(ctx, strings.TrimSpace(source.URL))
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	n := limit
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return strings.ToValidUTF8(text[:n], "")
}
