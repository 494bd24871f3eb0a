package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Auth struct {
		JWTSecret string `default:"secret" env:"JWT_SECRET"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"hr-onboarding" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
		InMemory       *bool  `default:"false" env:"DB_IN_MEMORY"` // локальный запуск без postgres
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"hr-onboarding" env:"S3_BUCKET_NAME"`
	}
	YandexGPT struct {
		IAMToken  string `default:"" env:"YANDEX_GPT_IAM_TOKEN"`
		CatalogID string `default:"" env:"YANDEX_GPT_CATALOG_ID"`
	}
	Export struct {
		FontDir     string `default:"static/font/" env:"EXPORT_FONT_DIR"`
		FontRegular string `default:"Arial.ttf" env:"EXPORT_FONT_REGULAR"`
		FontBold    string `default:"Arial Bold.ttf" env:"EXPORT_FONT_BOLD"`
	}
	Onboarding struct {
		LockWaitSec  int    `default:"5" env:"ONBOARDING_LOCK_WAIT_SEC"`
		LoginURL     string `default:"http://localhost:8000/login" env:"ONBOARDING_LOGIN_URL"`
		WelcomeFrom  string `default:"hr@localhost" env:"ONBOARDING_WELCOME_FROM"`
		CompanyName  string `default:"HR Tools" env:"ONBOARDING_COMPANY_NAME"`
		ExtractorTTL int    `default:"60" env:"ONBOARDING_EXTRACTOR_TIMEOUT_SEC"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
