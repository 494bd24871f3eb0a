package initializers

import (
	"context"
	"hr-onboarding-backend/config"
	"hr-onboarding-backend/fiberlog"
	activationhandler "hr-onboarding-backend/lib/activation"
	candidatehandler "hr-onboarding-backend/lib/candidate"
	candidatehistoryhandler "hr-onboarding-backend/lib/candidate-history"
	pdfexport "hr-onboarding-backend/lib/export/pdf"
	xlsexport "hr-onboarding-backend/lib/export/xls"
	filestorage "hr-onboarding-backend/lib/file-storage"
	identityhandler "hr-onboarding-backend/lib/identity"
	interviewhandler "hr-onboarding-backend/lib/interview"
	messagetemplate "hr-onboarding-backend/lib/message-template"
	pipelinehandler "hr-onboarding-backend/lib/pipeline"
	profileextract "hr-onboarding-backend/lib/profile-extract"
	yagptclient "hr-onboarding-backend/lib/profile-extract/yagpt-client"
	skillsgap "hr-onboarding-backend/lib/skills-gap"
	"hr-onboarding-backend/lib/smtp"
	initchecker "hr-onboarding-backend/lib/utils/init-checker"
	"hr-onboarding-backend/lib/utils/lock"
	connectionhub "hr-onboarding-backend/lib/ws/hub/connection-hub"
	"time"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	st := InitDBConnection()
	s3 := InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	lock.InitResourceLock(ctx)

	conf := config.Conf.Onboarding
	pipelinehandler.NewHandler(st.candidate, connectionhub.Instance, time.Duration(conf.LockWaitSec)*time.Second)
	candidatehandler.NewHandler(st.candidate, pipelinehandler.Instance, connectionhub.Instance)
	candidatehistoryhandler.NewHandler(st.candidate)
	interviewhandler.NewHandler(pipelinehandler.Instance)
	identityhandler.NewHandler(st.identity)
	messagetemplate.NewHandler(smtp.Instance, conf.WelcomeFrom)
	activationhandler.NewHandler(pipelinehandler.Instance, identityhandler.Instance, messagetemplate.Instance, activationhandler.Settings{
		LoginURL:    conf.LoginURL,
		CompanyName: conf.CompanyName,
	})
	skillsgap.NewHandler(st.candidate)
	xlsexport.NewHandler()
	pdfexport.NewHandler(pdfexport.Fonts{
		Dir:     config.Conf.Export.FontDir,
		Regular: config.Conf.Export.FontRegular,
		Bold:    config.Conf.Export.FontBold,
	})
	filestorage.NewHandler(s3, st.candidate, pipelinehandler.Instance)

	var gptClient yagptclient.Provider
	if config.Conf.YandexGPT.IAMToken != "" {
		gptClient = yagptclient.NewClient(config.Conf.YandexGPT.IAMToken, config.Conf.YandexGPT.CatalogID)
	} else {
		log.Warn("не задан токен YandexGPT, разбор резюме недоступен")
	}
	profileextract.NewHandler(gptClient, time.Duration(conf.ExtractorTTL)*time.Second)

	initchecker.CheckInit(map[string]any{
		"pipelinehandler":         pipelinehandler.Instance,
		"candidatehandler":        candidatehandler.Instance,
		"candidatehistoryhandler": candidatehistoryhandler.Instance,
		"interviewhandler":        interviewhandler.Instance,
		"activationhandler":       activationhandler.Instance,
		"skillsgap":               skillsgap.Instance,
		"xlsexport":               xlsexport.Instance,
		"pdfexport":               pdfexport.Instance,
		"filestorage":             filestorage.Instance,
		"profileextract":          profileextract.Instance,
		"connectionhub":           connectionhub.Instance,
	})
}
