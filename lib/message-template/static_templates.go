package messagetemplate

import (
	"bytes"
	"embed"
	activationapimodels "hr-onboarding-backend/models/api/activation"
	"text/template"

	"github.com/pkg/errors"
)

const welcomeTitle = "Доступ к учетной записи"

//go:embed static
var staticFiles embed.FS

func BuildWelcomeMsg(data activationapimodels.WelcomePayload) (string, error) {
	tpl, err := getTemplate("static/welcome.txt")
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	err = tpl.Execute(buf, data)
	if err != nil {
		return "", errors.Wrap(err, "ошибка заполнения шаблона")
	}
	return buf.String(), nil
}

func GetWelcomeTitle(companyName string) string {
	if companyName == "" {
		return welcomeTitle
	}
	return companyName + " - " + welcomeTitle
}

func getTemplate(filePath string) (*template.Template, error) {
	body, err := staticFiles.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка чтения файла шаблона %v", filePath)
	}
	return template.New("msg_body").Parse(string(body))
}
