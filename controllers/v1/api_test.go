package apiv1

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	activationhandler "hr-onboarding-backend/lib/activation"
	candidatehandler "hr-onboarding-backend/lib/candidate"
	candidatehistoryhandler "hr-onboarding-backend/lib/candidate-history"
	candidatestore "hr-onboarding-backend/lib/candidate/store"
	pdfexport "hr-onboarding-backend/lib/export/pdf"
	xlsexport "hr-onboarding-backend/lib/export/xls"
	identityhandler "hr-onboarding-backend/lib/identity"
	identitystore "hr-onboarding-backend/lib/identity/store"
	interviewhandler "hr-onboarding-backend/lib/interview"
	pipelinehandler "hr-onboarding-backend/lib/pipeline"
	skillsgap "hr-onboarding-backend/lib/skills-gap"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	RowCount int64           `json:"row_count"`
}

func newTestApp() *fiber.App {
	store := candidatestore.NewMemInstance()
	pipelinehandler.NewHandler(store, nil, time.Second)
	candidatehandler.NewHandler(store, pipelinehandler.Instance, nil)
	candidatehistoryhandler.NewHandler(store)
	interviewhandler.NewHandler(pipelinehandler.Instance)
	identityhandler.NewHandler(identitystore.NewMemInstance())
	activationhandler.NewHandler(pipelinehandler.Instance, identityhandler.Instance, nil, activationhandler.Settings{})
	skillsgap.NewHandler(store)
	xlsexport.NewHandler()
	pdfexport.NewHandler(pdfexport.Fonts{Dir: "testdata/", Regular: "missing.ttf", Bold: "missing.ttf"})

	app := fiber.New()
	InitCandidateApiRouters(app)
	InitOnboardingApiRouters(app)
	InitSkillsGapApiRouters(app)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, apiResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	result := apiResponse{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func TestOnboardingApi(t *testing.T) {
	app := newTestApp()

	status, resp := call(t, app, "POST", "/candidate",
		`{"first_name":"Анна","last_name":"Петрова","email":"anna@example.com","phone":"8 (912) 345-67-89","skills":["Go","go","SQL"]}`)
	require.Equal(t, fiber.StatusOK, status, resp.Message)
	created := struct {
		ID     string   `json:"id"`
		Stage  string   `json:"stage"`
		Phone  string   `json:"phone"`
		Skills []string `json:"skills"`
	}{}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	require.Equal(t, "pending", created.Stage)
	require.Equal(t, "+79123456789", created.Phone)
	require.Equal(t, []string{"Go", "SQL"}, created.Skills)
	base := "/candidate/" + created.ID

	t.Run(`pending candidate cannot be accepted directly`, func(t *testing.T) {
		status, resp := call(t, app, "PUT", base+"/change_stage", `{"stage":"accepted","note":"сразу"}`)
		require.Equal(t, fiber.StatusConflict, status)
		require.Equal(t, "fail", resp.Status)
	})

	t.Run(`activation before acceptance is rejected`, func(t *testing.T) {
		status, _ := call(t, app, "PUT", base+"/activate", `{"role":"Engineer","generate_password":true}`)
		require.Equal(t, fiber.StatusConflict, status)
	})

	t.Run(`invalid schedule is a bad request`, func(t *testing.T) {
		status, resp := call(t, app, "PUT", base+"/interview", `{"date":"2026-10-20","time":"25:00","meeting_link":"https://zoom.us/j/1","platform":"zoom","interviewer_name":"Иван"}`)
		require.Equal(t, fiber.StatusBadRequest, status)
		require.Contains(t, resp.Message, "time")
	})

	t.Run(`interview, feedback and activation`, func(t *testing.T) {
		status, resp := call(t, app, "PUT", base+"/interview", `{"date":"2026-10-20","time":"14:00","meeting_link":"https://zoom.us/j/1","platform":"zoom","interviewer_name":"Иван"}`)
		require.Equal(t, fiber.StatusOK, status, resp.Message)

		status, resp = call(t, app, "PUT", base+"/feedback", `{"overall_rating":5,"technical_rating":4,"recommendation":"accept"}`)
		require.Equal(t, fiber.StatusOK, status, resp.Message)

		status, resp = call(t, app, "PUT", base+"/activate", `{"role":"Engineer","generate_password":true}`)
		require.Equal(t, fiber.StatusOK, status, resp.Message)
		require.Equal(t, "success", resp.Status)
		result := struct {
			AccountID    string `json:"account_id"`
			TempPassword string `json:"temp_password"`
		}{}
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		require.NotEmpty(t, result.AccountID)
		require.Len(t, result.TempPassword, 16)

		status, _ = call(t, app, "PUT", base+"/activate", `{"role":"Engineer","generate_password":true}`)
		require.Equal(t, fiber.StatusConflict, status)
	})

	t.Run(`history lists every action`, func(t *testing.T) {
		status, resp := call(t, app, "PUT", base+"/changes", `{}`)
		require.Equal(t, fiber.StatusOK, status)
		require.Equal(t, int64(4), resp.RowCount)
	})

	t.Run(`skills gap counts accepted candidates`, func(t *testing.T) {
		status, resp := call(t, app, "GET", "/skills_gap", "")
		require.Equal(t, fiber.StatusOK, status)
		report := struct {
			HasData       bool `json:"has_data"`
			EmployeeCount int  `json:"employee_count"`
		}{}
		require.NoError(t, json.Unmarshal(resp.Data, &report))
		require.True(t, report.HasData)
		require.Equal(t, 1, report.EmployeeCount)
	})

	t.Run(`candidate card without fonts`, func(t *testing.T) {
		status, resp := call(t, app, "GET", base+"/card", "")
		require.Equal(t, fiber.StatusInternalServerError, status)
		require.Equal(t, "fail", resp.Status)
	})

	t.Run(`unknown candidate`, func(t *testing.T) {
		status, _ := call(t, app, "GET", "/candidate/unknown", "")
		require.Equal(t, fiber.StatusNotFound, status)

		status, _ = call(t, app, "GET", "/candidate/unknown/card", "")
		require.Equal(t, fiber.StatusNotFound, status)
	})
}
