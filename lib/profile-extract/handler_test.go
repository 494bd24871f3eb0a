package profileextract

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"hr-onboarding-backend/models"
	profileapimodels "hr-onboarding-backend/models/api/profile"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeGPT struct {
	answer  string
	err     error
	text    string
	active  int32
	maxSeen int32
}

func (f *fakeGPT) GenerateByPromtAndText(ctx context.Context, promt, text string) (string, error) {
	active := atomic.AddInt32(&f.active, 1)
	defer atomic.AddInt32(&f.active, -1)
	for {
		seen := atomic.LoadInt32(&f.maxSeen)
		if active <= seen || atomic.CompareAndSwapInt32(&f.maxSeen, seen, active) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	f.text = text
	return f.answer, f.err
}

func textConverter(body []byte, fileName string) (string, error) {
	return string(body), nil
}

func pageFetcher(page string) PageFetcher {
	return func(ctx context.Context, url string) (string, error) {
		return page, nil
	}
}

func TestExtract(t *testing.T) {
	ctx := context.Background()

	t.Run(`fields are parsed from answer`, func(t *testing.T) {
		gpt := &fakeGPT{answer: "```json\n{\"name\": \"Иван Петров\", \"email\": \"ivan@example.com\", \"experience_years\": 4.5, \"skills\": [\"Go\", \"SQL\"]}\n```"}
		handler := NewInstance(gpt, textConverter, nil, time.Second)

		result, err := handler.Extract(ctx, profileapimodels.Source{FileName: "cv.txt", Body: []byte("Иван Петров, Go разработчик")})
		require.NoError(t, err)
		require.Equal(t, "Иван Петров", *result.Name)
		require.Equal(t, "ivan@example.com", *result.Email)
		require.Equal(t, 4.5, *result.ExperienceYears)
		require.Equal(t, []string{"Go", "SQL"}, result.Skills)
		require.Nil(t, result.Phone)
		require.Equal(t, "Иван Петров, Go разработчик", gpt.text)
	})

	t.Run(`page text is used for url`, func(t *testing.T) {
		gpt := &fakeGPT{answer: `{"title": "Аналитик"}`}
		handler := NewInstance(gpt, nil, pageFetcher("Профиль: аналитик данных"), time.Second)
		result, err := handler.Extract(ctx, profileapimodels.Source{URL: "https://example.com/profile"})
		require.NoError(t, err)
		require.Equal(t, "Аналитик", *result.Title)
		require.Equal(t, "Профиль: аналитик данных", gpt.text)
	})

	t.Run(`empty or broken answer is empty profile`, func(t *testing.T) {
		for _, answer := range []string{"", "{}", "не удалось определить", "{\"name\": ", `{"name": "  ", "phone": ""}`} {
			handler := NewInstance(&fakeGPT{answer: answer}, textConverter, nil, time.Second)
			result, err := handler.Extract(ctx, profileapimodels.Source{FileName: "cv.txt", Body: []byte("text")})
			require.NoError(t, err, answer)
			require.True(t, result.IsEmpty(), answer)
		}
	})

	t.Run(`empty document skips model`, func(t *testing.T) {
		gpt := &fakeGPT{answer: `{"name": "Иван"}`}
		handler := NewInstance(gpt, textConverter, nil, time.Second)
		result, err := handler.Extract(ctx, profileapimodels.Source{FileName: "cv.txt", Body: []byte("   ")})
		require.NoError(t, err)
		require.True(t, result.IsEmpty())
		require.Equal(t, "", gpt.text)
	})

	t.Run(`no source`, func(t *testing.T) {
		handler := NewInstance(&fakeGPT{}, textConverter, nil, time.Second)
		_, err := handler.Extract(ctx, profileapimodels.Source{})
		require.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run(`model error`, func(t *testing.T) {
		handler := NewInstance(&fakeGPT{err: errors.New("401")}, textConverter, nil, time.Second)
		_, err := handler.Extract(ctx, profileapimodels.Source{FileName: "cv.txt", Body: []byte("text")})
		require.Error(t, err)
	})

	t.Run(`not configured`, func(t *testing.T) {
		handler := NewInstance(nil, textConverter, nil, time.Second)
		_, err := handler.Extract(ctx, profileapimodels.Source{FileName: "cv.txt", Body: []byte("text")})
		require.Error(t, err)
	})

	t.Run(`model calls are serialized`, func(t *testing.T) {
		gpt := &fakeGPT{answer: `{"name": "Иван"}`}
		handler := NewInstance(gpt, textConverter, nil, 5*time.Second)
		wg := sync.WaitGroup{}
		for k := 0; k < 5; k++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = handler.Extract(ctx, profileapimodels.Source{FileName: "cv.txt", Body: []byte("text")})
			}()
		}
		wg.Wait()
		require.Equal(t, int32(1), atomic.LoadInt32(&gpt.maxSeen))
	})
}

func TestTruncate(t *testing.T) {
	text := strings.Repeat("я", 10)
	result := truncate(text, 5)
	require.Equal(t, "яя", result)
	require.Equal(t, "abc", truncate("abc", 10))

	t.Run(`invalid bytes before cut`, func(t *testing.T) {
		// "Привет" в windows-1251
		text := string([]byte{0xcf, 0xf0, 0xe8, 0xe2, 0xe5, 0xf2}) + " " + strings.Repeat("a", 18000)
		result := truncate(text, maxPromptText)
		require.True(t, utf8.ValidString(result))
		require.Equal(t, " "+strings.Repeat("a", maxPromptText-7), result)
	})
}

func TestConvertDocument(t *testing.T) {
	text, err := ConvertDocument([]byte("Иван Петров\nGo"), "cv.txt")
	require.NoError(t, err)
	require.Equal(t, "Иван Петров\nGo", text)

	t.Run(`windows-1251 text`, func(t *testing.T) {
		body := append([]byte{0xcf, 0xf0, 0xe8, 0xe2, 0xe5, 0xf2}, []byte(" Go")...)
		text, err := ConvertDocument(body, "cv.txt")
		require.NoError(t, err)
		require.Equal(t, "Привет Go", text)
	})
}

func TestFetchPage(t *testing.T) {
	ctx := context.Background()

	t.Run(`only public http links`, func(t *testing.T) {
		for _, link := range []string{
			"file:///etc/passwd",
			"gopher://example.com/",
			"http://localhost:8080/admin",
			"http://127.0.0.1/",
			"http://10.0.0.5/resume",
			"http://192.168.1.1/",
			"http://169.254.169.254/latest/meta-data/",
			"http://[::1]:9000/",
			"http://100.64.0.1/",
			"http:///resume",
		} {
			_, err := FetchPage(ctx, link)
			require.ErrorIs(t, err, models.ErrValidation, link)
		}

		pageURL, err := checkPageURL("https://hh.ru/resume/123")
		require.NoError(t, err)
		require.Equal(t, "hh.ru", pageURL.Hostname())
	})

	t.Run(`resolved address is checked on dial`, func(t *testing.T) {
		require.ErrorIs(t, checkDialAddress("tcp", "127.0.0.1:80", nil), models.ErrValidation)
		require.ErrorIs(t, checkDialAddress("tcp", "[fd00::1]:443", nil), models.ErrValidation)
		require.NoError(t, checkDialAddress("tcp", "93.184.216.34:443", nil))
	})
}
