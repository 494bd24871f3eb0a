package profileextract

import (
	"bytes"
	"context"
	"hr-onboarding-backend/models"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

const (
	maxPageSize  = 2 << 20
	fetchTimeout = 20 * time.Second
	maxRedirects = 5
)

// pageClient ходит только на публичные адреса, проверка выполняется после разрешения имени
var pageClient = &http.Client{
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: 10 * time.Second,
			Control: checkDialAddress,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: fetchTimeout,
	},
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return errors.New("слишком много перенаправлений")
		}
		_, err := checkPageURL(req.URL.String())
		return err
	},
}

// DocumentConverter извлекает текст из файла резюме
type DocumentConverter func(body []byte, fileName string) (string, error)

// PageFetcher загружает текст страницы профиля
type PageFetcher func(ctx context.Context, url string) (string, error)

func ConvertDocument(body []byte, fileName string) (string, error) {
	mimeType := docconv.MimeTypeByExtension(fileName)
	if mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(body)
	}
	if strings.HasPrefix(mimeType, "text/plain") {
		return decodeText(body), nil
	}
	res, err := docconv.Convert(bytes.NewReader(body), mimeType, true)
	if err != nil {
		return "", errors.Wrapf(err, "ошибка разбора файла %v", fileName)
	}
	return res.Body, nil
}

func FetchPage(ctx context.Context, rawURL string) (string, error) {
	pageURL, err := checkPageURL(rawURL)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return "", errors.Wrap(err, "некорректная ссылка на профиль")
	}
	resp, err := pageClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки страницы профиля")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("страница профиля вернула статус %v", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", errors.Wrap(err, "ошибка чтения страницы профиля")
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "html") {
		return string(body), nil
	}
	res, err := docconv.Convert(bytes.NewReader(body), "text/html", true)
	if err != nil {
		return "", errors.Wrap(err, "ошибка разбора страницы профиля")
	}
	return res.Body, nil
}

func checkPageURL(rawURL string) (*url.URL, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, models.NewValidationError("url", "некорректная ссылка на профиль")
	}
	if pageURL.Scheme != "http" && pageURL.Scheme != "https" {
		return nil, models.NewValidationError("url", "допустимы только ссылки http и https")
	}
	host := strings.ToLower(pageURL.Hostname())
	if host == "" || host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return nil, models.NewValidationError("url", "недопустимый адрес страницы профиля")
	}
	if ip := net.ParseIP(host); ip != nil && !isPublicIP(ip) {
		return nil, models.NewValidationError("url", "недопустимый адрес страницы профиля")
	}
	return pageURL, nil
}

func checkDialAddress(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublicIP(ip) {
		return models.NewValidationError("url", "недопустимый адрес страницы профиля")
	}
	return nil
}

// carrier-grade NAT, 100.64.0.0/10
var sharedAddressSpace = &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}

func isPublicIP(ip net.IP) bool {
	return !(ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast() ||
		sharedAddressSpace.Contains(ip))
}

// decodeText текстовые резюме не в UTF-8 считаются выгруженными в windows-1251
func decodeText(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(body)
	if err != nil {
		return strings.ToValidUTF8(string(body), "")
	}
	return string(decoded)
}
