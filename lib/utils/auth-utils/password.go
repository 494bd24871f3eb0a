package authutils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	// рекомендуемая длина временного пароля
	RecommendedSecretLen = 12
	// длина генерируемого пароля
	GeneratedSecretLen = 16

	lowerChars  = "abcdefghijkmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars  = "23456789"
	symbolChars = "!@#$%^&*-_=+?"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateTempPassword пароль содержит символы всех четырех групп
func GenerateTempPassword(length int) (string, error) {
	groups := []string{lowerChars, upperChars, digitChars, symbolChars}
	if length < len(groups) {
		return "", errors.Errorf("длина пароля должна быть не меньше %d", len(groups))
	}
	alphabet := strings.Join(groups, "")
	result := make([]byte, length)
	for k := range result {
		set := alphabet
		if k < len(groups) {
			set = groups[k]
		}
		ch, err := randomChar(set)
		if err != nil {
			return "", err
		}
		result[k] = ch
	}
	// перемешиваем, чтобы обязательные группы не стояли в начале
	for k := len(result) - 1; k > 0; k-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(k+1)))
		if err != nil {
			return "", err
		}
		j := int(n.Int64())
		result[k], result[j] = result[j], result[k]
	}
	return string(result), nil
}

// CheckSecretStrength возвращает замечания к паролю, пустой список - пароль надежный
func CheckSecretStrength(secret string) []string {
	warnings := []string{}
	if len([]rune(secret)) < RecommendedSecretLen {
		warnings = append(warnings, "пароль короче 12 символов")
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, ch := range secret {
		switch {
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsDigit(ch):
			hasDigit = true
		case unicode.IsPunct(ch) || unicode.IsSymbol(ch):
			hasSymbol = true
		}
	}
	if !hasLower || !hasUpper {
		warnings = append(warnings, "пароль должен содержать строчные и заглавные буквы")
	}
	if !hasDigit {
		warnings = append(warnings, "пароль должен содержать цифры")
	}
	if !hasSymbol {
		warnings = append(warnings, "пароль должен содержать спецсимволы")
	}
	return warnings
}

func randomChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}
