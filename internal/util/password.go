package util

import (
	"errors"
	"unicode"

	"github.com/RoyceAzure/lab/kitchen/internal/constants"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

// BcryptCost 測試時可調低
var BcryptCost = constants.BcryptCost

var ErrWeakPassword = errors.New("password must be at least 8 characters and contain upper case, lower case, digit and special character")

// ValidatePassword 長度至少8, 需包含大小寫字母, 數字與特殊字元
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return ErrWeakPassword
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if !(upper && lower && digit && special) {
		return ErrWeakPassword
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
