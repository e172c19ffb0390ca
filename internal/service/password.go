// File: internal/service/password.go
package service

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// passwordSpecials 密碼必須包含的特殊字元集合
const passwordSpecials = "@$!%*?&"

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串
func HashPassword(password string) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// ComparePassword 比對明文密碼與 bcrypt 哈希，成功回傳 nil，失敗則回傳錯誤
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidatePassword 檢查密碼複雜度，回傳的錯誤列出所有未通過的規則
func ValidatePassword(password string) error {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	var missing []string
	if len(password) < 8 {
		missing = append(missing, "must be at least 8 characters")
	}
	if !hasUpper {
		missing = append(missing, "must include an uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "must include a lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "must include a digit")
	}
	if !hasSpecial {
		missing = append(missing, "must include one of "+passwordSpecials)
	}
	if len(missing) > 0 {
		return errors.New("password " + strings.Join(missing, ", "))
	}
	return nil
}
