package helper

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^0\d{8,10}$`)
)

// IsEmail nhận diện identifier là email hay username/số điện thoại.
func IsEmail(identifier string) bool {
	return emailRegex.MatchString(identifier)
}

func IsPhone(identifier string) bool {
	return phoneRegex.MatchString(identifier)
}

// Mật khẩu hợp lệ: độ dài [6,100].
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("Mật khẩu phải có ít nhất 6 ký tự")
	}
	if len(password) > 100 {
		return errors.New("Mật khẩu không được quá 100 ký tự")
	}
	return nil
}

func ValidateLoginInput(identifier, password string) error {
	if strings.TrimSpace(identifier) == "" {
		return errors.New("Vui lòng nhập email, tên đăng nhập hoặc số điện thoại")
	}
	return ValidatePassword(password)
}

func ValidateRegisterInput(userName, fullName, email, password string) error {
	if len(strings.TrimSpace(userName)) < 3 {
		return errors.New("Tên đăng nhập phải có ít nhất 3 ký tự")
	}
	if len(strings.TrimSpace(fullName)) < 2 {
		return errors.New("Vui lòng nhập họ tên")
	}
	if !IsEmail(email) {
		return errors.New("Email không hợp lệ")
	}
	return ValidatePassword(password)
}

func CheckPasswordHash(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
