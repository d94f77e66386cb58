package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword băm mật khẩu bằng bcrypt với cost mặc định
func HashPassword(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword so khớp mật khẩu thô với hash đã lưu trong DB
func CheckPassword(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
