package services

import (
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestPasswords uses the minimum bcrypt cost to keep tests fast
func newTestPasswords() *PasswordService {
	return NewPasswordService(bcrypt.MinCost)
}
