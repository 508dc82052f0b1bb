package services

import "golang.org/x/crypto/bcrypt"

type HashingService struct{}

func NewHashingService() *HashingService {
	return &HashingService{}
}

func (h *HashingService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

func (h *HashingService) ComparePassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}
