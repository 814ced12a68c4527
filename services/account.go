package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"barnearbeid/config"
	"barnearbeid/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func generateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// CreateUser registers a new account and emails the verification code.
func CreateUser(input models.User) (models.User, error) {
	if err := input.ValidateUserType(); err != nil {
		return models.User{}, err
	}
	if err := input.ValidateAge(); err != nil {
		return models.User{}, err
	}

	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return models.User{}, errors.New("e-postadressen er allerede registrert")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	input.Password = string(hashed)
	input.Code = generateCode()
	input.CodeCreatedAt = time.Now()
	input.IsVerified = false

	if err := config.DB.Create(&input).Error; err != nil {
		return models.User{}, err
	}

	SendVerificationEmail(input.Email, input.Name, input.Code)

	return input, nil
}

// CreateGoogleUser creates a pre-verified account from a Google profile.
func CreateGoogleUser(name, email, picture string) (models.User, error) {
	user := models.User{
		Name:       name,
		Email:      email,
		Avatar:     picture,
		IsVerified: true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// RegenerateVerificationCode issues a fresh code and re-sends the email.
func RegenerateVerificationCode(userID uint) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return err
	}

	user.Code = generateCode()
	user.CodeCreatedAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		return err
	}

	SendVerificationEmail(user.Email, user.Name, user.Code)
	return nil
}

// ResetPass sends a password reset code to the user.
func ResetPass(user models.User) error {
	user.Code = generateCode()
	user.CodeCreatedAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		return err
	}

	SendResetPasswordEmail(user.Email, user.Name, user.Code)
	return nil
}

// NewPass replaces the user's password after a verified reset.
func NewPass(user models.User, password string) error {
	if len(password) < 6 {
		return errors.New("passordet må ha minst 6 tegn")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	user.Code = ""
	return config.DB.Save(&user).Error
}
