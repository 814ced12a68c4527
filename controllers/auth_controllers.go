package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"barnearbeid/config"
	"barnearbeid/models"
	"barnearbeid/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Age      int    `json:"age" binding:"required"`
	Location string `json:"location" binding:"required"`
	UserType string `json:"userType" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	UserID        uint      `json:"id"`
	UserName      string    `json:"name"`
	UserEmail     string    `json:"email"`
	UserVerified  bool      `json:"verified"`
	UserType      string    `json:"userType"`
	Age           int       `json:"age"`
	Location      string    `json:"location"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	UserStatus    int       `json:"status"`
	UserAvatar    string    `json:"avatar"`
	AverageRating *float64  `json:"averageRating"`
	TotalRatings  int       `json:"totalRatings"`
}

func toUserResponse(user models.User) UserResponse {
	return UserResponse{
		UserID:        user.ID,
		UserName:      user.Name,
		UserEmail:     user.Email,
		UserVerified:  user.IsVerified,
		UserType:      user.UserType,
		Age:           user.Age,
		Location:      user.Location,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
		UserStatus:    user.Status,
		UserAvatar:    user.Avatar,
		AverageRating: user.AverageRating,
		TotalRatings:  user.TotalRatings,
	}
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "E-post eller passord er ugyldig"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "E-post eller passord er ugyldig"})
		return
	}

	if user.Status != 0 {
		c.JSON(http.StatusForbidden, gin.H{"code": 0, "mess": "Kontoen er sperret"})
		return
	}

	userInfo := services.UserInfo{
		UserId: user.ID,
		Role:   user.Role,
	}

	accessToken, err := services.GenerateToken(userInfo, 60*24*3, true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Innlogging vellykket", "data": gin.H{
		"user_info":   toUserResponse(user),
		"accessToken": accessToken,
	}})
}

func Logout(c *gin.Context) {
	cookies := c.Request.Cookies()
	for _, cookie := range cookies {
		c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, cookie.HttpOnly)
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Utlogging vellykket"})
}

func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	user, err := services.CreateUser(models.User{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Age:      input.Age,
		Location: input.Location,
		UserType: input.UserType,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Registrering vellykket!", "data": toUserResponse(user)})
}

func VerifyEmail(c *gin.Context) {
	code := c.Query("token")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Bekreftelseskode mangler"})
		return
	}

	var user models.User
	result := config.DB.Where("code = ?", code).First(&user)
	if result.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": result.Error.Error()})
		return
	}

	if time.Since(user.CodeCreatedAt) > 5*time.Minute {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Koden er utløpt. Be om en ny kode."})
		return
	}

	user.IsVerified = true
	user.Code = ""
	config.DB.Save(&user)

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "E-posten er bekreftet", "data": toUserResponse(user)})
}

func ResendVerificationCode(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var user models.User
	result := config.DB.Where("email = ?", input.Email).First(&user)
	if result.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Brukeren finnes ikke."})
		return
	}

	if err := services.RegenerateVerificationCode(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke lage ny bekreftelseskode."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "En ny kode er sendt til e-posten din."})
}

func ForgetPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var user models.User
	result := config.DB.Where("email = ?", input.Email).First(&user)
	if result.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Brukeren finnes ikke."})
		return
	}

	if err := services.ResetPass(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke sende koden: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "En kode for å tilbakestille passordet er sendt til e-posten din."})
}

func ResetPassword(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var user models.User
	result := config.DB.Where("email = ?", input.Email).First(&user)
	if result.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Brukeren finnes ikke."})
		return
	}

	if err := services.NewPass(user, input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke endre passordet: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Passordet er endret"})
}

func VerifyCode(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Ugyldige data", "error": err.Error()})
		return
	}

	var user models.User
	result := config.DB.Where("email = ?", input.Email).First(&user)
	if result.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Fant ingen bruker med denne e-posten"})
		return
	}

	if user.Code != input.Code {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Ugyldig kode"})
		return
	}

	if time.Since(user.CodeCreatedAt) > 5*time.Minute {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Koden er utløpt. Be om en ny kode."})
		return
	}

	user.Code = ""
	if !user.IsVerified {
		user.IsVerified = true
	}

	config.DB.Save(&user)

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Bekreftelse vellykket"})
}

// GetUserIDFromToken extracts the user id and role from a JWT payload.
func GetUserIDFromToken(tokenString string) (uint, int, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return 0, 0, fmt.Errorf("invalid token format")
	}

	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode token payload: %w", err)
	}

	claimsMap := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claimsMap); err != nil {
		return 0, 0, fmt.Errorf("failed to unmarshal token payload: %w", err)
	}

	userInfo, ok := claimsMap["userinfo"].(map[string]interface{})
	if !ok {
		return 0, 0, fmt.Errorf("userinfo not found in token claims")
	}

	userID, okID := userInfo["userid"].(float64)
	if !okID {
		return 0, 0, fmt.Errorf("user ID not found in userinfo")
	}

	role, okRole := userInfo["role"].(float64)
	if !okRole {
		return 0, 0, fmt.Errorf("role not found in userinfo")
	}

	return uint(userID), int(role), nil
}

// currentUserFromHeader resolves the signed-in user from the request's
// Authorization header.
func currentUserFromHeader(c *gin.Context) (uint, int, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, 0, errors.New("Authorization header is missing")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	return GetUserIDFromToken(tokenString)
}

type GoogleUser struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Picture       string `json:"picture"`
}

// AuthGoogle signs a user in (or registers them) from a Google ID token.
func AuthGoogle(c *gin.Context) {
	var token struct {
		TokenId string `json:"tokenId"`
	}

	if err := c.ShouldBindJSON(&token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := verifyGoogleIDToken(token.TokenId)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	googleUser := GoogleUser{
		Name:          payload.Claims["name"].(string),
		Email:         payload.Claims["email"].(string),
		VerifiedEmail: payload.Claims["email_verified"].(bool),
		Picture:       payload.Claims["picture"].(string),
	}
	if !googleUser.VerifiedEmail {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email has not been verified"})
		return
	}

	user := models.User{}
	result := config.DB.Where("email = ?", googleUser.Email).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		user, err = services.CreateGoogleUser(googleUser.Name, googleUser.Email, googleUser.Picture)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create new user"})
			return
		}
	} else if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user: " + result.Error.Error()})
		return
	}

	userInfo := services.UserInfo{
		UserId: user.ID,
		Role:   user.Role,
	}

	accessToken, err := services.GenerateToken(userInfo, 60*24*3, true)
	if err != nil {
		log.Println("Error generating access token:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Innlogging vellykket", "data": gin.H{
		"user_info":   toUserResponse(user),
		"accessToken": accessToken,
	}})
}

func verifyGoogleIDToken(tokenId string) (*idtoken.Payload, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	payload, err := idtoken.Validate(context.Background(), tokenId, clientID)
	if err != nil {
		return nil, err
	}
	return payload, nil
}
