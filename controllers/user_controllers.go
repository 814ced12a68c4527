package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"barnearbeid/config"
	"barnearbeid/models"
	"barnearbeid/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type UserController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewUserController(db *gorm.DB, redisCli *redis.Client) UserController {
	return UserController{
		DB:    db,
		Redis: redisCli,
	}
}

type UpdateUserInput struct {
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	Bio        string          `json:"bio"`
	Skills     json.RawMessage `json:"skills"`
	Experience string          `json:"experience"`
	Avatar     string          `json:"avatar"`
	Age        int             `json:"age"`
}

type StatusUserInput struct {
	Status int  `json:"status"`
	Id     uint `json:"id" binding:"required"`
}

// ProfileResponse is the public view of a user: no email, no status flags.
type ProfileResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Age           int             `json:"age"`
	Location      string          `json:"location"`
	UserType      string          `json:"userType"`
	Bio           string          `json:"bio"`
	Skills        json.RawMessage `json:"skills"`
	Experience    string          `json:"experience"`
	Avatar        string          `json:"avatar"`
	AverageRating *float64        `json:"averageRating"`
	TotalRatings  int             `json:"totalRatings"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (u UserController) GetUsers(c *gin.Context) {
	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	statusStr := c.Query("status")
	name := c.Query("name")
	userTypeFilter := c.Query("userType")

	page := 1
	limit := 12

	if pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage > 0 {
			page = parsedPage
		}
	}
	if limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	cacheKey := "users:all"

	var allUsers []models.User
	if err := services.GetFromRedis(config.Ctx, u.Redis, cacheKey, &allUsers); err != nil || len(allUsers) == 0 {
		if err := u.DB.Find(&allUsers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke hente brukere"})
			return
		}

		if err := services.SetToRedis(config.Ctx, u.Redis, cacheKey, allUsers, time.Hour); err != nil {
			log.Printf("Kunne ikke lagre brukerlisten i Redis: %v", err)
		}
	}

	filteredUsers := make([]models.User, 0)
	for _, user := range allUsers {
		if statusStr != "" {
			if parsedStatus, err := strconv.Atoi(statusStr); err == nil && user.Status != parsedStatus {
				continue
			}
		}
		if userTypeFilter != "" && user.UserType != userTypeFilter {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(user.Name), strings.ToLower(name)) {
			continue
		}
		filteredUsers = append(filteredUsers, user)
	}

	sort.Slice(filteredUsers, func(i, j int) bool {
		return filteredUsers[i].CreatedAt.After(filteredUsers[j].CreatedAt)
	})

	total := len(filteredUsers)
	start := (page - 1) * limit
	end := start + limit
	if start >= total {
		filteredUsers = []models.User{}
	} else if end > total {
		filteredUsers = filteredUsers[start:]
	} else {
		filteredUsers = filteredUsers[start:end]
	}

	userResponses := make([]UserResponse, 0, len(filteredUsers))
	for _, user := range filteredUsers {
		userResponses = append(userResponses, toUserResponse(user))
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 1,
		"mess": "Henting av brukere vellykket",
		"data": userResponses,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (u UserController) GetUserByID(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := u.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Brukeren finnes ikke"})
		return
	}

	var ratings []models.Rating
	if err := u.DB.Preload("FromUser").Where("to_user_id = ?", user.ID).
		Order("created_at DESC").Limit(20).Find(&ratings).Error; err != nil {
		log.Printf("Kunne ikke hente vurderinger for bruker %d: %v", user.ID, err)
		ratings = []models.Rating{}
	}

	profile := ProfileResponse{
		ID:            user.ID,
		Name:          user.Name,
		Age:           user.Age,
		Location:      user.Location,
		UserType:      user.UserType,
		Bio:           user.Bio,
		Skills:        user.Skills,
		Experience:    user.Experience,
		Avatar:        user.Avatar,
		AverageRating: user.AverageRating,
		TotalRatings:  user.TotalRatings,
		CreatedAt:     user.CreatedAt,
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Henting av bruker vellykket", "data": gin.H{
		"profile": profile,
		"ratings": toRatingResponses(ratings),
	}})
}

func (u UserController) UpdateUser(c *gin.Context) {
	currentUserID, _, err := currentUserFromHeader(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Invalid token"})
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Ugyldige data", "error": err.Error()})
		return
	}

	var user models.User
	if err := u.DB.First(&user, currentUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Brukeren finnes ikke"})
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Location != "" {
		user.Location = input.Location
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.Skills != nil {
		user.Skills = input.Skills
	}
	if input.Experience != "" {
		user.Experience = input.Experience
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	if input.Age != 0 {
		user.Age = input.Age
		if err := user.ValidateAge(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
			return
		}
	}

	if err := u.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke oppdatere brukeren", "error": err.Error()})
		return
	}

	_ = services.DeleteFromRedis(config.Ctx, u.Redis, "users:all")

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Profilen er oppdatert", "data": toUserResponse(user)})
}

func (u UserController) ChangeUserStatus(c *gin.Context) {
	var input StatusUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Ugyldige data", "error": err.Error()})
		return
	}

	var user models.User
	if err := u.DB.First(&user, input.Id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Brukeren finnes ikke"})
		return
	}

	user.Status = input.Status
	if err := u.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke endre status", "error": err.Error()})
		return
	}

	_ = services.DeleteFromRedis(config.Ctx, u.Redis, "users:all")

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": fmt.Sprintf("Status for bruker %d er endret", user.ID)})
}
