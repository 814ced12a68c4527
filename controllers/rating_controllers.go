package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"barnearbeid/config"
	"barnearbeid/models"
	"barnearbeid/services"

	"github.com/gin-gonic/gin"
)

type RaterInfo struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type RatingResponse struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	User      RaterInfo `json:"user"`
}

type CreateRatingInput struct {
	ToUserID uint   `json:"toUserId" binding:"required"`
	Rating   int    `json:"rating" binding:"required"`
	Comment  string `json:"comment"`
}

func toRatingResponses(ratings []models.Rating) []RatingResponse {
	responses := make([]RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		responses = append(responses, RatingResponse{
			ID:        rating.ID,
			Rating:    rating.Rating,
			Comment:   rating.Comment,
			CreatedAt: rating.CreatedAt,
			User: RaterInfo{
				ID:     rating.FromUser.ID,
				Name:   rating.FromUser.Name,
				Avatar: rating.FromUser.Avatar,
			},
		})
	}
	return responses
}

func userRatingsCacheKey(userID uint) string {
	return fmt.Sprintf("ratings:user:%d", userID)
}

// GetUserRatings lists every rating left on a user, newest first.
func GetUserRatings(c *gin.Context) {
	userIDStr := c.Query("userId")
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Ugyldig bruker-ID"})
		return
	}

	cacheKey := userRatingsCacheKey(uint(userID))
	rdb, redisErr := config.ConnectRedis()

	var responses []RatingResponse
	if redisErr == nil {
		if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &responses); err == nil && len(responses) > 0 {
			c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Henting av vurderinger vellykket", "data": responses})
			return
		}
	}

	var ratings []models.Rating
	if err := config.DB.Preload("FromUser").Where("to_user_id = ?", userID).
		Order("created_at DESC").Find(&ratings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke hente vurderinger"})
		return
	}

	responses = toRatingResponses(ratings)

	if redisErr == nil {
		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, responses, 30*time.Minute); err != nil {
			log.Printf("Kunne ikke lagre vurderinger i Redis: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Henting av vurderinger vellykket", "data": responses})
}

// CreateRating records a one-time rating of another user and refreshes
// the receiver's stored average.
func CreateRating(c *gin.Context) {
	currentUserID, _, err := currentUserFromHeader(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Invalid token"})
		return
	}

	var input CreateRatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Ugyldige data", "error": err.Error()})
		return
	}

	if input.Rating < 1 || input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Vurderingen må være mellom 1 og 5"})
		return
	}

	if input.ToUserID == currentUserID {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Du kan ikke vurdere deg selv"})
		return
	}

	var receiver models.User
	if err := config.DB.First(&receiver, input.ToUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Brukeren finnes ikke"})
		return
	}

	var existingCount int64
	if err := config.DB.Model(&models.Rating{}).
		Where("from_user_id = ? AND to_user_id = ?", currentUserID, input.ToUserID).
		Count(&existingCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke sjekke tidligere vurderinger"})
		return
	}
	if existingCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"code": 0, "mess": "Du har allerede vurdert denne brukeren"})
		return
	}

	rating := models.Rating{
		FromUserID: currentUserID,
		ToUserID:   input.ToUserID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := config.DB.Create(&rating).Error; err != nil {
		// The unique index catches a concurrent duplicate the pre-check missed.
		c.JSON(http.StatusConflict, gin.H{"code": 0, "mess": "Du har allerede vurdert denne brukeren"})
		return
	}

	if err := services.UpdateUserRating(input.ToUserID); err != nil {
		log.Printf("Kunne ikke oppdatere snittvurdering for bruker %d: %v", input.ToUserID, err)
	}

	rdb, redisErr := config.ConnectRedis()
	if redisErr == nil {
		_ = services.DeleteFromRedis(config.Ctx, rdb, userRatingsCacheKey(input.ToUserID))
		_ = services.DeleteFromRedis(config.Ctx, rdb, "users:all")
	}

	if err := config.DB.Preload("FromUser").First(&rating, rating.ID).Error; err != nil {
		log.Printf("Kunne ikke hente vurdering %d på nytt: %v", rating.ID, err)
	}

	responses := toRatingResponses([]models.Rating{rating})
	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Vurdering lagret!", "data": responses[0]})
}

func GetRatingDetail(c *gin.Context) {
	ratingId := c.Param("id")

	var rating models.Rating
	if err := config.DB.Preload("FromUser").First(&rating, ratingId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Vurdering ikke funnet"})
		return
	}

	responses := toRatingResponses([]models.Rating{rating})
	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Henting av vurdering vellykket", "data": responses[0]})
}
