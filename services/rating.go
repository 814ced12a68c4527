package services

import (
	"math"

	"barnearbeid/config"
	"barnearbeid/models"
)

// AverageRating computes the mean of the scores rounded to one decimal
// (half up), together with the count. Returns 0, 0 for an empty set.
func AverageRating(scores []int) (float64, int) {
	if len(scores) == 0 {
		return 0, 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	avg := float64(sum) / float64(len(scores))
	return math.Round(avg*10) / 10, len(scores)
}

// UpdateUserRating recomputes the denormalized average rating and rating
// count for a user from all ratings targeting them. Runs after every new
// rating; there is no rollback if the aggregate write fails, the nightly
// reconciliation picks it up instead.
func UpdateUserRating(userID uint) error {
	var ratings []models.Rating
	if err := config.DB.Where("to_user_id = ?", userID).Find(&ratings).Error; err != nil {
		return err
	}

	if len(ratings) == 0 {
		return nil
	}

	scores := make([]int, 0, len(ratings))
	for _, rating := range ratings {
		scores = append(scores, rating.Rating)
	}
	average, total := AverageRating(scores)

	return config.DB.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"average_rating": average,
		"total_ratings":  total,
	}).Error
}
