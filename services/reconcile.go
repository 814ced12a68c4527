package services

import (
	"log"

	"barnearbeid/config"
	"barnearbeid/models"

	"github.com/robfig/cron/v3"
)

// InitializeRatingScheduler sets up the nightly rating reconciliation job.
// A rating insert followed by a failed aggregate write leaves the user row
// stale; this job recomputes every rated user's aggregates from scratch.
func InitializeRatingScheduler() {
	log.Println("[RATING-SCHEDULER] Initializing rating reconciliation scheduler...")

	c := cron.New()

	c.AddFunc("0 4 * * *", func() {
		log.Println("[RATING-SCHEDULER] Running nightly rating reconciliation...")
		ReconcileUserRatings()
	})

	c.Start()
	log.Println("[RATING-SCHEDULER] Rating scheduler started - runs daily at 4 AM")
}

// ReconcileUserRatings recomputes averageRating/totalRatings for every user
// that has at least one rating.
func ReconcileUserRatings() {
	var userIDs []uint
	if err := config.DB.Model(&models.Rating{}).Distinct("to_user_id").Pluck("to_user_id", &userIDs).Error; err != nil {
		log.Printf("[RATING-SCHEDULER] Error fetching rated users: %v", err)
		return
	}

	log.Printf("[RATING-SCHEDULER] Reconciling ratings for %d users", len(userIDs))

	for _, userID := range userIDs {
		if err := UpdateUserRating(userID); err != nil {
			log.Printf("[RATING-SCHEDULER] Error reconciling user %d: %v", userID, err)
		}
	}
}
