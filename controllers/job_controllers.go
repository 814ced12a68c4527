package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"barnearbeid/config"
	"barnearbeid/models"
	"barnearbeid/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const jobsPageSize = 12

const (
	sortByRating    = "rating"
	sortByPriceLow  = "price-low"
	sortByPriceHigh = "price-high"
)

type JobResponse struct {
	ID            uint                `json:"id"`
	Title         string              `json:"title"`
	Categories    models.CategoryList `json:"categories"`
	Description   string              `json:"description"`
	Price         int                 `json:"price"`
	PricingType   string              `json:"pricingType"`
	Location      string              `json:"location"`
	Duration      string              `json:"duration"`
	Status        string              `json:"status"`
	Images        json.RawMessage     `json:"images"`
	UserID        uint                `json:"userId"`
	ProviderName  string              `json:"providerName"`
	ProviderType  string              `json:"providerType"`
	AverageRating float64             `json:"averageRating"`
	ReviewCount   int                 `json:"reviewCount"`
	CreatedAt     time.Time           `json:"createdAt"`
}

type JobDetailResponse struct {
	JobResponse
	Requirements json.RawMessage  `json:"requirements"`
	Longitude    float64          `json:"longitude"`
	Latitude     float64          `json:"latitude"`
	Provider     *ProfileResponse `json:"provider,omitempty"`
	Ratings      []RatingResponse `json:"ratings"`
}

func toJobResponse(job models.Job) JobResponse {
	return JobResponse{
		ID:            job.ID,
		Title:         job.Title,
		Categories:    job.Categories,
		Description:   job.Description,
		Price:         job.Price,
		PricingType:   job.PricingType,
		Location:      job.Location,
		Duration:      job.Duration,
		Status:        job.Status,
		Images:        job.Images,
		UserID:        job.UserID,
		ProviderName:  job.ProviderName,
		ProviderType:  job.ProviderType,
		AverageRating: job.AverageRating,
		ReviewCount:   job.ReviewCount,
		CreatedAt:     job.CreatedAt,
	}
}

// filterJobs keeps jobs matching the search term (case-insensitive
// substring over title, description and provider name) and the category.
func filterJobs(jobs []models.Job, search, category string) []models.Job {
	searchLower := strings.ToLower(search)

	filtered := make([]models.Job, 0)
	for _, job := range jobs {
		if search != "" {
			if !strings.Contains(strings.ToLower(job.Title), searchLower) &&
				!strings.Contains(strings.ToLower(job.Description), searchLower) &&
				!strings.Contains(strings.ToLower(job.ProviderName), searchLower) {
				continue
			}
		}
		if category != "" && category != "all" && !job.Categories.Contains(category) {
			continue
		}
		filtered = append(filtered, job)
	}
	return filtered
}

// sortJobs orders the slice by the requested key; unknown keys keep the
// newest-first default.
func sortJobs(jobs []models.Job, sortBy string) {
	switch sortBy {
	case sortByRating:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].AverageRating > jobs[j].AverageRating
		})
	case sortByPriceLow:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].Price < jobs[j].Price
		})
	case sortByPriceHigh:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].Price > jobs[j].Price
		})
	default:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
		})
	}
}

// paginateJobs returns the 1-based page of the slice plus the page count.
func paginateJobs(jobs []models.Job, page, limit int) ([]models.Job, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = jobsPageSize
	}

	totalPages := (len(jobs) + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start >= len(jobs) {
		return []models.Job{}, totalPages
	}
	if end > len(jobs) {
		end = len(jobs)
	}
	return jobs[start:end], totalPages
}

func GetAllJobs(c *gin.Context) {
	searchFilter := c.Query("search")
	categoryFilter := c.Query("category")
	sortBy := c.Query("sort")
	statusFilter := c.DefaultQuery("status", models.JobStatusActive)

	page := 1
	limit := jobsPageSize
	if pageStr := c.Query("page"); pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage > 0 {
			page = parsedPage
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	cacheKey := "jobs:all"
	rdb, err := config.ConnectRedis()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke koble til Redis"})
		return
	}

	var allJobs []models.Job
	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &allJobs); err != nil || len(allJobs) == 0 {
		if err := config.DB.Model(&models.Job{}).Find(&allJobs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke hente jobber"})
			return
		}

		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, allJobs, time.Hour); err != nil {
			log.Printf("Kunne ikke lagre jobblisten i Redis: %v", err)
		}
	}

	if decoded, err := url.QueryUnescape(searchFilter); err == nil {
		searchFilter = decoded
	}

	statusJobs := make([]models.Job, 0, len(allJobs))
	for _, job := range allJobs {
		if statusFilter != "" && statusFilter != "all" && job.Status != statusFilter {
			continue
		}
		statusJobs = append(statusJobs, job)
	}

	filteredJobs := filterJobs(statusJobs, searchFilter, categoryFilter)
	sortJobs(filteredJobs, sortBy)

	total := len(filteredJobs)
	pageJobs, totalPages := paginateJobs(filteredJobs, page, limit)

	jobResponses := make([]JobResponse, 0, len(pageJobs))
	for _, job := range pageJobs {
		jobResponses = append(jobResponses, toJobResponse(job))
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 1,
		"mess": "Henting av jobber vellykket",
		"data": jobResponses,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

func CreateJob(c *gin.Context) {
	currentUserID, _, err := currentUserFromHeader(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Invalid token"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, currentUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Brukeren finnes ikke"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke hente brukeren", "error": err.Error()})
		return
	}

	var newJob models.Job
	if err := c.ShouldBindJSON(&newJob); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Ugyldige data", "error": err.Error()})
		return
	}

	newJob.ID = 0
	newJob.UserID = currentUserID
	newJob.User = user
	newJob.Status = models.JobStatusActive
	newJob.ProviderName = user.Name
	newJob.ProviderType = user.UserType
	newJob.AverageRating = 0
	newJob.ReviewCount = 0
	if newJob.PricingType == "" {
		newJob.PricingType = models.PricingFixed
	}

	if err := newJob.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	longitude, latitude, err := services.GetCoordinatesFromLocation(newJob.Location, os.Getenv("MAPBOX_KEY"))
	if err != nil {
		log.Printf("Kunne ikke geokode %q: %v", newJob.Location, err)
	}
	newJob.Longitude = longitude
	newJob.Latitude = latitude

	if err := config.DB.Create(&newJob).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke opprette jobben", "error": err.Error()})
		return
	}

	rdb, redisErr := config.ConnectRedis()
	if redisErr == nil {
		_ = services.DeleteFromRedis(config.Ctx, rdb, "jobs:all")
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Jobb opprettet!", "data": toJobResponse(newJob)})
}

func GetJobDetail(c *gin.Context) {
	jobId := c.Param("id")

	var job models.Job
	if err := config.DB.Preload("User").First(&job, jobId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Jobb ikke funnet"})
		return
	}

	// Older rows were created before the provider snapshot existed.
	if job.ProviderName == "" {
		if job.User.ID != 0 {
			job.ProviderName = job.User.Name
			job.ProviderType = job.User.UserType
		} else {
			job.ProviderName = "Ukjent tilbyder"
		}
	}

	detail := JobDetailResponse{
		JobResponse:  toJobResponse(job),
		Requirements: job.Requirements,
		Longitude:    job.Longitude,
		Latitude:     job.Latitude,
		Ratings:      []RatingResponse{},
	}

	if job.User.ID != 0 {
		detail.Provider = &ProfileResponse{
			ID:            job.User.ID,
			Name:          job.User.Name,
			Age:           job.User.Age,
			Location:      job.User.Location,
			UserType:      job.User.UserType,
			Bio:           job.User.Bio,
			Skills:        job.User.Skills,
			Experience:    job.User.Experience,
			Avatar:        job.User.Avatar,
			AverageRating: job.User.AverageRating,
			TotalRatings:  job.User.TotalRatings,
			CreatedAt:     job.User.CreatedAt,
		}

		var ratings []models.Rating
		if err := config.DB.Preload("FromUser").Where("to_user_id = ?", job.User.ID).
			Order("created_at DESC").Limit(20).Find(&ratings).Error; err != nil {
			log.Printf("Kunne ikke hente vurderinger for jobb %s: %v", jobId, err)
		} else {
			detail.Ratings = toRatingResponses(ratings)
		}
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Henting av jobb vellykket", "data": detail})
}

func ChangeJobStatus(c *gin.Context) {
	currentUserID, currentUserRole, err := currentUserFromHeader(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Invalid token"})
		return
	}

	var input struct {
		Id     uint   `json:"id" binding:"required"`
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Ugyldige data", "error": err.Error()})
		return
	}

	if input.Status != models.JobStatusActive && input.Status != models.JobStatusInactive {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Status må være active eller inactive"})
		return
	}

	var job models.Job
	if err := config.DB.First(&job, input.Id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Jobb ikke funnet"})
		return
	}

	if job.UserID != currentUserID && currentUserRole != 1 {
		c.JSON(http.StatusForbidden, gin.H{"code": 0, "mess": "Du har ikke tilgang til denne jobben"})
		return
	}

	job.Status = input.Status
	if err := config.DB.Save(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke endre status", "error": err.Error()})
		return
	}

	rdb, redisErr := config.ConnectRedis()
	if redisErr == nil {
		_ = services.DeleteFromRedis(config.Ctx, rdb, "jobs:all")
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Status er endret", "data": toJobResponse(job)})
}
