package routes

import (
	"context"
	"net/http"

	"barnearbeid/config"
	"barnearbeid/controllers"
	middlewares "barnearbeid/middleware"

	"github.com/gin-gonic/gin"

	"github.com/redis/go-redis/v9"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary) {

	userController := controllers.NewUserController(db, redisCli)

	v1 := router.Group("/api/v1")
	v1.GET("/users", middlewares.AuthMiddleware(1), userController.GetUsers)
	v1.GET("/users/:id", userController.GetUserByID)
	v1.PUT("/users", middlewares.AuthMiddleware(0, 1), userController.UpdateUser)
	v1.PUT("/userStatus", middlewares.AuthMiddleware(1), userController.ChangeUserStatus)

	v1.GET("/verify-email", controllers.VerifyEmail)
	v1.POST("/auth/login", controllers.Login)
	v1.DELETE("/auth/logout", controllers.Logout)
	v1.POST("/auth/register", controllers.RegisterUser)
	v1.POST("/resendCode", controllers.ResendVerificationCode)
	v1.POST("/forgetPassword", controllers.ForgetPassword)
	v1.POST("/newPassword", controllers.ResetPassword)
	v1.POST("/verifyCode", controllers.VerifyCode)
	v1.POST("/auth/google", controllers.AuthGoogle)

	v1.GET("/jobs", controllers.GetAllJobs)
	v1.POST("/jobs", controllers.CreateJob)
	v1.GET("/jobs/:id", controllers.GetJobDetail)
	v1.PUT("/jobStatus", controllers.ChangeJobStatus)

	v1.GET("/ratings", controllers.GetUserRatings)
	v1.POST("/ratings", controllers.CreateRating)
	v1.GET("/ratings/:id", controllers.GetRatingDetail)

	v1.POST("/messages", controllers.SendMessage)
	v1.GET("/messages", controllers.GetConversation)
	v1.GET("/messages/stream", controllers.StreamConversation)
	v1.GET("/messages/unread", controllers.GetUnreadCount)

	v1.POST("/img/multi-upload", func(c *gin.Context) {
		form, er := c.MultipartForm()
		if er != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ingen fil"})
		}
		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ingen fil"})
			return
		}

		var urls []string
		for _, file := range files {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Kunne ikke åpne filen"})
				return
			}
			defer src.Close()

			ctx := context.Background()
			resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "jobs"})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Opplasting mislyktes"})
				return
			}
			urls = append(urls, resp.SecureURL)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Opplasting vellykket",
			"urls":    urls,
		})
	})

	v1.POST("/img/upload", func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ingen fil"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Kunne ikke åpne filen"})
			return
		}
		defer src.Close()

		ctx := context.Background()
		resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "avatars"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Opplasting mislyktes"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Opplasting av avatar vellykket",
			"url":     resp.SecureURL,
		})
	})

}
