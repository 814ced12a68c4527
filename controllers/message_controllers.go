package controllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"barnearbeid/config"
	"barnearbeid/models"
	"barnearbeid/services"

	"github.com/gin-gonic/gin"
)

type SendMessageInput struct {
	ToUserID uint   `json:"toUserId" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// SendMessage stores a message and announces it on the conversation's
// direction channel for open streams.
func SendMessage(c *gin.Context) {
	currentUserID, _, err := currentUserFromHeader(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Invalid token"})
		return
	}

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Ugyldige data", "error": err.Error()})
		return
	}

	if strings.TrimSpace(input.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Meldingen kan ikke være tom"})
		return
	}

	if input.ToUserID == currentUserID {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Du kan ikke sende melding til deg selv"})
		return
	}

	var receiver models.User
	if err := config.DB.First(&receiver, input.ToUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Brukeren finnes ikke"})
		return
	}

	message := models.Message{
		FromUserID: currentUserID,
		ToUserID:   input.ToUserID,
		Message:    input.Message,
	}
	if err := config.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke sende meldingen", "error": err.Error()})
		return
	}

	rdb, redisErr := config.ConnectRedis()
	if redisErr == nil {
		if err := services.PublishMessage(config.Ctx, rdb, message); err != nil {
			log.Printf("Kunne ikke publisere melding %d: %v", message.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Melding sendt", "data": message})
}

// GetConversation returns the full two-way conversation with another user,
// oldest first, and marks the counterpart's messages as read.
func GetConversation(c *gin.Context) {
	currentUserID, _, err := currentUserFromHeader(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Invalid token"})
		return
	}

	otherIDStr := c.Query("userId")
	otherID, err := strconv.ParseUint(otherIDStr, 10, 32)
	if err != nil || otherID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Ugyldig bruker-ID"})
		return
	}

	markConversationRead(currentUserID, uint(otherID))

	var messages []models.Message
	if err := config.DB.
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			currentUserID, otherID, otherID, currentUserID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke hente samtalen"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Henting av samtale vellykket", "data": messages})
}

// markConversationRead flags every unread message from the counterpart as
// read. Messages arriving between the select and the update are caught on
// the next fetch.
func markConversationRead(currentUserID, otherUserID uint) {
	var unreadIDs []uint
	if err := config.DB.Model(&models.Message{}).
		Where("from_user_id = ? AND to_user_id = ? AND read = ?", otherUserID, currentUserID, false).
		Pluck("id", &unreadIDs).Error; err != nil {
		log.Printf("Kunne ikke hente uleste meldinger fra %d: %v", otherUserID, err)
		return
	}
	if len(unreadIDs) == 0 {
		return
	}
	if err := config.DB.Model(&models.Message{}).
		Where("id IN ?", unreadIDs).
		Update("read", true).Error; err != nil {
		log.Printf("Kunne ikke markere meldinger som lest: %v", err)
	}
}

// GetUnreadCount reports how many unread messages the signed-in user has,
// in total and per sender.
func GetUnreadCount(c *gin.Context) {
	currentUserID, _, err := currentUserFromHeader(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Invalid token"})
		return
	}

	type senderCount struct {
		FromUserID uint  `json:"fromUserId"`
		Count      int64 `json:"count"`
	}

	var perSender []senderCount
	if err := config.DB.Model(&models.Message{}).
		Select("from_user_id, COUNT(*) as count").
		Where("to_user_id = ? AND read = ?", currentUserID, false).
		Group("from_user_id").
		Scan(&perSender).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke hente uleste meldinger"})
		return
	}

	var total int64
	for _, sc := range perSender {
		total += sc.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 1,
		"mess": "Henting av uleste meldinger vellykket",
		"data": gin.H{"total": total, "bySender": perSender},
	})
}

// StreamConversation serves the conversation as server-sent events. The
// client gets the stored history first, then a fresh merged view every
// time either side posts a new message.
func StreamConversation(c *gin.Context) {
	currentUserID, _, err := currentUserFromHeader(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Invalid token"})
		return
	}

	otherIDStr := c.Query("userId")
	otherID64, err := strconv.ParseUint(otherIDStr, 10, 32)
	if err != nil || otherID64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Ugyldig bruker-ID"})
		return
	}
	otherID := uint(otherID64)

	rdb, err := config.ConnectRedis()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke koble til Redis"})
		return
	}

	var sent, received []models.Message
	if err := config.DB.
		Where("from_user_id = ? AND to_user_id = ?", currentUserID, otherID).
		Order("created_at ASC").Find(&sent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke hente samtalen"})
		return
	}
	if err := config.DB.
		Where("from_user_id = ? AND to_user_id = ?", otherID, currentUserID).
		Order("created_at ASC").Find(&received).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Kunne ikke hente samtalen"})
		return
	}

	merger := &services.ConversationMerger{}
	merger.UpdateSent(sent)
	initial := merger.UpdateReceived(received)

	ctx := c.Request.Context()
	sentSub := rdb.Subscribe(ctx, services.ConversationChannel(currentUserID, otherID))
	receivedSub := rdb.Subscribe(ctx, services.ConversationChannel(otherID, currentUserID))
	defer sentSub.Close()
	defer receivedSub.Close()

	updates := make(chan []models.Message, 8)

	go func() {
		for redisMsg := range sentSub.Channel() {
			var msg models.Message
			if err := json.Unmarshal([]byte(redisMsg.Payload), &msg); err != nil {
				log.Printf("Ugyldig melding på kanalen: %v", err)
				continue
			}
			sent = append(sent, msg)
			select {
			case updates <- merger.UpdateSent(sent):
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		for redisMsg := range receivedSub.Channel() {
			var msg models.Message
			if err := json.Unmarshal([]byte(redisMsg.Payload), &msg); err != nil {
				log.Printf("Ugyldig melding på kanalen: %v", err)
				continue
			}
			received = append(received, msg)
			select {
			case updates <- merger.UpdateReceived(received):
			case <-ctx.Done():
				return
			}
		}
	}()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	first := true
	c.Stream(func(w io.Writer) bool {
		if first {
			first = false
			c.SSEvent("conversation", initial)
			return true
		}
		select {
		case merged := <-updates:
			c.SSEvent("conversation", merged)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
