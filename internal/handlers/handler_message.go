package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
	"github.com/smallbooks/smallbooks_backend/internal/middleware"
)

// messageHandler handles HTTP requests related to payment messages.
type messageHandler struct {
	messageService portssvc.MessageSvcFacade
}

func newMessageHandler(ms portssvc.MessageSvcFacade) *messageHandler {
	return &messageHandler{messageService: ms}
}

// registerMessageRoutes registers routes related to payment messages.
func registerMessageRoutes(rg *gin.RouterGroup, messageService portssvc.MessageSvcFacade) {
	h := newMessageHandler(messageService)

	messages := rg.Group("/messages")
	{
		messages.POST("", h.createMessage)
		messages.GET("", h.listMessages)
		messages.PUT("/:id/status", h.updateMessageStatus)
	}
}

// createMessage godoc
// @Summary Send a payment message
// @Description Sends a request, approval, notification or payment message to another team member. New messages start PENDING.
// @Tags messages
// @Accept  json
// @Produce  json
// @Param   message body dto.CreateMessageRequest true "Message details"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Recipient not found"
// @Security BearerAuth
// @Router /messages [post]
func (h *messageHandler) createMessage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMessage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	senderPublicKey, ok := middleware.GetPublicKeyFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	message, err := h.messageService.CreateMessage(c.Request.Context(), req, senderPublicKey)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		default:
			logger.Error("Failed to create message", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create message"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageResponse(message))
}

// listMessages godoc
// @Summary List the caller's messages
// @Description Returns messages the caller sent or received, newest first.
// @Tags messages
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListMessagesResponse
// @Security BearerAuth
// @Router /messages [get]
func (h *messageHandler) listMessages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMessagesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	participantPublicKey, ok := middleware.GetPublicKeyFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.messageService.ListMessages(c.Request.Context(), participantPublicKey, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list messages", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateMessageStatus godoc
// @Summary Acknowledge or reject a message
// @Description Moves a PENDING message to ACKNOWLEDGED or ERROR. Only the recipient may transition a message.
// @Tags messages
// @Accept  json
// @Produce  json
// @Param   id path string true "Message ID"
// @Param   status body dto.UpdateMessageStatusRequest true "New status"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Only the recipient may update the status"
// @Failure 404 {object} map[string]string "Message not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /messages/{id}/status [put]
func (h *messageHandler) updateMessageStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	messageID := c.Param("id")

	var req dto.UpdateMessageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorPublicKey, ok := middleware.GetPublicKeyFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	message, err := h.messageService.UpdateMessageStatus(c.Request.Context(), messageID, req.Status, actorPublicKey)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update message status", slog.String("message_id", messageID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageResponse(message))
}
