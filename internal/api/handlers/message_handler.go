package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/akinsira/guestbookapi/internal/api/middleware"
	"github.com/akinsira/guestbookapi/internal/models"
	"github.com/akinsira/guestbookapi/internal/service"
	"github.com/akinsira/guestbookapi/pkg/utils/response"
	"github.com/akinsira/guestbookapi/pkg/utils/zaplogger"
	"github.com/labstack/echo/v4"
)

// submitterTokenHeader carries the capability token of an anonymous
// submitter on edit and delete requests.
const submitterTokenHeader = "x-submitter-token"

// MessageHandler is the handler for the message API
type MessageHandler struct {
	messages *service.MessageService
	auth     *service.AuthService
}

// NewMessageHandler creates a new handler for the message API
func NewMessageHandler(messages *service.MessageService, auth *service.AuthService) *MessageHandler {
	return &MessageHandler{messages: messages, auth: auth}
}

// ListMessages returns one page of messages with pagination info
func (h *MessageHandler) ListMessages(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.messages.List(page, limit)
	if err != nil {
		zaplogger.Error("failed to read messages", zaplogger.Fields{"error": err.Error()})
		return response.Error(c, http.StatusInternalServerError, "Failed to read messages")
	}
	return c.JSON(http.StatusOK, result)
}

type createMessageResponse struct {
	models.Message
	Token string `json:"token"`
}

// CreateMessage stores a new message. The response carries the one-time
// capability token; it is the submitter's only chance to save it.
func (h *MessageHandler) CreateMessage(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}

	msg, tok, err := h.messages.Create(req.Name, req.Message)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, createMessageResponse{Message: msg, Token: tok})
}

// UpdateMessage replaces the body of a message for its owner or an admin
func (h *MessageHandler) UpdateMessage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.Error(c, http.StatusNotFound, "Message not found")
	}

	actor, ok := h.actorFromRequest(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}

	msg, err := h.messages.Update(id, req.Message, actor)
	if err != nil {
		return h.writeServiceError(c, err)
	}
	return response.Success(c, http.StatusOK, map[string]interface{}{"message": msg})
}

// DeleteMessage removes a message for its owner or an admin
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.Error(c, http.StatusNotFound, "Message not found")
	}

	actor, ok := h.actorFromRequest(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	if err := h.messages.Delete(id, actor); err != nil {
		return h.writeServiceError(c, err)
	}
	return response.Success(c, http.StatusOK, map[string]interface{}{"message": "Message deleted successfully"})
}

// actorFromRequest resolves the request's credentials into an actor: a live
// admin bearer token wins, otherwise the submitter capability token is used
// as presented. Returns false when neither credential is present.
func (h *MessageHandler) actorFromRequest(c echo.Context) (service.Actor, bool) {
	if tok := middleware.BearerToken(c); tok != "" && h.auth.Validate(tok) {
		return service.Actor{Admin: true}, true
	}
	if tok := c.Request().Header.Get(submitterTokenHeader); tok != "" {
		return service.Actor{SubmitterToken: tok}, true
	}
	return service.Actor{}, false
}

func (h *MessageHandler) writeServiceError(c echo.Context, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return response.Error(c, http.StatusBadRequest, verr.Reason)
	case errors.Is(err, service.ErrNotFound):
		return response.Error(c, http.StatusNotFound, "Message not found")
	case errors.Is(err, service.ErrForbidden):
		return response.Error(c, http.StatusForbidden, "You can only modify your own messages")
	case errors.Is(err, service.ErrWindowExpired):
		return response.Error(c, http.StatusForbidden, "The edit window for this message has expired")
	default:
		zaplogger.Error("message operation failed", zaplogger.Fields{"error": err.Error()})
		return response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
