package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"veluna/internal/delivery/api/response"
	"veluna/internal/usecase"
)

// ChatHandlerParams holds dependencies for ChatHandler, injected by Fx.
type ChatHandlerParams struct {
	fx.In

	ChatUC usecase.ChatUsecase
}

// ChatHandler serves customer support chats
type ChatHandler struct {
	chatUC usecase.ChatUsecase
}

// NewChatHandler is the constructor for ChatHandler
func NewChatHandler(params ChatHandlerParams) *ChatHandler {
	return &ChatHandler{chatUC: params.ChatUC}
}

// SendMessageRequest is a customer chat message
type SendMessageRequest struct {
	UserName string `json:"userName"`
	Text     string `json:"text" validate:"required,max=2000"`
}

// ReplyRequest is an admin chat reply
type ReplyRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// Messages returns the conversation of the userId path parameter
func (h *ChatHandler) Messages(c echo.Context) error {
	messages, err := h.chatUC.Messages(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, messages)
}

// SendMessage posts a customer message
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req SendMessageRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	msg, err := h.chatUC.SendUserMessage(c.Request().Context(), c.Param("userId"), req.UserName, req.Text)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, msg)
}

// Threads returns the conversation list
func (h *ChatHandler) Threads(c echo.Context) error {
	threads, err := h.chatUC.Threads(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, threads)
}

// Reply posts an admin answer
func (h *ChatHandler) Reply(c echo.Context) error {
	var req ReplyRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	msg, err := h.chatUC.Reply(c.Request().Context(), c.Param("userId"), req.Text)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, msg)
}

// MarkRead resets the unread counter of a conversation
func (h *ChatHandler) MarkRead(c echo.Context) error {
	if err := h.chatUC.MarkThreadRead(c.Request().Context(), c.Param("userId")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusOK, "Marked as read")
}
