package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/middleware"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/service"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/sse"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService    *service.ChatService
	messageService *service.MessageService
	hub            *sse.Hub
}

func NewChatHandler(chatService *service.ChatService, messageService *service.MessageService, hub *sse.Hub) *ChatHandler {
	return &ChatHandler{chatService: chatService, messageService: messageService, hub: hub}
}

// POST /chats
func (h *ChatHandler) Create(c *gin.Context) {
	var req struct {
		RecipientID uint `json:"recipient_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	userID := middleware.GetCurrentUserID(c)
	chat, err := h.chatService.GetOrCreate(userID, req.RecipientID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, chat)
}

// GET /chats
func (h *ChatHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	chats, err := h.chatService.ListForUser(userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, chats)
}

// GET /chats/find?first=&second=
func (h *ChatHandler) Find(c *gin.Context) {
	first := parseID(c.Query("first"))
	second := parseID(c.Query("second"))

	chat, err := h.chatService.FindByMembers(first, second)
	if err != nil {
		RespondError(c, err)
		return
	}
	if chat == nil {
		NotFound(c, 40401, "chat not found")
		return
	}
	Success(c, chat)
}

// requireChatMember aborts unless the current user belongs to the chat.
func (h *ChatHandler) requireChatMember(c *gin.Context, chatID uint) bool {
	userID := middleware.GetCurrentUserID(c)
	ok, err := h.chatService.IsMember(chatID, userID)
	if err != nil {
		RespondError(c, err)
		return false
	}
	if !ok {
		Forbidden(c, 40301, "not a member of this chat")
		return false
	}
	return true
}

// GET /chats/:id/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	chatID := parseID(c.Param("id"))
	if !h.requireChatMember(c, chatID) {
		return
	}

	messages, err := h.messageService.ListByChat(chatID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, messages)
}

// POST /chats/:id/messages
func (h *ChatHandler) CreateMessage(c *gin.Context) {
	chatID := parseID(c.Param("id"))
	if !h.requireChatMember(c, chatID) {
		return
	}

	var req struct {
		Text     string `json:"text"`
		ImageURL string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	userID := middleware.GetCurrentUserID(c)
	message, err := h.messageService.Create(chatID, userID, req.Text, req.ImageURL)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, message)
}

// PUT /messages/:id
func (h *ChatHandler) EditMessage(c *gin.Context) {
	id := parseID(c.Param("id"))

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	message, err := h.messageService.Edit(id, req.Text)
	if err != nil {
		RespondError(c, err)
		return
	}
	if message == nil {
		NotFound(c, 40401, "message not found")
		return
	}
	Success(c, message)
}

// DELETE /messages/:id
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	id := parseID(c.Param("id"))

	message, err := h.messageService.Delete(id)
	if err != nil {
		RespondError(c, err)
		return
	}
	if message == nil {
		NotFound(c, 40401, "message not found")
		return
	}
	Success(c, gin.H{"message": "message deleted"})
}

// DELETE /chats/:id
func (h *ChatHandler) Delete(c *gin.Context) {
	chatID := parseID(c.Param("id"))
	if !h.requireChatMember(c, chatID) {
		return
	}

	chat, err := h.chatService.Delete(chatID)
	if err != nil {
		RespondError(c, err)
		return
	}
	if chat == nil {
		NotFound(c, 40401, "chat not found")
		return
	}

	// let the stream history lapse instead of deleting it outright, so a
	// client mid-reconnect still gets a clean EOF
	h.hub.SetExpire(chatID, 24*time.Hour)

	Success(c, gin.H{"message": "chat deleted"})
}

// GET /chats/:id/stream
func (h *ChatHandler) Stream(c *gin.Context) {
	chatID := parseID(c.Param("id"))
	if !h.requireChatMember(c, chatID) {
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		InternalError(c, "streaming not supported")
		return
	}

	lastEventID := sse.ParseLastEventID(c.GetHeader("Last-Event-ID"))

	// Replay history
	history, _ := h.hub.ReplayFrom(chatID, lastEventID)
	eventID := lastEventID
	for _, ev := range history {
		data, _ := json.Marshal(ev.Data)
		fmt.Fprintf(c.Writer, "id: %d\nevent: %s\ndata: %s\n\n", eventID, ev.Type, string(data))
		eventID++
		flusher.Flush()
	}

	events, unsub := h.hub.Subscribe(chatID)
	defer unsub()

	for {
		select {
		case ev, open := <-events:
			if !open {
				return
			}
			data, _ := json.Marshal(ev.Data)
			fmt.Fprintf(c.Writer, "id: %d\nevent: %s\ndata: %s\n\n", eventID, ev.Type, string(data))
			eventID++
			flusher.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
