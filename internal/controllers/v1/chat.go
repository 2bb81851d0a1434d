package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/assistant"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/httputil"
)

// RegisterChatRoutes registers the routes for the chat assistant with
// the RouterGroup that is passed.
func RegisterChatRoutes(r *gin.RouterGroup, a *assistant.Assistant) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", func(c *gin.Context) {
		Chat(c, a)
	})
}

// ChatRequest is a full conversation history. The last message is the
// one the assistant responds to.
type ChatRequest struct {
	Messages []assistant.Message `json:"messages" binding:"required,min=1,dive"` // The conversation so far
}

// ChatReply is the assistant's answer for one conversation turn.
type ChatReply struct {
	Reply string `json:"reply" example:"You spent 100.00 on Food this month."` // The answer text
}

type ChatResponse struct {
	Error *string    `json:"error" example:"the assistant is not configured on this server"` // The error, if any occurred
	Data  *ChatReply `json:"data"`                                                           // The reply data
}

// @Summary		Chat with the assistant
// @Description	Sends the conversation to the assistant, which can read and modify the user's transactions
// @Tags			Assistant
// @Accept			json
// @Produce		json
// @Success		200		{object}	ChatResponse
// @Failure		400		{object}	ChatResponse
// @Failure		401		{object}	httpError
// @Failure		500		{object}	ChatResponse
// @Failure		503		{object}	ChatResponse
// @Param			request	body		ChatRequest	true	"Conversation"
// @Router			/v1/chat [post]
// @Security		BearerAuth
func Chat(c *gin.Context, a *assistant.Assistant) {
	var request ChatRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChatResponse{
			Error: &e,
		})
		return
	}

	reply, err := a.Chat(c.Request.Context(), auth.UserID(c), request.Messages)
	if err != nil {
		s := http.StatusInternalServerError
		if errors.Is(err, assistant.ErrNotConfigured) {
			s = http.StatusServiceUnavailable
		}

		e := err.Error()
		c.JSON(s, ChatResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Data: &ChatReply{Reply: reply}})
}
