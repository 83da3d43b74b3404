package handler

import (
	"log/slog"
	"net/http"

	"deepti.app/relay/internal/http/dto"
	"deepti.app/relay/internal/model"
	"deepti.app/relay/internal/service"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	relayService service.RelayService
}

func NewChatHandler(relayService service.RelayService) *ChatHandler {
	return &ChatHandler{relayService: relayService}
}

// Chat relays the posted history to the provider and returns one reply.
// Request parsing errors and provider errors both answer 500 with the error text;
// individual blank or unknown-role entries are dropped by the service instead.
func (h *ChatHandler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid chat request body", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	reply, err := h.relayService.Reply(ctx, req.History)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, dto.ChatResponse{Reply: reply})
}

func (h *ChatHandler) Health(c *gin.Context) {
	mode := "fallback"
	if h.relayService.Live() {
		mode = "live"
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Mode: mode})
}

func errorResponse(err error) dto.ErrorResponse {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		msg = model.RelayFailure
	}
	return dto.ErrorResponse{Error: msg}
}
