package http

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"companion-llm/internal/domain"
	"companion-llm/internal/service"
)

// ResponseGenerator es el punto de entrada del pipeline que expone el handler.
type ResponseGenerator interface {
	GenerateResponse(ctx context.Context, relationshipID, userMessage, userID string) (domain.GeneratedResponse, error)
}

// ChatHandler mantiene dependencias para los endpoints de conversacion.
type ChatHandler struct {
	logger    *zap.Logger
	companion ResponseGenerator
	contexts  service.ContextService
	limiter   service.MessageRateLimiter
}

// NewChatHandler crea una instancia de ChatHandler. limiter puede ser nil.
func NewChatHandler(
	logger *zap.Logger,
	companion ResponseGenerator,
	contexts service.ContextService,
	limiter service.MessageRateLimiter,
) *ChatHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatHandler{
		logger:    logger,
		companion: companion,
		contexts:  contexts,
		limiter:   limiter,
	}
}

// PostMessage maneja POST /relationships/:id/messages.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
		UserID  string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
		return
	}

	relationshipID := c.Param("id")
	if h.limiter != nil {
		decision := h.limiter.Allow(c.Request.Context(), userID, relationshipID)
		if !decision.Allowed {
			h.logger.Warn("message rate limited",
				zap.String("user_id", userID),
				zap.String("relationship_id", relationshipID),
				zap.Duration("retry_after", decision.RetryAfter),
			)
			if decision.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(math.Ceil(decision.RetryAfter.Seconds()))))
			}
			c.JSON(http.StatusTooManyRequests, gin.H{"error": service.ErrRateLimited.Error()})
			return
		}
	}

	resp, err := h.companion.GenerateResponse(c.Request.Context(), relationshipID, req.Content, userID)
	if err != nil {
		h.writeError(c, "generate response failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": resp})
}

// GetContext maneja GET /relationships/:id/context.
func (h *ChatHandler) GetContext(c *gin.Context) {
	userID, ok := resolveUserID(c, c.Query("user_id"))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
		return
	}

	convCtx, err := h.contexts.GetConversationContext(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "get context failed", err)
		return
	}
	if convCtx.Relationship.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "relationship not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"context": convCtx})
}

// resolveUserID prioriza los claims del JWT; sin middleware usa el valor recibido.
func resolveUserID(c *gin.Context, fallback string) (string, bool) {
	if claims, ok := GetAuthClaims(c); ok {
		return claims.UserID, claims.UserID != ""
	}
	id := strings.TrimSpace(fallback)
	return id, id != ""
}

func (h *ChatHandler) writeError(c *gin.Context, msg string, err error) {
	status, public := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.String("relationship_id", c.Param("id")), zap.Error(err))
	} else {
		h.logger.Warn(msg, zap.String("relationship_id", c.Param("id")), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": public})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, service.ErrRelationshipNotFound):
		return http.StatusNotFound, "relationship not found"
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests, "rate limited"
	case errors.Is(err, service.ErrGenerationFailed):
		return http.StatusBadGateway, "could not generate response"
	case errors.Is(err, service.ErrPersonaNotFound):
		return http.StatusInternalServerError, "persona not configured"
	}
	return http.StatusInternalServerError, "internal error"
}
