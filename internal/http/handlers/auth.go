package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/speechcoach-backend/internal/http/response"
	"github.com/yungbote/speechcoach-backend/internal/services"
)

type AuthHandler struct {
	practice services.PracticeService
}

func NewAuthHandler(practice services.PracticeService) *AuthHandler {
	return &AuthHandler{practice: practice}
}

func (ah *AuthHandler) LoginAPIKey(c *gin.Context) {
	var req struct {
		APIKey string `json:"api_key"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		badRequest(c, errors.New("api_key is required"))
		return
	}
	res, err := ah.practice.LoginWithAPIKey(c.Request.Context(), req.APIKey)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondLogin(c, res)
}

func (ah *AuthHandler) LoginPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := ah.practice.LoginWithPassword(c.Request.Context(), req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondLogin(c, res)
}

func respondLogin(c *gin.Context, res *services.LoginResult) {
	response.RespondOK(c, gin.H{
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"session":    res.State.View(),
	})
}
