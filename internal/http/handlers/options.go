package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/yungbote/speechcoach-backend/internal/domain"
	"github.com/yungbote/speechcoach-backend/internal/http/response"
)

type OptionsHandler struct {
	passwordLogin bool
}

func NewOptionsHandler(passwordLogin bool) *OptionsHandler {
	return &OptionsHandler{passwordLogin: passwordLogin}
}

type criterionOption struct {
	Key   domain.Criterion `json:"key"`
	Label string           `json:"label"`
}

// Options lists every choice the setup form offers plus rubric and legend metadata.
func (h *OptionsHandler) Options(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"topics":        domain.Topics,
		"difficulties":  domain.Difficulties,
		"content_kinds": domain.ContentKinds,
		"duration": gin.H{
			"min":     domain.MinDurationMinutes,
			"max":     domain.MaxDurationMinutes,
			"default": domain.DefaultDurationMinutes,
		},
		"criteria": lo.Map(domain.Criteria, func(cr domain.Criterion, _ int) criterionOption {
			return criterionOption{Key: cr, Label: cr.Label()}
		}),
		"error_legend":   domain.ErrorStyles,
		"password_login": h.passwordLogin,
	})
}
