package handlers

import (
	"net/http"

	"travelhub/models"
	"travelhub/services/insurance"
	"travelhub/utils"

	"github.com/gin-gonic/gin"
)

// InsuranceConfigHandler serves the insurance master config.
type InsuranceConfigHandler struct {
	svc *insurance.ConfigService
}

func NewInsuranceConfigHandler(svc *insurance.ConfigService) *InsuranceConfigHandler {
	return &InsuranceConfigHandler{svc: svc}
}

func (h *InsuranceConfigHandler) Get(c *gin.Context) {
	cfg, err := h.svc.Get(c.Request.Context())
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	utils.Respond(c, http.StatusOK, "Insurance configuration retrieved", cfg)
}

func (h *InsuranceConfigHandler) Replace(c *gin.Context) {
	logger := getLogger(c)
	var cfg models.InsuranceConfig
	if err := bindJSON(c, &cfg); err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	saved, err := h.svc.Replace(c.Request.Context(), principal(c), &cfg)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Insurance configuration saved", saved)
}

func (h *InsuranceConfigHandler) History(c *gin.Context) {
	revs, err := h.svc.History(c.Request.Context())
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	utils.Respond(c, http.StatusOK, "Insurance configuration history retrieved", revs)
}
