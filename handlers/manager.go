package handlers

import (
	"net/http"

	"travelhub/models"
	"travelhub/services/manager"
	"travelhub/utils"

	"github.com/gin-gonic/gin"
)

type ManagerHandler struct {
	svc *manager.Service
}

func NewManagerHandler(svc *manager.Service) *ManagerHandler {
	return &ManagerHandler{svc: svc}
}

func (h *ManagerHandler) Upsert(c *gin.Context) {
	logger := getLogger(c)
	var m models.Manager
	if err := bindJSON(c, &m); err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	saved, err := h.svc.Upsert(c.Request.Context(), c.Param("id"), &m)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Manager saved", saved)
}

func (h *ManagerHandler) Get(c *gin.Context) {
	m, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	utils.Respond(c, http.StatusOK, "Manager retrieved", m)
}

func (h *ManagerHandler) List(c *gin.Context) {
	logger := getLogger(c)
	page, size, err := pageParams(c)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	result, err := h.svc.List(c.Request.Context(), page, size)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Managers retrieved", result)
}
