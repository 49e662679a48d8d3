package handlers

import (
	"net/http"

	"travelhub/models"
	"travelhub/services/rating"
	"travelhub/utils"

	"github.com/gin-gonic/gin"
)

// RatingHandler serves halal ratings for one vertical.
type RatingHandler struct {
	svc      *rating.Service
	vertical string
}

func NewRatingHandler(svc *rating.Service, vertical string) *RatingHandler {
	return &RatingHandler{svc: svc, vertical: vertical}
}

type rateRequest struct {
	ID      string          `json:"id"`
	Ratings []models.Rating `json:"ratings"`
}

type structureRequest struct {
	Ratings []models.Rating `json:"ratings"`
}

func (h *RatingHandler) Rate(c *gin.Context) {
	logger := getLogger(c)
	var req rateRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	info, err := h.svc.Rate(c.Request.Context(), h.vertical, req.ID, principal(c), req.Ratings)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Rating saved", info)
}

func (h *RatingHandler) PutStructure(c *gin.Context) {
	logger := getLogger(c)
	var req structureRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	structure, err := h.svc.RateStructure(c.Request.Context(), h.vertical, principal(c), req.Ratings)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Rating structure saved", structure)
}

func (h *RatingHandler) GetStructure(c *gin.Context) {
	structure, err := h.svc.GetStructure(c.Request.Context(), h.vertical)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	utils.Respond(c, http.StatusOK, "Rating structure retrieved", structure)
}

func (h *RatingHandler) GetAll(c *gin.Context) {
	logger := getLogger(c)
	page, size, err := pageParams(c)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	result, err := h.svc.GetAll(c.Request.Context(), h.vertical, page, size)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Ratings retrieved", result)
}

func (h *RatingHandler) GetOne(c *gin.Context) {
	info, err := h.svc.GetOne(c.Request.Context(), h.vertical, c.Param("id"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	utils.Respond(c, http.StatusOK, "Rating retrieved", info)
}
