package handlers

import (
	"net/http"
	"strings"

	"travelhub/models"
	"travelhub/services/search"
	"travelhub/utils"

	"github.com/gin-gonic/gin"
)

// SearchHandler serves supplier searches and re-filtering of cached results.
type SearchHandler struct {
	svc *search.Service
}

func NewSearchHandler(svc *search.Service) *SearchHandler {
	return &SearchHandler{svc: svc}
}

func (h *SearchHandler) SearchHotels(c *gin.Context) {
	logger := getLogger(c)
	var req models.HotelSearchRequest
	if err := bindQuery(c, &req); err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	result, err := h.svc.SearchHotels(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Hotels retrieved", result)
}

func (h *SearchHandler) FilterHotels(c *gin.Context) {
	logger := getLogger(c)
	var filter models.SearchFilter
	if err := bindQuery(c, &filter); err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	result, err := h.svc.FilterHotels(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Hotels filtered", result)
}

func (h *SearchHandler) HotelInfo(c *gin.Context) {
	info, err := h.svc.HotelInfo(c.Request.Context(), c.Param("id"), c.DefaultQuery("language", "en"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	utils.Respond(c, http.StatusOK, "Hotel info retrieved", info)
}

func (h *SearchHandler) SearchActivities(c *gin.Context) {
	logger := getLogger(c)
	var req models.ActivitySearchRequest
	if err := bindQuery(c, &req); err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	result, err := h.svc.SearchActivities(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Activities retrieved", result)
}

func (h *SearchHandler) FilterActivities(c *gin.Context) {
	logger := getLogger(c)
	var filter models.SearchFilter
	if err := bindQuery(c, &filter); err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	result, err := h.svc.FilterActivities(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Activities filtered", result)
}

func (h *SearchHandler) SearchTransfers(c *gin.Context) {
	logger := getLogger(c)
	var req models.TransferSearchRequest
	if err := bindQuery(c, &req); err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	result, err := h.svc.SearchTransfers(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Transfers retrieved", result)
}

func (h *SearchHandler) FilterTransfers(c *gin.Context) {
	logger := getLogger(c)
	var filter models.SearchFilter
	if err := bindQuery(c, &filter); err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	result, err := h.svc.FilterTransfers(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Transfers filtered", result)
}

func (h *SearchHandler) TransferCountries(c *gin.Context) {
	countries, err := h.svc.TransferCountries(c.Request.Context(), c.DefaultQuery("language", "en"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	utils.Respond(c, http.StatusOK, "Countries retrieved", countries)
}

// TransferTerminals takes ?countries=SA,AE.
func (h *SearchHandler) TransferTerminals(c *gin.Context) {
	var codes []string
	for _, code := range strings.Split(c.Query("countries"), ",") {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, strings.ToUpper(code))
		}
	}
	terminals, err := h.svc.TransferTerminals(c.Request.Context(), c.DefaultQuery("language", "en"), codes)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	utils.Respond(c, http.StatusOK, "Terminals retrieved", terminals)
}
