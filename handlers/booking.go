package handlers

import (
	"context"
	"net/http"

	"travelhub/models"
	"travelhub/services/pagination"
	"travelhub/utils"

	"github.com/gin-gonic/gin"
)

// Booker is the booking pipeline of one vertical.
type Booker[R any] interface {
	Name() string
	Book(ctx context.Context, principalID string, req *R) (*models.Booking, error)
	List(ctx context.Context, principalID string, page, pageSize int) (pagination.Page[models.Booking], error)
	Get(ctx context.Context, principalID, partnerOrderID string) (*models.Booking, error)
}

// BookingHandler exposes a Booker over HTTP.
type BookingHandler[R any] struct {
	svc Booker[R]
	// prepare copies request metadata such as the caller IP onto req.
	prepare func(c *gin.Context, req *R)
}

func NewBookingHandler[R any](svc Booker[R], prepare func(c *gin.Context, req *R)) *BookingHandler[R] {
	return &BookingHandler[R]{svc: svc, prepare: prepare}
}

func (h *BookingHandler[R]) Book(c *gin.Context) {
	logger := getLogger(c)

	var req R
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	if h.prepare != nil {
		h.prepare(c, &req)
	}

	booking, err := h.svc.Book(c.Request.Context(), principal(c), &req)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusCreated, h.svc.Name()+" booked successfully", booking)
}

func (h *BookingHandler[R]) List(c *gin.Context) {
	logger := getLogger(c)
	page, size, err := pageParams(c)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	result, err := h.svc.List(c.Request.Context(), principal(c), page, size)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Bookings retrieved", result)
}

func (h *BookingHandler[R]) Get(c *gin.Context) {
	booking, err := h.svc.Get(c.Request.Context(), principal(c), c.Param("partnerOrderId"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	utils.Respond(c, http.StatusOK, "Booking retrieved", booking)
}
