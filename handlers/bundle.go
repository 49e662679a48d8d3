package handlers

import (
	"net/http"

	"travelhub/models"
	"travelhub/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups every endpoint handler for route registration.
type HandlerBundle struct {
	Issuer *utils.TokenIssuer

	Search          *SearchHandler
	HotelRatings    *RatingHandler
	ActivityRatings *RatingHandler

	HotelBookings     *BookingHandler[models.HotelBookingRequest]
	ActivityBookings  *BookingHandler[models.ActivityBookingRequest]
	CruiseBookings    *BookingHandler[models.CruiseBookingRequest]
	HolidayBookings   *BookingHandler[models.HolidayBookingRequest]
	InsuranceBookings *BookingHandler[models.InsuranceBookingRequest]

	Cruises         *InventoryHandler[models.CruisePackage]
	Holidays        *InventoryHandler[models.HolidayPackage]
	InsurancePlans  *InventoryHandler[models.InsurancePlan]
	InsuranceConfig *InsuranceConfigHandler

	Managers *ManagerHandler

	Health  gin.HandlerFunc
	Metrics http.Handler
}
