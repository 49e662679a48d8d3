package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travelhub/apperr"
	"travelhub/database"
	"travelhub/models"
	"travelhub/services/supplier"
)

const (
	PrefixHotel     = "HFL"
	PrefixCruise    = "CR"
	PrefixInsurance = "INS"
	PrefixHoliday   = "HD"
	PrefixActivity  = "ACT"
)

// EntityReader is the read side of an inventory repository.
type EntityReader[T any] interface {
	GetByID(ctx context.Context, id string) (*T, error)
}

// InsuranceConfigReader returns the insurance master config.
type InsuranceConfigReader interface {
	Get(ctx context.Context) (*models.InsuranceConfig, error)
}

type HotelBooker interface {
	BookingForm(ctx context.Context, partnerOrderID, bookHash, language, userIP string) (*supplier.HotelBookingForm, error)
	BookingFinish(ctx context.Context, req supplier.HotelFinishRequest) error
}

type ActivityBooker interface {
	Preconfirm(ctx context.Context, req supplier.ActivityBookingRequest) (*supplier.ActivityBooking, error)
	Confirm(ctx context.Context, req supplier.ActivityBookingRequest) (*supplier.ActivityBooking, error)
}

// lookup resolves id through repo, mapping a missing document to ReferenceNotFound.
func lookup[T any](ctx context.Context, repo EntityReader[T], kind, id string) (*T, error) {
	entity, err := repo.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.ReferenceNotFound("%s %s not found", kind, id)
	}
	if err != nil {
		return nil, apperr.Persistence(fmt.Sprintf("failed to load %s", kind), err)
	}
	return entity, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperr.Validation(fmt.Sprintf("%s must match 2006-01-02", field))
	}
	return t, nil
}

func total(m models.Money, units int) map[string]interface{} {
	return map[string]interface{}{
		"unitAmount": m.Amount,
		"units":      units,
		"amount":     m.Amount * float64(units),
		"currency":   m.Currency,
	}
}

// HotelVertical books supplier rates through the form and finish steps.
func HotelVertical(hotels HotelBooker) Vertical[models.HotelBookingRequest, struct{}] {
	return Vertical[models.HotelBookingRequest, struct{}]{
		Name:   models.VerticalHotel,
		Prefix: PrefixHotel,
		Check: func(req *models.HotelBookingRequest) error {
			if req.Checkout <= req.Checkin {
				return apperr.Validation("checkout must be after checkin")
			}
			return nil
		},
		Resolve: func(context.Context, *models.HotelBookingRequest) (struct{}, error) {
			return struct{}{}, nil
		},
		Confirm: func(ctx context.Context, req *models.HotelBookingRequest, _ struct{}, partnerOrderID string) (*Confirmation, error) {
			language := req.Language
			if language == "" {
				language = "en"
			}
			form, err := hotels.BookingForm(ctx, partnerOrderID, req.BookHash, language, req.UserIP)
			if err != nil {
				return nil, err
			}
			paymentType, err := choosePaymentType(form.PaymentTypes, req.PaymentType)
			if err != nil {
				return nil, err
			}

			err = hotels.BookingFinish(ctx, supplier.HotelFinishRequest{
				PartnerOrderID: partnerOrderID,
				Language:       language,
				Contact:        req.Contact,
				Rooms:          hotelRooms(req.Guests),
				PaymentType:    paymentType,
				UpsellData:     form.UpsellData,
			})
			if err != nil {
				return nil, err
			}

			return &Confirmation{
				Supplier: models.SupplierConfirmation{
					Supplier: models.VerticalHotel,
					OrderID:  fmt.Sprintf("%d", form.OrderID),
					Status:   "ok",
				},
				Price: paymentType,
			}, nil
		},
		Build: func(req *models.HotelBookingRequest, _ struct{}) models.Booking {
			return models.Booking{
				ReferenceID: req.BookHash,
				Contact:     req.Contact,
				Guests:      req.Guests,
				Payment:     req.Payment,
				Details: map[string]interface{}{
					"hotelId":  req.HotelID,
					"checkin":  req.Checkin,
					"checkout": req.Checkout,
				},
			}
		},
	}
}

// choosePaymentType picks the form's payment type matching want, or the
// first offered when want is empty.
func choosePaymentType(offered []map[string]interface{}, want string) (map[string]interface{}, error) {
	if len(offered) == 0 {
		return nil, apperr.Upstream(0, "hotel supplier offered no payment types")
	}
	if want == "" {
		return offered[0], nil
	}
	for _, pt := range offered {
		if t, _ := pt["type"].(string); t == want {
			return pt, nil
		}
	}
	return nil, apperr.Validation(fmt.Sprintf("payment type %q is not available for this rate", want))
}

// hotelRooms groups guests by their room number.
func hotelRooms(guests []models.Guest) []supplier.HotelFinishRoom {
	var rooms []supplier.HotelFinishRoom
	index := map[int]int{}
	for _, g := range guests {
		i, ok := index[g.Room]
		if !ok {
			i = len(rooms)
			index[g.Room] = i
			rooms = append(rooms, supplier.HotelFinishRoom{})
		}
		guest := supplier.HotelFinishGuest{FirstName: g.FirstName, LastName: g.LastName}
		if g.Type == "CHILD" {
			guest.IsChild = true
			guest.Age = g.Age
		}
		rooms[i].Guests = append(rooms[i].Guests, guest)
	}
	return rooms
}

// ActivityVertical books activity rate keys through preconfirm and confirm.
func ActivityVertical(activities ActivityBooker) Vertical[models.ActivityBookingRequest, struct{}] {
	return Vertical[models.ActivityBookingRequest, struct{}]{
		Name:   models.VerticalActivity,
		Prefix: PrefixActivity,
		Check: func(req *models.ActivityBookingRequest) error {
			if req.To < req.From {
				return apperr.Validation("to must not be before from")
			}
			return nil
		},
		Resolve: func(context.Context, *models.ActivityBookingRequest) (struct{}, error) {
			return struct{}{}, nil
		},
		Confirm: func(ctx context.Context, req *models.ActivityBookingRequest, _ struct{}, partnerOrderID string) (*Confirmation, error) {
			supplierReq := supplier.ActivityBookingRequest{
				ClientReference: partnerOrderID,
				Language:        req.Language,
				RateKey:         req.RateKey,
				From:            req.From,
				To:              req.To,
				Holder:          req.Contact,
				Guests:          req.Guests,
			}
			if _, err := activities.Preconfirm(ctx, supplierReq); err != nil {
				return nil, err
			}
			confirmed, err := activities.Confirm(ctx, supplierReq)
			if err != nil {
				return nil, err
			}
			return &Confirmation{
				Supplier: models.SupplierConfirmation{
					Supplier:  models.VerticalActivity,
					Reference: confirmed.Reference,
					Status:    confirmed.Status,
				},
				Price: map[string]interface{}{
					"amount":   confirmed.TotalNet,
					"currency": confirmed.Currency,
				},
			}, nil
		},
		Build: func(req *models.ActivityBookingRequest, _ struct{}) models.Booking {
			return models.Booking{
				ReferenceID: req.RateKey,
				Contact:     req.Contact,
				Guests:      req.Guests,
				Payment:     req.Payment,
				Details: map[string]interface{}{
					"activityCode": req.ActivityCode,
					"from":         req.From,
					"to":           req.To,
				},
			}
		},
	}
}

// CruiseVertical books a stored cruise package.
func CruiseVertical(packages EntityReader[models.CruisePackage]) Vertical[models.CruiseBookingRequest, *models.CruisePackage] {
	return Vertical[models.CruiseBookingRequest, *models.CruisePackage]{
		Name:   models.VerticalCruise,
		Prefix: PrefixCruise,
		Resolve: func(ctx context.Context, req *models.CruiseBookingRequest) (*models.CruisePackage, error) {
			pkg, err := lookup(ctx, packages, "cruise package", req.PackageID)
			if err != nil {
				return nil, err
			}
			if req.CabinType != "" && !pkg.HasCabin(req.CabinType) {
				return nil, apperr.ReferenceNotFound("cabin type %s not offered on cruise %s", req.CabinType, req.PackageID)
			}
			return pkg, nil
		},
		Build: func(req *models.CruiseBookingRequest, pkg *models.CruisePackage) models.Booking {
			price := pkg.Price
			for _, c := range pkg.Cabins {
				if c.Type == req.CabinType {
					price = c.Price
				}
			}
			return models.Booking{
				ReferenceID: pkg.ID,
				Contact:     req.Contact,
				Guests:      req.Guests,
				Payment:     req.Payment,
				Price:       total(price, len(req.Guests)),
				Details: map[string]interface{}{
					"name":          pkg.Name,
					"ship":          pkg.Ship,
					"departureDate": pkg.DepartureDate,
					"nights":        pkg.Nights,
					"cabinType":     req.CabinType,
				},
			}
		},
	}
}

// HolidayVertical books a stored holiday package.
func HolidayVertical(packages EntityReader[models.HolidayPackage]) Vertical[models.HolidayBookingRequest, *models.HolidayPackage] {
	return Vertical[models.HolidayBookingRequest, *models.HolidayPackage]{
		Name:   models.VerticalHoliday,
		Prefix: PrefixHoliday,
		Resolve: func(ctx context.Context, req *models.HolidayBookingRequest) (*models.HolidayPackage, error) {
			return lookup(ctx, packages, "holiday package", req.PackageID)
		},
		Build: func(req *models.HolidayBookingRequest, pkg *models.HolidayPackage) models.Booking {
			details := map[string]interface{}{
				"name":         pkg.Name,
				"destination":  pkg.Destination,
				"startDate":    req.StartDate,
				"durationDays": pkg.DurationDays,
			}
			if start, err := time.Parse("2006-01-02", req.StartDate); err == nil {
				details["endDate"] = start.AddDate(0, 0, pkg.DurationDays).Format("2006-01-02")
			}
			return models.Booking{
				ReferenceID: pkg.ID,
				Contact:     req.Contact,
				Guests:      req.Guests,
				Payment:     req.Payment,
				Price:       total(pkg.Price, len(req.Guests)),
				Details:     details,
			}
		},
	}
}

// InsuranceQuote is what an insurance request resolves to.
type InsuranceQuote struct {
	plan    *models.InsurancePlan
	premium models.Money
	country models.Country
	days    int
}

// InsuranceVertical sells a policy after checking the request against the
// master config and the plan.
func InsuranceVertical(plans EntityReader[models.InsurancePlan], configs InsuranceConfigReader) Vertical[models.InsuranceBookingRequest, InsuranceQuote] {
	return Vertical[models.InsuranceBookingRequest, InsuranceQuote]{
		Name:   models.VerticalInsurance,
		Prefix: PrefixInsurance,
		Check: func(req *models.InsuranceBookingRequest) error {
			if req.EndDate < req.StartDate {
				return apperr.Validation("endDate must not be before startDate")
			}
			return nil
		},
		Resolve: func(ctx context.Context, req *models.InsuranceBookingRequest) (InsuranceQuote, error) {
			cfg, err := configs.Get(ctx)
			if errors.Is(err, database.ErrNotFound) {
				return InsuranceQuote{}, apperr.ReferenceNotFound("insurance configuration has not been set up")
			}
			if err != nil {
				return InsuranceQuote{}, apperr.Persistence("failed to load insurance configuration", err)
			}
			if !cfg.HasTravellerType(req.TravellerType) {
				return InsuranceQuote{}, apperr.ReferenceNotFound("traveller type %s not found", req.TravellerType)
			}
			if _, ok := cfg.AgeGroup(req.AgeGroup); !ok {
				return InsuranceQuote{}, apperr.ReferenceNotFound("age group %s not found", req.AgeGroup)
			}
			country, ok := cfg.Country(req.Country)
			if !ok {
				return InsuranceQuote{}, apperr.ReferenceNotFound("country %s not found", req.Country)
			}

			plan, err := lookup(ctx, plans, "insurance plan", req.PlanID)
			if err != nil {
				return InsuranceQuote{}, err
			}
			premium, ok := plan.PremiumFor(req.AgeGroup)
			if !ok {
				return InsuranceQuote{}, apperr.ReferenceNotFound("plan %s has no premium for age group %s", plan.ID, req.AgeGroup)
			}
			if country.Area != "" && !containsString(plan.Areas, country.Area) {
				return InsuranceQuote{}, apperr.ReferenceNotFound("plan %s does not cover %s", plan.ID, country.Name)
			}

			start, err := parseDate("startDate", req.StartDate)
			if err != nil {
				return InsuranceQuote{}, err
			}
			end, err := parseDate("endDate", req.EndDate)
			if err != nil {
				return InsuranceQuote{}, err
			}
			days := int(end.Sub(start).Hours()/24) + 1
			if plan.MaxTripDays > 0 && days > plan.MaxTripDays {
				return InsuranceQuote{}, apperr.Validation(fmt.Sprintf("trip of %d days exceeds the plan maximum of %d", days, plan.MaxTripDays))
			}
			return InsuranceQuote{plan: plan, premium: premium, country: country, days: days}, nil
		},
		Build: func(req *models.InsuranceBookingRequest, q InsuranceQuote) models.Booking {
			return models.Booking{
				ReferenceID: q.plan.ID,
				Contact:     req.Contact,
				Guests:      req.Travellers,
				Payment:     req.Payment,
				Price:       total(q.premium, len(req.Travellers)),
				Details: map[string]interface{}{
					"planName":      q.plan.Name,
					"policyType":    q.plan.PolicyType,
					"travellerType": req.TravellerType,
					"ageGroup":      req.AgeGroup,
					"country":       q.country.Code,
					"area":          q.country.Area,
					"startDate":     req.StartDate,
					"endDate":       req.EndDate,
					"days":          q.days,
				},
			}
		},
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
