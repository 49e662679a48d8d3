package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travelhub/apperr"
	"travelhub/database"
	bookingRepo "travelhub/database/repository/booking"
	outboxRepo "travelhub/database/repository/outbox"
	"travelhub/models"
	"travelhub/obs"
	"travelhub/services/pagination"
	"travelhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Confirmation is what a supplier returned for a confirmed booking.
type Confirmation struct {
	Supplier models.SupplierConfirmation
	Price    map[string]interface{}
}

// Vertical describes how one product line is booked. R is the request and
// E the entity a request resolves to.
type Vertical[R, E any] struct {
	Name   string
	Prefix string
	// Check runs request rules that struct tags cannot express.
	Check func(req *R) error
	// Resolve looks up referenced entities and fails with ReferenceNotFound.
	Resolve func(ctx context.Context, req *R) (E, error)
	// Confirm runs the supplier form and finish steps. Nil for verticals
	// served from own inventory.
	Confirm func(ctx context.Context, req *R, entity E, partnerOrderID string) (*Confirmation, error)
	// Build maps the request onto a booking document.
	Build func(req *R, entity E) models.Booking
}

// EventPublisher hands committed outbox events to the task queue.
type EventPublisher interface {
	Publish(ctx context.Context, ev models.OutboxEvent) error
}

// Pipeline validates, resolves, confirms and persists bookings of one
// vertical. Identical requests produce distinct bookings.
type Pipeline[R, E any] struct {
	vertical  Vertical[R, E]
	bookings  bookingRepo.BookingRepository
	outbox    outboxRepo.OutboxRepository
	tx        database.TxManager
	publisher EventPublisher
	metrics   *obs.Metrics
	logger    *zap.Logger

	newOrderID func(prefix string) (string, error)
	now        func() time.Time
}

type Deps struct {
	Bookings  bookingRepo.BookingRepository
	Outbox    outboxRepo.OutboxRepository
	Tx        database.TxManager
	Publisher EventPublisher
	Metrics   *obs.Metrics
	Logger    *zap.Logger
}

func NewPipeline[R, E any](v Vertical[R, E], deps Deps) *Pipeline[R, E] {
	return &Pipeline[R, E]{
		vertical:   v,
		bookings:   deps.Bookings,
		outbox:     deps.Outbox,
		tx:         deps.Tx,
		publisher:  deps.Publisher,
		metrics:    deps.Metrics,
		logger:     deps.Logger.With(zap.String("vertical", v.Name)),
		newOrderID: utils.PartnerOrderID,
		now:        time.Now,
	}
}

func (p *Pipeline[R, E]) Name() string { return p.vertical.Name }

// Book runs the booking for principalID. On any failure nothing is persisted.
func (p *Pipeline[R, E]) Book(ctx context.Context, principalID string, req *R) (*models.Booking, error) {
	booking, err := p.book(ctx, principalID, req)
	if err != nil {
		p.observe(apperr.KindOf(err).String())
		return nil, err
	}
	p.observe("confirmed")
	return booking, nil
}

func (p *Pipeline[R, E]) book(ctx context.Context, principalID string, req *R) (*models.Booking, error) {
	// Validated
	if principalID == "" {
		return nil, apperr.New(apperr.KindUnauthorized, "authentication required")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if p.vertical.Check != nil {
		if err := p.vertical.Check(req); err != nil {
			return nil, err
		}
	}

	// EntityResolved
	entity, err := p.vertical.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	partnerOrderID, err := p.newOrderID(p.vertical.Prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate partner order id: %w", err)
	}

	// SupplierConfirmed
	var confirmation *Confirmation
	if p.vertical.Confirm != nil {
		confirmation, err = p.vertical.Confirm(ctx, req, entity, partnerOrderID)
		if err != nil {
			p.logger.Warn("Supplier confirmation failed",
				zap.String("partnerOrderId", partnerOrderID),
				zap.Error(err))
			return nil, err
		}
	}

	booking := p.vertical.Build(req, entity)
	booking.ID = uuid.New().String()
	booking.PartnerOrderID = partnerOrderID
	booking.Vertical = p.vertical.Name
	booking.UserID = principalID
	booking.Status = models.BookingStatusConfirmed
	booking.CreatedAt = p.now().UTC()
	if booking.Adults == 0 && booking.Children == 0 {
		booking.Adults, booking.Children = models.CountGuests(booking.Guests)
	}
	if confirmation != nil {
		sc := confirmation.Supplier
		booking.Supplier = &sc
		if confirmation.Price != nil {
			booking.Price = confirmation.Price
		}
	}

	event := models.OutboxEvent{
		ID:             uuid.New().String(),
		Type:           models.EventBookingConfirmed,
		Vertical:       p.vertical.Name,
		PartnerOrderID: partnerOrderID,
		UserID:         principalID,
		Email:          booking.Contact.Email,
		CreatedAt:      booking.CreatedAt,
	}

	// Persisted
	err = p.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := p.bookings.Create(ctx, &booking); err != nil {
			return err
		}
		return p.outbox.Insert(ctx, &event)
	})
	if err != nil {
		fields := []zap.Field{zap.String("partnerOrderId", partnerOrderID), zap.Error(err)}
		if booking.Supplier != nil {
			// The supplier already holds this order; it needs manual reconciliation.
			fields = append(fields,
				zap.String("supplier", booking.Supplier.Supplier),
				zap.String("supplierOrderId", booking.Supplier.OrderID),
				zap.String("supplierReference", booking.Supplier.Reference))
		}
		p.logger.Error("Booking transaction aborted", fields...)
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperr.Duplicate("booking already exists", err)
		}
		return nil, apperr.Persistence("failed to save booking", err)
	}

	p.logger.Info("Booking confirmed",
		zap.String("partnerOrderId", partnerOrderID),
		zap.String("referenceId", booking.ReferenceID),
		zap.String("userId", principalID))

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, event); err != nil {
			p.logger.Warn("Failed to publish booking event; relay will retry",
				zap.String("eventId", event.ID),
				zap.Error(err))
		}
	}
	return &booking, nil
}

// List pages through the principal's bookings, newest first.
func (p *Pipeline[R, E]) List(ctx context.Context, principalID string, page, pageSize int) (pagination.Page[models.Booking], error) {
	bookings, err := p.bookings.ListByUser(ctx, principalID)
	if err != nil {
		return pagination.Page[models.Booking]{}, apperr.Persistence("failed to load bookings", err)
	}
	return pagination.PaginateResults(bookings, page, pageSize)
}

// Get returns one of the principal's bookings. Bookings of other users are
// reported as not found.
func (p *Pipeline[R, E]) Get(ctx context.Context, principalID, partnerOrderID string) (*models.Booking, error) {
	booking, err := p.bookings.GetByPartnerOrderID(ctx, partnerOrderID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.ReferenceNotFound("booking %s not found", partnerOrderID)
	}
	if err != nil {
		return nil, apperr.Persistence("failed to load booking", err)
	}
	if booking.UserID != principalID {
		return nil, apperr.ReferenceNotFound("booking %s not found", partnerOrderID)
	}
	return booking, nil
}

func (p *Pipeline[R, E]) observe(outcome string) {
	if p.metrics != nil {
		p.metrics.IncBooking(p.vertical.Name, outcome)
	}
}
