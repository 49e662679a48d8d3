package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"travelhub/apperr"
	"travelhub/database"
	"travelhub/models"
	"travelhub/obs"
	"travelhub/services/supplier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// store backs the fake booking and outbox repositories so a fake
// transaction can roll both back together.
type store struct {
	mu       sync.Mutex
	bookings []models.Booking
	events   []models.OutboxEvent

	failBookingInsert error
	failEventInsert   error
	commitErr         error
}

type fakeBookings struct{ s *store }

func (f fakeBookings) Create(_ context.Context, b *models.Booking) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failBookingInsert != nil {
		return f.s.failBookingInsert
	}
	for _, existing := range f.s.bookings {
		if existing.PartnerOrderID == b.PartnerOrderID {
			return fmt.Errorf("insert: %w", database.ErrDuplicate)
		}
	}
	f.s.bookings = append(f.s.bookings, *b)
	return nil
}

func (f fakeBookings) GetByPartnerOrderID(_ context.Context, id string) (*models.Booking, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, b := range f.s.bookings {
		if b.PartnerOrderID == id {
			b := b
			return &b, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f fakeBookings) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Booking
	for i := len(f.s.bookings) - 1; i >= 0; i-- {
		if f.s.bookings[i].UserID == userID {
			out = append(out, f.s.bookings[i])
		}
	}
	return out, nil
}

func (f fakeBookings) EnsureIndexes(context.Context) error { return nil }

type fakeOutbox struct{ s *store }

func (f fakeOutbox) Insert(_ context.Context, ev *models.OutboxEvent) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failEventInsert != nil {
		return f.s.failEventInsert
	}
	f.s.events = append(f.s.events, *ev)
	return nil
}

func (f fakeOutbox) ListPending(context.Context, int64) ([]models.OutboxEvent, error) {
	return nil, nil
}
func (f fakeOutbox) MarkDispatched(context.Context, string) error    { return nil }
func (f fakeOutbox) IncrementAttempts(context.Context, string) error { return nil }
func (f fakeOutbox) EnsureIndexes(context.Context) error             { return nil }

type fakeTx struct{ s *store }

func (f fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.s.mu.Lock()
	bookings := append([]models.Booking(nil), f.s.bookings...)
	events := append([]models.OutboxEvent(nil), f.s.events...)
	f.s.mu.Unlock()

	err := fn(ctx)
	if err == nil && f.s.commitErr != nil {
		err = f.s.commitErr
	}
	if err != nil {
		f.s.mu.Lock()
		f.s.bookings, f.s.events = bookings, events
		f.s.mu.Unlock()
	}
	return err
}

type fakePublisher struct {
	published []models.OutboxEvent
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, ev models.OutboxEvent) error {
	f.published = append(f.published, ev)
	return f.err
}

type fakeEntities[T any] map[string]*T

func (f fakeEntities[T]) GetByID(_ context.Context, id string) (*T, error) {
	if e, ok := f[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("entity %s: %w", id, database.ErrNotFound)
}

type fakeConfig struct{ cfg *models.InsuranceConfig }

func (f fakeConfig) Get(context.Context) (*models.InsuranceConfig, error) {
	if f.cfg == nil {
		return nil, database.ErrNotFound
	}
	return f.cfg, nil
}

type fakeHotelBooker struct {
	formCalls, finishCalls int
	finishErr              error
	lastPartnerOrderID     string
	lastFinish             supplier.HotelFinishRequest
}

func (f *fakeHotelBooker) BookingForm(_ context.Context, partnerOrderID, _, _, _ string) (*supplier.HotelBookingForm, error) {
	f.formCalls++
	f.lastPartnerOrderID = partnerOrderID
	return &supplier.HotelBookingForm{
		OrderID:      9001,
		PaymentTypes: []map[string]interface{}{{"type": "deposit", "amount": "120.00", "currency_code": "USD"}},
	}, nil
}

func (f *fakeHotelBooker) BookingFinish(_ context.Context, req supplier.HotelFinishRequest) error {
	f.finishCalls++
	f.lastFinish = req
	return f.finishErr
}

type fakeActivityBooker struct {
	status string
}

func (f *fakeActivityBooker) Preconfirm(context.Context, supplier.ActivityBookingRequest) (*supplier.ActivityBooking, error) {
	return &supplier.ActivityBooking{Reference: "1-100", Status: "PRECONFIRMED"}, nil
}

func (f *fakeActivityBooker) Confirm(context.Context, supplier.ActivityBookingRequest) (*supplier.ActivityBooking, error) {
	if f.status != "CONFIRMED" {
		return nil, apperr.Upstream(200, "activity supplier: booking status \""+f.status+"\"")
	}
	return &supplier.ActivityBooking{Reference: "1-100", Status: f.status, TotalNet: 55, Currency: "EUR"}, nil
}

func deps(s *store, pub EventPublisher) Deps {
	return Deps{
		Bookings:  fakeBookings{s},
		Outbox:    fakeOutbox{s},
		Tx:        fakeTx{s},
		Publisher: pub,
		Metrics:   obs.NewNopMetrics(),
		Logger:    zap.NewNop(),
	}
}

func contact() models.Contact {
	return models.Contact{FirstName: "Amina", LastName: "Yusuf", Email: "amina@example.com", Phone: "+971500000000"}
}

func guests() []models.Guest {
	return []models.Guest{
		{FirstName: "Amina", LastName: "Yusuf", Type: "ADULT", Age: 34},
		{FirstName: "Omar", LastName: "Yusuf", Type: "CHILD", Age: 7},
	}
}

func holidayPackages() fakeEntities[models.HolidayPackage] {
	pkg := &models.HolidayPackage{
		Name: "Istanbul Heritage", Destination: "Istanbul", DurationDays: 5,
		Price: models.Money{Amount: 800, Currency: "USD"},
	}
	pkg.ID = "HOL-1"
	return fakeEntities[models.HolidayPackage]{"HOL-1": pkg}
}

func TestHolidayBooking_MissingPackageIsReferenceNotFound(t *testing.T) {
	s := &store{}
	p := NewPipeline(HolidayVertical(holidayPackages()), deps(s, nil))

	_, err := p.Book(context.Background(), "user-1", &models.HolidayBookingRequest{
		PackageID: "does-not-exist", StartDate: "2026-12-01", Contact: contact(), Guests: guests(),
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindReferenceNotFound))
	assert.Equal(t, 400, apperr.KindOf(err).HTTPStatus())
	assert.Empty(t, s.bookings)
	assert.Empty(t, s.events)
}

func TestHolidayBooking_PersistsBookingAndEvent(t *testing.T) {
	s := &store{}
	pub := &fakePublisher{}
	p := NewPipeline(HolidayVertical(holidayPackages()), deps(s, pub))

	booking, err := p.Book(context.Background(), "user-1", &models.HolidayBookingRequest{
		PackageID: "HOL-1", StartDate: "2026-12-01", Contact: contact(), Guests: guests(),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(booking.PartnerOrderID, PrefixHoliday))
	assert.Len(t, booking.PartnerOrderID, len(PrefixHoliday)+10)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, "HOL-1", booking.ReferenceID)
	assert.Equal(t, 1, booking.Adults)
	assert.Equal(t, 1, booking.Children)
	assert.Equal(t, 1600.0, booking.Price["amount"])
	assert.Equal(t, "2026-12-06", booking.Details["endDate"])

	require.Len(t, s.bookings, 1)
	require.Len(t, s.events, 1)
	assert.Equal(t, booking.PartnerOrderID, s.events[0].PartnerOrderID)
	require.Len(t, pub.published, 1)
	assert.Equal(t, models.EventBookingConfirmed, pub.published[0].Type)
}

func TestBooking_NoDeduplication(t *testing.T) {
	s := &store{}
	p := NewPipeline(HolidayVertical(holidayPackages()), deps(s, nil))
	req := &models.HolidayBookingRequest{PackageID: "HOL-1", StartDate: "2026-12-01", Contact: contact(), Guests: guests()}

	first, err := p.Book(context.Background(), "user-1", req)
	require.NoError(t, err)
	second, err := p.Book(context.Background(), "user-1", req)
	require.NoError(t, err)

	assert.NotEqual(t, first.PartnerOrderID, second.PartnerOrderID)
	assert.Len(t, s.bookings, 2)
}

func TestBooking_ValidationHasNoSideEffects(t *testing.T) {
	s := &store{}
	p := NewPipeline(HolidayVertical(holidayPackages()), deps(s, nil))

	bad := guests()
	bad[0].Type = "PET"
	_, err := p.Book(context.Background(), "user-1", &models.HolidayBookingRequest{
		PackageID: "HOL-1", StartDate: "2026-12-01", Contact: contact(), Guests: bad,
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = p.Book(context.Background(), "user-1", &models.HolidayBookingRequest{
		PackageID: "HOL-1", StartDate: "2026-12-01", Guests: guests(),
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Empty(t, s.bookings)
}

func TestBooking_RequiresPrincipal(t *testing.T) {
	p := NewPipeline(HolidayVertical(holidayPackages()), deps(&store{}, nil))
	_, err := p.Book(context.Background(), "", &models.HolidayBookingRequest{})
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestBooking_TransactionFailureRollsBack(t *testing.T) {
	s := &store{failEventInsert: errors.New("write conflict")}
	pub := &fakePublisher{}
	p := NewPipeline(HolidayVertical(holidayPackages()), deps(s, pub))

	_, err := p.Book(context.Background(), "user-1", &models.HolidayBookingRequest{
		PackageID: "HOL-1", StartDate: "2026-12-01", Contact: contact(), Guests: guests(),
	})
	assert.True(t, apperr.Is(err, apperr.KindPersistence))
	assert.Empty(t, s.bookings)
	assert.Empty(t, pub.published)
}

func TestBooking_CommitFailureIsPersistenceError(t *testing.T) {
	s := &store{commitErr: errors.New("transient transaction error")}
	p := NewPipeline(HolidayVertical(holidayPackages()), deps(s, nil))

	_, err := p.Book(context.Background(), "user-1", &models.HolidayBookingRequest{
		PackageID: "HOL-1", StartDate: "2026-12-01", Contact: contact(), Guests: guests(),
	})
	assert.True(t, apperr.Is(err, apperr.KindPersistence))
	assert.Empty(t, s.bookings)
}

func TestBooking_DuplicatePartnerOrderID(t *testing.T) {
	s := &store{}
	p := NewPipeline(HolidayVertical(holidayPackages()), deps(s, nil))
	p.newOrderID = func(prefix string) (string, error) { return prefix + "AAAAAAAAAA", nil }
	req := &models.HolidayBookingRequest{PackageID: "HOL-1", StartDate: "2026-12-01", Contact: contact(), Guests: guests()}

	_, err := p.Book(context.Background(), "user-1", req)
	require.NoError(t, err)
	_, err = p.Book(context.Background(), "user-1", req)
	assert.True(t, apperr.Is(err, apperr.KindDuplicate))
	assert.Len(t, s.bookings, 1)
	assert.Len(t, s.events, 1)
}

func TestBooking_PublishFailureDoesNotFailBooking(t *testing.T) {
	s := &store{}
	pub := &fakePublisher{err: errors.New("queue down")}
	p := NewPipeline(HolidayVertical(holidayPackages()), deps(s, pub))

	_, err := p.Book(context.Background(), "user-1", &models.HolidayBookingRequest{
		PackageID: "HOL-1", StartDate: "2026-12-01", Contact: contact(), Guests: guests(),
	})
	require.NoError(t, err)
	assert.Len(t, s.events, 1)
}

func hotelRequest() *models.HotelBookingRequest {
	return &models.HotelBookingRequest{
		HotelID: "test_hotel", BookHash: "h-1",
		Checkin: "2026-11-01", Checkout: "2026-11-03",
		Contact: contact(), Guests: guests(),
	}
}

func TestHotelBooking_ForwardsPartnerOrderIDAndGuests(t *testing.T) {
	s := &store{}
	hotels := &fakeHotelBooker{}
	p := NewPipeline(HotelVertical(hotels), deps(s, nil))

	booking, err := p.Book(context.Background(), "user-1", hotelRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(booking.PartnerOrderID, PrefixHotel))
	assert.Equal(t, booking.PartnerOrderID, hotels.lastPartnerOrderID)
	assert.Equal(t, booking.PartnerOrderID, hotels.lastFinish.PartnerOrderID)
	assert.Equal(t, "amina@example.com", hotels.lastFinish.Contact.Email)
	require.Len(t, hotels.lastFinish.Rooms, 1)
	assert.Len(t, hotels.lastFinish.Rooms[0].Guests, 2)
	require.NotNil(t, booking.Supplier)
	assert.Equal(t, "9001", booking.Supplier.OrderID)
	assert.Equal(t, "deposit", booking.Price["type"])
}

func TestHotelBooking_TransactionFailureLogsSupplierOrder(t *testing.T) {
	s := &store{failBookingInsert: errors.New("write conflict")}
	core, logs := observer.New(zap.ErrorLevel)
	d := deps(s, nil)
	d.Logger = zap.New(core)
	p := NewPipeline(HotelVertical(&fakeHotelBooker{}), d)

	_, err := p.Book(context.Background(), "user-1", hotelRequest())
	require.True(t, apperr.Is(err, apperr.KindPersistence))
	assert.Empty(t, s.bookings)

	entries := logs.FilterMessage("Booking transaction aborted").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "9001", fields["supplierOrderId"])
	assert.NotEmpty(t, fields["partnerOrderId"])
	assert.Contains(t, fields, "supplierReference")
}

func TestBooking_ListWithoutBookingsIsEmptyPage(t *testing.T) {
	p := NewPipeline(HolidayVertical(holidayPackages()), deps(&store{}, nil))

	page, err := p.List(context.Background(), "user-1", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalItems)

	_, err = p.List(context.Background(), "user-1", 2, 10)
	assert.True(t, apperr.Is(err, apperr.KindInvalidPage))
}

func TestHotelBooking_FinishFailureLeavesNoBooking(t *testing.T) {
	s := &store{}
	hotels := &fakeHotelBooker{finishErr: apperr.Upstream(200, "hotel supplier: booking_finish_failed")}
	p := NewPipeline(HotelVertical(hotels), deps(s, nil))

	booking, err := p.Book(context.Background(), "user-1", hotelRequest())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUpstream))
	assert.Nil(t, booking)
	assert.Equal(t, 1, hotels.formCalls)
	assert.Equal(t, 1, hotels.finishCalls)

	_, err = p.Get(context.Background(), "user-1", hotels.lastPartnerOrderID)
	assert.True(t, apperr.Is(err, apperr.KindReferenceNotFound))
	assert.Empty(t, s.bookings)
}

func TestHotelBooking_UnavailablePaymentType(t *testing.T) {
	hotels := &fakeHotelBooker{}
	p := NewPipeline(HotelVertical(hotels), deps(&store{}, nil))
	req := hotelRequest()
	req.PaymentType = "now"

	_, err := p.Book(context.Background(), "user-1", req)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Zero(t, hotels.finishCalls)
}

func TestActivityBooking_UnconfirmedStatusAborts(t *testing.T) {
	s := &store{}
	p := NewPipeline(ActivityVertical(&fakeActivityBooker{status: "CANCELLED"}), deps(s, nil))

	_, err := p.Book(context.Background(), "user-1", &models.ActivityBookingRequest{
		ActivityCode: "E-E10-PF2SHOW", RateKey: "rk", From: "2026-11-01", To: "2026-11-01",
		Contact: contact(), Guests: guests(),
	})
	assert.True(t, apperr.Is(err, apperr.KindUpstream))
	assert.Empty(t, s.bookings)
}

func TestActivityBooking_Confirmed(t *testing.T) {
	s := &store{}
	p := NewPipeline(ActivityVertical(&fakeActivityBooker{status: "CONFIRMED"}), deps(s, nil))

	booking, err := p.Book(context.Background(), "user-1", &models.ActivityBookingRequest{
		ActivityCode: "E-E10-PF2SHOW", RateKey: "rk", From: "2026-11-01", To: "2026-11-01",
		Contact: contact(), Guests: guests(),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(booking.PartnerOrderID, PrefixActivity))
	assert.Equal(t, "1-100", booking.Supplier.Reference)
}

func TestCruiseBooking_UnknownCabin(t *testing.T) {
	pkg := &models.CruisePackage{Name: "Gulf", Ship: "Aurora", Cabins: []models.Cabin{{Type: "balcony", Price: models.Money{Amount: 900, Currency: "USD"}, Capacity: 2}}}
	pkg.ID = "CR-1"
	p := NewPipeline(CruiseVertical(fakeEntities[models.CruisePackage]{"CR-1": pkg}), deps(&store{}, nil))

	_, err := p.Book(context.Background(), "user-1", &models.CruiseBookingRequest{
		PackageID: "CR-1", CabinType: "suite", Contact: contact(), Guests: guests(),
	})
	assert.True(t, apperr.Is(err, apperr.KindReferenceNotFound))

	booking, err := p.Book(context.Background(), "user-1", &models.CruiseBookingRequest{
		PackageID: "CR-1", CabinType: "balcony", Contact: contact(), Guests: guests(),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(booking.PartnerOrderID, PrefixCruise))
	assert.Equal(t, 1800.0, booking.Price["amount"])
}

func insuranceFixtures() (fakeEntities[models.InsurancePlan], fakeConfig) {
	plan := &models.InsurancePlan{
		Name: "Umrah Cover", PolicyType: "single-trip", Areas: []string{"middle-east"},
		Premiums:    []models.Premium{{AgeGroup: "18-64", Price: models.Money{Amount: 25, Currency: "USD"}}},
		MaxTripDays: 30,
	}
	plan.ID = "PLAN-1"
	cfg := &models.InsuranceConfig{
		PolicyTypes:    []string{"single-trip"},
		Areas:          []string{"middle-east"},
		Countries:      []models.Country{{Code: "SA", Name: "Saudi Arabia", Area: "middle-east"}},
		AgeGroups:      []models.AgeGroup{{Code: "18-64", MinAge: 18, MaxAge: 64}},
		TravellerTypes: []string{"individual", "family"},
	}
	return fakeEntities[models.InsurancePlan]{"PLAN-1": plan}, fakeConfig{cfg}
}

func insuranceRequest() *models.InsuranceBookingRequest {
	return &models.InsuranceBookingRequest{
		PlanID: "PLAN-1", TravellerType: "individual", AgeGroup: "18-64", Country: "SA",
		StartDate: "2026-12-01", EndDate: "2026-12-10",
		Contact:    contact(),
		Travellers: []models.Guest{{FirstName: "Amina", LastName: "Yusuf", Type: "ADULT", Age: 34}},
	}
}

func TestInsuranceBooking_ChecksMasterConfig(t *testing.T) {
	plans, cfg := insuranceFixtures()

	cases := map[string]func(r *models.InsuranceBookingRequest){
		"traveller type": func(r *models.InsuranceBookingRequest) { r.TravellerType = "group" },
		"age group":      func(r *models.InsuranceBookingRequest) { r.AgeGroup = "65-80" },
		"country":        func(r *models.InsuranceBookingRequest) { r.Country = "FR" },
		"plan":           func(r *models.InsuranceBookingRequest) { r.PlanID = "PLAN-X" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := &store{}
			p := NewPipeline(InsuranceVertical(plans, cfg), deps(s, nil))
			req := insuranceRequest()
			mutate(req)

			_, err := p.Book(context.Background(), "user-1", req)
			assert.True(t, apperr.Is(err, apperr.KindReferenceNotFound))
			assert.Empty(t, s.bookings)
		})
	}
}

func TestInsuranceBooking_Success(t *testing.T) {
	plans, cfg := insuranceFixtures()
	p := NewPipeline(InsuranceVertical(plans, cfg), deps(&store{}, nil))

	booking, err := p.Book(context.Background(), "user-1", insuranceRequest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(booking.PartnerOrderID, PrefixInsurance))
	assert.Equal(t, 10, booking.Details["days"])
	assert.Equal(t, 25.0, booking.Price["amount"])
}

func TestInsuranceBooking_TripTooLong(t *testing.T) {
	plans, cfg := insuranceFixtures()
	p := NewPipeline(InsuranceVertical(plans, cfg), deps(&store{}, nil))
	req := insuranceRequest()
	req.EndDate = "2027-02-01"

	_, err := p.Book(context.Background(), "user-1", req)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestGet_OtherUsersBookingIsNotFound(t *testing.T) {
	s := &store{}
	p := NewPipeline(HolidayVertical(holidayPackages()), deps(s, nil))
	booking, err := p.Book(context.Background(), "user-1", &models.HolidayBookingRequest{
		PackageID: "HOL-1", StartDate: "2026-12-01", Contact: contact(), Guests: guests(),
	})
	require.NoError(t, err)

	got, err := p.Get(context.Background(), "user-1", booking.PartnerOrderID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = p.Get(context.Background(), "user-2", booking.PartnerOrderID)
	assert.True(t, apperr.Is(err, apperr.KindReferenceNotFound))

	page, err := p.List(context.Background(), "user-1", 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}
