package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"travelhub/apperr"
	"travelhub/models"
	"travelhub/services/pagination"
	"travelhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func withPrincipal(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.PrincipalIDKey, id)
		c.Next()
	}
}

type fakeBooker struct {
	gotPrincipal string
	gotReq       *models.HotelBookingRequest
	err          error
	page         int
	size         int
}

func (f *fakeBooker) Name() string { return "hotel" }

func (f *fakeBooker) Book(_ context.Context, principalID string, req *models.HotelBookingRequest) (*models.Booking, error) {
	f.gotPrincipal, f.gotReq = principalID, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Booking{PartnerOrderID: "HFLABCDEFGHIJ", UserID: principalID}, nil
}

func (f *fakeBooker) List(_ context.Context, _ string, page, size int) (pagination.Page[models.Booking], error) {
	f.page, f.size = page, size
	return pagination.Paginate([]models.Booking{{PartnerOrderID: "HFL1"}}, page, size)
}

func (f *fakeBooker) Get(_ context.Context, _, id string) (*models.Booking, error) {
	return nil, apperr.ReferenceNotFound("booking %s not found", id)
}

func bookingRouter(f *fakeBooker) *gin.Engine {
	h := NewBookingHandler[models.HotelBookingRequest](f, func(c *gin.Context, req *models.HotelBookingRequest) {
		req.UserIP = "203.0.113.5"
	})
	r := gin.New()
	r.Use(withPrincipal("user-1"))
	r.POST("/hotel/book", h.Book)
	r.GET("/hotel/bookings", h.List)
	r.GET("/hotel/bookings/:partnerOrderId", h.Get)
	return r
}

func TestBookingHandler_Book(t *testing.T) {
	f := &fakeBooker{}
	w := httptest.NewRecorder()
	body := `{"hotelId":"h1","bookHash":"bh","checkin":"2026-01-10","checkout":"2026-01-12"}`
	bookingRouter(f).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/hotel/book", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "hotel booked successfully", env.Message)
	assert.Equal(t, "user-1", f.gotPrincipal)
	assert.Equal(t, "203.0.113.5", f.gotReq.UserIP)
	assert.Equal(t, "bh", f.gotReq.BookHash)
}

func TestBookingHandler_ErrorEnvelope(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
		msg    string
	}{
		{"reference", apperr.ReferenceNotFound("package %s not found", "p1"), http.StatusBadRequest, "reference_not_found", "package p1 not found"},
		{"upstream", apperr.Upstream(500, "supplier unavailable"), http.StatusBadGateway, "upstream_error", "supplier unavailable"},
		{"duplicate", apperr.Duplicate("booking already exists", errors.New("E11000")), http.StatusConflict, "duplicate_entity", "booking already exists"},
		{"raw", errors.New("mongo: connection refused"), http.StatusInternalServerError, "internal_error", "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			bookingRouter(&fakeBooker{err: tc.err}).ServeHTTP(w,
				httptest.NewRequest(http.MethodPost, "/hotel/book", bytes.NewBufferString(`{}`)))

			assert.Equal(t, tc.status, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tc.kind, env.Error)
			assert.Equal(t, tc.msg, env.Message)
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestBookingHandler_MalformedBody(t *testing.T) {
	f := &fakeBooker{}
	w := httptest.NewRecorder()
	bookingRouter(f).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/hotel/book", bytes.NewBufferString(`{"hotelId":`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, f.gotReq)
}

func TestBookingHandler_TypeMismatchHidesDecoderText(t *testing.T) {
	f := &fakeBooker{}
	w := httptest.NewRecorder()
	bookingRouter(f).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/hotel/book", bytes.NewBufferString(`{"guests":"x"}`)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, "validation_error", env.Error)
	assert.Equal(t, "invalid request body", env.Message)
	assert.NotContains(t, w.Body.String(), "Go struct field")
	assert.NotContains(t, w.Body.String(), "models.Guest")
	assert.Nil(t, f.gotReq)
}

func TestBindQuery_HidesBindingText(t *testing.T) {
	r := gin.New()
	r.GET("/filter", func(c *gin.Context) {
		var filter models.SearchFilter
		if err := bindQuery(c, &filter); err != nil {
			utils.RespondError(c, getLogger(c), err)
			return
		}
		utils.Respond(c, http.StatusOK, "ok", filter)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/filter?searchId=s1&page=abc", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, "invalid query", env.Message)
	assert.NotContains(t, w.Body.String(), "strconv")
}

func TestBookingHandler_ListPaging(t *testing.T) {
	f := &fakeBooker{}
	w := httptest.NewRecorder()
	bookingRouter(f).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hotel/bookings?pageSize=500", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, utils.DefaultPage, f.page)
	assert.Equal(t, utils.MaxPageSize, f.size)

	w = httptest.NewRecorder()
	bookingRouter(f).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hotel/bookings?page=x", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	bookingRouter(f).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hotel/bookings?page=9", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_page", decode(t, w).Error)
}

type fakeInventory struct {
	uploaded []byte
}

func (f *fakeInventory) Create(_ context.Context, item *models.CruisePackage) (*models.CruisePackage, error) {
	item.ID = "c1"
	return item, nil
}

func (f *fakeInventory) Update(_ context.Context, id string, item *models.CruisePackage) (*models.CruisePackage, error) {
	item.ID = id
	return item, nil
}

func (f *fakeInventory) Delete(context.Context, string) error { return nil }

func (f *fakeInventory) Get(_ context.Context, id string) (*models.CruisePackage, error) {
	return nil, apperr.ReferenceNotFound("cruise %s not found", id)
}

func (f *fakeInventory) List(_ context.Context, _ string, page, size int) (pagination.Page[models.CruisePackage], error) {
	return pagination.Paginate([]models.CruisePackage{{Name: "Red Sea"}}, page, size)
}

func (f *fakeInventory) AddImage(_ context.Context, id string, file io.Reader) (string, error) {
	b, err := io.ReadAll(file)
	f.uploaded = b
	return "https://res.cloudinary.com/demo/cruise/" + id + ".jpg", err
}

func TestInventoryHandler_UploadImage(t *testing.T) {
	f := &fakeInventory{}
	h := NewInventoryHandler[models.CruisePackage]("cruise", f)
	r := gin.New()
	r.POST("/cruise/admin/:id/images", h.UploadImage)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "deck.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/cruise/admin/c1/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "jpeg-bytes", string(f.uploaded))
	assert.Contains(t, string(decode(t, w).Data), "c1.jpg")
}

func TestInventoryHandler_UploadWithoutFile(t *testing.T) {
	h := NewInventoryHandler[models.CruisePackage]("cruise", &fakeInventory{})
	r := gin.New()
	r.POST("/cruise/admin/:id/images", h.UploadImage)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cruise/admin/c1/images", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInventoryHandler_GetUnknown(t *testing.T) {
	h := NewInventoryHandler[models.CruisePackage]("cruise", &fakeInventory{})
	r := gin.New()
	r.GET("/cruise/:id", h.Get)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cruise/nope", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cruise nope not found", decode(t, w).Message)
}

func TestHealth(t *testing.T) {
	r := gin.New()
	r.GET("/health", Health(utils.NewHealthMonitor(nil, nil)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
