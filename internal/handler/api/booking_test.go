//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lendshare/internal/domain/booking"
	"lendshare/internal/handler/api"
	"lendshare/internal/handler/middleware"
	"lendshare/internal/usecase"
	"lendshare/internal/usecase/readmodel"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBookingUseCase returns canned values; each field covers one method.
type stubBookingUseCase struct {
	addView     *readmodel.BookingView
	addErr      error
	approveView *readmodel.BookingView
	approveErr  error
	getView     *readmodel.BookingView
	getErr      error
	listViews   []*readmodel.BookingView
	listErr     error

	gotState string
	gotPage  *usecase.Page
}

func (s *stubBookingUseCase) Add(_ context.Context, _ usecase.AddBookingParams, _ uuid.UUID) (*readmodel.BookingView, error) {
	return s.addView, s.addErr
}

func (s *stubBookingUseCase) Approve(_ context.Context, _ uuid.UUID, _ bool, _ uuid.UUID) (*readmodel.BookingView, error) {
	return s.approveView, s.approveErr
}

func (s *stubBookingUseCase) Get(_ context.Context, _, _ uuid.UUID) (*readmodel.BookingView, error) {
	return s.getView, s.getErr
}

func (s *stubBookingUseCase) ListByBooker(_ context.Context, _ uuid.UUID, stateToken string, page *usecase.Page) ([]*readmodel.BookingView, error) {
	s.gotState = stateToken
	s.gotPage = page
	if s.listErr != nil {
		return nil, s.listErr
	}
	if _, err := booking.ParseStateFilter(stateToken); err != nil {
		return nil, err
	}
	return s.listViews, nil
}

func (s *stubBookingUseCase) ListByOwner(ctx context.Context, actorID uuid.UUID, stateToken string, page *usecase.Page) ([]*readmodel.BookingView, error) {
	return s.ListByBooker(ctx, actorID, stateToken, page)
}

func newBookingRouter(stub *stubBookingUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := api.NewBookingHandler(stub)

	group := engine.Group("/bookings")
	group.Use(middleware.RequireIdentity())
	group.POST("", handler.AddBooking)
	group.GET("", handler.GetBookerBookings)
	group.GET("/owner", handler.GetOwnerBookings)
	group.GET("/:bookingId", handler.GetBooking)
	group.PATCH("/:bookingId", handler.ApproveBooking)
	return engine
}

func performBookingRequest(t *testing.T, engine *gin.Engine, method, url string, body any, userID string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(middleware.SharerUserHeader, userID)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func sampleBookingView() *readmodel.BookingView {
	return &readmodel.BookingView{
		ID:     uuid.New(),
		Start:  time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC),
		Status: "WAITING",
		Booker: readmodel.UserRef{ID: uuid.New(), Name: "Booker"},
		Item:   readmodel.ItemRef{ID: uuid.New(), Name: "Drill", OwnerID: uuid.New()},
	}
}

func TestAddBookingEndpoint(t *testing.T) {
	userID := uuid.New().String()
	body := map[string]any{
		"itemId": uuid.New().String(),
		"start":  "2025-06-02T12:00:00Z",
		"end":    "2025-06-03T12:00:00Z",
	}

	t.Run("created", func(t *testing.T) {
		stub := &stubBookingUseCase{addView: sampleBookingView()}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodPost, "/bookings", body, userID)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"WAITING"`)
	})

	t.Run("missing identity header", func(t *testing.T) {
		stub := &stubBookingUseCase{addView: sampleBookingView()}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodPost, "/bookings", body, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed identity header", func(t *testing.T) {
		stub := &stubBookingUseCase{addView: sampleBookingView()}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodPost, "/bookings", body, "42")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("own item booking maps to 404", func(t *testing.T) {
		stub := &stubBookingUseCase{addErr: usecase.ErrOwnItemBooking}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodPost, "/bookings", body, userID)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unavailable item maps to 400", func(t *testing.T) {
		stub := &stubBookingUseCase{addErr: usecase.ErrItemUnavailable}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodPost, "/bookings", body, userID)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid period maps to 400", func(t *testing.T) {
		stub := &stubBookingUseCase{addErr: booking.ErrInvalidPeriod}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodPost, "/bookings", body, userID)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing body field maps to 400", func(t *testing.T) {
		stub := &stubBookingUseCase{addView: sampleBookingView()}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodPost, "/bookings", map[string]any{"itemId": uuid.New().String()}, userID)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestApproveBookingEndpoint(t *testing.T) {
	userID := uuid.New().String()
	bookingID := uuid.New().String()

	t.Run("approved", func(t *testing.T) {
		view := sampleBookingView()
		view.Status = "APPROVED"
		stub := &stubBookingUseCase{approveView: view}

		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodPatch, "/bookings/"+bookingID+"?approved=true", nil, userID)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"APPROVED"`)
	})

	t.Run("already resolved maps to 400", func(t *testing.T) {
		stub := &stubBookingUseCase{approveErr: booking.ErrNotWaiting}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodPatch, "/bookings/"+bookingID+"?approved=true", nil, userID)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-owner maps to 404", func(t *testing.T) {
		stub := &stubBookingUseCase{approveErr: usecase.ErrBookingNotFound}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodPatch, "/bookings/"+bookingID+"?approved=false", nil, userID)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing approved parameter maps to 400", func(t *testing.T) {
		stub := &stubBookingUseCase{approveView: sampleBookingView()}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodPatch, "/bookings/"+bookingID, nil, userID)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListBookingsEndpoint(t *testing.T) {
	userID := uuid.New().String()

	t.Run("state defaults to ALL", func(t *testing.T) {
		stub := &stubBookingUseCase{listViews: []*readmodel.BookingView{sampleBookingView()}}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodGet, "/bookings", nil, userID)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ALL", stub.gotState)
		assert.Nil(t, stub.gotPage)
	})

	t.Run("unknown state echoes the token", func(t *testing.T) {
		stub := &stubBookingUseCase{}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodGet, "/bookings?state=UNSUPPORTED_STATUS", nil, userID)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Unknown state: UNSUPPORTED_STATUS")
	})

	t.Run("pagination parameters are forwarded", func(t *testing.T) {
		stub := &stubBookingUseCase{listViews: []*readmodel.BookingView{}}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodGet, "/bookings/owner?state=PAST&from=2&size=5", nil, userID)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, stub.gotPage)
		assert.Equal(t, 2, stub.gotPage.From)
		assert.Equal(t, 5, stub.gotPage.Size)
		assert.Equal(t, "PAST", stub.gotState)
	})

	t.Run("negative offset maps to 400", func(t *testing.T) {
		stub := &stubBookingUseCase{}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodGet, "/bookings?from=-1&size=5", nil, userID)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("zero size maps to 400", func(t *testing.T) {
		stub := &stubBookingUseCase{}
		rec := performBookingRequest(t, newBookingRouter(stub), http.MethodGet, "/bookings?from=0&size=0", nil, userID)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
