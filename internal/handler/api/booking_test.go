//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"lendkit/internal/handler/api"
	"lendkit/internal/handler/middleware"
	"lendkit/internal/pkg/errs"
	"lendkit/internal/usecase/queries"
	"lendkit/tests/common/builder"
	"lendkit/tests/common/httptest"
	"lendkit/tests/common/testutil"
	commandsmock "lendkit/tests/mock/commands"
	queriesmock "lendkit/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	identity := middleware.RequireUser()

	s.router.POST("/bookings", identity, s.handler.Create)
	s.router.GET("/bookings", identity, s.handler.ListForBooker)
	s.router.GET("/bookings/owner", identity, s.handler.ListForOwner)
	s.router.GET("/bookings/:bookingId", identity, s.handler.Get)
	s.router.PATCH("/bookings/:bookingId", identity, s.handler.Resolve)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildView()

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), b.BookerID, gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, b.BookerID)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID.String(), body["id"])
		s.Equal("WAITING", body["status"])
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		missing := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: item_id (required)", mutate: testutil.Field("item_id", nil)},
			{name: "missing field: start (required)", mutate: testutil.Field("start", nil)},
			{name: "missing field: end (required)", mutate: testutil.Field("end", nil)},
			{name: "malformed start timestamp", mutate: testutil.Field("start", "not-a-time")},
		}

		for _, tc := range missing {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, b.BookerID)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 400 Bad Request when the booking starts in the past", func() {
		pastBody := builder.NewBookingBuilder().
			WithPeriod(time.Now().Add(-48*time.Hour), time.Now().Add(-24*time.Hour)).
			BuildCreateRequestDTO()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, pastBody, b.BookerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "must not start in the past")
	})

	s.Run("error: 400 Bad Request without identity header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, uuid.Nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "booker does not exist",
				commandsError:  errs.ErrUserNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "User not found",
			},
			{
				name:           "item does not exist",
				commandsError:  errs.ErrItemNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Item not found",
			},
			{
				name:           "own item is reported as absent",
				commandsError:  errs.ErrSelfBooking,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Item not found",
			},
			{
				name:           "item unavailable",
				commandsError:  errs.ErrItemUnavailable,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "not available",
			},
			{
				name:           "invalid period",
				commandsError:  errs.ErrInvalidPeriod,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid booking period",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), b.BookerID, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, b.BookerID)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestResolve
// ================================================================================

func (s *BookingHandlerTestSuite) TestResolve() {
	b := builder.NewBookingBuilder()
	url := "/bookings/" + b.ID.String()

	s.Run("success: approval returns the updated booking", func() {
		s.mockCommands.EXPECT().Resolve(gomock.Any(), b.ItemOwnerID, b.ID, true).
			Return(b.AsApproved().BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=true", nil, b.ItemOwnerID)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("APPROVED", body["status"])
	})

	s.Run("success: rejection returns the updated booking", func() {
		s.mockCommands.EXPECT().Resolve(gomock.Any(), b.ItemOwnerID, b.ID, false).
			Return(b.AsRejected().BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=false", nil, b.ItemOwnerID)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("REJECTED", body["status"])
	})

	s.Run("error: 400 Bad Request without approved parameter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, b.ItemOwnerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid approved parameter")
	})

	s.Run("error: 400 Bad Request for malformed booking id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/not-a-uuid?approved=true", nil, b.ItemOwnerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "non-owner is told nothing exists",
				commandsError:  errs.ErrNotAuthorized,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Booking not found",
			},
			{
				name:           "missing booking",
				commandsError:  errs.ErrBookingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Booking not found",
			},
			{
				name:           "repeated decision",
				commandsError:  errs.ErrSameStatusTransition,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "already has this status",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Resolve(gomock.Any(), b.ItemOwnerID, b.ID, true).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=true", nil, b.ItemOwnerID)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	b := builder.NewBookingBuilder()
	url := "/bookings/" + b.ID.String()

	s.Run("success: returns the booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.BookerID, b.ID).
			Return(b.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, b.BookerID)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(b.ID.String(), body["id"])
	})

	s.Run("error: unrelated actor gets 404", func() {
		stranger := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), stranger, b.ID).
			Return(nil, errs.ErrNotAuthorized).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, stranger)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	b := builder.NewBookingBuilder()

	s.Run("success: state defaults to ALL", func() {
		s.mockQueries.EXPECT().ListForBooker(gomock.Any(), b.BookerID, "ALL", gomock.Any()).
			Return([]*queries.BookingView{b.BuildView()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, b.BookerID)

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("success: state and pagination are passed through", func() {
		s.mockQueries.EXPECT().ListForOwner(gomock.Any(), b.ItemOwnerID, "WAITING", queries.Page{From: 10, Size: 5}).
			Return([]*queries.BookingView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/owner?state=WAITING&from=10&size=5", nil, b.ItemOwnerID)

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body)
	})

	s.Run("error: unknown state is a 400", func() {
		s.mockQueries.EXPECT().ListForBooker(gomock.Any(), b.BookerID, "SOMETIME", gomock.Any()).
			Return(nil, errs.ErrUnknownState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?state=SOMETIME", nil, b.BookerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unknown state")
	})

	s.Run("error: negative offset is a 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?from=-1", nil, b.BookerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid pagination")
	})
}
