//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/handler/api"
	resdto "notify-dispatch/internal/handler/dto/response"
	"notify-dispatch/internal/usecase/commands"
	"notify-dispatch/internal/usecase/queries"
	"notify-dispatch/tests/common/builder"
	"notify-dispatch/tests/common/httptest"
	"notify-dispatch/tests/common/testutil"
	commandsmock "notify-dispatch/tests/mock/commands"
	queriesmock "notify-dispatch/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type NotificationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockNotificationCommands
	mockQueries  *queriesmock.MockNotificationQueries
	handler      *api.NotificationHandler
	tenantID     uuid.UUID
}

func (s *NotificationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockNotificationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockNotificationQueries(s.mockCtrl)
	s.handler = api.NewNotificationHandler(s.mockCommands, s.mockQueries)
	s.tenantID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("tenant_id", s.tenantID)
		c.Set("service_origin", "orders")
		c.Next()
	}

	s.router.POST("/notifications", authMiddleware, s.handler.Send)
	s.router.GET("/notifications", authMiddleware, s.handler.List)
	s.router.GET("/notifications/dead-letters", authMiddleware, s.handler.DeadLetters)
	s.router.GET("/notifications/:id", authMiddleware, s.handler.Get)
	s.router.DELETE("/notifications/:id", authMiddleware, s.handler.Cancel)
	s.router.POST("/notifications/:id/requeue", authMiddleware, s.handler.Requeue)
}

func (s *NotificationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestNotificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(NotificationHandlerTestSuite))
}

type testCaseNotification struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestSend
// ================================================================================

func (s *NotificationHandlerTestSuite) TestSend() {
	url := "/notifications"

	reqBody := builder.NewIntentBuilder().BuildSendRequestDTO()

	s.Run("success: returns 202 Accepted when queued for a lane", func() {
		view := builder.NewIntentBuilder().WithTenantID(s.tenantID).BuildView(notification.LaneStandard, notification.StatusQueued)
		s.mockCommands.EXPECT().Dispatch(gomock.Any(), reqBody, s.tenantID, "orders").
			Return(&commands.DispatchResult{Notification: view, Outcome: commands.OutcomeQueued}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.DispatchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusAccepted, &response)
		s.Equal("queued", response.Outcome)
		s.Equal(view.ID, response.Notification.ID)
	})

	s.Run("success: returns 200 OK when delivered synchronously", func() {
		view := builder.NewIntentBuilder().WithTenantID(s.tenantID).BuildView(notification.LaneSync, notification.StatusSent)
		s.mockCommands.EXPECT().Dispatch(gomock.Any(), reqBody, s.tenantID, "orders").
			Return(&commands.DispatchResult{Notification: view, Outcome: commands.OutcomeSent}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.DispatchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("sent", response.Outcome)
		s.Equal("sent", response.Notification.Status)
	})

	s.Run("success: replayed correlation key returns 200 with the prior record", func() {
		view := builder.NewIntentBuilder().WithTenantID(s.tenantID).BuildView(notification.LaneStandard, notification.StatusSent)
		s.mockCommands.EXPECT().Dispatch(gomock.Any(), reqBody, s.tenantID, "orders").
			Return(&commands.DispatchResult{Notification: view, Outcome: commands.OutcomeSent, Replayed: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.DispatchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Replayed)
	})

	s.Run("success: budget warning is surfaced in the body", func() {
		view := builder.NewIntentBuilder().WithTenantID(s.tenantID).BuildView(notification.LaneStandard, notification.StatusQueued)
		s.mockCommands.EXPECT().Dispatch(gomock.Any(), reqBody, s.tenantID, "orders").
			Return(&commands.DispatchResult{Notification: view, Outcome: commands.OutcomeQueued, BudgetWarning: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.DispatchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusAccepted, &response)
		s.True(response.BudgetWarning)
	})

	s.Run("success: override_quota is stripped when the caller lacks the admin scope", func() {
		overrideReq := builder.NewIntentBuilder().WithQuotaOverride().BuildSendRequestDTO()
		sanitized := overrideReq
		sanitized.OverrideQuota = false

		view := builder.NewIntentBuilder().WithTenantID(s.tenantID).BuildView(notification.LaneStandard, notification.StatusQueued)
		s.mockCommands.EXPECT().Dispatch(gomock.Any(), sanitized, s.tenantID, "orders").
			Return(&commands.DispatchResult{Notification: view, Outcome: commands.OutcomeQueued}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, overrideReq, "bearer-token")

		var response resdto.DispatchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusAccepted, &response)
		s.Equal("queued", response.Outcome)
	})

	s.Run("error: 429 Too Many Requests with Retry-After on quota denial", func() {
		view := builder.NewIntentBuilder().WithTenantID(s.tenantID).BuildView(notification.LaneStandard, notification.StatusFailed)
		s.mockCommands.EXPECT().Dispatch(gomock.Any(), reqBody, s.tenantID, "orders").
			Return(&commands.DispatchResult{
				Notification: view,
				Outcome:      commands.OutcomeDeniedQuota,
				RetryAfter:   30 * time.Second,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusTooManyRequests, rec.Code)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": "30"})

		var response resdto.DispatchResponse
		s.NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &response))
		s.Equal("denied_quota", response.Outcome)
	})

	s.Run("error: 402 Payment Required on budget denial", func() {
		view := builder.NewIntentBuilder().WithTenantID(s.tenantID).BuildView(notification.LaneStandard, notification.StatusFailed)
		s.mockCommands.EXPECT().Dispatch(gomock.Any(), reqBody, s.tenantID, "orders").
			Return(&commands.DispatchResult{Notification: view, Outcome: commands.OutcomeDeniedBudget}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusPaymentRequired, rec.Code)
	})

	s.Run("error: 502 Bad Gateway when a synchronous send fails", func() {
		view := builder.NewIntentBuilder().WithTenantID(s.tenantID).BuildView(notification.LaneSync, notification.StatusFailed)
		s.mockCommands.EXPECT().Dispatch(gomock.Any(), reqBody, s.tenantID, "orders").
			Return(&commands.DispatchResult{Notification: view, Outcome: commands.OutcomeFailed}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusBadGateway, rec.Code)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []testCaseNotification{
			{name: "missing field: channel (required)", mutate: testutil.Field("channel", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: recipient (required)", mutate: testutil.Field("recipient", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: body (required)", mutate: testutil.Field("body", nil), expectCode: http.StatusBadRequest},
			{name: "empty channel", mutate: testutil.Field("channel", ""), expectCode: http.StatusBadRequest},
			{name: "empty recipient", mutate: testutil.Field("recipient", ""), expectCode: http.StatusBadRequest},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 422 Unprocessable Entity on domain validation failure", func() {
		s.mockCommands.EXPECT().Dispatch(gomock.Any(), reqBody, s.tenantID, "orders").
			Return(nil, commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Domain validation failed")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 500 Internal Server Error on unexpected failure", func() {
		s.mockCommands.EXPECT().Dispatch(gomock.Any(), reqBody, s.tenantID, "orders").
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *NotificationHandlerTestSuite) TestGet() {
	notificationID := uuid.New()
	url := "/notifications/" + notificationID.String()

	s.Run("success: returns 200 OK with NotificationResponse", func() {
		view := builder.NewIntentBuilder().WithTenantID(s.tenantID).BuildView(notification.LaneStandard, notification.StatusSent)
		view.ID = notificationID
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.tenantID, notificationID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.NotificationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(notificationID, response.ID)
		s.Equal("sent", response.Status)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/notifications/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for missing notification", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.tenantID, notificationID).
			Return(nil, queries.ErrNotificationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.tenantID, notificationID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *NotificationHandlerTestSuite) TestList() {
	baseURL := "/notifications"

	items := []*queries.NotificationListItem{
		builder.NewIntentBuilder().BuildListItem(notification.LaneStandard, notification.StatusSent),
		builder.NewIntentBuilder().BuildListItem(notification.LanePriority, notification.StatusQueued),
	}

	s.Run("success: returns notification list", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.tenantID, queries.NotificationFilters{}, (*queries.Cursor)(nil), 20).
			Return(items, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		notifications, ok := response["notifications"].([]any)
		s.True(ok)
		s.Equal(len(items), len(notifications))
	})

	s.Run("success: filters and pagination are forwarded", func() {
		url := baseURL + "?status=failed&channel=sms&service=orders&limit=10&after=cursor123"
		expectedFilters := queries.NotificationFilters{Status: "failed", Channel: "sms", Service: "orders"}
		expectedCursor := &queries.Cursor{After: "cursor123"}
		nextCursor := &queries.Cursor{After: "next_cursor456"}

		s.mockQueries.EXPECT().List(gomock.Any(), s.tenantID, expectedFilters, expectedCursor, 10).
			Return(items[:1], nextCursor, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("next_cursor456", response["next_cursor"])
	})

	s.Run("error: 400 Bad Request on invalid cursor", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.tenantID, queries.NotificationFilters{}, gomock.Any(), 20).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?after=broken", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.tenantID, queries.NotificationFilters{}, (*queries.Cursor)(nil), 20).
			Return(nil, nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

// ================================================================================
// TestDeadLetters
// ================================================================================

func (s *NotificationHandlerTestSuite) TestDeadLetters() {
	url := "/notifications/dead-letters"

	items := []*queries.NotificationListItem{
		builder.NewIntentBuilder().BuildListItem(notification.LaneStandard, notification.StatusFailed),
	}

	s.Run("success: returns dead letter list", func() {
		s.mockQueries.EXPECT().ListDeadLetters(gomock.Any(), s.tenantID, (*queries.Cursor)(nil), 20).
			Return(items, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		notifications, ok := response["notifications"].([]any)
		s.True(ok)
		s.Equal(1, len(notifications))
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().ListDeadLetters(gomock.Any(), s.tenantID, (*queries.Cursor)(nil), 20).
			Return(nil, nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *NotificationHandlerTestSuite) TestCancel() {
	notificationID := uuid.New()
	url := "/notifications/" + notificationID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.tenantID, notificationID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/notifications/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "notification not found",
				commandsError:  commands.ErrRecordNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Not found",
			},
			{
				name:           "no longer queued",
				commandsError:  commands.ErrNotificationNotQueued,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "No longer queued",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Cancel(gomock.Any(), s.tenantID, notificationID).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestRequeue
// ================================================================================

func (s *NotificationHandlerTestSuite) TestRequeue() {
	notificationID := uuid.New()
	url := "/notifications/" + notificationID.String() + "/requeue"

	s.Run("success: returns 200 OK with the requeued notification", func() {
		view := builder.NewIntentBuilder().WithTenantID(s.tenantID).BuildView(notification.LaneStandard, notification.StatusQueued)
		view.ID = notificationID
		s.mockCommands.EXPECT().Requeue(gomock.Any(), s.tenantID, notificationID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.NotificationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("queued", response.Status)
		s.Equal(int32(0), response.AttemptCount)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "notification not found",
				commandsError:  commands.ErrRecordNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Not found",
			},
			{
				name:           "not in a failed state",
				commandsError:  commands.ErrInvalidTransition,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Not requeueable",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Requeue(gomock.Any(), s.tenantID, notificationID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
