//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"notify-dispatch/internal/domain/budget"
	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/domain/quota"
	"notify-dispatch/internal/domain/routing"
	"notify-dispatch/internal/infra"
	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/usecase/admission"
	"notify-dispatch/internal/usecase/commands"
	"notify-dispatch/tests/common/builder"
	admissionmock "notify-dispatch/tests/mock/admission"
	commandsmock "notify-dispatch/tests/mock/commands"
	queriesmock "notify-dispatch/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type NotificationCommandsTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	repo        *commandsmock.MockNotificationRepository
	rateLimiter *admissionmock.MockRateLimiter
	budgets     *admissionmock.MockBudgetEnforcer
	deliverer   *commandsmock.MockDeliverer
	queries     *queriesmock.MockNotificationQueries
	hub         *commandsmock.MockEventHub
	clk         *clock.MockClock
	uc          commands.NotificationCommands
}

func (s *NotificationCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = commandsmock.NewMockNotificationRepository(s.ctrl)
	s.rateLimiter = admissionmock.NewMockRateLimiter(s.ctrl)
	s.budgets = admissionmock.NewMockBudgetEnforcer(s.ctrl)
	s.deliverer = commandsmock.NewMockDeliverer(s.ctrl)
	s.queries = queriesmock.NewMockNotificationQueries(s.ctrl)
	s.hub = commandsmock.NewMockEventHub(s.ctrl)
	s.clk = clock.NewMockClock(time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC))
	s.hub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	s.uc = commands.NewNotificationUseCase(
		s.repo,
		s.rateLimiter,
		s.budgets,
		routing.NewRouter(nil),
		s.deliverer,
		s.queries,
		s.hub,
		s.clk,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func (s *NotificationCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestNotificationCommandsSuite(t *testing.T) {
	suite.Run(t, new(NotificationCommandsTestSuite))
}

func allowedBudget() admission.BudgetCheck {
	return admission.BudgetCheck{Decision: budget.Decision{Allowed: true}, CostMicro: 950}
}

func (s *NotificationCommandsTestSuite) TestDispatch() {
	ctx := context.Background()

	s.Run("同期送信はインラインで配送される", func() {
		b := builder.NewIntentBuilder().AsSynchronous()
		req := b.BuildSendRequestDTO()

		var created *notification.Record
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *notification.Record) error {
				created = rec
				return nil
			})
		s.rateLimiter.EXPECT().CheckAndConsume(gomock.Any(), gomock.Any()).Return(quota.Allow(), nil)
		s.budgets.EXPECT().Check(gomock.Any(), gomock.Any()).Return(allowedBudget(), nil)
		s.deliverer.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(nil)
		view := b.BuildView(notification.LaneSync, notification.StatusSent)
		s.queries.EXPECT().GetByID(gomock.Any(), b.TenantID, gomock.Any()).Return(view, nil)

		result, err := s.uc.Dispatch(ctx, req, b.TenantID, b.ServiceOrigin)

		s.Require().NoError(err)
		s.Equal(commands.OutcomeSent, result.Outcome)
		s.False(result.Replayed)
		s.Equal(notification.LaneSync, created.Lane())
	})

	s.Run("非同期送信はキュー投入のみで返る", func() {
		b := builder.NewIntentBuilder()
		req := b.BuildSendRequestDTO()

		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.rateLimiter.EXPECT().CheckAndConsume(gomock.Any(), gomock.Any()).Return(quota.Allow(), nil)
		s.budgets.EXPECT().Check(gomock.Any(), gomock.Any()).Return(allowedBudget(), nil)
		view := b.BuildView(notification.LaneStandard, notification.StatusQueued)
		s.queries.EXPECT().GetByID(gomock.Any(), b.TenantID, gomock.Any()).Return(view, nil)

		result, err := s.uc.Dispatch(ctx, req, b.TenantID, b.ServiceOrigin)

		s.Require().NoError(err)
		s.Equal(commands.OutcomeQueued, result.Outcome)
	})

	s.Run("相関キー重複は既存レコードへ合流する", func() {
		b := builder.NewIntentBuilder().WithCorrelationKey("order-1234-confirmed")
		req := b.BuildSendRequestDTO()

		prior, err := b.BuildRecord(notification.LaneStandard, s.clk.Now())
		s.Require().NoError(err)

		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(infra.RepositoryError{Kind: infra.KindDuplicateKey})
		s.repo.EXPECT().FindByCorrelationKey(gomock.Any(), b.TenantID, "order-1234-confirmed").
			Return(prior, nil)
		view := b.BuildView(notification.LaneStandard, notification.StatusSent)
		s.queries.EXPECT().GetByID(gomock.Any(), b.TenantID, prior.ID()).Return(view, nil)

		result, err := s.uc.Dispatch(ctx, req, b.TenantID, b.ServiceOrigin)

		s.Require().NoError(err)
		s.True(result.Replayed)
		s.Equal(commands.OutcomeSent, result.Outcome)
	})

	s.Run("レート制限超過はquota_deniedで拒否される", func() {
		b := builder.NewIntentBuilder()
		req := b.BuildSendRequestDTO()

		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.rateLimiter.EXPECT().CheckAndConsume(gomock.Any(), gomock.Any()).
			Return(quota.Deny(quota.ScopeUser, 30*time.Second), nil)
		var denied *notification.Record
		s.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *notification.Record) error {
				denied = rec
				return nil
			})
		view := b.BuildView(notification.LaneStandard, notification.StatusFailed)
		code := notification.ErrCodeQuotaDenied.String()
		view.ErrorCode = &code
		s.queries.EXPECT().GetByID(gomock.Any(), b.TenantID, gomock.Any()).Return(view, nil)

		result, err := s.uc.Dispatch(ctx, req, b.TenantID, b.ServiceOrigin)

		s.Require().NoError(err)
		s.Equal(commands.OutcomeDeniedQuota, result.Outcome)
		s.Equal(30*time.Second, result.RetryAfter)
		s.Equal(notification.StatusFailed, denied.Status())
		s.Equal(notification.ErrCodeQuotaDenied, denied.ErrorCode())
		s.Equal(0, denied.AttemptCount())
	})

	s.Run("予算超過はbudget_deniedで拒否される", func() {
		b := builder.NewIntentBuilder()
		req := b.BuildSendRequestDTO()

		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.rateLimiter.EXPECT().CheckAndConsume(gomock.Any(), gomock.Any()).Return(quota.Allow(), nil)
		s.budgets.EXPECT().Check(gomock.Any(), gomock.Any()).
			Return(admission.BudgetCheck{Decision: budget.Decision{Allowed: false}, CostMicro: 950}, nil)
		var denied *notification.Record
		s.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *notification.Record) error {
				denied = rec
				return nil
			})
		view := b.BuildView(notification.LaneStandard, notification.StatusFailed)
		code := notification.ErrCodeBudgetDenied.String()
		view.ErrorCode = &code
		s.queries.EXPECT().GetByID(gomock.Any(), b.TenantID, gomock.Any()).Return(view, nil)

		result, err := s.uc.Dispatch(ctx, req, b.TenantID, b.ServiceOrigin)

		s.Require().NoError(err)
		s.Equal(commands.OutcomeDeniedBudget, result.Outcome)
		s.Equal(notification.ErrCodeBudgetDenied, denied.ErrorCode())
		s.Equal(0, denied.AttemptCount())
	})

	s.Run("不正なチャネルはバリデーションエラー", func() {
		b := builder.NewIntentBuilder().WithChannel("fax")
		req := b.BuildSendRequestDTO()

		_, err := s.uc.Dispatch(ctx, req, b.TenantID, b.ServiceOrigin)

		s.Require().ErrorIs(err, commands.ErrDomainValidation)
	})

	s.Run("予算警告は結果に伝播する", func() {
		b := builder.NewIntentBuilder().WithPriority("high")
		req := b.BuildSendRequestDTO()

		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.rateLimiter.EXPECT().CheckAndConsume(gomock.Any(), gomock.Any()).Return(quota.Allow(), nil)
		s.budgets.EXPECT().Check(gomock.Any(), gomock.Any()).
			Return(admission.BudgetCheck{Decision: budget.Decision{Allowed: true, Warning: true}, CostMicro: 950}, nil)
		view := b.BuildView(notification.LaneStandard, notification.StatusQueued)
		s.queries.EXPECT().GetByID(gomock.Any(), b.TenantID, gomock.Any()).Return(view, nil)

		result, err := s.uc.Dispatch(ctx, req, b.TenantID, b.ServiceOrigin)

		s.Require().NoError(err)
		s.True(result.BudgetWarning)
	})
}

func (s *NotificationCommandsTestSuite) TestCancel() {
	ctx := context.Background()
	tenantID := uuid.New()
	id := uuid.New()

	s.Run("キュー中の通知を取り消せる", func() {
		rec, err := builder.NewIntentBuilder().WithTenantID(tenantID).
			BuildRecord(notification.LaneStandard, s.clk.Now())
		s.Require().NoError(err)
		s.Require().NoError(rec.MarkCanceled(s.clk.Now()))

		s.repo.EXPECT().CancelQueued(gomock.Any(), tenantID, id, gomock.Any()).Return(nil)
		s.repo.EXPECT().FindByID(gomock.Any(), tenantID, id).Return(rec, nil)

		s.Require().NoError(s.uc.Cancel(ctx, tenantID, id))
	})

	s.Run("存在しないIDはErrRecordNotFound", func() {
		s.repo.EXPECT().CancelQueued(gomock.Any(), tenantID, id, gomock.Any()).
			Return(infra.RepositoryError{Kind: infra.KindNotFound})

		err := s.uc.Cancel(ctx, tenantID, id)

		s.Require().ErrorIs(err, commands.ErrRecordNotFound)
	})

	s.Run("既に配送済みなら競合エラー", func() {
		s.repo.EXPECT().CancelQueued(gomock.Any(), tenantID, id, gomock.Any()).
			Return(infra.RepositoryError{Kind: infra.KindConflict})

		err := s.uc.Cancel(ctx, tenantID, id)

		s.Require().ErrorIs(err, commands.ErrNotificationNotQueued)
	})
}

func (s *NotificationCommandsTestSuite) TestRequeue() {
	ctx := context.Background()

	s.Run("失敗済みの通知は試行回数ゼロで再投入される", func() {
		b := builder.NewIntentBuilder()
		rec, err := b.BuildRecord(notification.LaneStandard, s.clk.Now())
		s.Require().NoError(err)
		s.Require().NoError(rec.FailAttempt(notification.ErrCodeAttemptsExhausted, "retries exhausted", s.clk.Now()))

		s.repo.EXPECT().FindByID(gomock.Any(), b.TenantID, rec.ID()).Return(rec, nil)
		var requeued *notification.Record
		s.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *notification.Record) error {
				requeued = r
				return nil
			})
		view := b.BuildView(notification.LaneStandard, notification.StatusQueued)
		s.queries.EXPECT().GetByID(gomock.Any(), b.TenantID, rec.ID()).Return(view, nil)

		got, err := s.uc.Requeue(ctx, b.TenantID, rec.ID())

		s.Require().NoError(err)
		s.Equal(view.ID, got.ID)
		s.Equal(notification.StatusQueued, requeued.Status())
		s.Equal(0, requeued.AttemptCount())
	})

	s.Run("キュー中の通知は再投入できない", func() {
		b := builder.NewIntentBuilder()
		rec, err := b.BuildRecord(notification.LaneStandard, s.clk.Now())
		s.Require().NoError(err)

		s.repo.EXPECT().FindByID(gomock.Any(), b.TenantID, rec.ID()).Return(rec, nil)

		_, err = s.uc.Requeue(ctx, b.TenantID, rec.ID())

		s.Require().ErrorIs(err, commands.ErrInvalidTransition)
	})
}

func (s *NotificationCommandsTestSuite) TestConfirmDelivery() {
	ctx := context.Background()

	s.Run("プロバイダ受領IDでdeliveredに遷移する", func() {
		b := builder.NewIntentBuilder()
		rec, err := b.BuildRecord(notification.LaneStandard, s.clk.Now())
		s.Require().NoError(err)
		s.Require().NoError(rec.MarkSent("pm-abc123", 950, s.clk.Now()))

		s.repo.EXPECT().FindByProviderMsgID(gomock.Any(), "pm-abc123").Return(rec, nil)
		var confirmed *notification.Record
		s.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *notification.Record) error {
				confirmed = r
				return nil
			})
		view := b.BuildView(notification.LaneStandard, notification.StatusDelivered)
		s.queries.EXPECT().GetByID(gomock.Any(), b.TenantID, rec.ID()).Return(view, nil)

		got, err := s.uc.ConfirmDelivery(ctx, "pm-abc123")

		s.Require().NoError(err)
		s.Equal(view.ID, got.ID)
		s.Equal(notification.StatusDelivered, confirmed.Status())
	})

	s.Run("未知のprovider_msg_idはErrRecordNotFound", func() {
		s.repo.EXPECT().FindByProviderMsgID(gomock.Any(), "pm-unknown").
			Return(nil, infra.RepositoryError{Kind: infra.KindNotFound})

		_, err := s.uc.ConfirmDelivery(ctx, "pm-unknown")

		s.Require().ErrorIs(err, commands.ErrRecordNotFound)
	})
}
