//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"notify-dispatch/internal/domain/budget"
	"notify-dispatch/internal/domain/credential"
	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/domain/retrypolicy"
	reqdto "notify-dispatch/internal/handler/dto/request"
	"notify-dispatch/internal/infra"
	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/pkg/password"
	"notify-dispatch/internal/usecase/commands"
	"notify-dispatch/tests/common/builder"
	commandsmock "notify-dispatch/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminCommandsTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	budgets  *commandsmock.MockBudgetRepository
	policies *commandsmock.MockRetryPolicyStore
	creds    *commandsmock.MockCredentialRepository
	cache    *commands.PolicyCache
	clk      *clock.MockClock
	uc       commands.AdminCommands
}

func (s *AdminCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.budgets = commandsmock.NewMockBudgetRepository(s.ctrl)
	s.policies = commandsmock.NewMockRetryPolicyStore(s.ctrl)
	s.creds = commandsmock.NewMockCredentialRepository(s.ctrl)
	s.cache = commands.NewPolicyCache(retrypolicy.NewPolicySet(nil, retrypolicy.DefaultPolicy()))
	s.clk = clock.NewMockClock(time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC))

	s.uc = commands.NewAdminCommands(
		s.budgets,
		s.policies,
		s.creds,
		s.cache,
		s.clk,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func (s *AdminCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAdminCommandsSuite(t *testing.T) {
	suite.Run(t, new(AdminCommandsTestSuite))
}

func (s *AdminCommandsTestSuite) TestPolicyCache() {
	s.Run("エントリが無ければ既定ポリシーへ解決する", func() {
		policy := s.cache.Resolve(uuid.New(), notification.ChannelEmail)
		s.Equal(retrypolicy.DefaultPolicy(), policy)
	})

	s.Run("Reloadで読み直した内容に切り替わる", func() {
		tenantID := uuid.New()
		override := retrypolicy.Policy{
			MaxAttempts: 7,
			BaseDelay:   time.Second,
			Factor:      2,
			MaxDelay:    time.Minute,
			JitterBound: time.Second,
		}
		s.policies.EXPECT().LoadAll(gomock.Any()).Return(map[retrypolicy.PolicyKey]retrypolicy.Policy{
			{Tenant: tenantID.String(), Channel: "sms"}: override,
		}, nil)

		s.Require().NoError(s.cache.Reload(context.Background(), s.policies))

		s.Equal(7, s.cache.Resolve(tenantID, notification.ChannelSMS).MaxAttempts)
		s.Equal(retrypolicy.DefaultPolicy(), s.cache.Resolve(tenantID, notification.ChannelEmail))
	})
}

func (s *AdminCommandsTestSuite) TestSetBudgetLimit() {
	ctx := context.Background()

	s.Run("現在の請求期間に即時反映される", func() {
		tenantID := uuid.New()
		req := reqdto.SetBudgetLimitRequest{
			TenantID:   tenantID,
			Service:    "marketing",
			Channel:    "sms",
			LimitMicro: 50_000_000,
		}
		s.budgets.EXPECT().
			SetLimit(gomock.Any(), tenantID, "marketing", notification.ChannelSMS,
				int64(50_000_000), budget.PeriodOf(s.clk.Now()), s.clk.Now()).
			Return(nil)

		s.Require().NoError(s.uc.SetBudgetLimit(ctx, req))
	})

	s.Run("不正なチャネルはErrInvalidBudgetLimit", func() {
		req := reqdto.SetBudgetLimitRequest{
			TenantID:   uuid.New(),
			Service:    "*",
			Channel:    "pigeon",
			LimitMicro: 1,
		}

		err := s.uc.SetBudgetLimit(ctx, req)

		s.Require().ErrorIs(err, commands.ErrInvalidBudgetLimit)
	})
}

func (s *AdminCommandsTestSuite) TestUpsertRetryPolicy() {
	ctx := context.Background()

	s.Run("保存後にキャッシュへ反映される", func() {
		tenantID := uuid.New()
		req := reqdto.UpsertRetryPolicyRequest{
			Tenant:        tenantID.String(),
			Channel:       "sms",
			MaxAttempts:   5,
			BaseDelayMS:   1000,
			Factor:        3,
			MaxDelayMS:    60_000,
			JitterBoundMS: 500,
		}
		key := retrypolicy.PolicyKey{Tenant: tenantID.String(), Channel: "sms"}
		stored := retrypolicy.Policy{
			MaxAttempts: 5,
			BaseDelay:   time.Second,
			Factor:      3,
			MaxDelay:    time.Minute,
			JitterBound: 500 * time.Millisecond,
		}
		s.policies.EXPECT().Upsert(gomock.Any(), key, stored, s.clk.Now()).Return(nil)
		s.policies.EXPECT().LoadAll(gomock.Any()).
			Return(map[retrypolicy.PolicyKey]retrypolicy.Policy{key: stored}, nil)

		s.Require().NoError(s.uc.UpsertRetryPolicy(ctx, req))

		s.Equal(stored, s.cache.Resolve(tenantID, notification.ChannelSMS))
	})

	s.Run("factorが1未満ならErrInvalidRetryPolicy", func() {
		req := reqdto.UpsertRetryPolicyRequest{
			Tenant:      retrypolicy.Wildcard,
			Channel:     "email",
			MaxAttempts: 3,
			BaseDelayMS: 1000,
			Factor:      0.5,
			MaxDelayMS:  60_000,
		}

		err := s.uc.UpsertRetryPolicy(ctx, req)

		s.Require().ErrorIs(err, commands.ErrInvalidRetryPolicy)
	})

	s.Run("UUIDでもワイルドカードでもないテナントは弾く", func() {
		req := reqdto.UpsertRetryPolicyRequest{
			Tenant:      "acme",
			Channel:     "email",
			MaxAttempts: 3,
			BaseDelayMS: 1000,
			Factor:      2,
			MaxDelayMS:  60_000,
		}

		err := s.uc.UpsertRetryPolicy(ctx, req)

		s.Require().ErrorIs(err, commands.ErrInvalidRetryPolicy)
	})
}

func (s *AdminCommandsTestSuite) TestCreateCredential() {
	ctx := context.Background()

	s.Run("シークレットはハッシュ化されて保存される", func() {
		b := builder.NewCredentialBuilder()
		req := b.BuildCreateRequestDTO()

		var saved *credential.Credential
		s.creds.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cred *credential.Credential) error {
				saved = cred
				return nil
			})

		result, err := s.uc.CreateCredential(ctx, req)

		s.Require().NoError(err)
		s.Equal(b.TenantID, result.TenantID)
		s.Equal(b.Service, result.Service)
		s.NotEqual(b.Secret, saved.SecretHash())
		s.Require().NoError(password.ComparePassword(saved.SecretHash(), b.Secret))
	})

	s.Run("同一サービスの重複はErrDuplicateService", func() {
		req := builder.NewCredentialBuilder().BuildCreateRequestDTO()
		s.creds.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(infra.RepositoryError{Kind: infra.KindDuplicateKey})

		_, err := s.uc.CreateCredential(ctx, req)

		s.Require().ErrorIs(err, commands.ErrDuplicateService)
	})
}

func (s *AdminCommandsTestSuite) TestDeactivateCredential() {
	ctx := context.Background()

	s.Run("存在しない資格情報はErrCredentialNotFound", func() {
		tenantID := uuid.New()
		id := uuid.New()
		s.creds.EXPECT().Deactivate(gomock.Any(), tenantID, id).
			Return(infra.RepositoryError{Kind: infra.KindNotFound})

		err := s.uc.DeactivateCredential(ctx, tenantID, id)

		s.Require().ErrorIs(err, commands.ErrCredentialNotFound)
	})
}
