package commands

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"notify-dispatch/internal/domain/budget"
	"notify-dispatch/internal/domain/credential"
	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/domain/retrypolicy"
	reqdto "notify-dispatch/internal/handler/dto/request"
	"notify-dispatch/internal/infra"
	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/pkg/errs"
	"notify-dispatch/internal/pkg/password"
)

var (
	ErrInvalidBudgetLimit = errs.New("invalid budget limit")
	ErrInvalidRetryPolicy = errs.New("invalid retry policy")
	ErrSecretHashing      = errs.New("failed to hash credential secret")
	ErrDuplicateService   = errs.New("credential already exists for service")
	ErrCredentialNotFound = errs.New("credential not found")
)

// PolicyCache is the in-memory view of the retry policy table. Resolution
// happens on every failed send, so readers go through an atomic pointer
// and never touch the database.
type PolicyCache struct {
	set atomic.Pointer[retrypolicy.PolicySet]
}

func NewPolicyCache(initial retrypolicy.PolicySet) *PolicyCache {
	c := &PolicyCache{}
	c.set.Store(&initial)
	return c
}

func (c *PolicyCache) Resolve(tenantID uuid.UUID, channel notification.Channel) retrypolicy.Policy {
	return c.set.Load().Resolve(tenantID, channel)
}

// Reload swaps in a fresh snapshot of the policy table. Called after
// admin writes and periodically by the worker so every instance converges.
func (c *PolicyCache) Reload(ctx context.Context, store RetryPolicyStore) error {
	policies, err := store.LoadAll(ctx)
	if err != nil {
		return err
	}
	set := retrypolicy.NewPolicySet(policies, retrypolicy.DefaultPolicy())
	c.set.Store(&set)
	return nil
}

type CredentialResult struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Service  string
	Scopes   []string
}

type AdminCommands interface {
	SetBudgetLimit(ctx context.Context, req reqdto.SetBudgetLimitRequest) error
	UpsertRetryPolicy(ctx context.Context, req reqdto.UpsertRetryPolicyRequest) error
	CreateCredential(ctx context.Context, req reqdto.CreateCredentialRequest) (*CredentialResult, error)
	DeactivateCredential(ctx context.Context, tenantID, id uuid.UUID) error
}

type adminUseCaseImpl struct {
	budgets  BudgetRepository
	policies RetryPolicyStore
	creds    CredentialRepository
	cache    *PolicyCache
	clock    clock.Clock
	slogger  *slog.Logger
}

func NewAdminCommands(
	budgets BudgetRepository,
	policies RetryPolicyStore,
	creds CredentialRepository,
	cache *PolicyCache,
	clk clock.Clock,
	slogger *slog.Logger,
) AdminCommands {
	return &adminUseCaseImpl{
		budgets:  budgets,
		policies: policies,
		creds:    creds,
		cache:    cache,
		clock:    clk,
		slogger:  slogger,
	}
}

// SetBudgetLimit applies to the current period immediately. Service may be
// "*" to set the tenant-wide default; the channel must be concrete because
// costs differ per channel.
func (u *adminUseCaseImpl) SetBudgetLimit(ctx context.Context, req reqdto.SetBudgetLimitRequest) error {
	ch, err := notification.NewChannel(req.Channel)
	if err != nil {
		return errs.Mark(err, ErrInvalidBudgetLimit)
	}
	now := u.clock.Now()
	period := budget.PeriodOf(now)
	if err := u.budgets.SetLimit(ctx, req.TenantID, req.Service, ch, req.LimitMicro, period, now); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	u.slogger.Info("budget limit updated",
		"tenant_id", req.TenantID,
		"service", req.Service,
		"channel", ch.String(),
		"limit_micro", req.LimitMicro,
	)
	return nil
}

func (u *adminUseCaseImpl) UpsertRetryPolicy(ctx context.Context, req reqdto.UpsertRetryPolicyRequest) error {
	key, policy, err := req.ToDomain()
	if err != nil {
		return errs.Mark(err, ErrInvalidRetryPolicy)
	}
	if err := u.policies.Upsert(ctx, key, policy, u.clock.Now()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := u.cache.Reload(ctx, u.policies); err != nil {
		// The write landed. Other instances pick it up on their periodic
		// refresh, so this one can wait for the same.
		u.slogger.Warn("retry policy cache reload failed", "error", err)
	}
	return nil
}

// CreateCredential returns the stored shape of the credential. The secret
// is bcrypt-hashed before it reaches the repository and is never readable
// again.
func (u *adminUseCaseImpl) CreateCredential(ctx context.Context, req reqdto.CreateCredentialRequest) (*CredentialResult, error) {
	hash, err := password.HashPassword(req.Secret)
	if err != nil {
		return nil, errs.Mark(err, ErrSecretHashing)
	}
	cred, err := credential.NewCredential(req.TenantID, req.Service, hash, req.Scopes)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if err := u.creds.Create(ctx, cred); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrDuplicateService)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	u.slogger.Info("service credential created",
		"tenant_id", cred.TenantID(),
		"service", cred.Service(),
		"credential_id", cred.ID(),
	)
	return &CredentialResult{
		ID:       cred.ID(),
		TenantID: cred.TenantID(),
		Service:  cred.Service(),
		Scopes:   cred.Scopes(),
	}, nil
}

func (u *adminUseCaseImpl) DeactivateCredential(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := u.creds.Deactivate(ctx, tenantID, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrCredentialNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
