// Package worker runs the periodic dispatch jobs: lane drains, retry
// redrive, budget alert reconciliation, correlation key expiry, retry
// policy reloads and provider probes. Jobs fire on cron intervals, queue
// into a small worker pool and, where they touch shared tables, serialize
// across instances through a job lock.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/pkg/config"
	"notify-dispatch/internal/usecase/commands"
)

const (
	reloadTimeout = 10 * time.Second
	probeTimeout  = 15 * time.Second
)

type job struct {
	name    string
	timeout time.Duration
	run     func(ctx context.Context) error
}

type jobDef struct {
	name    string
	every   time.Duration
	timeout time.Duration
	locked  bool
	run     func(ctx context.Context) error
}

type Service struct {
	mu sync.Mutex

	cfg config.DispatchConfig
	log *slog.Logger

	lanes     commands.LaneRunner
	budgets   commands.BudgetScanner
	keeper    commands.Housekeeper
	policies  *commands.PolicyCache
	store     commands.RetryPolicyStore
	locks     commands.JobLock
	providers commands.ProviderRegistry

	parser cron.Parser
	c      *cron.Cron
	queue  chan job
	cancel context.CancelFunc
}

func New(
	cfg config.DispatchConfig,
	lanes commands.LaneRunner,
	budgets commands.BudgetScanner,
	keeper commands.Housekeeper,
	policies *commands.PolicyCache,
	store commands.RetryPolicyStore,
	locks commands.JobLock,
	providers commands.ProviderRegistry,
	log *slog.Logger,
) *Service {
	return &Service{
		cfg:       cfg,
		lanes:     lanes,
		budgets:   budgets,
		keeper:    keeper,
		policies:  policies,
		store:     store,
		locks:     locks,
		providers: providers,
		log:       log,
		parser:    cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

// defs lists every scheduled job. An interval of zero disables the job.
// Locked jobs time out at the lock TTL so a run never outlives its lease;
// the policy reload and the provider probe are per instance and never
// take the lock.
func (s *Service) defs() []jobDef {
	return []jobDef{
		{name: "drain:priority", every: s.cfg.PriorityInterval, timeout: s.cfg.JobLockTTL, locked: true, run: s.drainPriority},
		{name: "drain:standard", every: s.cfg.StandardInterval, timeout: s.cfg.JobLockTTL, locked: true, run: func(ctx context.Context) error {
			return s.drainOne(ctx, notification.LaneStandard)
		}},
		{name: "drain:bulk", every: s.cfg.BulkInterval, timeout: s.cfg.JobLockTTL, locked: true, run: func(ctx context.Context) error {
			return s.drainOne(ctx, notification.LaneBulk)
		}},
		{name: "redrive:retries", every: s.cfg.RetryInterval, timeout: s.cfg.JobLockTTL, locked: true, run: s.redriveRetries},
		{name: "scan:budget-alerts", every: s.cfg.BudgetScanInterval, timeout: s.cfg.JobLockTTL, locked: true, run: s.scanBudgetAlerts},
		{name: "expire:correlations", every: s.cfg.CorrelationSweepInterval, timeout: s.cfg.JobLockTTL, locked: true, run: s.expireCorrelations},
		{name: "reload:retry-policies", every: s.cfg.PolicyReloadInterval, timeout: reloadTimeout, locked: false, run: s.reloadPolicies},
		{name: "probe:providers", every: s.cfg.ProbeInterval, timeout: probeTimeout, locked: false, run: s.probeProviders},
	}
}

func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	workers := s.cfg.WorkerCount
	if workers <= 0 {
		workers = 2
	}
	s.queue = make(chan job, 16)
	s.c = cron.New(cron.WithParser(s.parser))

	for _, d := range s.defs() {
		if d.every <= 0 {
			s.log.Warn("job disabled", "job", d.name)
			continue
		}
		if err := s.register(d); err != nil {
			cancel()
			s.cancel = nil
			return fmt.Errorf("failed to register job %s: %w", d.name, err)
		}
	}

	for i := 0; i < workers; i++ {
		go s.worker(runCtx)
	}
	s.c.Start()
	s.log.Info("dispatch worker started", "workers", workers)
	return nil
}

func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
	<-s.c.Stop().Done()
	s.c = nil
	s.log.Info("dispatch worker stopped")
}

func (s *Service) register(d jobDef) error {
	run := d.run
	if d.locked {
		run = s.withLock(d.name, run)
	}
	spec := fmt.Sprintf("@every %s", d.every.String())
	_, err := s.c.AddFunc(spec, func() {
		s.enqueue(job{name: d.name, timeout: d.timeout, run: run})
	})
	return err
}

func (s *Service) withLock(name string, run func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		release, acquired, err := s.locks.TryAcquire(ctx, name, s.cfg.JobLockTTL)
		if err != nil {
			// Due rows are claimed with per-row leases, so an unguarded
			// run is redundant, not unsafe.
			s.log.Warn("job lock unavailable, running unguarded", "job", name, "error", err)
			return run(ctx)
		}
		if !acquired {
			return nil
		}
		defer release()
		return run(ctx)
	}
}

func (s *Service) enqueue(j job) {
	select {
	case s.queue <- j:
	default:
		s.log.Warn("worker queue full, dropping job run", "job", j.name)
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			s.execOne(ctx, j)
		}
	}
}

func (s *Service) execOne(ctx context.Context, j job) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("job panicked", "job", j.name, "panic", r)
		}
	}()

	runCtx := ctx
	var cancel func()
	if j.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := j.run(runCtx); err != nil {
		s.log.Error("job failed", "job", j.name, "duration", time.Since(start), "error", err)
	}
}

// drainPriority also sweeps the sync lane first. Sync sends deliver
// inline on the request path; a row only waits there when the accepting
// instance died before attempting it.
func (s *Service) drainPriority(ctx context.Context) error {
	if err := s.drainOne(ctx, notification.LaneSync); err != nil {
		s.log.Warn("sync lane sweep failed", "error", err)
	}
	return s.drainOne(ctx, notification.LanePriority)
}

func (s *Service) drainOne(ctx context.Context, lane notification.Lane) error {
	n, err := s.lanes.DrainLane(ctx, lane)
	if n > 0 {
		s.log.Info("lane drained", "lane", lane.String(), "claimed", n)
	}
	return err
}

func (s *Service) redriveRetries(ctx context.Context) error {
	n, err := s.lanes.RunDueRetries(ctx)
	if n > 0 {
		s.log.Info("due retries redriven", "claimed", n)
	}
	return err
}

func (s *Service) scanBudgetAlerts(ctx context.Context) error {
	n, err := s.budgets.ScanAlerts(ctx)
	if n > 0 {
		s.log.Info("budget alerts reconciled", "ledgers", n)
	}
	return err
}

func (s *Service) expireCorrelations(ctx context.Context) error {
	n, err := s.keeper.ExpireCorrelations(ctx)
	if n > 0 {
		s.log.Info("correlation keys expired", "count", n)
	}
	return err
}

func (s *Service) reloadPolicies(ctx context.Context) error {
	return s.policies.Reload(ctx, s.store)
}

// probeProviders is observability only. The breakers judge providers by
// real send traffic; the probe just gives operators an early warning on
// channels that are quiet.
func (s *Service) probeProviders(ctx context.Context) error {
	for channel, ranks := range s.providers.Probe(ctx) {
		for i, healthy := range ranks {
			if !healthy {
				s.log.Warn("provider unreachable", "channel", channel.String(), "rank", i)
			}
		}
	}
	return nil
}
