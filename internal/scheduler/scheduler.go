package scheduler

import (
	"context"
	"fmt"
	"log"

	"EquitySim/internal/analysis"
	"EquitySim/internal/config"
	"EquitySim/internal/market"
	"EquitySim/internal/notifier"
	"EquitySim/internal/simulation"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Scheduler re-runs the configured simulation on a cron schedule and pushes
// the report to the notifier (watch mode).
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *simulation.Engine
	Provider market.Provider
	Notifier notifier.Notifier
	Cfg      *config.Config
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, engine *simulation.Engine, provider market.Provider, n notifier.Notifier, cfg *config.Config) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   engine,
		Provider: provider,
		Notifier: n,
		Cfg:      cfg,
		Ctx:      ctx,
	}
}

// RegisterAll registers the daily simulation task.
func (s *Scheduler) RegisterAll() error {
	if _, err := s.Cron.AddFunc(s.Cfg.Schedule.DailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the daily task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	runID := uuid.NewString()[:8]
	log.Printf("[INFO] run %s: simulating %s", runID, s.Cfg.Simulation.Symbol)

	simCfg, err := s.Cfg.SimulationConfig()
	if err != nil {
		log.Printf("[ERROR] run %s: config: %v", runID, err)
		return
	}

	res, err := s.Engine.Simulate(s.Cfg.Simulation.Symbol, s.Cfg.Simulation.Period, simCfg)
	if err != nil {
		log.Printf("[ERROR] run %s: simulate: %v", runID, err)
		s.trySend(fmt.Sprintf("❌ simulation of %s failed: %v", s.Cfg.Simulation.Symbol, err))
		return
	}

	report := notifier.FormatSimulationReport(res)

	if len(s.Cfg.Compare.Symbols) > 1 {
		assets, failed := analysis.FetchAll(s.Provider, s.Cfg.Compare.Symbols, s.Cfg.Simulation.Period)
		report += "\n" + notifier.FormatComparisonReport(assets, failed)
	}

	s.trySend(report)
	log.Printf("[INFO] run %s: done", runID)
}

func (s *Scheduler) trySend(text string) {
	if tn, ok := s.Notifier.(*notifier.TelegramNotifier); ok {
		if err := tn.SendWithRetry(s.Ctx, text, 3); err != nil {
			log.Printf("[ERROR] notify: %v", err)
		}
		return
	}
	if err := s.Notifier.Send(text); err != nil {
		log.Printf("[ERROR] notify: %v", err)
	}
}
