package worker

import (
	"context"
	"time"

	agentsvc "authority_agent/internal/api/agent/service"
	"authority_agent/internal/logger"

	"github.com/robfig/cron/v3"
)

// AgentCycleWorker chạy chu kỳ ingest theo lịch cron.
// Mỗi lần kích hoạt gọi RunCycle của AgentCycleService, dùng chung service với route /run-agent
// nên hai đường kích hoạt không bao giờ chạy chồng lên nhau.
type AgentCycleWorker struct {
	cycleService *agentsvc.AgentCycleService
	schedule     string // Cron spec, vd: "*/15 * * * *"
	cron         *cron.Cron
}

// NewAgentCycleWorker tạo mới AgentCycleWorker.
// Tham số:
//   - cycleService: Service chạy chu kỳ ingest (dùng chung với API)
//   - schedule: Cron spec 5 trường theo giờ UTC
func NewAgentCycleWorker(cycleService *agentsvc.AgentCycleService, schedule string) (*AgentCycleWorker, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, err
	}
	return &AgentCycleWorker{
		cycleService: cycleService,
		schedule:     schedule,
		cron:         cron.New(cron.WithLocation(time.UTC)),
	}, nil
}

// Start đăng ký job và chạy cron cho đến khi ctx bị hủy.
func (w *AgentCycleWorker) Start(ctx context.Context) error {
	log := logger.GetAppLogger()

	_, err := w.cron.AddFunc(w.schedule, func() {
		runCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		start := time.Now()
		result, err := w.cycleService.RunCycle(runCtx)
		if err != nil {
			logger.GetErrorLogger().WithError(err).Error("🤖 [AGENT_CYCLE] Scheduled cycle failed")
			return
		}
		log.WithFields(map[string]interface{}{
			"newPosts":      result.NewPostsFound,
			"approvedCount": result.ApprovedPostsCount,
			"duration":      time.Since(start).String(),
		}).Info("🤖 [AGENT_CYCLE] Scheduled cycle completed")
	})
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"schedule": w.schedule,
	}).Info("🤖 [AGENT_CYCLE] Starting Agent Cycle Worker...")

	w.cron.Start()

	<-ctx.Done()
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	log.Info("🤖 [AGENT_CYCLE] Agent Cycle Worker stopped")
	return nil
}
