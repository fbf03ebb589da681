// Package agenthdl - handler kích hoạt chu kỳ ingest thủ công.
package agenthdl

import (
	agentsvc "authority_agent/internal/api/agent/service"
	basehdl "authority_agent/internal/api/base/handler"

	"github.com/gofiber/fiber/v3"
)

// AgentCycleHandler xử lý route chạy chu kỳ ingest theo yêu cầu
type AgentCycleHandler struct {
	CycleService *agentsvc.AgentCycleService
}

// NewAgentCycleHandler tạo một instance mới của AgentCycleHandler
func NewAgentCycleHandler(svc *agentsvc.AgentCycleService) *AgentCycleHandler {
	return &AgentCycleHandler{CycleService: svc}
}

// HandleRunCycle xử lý chạy một chu kỳ ingest ngay lập tức
func (h *AgentCycleHandler) HandleRunCycle(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		result, err := h.CycleService.RunCycle(c.Context())
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}
