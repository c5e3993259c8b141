package service

import (
	"context"
	"net/http"

	"binary_bot/internal/models"
	"binary_bot/internal/runner"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Runs: то, что HTTP нужно от менеджера запусков.
type Runs interface {
	Run(ctx context.Context, req models.RunRequest) models.RunResult
	List() []models.RunSnapshot
	Cancel(id string) error
}

// TradeForm: тело POST /trade, форма или JSON.
type TradeForm struct {
	APIToken     string  `form:"api_token" json:"api_token" binding:"required"`
	InitialStake float64 `form:"initial_stake" json:"initial_stake" binding:"required,gt=0"`
	ProfitTarget float64 `form:"profit_target" json:"profit_target" binding:"required,gt=0"`
}

func (f TradeForm) RunRequest() models.RunRequest {
	return models.RunRequest{
		APIToken:     f.APIToken,
		InitialStake: decimal.NewFromFloat(f.InitialStake),
		ProfitTarget: decimal.NewFromFloat(f.ProfitTarget),
	}
}

type Handler struct {
	runs Runs
	log  *zap.Logger
}

func NewHandler(runs Runs, log *zap.Logger) *Handler {
	return &Handler{runs: runs, log: log}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/trade", h.trade)
	r.GET("/runs", h.list)
	r.POST("/runs/:id/stop", h.stop)
}

// trade держит запрос до конца запуска. Фатальная ошибка запуска: тоже 200, причина в теле.
func (h *Handler) trade(c *gin.Context) {
	var form TradeForm
	if err := c.ShouldBind(&form); err != nil {
		h.writeJSON(c, http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("[API] trade requested",
		zap.Float64("initial_stake", form.InitialStake),
		zap.Float64("profit_target", form.ProfitTarget),
	)
	res := h.runs.Run(c.Request.Context(), form.RunRequest())
	h.writeJSON(c, http.StatusOK, res)
}

func (h *Handler) list(c *gin.Context) {
	h.writeJSON(c, http.StatusOK, gin.H{"runs": h.runs.List()})
}

func (h *Handler) stop(c *gin.Context) {
	id := c.Param("id")
	if err := h.runs.Cancel(id); err != nil {
		if errors.Is(err, runner.ErrRunNotFound) {
			h.writeJSON(c, http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.writeJSON(c, http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.writeJSON(c, http.StatusAccepted, gin.H{"run_id": id, "status": "stopping"})
}

func (h *Handler) writeJSON(c *gin.Context, status int, body any) {
	b, err := sonic.Marshal(body)
	if err != nil {
		h.log.Error("[API] encode response", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(status, "application/json; charset=utf-8", b)
}
