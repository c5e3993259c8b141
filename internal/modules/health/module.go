package health

import (
	"net/http"

	"binary_bot/internal/modules/health/service"
	"binary_bot/internal/runner"

	derivws "binary_bot/internal/modules/deriv_ws/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// Register вешает /livez, /readyz, /healthz на общий роутер.
func Register(r gin.IRoutes, state *service.State) {
	r.GET("/livez", func(c *gin.Context) {
		// liveness: процесс жив
		c.String(http.StatusOK, "ok")
	})

	r.GET("/readyz", func(c *gin.Context) {
		if !state.Ready() {
			c.String(http.StatusServiceUnavailable, "not ready")
			return
		}
		c.String(http.StatusOK, "ready")
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, state.Snapshot())
	})
}

func Module() fx.Option {
	return fx.Module("health",
		fx.Provide(
			service.NewState,
			func(s *service.State) derivws.Observer { return s },
			func(s *service.State) runner.Activity { return s },
		),
	)
}
