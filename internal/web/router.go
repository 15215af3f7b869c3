package web

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gitlab.com/velorent/booking-widget/internal/booking/guard"
	"gitlab.com/velorent/booking-widget/internal/booking/session"
	"gitlab.com/velorent/booking-widget/internal/booking/submit"
	"gitlab.com/velorent/booking-widget/internal/config"
	"gitlab.com/velorent/booking-widget/internal/store/factory"
	"gitlab.com/velorent/booking-widget/internal/store/interfaces"
	"gitlab.com/velorent/booking-widget/internal/tools/redisfactory"
)

// SetupRouter wires the widget API. The persistence tiers come out of the
// factory and are handed to the orchestrator as plain interfaces, nothing
// downstream touches an ambient client.
func SetupRouter(log *zerolog.Logger, cfg config.Config, redisFactory *redisfactory.Factory) (*gin.Engine, error) {
	startTime := time.Now()

	tierFactory := factory.NewFactory(cfg, redisFactory)

	restHost, err := tierFactory.GetTier("resthost")
	if err != nil {
		return nil, err
	}

	formRelay, err := tierFactory.GetTier("formrelay")
	if err != nil {
		return nil, err
	}

	localVault, err := tierFactory.GetTier("localvault")
	if err != nil {
		return nil, err
	}

	orchestrator := &submit.Orchestrator{
		Daily:  restHost.(interfaces.WithStoreDailyBooking),
		Weekly: restHost.(interfaces.WithStoreWeeklyBooking),
		Relay:  formRelay.(interfaces.WithRelayBooking),
		Vault:  localVault.(interfaces.WithVaultBooking),
	}

	apiRouter, err := newAPIRouter()
	if err != nil {
		return nil, err
	}

	h := &handlers{
		sessions:     session.NewStore(redisFactory.SessionClient()),
		submitGuard:  guard.New(redisFactory.SessionClient(), log),
		orchestrator: orchestrator,
		lister:       restHost.(interfaces.WithListRecentBookings),
		pinger:       restHost.(interfaces.WithPing),
	}

	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.
		Use(StartRequest).
		Use(CorrelationId).
		Use(RegisterLogger(log)).
		Use(TraceLog).
		Use(PanicRecovery)

	// The widget is embedded on third party pages.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.Use(ValidateRequests(apiRouter))

	router.GET("/status", func(c *gin.Context) {
		response := struct {
			Uptime float64 `json:"uptime"`
		}{
			Uptime: time.Since(startTime).Seconds(),
		}

		c.JSON(http.StatusOK, response)
	})

	widget := router.Group("/widget")
	widget.GET("/catalog", h.getCatalog)
	widget.POST("/session", h.openSession)
	widget.GET("/session/:id", h.getSession)
	widget.PATCH("/session/:id/fields", h.patchField)
	widget.POST("/session/:id/submit", h.submitSession)
	widget.POST("/session/:id/close", h.closeSession)

	router.GET("/diagnostics/store", h.storeDiagnostics)

	pprof.Register(router)

	return router, nil
}
