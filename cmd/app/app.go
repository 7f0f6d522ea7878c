package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/planloop/planloop/internal/adapters/config"
	redisStorage "github.com/planloop/planloop/internal/adapters/database/redis"
	"github.com/planloop/planloop/internal/adapters/gateway"
	"github.com/planloop/planloop/pkg/logger"
	"github.com/planloop/planloop/pkg/logger/types"
	"github.com/planloop/planloop/pkg/smtp"
)

// App bundles the shared dependencies handed to handlers and services.
type App struct {
	DB      *gorm.DB
	Redis   *redisStorage.Client
	Mailer  *smtp.Client
	Gateway *gateway.Hub
	Logger  *types.Logger
}

func New(cfg *config.Config) (*App, error) {
	httpLogger, err := logger.Named("http")
	if err != nil {
		return nil, err
	}

	return &App{
		DB:      cfg.Database,
		Redis:   cfg.Redis,
		Mailer:  smtp.NewClient(cfg.SMTPDialer),
		Gateway: gateway.NewHub(),
		Logger:  httpLogger,
	}, nil
}

// Start runs the HTTP server on the configured address.
func (a *App) Start(engine *gin.Engine) {
	addr := fmt.Sprintf("%s:%d",
		viper.GetString("service.server.host"),
		viper.GetInt("service.server.port"),
	)

	logger.Log.Infof("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		logger.Log.Panicf("Server stopped: %v", err)
	}
}
