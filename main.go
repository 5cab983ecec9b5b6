package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/km-arc/go-container/app/controllers"
	"github.com/km-arc/go-container/app/providers"
	"github.com/km-arc/go-container/framework/app"
)

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	logger := application.Logger()

	application.Register(&providers.AppServiceProvider{})

	if err := application.Boot(); err != nil {
		logger.Fatal("boot failed", zap.Error(err))
	}

	controllers.NewUserController(application.Container).Routes(application.Router())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
