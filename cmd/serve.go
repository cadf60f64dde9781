package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-copilot/internal/logger"
	"github.com/spigell/cv-copilot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default is "+server.DefaultAddr+")")
	serveCmd.Flags().String("backend", "", "writer backend: rules or gemini")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	if backend := cmd.Flags().Lookup("backend"); backend.Changed {
		viper.Set("assistant.backend", backend.Value.String())
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if !viper.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("starting the cv-copilot server",
		zap.String("version", version),
		zap.String("backend", config.Assistant.Backend),
	)

	srv := server.New(newOrchestrator(ctx, config.Assistant, logger), logger, version)
	if err := srv.Run(ctx, config.Server.Addr); err != nil {
		logger.Fatal("serving http", zap.Error(err))
	}
}
