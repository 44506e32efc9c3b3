package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/valyala/fasthttp"

	"dcf-engine/internal/common"
	"dcf-engine/internal/handler"
)

func main() {
	configPath := os.Getenv("DCF_CONFIG")
	if configPath == "" {
		configPath = "dcf.toml"
	}

	config, err := common.Load(configPath)
	if err != nil {
		common.GetLogger().Fatal().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		os.Exit(1)
	}
	logger := common.InitLogger(config)

	h := handler.New(config, logger)
	defer h.Close()

	// Validate already rejected unparsable timeouts.
	readTimeout, _ := config.Server.ReadTimeoutDuration()
	writeTimeout, _ := config.Server.WriteTimeoutDuration()

	server := &fasthttp.Server{
		Handler:            h.Handle,
		Name:               "dcf-engine",
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		MaxRequestBodySize: config.Server.MaxBodyBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", config.Server.Addr()).
			Str("version", common.Version).
			Str("commit", common.GitCommit).
			Msg("DCF engine starting")
		serverErr <- server.ListenAndServe(config.Server.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down")
		if err := server.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("Shutdown failed")
		}
	}
}
