package main

import (
	"context"
	"moodcam/internal/config"
	"moodcam/pkg/log"
	"moodcam/pkg/vision/opencv"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.NewLogger().Warnf("Error loading .env file: %v", err)
	}

	logger := log.NewLogger()

	cfg, err := config.LoadAppConfig()
	if err != nil {
		logger.Fatal(err)
	}

	camera := opencv.OpenCamera(logger, cfg.Camera.Device, cfg.Camera.Width, cfg.Camera.Height)
	renderer := opencv.NewRenderer()

	options := []config.ServerOption{
		config.WithFiber(config.NewFiber(logger)),
		config.WithLogger(logger),
		config.WithValidator(config.NewValidator()),
		config.WithAppConfig(cfg),
		config.WithMiddleware(),
	}

	// Closers run in reverse order, so the detectors are registered before the
	// camera and released after it.
	if cfg.Mode == config.ModeLiveness {
		cascades, err := opencv.NewCascadeDetector(cfg.Cascades.FacePath, cfg.Cascades.EyePath)
		if err != nil {
			logger.Fatalf("Error loading cascades: %v", err)
		}
		motion := opencv.NewMotionMeter()

		options = append(options,
			config.WithDetectors(cascades, cascades, motion),
			config.WithCloser(cascades.Close),
			config.WithCloser(motion.Close),
		)
	}

	options = append(options,
		config.WithCamera(camera),
		config.WithRenderer(renderer),
		config.WithLandmarkClient(),
		config.WithLanguageModel(),
		config.WithRedisServer(),
		config.WithMQTTPublisher(),
	)

	server, err := config.NewServer(options...)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	server.StartBroadcast(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	cancel()
	if err := server.Shutdown(10 * time.Second); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
