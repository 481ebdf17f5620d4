package config

import (
	"context"
	"fmt"
	assistantHandler "moodcam/internal/api/assistant/handler"
	assistantService "moodcam/internal/api/assistant/service"
	emotionHandler "moodcam/internal/api/emotion/handler"
	emotionService "moodcam/internal/api/emotion/service"
	livenessHandler "moodcam/internal/api/liveness/handler"
	livenessService "moodcam/internal/api/liveness/service"
	statusHandler "moodcam/internal/api/status/handler"
	"moodcam/internal/broadcast"
	"moodcam/internal/entity"
	"moodcam/internal/middleware"
	"moodcam/pkg/gemini"
	"moodcam/pkg/log"
	"moodcam/pkg/mjpeg"
	"moodcam/pkg/mqtt"
	chatGPT "moodcam/pkg/openai"
	"moodcam/pkg/redis"
	"moodcam/pkg/vision"
	websocketPkg "moodcam/pkg/websocket"
	"moodcam/web"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	log         *logrus.Logger
	cfg         AppConfig
	middleware  middleware.Middleware
	validator   *validator.Validate
	handlers    []handler
	camera      vision.FrameSource
	faces       vision.FaceDetector
	eyes        vision.EyeDetector
	motion      vision.MotionMeter
	renderer    vision.Renderer
	landmarks   vision.LandmarkDetector
	llm         assistantService.LanguageModel
	redisServer redis.IRedis
	mqttServer  mqtt.IMQTT
	status      entity.StatusProvider
	streams     *mjpeg.Streams
	closers     []func() error
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{streams: mjpeg.NewStreams()}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.middleware == nil {
		return nil, fmt.Errorf("middleware is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithAppConfig(cfg AppConfig) ServerOption {
	return func(s *Server) error {
		s.cfg = cfg
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, s.cfg.AskRateLimit, s.cfg.AskRateBurst)
		return nil
	}
}

func WithCamera(camera vision.FrameSource) ServerOption {
	return func(s *Server) error {
		if camera == nil {
			return fmt.Errorf("camera is required")
		}
		s.camera = camera
		s.closers = append(s.closers, camera.Close)
		return nil
	}
}

// WithDetectors installs the per-frame analysers of liveness mode.
func WithDetectors(faces vision.FaceDetector, eyes vision.EyeDetector, motion vision.MotionMeter) ServerOption {
	return func(s *Server) error {
		s.faces = faces
		s.eyes = eyes
		s.motion = motion
		return nil
	}
}

func WithRenderer(renderer vision.Renderer) ServerOption {
	return func(s *Server) error {
		s.renderer = renderer
		return nil
	}
}

// WithCloser registers a resource released on Shutdown.
func WithCloser(closer func() error) ServerOption {
	return func(s *Server) error {
		s.closers = append(s.closers, closer)
		return nil
	}
}

// WithLandmarkClient connects to the face-mesh service used in emotion mode. The
// connection is established in the background and retried on demand.
func WithLandmarkClient() ServerOption {
	return func(s *Server) error {
		if s.cfg.Mode != ModeEmotion {
			return nil
		}
		if s.cfg.LandmarkURL == "" {
			s.log.Warn("LANDMARK_WS_URL not set, emotion detection will report neutral")
			return nil
		}

		client := websocketPkg.NewLandmarkClient(s.log, s.cfg.LandmarkURL)
		s.landmarks = client
		s.closers = append(s.closers, func() error {
			client.Close()
			return nil
		})
		return nil
	}
}

// WithLanguageModel builds the configured model client. A failure disables the
// assistant for the lifetime of the process and is not fatal.
func WithLanguageModel() ServerOption {
	return func(s *Server) error {
		switch s.cfg.LLM.Provider {
		case ProviderOpenAI:
			client, err := chatGPT.NewChatGPT(s.cfg.LLM.OpenAIAPIKey, s.cfg.LLM.OpenAIModel)
			if err != nil {
				s.log.Errorf("Failed to create OpenAI client: %v", err)
				return nil
			}
			s.llm = client
			s.closers = append(s.closers, client.Close)
		default:
			client, err := gemini.NewGeminiClient(context.Background(), s.cfg.LLM.GoogleAPIKey, s.cfg.LLM.GeminiModel)
			if err != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
				return nil
			}
			s.llm = client
			s.closers = append(s.closers, client.Close)
		}

		s.log.WithFields(log.Fields{
			"provider": s.cfg.LLM.Provider,
		}).Info("Language model configured")
		return nil
	}
}

// WithRedisServer enables the status broadcast when REDIS_ADDRESS is set.
func WithRedisServer() ServerOption {
	return func(s *Server) error {
		if s.cfg.Redis.Address == "" {
			return nil
		}

		s.redisServer = redis.New(s.log, redis.Options{
			Address:  s.cfg.Redis.Address,
			Password: s.cfg.Redis.Password,
			DB:       s.cfg.Redis.DB,
			Channel:  s.cfg.Redis.Channel,
		})
		s.closers = append(s.closers, s.redisServer.Close)
		return nil
	}
}

// WithMQTTPublisher mirrors the status broadcast onto an MQTT topic when
// MQTT_BROKER_URL is set. An unreachable broker is logged and skipped.
func WithMQTTPublisher() ServerOption {
	return func(s *Server) error {
		if s.cfg.MQTT.Broker == "" {
			return nil
		}

		client, err := mqtt.New(s.log, mqtt.Options{
			Broker:   s.cfg.MQTT.Broker,
			ClientID: s.cfg.MQTT.ClientID,
			Username: s.cfg.MQTT.Username,
			Password: s.cfg.MQTT.Password,
			Topic:    s.cfg.MQTT.Topic,
		})
		if err != nil {
			s.log.Errorf("Failed to create MQTT client: %v", err)
			return nil
		}
		s.mqttServer = client
		s.closers = append(s.closers, client.Close)
		return nil
	}
}

func (s *Server) RegisterHandler() {
	s.engine.Use(recover.New())
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware)

	var moods assistantHandler.MoodSource

	switch s.cfg.Mode {
	case ModeEmotion:
		emotionServices := emotionService.NewEmotionService(s.log, s.camera, s.landmarks, s.renderer)
		emotionHandlers := emotionHandler.New(s.log, s.middleware, emotionServices, s.streams)

		s.status = emotionServices
		moods = emotionServices
		s.handlers = append(s.handlers, emotionHandlers)
	default:
		livenessServices := livenessService.NewLivenessService(s.log, s.camera, livenessService.Detectors{
			Faces:    s.faces,
			Eyes:     s.eyes,
			Motion:   s.motion,
			Renderer: s.renderer,
		})
		livenessHandlers := livenessHandler.New(s.log, s.middleware, livenessServices, s.streams)

		s.status = livenessServices
		moods = livenessServices
		s.handlers = append(s.handlers, livenessHandlers)
	}

	// Assistant
	assistantServices := assistantService.NewAssistantService(s.log, s.llm, s.cfg.LLM.Timeout)
	assistantHandlers := assistantHandler.New(s.log, s.validator, s.middleware, assistantServices, moods)

	// Status push
	statusHandlers := statusHandler.New(s.log, s.status, s.cfg.BroadcastInterval)

	s.setupHealthCheck()
	s.setupUI()
	s.handlers = append(s.handlers, assistantHandlers, statusHandlers)

	for _, h := range s.handlers {
		h.Start(s.engine)
	}
}

// StartBroadcast publishes the status on every configured publisher until ctx
// is done. It is a no-op when neither Redis nor MQTT is configured.
func (s *Server) StartBroadcast(ctx context.Context) {
	if s.status == nil {
		return
	}

	targets := map[string]broadcast.Publisher{}
	if s.redisServer != nil {
		targets["redis:"+s.cfg.Redis.Channel] = s.redisServer
	}
	if s.mqttServer != nil {
		targets["mqtt:"+s.cfg.MQTT.Topic] = s.mqttServer
	}

	for target, publisher := range targets {
		b := broadcast.New(s.log, s.status, publisher, s.cfg.BroadcastInterval)
		go b.Run(ctx)

		s.log.WithFields(log.Fields{
			"target": target,
		}).Info("Status broadcast started")
	}
}

func (s *Server) Run() error {
	port := s.cfg.Port
	if port == "" {
		port = "5000"
	}

	s.log.WithFields(log.Fields{
		"mode": s.cfg.Mode,
		"port": port,
	}).Info("Server listening")

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown ends the video streams, stops accepting requests and then releases
// the camera, detectors and remote clients. Video streams never end on their own,
// so they are cancelled before fiber waits for open connections.
func (s *Server) Shutdown(timeout time.Duration) error {
	if err := s.streams.Stop(timeout); err != nil {
		s.log.Warnf("Error stopping video streams: %v", err)
	}

	err := s.engine.ShutdownWithTimeout(timeout)

	for i := len(s.closers) - 1; i >= 0; i-- {
		if cerr := s.closers[i](); cerr != nil {
			s.log.Warnf("Error releasing resource: %v", cerr)
		}
	}

	return err
}

func (s *Server) Engine() *fiber.App {
	return s.engine
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
			"mode":    s.cfg.Mode,
		})
	})
}

func (s *Server) setupUI() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		ctx.Type("html", "utf-8")
		return ctx.Send(web.Index)
	})

	s.engine.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(web.Static()),
		MaxAge: 3600,
	}))
}
