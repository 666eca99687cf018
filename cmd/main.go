package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/application/services"
	"github.com/manavmaharishi/voicemation-final/config"
	"github.com/manavmaharishi/voicemation-final/infrastructure/adapters"
	"github.com/manavmaharishi/voicemation-final/infrastructure/gin_interface/controllers"
	"github.com/manavmaharishi/voicemation-final/middleware"
	mockgenerator "github.com/manavmaharishi/voicemation-final/mock"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, reading environment directly")
	}

	workspaceConfig, err := config.GetWorkspaceConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get workspace config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(32, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	prober := adapters.NewFFprobeProber(zeroLogger)

	var completion outbound.CompletionPort
	var renderer outbound.RendererPort
	var synthesizer outbound.SpeechSynthesizerPort
	var transcriber outbound.TranscriberPort

	if os.Getenv("MOCK_MODE") == "true" {
		zeroLogger.Warn("MOCK_MODE enabled, external services are stubbed")
		stubs := mockgenerator.Init(prober, zeroLogger)
		completion = stubs.Completion
		renderer = stubs.Renderer
		synthesizer = stubs.Synthesizer
		transcriber = stubs.Transcriber
	} else {
		completionConfig, err := config.GetCompletionConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get completion config")
		}

		synthesisConfig, err := config.GetSynthesisConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get synthesis config")
		}

		transcriptionConfig, err := config.GetTranscriptionConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get transcription config")
		}

		rendererConfig, err := config.GetRendererConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get renderer config")
		}

		contentFetcher := adapters.NewContentFetcher(zeroLogger)
		completion = adapters.NewCompletionGenerator(completionConfig, zeroLogger)
		renderer = adapters.NewManimRenderer(rendererConfig, zeroLogger)
		synthesizer = adapters.NewTTSSynthesizer(contentFetcher, synthesisConfig, prober, zeroLogger)
		transcriber = adapters.NewWhisperTranscriber(transcriptionConfig, zeroLogger)
	}

	resultStore := adapters.NewMemoryResultStore()
	var publisher outbound.VideoPublisherPort

	if os.Getenv("BUCKET_NAME") != "" || os.Getenv("DYNAMO_TABLE_NAME") != "" {
		sess := session.Must(session.NewSessionWithOptions(session.Options{
			SharedConfigState: session.SharedConfigEnable,
		}))

		if os.Getenv("DYNAMO_TABLE_NAME") != "" {
			dynamoConfig, err := config.GetDynamoConfig()
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to get dynamo config")
			}
			resultStore = adapters.NewDynamoResultStore(zeroLogger, dynamodb.New(sess), dynamoConfig)
		}

		if os.Getenv("BUCKET_NAME") != "" {
			s3Config, err := config.GetS3Config()
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to get s3 config")
			}
			publisher = adapters.NewS3VideoPublisher(zeroLogger, s3.New(sess), s3Config)
		}
	}

	normalizer := services.NewRequestNormalizer(adapters.NewFFmpegTranscoder(zeroLogger), transcriber, zeroLogger)
	materializer := services.NewSceneMaterializer(zeroLogger)
	sceneRenderer := services.NewSceneRenderer(renderer, zeroLogger)
	subtitles := services.NewSubtitleBuilder(zeroLogger)

	pipeline := services.NewAnimationPipeline(
		workspaceConfig,
		normalizer,
		completion,
		materializer,
		sceneRenderer,
		adapters.NewFFmpegConcatenator(zeroLogger),
		synthesizer,
		subtitles,
		adapters.NewFFmpegMuxer(zeroLogger),
		resultStore,
		publisher,
		zeroLogger,
	)

	janitor := services.NewWorkspaceJanitor(workspaceConfig, workerPool, zeroLogger)
	if err := janitor.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start workspace janitor")
	}

	animationController := controllers.NewAnimationController(zeroLogger, pipeline, workerPool, resultStore, workspaceConfig)

	router := gin.Default()
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	if jwksUrl := os.Getenv("JWKS_URL"); jwksUrl != "" {
		authHandler, err := middleware.NewAuthHandler(jwksUrl, zeroLogger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create auth handler!")
		}
		router.Use(authHandler.AuthMiddleware())
	}

	animationController.RegisterRoutes(router)
	router.GET("/events/:request_id", middleware.SSEMiddleware(), animationController.StreamEvents)

	if err := router.Run(":8080"); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
