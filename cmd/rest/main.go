package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"notes-be/internal/config"
	"notes-be/internal/controller"
	"notes-be/internal/metrics"
	"notes-be/internal/repository"
	"notes-be/internal/server"
	"notes-be/internal/service"
	"notes-be/pkg/database"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	log.SetLevel(cfg.ServerConfig.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		noteRepository repository.INoteRepository
		mongoClient    *mongo.Client
	)

	switch cfg.MongoConfig.Driver {
	case config.StoreDriverMemory:
		noteRepository = repository.NewNoteMemoryRepository()
		log.Info("Using in-memory note store")
	default:
		mongoClient, err = database.ConnectDB(ctx, cfg.MongoConfig.URI)
		if err != nil {
			log.Fatalf("Error connecting to MongoDB: %v", err)
		}

		db := mongoClient.Database(cfg.MongoConfig.Database)
		if cfg.MongoConfig.EnforceSchema {
			if err := repository.EnsureNoteSchema(ctx, db, cfg.MongoConfig.Collection); err != nil {
				log.Fatalf("Error installing note schema: %v", err)
			}
		}

		noteRepository = repository.NewNoteRepository(db, cfg.MongoConfig.Collection)
	}

	watermillLogger := watermill.NewStdLogger(cfg.ServerConfig.LogLevel == "debug", false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	publisherService := service.NewPublisherService(cfg.EventsConfig.Topic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.EventsConfig.Topic)

	noteService := service.NewNoteService(noteRepository, publisherService)
	noteController := controller.NewNoteController(noteService)

	app := server.NewApp(noteController, server.Options{
		StaticDir: cfg.ServerConfig.StaticDir,
		Metrics:   metrics.New(),
	})

	if err := consumerService.Consume(ctx); err != nil {
		log.Fatalf("Error subscribing to note events: %v", err)
	}

	go func() {
		log.Infof("Server is running on port %s", cfg.ServerConfig.Port)
		if err := app.Listen(":" + cfg.ServerConfig.Port); err != nil {
			log.Errorf("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	if err := app.ShutdownWithTimeout(cfg.ServerConfig.ShutdownTimeout); err != nil {
		log.Errorf("Error shutting down server: %v", err)
	}

	if err := pubSub.Close(); err != nil {
		log.Errorf("Error closing event bus: %v", err)
	}

	if mongoClient != nil {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Errorf("Error disconnecting from MongoDB: %v", err)
		}
	}
}
