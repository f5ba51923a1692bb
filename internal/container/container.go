package container

import (
	"log/slog"

	"github.com/wellnest/server/internal/models"
	"github.com/wellnest/server/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger            *slog.Logger
	MongoDBClient     *mongo.Client
	EventsService     *services.EventsService
	EventItemsService *services.EventItemsService
	DirectoryService  *services.DirectoryService
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, mongoDBClient *mongo.Client) *Container {
	// Initialize repositories
	repo := models.MongodbNewRepo(mongoDBClient)
	eventsService := services.NewEventsService(repo, repo)
	eventItemsService := services.NewEventItemsService(repo, repo)
	directoryService := services.NewDirectoryService(repo, repo)

	return &Container{
		Logger:            logger,
		MongoDBClient:     mongoDBClient,
		EventsService:     eventsService,
		EventItemsService: eventItemsService,
		DirectoryService:  directoryService,
	}
}
