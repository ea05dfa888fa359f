package applicationRepo

import (
	"context"
	"errors"
	"time"

	"doctorsmile/database"
	"doctorsmile/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoApplicationRepo struct {
	coll *mongo.Collection
}

// NewMongoApplicationRepo returns an ApplicationRepository backed by MongoDB.
func NewMongoApplicationRepo() ApplicationRepository {
	db := database.MongoClient.Database("doctorsmile")
	return &mongoApplicationRepo{
		coll: db.Collection("applications"),
	}
}

// Create inserts a new application and returns its ID.
func (r *mongoApplicationRepo) Create(ctx context.Context, app models.Application) (string, error) {
	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, app)
	if err != nil {
		return "", err
	}
	return app.ID, nil
}

// GetByID returns an application by its ID.
func (r *mongoApplicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// SetStatus advances the stored status of an application.
func (r *mongoApplicationRepo) SetStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
