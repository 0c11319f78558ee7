package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicportal/database"
	"clinicportal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoServiceOptionRepo implements ServiceOptionRepository using MongoDB.
type MongoServiceOptionRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceOptionRepo creates a new ServiceOptionRepository backed by
// the appointmentOptions collection.
func NewMongoServiceOptionRepo() ServiceOptionRepository {
	coll := database.DB().Collection("appointmentOptions")
	repo := &MongoServiceOptionRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoServiceOptionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoServiceOptionRepo) GetAll(ctx context.Context) ([]models.ServiceOption, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment options: %w", err)
	}
	defer cursor.Close(ctx)

	var opts []models.ServiceOption
	if err := cursor.All(ctx, &opts); err != nil {
		return nil, fmt.Errorf("failed to decode appointment options: %w", err)
	}
	return opts, nil
}

func (r *MongoServiceOptionRepo) GetNames(ctx context.Context) ([]models.SpecialtyRef, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"id": 1, "name": 1})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch specialty names: %w", err)
	}
	defer cursor.Close(ctx)

	var refs []models.SpecialtyRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, fmt.Errorf("failed to decode specialty names: %w", err)
	}
	return refs, nil
}

func (r *MongoServiceOptionRepo) GetByName(ctx context.Context, name string) (*models.ServiceOption, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var opt models.ServiceOption
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&opt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment option %q: %w", name, err)
	}
	return &opt, nil
}

func (r *MongoServiceOptionRepo) Create(ctx context.Context, option *models.ServiceOption) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if option.ID == "" {
		option.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, option); err != nil {
		return fmt.Errorf("failed to create appointment option: %w", err)
	}
	return nil
}
