package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pageza/recipe-service/backend/internal/model"
)

type recipeDocument struct {
	ID                      string    `bson:"_id"`
	Name                    string    `bson:"name"`
	Description             string    `bson:"desc"`
	ImagePath               string    `bson:"imagePath"`
	IngredientIDs           []int     `bson:"ingredientIds"`
	IngredientAmountsInGram []int     `bson:"ingredientAmountsInGram"`
	CreatedAt               time.Time `bson:"createdAt"`
	UpdatedAt               time.Time `bson:"updatedAt"`
}

func (d *recipeDocument) toModel() (*model.Recipe, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("stored recipe has malformed id %q: %w", d.ID, err)
	}
	return &model.Recipe{
		ID:                      id,
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
		Name:                    d.Name,
		Description:             d.Description,
		ImagePath:               d.ImagePath,
		IngredientIDs:           nonNil(d.IngredientIDs),
		IngredientAmountsInGram: nonNil(d.IngredientAmountsInGram),
	}, nil
}

// MongoStore keeps one document per recipe in a single collection
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore takes ownership of client; Close disconnects it
func NewMongoStore(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

func (s *MongoStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var doc recipeDocument
	if err := s.collection.FindOne(ctx, byID(id)).Decode(&doc); err != nil {
		return nil, translateMongo(err)
	}
	return doc.toModel()
}

func (s *MongoStore) Insert(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	// BSON dates hold milliseconds
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := recipeDocument{
		ID:                      uuid.NewString(),
		Name:                    recipe.Name,
		Description:             recipe.Description,
		ImagePath:               recipe.ImagePath,
		IngredientIDs:           nonNil(recipe.IngredientIDs),
		IngredientAmountsInGram: nonNil(recipe.IngredientAmountsInGram),
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	return doc.toModel()
}

func (s *MongoStore) UpdateByID(ctx context.Context, id uuid.UUID, recipe *model.Recipe) (*model.Recipe, error) {
	update := bson.M{"$set": bson.M{
		"name":                    recipe.Name,
		"desc":                    recipe.Description,
		"imagePath":               recipe.ImagePath,
		"ingredientIds":           nonNil(recipe.IngredientIDs),
		"ingredientAmountsInGram": nonNil(recipe.IngredientAmountsInGram),
		"updatedAt":               time.Now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc recipeDocument
	if err := s.collection.FindOneAndUpdate(ctx, byID(id), update, opts).Decode(&doc); err != nil {
		return nil, translateMongo(err)
	}
	return doc.toModel()
}

func (s *MongoStore) DeleteByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var doc recipeDocument
	if err := s.collection.FindOneAndDelete(ctx, byID(id)).Decode(&doc); err != nil {
		return nil, translateMongo(err)
	}
	return doc.toModel()
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func byID(id uuid.UUID) bson.M {
	return bson.M{"_id": id.String()}
}

func nonNil(a []int) []int {
	if a == nil {
		return []int{}
	}
	return a
}

func translateMongo(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
