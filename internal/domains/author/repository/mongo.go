package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-backend/internal/domains/author/model"
)

const CollectionName = "authors"

// authorDocument is the stored shape of an author in MongoDB.
type authorDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	UserName  string             `bson:"userName"`
}

func (d *authorDocument) toModel() *model.Author {
	return &model.Author{
		ID:        d.ID.Hex(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		UserName:  d.UserName,
	}
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates the repository and ensures the unique userName index.
// Index failure is logged, not fatal.
func NewMongoRepository(ctx context.Context, db *mongo.Database) RepositoryInterface {
	collection := db.Collection(CollectionName)

	indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "userName", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(indexCtx, indexModel); err != nil {
		log.Warn().Err(err).Str("collection", CollectionName).Msg("failed to create index on userName")
	}

	return &mongoRepository{collection: collection}
}

func (r *mongoRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	doc := authorDocument{
		ID:        primitive.NewObjectID(),
		FirstName: a.FirstName,
		LastName:  a.LastName,
		UserName:  a.UserName,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, model.ErrDuplicateUserName
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return doc.toModel(), nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id string) (*model.Author, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrAuthorNotFound
	}
	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *mongoRepository) FindByUserName(ctx context.Context, userName string) (*model.Author, error) {
	return r.findOne(ctx, bson.M{"userName": userName})
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*model.Author, error) {
	var doc authorDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to find author: %w", err)
	}
	return doc.toModel(), nil
}

func (r *mongoRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Author, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			objectIDs = append(objectIDs, oid)
		}
	}
	if len(objectIDs) == 0 {
		return []*model.Author{}, nil
	}

	return r.find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]*model.Author, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoRepository) find(ctx context.Context, filter bson.M) ([]*model.Author, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []authorDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode authors: %w", err)
	}

	authors := make([]*model.Author, 0, len(docs))
	for i := range docs {
		authors = append(authors, docs[i].toModel())
	}
	return authors, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID}); err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	return nil
}
