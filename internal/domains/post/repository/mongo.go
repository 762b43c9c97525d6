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

	"blog-backend/internal/domains/post/model"
)

const CollectionName = "posts"

// postDocument is the stored shape of a post in MongoDB. The author is a
// reference to the authors collection.
type postDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Title    string             `bson:"title"`
	Content  string             `bson:"content"`
	Author   primitive.ObjectID `bson:"author"`
	Comments []commentDocument  `bson:"comments"`
}

type commentDocument struct {
	ID      primitive.ObjectID `bson:"_id"`
	Content string             `bson:"content"`
}

func (d *postDocument) toModel() *model.Post {
	comments := make([]model.Comment, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, model.Comment{ID: c.ID.Hex(), Content: c.Content})
	}

	authorID := ""
	if !d.Author.IsZero() {
		authorID = d.Author.Hex()
	}

	return &model.Post{
		ID:       d.ID.Hex(),
		Title:    d.Title,
		Content:  d.Content,
		AuthorID: authorID,
		Comments: comments,
	}
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates the repository and an index on author, which
// CountByAuthor relies on. Index failure is logged, not fatal.
func NewMongoRepository(ctx context.Context, db *mongo.Database) RepositoryInterface {
	collection := db.Collection(CollectionName)

	indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{Keys: bson.D{{Key: "author", Value: 1}}}
	if _, err := collection.Indexes().CreateOne(indexCtx, indexModel); err != nil {
		log.Warn().Err(err).Str("collection", CollectionName).Msg("failed to create index on author")
	}

	return &mongoRepository{collection: collection}
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]*model.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	posts := make([]*model.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toModel())
	}
	return posts, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrPostNotFound
	}

	var doc postDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return doc.toModel(), nil
}

func (r *mongoRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	authorID, err := primitive.ObjectIDFromHex(post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author reference %q: %w", post.AuthorID, err)
	}

	doc := postDocument{
		ID:       primitive.NewObjectID(),
		Title:    post.Title,
		Content:  post.Content,
		Author:   authorID,
		Comments: make([]commentDocument, 0, len(post.Comments)),
	}
	for _, c := range post.Comments {
		doc.Comments = append(doc.Comments, commentDocument{ID: primitive.NewObjectID(), Content: c.Content})
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return doc.toModel(), nil
}

func (r *mongoRepository) UpdateByID(ctx context.Context, id string, update model.PostUpdate) (*model.Post, error) {
	if update.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrPostNotFound
	}

	set := bson.M{}
	for field, value := range update.Fields() {
		set[field] = value
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc postDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return doc.toModel(), nil
}

func (r *mongoRepository) DeleteByID(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID}); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (r *mongoRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return 0, nil
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"author": objectID})
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}
