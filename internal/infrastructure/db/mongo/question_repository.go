package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/questionsapp/questions-api/internal/core/domain"
)

const questionsCollection = "questions"

type MongoQuestionRepository struct {
	coll *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *MongoQuestionRepository {
	return &MongoQuestionRepository{coll: db.Collection(questionsCollection)}
}

type mongoQuestion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Author    string             `bson:"author,omitempty"`
	Title     string             `bson:"title"`
	Body      string             `bson:"body"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoQuestionRepository) Insert(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	doc := mongoQuestion{
		Author:    q.Author,
		Title:     q.Title,
		Body:      q.Body,
		CreatedAt: q.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}

	created := *q
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoQuestionRepository) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrQuestionNotFound
	}

	var mq mongoQuestion
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mq); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	return toDomainQuestion(&mq), nil
}

func (r *MongoQuestionRepository) List(ctx context.Context) ([]domain.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Question
	for cursor.Next(ctx) {
		var mq mongoQuestion
		if err := cursor.Decode(&mq); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		out = append(out, *toDomainQuestion(&mq))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return out, nil
}

func (r *MongoQuestionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrQuestionNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func toDomainQuestion(mq *mongoQuestion) *domain.Question {
	return &domain.Question{
		ID:        mq.ID.Hex(),
		Author:    mq.Author,
		Title:     mq.Title,
		Body:      mq.Body,
		CreatedAt: unixToTime(mq.CreatedAt),
	}
}
