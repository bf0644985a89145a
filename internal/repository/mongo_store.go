package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/architecture-survey/survey-api/internal/models"
	"github.com/architecture-survey/survey-api/internal/observability"
	"github.com/architecture-survey/survey-api/internal/utils"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoStore keeps used emails and survey responses in two MongoDB collections
type MongoStore struct {
	db              *mongo.Database
	usedEmails      *mongo.Collection
	surveyResponses *mongo.Collection
}

// NewMongoStore creates a store over the given database and collection names
func NewMongoStore(db *mongo.Database, usedEmailsCollection, surveyResponsesCollection string) *MongoStore {
	return &MongoStore{
		db:              db,
		usedEmails:      db.Collection(usedEmailsCollection),
		surveyResponses: db.Collection(surveyResponsesCollection),
	}
}

// Name identifies the store in logs and health checks
func (s *MongoStore) Name() string {
	return "mongodb"
}

// EnsureIndexes creates the unique email index and the created_at ordering index
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.usedEmails.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create %s email index: %w", s.usedEmails.Name(), err)
	}

	_, err = s.surveyResponses.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("created_at_desc"),
	})
	if err != nil {
		return fmt.Errorf("failed to create %s created_at index: %w", s.surveyResponses.Name(), err)
	}

	observability.Logger().Info("mongodb indexes ensured",
		zap.String("used_emails", s.usedEmails.Name()),
		zap.String("survey_responses", s.surveyResponses.Name()))
	return nil
}

func (s *MongoStore) ListEmailHashes(ctx context.Context) (hashes []string, err error) {
	ctx, span, cleanup := utils.TraceStoreOperation(ctx, s.Name(), "find", s.usedEmails.Name())
	defer cleanup()
	defer func() { recordOperation(OpListEmailHashes, err) }()

	opts := options.Find().SetProjection(bson.M{"email": 1, "_id": 0})
	cursor, err := s.usedEmails.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"db.operation": "find"})
		return nil, fmt.Errorf("failed to list email hashes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Email string `bson:"email"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"db.operation": "decode"})
		return nil, fmt.Errorf("failed to decode email hashes: %w", err)
	}

	hashes = make([]string, 0, len(docs))
	for _, d := range docs {
		hashes = append(hashes, d.Email)
	}
	utils.AddSpanAttribute(span, "db.result_count", len(hashes))
	return hashes, nil
}

func (s *MongoStore) InsertEmailHash(ctx context.Context, hash string) (err error) {
	ctx, span, cleanup := utils.TraceStoreOperation(ctx, s.Name(), "insert", s.usedEmails.Name())
	defer cleanup()
	defer func() { recordOperation(OpInsertEmailHash, err) }()

	doc := models.UsedEmail{
		ID:        uuid.New().String(),
		Email:     hash,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.usedEmails.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateEmail
		}
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"db.operation": "insert"})
		return fmt.Errorf("failed to insert email hash: %w", err)
	}
	return nil
}

func (s *MongoStore) CountEmails(ctx context.Context) (count int64, err error) {
	ctx, _, cleanup := utils.TraceStoreOperation(ctx, s.Name(), "count", s.usedEmails.Name())
	defer cleanup()
	defer func() { recordOperation(OpCountEmails, err) }()

	count, err = s.usedEmails.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count emails: %w", err)
	}
	return count, nil
}

func (s *MongoStore) DeleteAllEmails(ctx context.Context) (err error) {
	ctx, _, cleanup := utils.TraceStoreOperation(ctx, s.Name(), "delete_many", s.usedEmails.Name())
	defer cleanup()
	defer func() { recordOperation(OpDeleteAllEmails, err) }()

	if _, err := s.usedEmails.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete emails: %w", err)
	}
	return nil
}

func (s *MongoStore) InsertSurveyResponse(ctx context.Context, period string, responses models.Responses) (resp *models.SurveyResponse, err error) {
	ctx, span, cleanup := utils.TraceStoreOperation(ctx, s.Name(), "insert", s.surveyResponses.Name())
	defer cleanup()
	defer func() { recordOperation(OpInsertSurveyResponse, err) }()

	resp = &models.SurveyResponse{
		ID:        uuid.New().String(),
		Period:    period,
		Responses: responses,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.surveyResponses.InsertOne(ctx, resp); err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"db.operation": "insert"})
		return nil, err
	}
	return resp, nil
}

func (s *MongoStore) ListSurveyResponses(ctx context.Context) (responses []models.SurveyResponse, err error) {
	ctx, _, cleanup := utils.TraceStoreOperation(ctx, s.Name(), "find", s.surveyResponses.Name())
	defer cleanup()
	defer func() { recordOperation(OpListSurveyResponses, err) }()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.surveyResponses.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list survey responses: %w", err)
	}
	defer cursor.Close(ctx)

	responses = []models.SurveyResponse{}
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, fmt.Errorf("failed to decode survey responses: %w", err)
	}
	return responses, nil
}

func (s *MongoStore) DeleteAllSurveyResponses(ctx context.Context) (err error) {
	ctx, _, cleanup := utils.TraceStoreOperation(ctx, s.Name(), "delete_many", s.surveyResponses.Name())
	defer cleanup()
	defer func() { recordOperation(OpDeleteAllSurveyResponses, err) }()

	if _, err := s.surveyResponses.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete survey responses: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) (err error) {
	defer func() { recordOperation(OpPing, err) }()
	return s.db.Client().Ping(ctx, readpref.Primary())
}
