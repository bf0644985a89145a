package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/architecture-survey/survey-api/internal/models"
	"github.com/architecture-survey/survey-api/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostgresStore keeps used emails and survey responses in the Supabase Postgres
// tables used_emails and survey_responses.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore creates a store over an open gorm connection. The connection
// must be opened with TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Name identifies the store in logs and health checks
func (s *PostgresStore) Name() string {
	return "postgres"
}

// Migrate runs gorm AutoMigrate: missing tables, columns and indexes are created,
// existing columns are kept. A used_emails table created without created_at gains
// that column.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.UsedEmail{}, &models.SurveyResponse{}); err != nil {
		return fmt.Errorf("failed to migrate postgres schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListEmailHashes(ctx context.Context) (hashes []string, err error) {
	ctx, span, cleanup := utils.TraceStoreOperation(ctx, s.Name(), "select", models.UsedEmail{}.TableName())
	defer cleanup()
	defer func() { recordOperation(OpListEmailHashes, err) }()

	hashes = []string{}
	if err := s.db.WithContext(ctx).Model(&models.UsedEmail{}).Pluck("email", &hashes).Error; err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"db.operation": "select"})
		return nil, fmt.Errorf("failed to list email hashes: %w", err)
	}
	utils.AddSpanAttribute(span, "db.result_count", len(hashes))
	return hashes, nil
}

func (s *PostgresStore) InsertEmailHash(ctx context.Context, hash string) (err error) {
	ctx, span, cleanup := utils.TraceStoreOperation(ctx, s.Name(), "insert", models.UsedEmail{}.TableName())
	defer cleanup()
	defer func() { recordOperation(OpInsertEmailHash, err) }()

	row := &models.UsedEmail{
		ID:        uuid.New().String(),
		Email:     hash,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateEmail
		}
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"db.operation": "insert"})
		return fmt.Errorf("failed to insert email hash: %w", err)
	}
	return nil
}

func (s *PostgresStore) CountEmails(ctx context.Context) (count int64, err error) {
	ctx, _, cleanup := utils.TraceStoreOperation(ctx, s.Name(), "count", models.UsedEmail{}.TableName())
	defer cleanup()
	defer func() { recordOperation(OpCountEmails, err) }()

	if err := s.db.WithContext(ctx).Model(&models.UsedEmail{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count emails: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) DeleteAllEmails(ctx context.Context) (err error) {
	ctx, _, cleanup := utils.TraceStoreOperation(ctx, s.Name(), "delete", models.UsedEmail{}.TableName())
	defer cleanup()
	defer func() { recordOperation(OpDeleteAllEmails, err) }()

	err = s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.UsedEmail{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete emails: %w", err)
	}
	return nil
}

func (s *PostgresStore) InsertSurveyResponse(ctx context.Context, period string, responses models.Responses) (resp *models.SurveyResponse, err error) {
	ctx, span, cleanup := utils.TraceStoreOperation(ctx, s.Name(), "insert", models.SurveyResponse{}.TableName())
	defer cleanup()
	defer func() { recordOperation(OpInsertSurveyResponse, err) }()

	resp = &models.SurveyResponse{
		ID:        uuid.New().String(),
		Period:    period,
		Responses: responses,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(resp).Error; err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"db.operation": "insert"})
		return nil, err
	}
	return resp, nil
}

func (s *PostgresStore) ListSurveyResponses(ctx context.Context) (responses []models.SurveyResponse, err error) {
	ctx, _, cleanup := utils.TraceStoreOperation(ctx, s.Name(), "select", models.SurveyResponse{}.TableName())
	defer cleanup()
	defer func() { recordOperation(OpListSurveyResponses, err) }()

	responses = []models.SurveyResponse{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to list survey responses: %w", err)
	}
	return responses, nil
}

func (s *PostgresStore) DeleteAllSurveyResponses(ctx context.Context) (err error) {
	ctx, _, cleanup := utils.TraceStoreOperation(ctx, s.Name(), "delete", models.SurveyResponse{}.TableName())
	defer cleanup()
	defer func() { recordOperation(OpDeleteAllSurveyResponses, err) }()

	err = s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.SurveyResponse{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete survey responses: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) (err error) {
	defer func() { recordOperation(OpPing, err) }()

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
