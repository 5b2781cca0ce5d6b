package submission

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=submission

import (
	"context"

	"github.com/akeren/consent-intake/internal/models"
	apperrors "github.com/akeren/consent-intake/pkg/errors"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	// Insert persists exactly one submission row. Nothing is ever updated or deleted.
	Insert(ctx context.Context, submission *models.Submission) error
	// Ping reports whether the underlying store is reachable.
	Ping(ctx context.Context) error
}

type gormSubmissionRepository struct {
	db *gorm.DB
}

func NewGormSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &gormSubmissionRepository{db: db}
}

func (r *gormSubmissionRepository) Insert(ctx context.Context, submission *models.Submission) error {
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		return apperrors.NewDatabaseError(MsgSaveFailed, err)
	}

	return nil
}

func (r *gormSubmissionRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return apperrors.NewStoreUnavailableError("database handle unavailable", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return apperrors.NewStoreUnavailableError("database ping failed", err)
	}

	return nil
}
