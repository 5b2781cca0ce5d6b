package submission

import (
	"context"

	"github.com/akeren/consent-intake/internal/log"
	apperrors "github.com/akeren/consent-intake/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type SubmissionService interface {
	// Submit validates req and, when every rule passes, stores it as one new row.
	Submit(ctx context.Context, req *SubmitRequest) (*SubmissionReceipt, error)
}

type submissionService struct {
	logger     *log.Logger
	repository SubmissionRepository
}

func NewSubmissionService(logger *log.Logger, repository SubmissionRepository) SubmissionService {
	return &submissionService{logger: logger, repository: repository}
}

var tracer = otel.Tracer("github.com/akeren/consent-intake/domain/submission")

func (s *submissionService) Submit(ctx context.Context, req *SubmitRequest) (*SubmissionReceipt, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	ctx, span := tracer.Start(ctx, "submission.Submit")
	defer span.End()

	Normalize(req)

	if err := Validate(req); err != nil {
		logger.Warn("Submission rejected", "reason", apperrors.GetHumanReadableMessage(err))
		span.SetAttributes(attribute.String("submission.outcome", outcomeRejected))
		return nil, err
	}

	submission := ToSubmissionModel(req)
	span.SetAttributes(
		attribute.Bool("submission.wants_physical", submission.WantsPhysical),
		attribute.Int("submission.preferences", len(submission.Preferences)),
	)

	if err := s.repository.Insert(ctx, submission); err != nil {
		logger.Error("Failed to save submission", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		span.SetAttributes(attribute.String("submission.outcome", outcomeFailed))

		if apperrors.GetErrorType(err) != apperrors.ErrorTypeDatabaseError {
			return nil, apperrors.NewDatabaseError(MsgSaveFailed, err)
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("submission.outcome", outcomeAccepted))

	receipt := ToSubmissionReceipt(submission)
	logger.Info("Submission stored", "submission_id", receipt.ID)

	return &receipt, nil
}
