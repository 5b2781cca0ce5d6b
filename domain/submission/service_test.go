package submission

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/akeren/consent-intake/internal/log"
	"github.com/akeren/consent-intake/internal/models"
	apperrors "github.com/akeren/consent-intake/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testLogger() *log.Logger {
	return log.NewLoggerWithWriter(io.Discard, slog.LevelError)
}

func TestSubmissionService_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockSubmissionRepository(ctrl)
	service := NewSubmissionService(testLogger(), mockRepo)

	t.Run("successful insert maps every field", func(t *testing.T) {
		req := validRequest()
		req.WantsPhysicalInvites = true
		req.CEP = "01310100"
		req.Preferences = []string{"Cursos", "Eventos"}
		req.Freq = "Mensal"
		req.SocialNetwork = "tiktok"
		req.SocialHandle = "@ana"
		req.ConsentStats = true

		var stored *models.Submission
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s *models.Submission) error {
				s.ID = "generated-id"
				stored = s
				return nil
			}).
			Times(1)

		receipt, err := service.Submit(context.Background(), req)

		require.NoError(t, err)
		require.NotNil(t, receipt)
		assert.Equal(t, "generated-id", receipt.ID)
		assert.NotEmpty(t, receipt.ReceivedAt)

		require.NotNil(t, stored)
		assert.Equal(t, req.Name, stored.Name)
		assert.True(t, stored.WantsPhysical)
		assert.Equal(t, "01310100", stored.CEP)
		assert.Equal(t, models.StringSet{"Cursos", "Eventos"}, stored.Preferences)
		assert.Equal(t, "Mensal", stored.Freq)
		assert.Equal(t, "tiktok", stored.SocialNetwork)
		assert.True(t, stored.ConsentStats)
		assert.False(t, stored.ConsentPartners)
	})

	t.Run("validation failure never reaches the store", func(t *testing.T) {
		req := validRequest()
		req.ConsentBasic = false

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		receipt, err := service.Submit(context.Background(), req)

		require.Error(t, err)
		assert.Nil(t, receipt)
		assert.Equal(t, MsgBasicConsentMissing, apperrors.GetHumanReadableMessage(err))
		assert.Equal(t, apperrors.StatusBadRequest, apperrors.HTTPStatusCode(err))
	})

	t.Run("database error surfaces as save failure", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(apperrors.NewDatabaseError(MsgSaveFailed, errors.New("connection reset"))).
			Times(1)

		receipt, err := service.Submit(context.Background(), validRequest())

		require.Error(t, err)
		assert.Nil(t, receipt)
		assert.Equal(t, apperrors.ErrorTypeDatabaseError, apperrors.GetErrorType(err))
		assert.Equal(t, apperrors.StatusInternalServerError, apperrors.HTTPStatusCode(err))
	})

	t.Run("untyped store error is wrapped", func(t *testing.T) {
		cause := errors.New("boom")
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(cause).
			Times(1)

		_, err := service.Submit(context.Background(), validRequest())

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeDatabaseError, apperrors.GetErrorType(err))
		assert.Equal(t, MsgSaveFailed, apperrors.GetHumanReadableMessage(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("duplicate payloads insert twice", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil).
			Times(2)

		_, err := service.Submit(context.Background(), validRequest())
		require.NoError(t, err)
		_, err = service.Submit(context.Background(), validRequest())
		require.NoError(t, err)
	})
}
