package submission

import (
	"context"

	"github.com/akeren/consent-intake/internal/models"
	"github.com/akeren/consent-intake/pkg/constants"
	apperrors "github.com/akeren/consent-intake/pkg/errors"
	"github.com/supabase-community/supabase-go"
)

type supabaseSubmissionRepository struct {
	client *supabase.Client
	table  string
}

// NewSupabaseSubmissionRepository writes through the Supabase REST (PostgREST)
// API. The client is built once at startup and shared by all requests.
func NewSupabaseSubmissionRepository(client *supabase.Client) SubmissionRepository {
	return &supabaseSubmissionRepository{
		client: client,
		table:  constants.SubmissionsTable,
	}
}

func (r *supabaseSubmissionRepository) Insert(ctx context.Context, submission *models.Submission) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewDatabaseError(MsgSaveFailed, err)
	}

	rows := []map[string]any{submission.Columns()}

	if _, _, err := r.client.From(r.table).Insert(rows, false, "", "minimal", "").Execute(); err != nil {
		return apperrors.NewDatabaseError(MsgSaveFailed, err)
	}

	return nil
}

func (r *supabaseSubmissionRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewStoreUnavailableError("supabase ping cancelled", err)
	}

	if _, _, err := r.client.From(r.table).Select("id", "", false).Limit(1, "").Execute(); err != nil {
		return apperrors.NewStoreUnavailableError("supabase ping failed", err)
	}

	return nil
}
