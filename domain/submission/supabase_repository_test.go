package submission

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	apperrors "github.com/akeren/consent-intake/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supabase-community/supabase-go"
)

type postgrestStub struct {
	mu      sync.Mutex
	status  int
	inserts [][]map[string]any
	headers []http.Header
	gets    int
}

func (s *postgrestStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.URL.Path != "/rest/v1/submissions" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	status := s.status
	if status == 0 {
		status = http.StatusCreated
	}

	switch r.Method {
	case http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		var rows []map[string]any
		_ = json.Unmarshal(body, &rows)
		s.inserts = append(s.inserts, rows)
		s.headers = append(s.headers, r.Header.Clone())
	case http.MethodGet:
		s.gets++
		if status < 400 {
			status = http.StatusOK
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status >= 400 {
		_, _ = w.Write([]byte(`{"code":"PGRST000","message":"stub failure","details":null,"hint":null}`))
		return
	}
	if r.Method == http.MethodGet {
		_, _ = w.Write([]byte(`[]`))
	}
}

func newSupabaseRepo(t *testing.T, stub *postgrestStub) SubmissionRepository {
	t.Helper()

	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)

	client, err := supabase.NewClient(server.URL, "anon-key", nil)
	require.NoError(t, err)

	return NewSupabaseSubmissionRepository(client)
}

func TestSupabaseSubmissionRepository_InsertSendsSnakeCaseRow(t *testing.T) {
	stub := &postgrestStub{}
	repo := newSupabaseRepo(t, stub)

	req := validRequest()
	req.WantsPhysicalInvites = true
	req.CEP = "01310100"
	req.Preferences = []string{"Cursos"}

	require.NoError(t, repo.Insert(context.Background(), ToSubmissionModel(req)))

	require.Len(t, stub.inserts, 1)
	require.Len(t, stub.inserts[0], 1)
	row := stub.inserts[0][0]

	assert.Equal(t, "Ana Souza", row["name"])
	assert.Equal(t, true, row["dob_confirmed"])
	assert.Equal(t, "25-34", row["age_range"])
	assert.Equal(t, true, row["wants_physical"])
	assert.Equal(t, "01310100", row["cep"])
	assert.Equal(t, []any{"Cursos"}, row["preferences"])
	assert.Equal(t, true, row["consent_basic"])
	assert.NotContains(t, row, "dobConfirmed")
	assert.NotContains(t, row, "id")

	assert.Equal(t, "anon-key", stub.headers[0].Get("apikey"))
}

func TestSupabaseSubmissionRepository_InsertFailure(t *testing.T) {
	stub := &postgrestStub{status: http.StatusInternalServerError}
	repo := newSupabaseRepo(t, stub)

	err := repo.Insert(context.Background(), ToSubmissionModel(validRequest()))

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeDatabaseError, apperrors.GetErrorType(err))
	assert.Equal(t, MsgSaveFailed, apperrors.GetHumanReadableMessage(err))
	assert.Len(t, stub.inserts, 1)
}

func TestSupabaseSubmissionRepository_CancelledContext(t *testing.T) {
	stub := &postgrestStub{}
	repo := newSupabaseRepo(t, stub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Insert(ctx, ToSubmissionModel(validRequest()))

	require.Error(t, err)
	assert.Empty(t, stub.inserts)
}

func TestSupabaseSubmissionRepository_Ping(t *testing.T) {
	stub := &postgrestStub{}
	repo := newSupabaseRepo(t, stub)

	require.NoError(t, repo.Ping(context.Background()))
	assert.Equal(t, 1, stub.gets)

	stub.status = http.StatusServiceUnavailable
	err := repo.Ping(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeStoreUnavailable, apperrors.GetErrorType(err))
}
