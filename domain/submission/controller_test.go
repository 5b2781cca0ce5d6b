package submission

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akeren/consent-intake/config/router"
	"github.com/akeren/consent-intake/internal/models"
	apperrors "github.com/akeren/consent-intake/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const validPayload = `{"name":"Ana","email":"a@x.com","phone":"11999999999","dobConfirmed":true,"ageRange":"25-34","wantsPhysicalInvites":false,"consentBasic":true}`

func newSubmitServer(t *testing.T, repo SubmissionRepository) *router.RouterService {
	t.Helper()

	rs := router.CreateRouterService(testLogger(), nil)
	rs.MountController(NewSubmissionServiceFactory(repo, testLogger()).CreateController())
	return rs
}

func postSubmit(rs *router.RouterService, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestSubmitHandler_ValidPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockSubmissionRepository(ctrl)

	var stored *models.Submission
	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *models.Submission) error {
			stored = s
			return nil
		}).
		Times(1)

	rs := newSubmitServer(t, mockRepo)
	w, resp := postSubmit(rs, validPayload)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, map[string]any{"ok": true, "message": MsgReceived}, resp)

	require.NotNil(t, stored)
	columns := stored.Columns()
	assert.Equal(t, true, columns["dob_confirmed"])
	assert.Equal(t, "25-34", columns["age_range"])
	assert.Equal(t, false, columns["wants_physical"])
}

func TestSubmitHandler_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "missing name",
			body:    `{"email":"a@x.com","phone":"1","dobConfirmed":true,"ageRange":"25-34","consentBasic":true}`,
			message: MsgContactRequired,
		},
		{
			name:    "missing phone",
			body:    `{"name":"Ana","email":"a@x.com","dobConfirmed":true,"ageRange":"25-34","consentBasic":true}`,
			message: MsgContactRequired,
		},
		{
			name:    "dob absent",
			body:    `{"name":"Ana","email":"a@x.com","phone":"1","ageRange":"25-34","consentBasic":true}`,
			message: MsgAgeNotConfirmed,
		},
		{
			name:    "dob false with everything else valid",
			body:    `{"name":"Ana","email":"a@x.com","phone":"1","dobConfirmed":false,"ageRange":"25-34","wantsPhysicalInvites":true,"cep":"01310100","consentBasic":true}`,
			message: MsgAgeNotConfirmed,
		},
		{
			name:    "age range absent",
			body:    `{"name":"Ana","email":"a@x.com","phone":"1","dobConfirmed":true,"consentBasic":true}`,
			message: MsgAgeRangeRequired,
		},
		{
			name:    "physical invites without cep",
			body:    `{"name":"Ana","email":"a@x.com","phone":"1","dobConfirmed":true,"ageRange":"25-34","wantsPhysicalInvites":true,"consentBasic":true}`,
			message: MsgPostalCodeRequired,
		},
		{
			name:    "physical invites with short cep",
			body:    `{"name":"Ana","email":"a@x.com","phone":"1","dobConfirmed":true,"ageRange":"25-34","wantsPhysicalInvites":true,"cep":"1234567","consentBasic":true}`,
			message: MsgPostalCodeRequired,
		},
		{
			name:    "basic consent false",
			body:    `{"name":"Ana","email":"a@x.com","phone":"1","dobConfirmed":true,"ageRange":"25-34","consentBasic":false,"consentStats":true}`,
			message: MsgBasicConsentMissing,
		},
		{
			name:    "empty object",
			body:    `{}`,
			message: MsgContactRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := NewMockSubmissionRepository(ctrl)
			mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

			rs := newSubmitServer(t, mockRepo)
			w, resp := postSubmit(rs, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, map[string]any{"error": tt.message}, resp)
		})
	}
}

func TestSubmitHandler_NoCepWithoutPhysicalInvites(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockSubmissionRepository(ctrl)
	mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	rs := newSubmitServer(t, mockRepo)
	w, _ := postSubmit(rs, `{"name":"Ana","email":"a@x.com","phone":"1","dobConfirmed":true,"ageRange":"55+","wantsPhysicalInvites":false,"consentBasic":true}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitHandler_VocabularyDetails(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockSubmissionRepository(ctrl)
	mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

	rs := newSubmitServer(t, mockRepo)
	w, resp := postSubmit(rs, `{"name":"Ana","email":"a@x.com","phone":"1","dobConfirmed":true,"ageRange":"25-34","freq":"Anual","consentBasic":true}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, MsgInvalidFieldValues, resp["error"])

	details, ok := resp["details"].([]any)
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Equal(t, "freq", details[0].(map[string]any)["field"])
}

func TestSubmitHandler_MalformedBody(t *testing.T) {
	bodies := map[string]string{
		"not json":    `name=Ana`,
		"truncated":   `{"name":"Ana"`,
		"wrong type":  `{"name":"Ana","dobConfirmed":"yes"}`,
		"array":       `[]`,
		"empty":       ``,
		"nested type": `{"preferences":"Eventos"}`,
		"null":        `null`,
		"padded null": " null\n",
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := NewMockSubmissionRepository(ctrl)
			mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

			rs := newSubmitServer(t, mockRepo)
			w, resp := postSubmit(rs, body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, map[string]any{"error": MsgInvalidPayload}, resp)
		})
	}
}

func TestSubmitHandler_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockSubmissionRepository(ctrl)
	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(apperrors.NewDatabaseError(MsgSaveFailed, errors.New(`duplicate key value violates unique constraint "submissions_pkey"`))).
		Times(1)

	rs := newSubmitServer(t, mockRepo)
	w, resp := postSubmit(rs, validPayload)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"error": MsgSaveFailed}, resp)
	assert.NotContains(t, w.Body.String(), "duplicate key")
}

func TestSubmitHandler_DuplicatePayloadsInsertTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockSubmissionRepository(ctrl)
	mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	rs := newSubmitServer(t, mockRepo)

	w1, _ := postSubmit(rs, validPayload)
	w2, _ := postSubmit(rs, validPayload)

	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestSubmitHandler_OnlyPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	rs := newSubmitServer(t, NewMockSubmissionRepository(ctrl))

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/submit", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestSubmitHandler_RecordsOutcomeMetrics(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "true")

	ctrl := gomock.NewController(t)
	mockRepo := NewMockSubmissionRepository(ctrl)
	mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	rs := newSubmitServer(t, mockRepo)
	postSubmit(rs, validPayload)
	postSubmit(rs, `{}`)
	postSubmit(rs, `{`)

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	assert.Contains(t, body, `consent_submissions_total{outcome="accepted"} 1`)
	assert.Contains(t, body, `consent_submissions_total{outcome="rejected"} 1`)
	assert.Contains(t, body, `consent_submissions_total{outcome="malformed"} 1`)
}
