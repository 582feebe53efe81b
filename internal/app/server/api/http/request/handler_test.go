package request

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"credshare/internal/app/server/api/http/middleware/auth"
	"credshare/internal/crypto"
	"credshare/internal/domain/request"
	"credshare/internal/domain/session"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, requesterID, workspaceID int, in request.CreateInput) (request.CreateResult, error) {
	args := m.Called(ctx, requesterID, workspaceID, in)
	return args.Get(0).(request.CreateResult), args.Error(1)
}

func (m *MockService) Fulfill(ctx context.Context, requestID int, publicKeyToken string, answers []request.Answer) error {
	args := m.Called(ctx, requestID, publicKeyToken, answers)
	return args.Error(0)
}

func (m *MockService) Reject(ctx context.Context, requestID int, publicKeyToken string) error {
	args := m.Called(ctx, requestID, publicKeyToken)
	return args.Error(0)
}

func (m *MockService) Describe(ctx context.Context, requestID int, publicKeyToken string) (request.Item, error) {
	args := m.Called(ctx, requestID, publicKeyToken)
	return args.Get(0).(request.Item), args.Error(1)
}

func (m *MockService) Reveal(ctx context.Context, requesterID, requestID int, secretPhrase string) ([]request.Answer, error) {
	args := m.Called(ctx, requesterID, requestID, secretPhrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]request.Answer), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, requesterID, requestID int) (*request.Request, error) {
	args := m.Called(ctx, requesterID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockService) List(ctx context.Context, workspaceID int) (request.ListResponse, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).(request.ListResponse), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, requesterID, requestID int) error {
	args := m.Called(ctx, requesterID, requestID)
	return args.Error(0)
}

func TestHandler_Fulfill(t *testing.T) {
	t.Run("Success_NoSessionRequired", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil, nil, nil)

		input := &fulfillInput{ID: 9}
		input.Body.Token = "pubkey-token"
		input.Body.Answers = []request.Answer{{Name: "apiKey", Value: "sk-123"}}

		svc.On("Fulfill", mock.Anything, 9, "pubkey-token", input.Body.Answers).Return(nil)

		resp, err := h.fulfill(context.Background(), input)

		assert.NoError(t, err)
		assert.Equal(t, "Ok", resp.Body.Status)
	})

	t.Run("AlreadyResolved", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil, nil, nil)

		input := &fulfillInput{ID: 9}
		input.Body.Token = "pubkey-token"
		input.Body.Answers = []request.Answer{{Name: "apiKey", Value: "sk-123"}}

		svc.On("Fulfill", mock.Anything, 9, "pubkey-token", input.Body.Answers).
			Return(request.ErrAlreadyResolved)

		resp, err := h.fulfill(context.Background(), input)

		assert.Nil(t, resp)
		var statusErr huma.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusConflict, statusErr.GetStatus())
	})
}

func TestHandler_Reject(t *testing.T) {
	t.Run("TokenAuthorizes", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil, nil, nil)

		input := &rejectInput{ID: 9}
		input.Body.Token = "pubkey-token"

		svc.On("Reject", mock.Anything, 9, "pubkey-token").Return(nil)

		resp, err := h.reject(context.Background(), input)

		assert.NoError(t, err)
		assert.Equal(t, "Ok", resp.Body.Status)
		svc.AssertExpectations(t)
	})

	t.Run("WrongToken", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil, nil, nil)

		input := &rejectInput{ID: 9}
		input.Body.Token = "someone-elses-token"

		svc.On("Reject", mock.Anything, 9, "someone-elses-token").
			Return(request.ErrTokenMismatch)

		resp, err := h.reject(context.Background(), input)

		assert.Nil(t, resp)
		var statusErr huma.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusForbidden, statusErr.GetStatus())
	})
}

func TestHandler_Find(t *testing.T) {
	t.Run("RequesterOnly", func(t *testing.T) {
		viewer := session.Viewer{UserID: 42, WorkspaceID: 99}
		svc := new(MockService)
		h := NewHandler(svc, nil, nil, nil)

		// the service scopes by requester; the handler must pass the viewer
		svc.On("Get", mock.Anything, viewer.UserID, 9).
			Return(nil, request.ErrNotRequester)

		resp, err := h.find(auth.WithViewer(context.Background(), viewer), &findInput{ID: 9})

		assert.Nil(t, resp)
		var statusErr huma.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusForbidden, statusErr.GetStatus())
		svc.AssertExpectations(t)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		h := NewHandler(nil, nil, nil, nil)

		resp, err := h.find(context.Background(), &findInput{ID: 9})

		assert.Nil(t, resp)
		assert.Error(t, err)
	})
}

func TestHandler_Describe(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, nil, nil, nil)

	input := &describeInput{ID: 9}
	input.Body.Token = "pubkey-token"

	svc.On("Describe", mock.Anything, 9, "pubkey-token").
		Return(request.Item{
			ID:     9,
			Status: request.StatusPending,
			Fields: []request.FieldSpec{{Name: "dbPassword"}},
		}, nil)

	resp, err := h.describe(context.Background(), input)

	assert.NoError(t, err)
	require.Len(t, resp.Body.Fields, 1)
	assert.Equal(t, "dbPassword", resp.Body.Fields[0].Name)
}

func TestHandler_Reveal(t *testing.T) {
	viewer := session.Viewer{UserID: 42, WorkspaceID: 7}
	authCtx := auth.WithViewer(context.Background(), viewer)

	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil, nil, nil)

		input := &revealInput{ID: 9}
		input.Body.SecretPhrase = "correct-horse"

		svc.On("Reveal", mock.Anything, viewer.UserID, 9, "correct-horse").
			Return([]request.Answer{{Name: "apiKey", Value: "sk-123"}}, nil)

		resp, err := h.reveal(authCtx, input)

		assert.NoError(t, err)
		require.Len(t, resp.Body.Answers, 1)
		assert.Equal(t, "sk-123", resp.Body.Answers[0].Value)
	})

	t.Run("WrongPhrase", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil, nil, nil)

		input := &revealInput{ID: 9}
		input.Body.SecretPhrase = "wrong"

		svc.On("Reveal", mock.Anything, viewer.UserID, 9, "wrong").
			Return(nil, crypto.ErrInvalidPhrase)

		resp, err := h.reveal(authCtx, input)

		assert.Nil(t, resp)
		var statusErr huma.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusUnprocessableEntity, statusErr.GetStatus())
	})

	t.Run("Unauthorized", func(t *testing.T) {
		h := NewHandler(nil, nil, nil, nil)

		resp, err := h.reveal(context.Background(), &revealInput{ID: 9})

		assert.Nil(t, resp)
		assert.Error(t, err)
	})
}
