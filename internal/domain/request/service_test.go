package request

import (
	"context"
	"strings"
	"testing"

	"credshare/internal/crypto"
	"credshare/internal/domain/credential"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

const testBaseURL = "https://credshare.example.com"

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, r *Request) (int, error) {
	args := m.Called(ctx, r)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id int) (*Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Request), args.Error(1)
}

func (m *MockRepository) ListByWorkspace(ctx context.Context, workspaceID int) ([]Request, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Request), args.Error(1)
}

func (m *MockRepository) Fulfill(ctx context.Context, id int, fields []Field) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockRepository) Reject(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestSuite(t *testing.T) *crypto.Suite {
	t.Helper()
	cfg := crypto.DefaultConfig()
	cfg.Argon2Time = 1
	cfg.Argon2Memory = 8 * 1024
	cfg.RSABits = 2048
	suite, err := crypto.New(cfg)
	require.NoError(t, err)
	return suite
}

func newTestService(repo Repository, suite *crypto.Suite) Servicer {
	return NewService(repo, suite, testBaseURL, slog.Default())
}

func tokenFromLink(t *testing.T, link string) string {
	t.Helper()
	_, token, ok := strings.Cut(link, "#")
	require.True(t, ok, "fulfill link carries no token: %s", link)
	return token
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	suite := newTestSuite(t)
	service := newTestService(mockRepo, suite)

	var stored *Request
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*request.Request")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*Request) }).
		Return(7, nil)

	result, err := service.Create(context.Background(), 1, 3, CreateInput{
		Fields: []FieldSpec{
			{Name: "apiKey", Type: credential.CredTypeAPIKey},
		},
		SecretPhrase: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, result.ID)
	assert.Contains(t, result.FulfillLink, testBaseURL+"/r/7#")

	require.NotNil(t, stored)
	assert.Equal(t, StatusPending, stored.Status)
	require.Len(t, stored.Fields, 1)
	assert.Empty(t, stored.Fields[0].EncryptedValue)

	// stored key is phrase-sealed; the phrase opens it, nothing else does
	opened, err := suite.OpenPrivateKey(stored.EncryptedPrivateKey, "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, opened)
	_, err = suite.OpenPrivateKey(stored.EncryptedPrivateKey, "wrong")
	assert.ErrorIs(t, err, crypto.ErrInvalidPhrase)
}

func TestService_Create_InvalidSpec(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, newTestSuite(t))

	tests := []struct {
		name string
		in   CreateInput
	}{
		{"no fields", CreateInput{SecretPhrase: "p"}},
		{"no phrase", CreateInput{Fields: []FieldSpec{{Name: "a", Type: credential.CredTypeNote}}}},
		{"unnamed field", CreateInput{Fields: []FieldSpec{{Type: credential.CredTypeNote}}, SecretPhrase: "p"}},
		{"unknown type", CreateInput{Fields: []FieldSpec{{Name: "a", Type: credential.CredType("nope")}}, SecretPhrase: "p"}},
		{"duplicate names", CreateInput{
			Fields: []FieldSpec{
				{Name: "a", Type: credential.CredTypeNote},
				{Name: "a", Type: credential.CredTypeAPIKey},
			},
			SecretPhrase: "p",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), 1, 3, tt.in)
			assert.ErrorIs(t, err, ErrInvalidSpec)
		})
	}

	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_FulfillAndReveal(t *testing.T) {
	mockRepo := new(MockRepository)
	suite := newTestSuite(t)
	service := newTestService(mockRepo, suite)

	// requester side: create
	var stored *Request
	mockRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*Request) }).
		Return(7, nil)

	created, err := service.Create(context.Background(), 1, 3, CreateInput{
		Fields:       []FieldSpec{{Name: "apiKey", Type: credential.CredTypeAPIKey}},
		SecretPhrase: "correct-horse",
	})
	require.NoError(t, err)
	stored.ID = 7

	// fulfiller side: encrypt with the public key from the link
	mockRepo.On("Get", mock.Anything, 7).Return(stored, nil)
	var fulfilled []Field
	mockRepo.On("Fulfill", mock.Anything, 7, mock.AnythingOfType("[]request.Field")).
		Run(func(args mock.Arguments) { fulfilled = args.Get(2).([]Field) }).
		Return(nil)

	err = service.Fulfill(context.Background(), 7, tokenFromLink(t, created.FulfillLink),
		[]Answer{{Name: "apiKey", Value: "sk-123"}})
	require.NoError(t, err)
	require.Len(t, fulfilled, 1)
	assert.NotContains(t, string(fulfilled[0].EncryptedValue), "sk-123")

	// requester side: reveal with the phrase
	stored.Status = StatusFulfilled
	stored.Fields = fulfilled

	answers, err := service.Reveal(context.Background(), 1, 7, "correct-horse")
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, Answer{Name: "apiKey", Value: "sk-123"}, answers[0])

	// wrong phrase is an input mistake, not corruption and not expiry
	_, err = service.Reveal(context.Background(), 1, 7, "wrong-phrase")
	assert.ErrorIs(t, err, crypto.ErrInvalidPhrase)
}

func TestService_Fulfill_FieldMismatch(t *testing.T) {
	mockRepo := new(MockRepository)
	suite := newTestSuite(t)
	service := newTestService(mockRepo, suite)

	pair, err := suite.GenerateRequestKeyPair()
	require.NoError(t, err)
	token := crypto.EncodeKeyToken(pair.Public)

	pending := &Request{
		ID:     7,
		Status: StatusPending,
		Fields: []Field{
			{Name: "apiKey", Type: credential.CredTypeAPIKey},
			{Name: "dbPassword", Type: credential.CredTypePassword},
		},
		PublicKeyFingerprint: crypto.Fingerprint(pair.Public),
	}
	mockRepo.On("Get", mock.Anything, 7).Return(pending, nil)

	tests := []struct {
		name    string
		answers []Answer
	}{
		{"missing answer", []Answer{{Name: "apiKey", Value: "x"}}},
		{"unknown name", []Answer{{Name: "apiKey", Value: "x"}, {Name: "other", Value: "y"}}},
		{"duplicate answer", []Answer{{Name: "apiKey", Value: "x"}, {Name: "apiKey", Value: "y"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Fulfill(context.Background(), 7, token, tt.answers)
			assert.ErrorIs(t, err, ErrFieldMismatch)
		})
	}

	mockRepo.AssertNotCalled(t, "Fulfill")
}

func TestService_Fulfill_AlreadyResolved(t *testing.T) {
	suite := newTestSuite(t)

	pair, err := suite.GenerateRequestKeyPair()
	require.NoError(t, err)

	for _, status := range []Status{StatusFulfilled, StatusRejected} {
		repo := new(MockRepository)
		svc := newTestService(repo, suite)
		repo.On("Get", mock.Anything, 7).Return(&Request{
			ID: 7, Status: status, PublicKeyFingerprint: crypto.Fingerprint(pair.Public),
		}, nil)

		err := svc.Fulfill(context.Background(), 7, crypto.EncodeKeyToken(pair.Public), nil)
		assert.ErrorIs(t, err, ErrAlreadyResolved, "status %s", status)
		repo.AssertNotCalled(t, "Fulfill")
	}
}

func TestService_Fulfill_TokenMismatch(t *testing.T) {
	mockRepo := new(MockRepository)
	suite := newTestSuite(t)
	service := newTestService(mockRepo, suite)

	requestPair, err := suite.GenerateRequestKeyPair()
	require.NoError(t, err)
	otherPair, err := suite.GenerateRequestKeyPair()
	require.NoError(t, err)

	mockRepo.On("Get", mock.Anything, 7).Return(&Request{
		ID:                   7,
		Status:               StatusPending,
		Fields:               []Field{{Name: "apiKey", Type: credential.CredTypeAPIKey}},
		PublicKeyFingerprint: crypto.Fingerprint(requestPair.Public),
	}, nil)

	err = service.Fulfill(context.Background(), 7, crypto.EncodeKeyToken(otherPair.Public),
		[]Answer{{Name: "apiKey", Value: "sk-123"}})
	assert.ErrorIs(t, err, ErrTokenMismatch)
	mockRepo.AssertNotCalled(t, "Fulfill")
}

func TestService_Fulfill_MalformedToken(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, newTestSuite(t))

	err := service.Fulfill(context.Background(), 7, "!bad!", []Answer{{Name: "a", Value: "b"}})
	assert.ErrorIs(t, err, crypto.ErrMalformedToken)
	mockRepo.AssertNotCalled(t, "Get")
}

func TestService_Reject(t *testing.T) {
	suite := newTestSuite(t)

	pair, err := suite.GenerateRequestKeyPair()
	require.NoError(t, err)
	pending := &Request{
		ID:                   7,
		Status:               StatusPending,
		PublicKeyFingerprint: crypto.Fingerprint(pair.Public),
	}

	t.Run("link holder rejects", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, suite)
		repo.On("Get", mock.Anything, 7).Return(pending, nil)
		repo.On("Reject", mock.Anything, 7).Return(nil)

		err := svc.Reject(context.Background(), 7, crypto.EncodeKeyToken(pair.Public))
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("wrong key token", func(t *testing.T) {
		otherPair, err := suite.GenerateRequestKeyPair()
		require.NoError(t, err)

		repo := new(MockRepository)
		svc := newTestService(repo, suite)
		repo.On("Get", mock.Anything, 7).Return(pending, nil)

		err = svc.Reject(context.Background(), 7, crypto.EncodeKeyToken(otherPair.Public))
		assert.ErrorIs(t, err, ErrTokenMismatch)
		repo.AssertNotCalled(t, "Reject")
	})

	t.Run("bare ID rejects nothing", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, suite)

		err := svc.Reject(context.Background(), 7, "")
		assert.ErrorIs(t, err, crypto.ErrMalformedToken)
		repo.AssertNotCalled(t, "Get")
		repo.AssertNotCalled(t, "Reject")
	})
}

func TestService_Get_RequesterScope(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, newTestSuite(t))

	repo.On("Get", mock.Anything, 7).Return(&Request{
		ID:          7,
		WorkspaceID: 3,
		RequesterID: 1,
		Status:      StatusPending,
		Fields:      []Field{{Name: "dbPassword", Type: credential.CredTypePassword}},
	}, nil)

	r, err := svc.Get(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, r.ID)

	// another authenticated user, even in another workspace, sees nothing
	_, err = svc.Get(context.Background(), 42, 7)
	assert.ErrorIs(t, err, ErrNotRequester)
}

func TestService_Describe(t *testing.T) {
	suite := newTestSuite(t)

	pair, err := suite.GenerateRequestKeyPair()
	require.NoError(t, err)
	pending := &Request{
		ID:                   7,
		RequesterID:          1,
		Status:               StatusPending,
		Fields:               []Field{{Name: "apiKey", Description: "CI key", Type: credential.CredTypeAPIKey}},
		PublicKeyFingerprint: crypto.Fingerprint(pair.Public),
	}

	t.Run("link holder sees the fields", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, suite)
		repo.On("Get", mock.Anything, 7).Return(pending, nil)

		item, err := svc.Describe(context.Background(), 7, crypto.EncodeKeyToken(pair.Public))
		require.NoError(t, err)
		assert.Equal(t, StatusPending, item.Status)
		require.Len(t, item.Fields, 1)
		assert.Equal(t, "apiKey", item.Fields[0].Name)
	})

	t.Run("wrong key token", func(t *testing.T) {
		otherPair, err := suite.GenerateRequestKeyPair()
		require.NoError(t, err)

		repo := new(MockRepository)
		svc := newTestService(repo, suite)
		repo.On("Get", mock.Anything, 7).Return(pending, nil)

		_, err = svc.Describe(context.Background(), 7, crypto.EncodeKeyToken(otherPair.Public))
		assert.ErrorIs(t, err, ErrTokenMismatch)
	})
}

func TestService_Reveal_Guards(t *testing.T) {
	suite := newTestSuite(t)

	t.Run("wrong requester", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, suite)
		repo.On("Get", mock.Anything, 7).Return(&Request{ID: 7, RequesterID: 2, Status: StatusFulfilled}, nil)

		_, err := svc.Reveal(context.Background(), 1, 7, "phrase")
		assert.ErrorIs(t, err, ErrNotRequester)
	})

	t.Run("still pending", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, suite)
		repo.On("Get", mock.Anything, 7).Return(&Request{ID: 7, RequesterID: 1, Status: StatusPending}, nil)

		_, err := svc.Reveal(context.Background(), 1, 7, "phrase")
		assert.ErrorIs(t, err, ErrNotFulfilled)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, suite)
		repo.On("Get", mock.Anything, 7).Return(nil, ErrNotFound)

		_, err := svc.Reveal(context.Background(), 1, 7, "phrase")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
