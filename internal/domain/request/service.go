package request

import (
	"context"
	"crypto/hmac"
	"fmt"

	"credshare/internal/crypto"

	"golang.org/x/exp/slog"
)

// Servicer defines the business logic for the credentials-request flow.
// Operations on the fulfiller side (Describe, Fulfill, Reject) are
// authorized by possession of the link's key token; operations on the
// requester side are scoped to the requester.
type Servicer interface {
	Create(ctx context.Context, requesterID, workspaceID int, in CreateInput) (CreateResult, error)
	Describe(ctx context.Context, requestID int, publicKeyToken string) (Item, error)
	Fulfill(ctx context.Context, requestID int, publicKeyToken string, answers []Answer) error
	Reject(ctx context.Context, requestID int, publicKeyToken string) error
	Reveal(ctx context.Context, requesterID, requestID int, secretPhrase string) ([]Answer, error)
	Get(ctx context.Context, requesterID, requestID int) (*Request, error)
	List(ctx context.Context, workspaceID int) (ListResponse, error)
	Delete(ctx context.Context, requesterID, requestID int) error
}

type Service struct {
	repo    Repository
	suite   *crypto.Suite
	baseURL string
	log     *slog.Logger
}

func NewService(repo Repository, suite *crypto.Suite, baseURL string, log *slog.Logger) Servicer {
	return &Service{
		repo:    repo,
		suite:   suite,
		baseURL: baseURL,
		log:     log.With("component", "request_service"),
	}
}

// Create generates a fresh keypair for the request, seals the private key
// under the secret phrase, and discards the plaintext key. The public key
// leaves this call only inside the fulfillment link; the phrase leaves it
// not at all.
func (s *Service) Create(ctx context.Context, requesterID, workspaceID int, in CreateInput) (CreateResult, error) {
	if len(in.Fields) == 0 {
		return CreateResult{}, fmt.Errorf("%w: at least one field required", ErrInvalidSpec)
	}
	if in.SecretPhrase == "" {
		return CreateResult{}, fmt.Errorf("%w: secret phrase required", ErrInvalidSpec)
	}
	seen := make(map[string]struct{}, len(in.Fields))
	for _, f := range in.Fields {
		if f.Name == "" {
			return CreateResult{}, fmt.Errorf("%w: field name required", ErrInvalidSpec)
		}
		if err := f.Type.Validate(); err != nil {
			return CreateResult{}, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
		}
		if _, dup := seen[f.Name]; dup {
			return CreateResult{}, fmt.Errorf("%w: duplicate field %q", ErrInvalidSpec, f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	pair, err := s.suite.GenerateRequestKeyPair()
	if err != nil {
		s.log.Error("failed to generate request keypair", "requester_id", requesterID, "error", err)
		return CreateResult{}, fmt.Errorf("generate keypair: %w", err)
	}

	sealedKey, err := s.suite.SealPrivateKey(pair.Private, in.SecretPhrase)
	if err != nil {
		return CreateResult{}, fmt.Errorf("seal private key: %w", err)
	}

	fields := make([]Field, len(in.Fields))
	for i, f := range in.Fields {
		fields[i] = Field{Name: f.Name, Description: f.Description, Type: f.Type}
	}

	req := &Request{
		WorkspaceID:          workspaceID,
		RequesterID:          requesterID,
		Status:               StatusPending,
		Fields:               fields,
		EncryptedPrivateKey:  sealedKey,
		PublicKeyFingerprint: crypto.Fingerprint(pair.Public),
	}

	id, err := s.repo.Create(ctx, req)
	if err != nil {
		s.log.Error("failed to create request", "requester_id", requesterID, "error", err)
		return CreateResult{}, fmt.Errorf("create request: %w", err)
	}

	s.log.Info("credentials request created", "request_id", id, "requester_id", requesterID, "fields", len(fields))

	return CreateResult{
		ID:          id,
		FulfillLink: crypto.FulfillLink(s.baseURL, id, pair.Public),
	}, nil
}

// Fulfill encrypts every answer under the request's public key (taken from
// the fulfillment link, never from the store) and patches all fields in one
// transition to fulfilled. Answers are matched to fields strictly by name;
// a partial or over-complete answer set fails the whole fulfillment.
func (s *Service) Fulfill(ctx context.Context, requestID int, publicKeyToken string, answers []Answer) error {
	publicKey, err := s.suite.DecodePublicKeyToken(publicKeyToken)
	if err != nil {
		return err
	}

	req, err := s.repo.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if !holdsLink(req, publicKey) {
		return ErrTokenMismatch
	}
	if req.Status != StatusPending {
		return ErrAlreadyResolved
	}

	byName := make(map[string]string, len(answers))
	for _, a := range answers {
		byName[a.Name] = a.Value
	}
	if len(byName) != len(req.Fields) || len(answers) != len(req.Fields) {
		return fmt.Errorf("%w: got %d answers for %d fields", ErrFieldMismatch, len(answers), len(req.Fields))
	}

	fields := make([]Field, len(req.Fields))
	for i, f := range req.Fields {
		value, ok := byName[f.Name]
		if !ok {
			return fmt.Errorf("%w: missing answer for %q", ErrFieldMismatch, f.Name)
		}

		encrypted, err := s.suite.EncryptWithPublicKey([]byte(value), publicKey)
		if err != nil {
			s.log.Error("failed to encrypt answer", "request_id", requestID, "field", f.Name, "error", err)
			return fmt.Errorf("encrypt answer %q: %w", f.Name, err)
		}

		fields[i] = f
		fields[i].EncryptedValue = encrypted
	}

	if err := s.repo.Fulfill(ctx, requestID, fields); err != nil {
		return err
	}

	s.log.Info("request fulfilled", "request_id", requestID, "fields", len(fields))
	return nil
}

// Reject is the other terminal transition out of pending. Like Fulfill it
// happens on the link-holder's side: the key token is the authority, a bare
// request ID rejects nothing.
func (s *Service) Reject(ctx context.Context, requestID int, publicKeyToken string) error {
	publicKey, err := s.suite.DecodePublicKeyToken(publicKeyToken)
	if err != nil {
		return err
	}

	req, err := s.repo.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if !holdsLink(req, publicKey) {
		return ErrTokenMismatch
	}

	if err := s.repo.Reject(ctx, requestID); err != nil {
		return err
	}
	s.log.Info("request rejected", "request_id", requestID)
	return nil
}

// Describe returns the declared fields and status for the fulfillment page.
// No session exists on that side of the exchange; the key token carried in
// the link is what authorizes the lookup.
func (s *Service) Describe(ctx context.Context, requestID int, publicKeyToken string) (Item, error) {
	publicKey, err := s.suite.DecodePublicKeyToken(publicKeyToken)
	if err != nil {
		return Item{}, err
	}

	req, err := s.repo.Get(ctx, requestID)
	if err != nil {
		return Item{}, err
	}
	if !holdsLink(req, publicKey) {
		return Item{}, ErrTokenMismatch
	}

	return req.Item(), nil
}

// Reveal opens the sealed private key with the requester's phrase and
// decrypts every fulfilled answer. The recovered key lives only for the
// duration of the call.
func (s *Service) Reveal(ctx context.Context, requesterID, requestID int, secretPhrase string) ([]Answer, error) {
	req, err := s.repo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.RequesterID != requesterID {
		return nil, ErrNotRequester
	}
	if req.Status != StatusFulfilled {
		return nil, fmt.Errorf("%w: request is %s", ErrNotFulfilled, req.Status)
	}

	privateKey, err := s.suite.OpenPrivateKey(req.EncryptedPrivateKey, secretPhrase)
	if err != nil {
		s.log.Warn("private key open refused", "request_id", requestID, "error", err)
		return nil, err
	}

	answers := make([]Answer, len(req.Fields))
	for i, f := range req.Fields {
		plaintext, err := s.suite.DecryptWithPrivateKey(f.EncryptedValue, privateKey)
		if err != nil {
			return nil, fmt.Errorf("decrypt answer %q: %w", f.Name, err)
		}
		answers[i] = Answer{Name: f.Name, Value: string(plaintext)}
	}

	s.log.Info("request revealed", "request_id", requestID, "requester_id", requesterID)
	return answers, nil
}

// Get returns request metadata to its requester, no key material. Requests
// are owned by the creating user; other viewers use Describe with the link
// token instead.
func (s *Service) Get(ctx context.Context, requesterID, requestID int) (*Request, error) {
	req, err := s.repo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.RequesterID != requesterID {
		return nil, ErrNotRequester
	}
	return req, nil
}

// holdsLink reports whether the presented public key is the one this
// request was created with, by fingerprint comparison.
func holdsLink(req *Request, publicKey []byte) bool {
	return hmac.Equal(crypto.Fingerprint(publicKey), req.PublicKeyFingerprint)
}

func (s *Service) List(ctx context.Context, workspaceID int) (ListResponse, error) {
	reqs, err := s.repo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		s.log.Error("failed to list requests", "workspace_id", workspaceID, "error", err)
		return ListResponse{}, fmt.Errorf("list requests: %w", err)
	}

	items := make([]Item, len(reqs))
	for i := range reqs {
		items[i] = reqs[i].Item()
	}

	return ListResponse{Requests: items, Total: len(items)}, nil
}

func (s *Service) Delete(ctx context.Context, requesterID, requestID int) error {
	req, err := s.repo.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if req.RequesterID != requesterID {
		return ErrNotRequester
	}

	if err := s.repo.Delete(ctx, requestID); err != nil {
		s.log.Error("failed to delete request", "request_id", requestID, "error", err)
		return fmt.Errorf("delete request: %w", err)
	}

	s.log.Info("request deleted", "request_id", requestID, "requester_id", requesterID)
	return nil
}
