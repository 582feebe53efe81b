package request

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"credshare/internal/app/server/api/http/middleware/auth"
	"credshare/internal/crypto"
	"credshare/internal/domain/request"
)

type Handler struct {
	service    request.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	public     huma.Middlewares
}

// NewHandler wires the credential-request routes. Describe, fulfill and
// reject are registered with the public middlewares: the fulfiller holds a
// link, not a session, and the key token in that link is what authorizes
// these calls.
func NewHandler(service request.Servicer, log *slog.Logger, mws, public huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
		public:     public,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.revealOp(), h.reveal)
	huma.Register(api, h.deleteOp(), h.delete)

	huma.Register(api, h.describeOp(), h.describe)
	huma.Register(api, h.fulfillOp(), h.fulfill)
	huma.Register(api, h.rejectOp(), h.reject)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	viewer, ok := auth.GetViewer(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	result, err := h.service.Create(ctx, viewer.UserID, viewer.WorkspaceID, request.CreateInput{
		Fields:       input.Body.Fields,
		SecretPhrase: input.Body.SecretPhrase,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &createOutput{Body: result}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	viewer, ok := auth.GetViewer(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	r, err := h.service.Get(ctx, viewer.UserID, input.ID)
	if err != nil {
		return nil, mapError(err)
	}

	return &findOutput{Body: r.Item()}, nil
}

func (h *Handler) describe(ctx context.Context, input *describeInput) (*describeOutput, error) {
	item, err := h.service.Describe(ctx, input.ID, input.Body.Token)
	if err != nil {
		return nil, mapError(err)
	}

	return &describeOutput{Body: item}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	viewer, ok := auth.GetViewer(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	requests, err := h.service.List(ctx, viewer.WorkspaceID)
	if err != nil {
		return nil, mapError(err)
	}

	return &listOutput{Body: requests}, nil
}

func (h *Handler) fulfill(ctx context.Context, input *fulfillInput) (*statusOutput, error) {
	if err := h.service.Fulfill(ctx, input.ID, input.Body.Token, input.Body.Answers); err != nil {
		return nil, mapError(err)
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func (h *Handler) reject(ctx context.Context, input *rejectInput) (*statusOutput, error) {
	if err := h.service.Reject(ctx, input.ID, input.Body.Token); err != nil {
		return nil, mapError(err)
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func (h *Handler) reveal(ctx context.Context, input *revealInput) (*revealOutput, error) {
	viewer, ok := auth.GetViewer(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	answers, err := h.service.Reveal(ctx, viewer.UserID, input.ID, input.Body.SecretPhrase)
	if err != nil {
		return nil, mapError(err)
	}

	return &revealOutput{Body: revealResponse{Answers: answers}}, nil
}

func (h *Handler) delete(ctx context.Context, input *findInput) (*statusOutput, error) {
	viewer, ok := auth.GetViewer(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, viewer.UserID, input.ID); err != nil {
		return nil, mapError(err)
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, request.ErrNotFound):
		return huma.Error404NotFound("request not found")
	case errors.Is(err, request.ErrNotRequester):
		return huma.Error403Forbidden("not the requester")
	case errors.Is(err, request.ErrTokenMismatch):
		return huma.Error403Forbidden("token does not match request key")
	case errors.Is(err, request.ErrAlreadyResolved):
		return huma.Error409Conflict("request already resolved")
	case errors.Is(err, request.ErrNotFulfilled):
		return huma.Error409Conflict("request not fulfilled yet")
	case errors.Is(err, request.ErrFieldMismatch):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, request.ErrInvalidSpec):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, crypto.ErrMalformedToken):
		return huma.Error400BadRequest("malformed key token")
	case errors.Is(err, crypto.ErrInvalidPhrase):
		return huma.Error422UnprocessableEntity("invalid secret phrase")
	case errors.Is(err, crypto.ErrDecryption):
		return huma.Error422UnprocessableEntity("decryption failed")
	default:
		return err
	}
}
