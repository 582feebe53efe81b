package credential

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"credshare/internal/app/server/api/http/middleware/auth"
	"credshare/internal/crypto"
	"credshare/internal/domain/credential"
)

type Handler struct {
	service    credential.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	public     huma.Middlewares
}

// NewHandler wires the credential routes. The public middlewares are used
// for the unauthenticated view and type-registry endpoints.
func NewHandler(service credential.Servicer, log *slog.Logger, mws, public huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
		public:     public,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.shareOp(), h.share)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.updateMetaOp(), h.updateMeta)
	huma.Register(api, h.expireOp(), h.expire)
	huma.Register(api, h.deleteOp(), h.delete)

	// No auth: the share link is the capability.
	huma.Register(api, h.viewOp(), h.view)
	huma.Register(api, h.typesOp(), h.types)
}

func (h *Handler) share(ctx context.Context, input *shareInput) (*shareOutput, error) {
	viewer, ok := auth.GetViewer(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	result, err := h.service.Share(ctx, viewer.UserID, viewer.WorkspaceID, credential.ShareInput{
		Type:      input.Body.Type,
		Name:      input.Body.Name,
		Fields:    input.Body.Fields,
		ExpiresAt: input.Body.ExpiresAt,
		MaxViews:  input.Body.MaxViews,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &shareOutput{Body: result}, nil
}

func (h *Handler) view(ctx context.Context, input *viewInput) (*viewOutput, error) {
	result, err := h.service.View(ctx, input.ID, input.Body.Token)
	if err != nil {
		return nil, mapError(err)
	}

	return &viewOutput{Body: result}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	viewer, ok := auth.GetViewer(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.Get(ctx, viewer.UserID, input.ID)
	if err != nil {
		return nil, mapError(err)
	}

	return &findOutput{Body: credential.Item{
		ID:        c.ID,
		Type:      c.Type,
		Name:      c.Name,
		State:     credential.Evaluate(c, time.Now()),
		ViewCount: c.ViewCount,
		MaxViews:  c.MaxViews,
		ExpiresAt: c.ExpiresAt,
		CreatedAt: c.CreatedAt,
	}}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	viewer, ok := auth.GetViewer(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	credentials, err := h.service.List(ctx, viewer.WorkspaceID)
	if err != nil {
		return nil, mapError(err)
	}

	return &listOutput{Body: credentials}, nil
}

func (h *Handler) updateMeta(ctx context.Context, input *updateMetaInput) (*statusOutput, error) {
	viewer, ok := auth.GetViewer(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.UpdateMeta(ctx, viewer.UserID, input.ID, input.Body); err != nil {
		return nil, mapError(err)
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func (h *Handler) expire(ctx context.Context, input *findInput) (*statusOutput, error) {
	viewer, ok := auth.GetViewer(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Expire(ctx, viewer.UserID, input.ID); err != nil {
		return nil, mapError(err)
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
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

func (h *Handler) types(_ context.Context, _ *struct{}) (*typesOutput, error) {
	types := credential.Types()
	infos := make([]typeInfo, 0, len(types))
	for _, t := range types {
		infos = append(infos, typeInfo{Type: t, Fields: t.Fields()})
	}

	return &typesOutput{Body: typesResponse{Types: infos}}, nil
}

// mapError translates domain and crypto errors into HTTP ones.
func mapError(err error) error {
	switch {
	case errors.Is(err, credential.ErrNotFound):
		return huma.Error404NotFound("credential not found")
	case errors.Is(err, credential.ErrNotOwner):
		return huma.Error403Forbidden("not the credential owner")
	case errors.Is(err, credential.ErrInert):
		return huma.Error410Gone("credential is no longer viewable")
	case errors.Is(err, credential.ErrInvalidPayload):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, crypto.ErrMalformedToken):
		return huma.Error400BadRequest("malformed share token")
	case errors.Is(err, crypto.ErrDecryption):
		return huma.Error422UnprocessableEntity("decryption failed")
	default:
		return err
	}
}
