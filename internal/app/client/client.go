package client

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/slog"

	"credshare/internal/app/client/config"
)

type ctxKey struct{}

// IntoContext attaches the app to the command context.
func IntoContext(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, app)
}

// FromContext extracts the app placed there by the root command.
func FromContext(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(ctxKey{}).(*App)
	if !ok || app == nil {
		return nil, fmt.Errorf("client is not initialized")
	}
	return app, nil
}

// App is the client-side facade: it talks to the server API and keeps a
// local sqlite history of the links this machine produced and consumed.
type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *httpClient
	history    *HistoryStore
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl, err := NewHTTPClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init http client: %w", err)
	}

	history, err := NewHistoryStore(cfg.HistoryPath)
	if err != nil {
		return nil, fmt.Errorf("init history store: %w", err)
	}

	app := &App{
		config:     cfg,
		log:        log,
		httpClient: httpCl,
		history:    history,
	}

	if token, err := app.GetToken(); err == nil && token != "" {
		httpCl.SetToken(token)
		log.Debug("token loaded from file")
	}

	return app, nil
}

func (a *App) Close() error {
	return a.history.Close()
}

// CheckConnection pings the server health endpoint.
func (a *App) CheckConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return a.httpClient.HealthCheck(ctx)
}

// GetToken returns the stored API token.
func (a *App) GetToken() (string, error) {
	tokenBytes, err := os.ReadFile(a.config.TokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no token found; put your API token into %s", a.config.TokenPath)
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	return string(tokenBytes), nil
}

// SaveToken stores the API token for subsequent calls.
func (a *App) SaveToken(token string) error {
	if err := os.WriteFile(a.config.TokenPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	a.httpClient.SetToken(token)
	return nil
}

// IsAuthenticated reports whether an API token is available.
func (a *App) IsAuthenticated() bool {
	token, err := a.GetToken()
	return err == nil && token != ""
}

// ==================== Credentials ====================

// Share sends the credential for server-side encryption and records the
// returned link locally. The link is the only copy of the public key share.
func (a *App) Share(ctx context.Context, req ShareRequest) (ShareResponse, error) {
	if !a.IsAuthenticated() {
		return ShareResponse{}, fmt.Errorf("authentication required; configure your API token first")
	}

	resp, err := a.httpClient.ShareCredential(ctx, req)
	if err != nil {
		return ShareResponse{}, err
	}

	if err := a.history.Add(&HistoryEntry{
		Kind:     HistoryKindShared,
		RemoteID: resp.ID,
		Name:     req.Name,
		Link:     resp.ShareLink,
	}); err != nil {
		a.log.Warn("failed to record history", "error", err)
	}

	return resp, nil
}

// View consumes one view of a shared credential through its link.
func (a *App) View(ctx context.Context, link string) (ViewResponse, error) {
	id, token, err := ParseLink(link)
	if err != nil {
		return ViewResponse{}, err
	}

	resp, err := a.httpClient.ViewCredential(ctx, id, token)
	if err != nil {
		return ViewResponse{}, err
	}

	if err := a.history.Add(&HistoryEntry{
		Kind:     HistoryKindViewed,
		RemoteID: id,
		Name:     resp.Name,
	}); err != nil {
		a.log.Warn("failed to record history", "error", err)
	}

	return resp, nil
}

func (a *App) ListCredentials(ctx context.Context) (CredentialList, error) {
	if !a.IsAuthenticated() {
		return CredentialList{}, fmt.Errorf("authentication required; configure your API token first")
	}
	return a.httpClient.ListCredentials(ctx)
}

func (a *App) ExpireCredential(ctx context.Context, id int) error {
	if !a.IsAuthenticated() {
		return fmt.Errorf("authentication required; configure your API token first")
	}
	return a.httpClient.ExpireCredential(ctx, id)
}

func (a *App) DeleteCredential(ctx context.Context, id int) error {
	if !a.IsAuthenticated() {
		return fmt.Errorf("authentication required; configure your API token first")
	}
	return a.httpClient.DeleteCredential(ctx, id)
}

func (a *App) ListTypes(ctx context.Context) (TypeList, error) {
	return a.httpClient.ListTypes(ctx)
}

// ==================== Requests ====================

// CreateRequest asks the server for a new credential request and records the
// fulfill link. The secret phrase never leaves this call unhashed anywhere
// except inside the request body to the server's KDF.
func (a *App) CreateRequest(ctx context.Context, req CreateRequestRequest) (CreateRequestResponse, error) {
	if !a.IsAuthenticated() {
		return CreateRequestResponse{}, fmt.Errorf("authentication required; configure your API token first")
	}

	resp, err := a.httpClient.CreateRequest(ctx, req)
	if err != nil {
		return CreateRequestResponse{}, err
	}

	if err := a.history.Add(&HistoryEntry{
		Kind:     HistoryKindRequested,
		RemoteID: resp.ID,
		Link:     resp.FulfillLink,
	}); err != nil {
		a.log.Warn("failed to record history", "error", err)
	}

	return resp, nil
}

// Fulfill answers a credential request through its link.
func (a *App) Fulfill(ctx context.Context, link string, answers []Answer) error {
	id, token, err := ParseLink(link)
	if err != nil {
		return err
	}

	if err := a.httpClient.FulfillRequest(ctx, id, FulfillRequestRequest{
		Token:   token,
		Answers: answers,
	}); err != nil {
		return err
	}

	if err := a.history.Add(&HistoryEntry{
		Kind:     HistoryKindFulfilled,
		RemoteID: id,
	}); err != nil {
		a.log.Warn("failed to record history", "error", err)
	}

	return nil
}

// Reject declines a credential request through its link. The key token in
// the link is what authorizes the rejection.
func (a *App) Reject(ctx context.Context, link string) error {
	id, token, err := ParseLink(link)
	if err != nil {
		return err
	}
	return a.httpClient.RejectRequest(ctx, id, token)
}

// Describe fetches the fields a request asks for, authorized by the link.
func (a *App) Describe(ctx context.Context, link string) (RequestItem, error) {
	id, token, err := ParseLink(link)
	if err != nil {
		return RequestItem{}, err
	}
	return a.httpClient.DescribeRequest(ctx, id, token)
}

// Reveal decrypts the fulfilled answers with the secret phrase.
func (a *App) Reveal(ctx context.Context, id int, secretPhrase string) ([]Answer, error) {
	if !a.IsAuthenticated() {
		return nil, fmt.Errorf("authentication required; configure your API token first")
	}

	resp, err := a.httpClient.RevealRequest(ctx, id, secretPhrase)
	if err != nil {
		return nil, err
	}

	if err := a.history.Add(&HistoryEntry{
		Kind:     HistoryKindRevealed,
		RemoteID: id,
	}); err != nil {
		a.log.Warn("failed to record history", "error", err)
	}

	return resp.Answers, nil
}

func (a *App) ListRequests(ctx context.Context) (RequestList, error) {
	if !a.IsAuthenticated() {
		return RequestList{}, fmt.Errorf("authentication required; configure your API token first")
	}
	return a.httpClient.ListRequests(ctx)
}

// ==================== History ====================

func (a *App) History(kind string, limit int) ([]*HistoryEntry, error) {
	return a.history.List(kind, limit)
}
