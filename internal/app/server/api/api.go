// The HTTP surface of the credential sharing service:
//
//	GET  /api/v1/health                 # liveness (public)
//	GET  /api/credential-types          # type registry (public)
//	POST /api/credentials               # share a credential (auth)
//	GET  /api/credentials               # list workspace credentials (auth)
//	GET  /api/credentials/{id}          # credential metadata (auth)
//	PATCH /api/credentials/{id}         # edit metadata (auth)
//	POST /api/credentials/{id}/expire   # force expiry (auth)
//	DELETE /api/credentials/{id}        # delete (auth)
//	POST /api/credentials/{id}/view     # disclose via share token (public)
//	POST /api/requests                  # create a request (auth)
//	GET  /api/requests                  # list workspace requests (auth)
//	GET  /api/requests/{id}             # request status (auth)
//	POST /api/requests/{id}/fields      # field specs via key token (public)
//	POST /api/requests/{id}/fulfill     # fulfill via key token (public)
//	POST /api/requests/{id}/reject      # reject via key token (public)
//	POST /api/requests/{id}/reveal      # decrypt answers (auth)
//	DELETE /api/requests/{id}           # delete (auth)
package api

import (
	credentialAPI "credshare/internal/app/server/api/http/credential"
	healthAPI "credshare/internal/app/server/api/http/health"
	"credshare/internal/app/server/api/http/middleware"
	"credshare/internal/app/server/api/http/middleware/auth"
	"credshare/internal/app/server/api/http/middleware/logger"
	requestAPI "credshare/internal/app/server/api/http/request"
	"credshare/internal/crypto"
	"credshare/internal/domain/credential"
	"credshare/internal/domain/request"
	"credshare/internal/domain/session"
	"credshare/internal/infrastructure/storage/postgres"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health     *healthAPI.Handler
	Credential *credentialAPI.Handler
	Request    *requestAPI.Handler
}

// New builds a *chi.Mux with every operation registered through huma.
func New(storage *postgres.Storage, suite *crypto.Suite, baseURL string, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Credshare API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, suite, baseURL, log)
	h.Health.SetupRoutes(API)
	h.Credential.SetupRoutes(API)
	h.Request.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, suite *crypto.Suite, baseURL string, log *slog.Logger) *Handlers {
	sessionRepo := postgres.NewSessionRepository(storage, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	credentialRepo := postgres.NewCredentialRepository(storage, log)
	credentialService := credential.NewService(credentialRepo, suite, baseURL, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	credentialMWs := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	credentialPublicMWs := middlewares.GetAllAndClear()
	credentialHandler := credentialAPI.NewHandler(credentialService, log, credentialMWs, credentialPublicMWs)

	requestRepo := postgres.NewRequestRepository(storage, log)
	requestService := request.NewService(requestRepo, suite, baseURL, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	requestMWs := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	requestPublicMWs := middlewares.GetAllAndClear()
	requestHandler := requestAPI.NewHandler(requestService, log, requestMWs, requestPublicMWs)

	return &Handlers{
		Health:     healthHandler,
		Credential: credentialHandler,
		Request:    requestHandler,
	}
}
