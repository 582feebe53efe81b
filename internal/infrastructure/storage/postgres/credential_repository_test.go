package postgres

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/exp/slog"

	"credshare/internal/app/server/config"
	"credshare/internal/domain/credential"
)

var testStorage *Storage

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("credshare"),
		postgres.WithUsername("credshare"),
		postgres.WithPassword("credshare"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to get connection string: %v", err)
	}

	cfg := &config.Config{}
	cfg.DB.DatabaseURI = connStr
	cfg.DB.Migrations = "../../../../migrations"

	testStorage, err = New(cfg)
	if err != nil {
		log.Fatalf("failed to set up storage: %v", err)
	}

	code := m.Run()

	testStorage.Close()

	os.Exit(code)
}

func seedCredential(t *testing.T, repo *CredentialRepository, expiresAt *time.Time, maxViews *int) *credential.Credential {
	t.Helper()

	c := &credential.Credential{
		WorkspaceID:     1,
		OwnerID:         1,
		Type:            credential.CredTypePassword,
		Name:            "prod db",
		EncryptedData:   []byte("ciphertext"),
		PrivateKeyShare: []byte("share"),
		ExpiresAt:       expiresAt,
		MaxViews:        maxViews,
	}
	_, err := repo.Create(t.Context(), c)
	require.NoError(t, err)
	return c
}

func Test_ConsumeView(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	cleanup := func() {
		_, err := testStorage.Pool().Exec(context.Background(),
			`TRUNCATE TABLE credentials RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	}

	repo := NewCredentialRepository(testStorage, slog.Default())
	now := time.Now().UTC()

	t.Run("first view claims and increments", func(t *testing.T) {
		defer cleanup()
		maxViews := 3
		c := seedCredential(t, repo, nil, &maxViews)

		got, err := repo.ConsumeView(t.Context(), c.ID, now)
		require.NoError(t, err)
		assert.Equal(t, 1, got.ViewCount)
		assert.Equal(t, c.EncryptedData, got.EncryptedData)
		assert.Equal(t, c.PrivateKeyShare, got.PrivateKeyShare)
	})

	t.Run("exhausting the quota force-expires the row", func(t *testing.T) {
		defer cleanup()
		maxViews := 1
		c := seedCredential(t, repo, nil, &maxViews)

		got, err := repo.ConsumeView(t.Context(), c.ID, now)
		require.NoError(t, err)
		assert.Equal(t, 1, got.ViewCount)
		require.NotNil(t, got.ExpiresAt)
		assert.WithinDuration(t, now, *got.ExpiresAt, time.Second)

		_, err = repo.ConsumeView(t.Context(), c.ID, now.Add(time.Second))
		assert.ErrorIs(t, err, credential.ErrInert)

		// The refused claim must not touch the count.
		after, err := repo.Get(t.Context(), c.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, after.ViewCount)
	})

	t.Run("expired credential refuses the claim", func(t *testing.T) {
		defer cleanup()
		past := now.Add(-time.Hour)
		c := seedCredential(t, repo, &past, nil)

		_, err := repo.ConsumeView(t.Context(), c.ID, now)
		assert.ErrorIs(t, err, credential.ErrInert)
	})

	t.Run("missing row", func(t *testing.T) {
		defer cleanup()

		_, err := repo.ConsumeView(t.Context(), 9999, now)
		assert.ErrorIs(t, err, credential.ErrNotFound)
	})

	t.Run("concurrent claims on a single view", func(t *testing.T) {
		defer cleanup()
		maxViews := 1
		c := seedCredential(t, repo, nil, &maxViews)

		const claims = 8
		results := make(chan error, claims)
		var wg sync.WaitGroup
		for i := 0; i < claims; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.ConsumeView(context.Background(), c.ID, now)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var won, lost int
		for err := range results {
			switch {
			case err == nil:
				won++
			case errors.Is(err, credential.ErrInert):
				lost++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, won)
		assert.Equal(t, claims-1, lost)
	})
}
