package credential

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int              { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cred Credential
		want State
	}{
		{
			name: "no limits never inert",
			cred: Credential{},
			want: StateActive,
		},
		{
			name: "future expiry active",
			cred: Credential{ExpiresAt: timePtr(now.Add(time.Hour))},
			want: StateActive,
		},
		{
			name: "past expiry",
			cred: Credential{ExpiresAt: timePtr(now.Add(-time.Second))},
			want: StateExpired,
		},
		{
			name: "expiry exactly now",
			cred: Credential{ExpiresAt: timePtr(now)},
			want: StateExpired,
		},
		{
			name: "views remaining",
			cred: Credential{MaxViews: intPtr(3), ViewCount: 2},
			want: StateActive,
		},
		{
			name: "views exhausted",
			cred: Credential{MaxViews: intPtr(3), ViewCount: 3},
			want: StateExhausted,
		},
		{
			name: "exhausted wins over future expiry",
			cred: Credential{MaxViews: intPtr(1), ViewCount: 1, ExpiresAt: timePtr(now.Add(time.Hour))},
			want: StateExhausted,
		},
		{
			name: "expired regardless of view count",
			cred: Credential{MaxViews: intPtr(10), ViewCount: 0, ExpiresAt: timePtr(now.Add(-time.Hour))},
			want: StateExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(&tt.cred, now)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != StateActive, got.Inert())
		})
	}
}

func TestEvaluate_OpenEndedStaysActive(t *testing.T) {
	cred := Credential{ViewCount: 1000}
	now := time.Now()

	for i := 0; i < 1000; i++ {
		cred.ViewCount++
		assert.Equal(t, StateActive, Evaluate(&cred, now.Add(time.Duration(i)*time.Hour)))
	}
}
