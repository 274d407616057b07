package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bloodconnect/internal/domain"
)

func TestDashboardSummary(t *testing.T) {
	f := newFixture()
	receiver := f.user(t, "r@example.com", domain.UserTypeReceiver, "")
	donor := f.donor(t, "d@example.com", true)
	f.donor(t, "d2@example.com", false)

	var latest *domain.BloodRequest
	for i := 0; i < 8; i++ {
		latest = f.request(t, receiver)
	}
	_, err := f.requests.Accept(f.ctx, donor, latest.ID)
	require.NoError(t, err)

	summary, err := f.dashboard.Summary(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalDonors)
	assert.Equal(t, 7, summary.PendingRequests)
	require.Len(t, summary.RecentRequests, 6)
	for _, req := range summary.RecentRequests {
		assert.Equal(t, domain.RequestStatusPending, req.Status)
	}
}
