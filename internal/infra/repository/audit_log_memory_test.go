package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogMemory_ListNewestFirstWithFilter(t *testing.T) {
	r := NewAuditLogMemoryRepository(3, nil)
	ctx := context.Background()

	for i, a := range []model.AuditAction{
		model.AuditActionCheckoutOrderCreated,
		model.AuditActionUpdateOrderStatus,
		model.AuditActionCheckoutOrderCreated,
		model.AuditActionCheckoutPaymentFailed,
	} {
		require.NoError(t, r.Create(ctx, model.AuditLog{
			ActorUserID:  "u-1",
			Action:       a,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   string(rune('a' + i)),
			CreatedAt:    time.Now(),
		}))
	}

	// keep=3なので最初の1件は消える
	all, err := r.List(ctx, repo.AuditLogFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "d", all[0].ResourceID)
	assert.Equal(t, int64(4), all[0].ID)

	action := model.AuditActionCheckoutOrderCreated
	created, err := r.List(ctx, repo.AuditLogFilter{Action: &action})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "c", created[0].ResourceID)
}
