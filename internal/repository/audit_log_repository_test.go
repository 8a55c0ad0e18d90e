package repository_test

import (
	"testing"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestAuditLogFilter_Matches(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := model.AuditLog{
		ActorUserID:  "admin-1",
		Action:       model.AuditActionUpdateOrderStatus,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   "o-1",
		CreatedAt:    at,
	}

	actor := "admin-1"
	other := "admin-2"
	payment := model.AuditResourcePayment
	before := at.Add(-time.Hour)
	after := at.Add(time.Hour)

	assert.True(t, repo.AuditLogFilter{}.Matches(l))
	assert.True(t, repo.AuditLogFilter{ActorUserID: &actor, CreatedFrom: &at, CreatedTo: &at}.Matches(l))
	assert.False(t, repo.AuditLogFilter{ActorUserID: &other}.Matches(l))
	assert.False(t, repo.AuditLogFilter{ResourceType: &payment}.Matches(l))
	assert.False(t, repo.AuditLogFilter{CreatedFrom: &after}.Matches(l))
	assert.False(t, repo.AuditLogFilter{CreatedTo: &before}.Matches(l))
}
