package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"
	"github.com/sakibullah2006/dmart/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdminOrderFixture() (*usecase.AdminOrderUsecase, *OrderRepoMock, *AuditRepoMock) {
	orders := new(OrderRepoMock)
	audit := new(AuditRepoMock)
	clock := fixedClock{t: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	return usecase.NewAdminOrderUsecase(orders, audit, clock, nil), orders, audit
}

// =====================
// List tests
// =====================

func TestAdminOrderUsecase_List_InvalidPage(t *testing.T) {
	uc, orders, _ := newAdminOrderFixture()

	_, err := uc.List(context.Background(), repo.PageQuery{Page: -1})
	assertErrContains(t, err, "invalid page")
	orders.AssertNotCalled(t, "ListAll", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_List_DefaultsSizeAndSort(t *testing.T) {
	uc, orders, _ := newAdminOrderFixture()

	want := repo.PageQuery{Page: 0, Size: 20, Sort: "createdAt,desc"}
	orders.On("ListAll", mock.Anything, want).
		Return(model.Page[model.Order]{Content: []model.Order{{ID: "o1"}}, TotalElements: 1}, nil).Once()

	out, err := uc.List(context.Background(), repo.PageQuery{})
	require.NoError(t, err)
	assert.Len(t, out.Content, 1)
	orders.AssertExpectations(t)
}

// =====================
// UpdateStatus tests
// =====================

func TestAdminOrderUsecase_UpdateStatus_InvalidStatus(t *testing.T) {
	uc, orders, audit := newAdminOrderFixture()

	_, err := uc.UpdateStatus(context.Background(), "admin1", "o1", "LOST")
	assertErrContains(t, err, "invalid status")
	orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_NoActor(t *testing.T) {
	uc, _, _ := newAdminOrderFixture()

	_, err := uc.UpdateStatus(context.Background(), "", "o1", "SHIPPED")
	assertErrContains(t, err, "unauthorized")
}

func TestAdminOrderUsecase_UpdateStatus_SameStatusIsNoop(t *testing.T) {
	uc, orders, audit := newAdminOrderFixture()

	orders.On("FindByID", mock.Anything, "o1").Return(model.Order{ID: "o1", Status: model.OrderStatusShipped}, nil).Once()

	out, err := uc.UpdateStatus(context.Background(), "admin1", "o1", "shipped")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, out.Status)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_TerminalGuard(t *testing.T) {
	uc, orders, _ := newAdminOrderFixture()

	orders.On("FindByID", mock.Anything, "o1").Return(model.Order{ID: "o1", Status: model.OrderStatusCancelled}, nil).Once()

	_, err := uc.UpdateStatus(context.Background(), "admin1", "o1", "SHIPPED")
	assertErrContains(t, err, "cannot change cancelled order")
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_RecordsAudit(t *testing.T) {
	uc, orders, audit := newAdminOrderFixture()

	orders.On("FindByID", mock.Anything, "o1").Return(model.Order{ID: "o1", Status: model.OrderStatusPending}, nil).Once()
	orders.On("UpdateStatus", mock.Anything, "o1", model.OrderStatusShipped).
		Return(model.Order{ID: "o1", Status: model.OrderStatusShipped}, nil).Once()
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateOrderStatus &&
			l.ActorUserID == "admin1" &&
			l.ResourceType == model.AuditResourceOrder &&
			l.ResourceID == "o1" &&
			l.BeforeJSON == `{"status":"PENDING"}` &&
			l.AfterJSON == `{"status":"SHIPPED"}`
	})).Return(nil).Once()

	out, err := uc.UpdateStatus(context.Background(), "admin1", "o1", "SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, out.Status)
	orders.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminOrderUsecase_UpdateStatus_AuditFailureDoesNotFail(t *testing.T) {
	uc, orders, audit := newAdminOrderFixture()

	orders.On("FindByID", mock.Anything, "o1").Return(model.Order{ID: "o1", Status: model.OrderStatusPending}, nil).Once()
	orders.On("UpdateStatus", mock.Anything, "o1", model.OrderStatusConfirmed).
		Return(model.Order{ID: "o1", Status: model.OrderStatusConfirmed}, nil).Once()
	audit.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	_, err := uc.UpdateStatus(context.Background(), "admin1", "o1", "CONFIRMED")
	assert.NoError(t, err)
}

func TestAdminOrderUsecase_UpdateStatus_RemoteNotFound(t *testing.T) {
	uc, orders, _ := newAdminOrderFixture()

	orders.On("FindByID", mock.Anything, "missing").Return(model.Order{}, repo.ErrNotFound).Once()

	_, err := uc.UpdateStatus(context.Background(), "admin1", "missing", "SHIPPED")
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

// =====================
// UpdatePaymentStatus tests
// =====================

func TestAdminOrderUsecase_UpdatePaymentStatus_RecordsAudit(t *testing.T) {
	uc, orders, audit := newAdminOrderFixture()

	before := model.Order{ID: "o1", Payment: &model.Payment{ID: "p1", PaymentStatus: model.PaymentStatusPending}}
	orders.On("FindByID", mock.Anything, "o1").Return(before, nil).Once()
	orders.On("UpdatePaymentStatus", mock.Anything, "o1", model.PaymentStatusRefunded).
		Return(model.Order{ID: "o1"}, nil).Once()
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdatePaymentStatus &&
			l.ResourceType == model.AuditResourcePayment &&
			l.BeforeJSON == `{"paymentStatus":"PENDING"}` &&
			l.AfterJSON == `{"paymentStatus":"REFUNDED"}`
	})).Return(nil).Once()

	_, err := uc.UpdatePaymentStatus(context.Background(), "admin1", "o1", "refunded")
	require.NoError(t, err)
	audit.AssertExpectations(t)
}

func TestAdminOrderUsecase_UpdatePaymentStatus_Invalid(t *testing.T) {
	uc, orders, _ := newAdminOrderFixture()

	_, err := uc.UpdatePaymentStatus(context.Background(), "admin1", "o1", "PAID")
	assertErrContains(t, err, "invalid payment status")
	orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// =====================
// AuditLogs tests
// =====================

func TestAdminOrderUsecase_AuditLogs_BuildsFilter(t *testing.T) {
	uc, _, audit := newAdminOrderFixture()

	audit.On("List", mock.Anything, mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.Action != nil && *f.Action == model.AuditActionUpdateOrderStatus &&
			f.ResourceType != nil && *f.ResourceType == model.AuditResourceOrder &&
			f.CreatedFrom != nil && f.Limit == 10
	})).Return([]model.AuditLog{{ID: 1}}, nil).Once()

	out, err := uc.AuditLogs(context.Background(), usecase.AuditLogQuery{
		Action:       "update_order_status",
		ResourceType: "ORDER",
		From:         "2026-01-01T00:00:00Z",
		Limit:        10,
	})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	audit.AssertExpectations(t)
}

func TestAdminOrderUsecase_AuditLogs_InvalidFrom(t *testing.T) {
	uc, _, audit := newAdminOrderFixture()

	_, err := uc.AuditLogs(context.Background(), usecase.AuditLogQuery{From: "yesterday"})
	assertErrContains(t, err, "invalid from")
	audit.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
