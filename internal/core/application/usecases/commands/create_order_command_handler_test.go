package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/domain/model/account"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/recipient"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByDeliveryman(
	ctx context.Context,
	deliverymanID kernel.UUID,
) ([]*order.Order, error) {
	args := m.Called(ctx, deliverymanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Add(ctx context.Context, acc *account.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

type MockRecipientRepository struct{ mock.Mock }

func (m *MockRecipientRepository) Add(ctx context.Context, rec *recipient.Recipient) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecipientRepository) Update(ctx context.Context, rec *recipient.Recipient) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecipientRepository) Get(ctx context.Context, id kernel.UUID) (*recipient.Recipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipient.Recipient), args.Error(1)
}

func (m *MockRecipientRepository) GetAllByIDs(
	ctx context.Context,
	ids []kernel.UUID,
) ([]*recipient.Recipient, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipient.Recipient), args.Error(1)
}

func (m *MockRecipientRepository) GetAllWithoutLocation(
	ctx context.Context,
	limit int,
) ([]*recipient.Recipient, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipient.Recipient), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

func (m *MockUoW) RecipientRepository() ports.RecipientRepository {
	args := m.Called()
	return args.Get(0).(ports.RecipientRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// MockOrderAccountUoWFactory satisfies the narrower factory used by the
// transition and delivery-completion handlers.
type MockOrderAccountUoWFactory struct{ mock.Mock }

func (m *MockOrderAccountUoWFactory) Create() commands.OrderAccountUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderAccountUoW)
}

type MockPhotoStorage struct{ mock.Mock }

func (m *MockPhotoStorage) Store(ctx context.Context, orderID kernel.UUID, photo []byte) (string, error) {
	args := m.Called(ctx, orderID, photo)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishStatusChanged(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, "Ada Lovelace", "123 Main Street", "", "Springfield", "IL", "62701", nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	recipientRepo := new(MockRecipientRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RecipientRepository").Return(recipientRepo).Once(),
		recipientRepo.On("Add", ctx, mock.AnythingOfType("*recipient.Recipient")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	recipientRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)

	createdOrder := orderRepo.Calls[0].Arguments[1].(*order.Order)
	assert.True(t, createdOrder.ID().IsEqual(orderID))
	assert.Equal(t, order.Pending, createdOrder.Status())
	assert.NotEmpty(t, createdOrder.TrackingCode())
	assert.Nil(t, createdOrder.Deliveryman())

	createdRecipient := recipientRepo.Calls[0].Arguments[1].(*recipient.Recipient)
	assert.True(t, createdOrder.RecipientID().IsEqual(createdRecipient.ID()))
}

func TestCreateOrderCommandHandler_Handle_WithDeliveryman(t *testing.T) {
	ctx := context.Background()
	deliverymanID := kernel.NewUUID()
	agent, err := account.NewAccount(deliverymanID, "John Doe", account.RoleDeliveryman)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "Ada Lovelace", "123 Main Street", "", "Springfield", "IL", "62701", &deliverymanID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	accountRepo := new(MockAccountRepository)
	recipientRepo := new(MockRecipientRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, deliverymanID).Return(agent, nil).Once(),
		uow.On("RecipientRepository").Return(recipientRepo).Once(),
		recipientRepo.On("Add", ctx, mock.AnythingOfType("*recipient.Recipient")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	createdOrder := orderRepo.Calls[0].Arguments[1].(*order.Order)
	assert.True(t, createdOrder.IsAssignedTo(deliverymanID))
}

func TestCreateOrderCommandHandler_Handle_AssigneeIsNotDeliveryman(t *testing.T) {
	ctx := context.Background()
	adminID := kernel.NewUUID()
	admin, err := account.NewAccount(adminID, "Jane Admin", account.RoleAdmin)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "Ada Lovelace", "123 Main Street", "", "Springfield", "IL", "62701", &adminID)
	require.NoError(t, err)

	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, adminID).Return(admin, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssigneeIsNotDeliveryman)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateOrderCommandHandler_Handle_DeliverymanNotFound(t *testing.T) {
	ctx := context.Background()
	deliverymanID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "Ada Lovelace", "123 Main Street", "", "Springfield", "IL", "62701", &deliverymanID)
	require.NoError(t, err)

	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, deliverymanID).
			Return(nil, errs.NewObjectNotFoundError("accountID", deliverymanID)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := context.Background()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := context.Background()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "Ada Lovelace", "123 Main Street", "", "Springfield", "IL", "62701", nil)
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}

func TestCreateOrderCommandHandler_Handle_AddOrderError(t *testing.T) {
	ctx := context.Background()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "Ada Lovelace", "123 Main Street", "", "Springfield", "IL", "62701", nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	recipientRepo := new(MockRecipientRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RecipientRepository").Return(recipientRepo).Once(),
		recipientRepo.On("Add", ctx, mock.AnythingOfType("*recipient.Recipient")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Return(errors.New("insert error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "insert error")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := context.Background()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "Ada Lovelace", "123 Main Street", "", "Springfield", "IL", "62701", nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	recipientRepo := new(MockRecipientRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RecipientRepository").Return(recipientRepo).Once(),
		recipientRepo.On("Add", ctx, mock.AnythingOfType("*recipient.Recipient")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
}
