package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/recipient"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNearbyOrderRepository struct{ mock.Mock }

func (m *MockNearbyOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockNearbyOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockNearbyOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockNearbyOrderRepository) GetAllByDeliveryman(
	ctx context.Context,
	deliverymanID kernel.UUID,
) ([]*order.Order, error) {
	args := m.Called(ctx, deliverymanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockNearbyRecipientRepository struct{ mock.Mock }

func (m *MockNearbyRecipientRepository) Add(ctx context.Context, rec *recipient.Recipient) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockNearbyRecipientRepository) Update(ctx context.Context, rec *recipient.Recipient) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockNearbyRecipientRepository) Get(
	ctx context.Context,
	id kernel.UUID,
) (*recipient.Recipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipient.Recipient), args.Error(1)
}

func (m *MockNearbyRecipientRepository) GetAllByIDs(
	ctx context.Context,
	ids []kernel.UUID,
) ([]*recipient.Recipient, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipient.Recipient), args.Error(1)
}

func (m *MockNearbyRecipientRepository) GetAllWithoutLocation(
	ctx context.Context,
	limit int,
) ([]*recipient.Recipient, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipient.Recipient), args.Error(1)
}

type MockAddressResolver struct{ mock.Mock }

func (m *MockAddressResolver) ResolvePostalCode(
	ctx context.Context,
	code string,
) (*ports.ResolvedAddress, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ResolvedAddress), args.Error(1)
}

func (m *MockAddressResolver) GeocodeAddress(
	ctx context.Context,
	fullAddress string,
) (*kernel.GeoPoint, error) {
	args := m.Called(ctx, fullAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.GeoPoint), args.Error(1)
}

func testMatcher() services.NearbyMatcher {
	return services.NewNearbyMatcher(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mustGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}

func assignedOrder(t *testing.T, agentID kernel.UUID, rec *recipient.Recipient) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(kernel.NewUUID(), "PF-"+kernel.NewUUID().String()[:8], rec.ID())
	require.NoError(t, err)
	require.NoError(t, aggregate.AssignDeliveryman(agentID))
	return aggregate
}

func recipientAt(t *testing.T, lat, lon float64) *recipient.Recipient {
	t.Helper()
	location := mustGeoPoint(t, lat, lon)
	rec, err := recipient.RestoreRecipient(
		kernel.NewUUID(), "Ada Lovelace", "123 Main Street", "", "Springfield", "IL", "62701", &location)
	require.NoError(t, err)
	return rec
}

func TestGetNearbyDeliveriesQueryHandler_Handle_RanksAscending(t *testing.T) {
	ctx := context.Background()
	agentID := kernel.NewUUID()

	// Recipients along the equator: 2 degrees, 1 degree, 3 degrees east of origin.
	recFar := recipientAt(t, 0, 2)
	recNear := recipientAt(t, 0, 1)
	recFarthest := recipientAt(t, 0, 3)

	orderFar := assignedOrder(t, agentID, recFar)
	orderNear := assignedOrder(t, agentID, recNear)
	orderFarthest := assignedOrder(t, agentID, recFarthest)

	origin := mustGeoPoint(t, 0, 0)

	orderRepo := new(MockNearbyOrderRepository)
	recipientRepo := new(MockNearbyRecipientRepository)
	resolver := new(MockAddressResolver)

	orderRepo.On("GetAllByDeliveryman", ctx, agentID).
		Return([]*order.Order{orderFar, orderNear, orderFarthest}, nil).Once()
	resolver.On("ResolvePostalCode", ctx, "62701").
		Return(&ports.ResolvedAddress{City: "Springfield", Location: &origin}, nil).Once()
	recipientRepo.On("GetAllByIDs", ctx, mock.AnythingOfType("[]kernel.UUID")).
		Return([]*recipient.Recipient{recFar, recNear, recFarthest}, nil).Once()

	handler := queries.NewGetNearbyDeliveriesQueryHandler(orderRepo, recipientRepo, resolver, testMatcher())
	query, err := queries.NewGetNearbyDeliveriesQuery(agentID, "62701")
	require.NoError(t, err)

	ranked, err := handler.Handle(ctx, query)

	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.True(t, ranked[0].OrderID.IsEqual(orderNear.ID()))
	assert.True(t, ranked[1].OrderID.IsEqual(orderFar.ID()))
	assert.True(t, ranked[2].OrderID.IsEqual(orderFarthest.ID()))

	// 1 degree along the equator is ~111.19 km.
	assert.InDelta(t, 111.19, ranked[0].DistanceKm, 0.01)
	assert.Equal(t, "111.19 km", ranked[0].DistanceLabel)
	assert.Equal(t, "Ada Lovelace", ranked[0].RecipientName)
	assert.NotEmpty(t, ranked[0].FullAddress)

	orderRepo.AssertExpectations(t)
	recipientRepo.AssertExpectations(t)
	resolver.AssertExpectations(t)
}

func TestGetNearbyDeliveriesQueryHandler_Handle_NoDeliveriesFound(t *testing.T) {
	ctx := context.Background()
	agentID := kernel.NewUUID()

	orderRepo := new(MockNearbyOrderRepository)
	recipientRepo := new(MockNearbyRecipientRepository)
	resolver := new(MockAddressResolver)

	orderRepo.On("GetAllByDeliveryman", ctx, agentID).Return([]*order.Order{}, nil).Once()

	handler := queries.NewGetNearbyDeliveriesQueryHandler(orderRepo, recipientRepo, resolver, testMatcher())
	query, err := queries.NewGetNearbyDeliveriesQuery(agentID, "62701")
	require.NoError(t, err)

	_, err = handler.Handle(ctx, query)

	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrNoDeliveriesFound)
	resolver.AssertNotCalled(t, "ResolvePostalCode", ctx, "62701")
}

func TestGetNearbyDeliveriesQueryHandler_Handle_GeocodeFallback(t *testing.T) {
	ctx := context.Background()
	agentID := kernel.NewUUID()

	rec := recipientAt(t, 0, 1)
	aggregate := assignedOrder(t, agentID, rec)
	origin := mustGeoPoint(t, 0, 0)

	orderRepo := new(MockNearbyOrderRepository)
	recipientRepo := new(MockNearbyRecipientRepository)
	resolver := new(MockAddressResolver)

	orderRepo.On("GetAllByDeliveryman", ctx, agentID).Return([]*order.Order{aggregate}, nil).Once()
	// Postal-code response without coordinates forces the forward-geocode path.
	resolver.On("ResolvePostalCode", ctx, "62701").
		Return(&ports.ResolvedAddress{Street: "Capitol Ave", City: "Springfield", Region: "IL"}, nil).Once()
	resolver.On("GeocodeAddress", ctx, "Capitol Ave, Springfield, IL, 62701").
		Return(&origin, nil).Once()
	recipientRepo.On("GetAllByIDs", ctx, mock.AnythingOfType("[]kernel.UUID")).
		Return([]*recipient.Recipient{rec}, nil).Once()

	handler := queries.NewGetNearbyDeliveriesQueryHandler(orderRepo, recipientRepo, resolver, testMatcher())
	query, err := queries.NewGetNearbyDeliveriesQuery(agentID, "62701")
	require.NoError(t, err)

	ranked, err := handler.Handle(ctx, query)

	require.NoError(t, err)
	require.Len(t, ranked, 1)
	resolver.AssertExpectations(t)
}

func TestGetNearbyDeliveriesQueryHandler_Handle_UnresolvableOrigin(t *testing.T) {
	ctx := context.Background()
	agentID := kernel.NewUUID()

	rec := recipientAt(t, 0, 1)
	aggregate := assignedOrder(t, agentID, rec)

	orderRepo := new(MockNearbyOrderRepository)
	recipientRepo := new(MockNearbyRecipientRepository)
	resolver := new(MockAddressResolver)

	orderRepo.On("GetAllByDeliveryman", ctx, agentID).Return([]*order.Order{aggregate}, nil).Once()
	resolver.On("ResolvePostalCode", ctx, "00000").
		Return(&ports.ResolvedAddress{City: "Nowhere"}, nil).Once()
	resolver.On("GeocodeAddress", ctx, "Nowhere, 00000").Return(nil, nil).Once()

	handler := queries.NewGetNearbyDeliveriesQueryHandler(orderRepo, recipientRepo, resolver, testMatcher())
	query, err := queries.NewGetNearbyDeliveriesQuery(agentID, "00000")
	require.NoError(t, err)

	_, err = handler.Handle(ctx, query)

	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrOriginIsUnresolvable)
}

func TestGetNearbyDeliveriesQueryHandler_Handle_ResolverFailureIsWrapped(t *testing.T) {
	ctx := context.Background()
	agentID := kernel.NewUUID()

	rec := recipientAt(t, 0, 1)
	aggregate := assignedOrder(t, agentID, rec)

	transportErr := errors.New("connection refused")

	orderRepo := new(MockNearbyOrderRepository)
	recipientRepo := new(MockNearbyRecipientRepository)
	resolver := new(MockAddressResolver)

	orderRepo.On("GetAllByDeliveryman", ctx, agentID).Return([]*order.Order{aggregate}, nil).Once()
	resolver.On("ResolvePostalCode", ctx, "62701").Return(nil, transportErr).Once()

	handler := queries.NewGetNearbyDeliveriesQueryHandler(orderRepo, recipientRepo, resolver, testMatcher())
	query, err := queries.NewGetNearbyDeliveriesQuery(agentID, "62701")
	require.NoError(t, err)

	_, err = handler.Handle(ctx, query)

	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrOriginIsUnresolvable)
	// The transport failure is folded into the typed error, not leaked as-is.
	assert.NotErrorIs(t, err, transportErr)
	assert.ErrorContains(t, err, "connection refused")
}

func TestGetNearbyDeliveriesQueryHandler_Handle_NoNearbyDeliveries(t *testing.T) {
	ctx := context.Background()
	agentID := kernel.NewUUID()

	// A recipient that was never geocoded: the order exists but is unrankable.
	rec, err := recipient.NewRecipient(
		kernel.NewUUID(), "Ada Lovelace", "123 Main Street", "", "Springfield", "IL", "62701")
	require.NoError(t, err)
	aggregate := assignedOrder(t, agentID, rec)
	origin := mustGeoPoint(t, 0, 0)

	orderRepo := new(MockNearbyOrderRepository)
	recipientRepo := new(MockNearbyRecipientRepository)
	resolver := new(MockAddressResolver)

	orderRepo.On("GetAllByDeliveryman", ctx, agentID).Return([]*order.Order{aggregate}, nil).Once()
	resolver.On("ResolvePostalCode", ctx, "62701").
		Return(&ports.ResolvedAddress{Location: &origin}, nil).Once()
	recipientRepo.On("GetAllByIDs", ctx, mock.AnythingOfType("[]kernel.UUID")).
		Return([]*recipient.Recipient{rec}, nil).Once()

	handler := queries.NewGetNearbyDeliveriesQueryHandler(orderRepo, recipientRepo, resolver, testMatcher())
	query, err := queries.NewGetNearbyDeliveriesQuery(agentID, "62701")
	require.NoError(t, err)

	_, err = handler.Handle(ctx, query)

	require.Error(t, err)
	require.ErrorIs(t, err, services.ErrNoNearbyDeliveries)
}

func TestGetNearbyDeliveriesQueryHandler_Handle_ValidationError(t *testing.T) {
	ctx := context.Background()
	query := queries.GetNearbyDeliveriesQuery{} // not constructed properly

	orderRepo := new(MockNearbyOrderRepository)
	handler := queries.NewGetNearbyDeliveriesQueryHandler(
		orderRepo, new(MockNearbyRecipientRepository), new(MockAddressResolver), testMatcher())

	_, err := handler.Handle(ctx, query)

	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrGetNearbyDeliveriesQueryIsNotConstructed)
	orderRepo.AssertNotCalled(t, "GetAllByDeliveryman", ctx, mock.Anything)
}
