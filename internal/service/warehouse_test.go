package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstepanov/warehouse-api/internal/domain"
	"github.com/dstepanov/warehouse-api/internal/repository"
	"github.com/dstepanov/warehouse-api/internal/service"
)

type fakeWarehouseRepo struct {
	mu         sync.Mutex
	seq        uint
	warehouses map[uint]domain.Warehouse
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{
		warehouses: make(map[uint]domain.Warehouse),
	}
}

func (f *fakeWarehouseRepo) Create(_ context.Context, warehouse domain.Warehouse) (domain.Warehouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	warehouse.ID = f.seq
	f.warehouses[warehouse.ID] = warehouse

	return warehouse, nil
}

func (f *fakeWarehouseRepo) FindByID(_ context.Context, id uint) (domain.Warehouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if w, exists := f.warehouses[id]; exists {
		return w, nil
	}

	return domain.Warehouse{}, repository.ErrWarehouseNotFound
}

func (f *fakeWarehouseRepo) List(_ context.Context, offset, limit int) ([]domain.Warehouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := make([]domain.Warehouse, 0, len(f.warehouses))
	for _, w := range f.warehouses {
		all = append(all, w)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	return all[offset:end], nil
}

// DecrementQuantity mirrors the conditional-UPDATE semantics of the real DAO:
// check and subtract under one lock, return the current row when refusing.
func (f *fakeWarehouseRepo) DecrementQuantity(_ context.Context, id uint, amount int) (domain.Warehouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w, exists := f.warehouses[id]
	if !exists {
		return domain.Warehouse{}, repository.ErrWarehouseNotFound
	}
	if w.Quantity < amount {
		return w, repository.ErrInsufficientStock
	}

	w.Quantity -= amount
	f.warehouses[id] = w

	return w, nil
}

func seedWarehouse(t *testing.T, svc *service.WarehouseService, item string, quantity int, owner domain.User) domain.Warehouse {
	t.Helper()

	created, err := svc.CreateWarehouse(context.Background(), domain.Warehouse{
		Item:     item,
		Quantity: quantity,
	}, owner)
	require.NoError(t, err)

	return created
}

func TestWarehouseService_CreateWarehouse(t *testing.T) {
	svc := service.NewWarehouseService(newFakeWarehouseRepo())
	seller := domain.User{ID: 1, Username: "alice", Role: domain.RoleSeller}

	created := seedWarehouse(t, svc, "widget", 10, seller)
	assert.Equal(t, "widget", created.Item)
	assert.Equal(t, 10, created.Quantity)
	assert.Equal(t, seller.ID, created.UserID)
}

func TestWarehouseService_CreateWarehouse_NotASeller(t *testing.T) {
	svc := service.NewWarehouseService(newFakeWarehouseRepo())
	customer := domain.User{ID: 2, Username: "bob", Role: domain.RoleCustomer}

	_, err := svc.CreateWarehouse(context.Background(), domain.Warehouse{Item: "widget", Quantity: 10}, customer)
	assert.ErrorIs(t, err, service.ErrNotASeller)
}

func TestWarehouseService_GetWarehouse_NotFound(t *testing.T) {
	svc := service.NewWarehouseService(newFakeWarehouseRepo())

	_, err := svc.GetWarehouse(context.Background(), 42)
	assert.ErrorIs(t, err, service.ErrWarehouseNotFound)
}

func TestWarehouseService_Purchase(t *testing.T) {
	svc := service.NewWarehouseService(newFakeWarehouseRepo())
	alice := domain.User{ID: 1, Username: "alice", Role: domain.RoleSeller}
	bob := domain.User{ID: 2, Username: "bob", Role: domain.RoleCustomer}

	created := seedWarehouse(t, svc, "widget", 10, alice)

	// Bob buys 3 of 10.
	updated, err := svc.Purchase(context.Background(), created.ID, 3, bob)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	// Bob asks for 10 of 7: refused, shortfall 3, stock unchanged.
	_, err = svc.Purchase(context.Background(), created.ID, 10, bob)
	var insufficientErr *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 3, insufficientErr.Shortfall)

	current, err := svc.GetWarehouse(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, current.Quantity)

	// Alice is a seller and cannot buy, whatever the stock says.
	_, err = svc.Purchase(context.Background(), created.ID, 1, alice)
	assert.ErrorIs(t, err, service.ErrOnlyCustomersCanBuy)
}

func TestWarehouseService_Purchase_NotFound(t *testing.T) {
	svc := service.NewWarehouseService(newFakeWarehouseRepo())
	bob := domain.User{ID: 2, Username: "bob", Role: domain.RoleCustomer}

	_, err := svc.Purchase(context.Background(), 42, 1, bob)
	assert.ErrorIs(t, err, service.ErrWarehouseNotFound)
}

func TestWarehouseService_Purchase_OutOfStock(t *testing.T) {
	svc := service.NewWarehouseService(newFakeWarehouseRepo())
	alice := domain.User{ID: 1, Username: "alice", Role: domain.RoleSeller}
	bob := domain.User{ID: 2, Username: "bob", Role: domain.RoleCustomer}

	created := seedWarehouse(t, svc, "widget", 0, alice)

	_, err := svc.Purchase(context.Background(), created.ID, 1, bob)
	assert.ErrorIs(t, err, service.ErrOutOfStock)
}

func TestWarehouseService_Purchase_Concurrent(t *testing.T) {
	const (
		stock  = 60
		buyers = 100
	)

	svc := service.NewWarehouseService(newFakeWarehouseRepo())
	alice := domain.User{ID: 1, Username: "alice", Role: domain.RoleSeller}
	bob := domain.User{ID: 2, Username: "bob", Role: domain.RoleCustomer}

	created := seedWarehouse(t, svc, "widget", stock, alice)

	var (
		wg        sync.WaitGroup
		successes int64
	)
	errCh := make(chan error, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := svc.Purchase(context.Background(), created.ID, 1, bob)
			if err == nil {
				atomic.AddInt64(&successes, 1)
				return
			}
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	// Exactly as many purchases succeed as there was stock.
	assert.EqualValues(t, stock, successes)

	// Every refusal must be an out-of-stock or insufficient-stock failure.
	for err := range errCh {
		var insufficientErr *service.InsufficientStockError
		if errors.Is(err, service.ErrOutOfStock) || errors.As(err, &insufficientErr) {
			continue
		}
		t.Errorf("unexpected purchase failure: %v", err)
	}

	final, err := svc.GetWarehouse(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, final.Quantity)
}
