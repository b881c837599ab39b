package iostore

import (
	"context"

	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetEntryStore implements the StoreManager interface.
func (m *MockStoreManager) GetEntryStore() contract.EntryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.EntryStore)
	return store
}

// GetBlobStore implements the StoreManager interface.
func (m *MockStoreManager) GetBlobStore() contract.BlobStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.BlobStore)
	return store
}

// MockEntryStore is a mock implementation of EntryStore for testing.
type MockEntryStore struct {
	mock.Mock
}

var _ contract.EntryStore = &MockEntryStore{} // Compile-time check

// Insert implements the EntryStore interface.
func (m *MockEntryStore) Insert(ctx context.Context, entry schema.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// InsertBatch implements the EntryStore interface.
func (m *MockEntryStore) InsertBatch(ctx context.Context, entries []schema.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

// Update implements the EntryStore interface.
func (m *MockEntryStore) Update(ctx context.Context, entry schema.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// Delete implements the EntryStore interface.
func (m *MockEntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// DeleteAll implements the EntryStore interface.
func (m *MockEntryStore) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Get implements the EntryStore interface.
func (m *MockEntryStore) Get(ctx context.Context, id uuid.UUID) (schema.Entry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(schema.Entry), args.Error(1)
}

// QueryAll implements the EntryStore interface.
func (m *MockEntryStore) QueryAll(ctx context.Context, order schema.SortOrder) ([]schema.Entry, error) {
	args := m.Called(ctx, order)
	entries, _ := args.Get(0).([]schema.Entry)
	return entries, args.Error(1)
}

// GetStatus implements the EntryStore interface.
func (m *MockEntryStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the EntryStore interface.
func (m *MockEntryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockBlobStore is a mock implementation of BlobStore for testing.
type MockBlobStore struct {
	mock.Mock
}

var _ contract.BlobStore = &MockBlobStore{} // Compile-time check

// Save implements the BlobStore interface.
func (m *MockBlobStore) Save(ctx context.Context, data []byte) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

// Load implements the BlobStore interface.
func (m *MockBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// Delete implements the BlobStore interface.
func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockLocator is a mock implementation of Locator for testing.
type MockLocator struct {
	mock.Mock
}

var _ contract.Locator = &MockLocator{} // Compile-time check

// RequestLocation implements the Locator interface.
func (m *MockLocator) RequestLocation(ctx context.Context) (schema.Coordinate, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.Coordinate), args.Error(1)
}
