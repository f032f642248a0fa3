package repositories

import (
	"context"
	"sync"

	"github.com/poofware/property-records-service/internal/models"
)

// memoryCollection is an append-only slice plus its id counter. The mutex
// covers both, so id allocation and insert never interleave.
type memoryCollection[T any, P interface {
	*T
	models.Record
}] struct {
	mu     sync.Mutex
	nextID uint64
	items  []T
}

func newMemoryCollection[T any, P interface {
	*T
	models.Record
}]() *memoryCollection[T, P] {
	return &memoryCollection[T, P]{nextID: 1}
}

func (c *memoryCollection[T, P]) Create(ctx context.Context, rec P) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	rec.SetID(c.nextID)
	c.nextID++
	c.items = append(c.items, *rec)
	return nil
}

func (c *memoryCollection[T, P]) ListAll(ctx context.Context) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*T, 0, len(c.items))
	for i := range c.items {
		item := c.items[i]
		out = append(out, &item)
	}
	return out, nil
}

// MemoryBackend keeps the collections in process memory. Contents live for
// the lifetime of the process.
type MemoryBackend struct {
	properties *memoryCollection[models.Property, *models.Property]
	leases     *memoryCollection[models.LeaseAgreement, *models.LeaseAgreement]
	requests   *memoryCollection[models.MaintenanceRequest, *models.MaintenanceRequest]
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		properties: newMemoryCollection[models.Property](),
		leases:     newMemoryCollection[models.LeaseAgreement](),
		requests:   newMemoryCollection[models.MaintenanceRequest](),
	}
}

func (b *MemoryBackend) Name() string { return BackendMemory }

func (b *MemoryBackend) Properties() PropertyRepository { return b.properties }

func (b *MemoryBackend) LeaseAgreements() LeaseAgreementRepository { return b.leases }

func (b *MemoryBackend) MaintenanceRequests() MaintenanceRequestRepository { return b.requests }

func (b *MemoryBackend) Ping(ctx context.Context) error { return ctx.Err() }

func (b *MemoryBackend) Close() error { return nil }
