package repository

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/fadilmartias/resumind/internal/model"
	"github.com/pgvector/pgvector-go"
)

// MemoryJobCatalog mirrors JobRepository without Postgres. Search ranks by
// Euclidean distance like the pgvector <-> operator.
type MemoryJobCatalog struct {
	mu   sync.RWMutex
	jobs []model.Job
}

func NewMemoryJobCatalog() *MemoryJobCatalog {
	return &MemoryJobCatalog{}
}

func (m *MemoryJobCatalog) CreateJob(ctx context.Context, job *model.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.jobs = append(m.jobs, *job)
	m.mu.Unlock()
	return nil
}

func (m *MemoryJobCatalog) GetJobs(ctx context.Context) ([]model.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Job, len(m.jobs))
	copy(out, m.jobs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryJobCatalog) FindJobByID(ctx context.Context, id string) (*model.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.jobs {
		if m.jobs[i].ID.String() == id {
			j := m.jobs[i]
			return &j, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryJobCatalog) DeleteJob(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.jobs {
		if m.jobs[i].ID.String() == id {
			m.jobs = append(m.jobs[:i], m.jobs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryJobCatalog) SearchJobs(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	ranked := make([]model.Job, len(m.jobs))
	copy(ranked, m.jobs)
	m.mu.RUnlock()

	query := embedding.Slice()
	sort.SliceStable(ranked, func(i, j int) bool {
		return l2(ranked[i].Embedding.Slice(), query) < l2(ranked[j].Embedding.Slice(), query)
	})
	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked, nil
}

func l2(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	// dimension mismatches rank last
	if len(a) != len(b) {
		return math.Inf(1)
	}
	return math.Sqrt(sum)
}

var _ JobCatalog = (*MemoryJobCatalog)(nil)
