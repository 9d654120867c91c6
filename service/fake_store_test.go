package service

import (
	"fmt"
	"sync"

	"govmadad/models"
)

// fakeStore is an in-memory ComplaintStore for tests. Update methods are
// field-scoped, like the real repository.
type fakeStore struct {
	mu         sync.Mutex
	records    map[string]*models.Complaint
	order      []string
	nextID     int
	writes     int // UpdateDerivedFields calls
	failIDs    map[string]bool
	failCreate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[string]*models.Complaint),
		failIDs: make(map[string]bool),
	}
}

func (f *fakeStore) GenerateComplaintID() string { return "00000042" }

func (f *fakeStore) Create(c *models.Complaint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return fmt.Errorf("injected create failure")
	}
	if c.ID == "" {
		f.nextID++
		c.ID = fmt.Sprintf("rec-%d", f.nextID)
	}
	cp := *c
	f.records[c.ID] = &cp
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeStore) List() ([]models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Complaint, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *f.records[id])
	}
	return out, nil
}

func (f *fakeStore) ListByUID(uid string) ([]models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Complaint
	for _, id := range f.order {
		if f.records[id].UID == uid {
			out = append(out, *f.records[id])
		}
	}
	return out, nil
}

func (f *fakeStore) GetByID(id string) (*models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("complaint %s not found", id)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) UpdateDerivedFields(id string, fields models.DerivedFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.failIDs[id] {
		return fmt.Errorf("injected write failure for %s", id)
	}
	r, ok := f.records[id]
	if !ok {
		return fmt.Errorf("complaint %s not found", id)
	}
	r.RemainingDays = fields.RemainingDays
	if fields.PredictedDays != nil {
		r.PredictedDays = *fields.PredictedDays
	}
	return nil
}

func (f *fakeStore) UpdateStatus(id string, status models.ComplaintStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return fmt.Errorf("complaint %s not found", id)
	}
	r.Status = status
	return nil
}

func (f *fakeStore) UpdateResponse(id string, response string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return fmt.Errorf("complaint %s not found", id)
	}
	r.Response = response
	return nil
}

func (f *fakeStore) derivedWrites() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}
