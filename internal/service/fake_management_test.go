package service

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/pkg/httpclient"
)

// fakeManagement mimics the management service in memory.
type fakeManagement struct {
	mu          sync.Mutex
	niches      map[string]models.Niche
	bodies      map[string]models.Body
	assignments map[string]models.NicheAssignment
	nextID      int

	occupantErr error
	listErr     error
	updateErr   error
	getErr      error
	deleteCalls int

	// getErrAfterDelete becomes getErr once an assignment is deleted.
	getErrAfterDelete error
}

func newFakeManagement() *fakeManagement {
	return &fakeManagement{
		niches:      map[string]models.Niche{},
		bodies:      map[string]models.Body{},
		assignments: map[string]models.NicheAssignment{},
	}
}

func notFound(action string) error {
	return httpclient.Normalize(&httpclient.StatusError{Status: http.StatusNotFound}, action)
}

func (f *fakeManagement) addNiche(n models.Niche) { f.niches[n.Codigo] = n }
func (f *fakeManagement) addBody(b models.Body)   { f.bodies[b.ID] = b }

func (f *fakeManagement) List(context.Context) ([]models.Niche, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Niche, 0, len(f.niches))
	for _, n := range f.niches {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Codigo < out[j].Codigo })
	return out, nil
}

func (f *fakeManagement) Get(_ context.Context, codigo string) (*models.Niche, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	n, ok := f.niches[codigo]
	if !ok {
		return nil, notFound("Error al obtener el nicho")
	}
	return &n, nil
}

func (f *fakeManagement) Available(context.Context) ([]models.Niche, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Niche
	for _, n := range f.niches {
		if n.Estado == models.NicheAvailable {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeManagement) UpdateState(_ context.Context, codigo string, state models.NicheState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	n, ok := f.niches[codigo]
	if !ok {
		return notFound("Error al actualizar el estado del nicho")
	}
	n.Estado = state
	f.niches[codigo] = n
	return nil
}

func (f *fakeManagement) Create(_ context.Context, in models.NicheAssignmentInput) (*models.NicheAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.niches[in.CodigoNicho]
	if !ok {
		return nil, notFound("Error al asignar nicho")
	}
	f.nextID++
	a := models.NicheAssignment{ID: fmt.Sprintf("a%d", f.nextID), CodigoNicho: in.CodigoNicho, IDCadaver: in.IDCadaver}
	f.assignments[a.ID] = a
	n.Estado = models.NicheOccupied
	f.niches[n.Codigo] = n
	return &a, nil
}

func (f *fakeManagement) OccupantByNiche(_ context.Context, codigo string) (*models.Body, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.occupantErr != nil {
		return nil, f.occupantErr
	}
	for _, a := range f.assignments {
		if a.CodigoNicho == codigo {
			b := f.bodies[a.IDCadaver]
			return &b, nil
		}
	}
	return nil, notFound("Error al obtener el cuerpo inhumado por nicho")
}

func (f *fakeManagement) ByNiche(_ context.Context, codigo string) (*models.NicheAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.assignments {
		if a.CodigoNicho == codigo {
			out := a
			return &out, nil
		}
	}
	return nil, notFound("Error al obtener la asignación del nicho")
}

func (f *fakeManagement) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	a, ok := f.assignments[id]
	if !ok {
		return notFound("Error al liberar el nicho")
	}
	delete(f.assignments, id)
	if f.getErrAfterDelete != nil {
		f.getErr = f.getErrAfterDelete
	}
	n := f.niches[a.CodigoNicho]
	if n.Estado == models.NicheOccupied {
		n.Estado = models.NicheAvailable
		f.niches[n.Codigo] = n
	}
	return nil
}

func (f *fakeManagement) Unassigned(context.Context) ([]models.Body, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	assigned := map[string]bool{}
	for _, a := range f.assignments {
		assigned[a.IDCadaver] = true
	}
	var out []models.Body
	for id, b := range f.bodies {
		if !assigned[id] {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
