package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadline/crm-system/internal/core/domain"
	"github.com/leadline/crm-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub gateway services with function fields, so each test controls timing
// and results directly.
// ---------------------------------------------------------------------------

type stubCustomers struct {
	listFn   func(ctx context.Context, input ports.ListCustomersInput) (*ports.ListCustomersResult, error)
	createFn func(ctx context.Context, input ports.CreateCustomerInput) (*domain.Customer, error)
	updateFn func(ctx context.Context, input ports.UpdateCustomerInput) (*domain.Customer, error)
	deleteFn func(ctx context.Context, input ports.DeleteCustomerInput) error
}

func (s *stubCustomers) List(ctx context.Context, input ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubCustomers) Get(context.Context, string) (*domain.Customer, error) {
	return nil, domain.ErrCustomerNotFound
}

func (s *stubCustomers) Create(ctx context.Context, input ports.CreateCustomerInput) (*domain.Customer, error) {
	return s.createFn(ctx, input)
}

func (s *stubCustomers) Update(ctx context.Context, input ports.UpdateCustomerInput) (*domain.Customer, error) {
	return s.updateFn(ctx, input)
}

func (s *stubCustomers) Delete(ctx context.Context, input ports.DeleteCustomerInput) error {
	return s.deleteFn(ctx, input)
}

type stubLeads struct {
	listForCustomerFn func(ctx context.Context, customerID string) ([]domain.Lead, error)
	listAllFn         func(ctx context.Context) ([]domain.Lead, error)
	createFn          func(ctx context.Context, input ports.CreateLeadInput) (*domain.Lead, error)
	updateFn          func(ctx context.Context, input ports.UpdateLeadInput) (*domain.Lead, error)
	deleteFn          func(ctx context.Context, input ports.DeleteLeadInput) (*domain.Lead, error)
}

func (s *stubLeads) ListForCustomer(ctx context.Context, customerID string) ([]domain.Lead, error) {
	return s.listForCustomerFn(ctx, customerID)
}

func (s *stubLeads) ListAll(ctx context.Context) ([]domain.Lead, error) {
	return s.listAllFn(ctx)
}

func (s *stubLeads) Create(ctx context.Context, input ports.CreateLeadInput) (*domain.Lead, error) {
	return s.createFn(ctx, input)
}

func (s *stubLeads) Update(ctx context.Context, input ports.UpdateLeadInput) (*domain.Lead, error) {
	return s.updateFn(ctx, input)
}

func (s *stubLeads) Delete(ctx context.Context, input ports.DeleteLeadInput) (*domain.Lead, error) {
	return s.deleteFn(ctx, input)
}

func listResult(total int, customers ...domain.Customer) *ports.ListCustomersResult {
	return &ports.ListCustomersResult{Items: customers, Total: total, Page: 1, Limit: 10}
}

func newTestStore(customers *stubCustomers, leads *stubLeads) *Store {
	if customers == nil {
		customers = &stubCustomers{}
	}
	if leads == nil {
		leads = &stubLeads{}
	}
	return NewStore(customers, leads, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Fetch and merge
// ---------------------------------------------------------------------------

func TestStore_FetchCustomers_MergesPageAndTotal(t *testing.T) {
	customers := &stubCustomers{
		listFn: func(_ context.Context, input ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
			assert.Equal(t, "acme", input.Search)
			return listResult(25, customer("1", "A"), customer("2", "B")), nil
		},
	}
	store := newTestStore(customers, nil)

	store.FetchCustomers(context.Background(), 1, 10, "acme")

	st := store.Snapshot()
	require.Len(t, st.Customers, 2)
	assert.Equal(t, 25, st.TotalCustomers)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)
}

func TestStore_FetchLeads_PopulatesBucket(t *testing.T) {
	leads := &stubLeads{
		listForCustomerFn: func(_ context.Context, customerID string) ([]domain.Lead, error) {
			return []domain.Lead{lead(customerID+"-1", customerID, domain.StatusNew)}, nil
		},
	}
	store := newTestStore(nil, leads)

	store.FetchLeads(context.Background(), "7")

	bucket := store.CustomerLeads("7")
	require.Len(t, bucket, 1)
	assert.Equal(t, "7-1", bucket[0].ID)

	assert.Nil(t, store.CustomerLeads("8"), "unfetched buckets stay nil")
}

func TestStore_FetchAllLeads_ReplacesSnapshot(t *testing.T) {
	leads := &stubLeads{
		listAllFn: func(context.Context) ([]domain.Lead, error) {
			return []domain.Lead{lead("1-1", "1", domain.StatusConverted)}, nil
		},
	}
	store := newTestStore(nil, leads)

	store.FetchAllLeads(context.Background())

	st := store.Snapshot()
	require.Len(t, st.AllLeads, 1)
	assert.Equal(t, domain.StatusConverted, st.AllLeads[0].Status)
}

// ---------------------------------------------------------------------------
// Error handling
// ---------------------------------------------------------------------------

func TestStore_FailureLandsInStateNotPanic(t *testing.T) {
	customers := &stubCustomers{
		listFn: func(context.Context, ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
			return nil, errors.New("gateway unavailable")
		},
	}
	store := newTestStore(customers, nil)

	store.FetchCustomers(context.Background(), 1, 10, "")

	st := store.Snapshot()
	assert.Equal(t, "gateway unavailable", st.Err)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Customers, "failed fetch must not merge data")
}

func TestStore_NextDispatchClearsError(t *testing.T) {
	failing := true
	customers := &stubCustomers{
		listFn: func(context.Context, ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
			if failing {
				return nil, errors.New("gateway unavailable")
			}
			return listResult(1, customer("1", "A")), nil
		},
	}
	store := newTestStore(customers, nil)

	store.FetchCustomers(context.Background(), 1, 10, "")
	require.NotEmpty(t, store.Snapshot().Err)

	failing = false
	store.FetchCustomers(context.Background(), 1, 10, "")
	assert.Empty(t, store.Snapshot().Err)
}

// ---------------------------------------------------------------------------
// Loading tracking
// ---------------------------------------------------------------------------

func TestStore_LoadingWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	customers := &stubCustomers{
		listFn: func(context.Context, ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
			close(started)
			<-release
			return listResult(0), nil
		},
	}
	store := newTestStore(customers, nil)

	done := make(chan struct{})
	go func() {
		store.FetchCustomers(context.Background(), 1, 10, "")
		close(done)
	}()

	<-started
	assert.True(t, store.Snapshot().Loading)

	close(release)
	<-done
	assert.False(t, store.Snapshot().Loading)
}

func TestStore_LoadingStaysOnUntilLastCompletion(t *testing.T) {
	releaseSlow := make(chan struct{})
	slowStarted := make(chan struct{})
	customers := &stubCustomers{
		listFn: func(context.Context, ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
			close(slowStarted)
			<-releaseSlow
			return listResult(0), nil
		},
	}
	leads := &stubLeads{
		listAllFn: func(context.Context) ([]domain.Lead, error) {
			return nil, nil
		},
	}
	store := newTestStore(customers, leads)

	done := make(chan struct{})
	go func() {
		store.FetchCustomers(context.Background(), 1, 10, "")
		close(done)
	}()
	<-slowStarted

	// A second dispatch completes while the first is still in flight.
	store.FetchAllLeads(context.Background())
	assert.True(t, store.Snapshot().Loading, "loading stays on while any dispatch is in flight")

	close(releaseSlow)
	<-done
	assert.False(t, store.Snapshot().Loading)
}

// ---------------------------------------------------------------------------
// Staleness guard
// ---------------------------------------------------------------------------

func TestStore_StaleFetchCompletionDiscarded(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	customers := &stubCustomers{
		listFn: func(_ context.Context, input ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
			mu.Lock()
			calls++
			mine := calls
			mu.Unlock()
			if mine == 1 {
				close(firstStarted)
				<-releaseFirst
				return listResult(1, customer("1", "Stale")), nil
			}
			return listResult(1, customer("2", "Fresh")), nil
		},
	}
	store := newTestStore(customers, nil)

	done := make(chan struct{})
	go func() {
		store.FetchCustomers(context.Background(), 1, 10, "old term")
		close(done)
	}()
	<-firstStarted

	// The second fetch supersedes the first and completes before it.
	store.FetchCustomers(context.Background(), 1, 10, "new term")

	close(releaseFirst)
	<-done

	st := store.Snapshot()
	require.Len(t, st.Customers, 1)
	assert.Equal(t, "Fresh", st.Customers[0].Name, "slow stale completion must not clobber fresher data")
	assert.False(t, st.Loading)
}

func TestStore_StaleFailedCompletionDiscarded(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	customers := &stubCustomers{
		listFn: func(_ context.Context, input ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
			mu.Lock()
			calls++
			mine := calls
			mu.Unlock()
			if mine == 1 {
				close(firstStarted)
				<-releaseFirst
				return nil, errors.New("upstream timed out")
			}
			return listResult(25, customer("2", "Fresh")), nil
		},
	}
	store := newTestStore(customers, nil)

	done := make(chan struct{})
	go func() {
		store.FetchCustomers(context.Background(), 1, 10, "old term")
		close(done)
	}()
	<-firstStarted

	// The second fetch supersedes the first, which then errors out late.
	store.FetchCustomers(context.Background(), 1, 10, "new term")

	close(releaseFirst)
	<-done

	st := store.Snapshot()
	assert.Empty(t, st.Err, "a superseded fetch that fails late must not surface its error")
	require.Len(t, st.Customers, 1)
	assert.Equal(t, "Fresh", st.Customers[0].Name)
	assert.Equal(t, 25, st.TotalCustomers)
	assert.False(t, st.Loading)
}

func TestStore_PerCustomerLeadFetchesGuardedIndependently(t *testing.T) {
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})
	leads := &stubLeads{
		listForCustomerFn: func(_ context.Context, customerID string) ([]domain.Lead, error) {
			if customerID == "1" {
				close(slowStarted)
				<-releaseSlow
			}
			return []domain.Lead{lead(customerID+"-1", customerID, domain.StatusNew)}, nil
		},
	}
	store := newTestStore(nil, leads)

	done := make(chan struct{})
	go func() {
		store.FetchLeads(context.Background(), "1")
		close(done)
	}()
	<-slowStarted

	// A fetch for a different customer does not supersede customer 1's.
	store.FetchLeads(context.Background(), "2")

	close(releaseSlow)
	<-done

	assert.Len(t, store.CustomerLeads("1"), 1, "different keys never discard each other")
	assert.Len(t, store.CustomerLeads("2"), 1)
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

func TestStore_AddCustomer_PrependsAndBumpsTotal(t *testing.T) {
	customers := &stubCustomers{
		listFn: func(context.Context, ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
			return listResult(25, customer("1", "Seeded")), nil
		},
		createFn: func(_ context.Context, input ports.CreateCustomerInput) (*domain.Customer, error) {
			return &domain.Customer{ID: "26", Name: input.Name, Email: input.Email}, nil
		},
	}
	store := newTestStore(customers, nil)
	store.FetchCustomers(context.Background(), 1, 10, "")

	store.AddCustomer(context.Background(), ports.CreateCustomerInput{Name: "Fresh", Email: "fresh@example.com"})

	st := store.Snapshot()
	require.Len(t, st.Customers, 2)
	assert.Equal(t, "26", st.Customers[0].ID)
	assert.Equal(t, 26, st.TotalCustomers)
}

func TestStore_DeleteCustomer_DropsRowAndBucket(t *testing.T) {
	customers := &stubCustomers{
		listFn: func(context.Context, ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
			return listResult(2, customer("1", "A"), customer("2", "B")), nil
		},
		deleteFn: func(context.Context, ports.DeleteCustomerInput) error {
			return nil
		},
	}
	leads := &stubLeads{
		listForCustomerFn: func(_ context.Context, customerID string) ([]domain.Lead, error) {
			return []domain.Lead{lead(customerID+"-1", customerID, domain.StatusNew)}, nil
		},
	}
	store := newTestStore(customers, leads)
	store.FetchCustomers(context.Background(), 1, 10, "")
	store.FetchLeads(context.Background(), "1")

	store.DeleteCustomer(context.Background(), ports.DeleteCustomerInput{ID: "1"})

	st := store.Snapshot()
	require.Len(t, st.Customers, 1)
	assert.Equal(t, 1, st.TotalCustomers)
	assert.Nil(t, store.CustomerLeads("1"), "deleted customer's bucket must be dropped")
}

func TestStore_MutationNeverDiscarded(t *testing.T) {
	// A fetch dispatched after the mutation began must not cause the
	// mutation's completion to be dropped: mutations carry no sequence key.
	mutationStarted := make(chan struct{})
	releaseMutation := make(chan struct{})
	customers := &stubCustomers{
		listFn: func(context.Context, ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
			return listResult(0), nil
		},
		createFn: func(_ context.Context, input ports.CreateCustomerInput) (*domain.Customer, error) {
			close(mutationStarted)
			<-releaseMutation
			return &domain.Customer{ID: "1", Name: input.Name}, nil
		},
	}
	store := newTestStore(customers, nil)

	done := make(chan struct{})
	go func() {
		store.AddCustomer(context.Background(), ports.CreateCustomerInput{Name: "Fresh"})
		close(done)
	}()
	<-mutationStarted

	store.FetchCustomers(context.Background(), 1, 10, "")

	close(releaseMutation)
	<-done

	st := store.Snapshot()
	require.Len(t, st.Customers, 1)
	assert.Equal(t, "Fresh", st.Customers[0].Name)
}

func TestStore_DeleteLead_RemovesFromOwningBucket(t *testing.T) {
	leads := &stubLeads{
		listForCustomerFn: func(_ context.Context, customerID string) ([]domain.Lead, error) {
			return []domain.Lead{
				lead(customerID+"-1", customerID, domain.StatusNew),
				lead(customerID+"-2", customerID, domain.StatusNew),
			}, nil
		},
		deleteFn: func(_ context.Context, input ports.DeleteLeadInput) (*domain.Lead, error) {
			l := lead(input.ID, "7", domain.StatusNew)
			return &l, nil
		},
	}
	store := newTestStore(nil, leads)
	store.FetchLeads(context.Background(), "7")

	store.DeleteLead(context.Background(), ports.DeleteLeadInput{ID: "7-1"})

	bucket := store.CustomerLeads("7")
	require.Len(t, bucket, 1)
	assert.Equal(t, "7-2", bucket[0].ID)
}

// ---------------------------------------------------------------------------
// Snapshot isolation
// ---------------------------------------------------------------------------

func TestStore_SnapshotIsDeepCopy(t *testing.T) {
	customers := &stubCustomers{
		listFn: func(context.Context, ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
			return listResult(1, customer("1", "Original")), nil
		},
	}
	store := newTestStore(customers, nil)
	store.FetchCustomers(context.Background(), 1, 10, "")

	snap := store.Snapshot()
	snap.Customers[0].Name = "Tampered"
	snap.LeadsByCustomer["x"] = []domain.Lead{lead("x-1", "x", domain.StatusNew)}

	fresh := store.Snapshot()
	assert.Equal(t, "Original", fresh.Customers[0].Name)
	assert.NotContains(t, fresh.LeadsByCustomer, "x")
}

func TestStore_ConcurrentDispatchesDoNotRace(t *testing.T) {
	customers := &stubCustomers{
		listFn: func(context.Context, ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
			time.Sleep(time.Millisecond)
			return listResult(1, customer("1", "A")), nil
		},
	}
	leads := &stubLeads{
		listAllFn: func(context.Context) ([]domain.Lead, error) {
			return []domain.Lead{lead("1-1", "1", domain.StatusNew)}, nil
		},
	}
	store := newTestStore(customers, leads)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.FetchCustomers(context.Background(), 1, 10, "")
			store.FetchAllLeads(context.Background())
			_ = store.Snapshot()
		}()
	}
	wg.Wait()

	st := store.Snapshot()
	assert.False(t, st.Loading)
	assert.Len(t, st.AllLeads, 1)
}
