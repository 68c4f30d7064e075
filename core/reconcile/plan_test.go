package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockMutator implements both Adapter and Mutator for testing.
type mockMutator struct {
	mockAdapter
	deletedDB      []string
	deletedCatalog []string
	deletedStorage []string
	synced         []string
	failOn         string
}

func (m *mockMutator) DeleteDB(ctx context.Context, key string) error {
	if key == m.failOn {
		return errors.New("locked")
	}
	m.deletedDB = append(m.deletedDB, key)
	return nil
}

func (m *mockMutator) DeleteCatalog(ctx context.Context, key string) error {
	m.deletedCatalog = append(m.deletedCatalog, key)
	return nil
}

func (m *mockMutator) DeleteStorage(ctx context.Context, key string) error {
	m.deletedStorage = append(m.deletedStorage, key)
	return nil
}

func (m *mockMutator) SyncDBFromCatalog(ctx context.Context, key string, item CatalogItem) error {
	m.synced = append(m.synced, key)
	return nil
}

func TestReconcileWithPlan_PurgeActions(t *testing.T) {
	adapter := &mockAdapter{
		name:         "plan-purge",
		dbIndex:      map[string]DBItem{"1": "1"},
		catalogIndex: map[string]CatalogItem{"2": "2"},
		storageSet:   map[string]struct{}{"3": {}},
	}
	spec := &Spec{Adapter: adapter}

	plan, err := ReconcileWithPlan(context.Background(), spec, nil, nil, "", ReconcileOptions{DoPurge: true})
	require.NoError(t, err)
	require.Len(t, plan.Results, 3)

	assert.Equal(t, 2, plan.Summary.MissingCatalog)
	assert.Equal(t, 2, plan.Summary.MissingStorage)
	assert.Equal(t, 2, plan.Summary.MissingDB)

	// Each item is deleted only from the store that has it.
	assert.Equal(t, 3, plan.Summary.PurgeActions)
	assert.Equal(t, []Action{
		{Type: ActionDeleteDB, Key: "1", Reason: "missing in: catalog, storage"},
		{Type: ActionDeleteCatalog, Key: "2", Reason: "missing in: storage, database"},
		{Type: ActionDeleteStorage, Key: "3", Reason: "missing in: catalog, database"},
	}, plan.Actions)
}

func TestReconcileWithPlan_SyncActions(t *testing.T) {
	adapter := &mockAdapter{
		name:         "plan-sync",
		dbIndex:      map[string]DBItem{"1": "1"},
		catalogIndex: map[string]CatalogItem{"1": "1"},
		storageSet:   map[string]struct{}{"1": {}},
		mismatches:   map[string][]string{"1": {"extra: catalog=R2 db=R1", "language: catalog=de db=en"}},
	}
	spec := &Spec{Adapter: adapter}

	plan, err := ReconcileWithPlan(context.Background(), spec, nil, nil, "", ReconcileOptions{DoSync: true})
	require.NoError(t, err)

	assert.Len(t, plan.Results, 1)
	assert.Zero(t, plan.Summary.MissingCatalog)
	assert.Zero(t, plan.Summary.MissingStorage)
	assert.Zero(t, plan.Summary.MissingDB)
	assert.Equal(t, 1, plan.Summary.Mismatches)
	assert.Equal(t, 1, plan.Summary.SyncActions)

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, ActionSyncDB, plan.Actions[0].Type)
	assert.Equal(t, "1", plan.Actions[0].Key)
	assert.Equal(t, "1", plan.Actions[0].CatalogItem)
	assert.Contains(t, plan.Actions[0].Reason, "extra: catalog=R2 db=R1")
}

func TestReconcileWithPlan_PurgePrecedence(t *testing.T) {
	adapter := &mockAdapter{
		name:         "plan-precedence",
		dbIndex:      map[string]DBItem{"1": "1"},
		catalogIndex: map[string]CatalogItem{"1": "1"},
		storageSet:   map[string]struct{}{},
		mismatches:   map[string][]string{"1": {"game_id: catalog=a db=b"}},
	}
	spec := &Spec{Adapter: adapter}

	plan, err := ReconcileWithPlan(context.Background(), spec, nil, nil, "", ReconcileOptions{DoPurge: true, DoSync: true})
	require.NoError(t, err)

	assert.Equal(t, 2, plan.Summary.PurgeActions)
	assert.Equal(t, 0, plan.Summary.SyncActions)
	for _, action := range plan.Actions {
		assert.NotEqual(t, ActionSyncDB, action.Type)
	}
}

func TestApplyPlan_ConfirmationGating(t *testing.T) {
	mutator := &mockMutator{}
	spec := &Spec{Adapter: mutator}
	plan := &ReconcilePlan{
		Actions: []Action{
			{Type: ActionDeleteDB, Key: "1"},
			{Type: ActionDeleteCatalog, Key: "2"},
		},
	}

	executed, err := ApplyPlan(context.Background(), spec, nil, nil, "", plan, ReconcileOptions{})
	assert.NoError(t, err)
	assert.Zero(t, executed)

	executed, err = ApplyPlan(context.Background(), spec, nil, nil, "", plan, ReconcileOptions{Confirmed: true, DryRun: true})
	assert.NoError(t, err)
	assert.Zero(t, executed)
	assert.Empty(t, mutator.deletedDB)

	executed, err = ApplyPlan(context.Background(), spec, nil, nil, "", plan, ReconcileOptions{Confirmed: true})
	assert.NoError(t, err)
	assert.Equal(t, 2, executed)
	assert.Equal(t, []string{"1"}, mutator.deletedDB)
	assert.Equal(t, []string{"2"}, mutator.deletedCatalog)
}

func TestApplyPlan_Errors(t *testing.T) {
	t.Run("Not A Mutator", func(t *testing.T) {
		spec := &Spec{Adapter: &mockAdapter{}}
		_, err := ApplyPlan(context.Background(), spec, nil, nil, "", &ReconcilePlan{}, ReconcileOptions{Confirmed: true})
		assert.ErrorContains(t, err, "does not implement Mutator")
	})

	t.Run("Stops On Failure", func(t *testing.T) {
		mutator := &mockMutator{failOn: "2"}
		spec := &Spec{Adapter: mutator}
		plan := &ReconcilePlan{
			Actions: []Action{
				{Type: ActionDeleteDB, Key: "1"},
				{Type: ActionDeleteDB, Key: "2"},
				{Type: ActionDeleteStorage, Key: "3"},
			},
		}

		executed, err := ApplyPlan(context.Background(), spec, nil, nil, "", plan, ReconcileOptions{Confirmed: true})
		assert.ErrorContains(t, err, "failed to delete DB key 2: locked")
		assert.Equal(t, 1, executed)
		assert.Empty(t, mutator.deletedStorage)
	})
}

func TestReconcileAndApply(t *testing.T) {
	mutator := &mockMutator{
		mockAdapter: mockAdapter{
			name:         "plan-apply",
			dbIndex:      map[string]DBItem{"1": "1", "2": "2"},
			catalogIndex: map[string]CatalogItem{"1": "1", "2": "2"},
			storageSet:   map[string]struct{}{"1": {}},
			mismatches:   map[string][]string{"1": {"extra: catalog=a db=b"}},
		},
	}
	spec := &Spec{Adapter: mutator}

	plan, executed, err := ReconcileAndApply(context.Background(), spec, nil, nil, "", ReconcileOptions{DoPurge: true, DoSync: true, Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 3, executed)
	assert.Equal(t, 2, plan.Summary.PurgeActions)
	assert.Equal(t, []string{"2"}, mutator.deletedDB)
	assert.Equal(t, []string{"2"}, mutator.deletedCatalog)
	assert.Equal(t, []string{"1"}, mutator.synced)
}
