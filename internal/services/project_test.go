package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCreate(t *testing.T) {
	store := &fakeProjectStore{}
	svc := NewProjectService(store)

	project, err := svc.Create(context.Background(), "u1", "My SaaS", "https://my-saas.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", project.UserID)

	require.Len(t, store.created, 1)
	assert.Equal(t, "My SaaS", store.created[0].Name)
}

func TestProjectUpdate_OwnershipGate(t *testing.T) {
	store := &fakeProjectStore{owned: map[string]string{"p1": "u1"}}
	svc := NewProjectService(store)

	t.Run("owner can update", func(t *testing.T) {
		_, err := svc.Update(context.Background(), "u1", "p1", map[string]any{"name": "Renamed"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Renamed"}, store.updated["p1"])
	})

	t.Run("non-owner gets not found", func(t *testing.T) {
		_, err := svc.Update(context.Background(), "intruder", "p1", map[string]any{"name": "X"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProjectDelete_OwnershipGate(t *testing.T) {
	store := &fakeProjectStore{owned: map[string]string{"p1": "u1"}}
	svc := NewProjectService(store)

	assert.ErrorIs(t, svc.Delete(context.Background(), "intruder", "p1"), ErrNotFound)
	assert.Empty(t, store.deleted)

	require.NoError(t, svc.Delete(context.Background(), "u1", "p1"))
	assert.Equal(t, []string{"p1"}, store.deleted)
}
