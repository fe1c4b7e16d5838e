package builder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formflow-server/model"
)

func TestSessionsCreateAndGet(t *testing.T) {
	s := NewSessions(newStubStore(), 0)

	b := s.Create()
	id := b.Form().ID
	assert.Same(t, b, s.Get(id))
	assert.Nil(t, s.Get("other"))
}

func TestSessionsOpenReusesLiveSession(t *testing.T) {
	store := newStubStore()
	s := NewSessions(store, 0)

	b := s.Create()
	id := b.Form().ID
	b.AddQuestion(model.ShortText) // unsaved edit

	reopened, err := s.Open(context.Background(), id)
	require.NoError(t, err)
	assert.Same(t, b, reopened, "open session wins over the stored copy")
	assert.Len(t, reopened.Form().Questions, 1)
}

func TestSessionsOpenLoadsFromStore(t *testing.T) {
	store := newStubStore()
	form := model.NewForm()
	form.Questions = []model.Question{model.NewQuestion(model.Email)}
	store.forms[form.ID] = form

	s := NewSessions(store, 0)
	b, err := s.Open(context.Background(), form.ID)
	require.NoError(t, err)
	assert.Len(t, b.Form().Questions, 1)
}

func TestSessionsCloseCancelsAutoSave(t *testing.T) {
	store := newStubStore()
	s := NewSessions(store, 30*time.Millisecond)

	b := s.Create()
	id := b.Form().ID
	b.AddQuestion(model.ShortText)
	s.Close(id)

	assert.Nil(t, s.Get(id))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, store.saveCount())
}
