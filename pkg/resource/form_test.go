package resource_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-console/pkg/intl"
	"github.com/iota-uz/iota-console/pkg/itf"
	"github.com/iota-uz/iota-console/pkg/notify"
	"github.com/iota-uz/iota-console/pkg/resource"
)

func newForm(repo *itf.Repository[contact], rec *itf.NotificationRecorder) *resource.FormController[contact, contactStatus] {
	logger, _ := test.NewNullLogger()
	return resource.NewFormController(contactSchema(), repo, rec, intl.KeyTranslator{}, logger)
}

func TestForm_CreateValidationFailureStaysCreating(t *testing.T) {
	t.Parallel()

	repo := &itf.Repository[contact]{}
	form := newForm(repo, &itf.NotificationRecorder{})

	require.NoError(t, form.OpenCreate())
	draft, ok := form.Draft()
	require.True(t, ok)
	assert.Equal(t, contactActive, draft.Status, "a new draft carries the default legal status")
	assert.Empty(t, draft.Name)

	_, err := form.Submit(context.Background())
	var verr *resource.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Name")
	assert.True(t, resource.IsValidation(err))

	assert.Equal(t, resource.FormCreating, form.State())
	assert.Equal(t, "Name is required", form.Errors()["Name"])
	assert.Empty(t, repo.Calls(), "validation failures never reach the repository")
}

func TestForm_OpenEditRepairsStatus(t *testing.T) {
	t.Parallel()

	form := newForm(&itf.Repository[contact]{}, &itf.NotificationRecorder{})
	require.NoError(t, form.OpenEdit(contact{ID: "1", Name: "Anna", Status: "bogus"}))

	draft, _ := form.Draft()
	assert.Equal(t, contactActive, draft.Status)
	assert.Equal(t, resource.FormEditing, form.State())

	assert.ErrorIs(t, form.OpenEdit(contact{Name: "no id"}), resource.ErrMissingID)
}

func TestForm_ViewIsReadOnly(t *testing.T) {
	t.Parallel()

	repo := &itf.Repository[contact]{}
	form := newForm(repo, &itf.NotificationRecorder{})
	require.NoError(t, form.OpenView(contact{ID: "1", Name: "Anna", Status: contactInactive}))

	assert.ErrorIs(t, form.Edit(func(c *contact) { c.Name = "x" }), resource.ErrReadOnly)
	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, resource.ErrReadOnly)

	require.NoError(t, form.Cancel())
	assert.Equal(t, resource.FormClosed, form.State())
	assert.Empty(t, repo.Calls())
}

func TestForm_ClosedRejectsEdits(t *testing.T) {
	t.Parallel()

	form := newForm(&itf.Repository[contact]{}, &itf.NotificationRecorder{})
	assert.ErrorIs(t, form.Edit(func(*contact) {}), resource.ErrFormClosed)
	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, resource.ErrFormClosed)
	_, ok := form.Draft()
	assert.False(t, ok)
}

func TestForm_ChangesTracksDraftFields(t *testing.T) {
	t.Parallel()

	form := newForm(&itf.Repository[contact]{}, &itf.NotificationRecorder{})
	require.NoError(t, form.OpenEdit(contact{ID: "1", Name: "Anna", Email: "a@b.co", Status: contactActive}))
	assert.False(t, form.Dirty())

	require.NoError(t, form.Edit(func(c *contact) {
		c.Email = "anna@example.com"
		c.Status = contactInactive
	}))

	changes, err := form.Changes()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"email", "status"}, changes)
	assert.True(t, form.Dirty())
}

func TestForm_SubmitCreate(t *testing.T) {
	t.Parallel()

	repo := &itf.Repository[contact]{
		CreateFn: func(ctx context.Context, c contact) (contact, error) {
			c.ID = "42"
			c.Status = "ACTIVE!"
			return c, nil
		},
	}
	form := newForm(repo, &itf.NotificationRecorder{})

	require.NoError(t, form.OpenCreate())
	require.NoError(t, form.Edit(func(c *contact) {
		c.Name = "Anna"
		c.Status = contactInactive
	}))

	out, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, resource.OpCreate, out.Op)
	assert.Equal(t, "42", out.Entity.ID)
	assert.Equal(t, contactInactive, out.Entity.Status, "submitted status wins over the echo")
	assert.Equal(t, "", out.Submitted.ID)
	assert.Equal(t, resource.FormClosed, form.State())
	assert.Equal(t, 1, repo.Count("create"))
}

func TestForm_CreateWithoutServerIDFails(t *testing.T) {
	t.Parallel()

	rec := &itf.NotificationRecorder{}
	form := newForm(&itf.Repository[contact]{}, rec)

	require.NoError(t, form.OpenCreate())
	require.NoError(t, form.Edit(func(c *contact) { c.Name = "Anna" }))

	_, err := form.Submit(context.Background())
	require.ErrorIs(t, err, resource.ErrMissingID)
	assert.Equal(t, resource.FormCreating, form.State())
	assert.Equal(t, 1, rec.Count(notify.Error))
}

func TestForm_RepositoryFailureKeepsDraft(t *testing.T) {
	t.Parallel()

	boom := errors.New("503 from backend")
	rec := &itf.NotificationRecorder{}
	repo := &itf.Repository[contact]{
		UpdateFn: func(ctx context.Context, id string, c contact) (contact, error) {
			return contact{}, boom
		},
	}
	form := newForm(repo, rec)

	require.NoError(t, form.OpenEdit(contact{ID: "1", Name: "Anna", Status: contactActive}))
	require.NoError(t, form.Edit(func(c *contact) { c.Name = "Anna K." }))

	_, err := form.Submit(context.Background())
	require.ErrorIs(t, err, boom)

	assert.Equal(t, resource.FormEditing, form.State())
	draft, _ := form.Draft()
	assert.Equal(t, "Anna K.", draft.Name)
	require.Len(t, rec.Entries(), 1)
	assert.Equal(t, "Contacts.Notifications.SaveFailed", rec.Entries()[0].Message)
	assert.Equal(t, notify.Error, rec.Entries()[0].Severity)

	repo.UpdateFn = nil
	out, err := form.Submit(context.Background())
	require.NoError(t, err, "the user can retry")
	assert.Equal(t, "Anna K.", out.Entity.Name)
}

func TestForm_BusyWhileSubmitting(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	repo := &itf.Repository[contact]{
		UpdateFn: func(ctx context.Context, id string, c contact) (contact, error) {
			close(started)
			<-release
			return c, nil
		},
	}
	form := newForm(repo, &itf.NotificationRecorder{})
	require.NoError(t, form.OpenEdit(contact{ID: "1", Name: "Anna"}))

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()
	<-started

	assert.Equal(t, resource.FormSubmitting, form.State())
	assert.ErrorIs(t, form.Cancel(), resource.ErrFormBusy)
	assert.ErrorIs(t, form.OpenCreate(), resource.ErrFormBusy)
	assert.ErrorIs(t, form.Edit(func(*contact) {}), resource.ErrFormBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, resource.FormClosed, form.State())
}

func TestForm_ResetDropsLateResult(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	repo := &itf.Repository[contact]{
		CreateFn: func(ctx context.Context, c contact) (contact, error) {
			close(started)
			<-release
			c.ID = "9"
			return c, nil
		},
	}
	form := newForm(repo, &itf.NotificationRecorder{})
	require.NoError(t, form.OpenCreate())
	require.NoError(t, form.Edit(func(c *contact) { c.Name = "Anna" }))

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()
	<-started
	form.Reset()
	require.NoError(t, form.OpenCreate())
	close(release)

	require.ErrorIs(t, <-done, resource.ErrDiscarded)
	assert.Equal(t, resource.FormCreating, form.State(), "the late result does not touch the new draft")
	draft, _ := form.Draft()
	assert.Empty(t, draft.Name)
}

func TestForm_CancelDiscardsDraft(t *testing.T) {
	t.Parallel()

	repo := &itf.Repository[contact]{}
	form := newForm(repo, &itf.NotificationRecorder{})
	require.NoError(t, form.OpenCreate())
	require.NoError(t, form.Edit(func(c *contact) { c.Name = "Anna" }))

	require.NoError(t, form.Cancel())
	assert.Equal(t, resource.FormClosed, form.State())
	require.NoError(t, form.OpenCreate())
	draft, _ := form.Draft()
	assert.Empty(t, draft.Name)
	assert.Empty(t, repo.Calls())
}
