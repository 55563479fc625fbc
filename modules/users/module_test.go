package users_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-console/modules/core"
	"github.com/iota-uz/iota-console/modules/users"
	"github.com/iota-uz/iota-console/modules/users/domain/user"
	"github.com/iota-uz/iota-console/modules/users/infrastructure/persistence"
	"github.com/iota-uz/iota-console/modules/users/presentation/mappers"
	"github.com/iota-uz/iota-console/pkg/itf"
	"github.com/iota-uz/iota-console/pkg/notify"
	"github.com/iota-uz/iota-console/pkg/resource"
	"github.com/iota-uz/iota-console/pkg/rest"
)

func seed() []user.User {
	return []user.User{
		{ID: "1", FirstName: "Anna", LastName: "Kim", Email: "anna@example.com", Role: user.RoleAdmin, Status: user.StatusActive},
		{ID: "2", FirstName: "Boris", LastName: "Lee", Email: "boris@example.com", Role: user.RoleMember, Status: "disabled"},
		{ID: "3", FirstName: "Joanne", LastName: "Park", Email: "jo@example.com", Role: user.RoleManager, Status: user.StatusInactive},
	}
}

type fixture struct {
	ctl     *resource.ListController[user.User, user.Status]
	env     *itf.TestEnvironment
	repo    *itf.Repository[user.User]
	confirm *itf.Confirmer
}

func newFixture(t *testing.T, locale string, answer bool) fixture {
	t.Helper()
	env := itf.NewTestContext().
		WithModules(core.NewModule(), users.NewModule()).
		WithLocale(locale).
		Build(t)
	repo := &itf.Repository[user.User]{Items: seed()}
	confirm := itf.Confirm(answer)
	ctl := users.NewListController(resource.Dependencies[user.User]{
		Repository: repo,
		Notifier:   env.Notifications,
		Translator: env.Translator,
		Confirmer:  confirm,
		EventBus:   env.App.EventPublisher(),
		Logger:     env.Logger,
		Locale:     env.Locale,
	})
	t.Cleanup(ctl.Unmount)
	require.NoError(t, ctl.Mount(env.Ctx))
	return fixture{ctl: ctl, env: env, repo: repo, confirm: confirm}
}

func TestSearchMatchesFullName(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "en", true)
	f.ctl.SetSearch("ann")

	got := f.ctl.View()
	require.Len(t, got, 2)
	assert.Equal(t, "Anna", got[0].FirstName)
	assert.Equal(t, "Joanne", got[1].FirstName)
}

func TestFilterByRoleAndStatus(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "en", true)
	f.ctl.SetFilter("role", "member")
	f.ctl.SetFilter(resource.StatusField, "active")

	got := f.ctl.View()
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID, "a malformed status was repaired to active")

	props := mappers.UsersToListPage(f.ctl, f.env.Translator)
	assert.Equal(t, "member", props.Role)
	assert.Equal(t, "Member", props.Items[0].RoleLabel)
	assert.Equal(t, "Boris Lee", props.Items[0].FullName)
}

func TestDeleteConfirmed(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "zh", true)

	var events []*resource.ChangedEvent
	f.env.App.EventPublisher().Subscribe(func(e *resource.ChangedEvent) { events = append(events, e) })

	require.NoError(t, f.ctl.Delete(context.Background(), "2"))
	_, ok := f.ctl.Get("2")
	assert.False(t, ok)
	assert.Len(t, f.ctl.Items(), 2)

	assert.Equal(t, []string{"确定删除该用户吗？此操作无法撤销。"}, f.confirm.Prompts())
	require.Len(t, f.env.Notifications.Entries(), 1)
	assert.Equal(t, "用户已删除", f.env.Notifications.Entries()[0].Message)
	require.Len(t, events, 1)
	assert.Equal(t, resource.OpDelete, events[0].Op)
	assert.Equal(t, "2", events[0].ID)
}

func TestDeleteDeclinedDoesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "en", false)
	require.ErrorIs(t, f.ctl.Delete(context.Background(), "2"), resource.ErrNotConfirmed)
	assert.Len(t, f.ctl.Items(), 3)
	assert.Zero(t, f.repo.Count("delete"))
}

func TestDeleteFailureKeepsUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "en", true)
	f.repo.DeleteFn = func(ctx context.Context, id string) error {
		return errors.New("409 user owns tasks")
	}

	require.Error(t, f.ctl.Delete(context.Background(), "1"))
	_, ok := f.ctl.Get("1")
	assert.True(t, ok)
	require.Equal(t, 1, f.env.Notifications.Count(notify.Error))
	assert.Equal(t, "Could not delete the user: 409 user owns tasks", f.env.Notifications.Entries()[0].Message)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	env := itf.NewTestContext().WithModules(core.NewModule(), users.NewModule()).Build(t)

	errs, ok := user.Validate(env.Ctx, user.User{FirstName: "Anna", Email: "ANNA@EXAMPLE.COM", Role: "boss", Language: "fr"})
	require.False(t, ok)
	assert.Equal(t, "Last name is required", errs["LastName"])
	assert.Equal(t, "Role must be one of: admin manager member", errs["Role"])
	assert.Equal(t, "Language must be one of: en zh", errs["Language"])
	assert.NotContains(t, errs, "Email")
}

func TestCodec_RepairsRoleAndStatus(t *testing.T) {
	t.Parallel()

	got := persistence.UserCodec{}.Decode(rest.Record{
		"id":        "u1",
		"firstName": "Anna",
		"role":      "Super Admin",
		"status":    "INACTIVE",
	})
	assert.Equal(t, "Anna", got.FirstName)
	assert.Equal(t, user.RoleMember, got.Role)
	assert.Equal(t, user.StatusInactive, got.Status)
}
