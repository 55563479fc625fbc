package modules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-console/modules"
	"github.com/iota-uz/iota-console/pkg/itf"
)

func TestBuiltInModulesRegisterEveryResource(t *testing.T) {
	t.Parallel()

	env := itf.NewTestContext().WithModules(modules.BuiltInModules...).Build(t)

	names := make([]string, 0, 4)
	for _, r := range env.App.Resources() {
		names = append(names, r.Name)
		require.NotEmpty(t, r.Statuses, r.Name)
	}
	assert.Equal(t, []string{"clients", "organizations", "tasks", "users"}, names)

	for _, key := range []string{
		"Clients.Meta.Title",
		"Organizations.Meta.Title",
		"Tasks.Meta.Title",
		"Users.Meta.Title",
		"ValidationErrors.required",
	} {
		assert.NotEqual(t, key, env.Translator.T(key, map[string]any{"Field": "x"}), key)
	}
}
