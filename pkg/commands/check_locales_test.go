package commands_test

import (
	"embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-console/modules"
	"github.com/iota-uz/iota-console/pkg/application"
	"github.com/iota-uz/iota-console/pkg/commands"
	"github.com/iota-uz/iota-console/pkg/itf"
)

//go:embed testdata/locales/*.json
var brokenLocales embed.FS

type brokenModule struct{}

func (brokenModule) Name() string { return "broken" }

func (brokenModule) Register(app application.Application) error {
	app.RegisterLocaleFiles(&brokenLocales)
	app.RegisterResources(application.Resource{Name: "widgets", Namespace: "Widgets", Statuses: []string{"on", "off"}})
	return nil
}

func TestCheckLocales_BuiltInModulesAreComplete(t *testing.T) {
	t.Parallel()

	env := itf.NewTestContext().WithModules(modules.BuiltInModules...).Build(t)
	missing, err := commands.CheckLocales(env.App, "", nil, env.Logger)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestCheckLocales_ReportsGaps(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	src := `package widgets

type field struct{ LabelKey string }

type tr interface{ T(key string, params map[string]any) string }

var fields = []field{{LabelKey: "Widgets.Fields.Name"}, {LabelKey: "Widgets.Fields.Size"}}

func title(t tr) string { return t.T("Widgets.Meta.Title", nil) }
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "widgets.go"), []byte(src), 0o600))

	env := itf.NewTestContext().WithModules(brokenModule{}).Build(t)
	missing, err := commands.CheckLocales(env.App, root, []string{"en", "zh"}, env.Logger)
	require.NoError(t, err)

	got := make(map[string]string, len(missing))
	for _, m := range missing {
		got[m.Locale+" "+m.Key] = m.Source
	}
	assert.Equal(t, map[string]string{
		"zh Widgets.Meta.Title":   "en",
		"en Widgets.Statuses.off": "resource widgets",
		"zh Widgets.Statuses.off": "resource widgets",
		"en Widgets.Fields.Size":  "widgets.go:7",
		"zh Widgets.Fields.Size":  "widgets.go:7",
	}, got)
}

func TestCheckLocales_UnknownLanguage(t *testing.T) {
	t.Parallel()

	env := itf.NewTestContext().WithModules(brokenModule{}).Build(t)
	_, err := commands.CheckLocales(env.App, "", []string{"fr"}, env.Logger)
	require.Error(t, err)
}
