package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLocales(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "zh-TW.yaml"),
		[]byte("Account: 帳號\nName: 姓名\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en-US.yaml"),
		[]byte("Account: Account\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"),
		[]byte("ignored"), 0o644))

	return dir
}

func TestLoadAndLocalize(t *testing.T) {
	catalog, err := Load(writeLocales(t))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"zh-TW", "en-US"}, catalog.Cultures())
	assert.True(t, catalog.Has("en-US"))
	assert.False(t, catalog.Has("ja-JP"))

	zh := catalog.Localize("zh-TW")
	assert.Equal(t, "帳號", zh("Account"))
	assert.Equal(t, "", zh("Missing"))
}

func TestLocalizeUnknownCultureFallsBack(t *testing.T) {
	catalog, err := Load(writeLocales(t))
	require.NoError(t, err)

	ja := catalog.Localize("ja-JP")
	assert.Equal(t, "帳號", ja("Account"))
}

func TestLoadRequiresDefaultCulture(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en-US.yaml"),
		[]byte("Account: Account\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
