package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamColors_Color(t *testing.T) {
	tc := DefaultTeamColors()
	assert.Equal(t, "#00D2BE", tc.Color("Mercedes"))
	assert.Equal(t, FallbackColor, tc.Color("Brawn GP"))

	// defaults are not shared
	tc["Mercedes"] = "#000000"
	assert.Equal(t, "#00D2BE", DefaultTeamColors().Color("Mercedes"))
}

func TestLoadTeamColors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colors.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"Ferrari: \"#FF0000\"\nAston Martin: \"#006F62\"\n"), 0o600))

	tc, err := LoadTeamColors(path)
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", tc.Color("Ferrari"))
	assert.Equal(t, "#006F62", tc.Color("Aston Martin"))
	assert.Equal(t, "#1E41FF", tc.Color("Red Bull Racing"))

	tc, err = LoadTeamColors("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTeamColors(), tc)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("- a\n- b\n"), 0o600))
	_, err = LoadTeamColors(bad)
	assert.Error(t, err)

	_, err = LoadTeamColors(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}
