package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/dms"
	"github.com/tzneal/geodesy/internal/cli"
)

const sep = dms.Separator

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := cli.NewRoot()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestToGrid(t *testing.T) {
	out, _, err := run(t, "togrid", "52°39′27.2531″N", "1°43′4.5177″E", "--datum", "OSGB36")
	require.NoError(t, err)
	assert.Equal(t, "TG 51409 13177\n", out)

	out, _, err = run(t, "togrid", "52°39′27.2531″N", "1°43′4.5177″E", "-d", "osgb36", "--digits", "6")
	require.NoError(t, err)
	assert.Equal(t, "TG 514 131\n", out)

	out, _, err = run(t, "togrid", "52°39′27.2531″N", "1°43′4.5177″E", "--datum", "OSGB36", "--digits", "0")
	require.NoError(t, err)
	assert.Equal(t, "651409.903,313177.270\n", out)
}

func TestToGridEnvironment(t *testing.T) {
	t.Setenv("OSGRID_DATUM", "OSGB36")
	t.Setenv("OSGRID_DIGITS", "8")
	out, _, err := run(t, "togrid", "52°39′27.2531″N", "1°43′4.5177″E")
	require.NoError(t, err)
	assert.Equal(t, "TG 5140 1317\n", out)

	// flags win over the environment
	out, _, err = run(t, "togrid", "52°39′27.2531″N", "1°43′4.5177″E", "--digits", "10")
	require.NoError(t, err)
	assert.Equal(t, "TG 51409 13177\n", out)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "osgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("datum: OSGB36\ndigits: 4\n"), 0o600))

	out, _, err := run(t, "togrid", "52°39′27.2531″N", "1°43′4.5177″E", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "TG 51 13\n", out)

	_, _, err = run(t, "datums", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestToLatLon(t *testing.T) {
	out, _, err := run(t, "tolatlon", "TQ", "44359", "80653", "--datum", "OSGB36", "--format", "d")
	require.NoError(t, err)
	assert.Equal(t, "51.5059°"+sep+"N, 000.0803°"+sep+"E\n", out)

	out, _, err = run(t, "tolatlon", "544359,180653", "-f", "d")
	require.NoError(t, err)
	assert.Equal(t, "51.5064°"+sep+"N, 000.0787°"+sep+"E\n", out)

	out, _, err = run(t, "tolatlon", "TQ 44359 80653", "--datum", "OSGB36", "--format", "d", "--decimals", "2")
	require.NoError(t, err)
	assert.Equal(t, "51.51°"+sep+"N, 000.08°"+sep+"E\n", out)
}

func TestConvert(t *testing.T) {
	out, _, err := run(t, "convert", "51.4778", "0.0016W", "--to", "OSGB36", "--format", "d")
	require.NoError(t, err)
	assert.Equal(t, "51.4773°"+sep+"N, 000.0000°"+sep+"E\n", out)

	// the same datum on both sides leaves the point alone
	out, _, err = run(t, "convert", "51.4778", "0.0016W", "--from", "OSGB36", "--to", "OSGB36", "--format", "d")
	require.NoError(t, err)
	assert.Equal(t, "51.4778°"+sep+"N, 000.0016°"+sep+"W\n", out)
}

func TestDatums(t *testing.T) {
	out, _, err := run(t, "datums")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(geodesy.Datums()))
	assert.Equal(t, "ED50        Intl1924", lines[0])
	assert.Contains(t, out, "OSGB36      Airy1830\n")
}

func TestVerbose(t *testing.T) {
	_, stderr, err := run(t, "togrid", "52°39′27.2531″N", "1°43′4.5177″E", "--datum", "OSGB36")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	_, stderr, err = run(t, "togrid", "52°39′27.2531″N", "1°43′4.5177″E", "--datum", "OSGB36", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "projected to national grid")
	assert.Contains(t, stderr, "datum=OSGB36")
}

func TestErrors(t *testing.T) {
	_, _, err := run(t, "togrid", "north", "1")
	assert.ErrorIs(t, err, geodesy.ErrInvalidFormat)

	_, _, err = run(t, "togrid", "52", "1", "--datum", "GDA94")
	assert.ErrorIs(t, err, geodesy.ErrInvalidFormat)

	_, _, err = run(t, "togrid", "52", "1", "--digits", "7")
	assert.ErrorIs(t, err, geodesy.ErrOutOfRange)

	_, _, err = run(t, "togrid", "95", "1")
	assert.ErrorIs(t, err, geodesy.ErrOutOfRange)

	_, _, err = run(t, "tolatlon", "SI 000 000")
	assert.ErrorIs(t, err, geodesy.ErrInvalidFormat)

	_, _, err = run(t, "convert", "52", "1", "--to", "Mars")
	assert.ErrorIs(t, err, geodesy.ErrInvalidFormat)

	_, _, err = run(t, "togrid", "52")
	assert.Error(t, err)
}
