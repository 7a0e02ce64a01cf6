package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sdejongh/filesync/pkg/errclass"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSource_ExistingDirectory(t *testing.T) {
	require.NoError(t, ValidateSource(t.TempDir()))
}

func TestValidateSource_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nonexistent_src")

	err := ValidateSource(missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrSourceNotFound))
	assert.Equal(t, missing, errclass.PathOf(err))
}

func TestValidateSource_Empty(t *testing.T) {
	err := ValidateSource("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrSourceNotFound))

	var pe *PathError
	assert.True(t, errors.As(err, &pe))
}

func TestValidateSource_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("Hello!"), 0644))

	err := ValidateSource(file)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrSourceNotADirectory))
}

func TestEnsureDestination_Existing(t *testing.T) {
	dir := t.TempDir()
	before, err := os.Stat(dir)
	require.NoError(t, err)

	created, err := EnsureDestination(dir)
	require.NoError(t, err)
	assert.False(t, created)

	after, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestEnsureDestination_CreatesMultipleLevels(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "a", "b", "c")

	created, err := EnsureDestination(dest)
	require.NoError(t, err)
	assert.True(t, created)

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Second call is a no-op
	created, err = EnsureDestination(dest)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestEnsureDestination_ExistingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := EnsureDestination(file)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrDestinationNotADir))
}

func TestEnsureDestination_ParentIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := EnsureDestination(filepath.Join(file, "child"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrDestinationCreateFailed))
}

func TestEnsureDestination_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}

	parent := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(parent, 0555))
	t.Cleanup(func() { os.Chmod(parent, 0755) })

	_, err := EnsureDestination(filepath.Join(parent, "dest"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrDestinationCreateFailed))
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestResolve_MissingSourceCreatesNothing(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "dest")

	_, err := Resolve(filepath.Join(root, "missing"), dest)
	require.Error(t, err)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestResolve_KeepsPathsVerbatim(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.Mkdir(src, 0755))
	dest := filepath.Join(root, "new", "dest") + string(filepath.Separator)

	res, err := Resolve(src, dest)
	require.NoError(t, err)
	assert.True(t, res.DestinationCreated)
	assert.Equal(t, dest, res.DestPath)
	assert.Equal(t, src, res.SourcePath)
}

func TestValidatePath(t *testing.T) {
	assert.Error(t, ValidatePath(""))
	assert.Error(t, ValidatePath("bad\x00path"))
	assert.NoError(t, ValidatePath("some dir/with spaces"))

	err := &PathError{Path: "p", Message: "m"}
	assert.Equal(t, "invalid path 'p': m", err.Error())
}
