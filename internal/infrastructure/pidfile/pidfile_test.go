package pidfile_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge-go/internal/infrastructure/pidfile"
)

func TestAcquire_WritesCurrentPID(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "run", "serve.pid")
	pf := pidfile.New(path)

	// Act
	err := pf.Acquire()

	// Assert
	require.NoError(t, err)
	pid, err := pf.Read()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestAcquire_RefusesWhileHeld(t *testing.T) {
	pf := pidfile.New(filepath.Join(t.TempDir(), "serve.pid"))
	require.NoError(t, pf.Acquire())

	err := pf.Acquire()

	assert.Error(t, err)
}

func TestAcquire_RefusesLiveProcess(t *testing.T) {
	// Arrange: the parent of the test binary is alive for the whole test
	path := filepath.Join(t.TempDir(), "serve.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getppid())+"\n"), 0644))

	// Act
	err := pidfile.New(path).Acquire()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}

func TestAcquire_ReplacesGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serve.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0644))
	pf := pidfile.New(path)

	require.NoError(t, pf.Acquire())

	pid, err := pf.Read()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestRelease_RemovesFileAndToleratesMissing(t *testing.T) {
	pf := pidfile.New(filepath.Join(t.TempDir(), "serve.pid"))
	require.NoError(t, pf.Acquire())

	require.NoError(t, pf.Release())
	require.NoError(t, pf.Release())

	_, err := os.Stat(pf.Path())
	assert.True(t, os.IsNotExist(err))
}
