package knownfiles_test

import (
	"testing"

	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/filesystem"
	"github.com/arthur-debert/reslot/pkg/knownfiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/res", 0755))
	content := "fighter/mario/model/body/c00/model.numdlb\r\n" +
		"  fighter/mario/model/body/c00/model.numatb  \n" +
		"\n" +
		"sound/bank/fighter/se_mario.nus3bank\n"
	require.NoError(t, fs.WriteFile("/res/Hashes_all.txt", []byte(content), 0644))

	set, err := knownfiles.Load(fs, "/res/Hashes_all.txt")
	require.NoError(t, err)

	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Contains("fighter/mario/model/body/c00/model.numdlb"))
	assert.True(t, set.Contains("fighter/mario/model/body/c00/model.numatb"))
	assert.False(t, set.Contains("fighter/mario/model/body/c08/model.numdlb"))
	assert.False(t, set.Contains(""))
}

func TestLoad_Missing(t *testing.T) {
	_, err := knownfiles.Load(filesystem.NewMemory(), "/res/Hashes_all.txt")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrKnownFilesLoad))
	assert.True(t, errors.IsFatal(err))
}

func TestNilSet(t *testing.T) {
	var set *knownfiles.Set
	assert.False(t, set.Contains("anything"))
	assert.Equal(t, 0, set.Len())
}
