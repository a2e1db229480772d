// pkg/migrate/migrate_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Memory FS, real FS under t.TempDir
// PURPOSE: Test slot pair migration, copying and partial failure handling

package migrate_test

import (
	"testing"

	"github.com/arthur-debert/reslot/pkg/classify"
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/filesystem"
	"github.com/arthur-debert/reslot/pkg/migrate"
	"github.com/arthur-debert/reslot/pkg/modfiles"
	"github.com/arthur-debert/reslot/pkg/slot"
	"github.com/arthur-debert/reslot/pkg/testutil"
	"github.com/arthur-debert/reslot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var modPaths = []string{
	"fighter/mario/model/body/c00/model.numdlb",
	"fighter/mario/model/body/c00/def_mario_001_col.nutexb",
	"fighter/mario/model/body/c01/def_mario_001_col.nutexb",
	"ui/replace/chara/chara_0/chara_0_mario_00.bntx",
	"ui/replace/chara/chara_0/chara_0_luigi_00.bntx",
	"sound/bank/fighter_voice/vc_mario_c00.nus3bank",
	"effect/fighter/mario/ef_mario_c00.eff",
	"stage/common/c00/model.numdlb",
}

func setup(t *testing.T) (types.FS, *modfiles.Set) {
	t.Helper()
	fs := filesystem.NewMemory()
	testutil.NewMod(t, fs, "/mod").Files(modPaths...)
	return fs, modfiles.NewSet(modPaths...)
}

func request() migrate.Request {
	return migrate.Request{
		ModDir:    "/mod",
		OutputDir: "/out",
		Source:    slot.MustParse("c00"),
		Target:    slot.MustParse("c08"),
	}
}

func TestMigrate_CopiesAndRecords(t *testing.T) {
	fs, files := setup(t)
	m := migrate.New(fs, classify.New("mario", nil))

	result, err := m.Migrate(files, request())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"fighter/mario/model/body/c08/model.numdlb",
		"fighter/mario/model/body/c08/def_mario_001_col.nutexb",
		"sound/bank/fighter_voice/vc_mario_c08.nus3bank",
		"effect/fighter/mario/ef_mario_c08.eff",
	}, result.Migrated)
	assert.Equal(t, []string{"ui/replace/chara/chara_0/chara_0_mario_08.bntx"}, result.Portraits)
	assert.Empty(t, result.Kept)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 5, result.Copied)

	for _, p := range append(result.Migrated, result.Portraits...) {
		assert.True(t, files.Has(p), "%s recorded in the mod file set", p)
	}

	content, err := fs.ReadFile("/out/fighter/mario/model/body/c08/model.numdlb")
	require.NoError(t, err)
	assert.Equal(t, "fighter/mario/model/body/c00/model.numdlb", string(content))

	_, err = fs.Stat("/out/fighter/mario/model/body/c01/def_mario_001_col.nutexb")
	assert.Error(t, err, "other slots are not copied by default")
	_, err = fs.Stat("/out/stage/common/c08/model.numdlb")
	assert.Error(t, err, "unclassified files are left alone")
}

func TestMigrate_ConfigOnly(t *testing.T) {
	fs, files := setup(t)
	faulty := testutil.NewFaultyFS(fs)
	m := migrate.New(faulty, classify.New("mario", nil))

	req := request()
	req.OutputDir = ""
	assert.True(t, req.ConfigOnly())

	result, err := m.Migrate(files, req)
	require.NoError(t, err)

	assert.Len(t, result.Migrated, 4)
	assert.Equal(t, 0, result.Copied)
	assert.Equal(t, 0, faulty.Calls(testutil.OpCreate))
	assert.True(t, files.Has("fighter/mario/model/body/c08/model.numdlb"))
}

func TestMigrate_SameSlotIsConfigOnly(t *testing.T) {
	fs, files := setup(t)
	m := migrate.New(fs, classify.New("mario", nil))

	req := request()
	req.Target = req.Source
	assert.True(t, req.ConfigOnly())

	result, err := m.Migrate(files, req)
	require.NoError(t, err)

	assert.Contains(t, result.Migrated, "fighter/mario/model/body/c00/model.numdlb")
	assert.Equal(t, 0, result.Copied)
	assert.Equal(t, len(modPaths), files.Len(), "no new paths for a slot onto itself")
}

func TestMigrate_KeepOtherSlots(t *testing.T) {
	fs, files := setup(t)
	m := migrate.New(fs, classify.New("mario", nil))

	req := request()
	req.KeepOtherSlots = true

	result, err := m.Migrate(files, req)
	require.NoError(t, err)

	assert.Equal(t, []string{"fighter/mario/model/body/c01/def_mario_001_col.nutexb"}, result.Kept)
	assert.NotContains(t, result.Migrated, "fighter/mario/model/body/c01/def_mario_001_col.nutexb")

	_, err = fs.Stat("/out/fighter/mario/model/body/c01/def_mario_001_col.nutexb")
	assert.NoError(t, err)
	_, err = fs.Stat("/out/ui/replace/chara/chara_0/chara_0_luigi_00.bntx")
	assert.Error(t, err, "portraits of other fighters are never kept")
}

func TestMigrate_KeepOtherSlotsInPlace(t *testing.T) {
	root := t.TempDir()
	fs := filesystem.NewOS()
	mod := testutil.NewMod(t, fs, root).
		File("fighter/mario/model/body/c00/model.numdlb").
		File("fighter/mario/model/body/c01/def_mario_001_col.nutexb", "texture bytes")
	files := modfiles.NewSet(
		"fighter/mario/model/body/c00/model.numdlb",
		"fighter/mario/model/body/c01/def_mario_001_col.nutexb",
	)
	m := migrate.New(fs, classify.New("mario", nil))

	result, err := m.Migrate(files, migrate.Request{
		ModDir:         root,
		OutputDir:      root,
		Source:         slot.MustParse("c00"),
		Target:         slot.MustParse("c08"),
		KeepOtherSlots: true,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Failures)
	assert.Equal(t, []string{"fighter/mario/model/body/c01/def_mario_001_col.nutexb"}, result.Kept)
	assert.Equal(t, 1, result.Copied, "only the migrated file is copied")

	content, err := fs.ReadFile(mod.Path("fighter/mario/model/body/c01/def_mario_001_col.nutexb"))
	require.NoError(t, err)
	assert.Equal(t, "texture bytes", string(content), "kept files are left untouched")
}

func TestMigrate_CopyFailureIsRecorded(t *testing.T) {
	fs, files := setup(t)
	faulty := testutil.NewFaultyFS(fs).
		FailOn(testutil.OpOpen, "/mod/fighter/mario/model/body/c00/model.numdlb", assert.AnError)
	m := migrate.New(faulty, classify.New("mario", nil))

	result, err := m.Migrate(files, request())
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	failure := result.Failures[0]
	assert.Equal(t, "fighter/mario/model/body/c00/model.numdlb", failure.Source)
	assert.Equal(t, "fighter/mario/model/body/c08/model.numdlb", failure.Destination)
	assert.True(t, errors.IsErrorCode(failure.Err, errors.ErrFileCopy))
	assert.False(t, errors.IsFatal(failure.Err))

	assert.NotContains(t, result.Migrated, failure.Destination)
	assert.False(t, files.Has(failure.Destination))
	assert.Len(t, result.Migrated, 3, "the run continues past the failure")
}

func TestMigrate_OutputDirFailure(t *testing.T) {
	fs, files := setup(t)
	faulty := testutil.NewFaultyFS(fs).FailOn(testutil.OpMkdirAll, "/out", assert.AnError)
	m := migrate.New(faulty, classify.New("mario", nil))

	_, err := m.Migrate(files, request())
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirCreate))
}
