// pkg/commands/migrate/migrate_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Memory FS, dir-info fixtures
// PURPOSE: Test the migrate command end to end

package migrate_test

import (
	"testing"

	"github.com/arthur-debert/reslot/pkg/commands"
	"github.com/arthur-debert/reslot/pkg/commands/migrate"
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/filesystem"
	"github.com/arthur-debert/reslot/pkg/overlay"
	"github.com/arthur-debert/reslot/pkg/slot"
	"github.com/arthur-debert/reslot/pkg/testutil"
	"github.com/arthur-debert/reslot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modDir = "/mods/mario"

func setup(t *testing.T, files ...string) (types.FS, commands.Common) {
	t.Helper()
	fs := filesystem.NewMemory()
	testutil.WriteResources(t, fs, testutil.MarioTree(), testutil.MarioVanillaFiles...)
	testutil.NewMod(t, fs, modDir).Files(files...)
	return fs, commands.Common{
		FileSystem:     fs,
		DirInfoPath:    testutil.DirInfoPath,
		KnownFilesPath: testutil.KnownFilePath,
		WorkDir:        "/work",
		DataDirs:       []string{},
	}
}

func pairs(t *testing.T, specs ...string) []migrate.Pair {
	t.Helper()
	var out []migrate.Pair
	for _, s := range specs {
		p, err := migrate.ParsePair(s)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestRun_CopiesIntoDefaultOutput(t *testing.T) {
	fs, common := setup(t,
		"fighter/mario/model/body/c00/model.numdlb",
		"ui/replace/chara/chara_0/chara_0_mario_00.bntx",
		"sound/bank/fighter/se_mario_c00.nus3bank",
	)

	result, err := migrate.Run(migrate.Options{
		Common:  common,
		ModDir:  modDir,
		Fighter: "mario",
		Pairs:   pairs(t, "c00:c08"),
	})
	require.NoError(t, err)

	out := "/mods/mario (c08)"
	assert.Equal(t, out, result.OutputDir)
	assert.Equal(t, out+"/config.json", result.ConfigPath)

	for _, f := range []string{
		"fighter/mario/model/body/c08/model.numdlb",
		"ui/replace/chara/chara_0/chara_0_mario_08.bntx",
		"sound/bank/fighter/se_mario_c08.nus3bank",
	} {
		_, err := fs.Stat(out + "/" + f)
		assert.NoError(t, err, f)
	}

	require.Len(t, result.Pairs, 1)
	p := result.Pairs[0]
	assert.Equal(t, "c00", p.Share.String())
	assert.Equal(t, 2, p.Migrated)
	assert.Equal(t, 1, p.Portraits)
	assert.Equal(t, 3, p.NewDirs)

	cfg, err := overlay.Load(fs, result.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, result.Sections.NewDirInfos, len(cfg.NewDirInfos()))
	assert.Contains(t, cfg.NewDirInfos(), "fighter/mario/model/body/c08")

	_, err = fs.Stat(modDir + "/fighter/mario/model/body/c08/model.numdlb")
	assert.Error(t, err, "the source mod is left untouched")
}

func TestRun_ConfigOnly(t *testing.T) {
	fs, common := setup(t, "fighter/mario/model/body/c00/model.numdlb")
	testutil.NewMod(t, fs, modDir).File("config.json", `{"new-dir-infos": ["fighter/mario/model/body/c11"]}`)

	result, err := migrate.Run(migrate.Options{
		Common:     common,
		ModDir:     modDir,
		Fighter:    "mario",
		Pairs:      pairs(t, "c00:c09"),
		ConfigOnly: true,
	})
	require.NoError(t, err)

	assert.Equal(t, modDir, result.OutputDir)
	assert.Equal(t, modDir+"/config.json", result.ConfigPath)

	_, err = fs.Stat(modDir + "/fighter/mario/model/body/c09/model.numdlb")
	assert.Error(t, err, "config-only runs copy nothing")

	_, err = fs.Stat(modDir + "/config.json" + overlay.BackupSuffix)
	assert.NoError(t, err, "the previous config is backed up")

	cfg, err := overlay.Load(fs, result.ConfigPath)
	require.NoError(t, err)
	assert.Contains(t, cfg.NewDirInfos(), "fighter/mario/model/body/c11", "merged with the existing config")
	assert.Contains(t, cfg.NewDirInfos(), "fighter/mario/model/body/c09")
}

func TestRun_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		opts   func(common commands.Common) migrate.Options
		code   errors.ErrorCode
		modSet bool
	}{
		{
			name: "missing fighter",
			opts: func(c commands.Common) migrate.Options {
				return migrate.Options{Common: c, ModDir: modDir, Pairs: pairs(t, "c00:c08")}
			},
			code: errors.ErrInvalidInput,
		},
		{
			name: "no pairs",
			opts: func(c commands.Common) migrate.Options {
				return migrate.Options{Common: c, ModDir: modDir, Fighter: "mario"}
			},
			code: errors.ErrInvalidInput,
		},
		{
			name: "duplicate targets",
			opts: func(c commands.Common) migrate.Options {
				return migrate.Options{Common: c, ModDir: modDir, Fighter: "mario", Pairs: pairs(t, "c00:c08", "c01:c08")}
			},
			code: errors.ErrDuplicateSlot,
		},
		{
			name: "not a mod root",
			opts: func(c commands.Common) migrate.Options {
				return migrate.Options{Common: c, ModDir: "/work", Fighter: "mario", Pairs: pairs(t, "c00:c08")}
			},
			code: errors.ErrInvalidModDir,
		},
		{
			name: "output is the mod itself",
			opts: func(c commands.Common) migrate.Options {
				return migrate.Options{Common: c, ModDir: modDir, Fighter: "mario", Pairs: pairs(t, "c00:c08"), OutputDir: modDir + "/."}
			},
			code: errors.ErrInvalidInput,
		},
		{
			name: "added share slot",
			opts: func(c commands.Common) migrate.Options {
				share := slot.MustParse("c09")
				return migrate.Options{Common: c, ModDir: modDir, Fighter: "mario", Pairs: pairs(t, "c00:c08"), Share: &share}
			},
			code: errors.ErrInvalidSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, common := setup(t, "fighter/mario/model/body/c00/model.numdlb")
			require.NoError(t, fs.MkdirAll("/work/notes", 0755))

			_, err := migrate.Run(tt.opts(common))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestRun_MissingResourcesAreFatal(t *testing.T) {
	fs := filesystem.NewMemory()
	testutil.NewMod(t, fs, modDir).File("fighter/mario/model/body/c00/model.numdlb")

	_, err := migrate.Run(migrate.Options{
		Common:  commands.Common{FileSystem: fs, WorkDir: "/work", DataDirs: []string{}},
		ModDir:  modDir,
		Fighter: "mario",
		Pairs:   pairs(t, "c00:c08"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirInfoLoad))
	assert.True(t, errors.IsFatal(err))
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"c00:c08", "c00:c08", false},
		{"0:+8", "c00:c08", false},
		{"c3:c117", "c03:c117", false},
		{"c00", "", true},
		{"c00:cXX", "", true},
		{"x:c08", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := migrate.ParsePair(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidSlot))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestDefaultOutputDir(t *testing.T) {
	got := migrate.DefaultOutputDir("/mods/mario", pairs(t, "c00:c08", "c01:c09", "c02:c10", "c03:c11", "c04:c12"))
	assert.Equal(t, "/mods/mario (c08 c09 c10 c11)", got)
}

func TestResult_Report(t *testing.T) {
	_, common := setup(t, "fighter/mario/model/body/c00/model.numdlb")
	result, err := migrate.Run(migrate.Options{
		Common:  common,
		ModDir:  modDir,
		Fighter: "mario",
		Pairs:   pairs(t, "c00:c08"),
	})
	require.NoError(t, err)

	rep := result.Report()
	assert.Equal(t, "migrate", rep.Command)
	assert.Equal(t, "Migrated mario: c00 -> c08", rep.Title)
	require.Len(t, rep.Tables, 2)
	assert.Equal(t, []string{"c00", "c08", "c00", "1", "0", "0", "0", "3", "4"}, rep.Tables[0].Rows[0])
	assert.Equal(t, overlay.KeyNewDirInfos, rep.Tables[1].Rows[0][0])
}
