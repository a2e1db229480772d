// pkg/share/share_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Dir-info fixtures
// PURPOSE: Test share policies and overlay entries produced for relocated slots

package share_test

import (
	"testing"

	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/knownfiles"
	"github.com/arthur-debert/reslot/pkg/modfiles"
	"github.com/arthur-debert/reslot/pkg/overlay"
	"github.com/arthur-debert/reslot/pkg/share"
	"github.com/arthur-debert/reslot/pkg/slot"
	"github.com/arthur-debert/reslot/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	c00 = slot.MustParse("c00")
	c01 = slot.MustParse("c01")
	c08 = slot.MustParse("c08")
)

func newResolver(files *modfiles.Set, policy share.Policy) (*share.Resolver, *overlay.Config) {
	cfg := overlay.New()
	known := knownfiles.New(testutil.MarioVanillaFiles...)
	return share.NewResolver(testutil.MarioTree(), known, files, policy, cfg), cfg
}

func TestPolicies(t *testing.T) {
	tests := []struct {
		policy string
		path   string
		want   overlay.Section
	}{
		{share.PolicyMotionCamera, "fighter/mario/model/body/c00/model.numdlb", overlay.ShareToVanilla},
		{share.PolicyMotionCamera, "fighter/mario/motion/body/c00/motion_list.bin", overlay.ShareToAdded},
		{share.PolicyMotionCamera, "fighter/mario/camera/c00/j02win1.nuanmb", overlay.ShareToAdded},
		{share.PolicyMotionCamera, "sound/bank/fighter/se_mario_c00.nus3bank", overlay.ShareToVanilla},
		{share.PolicyMotionCameraSound, "sound/bank/fighter/se_mario_c00.nus3bank", overlay.ShareToAdded},
		{share.PolicyMotionCameraSound, "sound/bank/fighter_voice/vc_mario_c00.nus3bank", overlay.ShareToAdded},
		{share.PolicyMotionCameraSound, "fighter/mario/model/body/c00/model.numdlb", overlay.ShareToVanilla},
	}

	for _, tt := range tests {
		t.Run(tt.policy+" "+tt.path, func(t *testing.T) {
			p, err := share.ByName(tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.policy, p.Name())
			assert.Equal(t, tt.want, p.Route(tt.path))
		})
	}
}

func TestByName(t *testing.T) {
	p, err := share.ByName("")
	require.NoError(t, err)
	assert.Equal(t, share.DefaultPolicy, p.Name())

	_, err = share.ByName("everything")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	assert.Equal(t, []string{share.PolicyMotionCamera, share.PolicyMotionCameraSound}, share.Names())
	assert.Equal(t, share.PolicyMotionCamera, share.MotionCamera().Name())
	assert.Equal(t, share.PolicyMotionCameraSound, share.MotionCameraSound().Name())
}

func TestSubstitute(t *testing.T) {
	got, ok := share.Substitute("fighter/mario/model/body/c00/model.numdlb", c00, c08)
	assert.True(t, ok)
	assert.Equal(t, "fighter/mario/model/body/c08/model.numdlb", got)

	got, ok = share.Substitute("fighter/mario/model/c00/c00/model.numdlb", c00, c08)
	assert.True(t, ok)
	assert.Equal(t, "fighter/mario/model/c08/c00/model.numdlb", got, "only the first token is replaced")

	_, ok = share.Substitute("fighter/mario/model/body/c01/model.numdlb", c00, c08)
	assert.False(t, ok)
}

func TestAddNewSlot(t *testing.T) {
	files := modfiles.NewSet("fighter/mario/model/body/c08/model.numdlb")
	r, cfg := newResolver(files, share.MotionCamera())

	stats, err := r.AddNewSlot("mario", c00, c08)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"fighter/mario/camera/c08",
		"fighter/mario/model/body/c08",
		"fighter/mario/motion/body/c08",
	}, cfg.NewDirInfos())
	assert.Equal(t, cfg.NewDirInfos(), stats.SlotDirs)
	assert.Equal(t, 3, stats.NewDirs)

	base, ok := cfg.NewDirInfosBase.Get("fighter/mario/model/body/c08/lod")
	assert.True(t, ok)
	assert.Equal(t, "fighter/mario/model/body/c00/lod", base)
	assert.Equal(t, 1, stats.Bases)

	assert.Equal(t, []string{
		"fighter/mario/model/body/c08/model.numdlb",
		"fighter/mario/model/body/c08/model.numatb",
		"fighter/mario/model/body/c08/def_mario_001_col.nutexb",
	}, cfg.NewDirFiles.Get("fighter/mario/model/body/c08"), "opaque entries are skipped")

	assert.Equal(t, []string{
		"fighter/mario/model/body/c00/model.numatb",
		"fighter/mario/model/body/c00/def_mario_001_col.nutexb",
	}, cfg.ShareToVanilla.Keys())
	assert.False(t, cfg.ShareToVanilla.Has("fighter/mario/model/body/c00/model.numdlb"),
		"files present in the mod are not redirected")
	assert.Equal(t, 1, stats.Physical)

	assert.Equal(t, []string{"fighter/mario/camera/c08/j02win1.nuanmb"},
		cfg.ShareToAdded.Get("fighter/mario/camera/c00/j02win1.nuanmb"))
	assert.Equal(t, []string{"fighter/mario/motion/body/c08/motion_list.bin"},
		cfg.ShareToAdded.Get("fighter/mario/motion/body/c00/motion_list.bin"))
	assert.Equal(t, 4, stats.Shared)
}

func TestAddNewSlot_Idempotent(t *testing.T) {
	r, cfg := newResolver(modfiles.NewSet(), share.MotionCamera())

	_, err := r.AddNewSlot("mario", c00, c08)
	require.NoError(t, err)
	first, err := cfg.Encode()
	require.NoError(t, err)

	stats, err := r.AddNewSlot("mario", c00, c08)
	require.NoError(t, err)
	second, err := cfg.Encode()
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, 0, stats.NewDirs)
	assert.Equal(t, 0, stats.Shared)
}

func TestAddNewSlot_MissingFighter(t *testing.T) {
	r, cfg := newResolver(modfiles.NewSet(), share.MotionCamera())

	stats, err := r.AddNewSlot("pikachu", c00, c08)
	require.NoError(t, err)
	assert.True(t, stats.FighterMissing)
	assert.True(t, cfg.IsEmpty())
}

func TestAddDirFiles_SkipsVanilla(t *testing.T) {
	r, cfg := newResolver(modfiles.NewSet(), share.MotionCamera())
	tree := testutil.MarioTree()

	id, err := tree.Lookup("fighter/mario/model/body/c00")
	require.NoError(t, err)

	// c01 exists in the known files, so relocating its model is not custom.
	added := r.AddDirFiles("fighter/mario/model/body/c01", tree.Node(id).Files, c00, c01)
	assert.Equal(t, 2, added)
	assert.NotContains(t, cfg.NewDirFiles.Get("fighter/mario/model/body/c01"), "fighter/mario/model/body/c01/model.numdlb")
}

func TestAddMissingFiles(t *testing.T) {
	migrated := []string{
		"fighter/mario/model/body/c01/model.numdlb",
		"fighter/mario/model/body/c01/custom.nutexb",
		"effect/fighter/mario/ef_mario_c01.eff",
		"sound/bank/fighter/se_mario_c01.nus3bank",
	}

	t.Run("vanilla target", func(t *testing.T) {
		r, cfg := newResolver(modfiles.NewSet(), share.MotionCamera())
		added := r.AddMissingFiles("mario", c01, migrated)
		assert.Equal(t, 2, added)
		assert.Equal(t, []string{
			"fighter/mario/model/body/c01/custom.nutexb",
			"sound/bank/fighter/se_mario_c01.nus3bank",
		}, cfg.NewDirFiles.Get("fighter/mario/c01"))
		assert.Empty(t, cfg.NewDirInfos())
	})

	t.Run("added target keeps effects", func(t *testing.T) {
		r, cfg := newResolver(modfiles.NewSet(), share.MotionCamera())
		r.AddMissingFiles("mario", c08, []string{"effect/fighter/mario/ef_mario_c08.eff"})
		assert.Equal(t, []string{"effect/fighter/mario/ef_mario_c08.eff"}, cfg.NewDirFiles.Get("fighter/mario/c08"))
	})

	t.Run("nothing to list", func(t *testing.T) {
		r, cfg := newResolver(modfiles.NewSet(), share.MotionCamera())
		assert.Equal(t, 0, r.AddMissingFiles("mario", c01, migrated[:1]))
		assert.False(t, cfg.NewDirFiles.Has("fighter/mario/c01"))
	})
}

func TestKnownFilesNeverListed(t *testing.T) {
	files := modfiles.NewSet()
	r, cfg := newResolver(files, share.MotionCameraSound())

	_, err := r.AddNewSlot("mario", c00, c08)
	require.NoError(t, err)
	r.AddMissingFiles("mario", c08, testutil.MarioVanillaFiles)
	r.AddMissingFiles("mario", c01, testutil.MarioVanillaFiles)

	known := knownfiles.New(testutil.MarioVanillaFiles...)
	for _, dir := range cfg.NewDirFiles.Keys() {
		for _, f := range cfg.NewDirFiles.Get(dir) {
			assert.False(t, known.Contains(f), "%s listed under %s", f, dir)
		}
	}
}
