// pkg/classify/classify_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test path classification and per-class slot rewrites

package classify_test

import (
	"testing"

	"github.com/arthur-debert/reslot/pkg/classify"
	"github.com/arthur-debert/reslot/pkg/slot"
	"github.com/stretchr/testify/assert"
)

var aliases = map[string][]string{
	"ice_climber": {"popo", "nana"},
}

func TestClassify(t *testing.T) {
	c := classify.New("mario", aliases)

	tests := []struct {
		path string
		want classify.Class
	}{
		{"fighter/mario/model/body/c00/model.numdlb", classify.ModelOrMotion},
		{"fighter/mario/motion/body/c00/motion_list.bin", classify.ModelOrMotion},
		{"fighter/luigi/model/body/c00/model.numdlb", classify.Unclassified},
		{"fighter/mariod/model/body/c00/model.numdlb", classify.Unclassified},
		{"ui/replace/chara/chara_0/chara_0_mario_00.bntx", classify.UIPortrait},
		{"ui/replace_patch/chara/chara_3/chara_3_mario_00.bntx", classify.UIPortrait},
		{"sound/bank/fighter/se_mario_c00.nus3bank", classify.SoundBank},
		{"sound/bank/fighter_voice/vc_mario_c00.nus3bank", classify.SoundBank},
		{"effect/fighter/mario/ef_mario_c00.eff", classify.Effect},
		{"effect/fighter/luigi/ef_luigi_c00.eff", classify.Unclassified},
		{"stage/battlefield/normal/model/stc_ring_set/model.numdlb", classify.Unclassified},
		{"ui/message/msg_name.msbt", classify.Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rule := c.Classify(tt.path)
			assert.Equal(t, tt.want, rule.Class, "got %s", rule.Class)
			assert.Equal(t, tt.path, rule.Path)
		})
	}
}

func TestRewrite(t *testing.T) {
	c00 := slot.MustParse("c00")
	c08 := slot.MustParse("c08")

	tests := []struct {
		name    string
		fighter string
		path    string
		want    string
		ok      bool
	}{
		{
			name:    "model replaces the slot segment",
			fighter: "mario",
			path:    "fighter/mario/model/body/c00/model.numdlb",
			want:    "fighter/mario/model/body/c08/model.numdlb",
			ok:      true,
		},
		{
			name:    "model replaces only the first slot segment",
			fighter: "mario",
			path:    "fighter/mario/model/body/c00/c00/model.numdlb",
			want:    "fighter/mario/model/body/c08/c00/model.numdlb",
			ok:      true,
		},
		{
			name:    "model without the source segment is skipped",
			fighter: "mario",
			path:    "fighter/mario/model/body/c01/model.numdlb",
			ok:      false,
		},
		{
			name:    "model ignores slot-like file names",
			fighter: "mario",
			path:    "fighter/mario/model/body/c00_model.numdlb",
			ok:      false,
		},
		{
			name:    "portrait suffix",
			fighter: "mario",
			path:    "ui/replace/chara/chara_0/chara_0_mario_00.bntx",
			want:    "ui/replace/chara/chara_0/chara_0_mario_08.bntx",
			ok:      true,
		},
		{
			name:    "portrait of another fighter",
			fighter: "mario",
			path:    "ui/replace/chara/chara_0/chara_0_luigi_00.bntx",
			ok:      false,
		},
		{
			name:    "portrait of another slot",
			fighter: "mario",
			path:    "ui/replace/chara/chara_0/chara_0_mario_01.bntx",
			ok:      false,
		},
		{
			name:    "portrait through alias key",
			fighter: "ice_climber",
			path:    "ui/replace/chara/chara_4/chara_4_nana_00.bntx",
			want:    "ui/replace/chara/chara_4/chara_4_nana_08.bntx",
			ok:      true,
		},
		{
			name:    "sound bank",
			fighter: "mario",
			path:    "sound/bank/fighter_voice/vc_mario_c00.nus3bank",
			want:    "sound/bank/fighter_voice/vc_mario_c08.nus3bank",
			ok:      true,
		},
		{
			name:    "sound bank of another slot",
			fighter: "mario",
			path:    "sound/bank/fighter/se_mario_c02.nus3bank",
			ok:      false,
		},
		{
			name:    "effect replaces the last digits",
			fighter: "mario",
			path:    "effect/fighter/mario/ef_mario_c00.eff",
			want:    "effect/fighter/mario/ef_mario_c08.eff",
			ok:      true,
		},
		{
			name:    "effect trail directory",
			fighter: "mario",
			path:    "effect/fighter/mario/trail_c00/tex_mario_trail.nutexb",
			want:    "effect/fighter/mario/trail_c08/tex_mario_trail.nutexb",
			ok:      true,
		},
		{
			name:    "effect trail directory keeps digits in the file name",
			fighter: "mario",
			path:    "effect/fighter/mario/trail_c00/tex_mario_fire_001.nutexb",
			want:    "effect/fighter/mario/trail_c08/tex_mario_fire_001.nutexb",
			ok:      true,
		},
		{
			name:    "effect slot directory",
			fighter: "mario",
			path:    "effect/fighter/mario/model/c00/ef_mario_00.nuanmb",
			want:    "effect/fighter/mario/model/c08/ef_mario_00.nuanmb",
			ok:      true,
		},
		{
			name:    "effect digits only in a plain directory are ignored",
			fighter: "mario",
			path:    "effect/fighter/mario/set00/ef_mario.eff",
			ok:      false,
		},
		{
			name:    "effect without a slot",
			fighter: "mario",
			path:    "effect/fighter/mario/ef_mario.eff",
			ok:      false,
		},
		{
			name:    "unclassified never rewrites",
			fighter: "mario",
			path:    "stage/common/c00/model.numdlb",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := classify.New(tt.fighter, aliases).Classify(tt.path)
			got, ok := rule.Rewrite(c00, c08)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRewrite_RoundTrip(t *testing.T) {
	c := classify.New("mario", aliases)
	a := slot.MustParse("c03")
	b := slot.MustParse("c117")

	paths := []string{
		"fighter/mario/model/body/c03/model.numdlb",
		"ui/replace/chara/chara_1/chara_1_mario_03.bntx",
		"sound/bank/fighter/se_mario_c03.nus3bank",
		"effect/fighter/mario/ef_mario_c03.eff",
		"effect/fighter/mario/trail_c03/tex_mario_fire_003.nutexb",
	}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			forward, ok := c.Classify(p).Rewrite(a, b)
			assert.True(t, ok)
			assert.NotEqual(t, p, forward)

			back, ok := c.Classify(forward).Rewrite(b, a)
			assert.True(t, ok)
			assert.Equal(t, p, back)
		})
	}
}

func TestClassifierKeys(t *testing.T) {
	c := classify.New("ice_climber", aliases)
	assert.Equal(t, "ice_climber", c.Fighter())
	assert.Equal(t, []string{"ice_climber", "popo", "nana"}, c.Keys())
	assert.Equal(t, []string{"mario"}, classify.New("mario", nil).Keys())
}

func TestRuleOwned(t *testing.T) {
	c := classify.New("mario", aliases)

	assert.True(t, c.Classify("fighter/mario/model/body/c01/model.numdlb").Owned())
	assert.True(t, c.Classify("ui/replace/chara/chara_0/chara_0_mario_05.bntx").Owned())
	assert.False(t, c.Classify("ui/replace/chara/chara_0/chara_0_luigi_05.bntx").Owned())
	assert.False(t, c.Classify("stage/common/model.numdlb").Owned())
}
