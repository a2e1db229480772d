package share

import (
	"sort"
	"strings"

	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/overlay"
)

// Policy decides which share map a redirected file belongs to.
type Policy interface {
	Name() string
	Route(path string) overlay.Section
}

// Policy names accepted by ByName.
const (
	PolicyMotionCamera      = "motion-camera"
	PolicyMotionCameraSound = "motion-camera-sound"
)

// DefaultPolicy is used when configuration names none.
const DefaultPolicy = PolicyMotionCamera

type substringPolicy struct {
	name    string
	markers []string
}

func (p substringPolicy) Name() string { return p.name }

func (p substringPolicy) Route(path string) overlay.Section {
	for _, marker := range p.markers {
		if strings.Contains(path, marker) {
			return overlay.ShareToAdded
		}
	}
	return overlay.ShareToVanilla
}

var policies = map[string]Policy{
	PolicyMotionCamera: substringPolicy{
		name:    PolicyMotionCamera,
		markers: []string{"motion/", "camera/"},
	},
	PolicyMotionCameraSound: substringPolicy{
		name:    PolicyMotionCameraSound,
		markers: []string{"motion/", "camera/", "sound/bank/fighter"},
	},
}

// MotionCamera routes motion and camera files to share-to-added and
// everything else to share-to-vanilla.
func MotionCamera() Policy { return policies[PolicyMotionCamera] }

// MotionCameraSound additionally routes fighter sound banks to
// share-to-added.
func MotionCameraSound() Policy { return policies[PolicyMotionCameraSound] }

// ByName looks up a policy. An empty name selects DefaultPolicy.
func ByName(name string) (Policy, error) {
	if name == "" {
		name = DefaultPolicy
	}
	if p, ok := policies[name]; ok {
		return p, nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown share policy %q (available: %s)",
		name, strings.Join(Names(), ", ")).
		WithDetail("policy", name)
}

// Names lists the available policies.
func Names() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
