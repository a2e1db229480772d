package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/types"
)

// Environment variable names
const (
	// EnvDataDir adds a resource directory ahead of the XDG ones
	EnvDataDir = "RESLOT_DATA_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is reslot's directory under each XDG base directory
	AppDirName = "reslot"

	// ResourcesDirName is checked below the working directory
	ResourcesDirName = "resources"
)

// Locator finds resource files.
type Locator struct {
	fs       types.FS
	cwd      string
	modDir   string
	dataDirs []string
}

// NewLocator returns a locator searching cwd, the mod's parent directory and
// the data directories. Empty cwd means the process working directory; nil
// dataDirs means DataDirs().
func NewLocator(fs types.FS, cwd, modDir string, dataDirs []string) (*Locator, error) {
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
		}
		cwd = wd
	}
	if dataDirs == nil {
		dataDirs = DataDirs()
	}
	return &Locator{fs: fs, cwd: cwd, modDir: modDir, dataDirs: dataDirs}, nil
}

// Candidates lists the directories searched for relative names, in order.
func (l *Locator) Candidates() []string {
	dirs := []string{l.cwd, filepath.Join(l.cwd, ResourcesDirName)}
	if l.modDir != "" {
		dirs = append(dirs, filepath.Dir(filepath.Clean(l.modDir)))
	}
	return append(dirs, l.dataDirs...)
}

// Resolve picks the resource path. An explicit path is returned unchanged.
// A relative configured name is searched in Candidates; when no candidate
// has it, the working directory path is returned with found false so the
// load failure names a sensible location.
func (l *Locator) Resolve(explicit, configured string) (path string, found bool) {
	logger := logging.GetLogger("paths")

	if explicit != "" {
		path = ExpandHome(explicit)
		return path, l.exists(path)
	}

	configured = ExpandHome(configured)
	if filepath.IsAbs(configured) {
		return configured, l.exists(configured)
	}

	for _, dir := range l.Candidates() {
		candidate := filepath.Join(dir, configured)
		if l.exists(candidate) {
			logger.Debug().Str("name", configured).Str("path", candidate).Msg("Resolved resource")
			return candidate, true
		}
	}

	logger.Debug().Str("name", configured).Strs("searched", l.Candidates()).Msg("Resource not found")
	return filepath.Join(l.cwd, configured), false
}

func (l *Locator) exists(path string) bool {
	info, err := l.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// DataDirs returns the data directories searched for resources.
func DataDirs() []string {
	var dirs []string
	if dir := os.Getenv(EnvDataDir); dir != "" {
		dirs = append(dirs, ExpandHome(dir))
	}
	dirs = append(dirs, filepath.Join(xdg.DataHome, AppDirName))
	for _, dir := range xdg.DataDirs {
		dirs = append(dirs, filepath.Join(dir, AppDirName))
	}
	return dirs
}

// ModDir returns the absolute, home-expanded form of a mod directory.
func ModDir(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New(errors.ErrInvalidModDir, "no mod directory given")
	}
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidModDir, "failed to get absolute path for %s", path)
	}
	return abs, nil
}

// ExpandHome expands ~ to the home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}
