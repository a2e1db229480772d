// Package genconfig implements the gen-config command.
package genconfig

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/reslot/pkg/commands"
	"github.com/arthur-debert/reslot/pkg/config"
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/ui/display"
)

// Options holds options for the gen-config command
type Options struct {
	commands.Common
	// Effective renders the loaded settings instead of the commented
	// template.
	Effective bool
	// Format is toml or yaml; only used with Effective.
	Format string
	// Write saves the content as a mod config in each of ModDirs, or in
	// the working directory when none are given.
	Write   bool
	ModDirs []string
}

// Result is the outcome of the gen-config command
type Result struct {
	Content      string   `json:"content"`
	FilesWritten []string `json:"filesWritten"`
	Skipped      []string `json:"skipped,omitempty"`
}

// Run outputs or writes a configuration file.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.genconfig")

	name := config.ModConfigNames[0]
	var content string
	if opts.Effective {
		data, err := config.Render(opts.Settings(), opts.Format)
		if err != nil {
			return nil, err
		}
		content = string(data)
		if strings.HasPrefix(strings.ToLower(opts.Format), "y") {
			name = config.ModConfigNames[1]
		}
	} else {
		content = config.GenerateConfigContent()
	}

	result := &Result{Content: content, FilesWritten: []string{}}
	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	dirs := opts.ModDirs
	if len(dirs) == 0 {
		dir := opts.WorkDir
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get working directory")
			}
			dir = cwd
		}
		dirs = []string{dir}
	}

	fs := opts.FS()
	for _, dir := range dirs {
		target := filepath.Join(dir, name)
		if _, err := fs.Stat(target); err == nil {
			logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
			result.Skipped = append(result.Skipped, target)
			continue
		}
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
				WithDetail("path", dir)
		}
		if err := fs.WriteFile(target, []byte(content), 0644); err != nil {
			return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", target).
				WithDetail("path", target)
		}
		logger.Info().Str("path", target).Msg("Written config file")
		result.FilesWritten = append(result.FilesWritten, target)
	}

	return result, nil
}

// Report implements display.Reporter. Without writes the content is the
// whole report.
func (r *Result) Report() *display.Report {
	rep := &display.Report{Command: "gen-config"}
	if len(r.FilesWritten) == 0 && len(r.Skipped) == 0 {
		rep.Body = r.Content
		return rep
	}

	rep.Title = "Config files"
	for _, path := range r.FilesWritten {
		rep.AddField("Written", path)
	}
	for _, path := range r.Skipped {
		rep.Warnings = append(rep.Warnings, path+" already exists, skipped")
	}
	return rep
}
