package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/screenreader/core/internal/util"
)

// SettingsFilename is the one recognized settings file basename (spec §6:
// "a single JSON object"), unlike the teacher's config.json/.yaml/.yml
// trio — there is only one format here.
const SettingsFilename = "settings.json"

// configDirName replaces the teacher's "peco" XDG subdirectory name.
const configDirName = "screenreader"

// Locator locates the settings file in a given directory. Grounded on the
// teacher's ConfigLocator/ConfigLocatorFunc (config.go).
type Locator interface {
	Locate(dir string) (string, error)
}

// LocatorFunc is a function that implements Locator.
type LocatorFunc func(string) (string, error)

// Locate calls the underlying function.
func (f LocatorFunc) Locate(dir string) (string, error) {
	return f(dir)
}

// DefaultLocator looks for SettingsFilename directly inside dir.
var DefaultLocator = LocatorFunc(func(dir string) (string, error) {
	file := filepath.Join(dir, SettingsFilename)
	if _, err := os.Stat(file); err == nil {
		return file, nil
	}
	return "", fmt.Errorf("settings file not found in %s", dir)
})

// homedirFunc is a package variable so tests can stub it, matching the
// teacher's homedirFunc indirection (config.go).
var homedirFunc = util.Homedir

// LocateSettingsFile searches the XDG Base Directory locations for the
// settings file, in the same order as the teacher's LocateRcfile
// (config.go):
//
//	$XDG_CONFIG_HOME/screenreader/settings.json
//	  (~/.config/screenreader/settings.json when XDG_CONFIG_HOME is unset)
//	$XDG_CONFIG_DIRS entries/screenreader/settings.json
//	~/.screenreader/settings.json
func LocateSettingsFile(locator Locator) (string, error) {
	home, homeErr := homedirFunc()

	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		if file, err := locator.Locate(filepath.Join(dir, configDirName)); err == nil {
			return file, nil
		}
	} else if homeErr == nil {
		if file, err := locator.Locate(filepath.Join(home, ".config", configDirName)); err == nil {
			return file, nil
		}
	}

	if dirs := os.Getenv("XDG_CONFIG_DIRS"); dirs != "" {
		for _, dir := range strings.Split(dirs, string(filepath.ListSeparator)) {
			if file, err := locator.Locate(filepath.Join(dir, configDirName)); err == nil {
				return file, nil
			}
		}
	}

	if homeErr == nil {
		if file, err := locator.Locate(filepath.Join(home, "."+configDirName)); err == nil {
			return file, nil
		}
	}

	return "", errors.New("settings file not found")
}
