// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the user config directory. os.UserConfigDir does
// not follow HOME on every platform, so tests set it explicitly.
var configDirOverride string

// Reset clears test overrides.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride sets a custom config directory path.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
