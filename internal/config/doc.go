// SPDX-License-Identifier: MPL-2.0

// Package config handles wixc configuration using Viper with CUE as the file format.
//
// Configuration is loaded from wixc.cue in the user configuration directory
// (os.UserConfigDir()/wixc), falling back to ./wixc.cue. A file named with
// --config is used exclusively. Every file is validated against the embedded
// #Config schema before it is merged over the defaults.
package config
