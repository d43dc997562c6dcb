// SPDX-License-Identifier: MPL-2.0

// Package config handles pyboot's own configuration using Viper with CUE as
// the file format.
//
// Configuration is loaded from ~/.config/pyboot/config.cue (XDG equivalent on
// Linux, ~/Library/Application Support/pyboot/config.cue on macOS,
// %APPDATA%\pyboot\config.cue on Windows), falling back to a config.cue in
// the current directory. Every key has a built-in default that reproduces the
// conventional project layout (.env, .venv, requirements.txt, web_app.py), so
// a zero-config run behaves exactly as a first-time operator expects.
//
// Configuration validation is performed against a CUE schema
// (config_schema.cue) to ensure type safety and clear error messages for
// invalid configurations.
package config
