// Package config provides the application configuration for keybind.
//
// Configuration is resolved in three layers, higher layers overriding lower:
//
//  1. Built-in defaults (Default)
//  2. The TOML configuration file
//  3. KEYBIND_* environment variables
//
// A missing configuration file is not an error. Decode failures are
// reported as *ParseError with the line and column of the offending input.
//
// # File Format
//
//	[keybindings]
//	path = "~/.config/keybind/keybindings.json"
//	watch = true
//
//	[logging]
//	level = "info"
//	file = ""
//
//	[ui]
//	language = "en"
//
//	[commands]
//	1 = "keybind.notify('hello from ' .. keybind.action())"
//
// Command keys name the "execute command N" slot they configure and hold a
// Lua snippet.
//
// # Environment Variables
//
//	KEYBIND_BINDINGS_PATH   keybindings.path
//	KEYBIND_WATCH           keybindings.watch
//	KEYBIND_LOG_LEVEL       logging.level
//	KEYBIND_LOG_FILE        logging.file
//	KEYBIND_LANG            ui.language
package config
