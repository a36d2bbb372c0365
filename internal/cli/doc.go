// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli is the command-line entry point of chatview.
//
// # Usage
//
//	chatview [transcript] [flags]
//	chatview config init [--force]
//	chatview config show
//
// The transcript is a JSON file (see package transcript), or "-" for stdin.
// Without one the viewer starts empty. A transcript file is followed while
// the viewer runs, so a writer appending messages or streaming a reply shows
// up live.
//
// # Flags
//
//	--config PATH   config file (default ~/.chatview/config.toml)
//	--locale TAG    UI language, e.g. de or zh-Hans
//	--theme MODE    auto, dark or light
//	--no-sound      never ring the bell
//	--log PATH      write logs to PATH
//	--plain         print the transcript once and exit
//
// When stdout is not a terminal the transcript is printed once, as with
// --plain. Otherwise the config file is followed too: saving it restyles the
// viewer in place, and a file that fails to load is ignored.
package cli
