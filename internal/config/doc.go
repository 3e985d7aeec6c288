// Package config loads textcutter settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. TEXTCUTTER_* environment variables
//
// Environment variables follow SECTION_SETTING_NAME, so
// TEXTCUTTER_WORDS_FALLBACK_SIZE sets words.fallbackSize. A few short
// aliases exist, such as TEXTCUTTER_LOG_LEVEL.
//
// # Example
//
//	[logging]
//	level = "debug"
//
//	[fonts]
//	defaultFamily = "Inter"
//	defaultStyle = "Regular"
//
//	[words]
//	gap = 0.3
//
//	[bullets]
//	glyphs = "•◦▪"
package config
