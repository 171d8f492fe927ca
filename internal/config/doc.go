// Package config loads run settings from YAML and holds the named presets.
//
// Radius and grid size are read once when a World is built from a Config and
// stay fixed for the life of that World.
package config
