// Package config holds run configuration for sitemd.
//
// Config is built from CLI flags by the command layer, validated once up
// front, and passed by reference to the components that need it. The
// optional YAML config file adds per-host overrides (credentials headers,
// depth, URL patterns) that do not belong on the command line.
package config
