// Package config holds the run configuration of the prinv command: inversion
// parameters, sweep settings and their defaults, loaded from YAML.
//
// Lookup order for the configuration file:
//  1. the path given with --config
//  2. .prinv.yaml in the current directory
//  3. prinv/config.yaml under the XDG config directories
//
// Command line flags override file values.
package config
