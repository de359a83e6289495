// Package config provides the runtime options of the mseo CLI and the
// YAML site file that declares pages, meta defaults, robots rules and
// structured data.
package config
