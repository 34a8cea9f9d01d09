// Package file provides file-backed configuration storage.
//
// ConfigStore reads and writes ~/.fleetdesk/config.toml, exposing its
// tables as flat dotted keys such as "storage.driver".
package file
