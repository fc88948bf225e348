package config

import (
	"log/slog"
	"maps"
)

const hiddenPassword = "(hidden)"

// Password is a remote-console password. Every formatted or logged
// representation is masked; only the TOML file holds the real value.
type Password string

// String masks the password for %s and %v.
func (p Password) String() string {
	if p == "" {
		return ""
	}
	return hiddenPassword
}

// GoString masks the password for %#v.
func (p Password) GoString() string {
	return p.String()
}

// LogValue masks the password in slog output.
func (p Password) LogValue() slog.Value {
	return slog.StringValue(p.String())
}

// MarshalYAML masks the password in YAML output.
func (p Password) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// MarshalJSON masks the password in JSON output.
func (p Password) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// Reveal returns the clear-text password for handing to the rcon client.
func (p Password) Reveal() string {
	return string(p)
}

// RconConfig holds the remote-console connection info for one server.
// Zero values mean "not set" and are left to the rcon client's defaults.
type RconConfig struct {
	ServerAddress string   `toml:"server_address,omitempty" yaml:"server_address,omitempty" json:"server_address,omitempty"`
	Port          uint16   `toml:"port,omitempty" yaml:"port,omitempty" json:"port,omitempty"`
	Password      Password `toml:"password,omitempty" yaml:"password,omitempty" json:"password,omitempty"`
}

// DynamicConfig is the mutable, disk-persisted settings object.
type DynamicConfig struct {
	DefaultJavaArgs  string                `toml:"default_java_args" yaml:"default_java_args" json:"default_java_args"`
	NoGUI            bool                  `toml:"nogui" yaml:"nogui" json:"nogui"`
	ServersDirectory string                `toml:"servers_directory" yaml:"servers_directory" json:"servers_directory"`
	DefaultServer    string                `toml:"default_server" yaml:"default_server" json:"default_server"`
	Rcon             map[string]RconConfig `toml:"rcon" yaml:"rcon" json:"rcon"`
}

// Clone returns a deep copy of the configuration.
func (c DynamicConfig) Clone() DynamicConfig {
	out := c
	out.Rcon = maps.Clone(c.Rcon)
	if out.Rcon == nil {
		out.Rcon = make(map[string]RconConfig)
	}
	return out
}

// normalize fills in fields that may be absent from a hand-edited file so that
// a freshly loaded value compares equal to itself after a save/load cycle.
func (c *DynamicConfig) normalize() {
	if c.Rcon == nil {
		c.Rcon = make(map[string]RconConfig)
	}
}

// StaticConfig holds build-time values. It is never written to disk.
type StaticConfig struct {
	// Contact is shown in error reports
	Contact string
	// ConfigDirectory holds config.toml; may contain "~" and "$VAR"
	ConfigDirectory string
	// Repository is the owner/repo slug used by the update command
	Repository string
}
