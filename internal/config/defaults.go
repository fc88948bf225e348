package config

// Build-time values, overridable with:
//
//	go build -ldflags "-X mcserver/internal/config.configDirectory=/etc/mcserver"
var (
	contact         = "none"
	configDirectory = "~/.config/mc-server"
	repository      = "mcserver/mcserver"
)

const (
	configFileName = "config.toml"

	// DefaultServersDirectory is where servers live unless configured otherwise.
	DefaultServersDirectory = "~/Servers"
)

// GetStatic returns the compiled-in static configuration.
func GetStatic() StaticConfig {
	return StaticConfig{
		Contact:         contact,
		ConfigDirectory: configDirectory,
		Repository:      repository,
	}
}

// GetDefaultConfig returns the settings written on first run.
func GetDefaultConfig() DynamicConfig {
	return DynamicConfig{
		DefaultJavaArgs:  "",
		NoGUI:            true,
		ServersDirectory: DefaultServersDirectory,
		DefaultServer:    "",
		Rcon:             make(map[string]RconConfig),
	}
}
