package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"mcserver/internal/api"
	"mcserver/internal/config"
)

// OutputFormat is how a command renders its result.
type OutputFormat string

const (
	// OutputFormatTable renders a human-readable table
	OutputFormatTable OutputFormat = "table"
	// OutputFormatJSON renders indented JSON
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML renders YAML
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidOutputFormats lists the accepted --output values.
var ValidOutputFormats = []OutputFormat{OutputFormatTable, OutputFormatJSON, OutputFormatYAML}

// ValidateOutputFormat checks a --output value.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q (valid: table, json, yaml)", format)
	}
}

// ListOptions controls how a server list is rendered.
type ListOptions struct {
	Format    OutputFormat
	NoHeaders bool
	// Colour highlights tags in table output
	Colour bool
	// NamesOnly prints one name per line in table format, for scripts
	NamesOnly bool
}

// WriteServers renders servers to w.
func WriteServers(w io.Writer, servers []api.Server, opts ListOptions) error {
	if servers == nil {
		servers = []api.Server{}
	}

	switch opts.Format {
	case OutputFormatJSON:
		return writeJSON(w, servers)
	case OutputFormatYAML:
		return writeYAML(w, servers)
	}

	if opts.NamesOnly {
		for _, s := range servers {
			if _, err := fmt.Fprintln(w, s.Name); err != nil {
				return err
			}
		}
		return nil
	}

	tw := NewPlainTableWriter(w)
	tw.SetHeaders("name", "state", "tags")
	tw.SetNoHeaders(opts.NoHeaders)
	for _, s := range servers {
		tw.AppendRow(s.Name, string(s.State), formatTags(s.Tags, opts.Colour))
	}
	return tw.Render()
}

func formatTags(tags []string, colour bool) string {
	if !colour {
		return strings.Join(tags, ", ")
	}
	out := make([]string, len(tags))
	for i, tag := range tags {
		switch tag {
		case "active":
			out[i] = text.Colors{text.FgGreen, text.Bold}.Sprint(tag)
		case "exited":
			out[i] = text.FgRed.Sprint(tag)
		case "unknown":
			out[i] = text.Faint.Sprint(tag)
		default:
			out[i] = tag
		}
	}
	return strings.Join(out, ", ")
}

// WriteConfig renders the dynamic configuration. Passwords are always
// hidden.
func WriteConfig(w io.Writer, cfg config.DynamicConfig, format OutputFormat) error {
	switch format {
	case OutputFormatJSON:
		return writeJSON(w, cfg)
	case OutputFormatYAML:
		return writeYAML(w, cfg)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"KEY", "VALUE"})
	t.AppendRows([]table.Row{
		{"default_java_args", cfg.DefaultJavaArgs},
		{"nogui", strconv.FormatBool(cfg.NoGUI)},
		{"servers_directory", cfg.ServersDirectory},
		{"default_server", cfg.DefaultServer},
	})

	servers := make([]string, 0, len(cfg.Rcon))
	for name := range cfg.Rcon {
		servers = append(servers, name)
	}
	sort.Strings(servers)

	if len(servers) > 0 {
		t.AppendSeparator()
	}
	for _, name := range servers {
		rc := cfg.Rcon[name]
		t.AppendRow(table.Row{"rcon." + name, fmt.Sprintf("address=%s port=%d password=%s", rc.ServerAddress, rc.Port, rc.Password)})
	}

	t.Render()
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
