package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// sampleConfig is written by the init command. Values mirror the
// defaults so a fresh file changes nothing until edited.
const sampleConfig = `# portside configuration

app:
  # Application name. One name owns one state directory and at most
  # one running instance.
  name: portside

server:
  host: 0.0.0.0
  # Explicit port. 0 means auto-allocate starting from base_port.
  port: 0
  base_port: 4567

# Handed to the hosted application.
environment: development

logging:
  level: INFO      # DEBUG, INFO, WARN, ERROR
  format: text     # text, json
  output: stdout   # stdout, stderr, or a file path

browser:
  # Set true to suppress opening the browser on start.
  disabled: false

state:
  # Root state directory. Empty means $XDG_STATE_HOME or ~/.local/state.
  root: ""
`

// InitConfig writes a sample configuration file to the default
// location, returning the path written.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	return path, InitConfigToPath(path, force)
}

// InitConfigToPath writes a sample configuration file to the given
// path. Refuses to overwrite an existing file unless force is set.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
