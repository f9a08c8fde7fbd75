package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const fileHeader = `# releasekit configuration.
# Values here are overridden by RELEASEKIT_* environment variables.
`

// ErrConfigExists is returned by WriteDefault when the file already exists.
var ErrConfigExists = fmt.Errorf("%s already exists", ConfigFileName)

// WriteDefault writes a commented default releasekit.yaml to path.
// It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return ErrConfigExists
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default configuration: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(fileHeader), data...), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
