package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

type Secrets struct {
	SSID     string `yaml:"ssid"`
	Password string `yaml:"password"`
}

// LoadSecrets reads network credentials from path. A missing file yields
// empty credentials, which means running offline.
func LoadSecrets(path string) (Secrets, error) {
	var secrets Secrets

	if path == "" {
		return secrets, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Secrets file not found", "path", path)
		return secrets, nil
	}
	if err != nil {
		return secrets, fmt.Errorf("failed to read secrets: %w", err)
	}

	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return secrets, fmt.Errorf("failed to parse secrets: %w", err)
	}

	return secrets, nil
}

// Credentials merges the secrets file with the ssid/password flags, the
// flags taking precedence.
func (c *Cfg) Credentials() (string, string, error) {
	secrets, err := LoadSecrets(c.SecretsFile)
	if err != nil {
		return "", "", err
	}

	ssid, password := secrets.SSID, secrets.Password
	if c.WiFiSSID != "" {
		ssid, password = c.WiFiSSID, c.WiFiPassword
	}
	return ssid, password, nil
}
