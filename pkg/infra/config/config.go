package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/m-mizutani/drugbank/pkg/domain/types"
)

// Lookup resolves a configuration value for namespace/key. Precedence: the
// explicit passthrough value, the environment variable <NAMESPACE>_<KEY>, then
// the [namespace] table of the TOML config file. When required is true a
// missing value is an error tagged types.ErrTagMissingConfig.
func Lookup(namespace, key, passthrough string, required bool) (string, error) {
	if passthrough != "" {
		return passthrough, nil
	}

	envKey := strings.ToUpper(namespace) + "_" + strings.ToUpper(key)
	if v := os.Getenv(envKey); v != "" {
		return v, nil
	}

	v, err := lookupFile(namespace, key)
	if err != nil {
		return "", err
	}
	if v != "" {
		return v, nil
	}

	if required {
		path, _ := FilePath()
		return "", goerr.New("missing configuration value: pass it explicitly, set the environment variable, or add it to the config file",
			goerr.T(types.ErrTagMissingConfig),
			goerr.V("namespace", namespace),
			goerr.V("key", key),
			goerr.V("env", envKey),
			goerr.V("config_file", path),
		)
	}

	return "", nil
}

// FilePath returns the TOML config file location: $DRUGBANK_CONFIG if set,
// otherwise <user config dir>/drugbank/config.toml.
func FilePath() (string, error) {
	if p := os.Getenv("DRUGBANK_CONFIG"); p != "" {
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve user config directory")
	}

	return filepath.Join(dir, types.AppName, "config.toml"), nil
}

func lookupFile(namespace, key string) (string, error) {
	path, err := FilePath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var tables map[string]map[string]string
	if err := toml.Unmarshal(data, &tables); err != nil {
		return "", goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}

	return tables[namespace][key], nil
}
