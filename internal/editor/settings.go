package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
)

// sshConfigFileKey is the Remote-SSH setting naming the ssh_config to use.
// Dots are escaped because the key is a flat name, not a nested path.
const sshConfigFileKey = `remote\.SSH\.configFile`

// SSHConfigPath returns the ssh_config path configured for inst in its
// settings.json. Returns ErrSettingNotFound when the settings file or the key
// is absent, and a *DeserializationError when settings.json is malformed.
// A leading ~ is expanded to the current user's home directory.
func SSHConfigPath(inst Instance) (string, error) {
	path := inst.SettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrSettingNotFound
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	value, err := lookupString(data, sshConfigFileKey)
	if err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return "", err
		}
		return "", &DeserializationError{Path: path, Err: err}
	}
	return expandHome(value)
}

// lookupString finds a string value in JSONC content. Comments and trailing
// commas are accepted the same way the editor accepts them.
func lookupString(data []byte, key string) (string, error) {
	cleaned := jsonc.ToJSON(data)
	if !gjson.ValidBytes(cleaned) {
		return "", errors.New("invalid JSON")
	}
	res := gjson.GetBytes(cleaned, key)
	if !res.Exists() || res.Type != gjson.String || res.Str == "" {
		return "", ErrSettingNotFound
	}
	return res.Str, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
