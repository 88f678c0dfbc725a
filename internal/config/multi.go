package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoConfig = errors.New("no config selected")

// DefaultLabel is the profile created by `noveld config init`.
const DefaultLabel = "Default"

const profileExt = ".yaml"

func ConfigRoot() string {
	// Windows
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, "noveld")
	}

	// Linux/macOS XDG
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "noveld")
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "noveld")
}

func ConfigsDir() string {
	return filepath.Join(ConfigRoot(), "configs")
}

func CurrentLabelFile() string {
	return filepath.Join(ConfigRoot(), "current_config")
}

func profilePath(label string) string {
	return filepath.Join(ConfigsDir(), label+profileExt)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func checkLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return errors.New("label cannot be empty")
	}
	if strings.ContainsAny(label, `/\`) {
		return fmt.Errorf("label %q must not contain path separators", label)
	}
	return nil
}

func ensureDirs() error {
	return os.MkdirAll(ConfigsDir(), 0755)
}

func setCurrent(label string) error {
	return os.WriteFile(CurrentLabelFile(), []byte(label), 0644)
}

func CurrentLabel() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	b, err := os.ReadFile(CurrentLabelFile())
	if os.IsNotExist(err) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(b)), nil
}

func ActiveConfigPath() (string, error) {
	label, err := CurrentLabel()
	if err != nil {
		return "", err
	}
	if label == "" {
		return "", ErrNoConfig
	}

	return profilePath(label), nil
}

func ConfigPathByLabel(label string) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}

	path := profilePath(label)
	if !exists(path) {
		return "", fmt.Errorf("config %q does not exist", label)
	}

	return path, nil
}

type ConfigInfo struct {
	Label  string
	Path   string
	Active bool
}

func ListConfigs() ([]ConfigInfo, error) {
	if err := ensureDirs(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(ConfigsDir())
	if err != nil {
		return nil, err
	}

	activeLabel, _ := CurrentLabel()
	var out []ConfigInfo

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, profileExt) {
			continue
		}

		label := strings.TrimSuffix(name, profileExt)
		out = append(out, ConfigInfo{
			Label:  label,
			Path:   filepath.Join(ConfigsDir(), name),
			Active: label == activeLabel,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func SwitchConfig(label string) error {
	if _, err := ConfigPathByLabel(label); err != nil {
		return err
	}

	return setCurrent(label)
}

// CreateConfig writes a profile with default values and returns its path.
func CreateConfig(label string) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}
	if err := ensureDirs(); err != nil {
		return "", err
	}

	path := profilePath(label)
	if exists(path) {
		return "", fmt.Errorf("config %q already exists", label)
	}

	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}

	return path, nil
}

// ImportConfig copies an existing YAML file in as a new profile.
func ImportConfig(label, srcPath string) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}
	if err := ensureDirs(); err != nil {
		return "", err
	}

	dst := profilePath(label)
	if exists(dst) {
		return "", fmt.Errorf("config %q already exists", label)
	}

	if err := CheckFile(srcPath); err != nil {
		return "", fmt.Errorf("invalid config %s: %w", srcPath, err)
	}

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return "", err
	}

	return dst, os.WriteFile(dst, raw, 0644)
}

func RenameConfig(oldLabel, newLabel string) error {
	oldPath, err := ConfigPathByLabel(oldLabel)
	if err != nil {
		return err
	}
	if err := checkLabel(newLabel); err != nil {
		return err
	}

	newPath := profilePath(newLabel)
	if exists(newPath) {
		return fmt.Errorf("config %q already exists", newLabel)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return err
	}

	if active, _ := CurrentLabel(); active == oldLabel {
		return setCurrent(newLabel)
	}

	return nil
}

// RemoveConfig deletes a profile. Removing the active profile switches
// back to the Default one.
func RemoveConfig(label string) error {
	if label == DefaultLabel {
		return errors.New("cannot remove the Default config")
	}

	path, err := ConfigPathByLabel(label)
	if err != nil {
		return err
	}

	if active, _ := CurrentLabel(); active == label {
		if err := SwitchConfig(DefaultLabel); err != nil {
			return fmt.Errorf("failed switching to Default: %w", err)
		}
	}

	return os.Remove(path)
}

// InitDefaultConfig creates the Default profile if needed and makes it
// active. It returns os.ErrExist when the profile was already there.
func InitDefaultConfig() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	defPath := profilePath(DefaultLabel)

	if exists(defPath) {
		return defPath, errors.Join(setCurrent(DefaultLabel), os.ErrExist)
	}

	if err := SaveYAML(DefaultConfig(), defPath); err != nil {
		return "", err
	}

	return defPath, setCurrent(DefaultLabel)
}
