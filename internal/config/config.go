// Package config loads and persists tool configuration. Values come from
// .sfmanifest.toml, SFMANIFEST_* environment variables, and CLI flags, in
// increasing precedence; the config subcommands write changes back to the
// TOML file.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// FileName is the conventional config file name, looked up in the working
// directory and then the home directory.
const FileName = ".sfmanifest.toml"

// Variables lists the keys that can be set in the config file, in the order
// they are reported to the user.
var Variables = []string{
	"bitbucket_username",
	"bitbucket_app_password",
	"bitbucket_workspace",
	"bitbucket_repository",
	"working_path",
}

// Config holds all runtime configuration for one sfmanifest invocation.
type Config struct {
	BitbucketUsername    string `mapstructure:"bitbucket_username" toml:"bitbucket_username"`
	BitbucketAppPassword string `mapstructure:"bitbucket_app_password" toml:"bitbucket_app_password"`
	BitbucketWorkspace   string `mapstructure:"bitbucket_workspace" toml:"bitbucket_workspace"`
	BitbucketRepository  string `mapstructure:"bitbucket_repository" toml:"bitbucket_repository"`

	// WorkingPath overrides the process working directory, letting the tool
	// run against a fixed Salesforce checkout from anywhere.
	WorkingPath string `mapstructure:"working_path" toml:"working_path,omitempty"`
}

// Load reads configuration from viper. WorkingPath stays empty unless
// explicitly configured, so saving the config back never pins the tool to
// whatever directory one run happened to start in.
func Load() Config {
	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

// ResolveWorkDir returns the configured working path, or the process
// working directory when none is set.
func (c Config) ResolveWorkDir() string {
	if c.WorkingPath != "" {
		return c.WorkingPath
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// Path returns the config file in use: the one viper read, or the home
// directory default when no file exists yet.
func Path() string {
	if p := viper.ConfigFileUsed(); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Save writes cfg to path as TOML, creating parent directories as needed.
// The file carries an app password, so it is not group readable.
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Set applies one key=value assignment to cfg. Only the first '=' splits,
// since app passwords may contain '='.
func (c *Config) Set(assignment string) error {
	key, value, _ := strings.Cut(assignment, "=")
	switch key {
	case "bitbucket_username":
		c.BitbucketUsername = value
	case "bitbucket_app_password":
		c.BitbucketAppPassword = value
	case "bitbucket_workspace":
		c.BitbucketWorkspace = value
	case "bitbucket_repository":
		c.BitbucketRepository = value
	case "working_path":
		c.WorkingPath = value
	default:
		return fmt.Errorf("unknown configuration variable %q", key)
	}
	return nil
}

// Get returns the value of one variable, masking the app password.
func (c Config) Get(key string) (string, error) {
	switch key {
	case "bitbucket_username":
		return c.BitbucketUsername, nil
	case "bitbucket_app_password":
		return mask(c.BitbucketAppPassword), nil
	case "bitbucket_workspace":
		return c.BitbucketWorkspace, nil
	case "bitbucket_repository":
		return c.BitbucketRepository, nil
	case "working_path":
		return c.WorkingPath, nil
	default:
		return "", fmt.Errorf("unknown configuration variable %q", key)
	}
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "*******"
}

// PromptMissing asks for any Bitbucket variable that is still empty,
// reading answers from in. It reports whether anything was entered, so the
// caller knows to persist the result.
func (c *Config) PromptMissing(in io.Reader, out io.Writer) bool {
	prompts := []struct {
		label string
		value *string
	}{
		{"Bitbucket username", &c.BitbucketUsername},
		{"Bitbucket app password", &c.BitbucketAppPassword},
		{"Bitbucket workspace", &c.BitbucketWorkspace},
		{"Bitbucket repository", &c.BitbucketRepository},
	}

	scanner := bufio.NewScanner(in)
	changed := false
	for _, p := range prompts {
		if *p.value != "" {
			continue
		}
		fmt.Fprintf(out, "Please enter your %s: ", p.label)
		if !scanner.Scan() {
			break
		}
		*p.value = strings.TrimSpace(scanner.Text())
		changed = true
	}
	return changed
}
