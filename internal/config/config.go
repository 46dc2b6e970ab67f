// Package config loads and persists the snctl INI config file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/ini.v1"
)

const (
	// FileName is the config file name looked up in each search directory.
	FileName = "sncloud.ini"

	kafkaSection = "kafka"
	logSection   = "log"

	keyBootstrapServers = "bootstrap.servers"
	keyToken            = "token"
	keyLogEnabled       = "enabled"
	keyLogPath          = "path"
)

// ErrEmptyToken is returned when updating the token to an empty value.
var ErrEmptyToken = errors.New("The token cannot be empty")

// KafkaConfigs is the [kafka] section.
type KafkaConfigs struct {
	BootstrapServers string
	Token            string
}

// LogConfigs is the [log] section. An empty Path means stdout.
type LogConfigs struct {
	Enabled bool
	Path    string
}

// Configs is a loaded config file.
type Configs struct {
	Kafka KafkaConfigs
	Log   LogConfigs

	file string
	ini  *ini.File
}

// Defaults returns the default Configs.
func Defaults() (KafkaConfigs, LogConfigs) {
	return KafkaConfigs{BootstrapServers: "localhost:9092"},
		LogConfigs{Enabled: true, Path: "/tmp/rdkafka.log"}
}

// Env holds the environment variables that influence the search list.
type Env struct {
	Home      string `env:"HOME"`
	ConfigDir string `env:"SNCTL_CONFIG_DIR"`
}

// DefaultPaths returns the default search list: the working directory, then
// $SNCTL_CONFIG_DIR or $HOME/.snctl.
func DefaultPaths() ([]string, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	return defaultPaths(cwd, e), nil
}

func defaultPaths(cwd string, e Env) []string {
	paths := []string{filepath.Join(cwd, FileName)}

	switch {
	case e.ConfigDir != "":
		paths = append(paths, filepath.Join(e.ConfigDir, FileName))
	case e.Home != "":
		paths = append(paths, filepath.Join(e.Home, ".snctl", FileName))
	}

	return paths
}

// Loader resolves the config file.
type Loader struct {
	// Paths is the search list. The first existing file that parses wins.
	Paths []string
	// DefaultPath is created with the defaults if no file in Paths is usable.
	DefaultPath string
	// Out receives notices, Err receives warnings.
	Out io.Writer
	Err io.Writer
}

// Load returns the Configs of the first usable file in the search list,
// creating DefaultPath if there's none.
func (l Loader) Load() (*Configs, error) {
	out, errOut := l.Out, l.Err
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	for _, path := range l.Paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		c, err := loadFile(path, errOut)
		if err != nil {
			fmt.Fprintf(errOut, "Failed to load existing file %s: %s\n", path, err)
			continue
		}

		return c, nil
	}

	kc, lc := Defaults()
	c := &Configs{
		Kafka: kc,
		Log:   lc,
		file:  l.DefaultPath,
		ini:   ini.Empty(loadOptions),
	}

	fmt.Fprintf(out, "No config file found. Creating %s with the default configs\n", c.file)

	if err := c.Save(); err != nil {
		return nil, err
	}

	return c, nil
}

var loadOptions = ini.LoadOptions{
	// Tokens may contain comment characters.
	IgnoreInlineComment: true,
}

func loadFile(path string, errOut io.Writer) (*Configs, error) {
	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, err
	}

	kc, lc := Defaults()
	c := &Configs{file: path, ini: f}

	kafka := f.Section(kafkaSection)
	if kafka.HasKey(keyBootstrapServers) {
		kc.BootstrapServers = kafka.Key(keyBootstrapServers).String()
	} else {
		fmt.Fprintf(errOut, "No bootstrap.servers found in the kafka section. Use the default value: %s\n", kc.BootstrapServers)
	}

	if kafka.HasKey(keyToken) {
		kc.Token = kafka.Key(keyToken).String()
	}

	log := f.Section(logSection)
	if log.HasKey(keyLogEnabled) {
		// Only the literal "false" disables logging.
		lc.Enabled = log.Key(keyLogEnabled).String() != "false"
		if lc.Enabled && log.HasKey(keyLogPath) {
			lc.Path = log.Key(keyLogPath).String()
		}
	}

	c.Kafka, c.Log = kc, lc

	return c, nil
}

// File returns the path of the config file.
func (c *Configs) File() string {
	return c.file
}

// Save writes the Configs to its file. Keys not managed here are preserved.
func (c *Configs) Save() error {
	kafka := c.ini.Section(kafkaSection)
	kafka.Key(keyBootstrapServers).SetValue(c.Kafka.BootstrapServers)
	kafka.Key(keyToken).SetValue(c.Kafka.Token)

	log := c.ini.Section(logSection)
	log.Key(keyLogEnabled).SetValue(fmt.Sprintf("%t", c.Log.Enabled))
	if c.Log.Enabled {
		log.Key(keyLogPath).SetValue(c.Log.Path)
	}

	if dir := filepath.Dir(c.file); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to save %s: %s", c.file, err)
		}
	}

	if err := c.ini.SaveTo(c.file); err != nil {
		return fmt.Errorf("failed to save %s: %s", c.file, err)
	}

	return nil
}

// UpdateRequest holds the values to update. Nil fields are left as is.
type UpdateRequest struct {
	KafkaURL   *string
	KafkaToken *string
}

// Update applies req, reporting each change to out, and saves the file if
// anything changed. It returns whether the file was updated.
func (c *Configs) Update(req UpdateRequest, out io.Writer) (bool, error) {
	var updated bool

	if req.KafkaURL != nil {
		if v := *req.KafkaURL; v != c.Kafka.BootstrapServers {
			c.Kafka.BootstrapServers = v
			fmt.Fprintf(out, "Updated bootstrap.servers to %s\n", v)
			updated = true
		} else {
			fmt.Fprintf(out, "The provided bootstrap.servers is the same with the config in %s\n", c.file)
		}
	}

	if req.KafkaToken != nil {
		v := *req.KafkaToken
		if v == "" {
			return false, ErrEmptyToken
		}
		if v != c.Kafka.Token {
			c.Kafka.Token = v
			fmt.Fprintln(out, "Updated token")
			updated = true
		} else {
			fmt.Fprintf(out, "The provided token is the same with the config in %s\n", c.file)
		}
	}

	if !updated {
		fmt.Fprintln(out, "No config updated")
		return false, nil
	}

	if err := c.Save(); err != nil {
		return false, err
	}

	fmt.Fprintf(out, "Updated config file %s\n", c.file)

	return true, nil
}

// MaskedToken returns the token with all but its last four characters
// masked.
func (c *Configs) MaskedToken() string {
	t := c.Kafka.Token
	if len(t) <= 4 {
		return strings.Repeat("*", len(t))
	}
	return strings.Repeat("*", len(t)-4) + t[len(t)-4:]
}
