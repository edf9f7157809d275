package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"

	// EnvConfigPath names the environment variable holding the path of the
	// configuration file or the directory containing it.
	EnvConfigPath = "MINISHELL_CONFIG"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"

	LineEditingAuto  = "auto"
	LineEditingNever = "never"

	ProcessOwnerProcess = "process"
	ProcessOwnerCaller  = "caller"
)

type Configuration struct {
	Color         string `json:"color" validate:"oneof=always auto never"`
	LineEditing   string `json:"line_editing" validate:"oneof=auto never"`
	MaxLineLength int    `json:"max_line_length" validate:"gte=1"`
	ProcRoot      string `json:"proc_root" validate:"required"`
	ProcessOwner  string `json:"process_owner" validate:"oneof=process caller"`
	EventLog      string `json:"event_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// OpenEventLog opens the event log in an append only state. It returns nil
// if no event log is configured.
func (c *Configuration) OpenEventLog(fs afero.Fs) (afero.File, error) {
	if c.EventLog == "" {
		return nil, nil
	}
	return fs.OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// Default returns the built-in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
