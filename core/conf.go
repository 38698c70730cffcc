package core

import (
	"fmt"

	flags "github.com/jessevdk/go-flags"
	"github.com/massn/envordot"
)

var Version = NoVersion

const NoVersion = "no_version_info"

type Conf struct {
	Version            string `long:"version" description:"version of noiseapp" env:"NOISEAPP_VERSION"`
	DevMode            bool   `long:"dev-mode" description:"log in development format" env:"NOISEAPP_DEV_MODE"`
	DisableStdoutLog   bool   `long:"disable-stdout-log" description:"do not log in standard output" env:"NOISEAPP_DISABLE_STDOUT_LOG"`
	EnableFileLog      bool   `long:"enable-file-log" description:"enable log in file" env:"NOISEAPP_ENABLE_FILE_LOG"`
	LogDir             string `long:"log-dir" description:"rotating log file dir" default:"./shares/logs" env:"NOISEAPP_LOG_DIR"`
	LogLevel           string `long:"log-level" description:"log level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" env:"NOISEAPP_LOG_LEVEL"`
	LogRotationMaxDays int    `long:"log-rotation-max-days" description:"max days of log rotation" default:"7" env:"NOISEAPP_LOG_ROTATION_MAX_DAYS"`
	SettingPath        string `long:"setting-path" description:"experiment setting file path" default:"./setting/experiment.toml" env:"NOISEAPP_SETTING_PATH"`
}

// LoadConf fills a Conf from defaults and NOISEAPP_* environment variables.
// Variables found in envFile are used when they are not already set.
// No command line arguments are read.
func LoadConf(envFile string) (*Conf, error) {
	if envFile != "" {
		if err := envordot.Load(false, envFile); err != nil {
			fmt.Printf("Not found %q file. Use only environment variables. Reason:%s\n", envFile, err.Error())
		}
	}
	conf := &Conf{}
	parser := flags.NewParser(conf, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs([]string{}); err != nil {
		return nil, fmt.Errorf("failed to load conf/reason:%w", err)
	}
	if conf.Version != "" {
		Version = conf.Version
	}
	return conf, nil
}
