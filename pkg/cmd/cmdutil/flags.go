package cmdutil

import "github.com/spf13/pflag"

const (
	DefaultConfigFile = "zenith.yaml"
	DefaultDotenvFile = ".env.local"
	DefaultLogFile    = "log/zenith.log"
)

// PersistentFlags defines the flags shared by every command.
func PersistentFlags(flags *pflag.FlagSet) {
	flags.Bool("debug", false, "debug flag")
	flags.String("config", DefaultConfigFile, "config file")
	flags.String("dotenv", DefaultDotenvFile, "the dotenv file loaded before running a command")
	flags.String("log-file", DefaultLogFile, "the json log file written in production")
}
