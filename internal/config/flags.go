package config

import (
	"flag"
	"os"

	"github.com/appstash/appstash/internal/flagx"
)

// ValueFlags lists the value-taking flags this package owns, so callers
// can split the remaining positional arguments (see flagx.Positional).
var ValueFlags = []string{"-n", "-v", "-b", "-s", "-c", "-config"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-n string   namespace / app name
//	-v string   data-format version
//	-b string   kv backend: memory, file, sqlite
//	-s string   store path for the file and sqlite backends
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-n", "-v", "-b", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.AppName, "n", cfg.AppName, "namespace (app name) for stored keys")
	fs.StringVar(&cfg.Version, "v", cfg.Version, "data-format version")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend: memory, file or sqlite")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "store path for file/sqlite backends")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
