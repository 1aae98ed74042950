package cmd

import "github.com/alecthomas/kong"

type CLI struct {
	ConfigFile string `name:"config" help:"Config file path (default: user config dir)." placeholder:"PATH" env:"CAREERWATCH_CONFIG"`
	Color      string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto" env:"CAREERWATCH_COLOR"`
	JSON       bool   `help:"JSON output to stdout; disables colors." env:"CAREERWATCH_JSON"`
	Verbose    bool   `help:"Enable debug logging." env:"CAREERWATCH_VERBOSE"`

	VersionFlag kong.VersionFlag `name:"version" help:"Print version."`

	Run     RunCmd     `cmd:"" default:"withargs" help:"Run one monitoring pass (default)."`
	Check   CheckCmd   `cmd:"" help:"Fetch and compare the job count without side effects."`
	State   StateCmd   `cmd:"" help:"Inspect or repair the stored job count."`
	Notify  NotifyCmd  `cmd:"" help:"Notification utilities."`
	History HistoryCmd `cmd:"" help:"List recorded observations."`
	Config  ConfigCmd  `cmd:"" help:"Manage configuration."`
	Proxies ProxiesCmd `cmd:"" help:"Proxy utilities."`
	Version VersionCmd `cmd:"" help:"Print version."`
}

func NewCLI() *CLI {
	return &CLI{}
}
