package main

import (
	"ghcrawl/cmd/ghcrawl/commands"
	"ghcrawl/lib/osutil"
)

func main() {
	ctx, cancel := osutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
