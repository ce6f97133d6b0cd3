package main

import (
	"fmt"
	"os"
)

var (
	version = "0.1.0-dev"
	commit  = "main"
)

func main() {
	root := newRootCommand()
	root.Version = fmt.Sprintf("%s.%s", version, commit)
	root.AddCommand(
		newMigrateCommand(),
		newSeedCommand(),
		newCreateUserCommand(),
		newBackupCommand(),
	)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
