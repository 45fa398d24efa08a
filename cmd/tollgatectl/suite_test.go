package main

import (
	"bytes"
	"path/filepath"
	"time"
)

var timeout = 30 * time.Second

// executeCommand executes a CLI command with the given args and returns the output and error.
func executeCommand(args []string) (string, error) {
	defer resetCmdArgs()

	buf := new(bytes.Buffer)

	cmd := rootCmd
	cmd.SetArgs(args)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	err := cmd.Execute()

	return buf.String(), err
}

// resetCmdArgs resets all command-specific flags to their default values.
func resetCmdArgs() {
	rootArgs.timeout = timeout
	rootArgs.logLevel = "warn"
	adminCreateArgs = adminCreateFlags{}
	licenseVerifyArgs = licenseVerifyFlags{}
}

// dbArgs points a command at a database and pepper inside dir.
func dbArgs(dir string, args ...string) []string {
	return append(args,
		"--database", filepath.Join(dir, "tollgate.db"),
		"--pepper-file", filepath.Join(dir, "pepper"),
	)
}
