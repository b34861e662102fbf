package main

import (
	"fmt"
	"os"

	"github.com/Enigmara-Technologies/bambooclaw-core/cmd"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/cli"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/logger"
)

var version = "0.0.1"
var commit = "none"
var date = "unknown"

func main() {
	container, err := cli.NewContainer(cli.InitOptions{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error during initialization: %v\n", err)
		os.Exit(1)
	}

	log := container.Logger
	defer log.Sync()

	log.Info(fmt.Sprintf("%s companion started", container.Config.Name), nil)

	rootCmd := cmd.NewRootCmd(container)
	rootCmd.AddCommand(
		cmd.NewInitCmd(container),
		cmd.NewStartCmd(container),
		cmd.NewStopCmd(container),
		cmd.NewStatusCmd(container),
		cmd.NewFetchCmd(container),
		cmd.NewFlushCmd(container),
		cmd.NewDoctorCmd(container),
		cmd.NewConfigCmd(container),
		cmd.NewHistoryCmd(container),
		cmd.NewUpdateCmd(container),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error("command exited with error", logger.Fields{"error": err.Error()})
		log.Sync()
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("%s companion exited successfully", container.Config.Name), nil)
}
