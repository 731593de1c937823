package main

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli"
)

var logFile *os.File

// setupLogging sends log output to debug.log when DEBUG is set and drops it
// otherwise, since anything written to the terminal would tear the frame.
func setupLogging(*cli.Context) error {
	if os.Getenv("DEBUG") == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile("debug.log", "debug")
	if err != nil {
		return err
	}
	logFile = f
	return nil
}

func closeLogging(*cli.Context) error {
	if logFile == nil {
		return nil
	}
	return logFile.Close()
}
