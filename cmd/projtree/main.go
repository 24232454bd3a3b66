package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/temirov/projtree/internal/cli"
	"github.com/temirov/projtree/internal/utils"
)

// main is the entry point for the projtree command.
func main() {
	logLevel := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(logLevel)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer syncLogger(loggerInstance)

	applicationExecutionError := cli.Execute(cli.Dependencies{
		Logger:   loggerInstance,
		LogLevel: &logLevel,
	})
	if applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}

// syncLogger flushes the logger when stderr is a terminal or a regular file.
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncError := logger.Sync(); syncError != nil {
		if !strings.Contains(strings.ToLower(syncError.Error()), "invalid argument") {
			log.Printf(utils.LoggerSyncFailedMessageFormat, syncError)
		}
	}
}

// isRegularFile reports whether f is backed by a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, statError := f.Stat()
	if statError != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
