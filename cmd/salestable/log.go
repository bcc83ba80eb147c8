package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// openLog logs info and above to stderr and everything to a JSON file in
// the logs directory under dataDir.
func openLog(dataDir string) (*zap.Logger, error) {
	stderrLog, err := openConsoleLog()
	if err != nil {
		return nil, err
	}

	fileLog, err := openFileLog(dataDir)
	if err != nil {
		return nil, err
	}

	return zap.New(zapcore.NewTee(stderrLog.Core(), fileLog.Core())), nil
}

// openFileLog logs everything to a JSON file in the logs directory under
// dataDir and points the "latest" symlink at it.
func openFileLog(dataDir string) (*zap.Logger, error) {
	// Ensure a logs directory exists
	logsDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, errs.Wrap(err)
	}

	// Name the log based on the current timestamp to millisecond precision
	logName := time.Now().UTC().Format("2006.01.02.15.04.05.000Z") + ".json"

	// Convert to an absolute path for the file URI passed to zap
	logsPath, err := filepath.Abs(filepath.Join(logsDir, logName))
	if err != nil {
		return nil, errs.Wrap(err)
	}

	fileEncoder := zap.NewProductionEncoderConfig()
	fileEncoder.EncodeTime = zapcore.ISO8601TimeEncoder
	fileLog, err := (zap.Config{
		Level:         zap.NewAtomicLevelAt(zap.DebugLevel),
		Encoding:      "json",
		EncoderConfig: fileEncoder,
		OutputPaths:   []string{"file://" + logsPath},
	}).Build()
	if err != nil {
		return nil, errs.Wrap(err)
	}

	// Overwrite the latest symlink
	tmpLink := filepath.Join(logsDir, ".latest")
	if err := os.Remove(tmpLink); err != nil && !os.IsNotExist(err) {
		return nil, errs.Wrap(err)
	}
	if err := os.Symlink(logName, tmpLink); err != nil {
		return nil, errs.Wrap(err)
	}
	if err := os.Rename(tmpLink, filepath.Join(logsDir, "latest")); err != nil {
		return nil, errs.Wrap(err)
	}

	return fileLog, nil
}

// openConsoleLog creates a logger using info level + console.
func openConsoleLog() (*zap.Logger, error) {
	stderrEncoder := zap.NewDevelopmentEncoderConfig()
	stderrEncoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
	stderrLog, err := (zap.Config{
		Level:         zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding:      "console",
		EncoderConfig: stderrEncoder,
		OutputPaths:   []string{"stderr"},
	}).Build()
	return stderrLog, errs.Wrap(err)
}
