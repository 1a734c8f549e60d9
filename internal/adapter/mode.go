package adapter

import (
	"os"
	"sync"
)

// Mode represents the runtime mode of the application
type Mode int

const (
	ModeUnknown Mode = iota
	ModeLambda
	ModeHTTPServer
)

var (
	currentMode Mode
	modeOnce    sync.Once
)

// DetectMode determines and sets the runtime mode of the application
func DetectMode() Mode {
	modeOnce.Do(func() {
		currentMode = modeFromEnv()
	})
	return currentMode
}

func modeFromEnv() Mode {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		return ModeLambda
	}
	return ModeHTTPServer
}

func (m Mode) String() string {
	switch m {
	case ModeLambda:
		return "lambda"
	case ModeHTTPServer:
		return "http-server"
	default:
		return "unknown"
	}
}
