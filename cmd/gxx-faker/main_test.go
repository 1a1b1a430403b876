package main

import (
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShutdownSignals(t *testing.T) {
	assert.Contains(t, shutdownSignals, os.Interrupt)
	assert.Contains(t, shutdownSignals, os.Signal(syscall.SIGTERM))
}
