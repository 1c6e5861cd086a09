package main

import (
	"io"
	"os"
	"time"

	mdpdf "github.com/alnah/go-mdpdf"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, the process environment and the converter pool factory.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	NewPool func(size int, opts ...mdpdf.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		NewPool: newConverterPool,
	}
}

// getenv tolerates environments built by hand in tests.
func (e *Environment) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}
