package domain

import "go.trai.ch/zerr"

var (
	// ErrFileNotFound is returned by a resolver when a requested path does
	// not exist. It is recoverable: the backend decides whether a missing
	// file is fatal to the compile.
	ErrFileNotFound = zerr.New("file not found")

	// ErrCompileFailed is returned when the backend reported diagnostics
	// while compiling a module.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrDeserializationFailed is returned when a precompiled module blob
	// could not be decoded.
	ErrDeserializationFailed = zerr.New("module deserialization failed")

	// ErrSessionCreateFailed is returned when the backend cannot construct a
	// session. Global-session construction failure is fatal at startup.
	ErrSessionCreateFailed = zerr.New("session creation failed")

	// ErrUnknownProfile is returned when a target profile name is not
	// registered with the backend.
	ErrUnknownProfile = zerr.New("unknown target profile")

	// ErrUnknownTarget is returned when a target index is out of range for a
	// loaded module.
	ErrUnknownTarget = zerr.New("unknown target index")

	// ErrShaderNotFound is returned when the top-level shader cannot be
	// located in the working directory or its parents.
	ErrShaderNotFound = zerr.New("shader source not found")
)
