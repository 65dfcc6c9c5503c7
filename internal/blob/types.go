// Package blob re-exports the document store abstractions and selects a
// backend from configuration.
package blob

import (
	"smartgram/internal/blob/core"
)

type (
	// Driver identifies a blob backend driver.
	Driver = core.Driver
	// PutOptions configures a document write.
	PutOptions = core.PutOptions
	// Info describes stored document metadata.
	Info = core.Info
	// Store is the interface for document storage backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory driver.
	DriverMemory = core.DriverMemory
)

// ErrNotFound is matched by errors for missing keys.
var ErrNotFound = core.ErrNotFound
