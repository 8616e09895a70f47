// Package types defines the record kinds, the Store interface, the backup
// document shapes, and the standard errors for the darzi record keeper.
package types
