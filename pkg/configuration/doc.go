// Package configuration provides the global blocksync configuration file,
// which allows users to override operation defaults without specifying them
// on every invocation.
package configuration
