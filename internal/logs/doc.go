// Package logs reads back the application log file with bounded memory
// usage. It supports a one-shot tail of the most recent lines and a
// polling follow mode for watching a scan run as it happens.
package logs
