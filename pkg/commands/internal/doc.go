// Package internal holds the repository lookup shared by the commands.
package internal
