// Package logger records what happens in a shell session as a stream of
// events, one JSON object per line.
package logger
