// Package rest exposes the user and note services over HTTP. Every
// protected route runs the guard chain before its handler, and every
// failure, raised by a gate or a handler, leaves through the same
// normalizer so the wire shape never depends on where the error came from.
package rest
