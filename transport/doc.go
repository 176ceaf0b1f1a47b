// Package transport normalizes raised failures into the shared response
// envelope and delivers them over whichever transport carried the request.
//
// Three transport kinds exist: http, message, and stream. HTTP delivery
// writes a status code and JSON body; message and stream delivery hand the
// normalized failure back to the broker or stream session as an error value,
// leaving the protocol-level signaling to the caller. The kind set is
// closed: an unknown kind is a configuration error, never a silent HTTP
// fallback.
package transport
