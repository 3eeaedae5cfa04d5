// Package bridge exposes registered commands to the front-end over a pair of
// byte streams. Messages are JSON documents prefixed with their length as a
// 32-bit little-endian integer, the framing used by native messaging hosts.
package bridge
