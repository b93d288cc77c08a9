// Package service routes single-user operations between the remote directory
// and the local mirror. Reads can target either side; remote reads are written
// back into the mirror best-effort. Writes always go remote-first, and the
// mirror is only touched after the remote accepted the change.
package service
