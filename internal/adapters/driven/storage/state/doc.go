// Package state maps logical slots onto the host's single JSON state blob.
//
// Every write is a read-modify-write of the whole blob: the state is read,
// one slot is changed, and the whole state is written back. There is no
// locking across that sequence; concurrent writers follow last-write-wins.
package state
