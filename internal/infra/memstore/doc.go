// Package memstore keeps all repositories in process memory. It backs STORAGE_DRIVER=memory
// and the unit tests; nothing survives a restart.
package memstore

type key struct {
	tenant string
	id     string
}
