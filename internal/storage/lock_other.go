//go:build !unix

package storage

// tryExclusiveLock is a no-op on platforms without flock; the writer still
// works, it just cannot advise other processes away from the same file.
func tryExclusiveLock(fd uintptr) (locked bool) { return false }

func unlock(fd uintptr) {}
