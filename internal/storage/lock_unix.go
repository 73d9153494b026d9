//go:build unix

package storage

import "golang.org/x/sys/unix"

// tryExclusiveLock takes a best-effort, non-blocking advisory exclusive
// flock on fd. Failure is never fatal: spec.md's concurrency model declares
// concurrent writers unsupported and produces undefined results, it never
// asks for enforcement. This is a guard rail, not a new guarantee.
func tryExclusiveLock(fd uintptr) (locked bool) {
	err := unix.Flock(int(fd), unix.LOCK_EX|unix.LOCK_NB)
	return err == nil
}

func unlock(fd uintptr) {
	_ = unix.Flock(int(fd), unix.LOCK_UN)
}
