package port

// Cleaner deletes transient local files, best-effort. Track registers a path
// for the teardown sweep; Cleanup deletes one path and unregisters it; Sweep
// deletes every still-pending path.
type Cleaner interface {
	Track(localPath string)
	Cleanup(localPath string)
	Sweep()
}
