package ports

// Watcher reports changes to a single file. Editors often replace a file
// rather than write it in place, so implementations watch the parent
// directory and filter by name. Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring path. onChange is called once per settled
	// change (create, write, rename onto path). The callback may run on any
	// goroutine. Returns an error if the parent directory cannot be watched.
	Watch(path string, onChange func(path string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
