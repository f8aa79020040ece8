package dirty

import "os"

// Mapping is the image a tracker flushes: its in-memory bytes and the file
// backing them.
type Mapping interface {
	Bytes() []byte
	File() *os.File
}

// DirtyTracker is the minimal interface for components that only report
// modified regions and leave flushing to the owner.
type DirtyTracker interface {
	// Add marks length bytes starting at off as dirty.
	Add(off, length int)
}
