package utils

import "sync"

// GDAL handles are not safe for concurrent use; every godal call goes
// through this lock.
var gdalMu sync.Mutex

func ExecuteWithMutex(fn func()) {
	gdalMu.Lock()
	defer gdalMu.Unlock()
	fn()
}
