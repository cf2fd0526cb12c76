package archive

import (
	"context"
	"fmt"
	"sync"
)

// MemoryArchiver keeps archived blobs in a map. It stands in for object
// storage in tests and database-less CLI runs.
type MemoryArchiver struct {
	mu    sync.Mutex
	blobs map[string][]byte

	// FailClaves lists access keys whose archive call should fail,
	// letting tests exercise the error outcome path.
	FailClaves map[string]bool
}

// NewMemoryArchiver constructs an empty MemoryArchiver.
func NewMemoryArchiver() *MemoryArchiver {
	return &MemoryArchiver{blobs: make(map[string][]byte)}
}

// Archive records the blob and returns a mem:// URL.
func (a *MemoryArchiver) Archive(ctx context.Context, claveAcceso string, xmlData []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.FailClaves[claveAcceso] {
		return "", fmt.Errorf("archive unavailable for %s", claveAcceso)
	}
	buf := make([]byte, len(xmlData))
	copy(buf, xmlData)
	a.blobs[claveAcceso] = buf
	return fmt.Sprintf("mem://xmls/%s.xml", claveAcceso), nil
}

// Get returns an archived blob, for test assertions.
func (a *MemoryArchiver) Get(claveAcceso string) ([]byte, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	blob, ok := a.blobs[claveAcceso]
	return blob, ok
}
