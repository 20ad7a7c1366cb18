package bookshelf

// MemoryKV is an in-process KeyValue. Its contents die with the process.
type MemoryKV struct {
	data map[string]string
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Available() bool { return true }

func (m *MemoryKV) Close() error { return nil }
