package ledger

// FileStore reads and rewrites one ledger CSV path. It satisfies the
// pipeline's store interface.
type FileStore struct {
	Path string
}

func (s FileStore) Load() (*Ledger, error) {
	return Load(s.Path)
}

func (s FileStore) Save(l *Ledger) error {
	return Save(s.Path, l)
}
