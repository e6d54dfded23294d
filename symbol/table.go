package symbol

import "sync"

// Table interns validated symbols by name. Safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	symbols map[string]Symbol
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{symbols: make(map[string]Symbol)}
}

// Intern returns the symbol for name, validating it on first use.
func (t *Table) Intern(name string) (Symbol, error) {
	t.mu.RLock()
	s, ok := t.symbols[name]
	t.mu.RUnlock()
	if ok {
		return s, nil
	}

	s, err := New(name)
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	if existing, ok := t.symbols[name]; ok {
		s = existing
	} else {
		t.symbols[name] = s
	}
	t.mu.Unlock()
	return s, nil
}

// Len returns the number of interned symbols.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.symbols)
}
