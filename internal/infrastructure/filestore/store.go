// Package filestore guarda el blob de sesión en un archivo JSON local, el equivalente
// del almacenamiento durable del navegador para el cliente de terminal.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store implementa repository.SessionStore. El archivo contiene un objeto JSON
// clave → valor crudo; se reescribe completo en cada Set/Delete.
type Store struct {
	path string
	mu   sync.Mutex
}

// New no toca el disco hasta la primera escritura.
func New(path string) *Store {
	return &Store{path: path}
}

// Path ruta del archivo.
func (s *Store) Path() string { return s.path }

// Get devuelve found=false si el archivo o la clave no existen.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return nil, false, err
	}
	v, ok := m[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

// Set guarda el valor. Un valor que no es JSON se guarda como string JSON.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return err
	}
	if json.Valid(value) {
		m[key] = json.RawMessage(append([]byte(nil), value...))
	} else {
		quoted, _ := json.Marshal(string(value))
		m[key] = quoted
	}
	return s.save(m)
}

// Delete no falla si la clave no existe.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return s.save(m)
}

// load trata un archivo ilegible como vacío: se pisa en la próxima escritura.
func (s *Store) load() (map[string]json.RawMessage, error) {
	m := make(map[string]json.RawMessage)
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: leer %s: %w", s.path, err)
	}
	if len(raw) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return make(map[string]json.RawMessage), nil
	}
	return m, nil
}

func (s *Store) save(m map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("filestore: crear directorio: %w", err)
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: serializar: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("filestore: escribir %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("filestore: renombrar: %w", err)
	}
	return nil
}
