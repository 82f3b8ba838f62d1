package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

const DefaultSaveDir = ".saves"

const sheetFile = "sheet.yaml"

var ErrSheetNotFound = errors.New("sheet not found")

// Store keeps one directory per sheet under Dir.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultSaveDir
	}
	return &Store{Dir: dir}
}

func (st *Store) Save(name string, s *Sheet) error {
	dir := filepath.Join(st.Dir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("save sheet %q: %w", name, err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("save sheet %q: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, sheetFile), data, 0644); err != nil {
		return fmt.Errorf("save sheet %q: %w", name, err)
	}
	return nil
}

func (st *Store) Load(name string) (*Sheet, error) {
	data, err := os.ReadFile(filepath.Join(st.Dir, name, sheetFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load sheet %q: %w", name, ErrSheetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load sheet %q: %w", name, err)
	}

	s := NewSheet()
	s.Skills, s.Scaling = nil, nil
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("load sheet %q: %w", name, err)
	}
	s.normalize()
	return s, nil
}

func (st *Store) List() ([]string, error) {
	if _, err := os.Stat(st.Dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(st.Dir)
	if err != nil {
		return nil, err
	}

	var sheets []string
	for _, entry := range entries {
		if entry.IsDir() {
			// sheet.yaml marks a valid save
			path := filepath.Join(st.Dir, entry.Name(), sheetFile)
			if _, err := os.Stat(path); err == nil {
				sheets = append(sheets, entry.Name())
			}
		}
	}
	sort.Strings(sheets)
	return sheets, nil
}
