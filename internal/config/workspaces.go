package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// WorkspaceRegistry holds named data directories. Selecting a workspace
// points the storage backend at its directory.
type WorkspaceRegistry struct {
	Workspaces       []Workspace `json:"workspaces"`
	DefaultWorkspace string      `json:"defaultWorkspace"`
}

// Workspace is a named data directory
type Workspace struct {
	Name    string `json:"name"`
	DataDir string `json:"dataDir"`
}

var (
	// ErrWorkspaceNotFound is returned when a workspace doesn't exist in the registry
	ErrWorkspaceNotFound = errors.New("workspace not found")
	// ErrDuplicateWorkspace is returned when trying to add a workspace that already exists
	ErrDuplicateWorkspace = errors.New("workspace already exists")
	// ErrEmptyName is returned when the workspace name is empty
	ErrEmptyName = errors.New("workspace name cannot be empty")
	// ErrEmptyDataDir is returned when the workspace directory is empty
	ErrEmptyDataDir = errors.New("workspace data directory cannot be empty")
	// ErrNoConfigFile is returned when no config file exists up the directory tree
	ErrNoConfigFile = errors.New("no " + FileName + " found")
)

// LoadWorkspaceRegistry loads the registry from disk.
// Returns an empty registry if the file doesn't exist.
func LoadWorkspaceRegistry() (*WorkspaceRegistry, error) {
	path, err := registryPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &WorkspaceRegistry{Workspaces: []Workspace{}}, nil
		}
		return nil, err
	}

	var registry WorkspaceRegistry
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, err
	}
	if registry.Workspaces == nil {
		registry.Workspaces = []Workspace{}
	}

	return &registry, nil
}

// SaveWorkspaceRegistry saves the registry to disk
func SaveWorkspaceRegistry(reg *WorkspaceRegistry) error {
	path, err := registryPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Add registers a workspace. The first workspace becomes the default.
func (r *WorkspaceRegistry) Add(name, dataDir string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if dataDir == "" {
		return ErrEmptyDataDir
	}

	for _, w := range r.Workspaces {
		if w.Name == name {
			return ErrDuplicateWorkspace
		}
	}

	if abs, err := filepath.Abs(dataDir); err == nil {
		dataDir = abs
	}

	r.Workspaces = append(r.Workspaces, Workspace{
		Name:    name,
		DataDir: dataDir,
	})

	if len(r.Workspaces) == 1 {
		r.DefaultWorkspace = name
	}

	return nil
}

// Remove unregisters a workspace. Its data directory is left on disk.
func (r *WorkspaceRegistry) Remove(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	found := false
	for i, w := range r.Workspaces {
		if w.Name == name {
			r.Workspaces = append(r.Workspaces[:i], r.Workspaces[i+1:]...)
			found = true
			break
		}
	}

	if !found {
		return ErrWorkspaceNotFound
	}

	// Clear default if it was the removed workspace
	if r.DefaultWorkspace == name {
		r.DefaultWorkspace = ""
		if len(r.Workspaces) > 0 {
			r.DefaultWorkspace = r.Workspaces[0].Name
		}
	}

	return nil
}

// SetDefault sets the default workspace
func (r *WorkspaceRegistry) SetDefault(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, err := r.Get(name); err != nil {
		return err
	}
	r.DefaultWorkspace = name
	return nil
}

// Get retrieves a workspace by name
func (r *WorkspaceRegistry) Get(name string) (*Workspace, error) {
	for _, w := range r.Workspaces {
		if w.Name == name {
			return &w, nil
		}
	}
	return nil, ErrWorkspaceNotFound
}

// GetDefault returns the default workspace, or nil if none is set
func (r *WorkspaceRegistry) GetDefault() *Workspace {
	if r.DefaultWorkspace == "" {
		return nil
	}
	w, err := r.Get(r.DefaultWorkspace)
	if err != nil {
		return nil
	}
	return w
}

// FindByDir finds the workspace whose data directory contains dir
func (r *WorkspaceRegistry) FindByDir(dir string) *Workspace {
	cleanDir := filepath.Clean(dir)

	for _, w := range r.Workspaces {
		cleanWorkspace := filepath.Clean(w.DataDir)
		if cleanWorkspace == cleanDir || strings.HasPrefix(cleanDir, cleanWorkspace+string(filepath.Separator)) {
			return &w
		}
	}
	return nil
}

// ApplyWorkspace points cfg at the named workspace, or at the default
// workspace when name is empty. With no name and no default, cfg is unchanged.
func (r *WorkspaceRegistry) ApplyWorkspace(cfg *Config, name string) error {
	var w *Workspace
	if name != "" {
		found, err := r.Get(name)
		if err != nil {
			return err
		}
		w = found
	} else {
		w = r.GetDefault()
	}

	if w != nil {
		cfg.Storage.Dir = w.DataDir
	}
	return nil
}

// FindConfigDir walks up from start looking for a directory holding FileName
func FindConfigDir(start string) (string, error) {
	path := start
	for {
		if _, err := os.Stat(filepath.Join(path, FileName)); err == nil {
			return path, nil
		}

		parent := filepath.Dir(path)
		if parent == path {
			return "", ErrNoConfigFile
		}
		path = parent
	}
}

// registryPath returns the path to the registry file.
// A variable so tests can override it.
var registryPath = func() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "peregrinno", "workspaces.json"), nil
}
