package client

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/pkg/fileutil"
)

// Sentinel errors for MCP operations.
var (
	ErrMCPServerNotFound = errors.Wrap(errors.ErrNotFound, "MCP server")
	ErrInvalidMCPServer  = errors.Wrap(errors.ErrMissingName, "invalid MCP server")
)

// document is a JSON object whose members are kept undecoded.
type document map[string]json.RawMessage

// MCPManager provides CRUD operations on the server map of one client
// config file.
type MCPManager struct {
	path string
	key  []string
}

// NewMCPManager creates an MCPManager for the file at path with the server
// map at key. An empty key means DefaultKey.
func NewMCPManager(path string, key []string) *MCPManager {
	if len(key) == 0 {
		key = DefaultKey
	}
	return &MCPManager{path: path, key: key}
}

// Path returns the config file the manager edits.
func (m *MCPManager) Path() string {
	return m.path
}

// List returns all MCP servers sorted by name.
// Returns an empty slice if the config file does not exist.
func (m *MCPManager) List() ([]*MCPServer, error) {
	_, servers, err := m.load()
	if err != nil {
		return nil, err
	}

	out := make([]*MCPServer, 0, len(servers))
	for name, raw := range servers {
		s, err := decodeServer(name, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Get returns a single MCP server by name.
// Returns ErrMCPServerNotFound if the server does not exist.
func (m *MCPManager) Get(name string) (*MCPServer, error) {
	_, servers, err := m.load()
	if err != nil {
		return nil, err
	}

	raw, ok := servers[name]
	if !ok {
		return nil, ErrMCPServerNotFound
	}
	return decodeServer(name, raw)
}

// Add adds or replaces an MCP server.
// Returns ErrInvalidMCPServer if the server name is empty.
func (m *MCPManager) Add(server *MCPServer) error {
	if server == nil || server.Name == "" {
		return ErrInvalidMCPServer
	}

	root, servers, err := m.load()
	if err != nil {
		return err
	}

	raw, err := marshalCompact(server)
	if err != nil {
		return errors.Wrapf(err, "encoding server %q", server.Name)
	}
	servers[server.Name] = raw

	return m.save(root, servers)
}

// Remove removes an MCP server by name.
// Removing a server that does not exist is not an error and leaves the
// file untouched.
func (m *MCPManager) Remove(name string) error {
	root, servers, err := m.load()
	if err != nil {
		return err
	}

	if _, ok := servers[name]; !ok {
		return nil
	}
	delete(servers, name)

	return m.save(root, servers)
}

// load reads the whole document and the server map at m.key.
// A missing or blank file yields empty maps.
func (m *MCPManager) load() (document, document, error) {
	if m.path == "" {
		return nil, nil, errors.New("MCP config path not configured")
	}

	data, ok, err := fileutil.ReadOptional(m.path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", m.path)
	}

	root := document{}
	if ok && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, nil, errors.Wrapf(err, "parsing %s", m.path)
		}
		if root == nil {
			root = document{}
		}
	}

	servers, err := lookup(root, m.key)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parsing %s", m.path)
	}
	return root, servers, nil
}

// save writes servers back at m.key, keeping the rest of root.
func (m *MCPManager) save(root, servers document) error {
	if err := store(root, m.key, servers); err != nil {
		return errors.Wrapf(err, "encoding %s", m.path)
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}

	return errors.Wrap(fileutil.AtomicWriteJSON(m.path, root), "writing MCP config")
}

// lookup descends key from doc. Missing or null members are empty.
func lookup(doc document, key []string) (document, error) {
	raw, ok := doc[key[0]]
	child := document{}
	if ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &child); err != nil {
			return nil, errors.Wrapf(err, "%q is not an object", key[0])
		}
		if child == nil {
			child = document{}
		}
	}
	if len(key) == 1 {
		return child, nil
	}
	return lookup(child, key[1:])
}

// store sets value at key inside doc, creating intermediate objects.
func store(doc document, key []string, value document) error {
	if len(key) == 1 {
		raw, err := marshalCompact(value)
		if err != nil {
			return err
		}
		doc[key[0]] = raw
		return nil
	}

	child, err := lookup(doc, key[:1])
	if err != nil {
		return err
	}
	if err := store(child, key[1:], value); err != nil {
		return err
	}
	raw, err := marshalCompact(child)
	if err != nil {
		return err
	}
	doc[key[0]] = raw
	return nil
}

func decodeServer(name string, raw json.RawMessage) (*MCPServer, error) {
	var s MCPServer
	if !isNull(raw) {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, errors.Wrapf(err, "parsing server %q", name)
		}
	}
	s.Name = name
	return &s, nil
}

// marshalCompact encodes v without HTML escaping so URLs keep their '&'.
func marshalCompact(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
