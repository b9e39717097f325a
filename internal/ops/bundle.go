package ops

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/taskkeep/taskkeep/models"
)

// Interchange formats accepted by Export and Import.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

const bundleVersion = "1"

// Bundle is the portable snapshot written by Export and read by Import.
type Bundle struct {
	Version    string        `json:"version" yaml:"version" toml:"version"`
	ExportedAt time.Time     `json:"exported_at" yaml:"exported_at" toml:"exported_at"`
	Tasks      []models.Task `json:"tasks" yaml:"tasks" toml:"tasks"`
}

// ParseFormat normalizes a format name. The yml spelling is accepted as an
// alias for yaml, and the empty string defaults to json.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatTOML:
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected json, yaml or toml)", s)
	}
}

// Export writes every stored task to w as a bundle in the given format
// and returns the number of exported tasks.
func (s *Service) Export(w io.Writer, format string) (int, error) {
	tasks, err := s.store.GetAll()
	if err != nil {
		return 0, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	bundle := Bundle{
		Version:    bundleVersion,
		ExportedAt: time.Now().UTC(),
		Tasks:      tasks,
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(bundle); err != nil {
			return 0, fmt.Errorf("failed to encode JSON bundle: %w", err)
		}
	case FormatYAML:
		data, err := yaml.Marshal(bundle)
		if err != nil {
			return 0, fmt.Errorf("failed to encode YAML bundle: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return 0, fmt.Errorf("failed to write YAML bundle: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(bundle); err != nil {
			return 0, fmt.Errorf("failed to encode TOML bundle: %w", err)
		}
	default:
		return 0, fmt.Errorf("unsupported format %q", format)
	}
	return len(tasks), nil
}

// ImportResult reports what an Import changed.
type ImportResult struct {
	Added   int
	Skipped int
}

// Import reads a bundle from r and adds every task whose ID is not already
// present. Records with an existing ID are skipped, never overwritten.
func (s *Service) Import(r io.Reader, format string) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read import data: %w", err)
	}

	var bundle Bundle
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &bundle)
	case FormatYAML:
		err = yaml.Unmarshal(data, &bundle)
	case FormatTOML:
		err = toml.Unmarshal(data, &bundle)
	default:
		return ImportResult{}, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to decode %s bundle: %w", format, err)
	}

	existing, err := s.store.GetAll()
	if err != nil {
		return ImportResult{}, err
	}
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[t.ID] = true
	}

	var res ImportResult
	for i, t := range bundle.Tasks {
		if t.ID == "" || strings.TrimSpace(t.Title) == "" {
			return res, fmt.Errorf("bundle record %d has no id or title", i)
		}
		// The YAML and TOML decoders bypass the JSON defaulting, so
		// normalize enums and the creation stamp here.
		if t.Priority == "" {
			t.Priority = models.PriorityMedium
		} else {
			p, err := models.ParsePriority(string(t.Priority))
			if err != nil {
				return res, fmt.Errorf("bundle record %d: %w", i, err)
			}
			t.Priority = p
		}
		if t.Status == "" {
			t.Status = models.StatusActive
		} else {
			st, err := models.ParseStatus(string(t.Status))
			if err != nil {
				return res, fmt.Errorf("bundle record %d: %w", i, err)
			}
			t.Status = st
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = time.Now()
		}
		t.Title = strings.TrimSpace(t.Title)

		if seen[t.ID] {
			res.Skipped++
			continue
		}
		if err := s.store.Add(t); err != nil {
			return res, err
		}
		seen[t.ID] = true
		res.Added++
	}
	return res, nil
}
