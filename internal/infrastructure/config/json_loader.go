// Package config implements the ConfigLoader port: reading and validating
// workspace and instance specs from JSON files on disk.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"provision/internal/domain/provisionspec"
	"provision/internal/ports"
	apperrors "provision/pkg/errors"
)

// JSONLoader implements ports.ConfigLoader by reading JSON files from disk.
type JSONLoader struct {
	logger ports.Logger
}

// NewJSONLoader returns a loader that logs through logger (may be nil).
func NewJSONLoader(logger ports.Logger) *JSONLoader {
	return &JSONLoader{logger: logger}
}

// LoadWorkspace reads and validates the single workspace spec at path.
func (l *JSONLoader) LoadWorkspace(ctx context.Context, path string) (*provisionspec.WorkspaceSpec, error) {
	l.logDebug(ctx, "loading workspace spec", "path", path)

	var ws provisionspec.WorkspaceSpec
	if err := loadFromPath(path, &ws); err != nil {
		l.logError(ctx, "failed to load workspace spec", err, "path", path)
		return nil, err
	}

	if err := ws.Validate(); err != nil {
		l.logError(ctx, "workspace spec failed validation", err, "path", path)
		return nil, apperrors.NewValidationError("workspace", err.Error(), err)
	}

	l.logInfo(ctx, "workspace spec loaded", "path", path)
	return &ws, nil
}

// LoadInstances reads and validates every .json file directly inside dir
// (subdirectories ignored), returned sorted by source filename.
func (l *JSONLoader) LoadInstances(ctx context.Context, dir string) ([]*provisionspec.InstanceSpec, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logError(ctx, "failed to read instance config directory", err, "dir", dir)
		return nil, apperrors.NewParseError(dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	specs := make([]*provisionspec.InstanceSpec, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)

		var inst provisionspec.InstanceSpec
		if err := loadFromPath(path, &inst); err != nil {
			l.logError(ctx, "failed to load instance spec", err, "path", path)
			return nil, err
		}
		if err := inst.Validate(); err != nil {
			l.logError(ctx, "instance spec failed validation", err, "path", path)
			return nil, apperrors.NewValidationError("instance", err.Error(), err)
		}

		specs = append(specs, &inst)
	}

	l.logInfo(ctx, "instance specs loaded", "dir", dir, "count", len(specs))
	return specs, nil
}

func loadFromPath(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return apperrors.NewParseError(path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return apperrors.NewParseError(path, fmt.Errorf("invalid json: %w", err))
	}
	return nil
}

func (l *JSONLoader) logDebug(ctx context.Context, msg string, fields ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(ctx, msg, fields...)
}

func (l *JSONLoader) logInfo(ctx context.Context, msg string, fields ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Info(ctx, msg, fields...)
}

func (l *JSONLoader) logError(ctx context.Context, msg string, err error, fields ...interface{}) {
	if l.logger == nil {
		return
	}
	payload := append(append([]interface{}{}, fields...), "error", err)
	l.logger.Error(ctx, msg, payload...)
}

var _ ports.ConfigLoader = (*JSONLoader)(nil)
