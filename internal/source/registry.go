package source

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/epitrack/disease-data-etl/internal/domain"
)

// Factory constructs a transformer for a source URI.
type Factory func(uri string, logger *slog.Logger) (Transformer, error)

// factories maps source names to constructors. To add a new source,
// implement Transformer and add it here.
var factories = map[string]Factory{
	domain.SourceTracker: func(uri string, logger *slog.Logger) (Transformer, error) {
		return NewTracker(uri, logger)
	},
	domain.SourceNNDSS: func(uri string, logger *slog.Logger) (Transformer, error) {
		return NewNNDSS(uri, logger)
	},
}

// ListSources returns all configured source names in alphabetical order.
func ListSources() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New resolves a source name to a constructed transformer. An unknown name
// is a configuration error and fails immediately.
func New(name, uri string, logger *slog.Logger) (Transformer, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown data source %q (available: %s)",
			name, strings.Join(ListSources(), ", "))
	}
	return factory(uri, logger)
}
