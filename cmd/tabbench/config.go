package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader resolves flag defaults from a TOML document. Keys match flag
// names with dashes or underscores; a table named after a command holds
// values for that command only and wins over top-level keys:
//
//	log_level = "debug"
//
//	[run]
//	engine = ["tabular"]
//	count = 100000
func TOMLLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("toml.Decode: %w", err)
	}

	return kong.ResolverFunc(func(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if table, ok := values[parent.Command.Name].(map[string]any); ok {
				if v, ok := lookup(table, flag.Name); ok {
					return v, nil
				}
			}
		}
		if v, ok := lookup(values, flag.Name); ok {
			return v, nil
		}
		return nil, nil
	}), nil
}

func lookup(values map[string]any, name string) (any, bool) {
	for _, key := range []string{name, strings.ReplaceAll(name, "-", "_")} {
		v, ok := values[key]
		if !ok {
			continue
		}
		// Lists map onto repeatable flags as comma-separated values.
		if list, ok := v.([]any); ok {
			parts := make([]string, len(list))
			for i, item := range list {
				parts[i] = fmt.Sprint(item)
			}
			return strings.Join(parts, ","), true
		}
		return v, true
	}
	return nil, false
}
