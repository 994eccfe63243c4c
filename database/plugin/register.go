// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plugin

import (
	"fmt"

	"github.com/spf13/pflag"
)

type PluginType int

const (
	PluginTypeBlob PluginType = iota
	PluginTypeMetadata
)

// PluginTypeName returns the human-readable name for a plugin type
func PluginTypeName(pluginType PluginType) string {
	switch pluginType {
	case PluginTypeBlob:
		return "blob"
	case PluginTypeMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

type PluginOptionType int

const (
	PluginOptionTypeString PluginOptionType = iota
	PluginOptionTypeBool
	PluginOptionTypeInt
	PluginOptionTypeUint
)

// PluginOption describes a single configurable option for a plugin. Dest
// must be a pointer to the plugin's own storage for the option value.
type PluginOption struct {
	Dest         any
	DefaultValue any
	Name         string
	Description  string
	Type         PluginOptionType
}

// PluginEntry describes a registered plugin and how to instantiate it
type PluginEntry struct {
	NewFromOptionsFunc func() Plugin
	Name               string
	Description        string
	Options            []PluginOption
	Type               PluginType
}

// pluginEntries is populated by plugin packages at init() time. It is never
// mutated after program startup, so reads are safe without locking.
var pluginEntries []PluginEntry

// Register adds a plugin to the registry. It is expected to be called from
// a plugin package's init()
func Register(entry PluginEntry) {
	pluginEntries = append(pluginEntries, entry)
}

// GetPlugin instantiates and returns the named plugin of the given type. It
// returns nil if no matching plugin is registered.
func GetPlugin(pluginType PluginType, name string) Plugin {
	for _, entry := range pluginEntries {
		if entry.Type == pluginType && entry.Name == name {
			return entry.NewFromOptionsFunc()
		}
	}
	return nil
}

// GetPlugins returns the registered plugin entries for the given type
func GetPlugins(pluginType PluginType) []PluginEntry {
	ret := []PluginEntry{}
	for _, entry := range pluginEntries {
		if entry.Type == pluginType {
			ret = append(ret, entry)
		}
	}
	return ret
}

// PopulateCmdlineOptions adds a command-line flag for each registered plugin
// option. Flags are namespaced by plugin name, e.g. --badger-data-dir.
func PopulateCmdlineOptions(flags *pflag.FlagSet) error {
	for _, entry := range pluginEntries {
		for _, opt := range entry.Options {
			flagName := fmt.Sprintf("%s-%s", entry.Name, opt.Name)
			usage := fmt.Sprintf(
				"%s (%s plugin)",
				opt.Description,
				entry.Name,
			)
			switch opt.Type {
			case PluginOptionTypeString:
				dest, ok := opt.Dest.(*string)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s: expected *string",
						flagName,
					)
				}
				defaultValue, _ := opt.DefaultValue.(string)
				flags.StringVar(dest, flagName, defaultValue, usage)
			case PluginOptionTypeBool:
				dest, ok := opt.Dest.(*bool)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s: expected *bool",
						flagName,
					)
				}
				defaultValue, _ := opt.DefaultValue.(bool)
				flags.BoolVar(dest, flagName, defaultValue, usage)
			case PluginOptionTypeInt:
				dest, ok := opt.Dest.(*int)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s: expected *int",
						flagName,
					)
				}
				defaultValue, _ := opt.DefaultValue.(int)
				flags.IntVar(dest, flagName, defaultValue, usage)
			case PluginOptionTypeUint:
				dest, ok := opt.Dest.(*uint64)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s: expected *uint64",
						flagName,
					)
				}
				defaultValue, _ := opt.DefaultValue.(uint64)
				flags.Uint64Var(dest, flagName, defaultValue, usage)
			default:
				return fmt.Errorf(
					"unknown option type %d for option %s",
					opt.Type,
					flagName,
				)
			}
		}
	}
	return nil
}
