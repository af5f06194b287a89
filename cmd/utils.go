package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/greenroute/hopper/core"
	"github.com/greenroute/hopper/itdk"
	"github.com/greenroute/hopper/resolve"
	"github.com/greenroute/hopper/state"
)

func loadEnv(verbose bool) (*state.Env, error) {
	cfg, err := state.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if logPath != "" {
		cfg.LogPath = logPath
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return state.NewEnv(context.Background(), *cfg, level), nil
}

// loadNodes reads the .nodes file and applies the geo filter when a
// geo file is configured. Dataset files are stat-checked up front so a
// bad path fails before the multi-minute load starts.
func loadNodes(env *state.Env) (itdk.Nodes, error) {
	for _, path := range []string{env.Dataset.Nodes, env.Dataset.Links} {
		if err := state.FileValidator(path); err != nil {
			return nil, err
		}
	}
	nodes, err := itdk.LoadNodes(env.Log, env.Dataset.Nodes)
	if err != nil {
		return nil, err
	}
	if env.Dataset.Geo != "" {
		geo, err := itdk.LoadGeo(env.Log, env.Dataset.Geo)
		if err != nil {
			return nil, err
		}
		nodes.FilterGeo(env.Log, geo)
	}
	return nodes, nil
}

func buildGraph(env *state.Env, nodes itdk.Nodes) (*core.Graph, error) {
	g := core.NewGraphSized(len(nodes))
	if _, err := itdk.LoadLinks(env.Log, env.Dataset.Links, nodes, g); err != nil {
		return nil, err
	}
	return g, nil
}

// rangesFile finds the configured range file of a provider.
func rangesFile(env *state.Env, provider string) (string, error) {
	for _, cloud := range env.Clouds {
		if cloud.Provider == provider {
			return cloud.Ranges, nil
		}
	}
	return "", fmt.Errorf("no ranges file configured for provider %q", provider)
}

// regionTable loads every prefix of a provider into one lookup table.
func regionTable(env *state.Env, provider string) (*resolve.Table, error) {
	path, err := rangesFile(env, provider)
	if err != nil {
		return nil, err
	}
	ranges, err := resolve.LoadRanges(provider, path, "")
	if err != nil {
		return nil, err
	}
	return resolve.NewTable(ranges), nil
}

func parseAddrs(ips []string) ([]uint32, error) {
	addrs := make([]uint32, 0, len(ips))
	for _, ip := range ips {
		n, err := core.ParseAddr(ip)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, n)
	}
	return addrs, nil
}
