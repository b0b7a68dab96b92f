package integration

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	kfile "github.com/knadh/koanf/providers/file"
	kfs "github.com/knadh/koanf/providers/fs"
	"github.com/knadh/koanf/v2"
)

var koanfMergeOpt = koanf.WithMergeFunc(mergeConfigs)

// BuildConfig populates out from, in order of increasing precedence:
// <fileName>.yaml in cfgFs, <fileName>-<profile>.yaml for every profile in <envPrefix>CONFIG_ACTIVE_PROFILES,
// <fileName>.yaml files found under <envPrefix>CONFIG_ADDITIONAL_LOCATION, .env files and <envPrefix>* env vars.
func BuildConfig(envPrefix string, fileName string, cfgFs fs.FS, out any) error {
	l := configLoader{k: koanf.New("."), envPrefix: envPrefix, fileName: fileName}

	if err := l.loadYaml(cfgFs); err != nil {
		return fmt.Errorf("failed to load yaml configs; %w", err)
	}

	if err := l.loadEnv(); err != nil {
		return fmt.Errorf("failed to load env configs; %w", err)
	}

	if err := l.k.Unmarshal("", out); err != nil {
		return fmt.Errorf("failed to unmarshal config; %w", err)
	}

	return nil
}

type configLoader struct {
	k         *koanf.Koanf
	envPrefix string
	fileName  string
}

func (l configLoader) profileFiles() []string {
	files := []string{l.fileName + ".yaml"}
	profiles, _ := os.LookupEnv(l.envPrefix + "CONFIG_ACTIVE_PROFILES")
	for profile := range strings.SplitSeq(profiles, ",") {
		profile = strings.ToLower(strings.TrimSpace(profile))
		if profile == "" {
			continue
		}
		files = append(files, fmt.Sprintf("%s-%s.yaml", l.fileName, profile))
	}
	return files
}

func (l configLoader) loadYaml(cfgFs fs.FS) error {
	var providers []koanf.Provider

	for _, file := range l.profileFiles() {
		providers = append(providers, kfs.Provider(cfgFs, file))
	}

	if location, set := os.LookupEnv(l.envPrefix + "CONFIG_ADDITIONAL_LOCATION"); set {
		paths, err := l.collectConfigFiles(location)
		if err != nil {
			return fmt.Errorf("failed to collect configs from %sCONFIG_ADDITIONAL_LOCATION env var; %w", l.envPrefix, err)
		}
		for _, path := range paths {
			providers = append(providers, kfile.Provider(path))
		}
	}

	parser := kyaml.Parser()
	for _, provider := range providers {
		if err := l.k.Load(provider, parser, koanfMergeOpt); err != nil {
			return fmt.Errorf("failed to load config; %w", err)
		}
	}
	return nil
}

func (l configLoader) loadEnv() error {
	trim := func(s string) string { return strings.TrimPrefix(s, l.envPrefix) }

	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check if %s file exists; %w", path, err)
			}
			continue
		}
		if err := l.k.Load(kfile.Provider(path), dotenv.ParserEnv(l.envPrefix, "_", trim), koanfMergeOpt); err != nil {
			return fmt.Errorf("failed to load dotenv; %w", err)
		}
	}

	if err := l.k.Load(env.Provider(l.envPrefix, "_", trim), nil, koanfMergeOpt); err != nil {
		return fmt.Errorf("failed to load env; %w", err)
	}
	return nil
}

// collectConfigFiles accepts either a single file or a directory that is searched for <fileName>.yaml.
func (l configLoader) collectConfigFiles(location string) ([]string, error) {
	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s; %w", location, err)
	}
	if !info.IsDir() {
		return []string{location}, nil
	}

	var files []string
	err = filepath.WalkDir(location, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == l.fileName+".yaml" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to traverse through %s; %w", location, err)
	}
	return files, nil
}

// mergeConfigs merges a into b like koanf's default merge, except that keys are matched case-insensitively,
// so IMPORTTOARRAY_EXPORTS_MARKERPREFIX overrides exports.markerPrefix instead of living next to it.
func mergeConfigs(a, b map[string]any) error {
	for key, val := range a {
		destKey, bVal, ok := lookupKeyInConfigMap(key, b)
		if !ok {
			b[destKey] = val
			continue
		}

		src, isMap := val.(map[string]any)
		if !isMap {
			b[destKey] = val
			continue
		}

		dst, isMap := bVal.(map[string]any)
		if !isMap {
			b[destKey] = val
			continue
		}
		if err := mergeConfigs(src, dst); err != nil {
			return fmt.Errorf("failed to merge configs; %w", err)
		}
	}
	return nil
}

func lookupKeyInConfigMap(key string, m map[string]any) (string, any, bool) {
	for k := range maps.Keys(m) {
		if strings.EqualFold(k, key) {
			v := m[k]
			return k, v, v != nil
		}
	}
	return key, nil, false
}
