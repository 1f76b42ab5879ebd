// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestProvider_PrefersConfigDirOverLocal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "wixc.cue")
	if err := os.WriteFile(path, []byte(`output: format: "yaml"`), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("LoadWithSource() error = %v", err)
	}
	if loaded.Path != path || loaded.Config.Output.Format != OutputFormatYAML {
		t.Errorf("loaded = %+v from %q", loaded.Config.Output, loaded.Path)
	}
}

func TestProvider_ReturnsFreshConfig(t *testing.T) {
	t.Parallel()

	p := NewProvider()
	opts := LoadOptions{ConfigDirPath: t.TempDir()}
	a, err := p.Load(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	a.Compile.Jobs = 99

	b, err := p.Load(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if b.Compile.Jobs != 0 {
		t.Error("each Load should return an independent Config")
	}
}
