package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want AppConfig
	}{
		{
			name: "全部指定",
			yaml: "tab_width: 8\nwrap: true\ntheme: dracula\n",
			want: AppConfig{TabWidth: 8, Wrap: true, Theme: "dracula", History: true},
		},
		{
			name: "一部だけ指定",
			yaml: "tab_width: 2\n",
			want: AppConfig{TabWidth: 2, Wrap: false, Theme: "catppuccin-frappe", History: true},
		},
		{
			name: "空のファイル",
			yaml: "",
			want: AppConfig{TabWidth: 4, Wrap: false, Theme: "catppuccin-frappe", History: true},
		},
		{
			name: "不正なタブ幅は既定値に戻る",
			yaml: "tab_width: 0\n",
			want: AppConfig{TabWidth: 4, Wrap: false, Theme: "catppuccin-frappe", History: true},
		},
		{
			name: "履歴を無効化",
			yaml: "history: false\n",
			want: AppConfig{TabWidth: 4, Wrap: false, Theme: "catppuccin-frappe", History: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := parseConfig([]byte(tt.yaml), cfg); err != nil {
				t.Fatalf("parseConfig returned error: %v", err)
			}
			if *cfg != tt.want {
				t.Errorf("parseConfig() = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestParseConfigInvalidYAML(t *testing.T) {
	cfg := DefaultConfig()
	if err := parseConfig([]byte(":\n  - broken"), cfg); err == nil {
		t.Error("parseConfig should return error for invalid YAML")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", cfg.TabWidth)
	}
	if !cfg.History {
		t.Error("History = false, want true")
	}
	wantHistory := filepath.Join(configHome, "origami", "history.db")
	if cfg.HistoryPath != wantHistory {
		t.Errorf("HistoryPath = %s, want %s", cfg.HistoryPath, wantHistory)
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "origami")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll returned error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("tab_width: 2\nwrap: true\nhistory: false\n"), 0o644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.TabWidth != 2 {
		t.Errorf("TabWidth = %d, want 2", cfg.TabWidth)
	}
	if !cfg.Wrap {
		t.Error("Wrap = false, want true")
	}
	if cfg.History {
		t.Error("History = true, want false")
	}
}
