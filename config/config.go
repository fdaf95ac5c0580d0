package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// AppConfig はアプリケーション全体の設定を保持します
type AppConfig struct {
	TabWidth    int    `yaml:"tab_width"`
	Wrap        bool   `yaml:"wrap"`
	Theme       string `yaml:"theme"`
	History     bool   `yaml:"history"`
	HistoryPath string `yaml:"history_path"`
}

// DefaultConfig は設定ファイルがないときの既定値を返します
func DefaultConfig() *AppConfig {
	return &AppConfig{
		TabWidth: 4,
		Wrap:     false,
		Theme:    "catppuccin-frappe",
		History:  true,
	}
}

// configDir は設定ファイルを置くディレクトリを返します。
// XDG_CONFIG_HOME があればそちらを優先する
func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "origami"), nil
}

// parseConfig は YAML を既定値の上に読み込みます
func parseConfig(data []byte, cfg *AppConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 4
	}
	return nil
}

// LoadConfig はアプリケーションの設定を読み込みます。
// 設定ファイルがなければ既定値を返します
func LoadConfig() (*AppConfig, error) {
	cfg := DefaultConfig()

	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	cfg.HistoryPath = filepath.Join(dir, "history.db")

	data, err := os.ReadFile(filepath.Join(dir, "config.yml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := parseConfig(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
