package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type MenuItem struct {
	Name                 string `yaml:"name"`
	Description          string `yaml:"description"`
	BasePrice            string `yaml:"base_price"`
	ImageURL             string `yaml:"image_url"`
	PreparationTime      int    `yaml:"preparation_time"`
	IsFeatured           bool   `yaml:"is_featured"`
	AllowProteinChoice   bool   `yaml:"allow_protein_choice"`
	AllowExtraSides      bool   `yaml:"allow_extra_sides"`
	AllowCustomerMessage bool   `yaml:"allow_customer_message"`
}

type MenuCategory struct {
	Name         string     `yaml:"name"`
	Description  string     `yaml:"description"`
	ImageURL     string     `yaml:"image_url"`
	DisplayOrder int        `yaml:"display_order"`
	Items        []MenuItem `yaml:"items"`
}

type MenuConfig struct {
	Categories []MenuCategory `yaml:"categories"`
}

// LoadMenuConfig 讀取 seed 指令使用的菜單檔, ex: menu.yaml
func LoadMenuConfig(path string) (*MenuConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &MenuConfig{}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
