package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Databases Databases   `yaml:"databases"`
	ETL       ETLSettings `yaml:"etl"`
}

type Databases struct {
	Postgres string `yaml:"postgres"`
	MySQL    string `yaml:"mysql"`
	Mongo    string `yaml:"mongo"`
}

type ETLSettings struct {
	DataDir   string `yaml:"data_dir"`
	ChunkSize int    `yaml:"chunk_size"`
}

// DefaultChunkSize bounds per-statement payload size during bulk loads.
const DefaultChunkSize = 10000

func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, err
	}

	if config.ETL.ChunkSize <= 0 {
		config.ETL.ChunkSize = DefaultChunkSize
	}

	return config, nil
}
