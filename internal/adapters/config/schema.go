package config

// Configfile represents the structure of the combiner.yaml configuration file.
type Configfile struct {
	Version      string     `yaml:"version"`
	Root         string     `yaml:"root"`
	Script       AssetDTO   `yaml:"script"`
	Style        AssetDTO   `yaml:"style"`
	Output       OutputDTO  `yaml:"output"`
	Log          bool       `yaml:"log"`
	Strict       bool       `yaml:"strict"`
	FetchTimeout string     `yaml:"fetchTimeout"`
	Concurrency  int        `yaml:"concurrency"`
	Cache        CacheDTO   `yaml:"cache"`
	Server       ServerDTO  `yaml:"server"`
	Publish      PublishDTO `yaml:"publish"`
}

// AssetDTO locates one asset type relative to the public root.
type AssetDTO struct {
	Root string `yaml:"root"`
	URI  string `yaml:"uri"`
}

// OutputDTO configures bundle naming and placement.
type OutputDTO struct {
	Name   string  `yaml:"name"`
	Dir    string  `yaml:"dir"`
	Suffix *string `yaml:"suffix"`
}

// CacheDTO configures the payload cache.
type CacheDTO struct {
	Size int `yaml:"size"`
}

// ServerDTO configures the development server.
type ServerDTO struct {
	Addr       string `yaml:"addr"`
	Watch      *bool  `yaml:"watch"`
	LiveReload *bool  `yaml:"livereload"`
}

// PublishDTO configures uploads to S3-compatible storage.
type PublishDTO struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"useSSL"`
}
