package config

import (
	"os"
	"path"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

// StorageConfig selects the image storage backend once at startup.
// Provider is "local" or "s3".
type StorageConfig struct {
	Provider  string `yaml:"provider" json:"provider"`
	UploadDir string `yaml:"upload_dir" json:"upload_dir"`
	Endpoint  string `yaml:"endpoint" json:"endpoint"`
	Region    string `yaml:"region" json:"region"`
	Bucket    string `yaml:"bucket" json:"bucket"`
	AccessKey string `yaml:"access_key" json:"access_key"`
	SecretKey string `yaml:"secret_key" json:"secret_key"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system" json:"system"`
	Web      WebConfig     `yaml:"web" json:"web"`
	Database DBConfig      `yaml:"database" json:"database"`
	Storage  StorageConfig `yaml:"storage" json:"storage"`
	Logger   LogConfig     `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetUploadDir() string {
	if c.Storage.UploadDir != "" {
		return c.Storage.UploadDir
	}
	return path.Join(c.System.Workdir, "uploads")
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "shopcore",
		Location: "Asia/Jakarta",
		Workdir:  "/var/shopcore",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-shopcore-0cc258076ea1",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "shopcore",
		User:     "postgres",
		Passwd:   "root",
		MaxConn:  100,
		IdleConn: 10,
	},
	Storage: StorageConfig{
		Provider: "local",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/shopcore/shopcore.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvInt64Value(name string, f func(v int64)) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	p := cast.ToInt64(evalue)
	if p > 0 {
		f(p)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(cast.ToBool(evalue))
	}
}

// LoadConfig reads the YAML config file when present and applies
// SHOPCORE_* environment overrides on top.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err == nil {
				if err := yaml.Unmarshal(data, cfg); err != nil {
					panic(err)
				}
			}
		}
	}

	setEnvValue("SHOPCORE_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvBoolValue("SHOPCORE_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("SHOPCORE_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("SHOPCORE_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvInt64Value("SHOPCORE_WEB_PORT", func(v int64) { cfg.Web.Port = int(v) })

	setEnvValue("SHOPCORE_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("SHOPCORE_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("SHOPCORE_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("SHOPCORE_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("SHOPCORE_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvInt64Value("SHOPCORE_DB_PORT", func(v int64) { cfg.Database.Port = int(v) })

	setEnvValue("SHOPCORE_STORAGE_PROVIDER", func(v string) { cfg.Storage.Provider = v })
	setEnvValue("SHOPCORE_STORAGE_UPLOAD_DIR", func(v string) { cfg.Storage.UploadDir = v })
	setEnvValue("SHOPCORE_STORAGE_ENDPOINT", func(v string) { cfg.Storage.Endpoint = v })
	setEnvValue("SHOPCORE_STORAGE_REGION", func(v string) { cfg.Storage.Region = v })
	setEnvValue("SHOPCORE_STORAGE_BUCKET", func(v string) { cfg.Storage.Bucket = v })
	setEnvValue("SHOPCORE_STORAGE_ACCESS_KEY", func(v string) { cfg.Storage.AccessKey = v })
	setEnvValue("SHOPCORE_STORAGE_SECRET_KEY", func(v string) { cfg.Storage.SecretKey = v })

	setEnvValue("SHOPCORE_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })

	return cfg
}
