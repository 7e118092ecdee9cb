package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App      *App       `json:"app" yaml:"app"`
	Server   *Server    `json:"server" yaml:"server"`
	Database *Database  `json:"database" yaml:"database"`
	Redis    *Redis     `json:"redis" yaml:"redis"`
	Jwt      *Jwt       `json:"jwt" yaml:"jwt"`
	Cache    *Cache     `json:"cache" yaml:"cache"`
	MQ       *MQConfig  `json:"mq" yaml:"mq"`
	Oss      *OssConfig `json:"oss" yaml:"oss"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("解析 %s 读取错误: %v", filename, err))
	}

	return conf
}

// Parse 解析 yaml 内容并补齐默认值
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}
	conf.applyDefaults()
	return &conf, nil
}

func (c *Config) applyDefaults() {
	if c.App == nil {
		c.App = &App{Env: "dev"}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Database == nil {
		c.Database = &Database{Driver: DriverSQLite, Name: "social.db"}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Jwt.ExpiresIn == 0 {
		c.Jwt.ExpiresIn = 2 * time.Hour
	}
	if c.Cache == nil {
		c.Cache = &Cache{}
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheBackendMemory
	}
	if c.Cache.EvictInterval <= 0 {
		c.Cache.EvictInterval = 30 * time.Second
	}
	if c.MQ == nil {
		c.MQ = &MQConfig{}
	}
	if c.Oss == nil {
		c.Oss = &OssConfig{}
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
