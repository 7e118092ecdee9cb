package config

type OssConfig struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	Region    string `json:"region" yaml:"region"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	PublicUrl string `json:"public_url" yaml:"public_url"`
	KeySalt   string `json:"key_salt" yaml:"key_salt"`
}

// Enabled 未配置 bucket 时不提供上传能力
func (o *OssConfig) Enabled() bool {
	return o != nil && o.Bucket != ""
}

func ProvideOssConfig(cfg *Config) *OssConfig {
	return cfg.Oss
}
