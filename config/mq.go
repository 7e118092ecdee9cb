package config

const (
	MQDriverNone     = "none"
	MQDriverRocketMQ = "rocketmq"
	MQDriverNats     = "nats"
)

// MQConfig 领域事件投递配置, driver 为空时不投递
type MQConfig struct {
	Driver   string          `json:"driver" yaml:"driver"`
	RocketMQ *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
	Nats     *NatsConfig     `json:"nats" yaml:"nats"`
}

type RocketMQConfig struct {
	NameServer []string `yaml:"nameserver"`
	Producer   Producer `yaml:"producer"`
}

type Producer struct {
	Group string `yaml:"group"`
	Retry int    `yaml:"retry"`
}

type NatsConfig struct {
	Url string `yaml:"url"`
}

func ProvideMQConfig(cfg *Config) *MQConfig {
	return cfg.MQ
}
