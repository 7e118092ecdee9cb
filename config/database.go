package config

import "fmt"

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Database 数据库配置, driver 决定使用哪个 gorm 驱动
type Database struct {
	Driver   string `json:"driver" yaml:"driver"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Name     string `json:"name" yaml:"name"`
	Debug    bool   `json:"debug" yaml:"debug"`
}

// Dsn 按驱动拼接连接串, sqlite 下 Name 即文件路径
func (d *Database) Dsn() string {
	switch d.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
			d.Host, d.Username, d.Password, d.Name, d.Port)
	case DriverSQLite:
		return d.Name
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.Username, d.Password, d.Host, d.Port, d.Name)
	}
}
