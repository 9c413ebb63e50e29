package config

import (
	"time"

	"github.com/Dipraise1/publicfund/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Vault    VaultConfig    `mapstructure:"vault"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// VaultConfig 金库治理参数
type VaultConfig struct {
	Owner            string `mapstructure:"owner"`             // 所有者地址（紧急提取、添加代币）
	VotingDuration   int64  `mapstructure:"voting_duration"`   // 投票窗口（秒）
	ProposalInterval int64  `mapstructure:"proposal_interval"` // 同一提案人两次提案的最小间隔（秒）
	QuorumPercent    int64  `mapstructure:"quorum_percent"`    // 法定参与率（百分比）
}

// VotingWindow 投票窗口时长
func (v VaultConfig) VotingWindow() time.Duration {
	return time.Duration(v.VotingDuration) * time.Second
}

// CooldownWindow 提案冷却时长
func (v VaultConfig) CooldownWindow() time.Duration {
	return time.Duration(v.ProposalInterval) * time.Second
}

// ChainConfig 链上资产转移配置
type ChainConfig struct {
	Enabled    bool   `mapstructure:"enabled"`     // 是否启用链上转账（关闭时仅记账）
	ChainId    int64  `mapstructure:"chain_id"`    // 链ID
	RpcUrl     string `mapstructure:"rpc_url"`     // RPC节点URL
	PrivateKey string `mapstructure:"private_key"` // 金库托管私钥
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // 秒
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/publicfund")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "publicfund")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("vault.voting_duration", 7*24*60*60)
	viper.SetDefault("vault.proposal_interval", 24*60*60)
	viper.SetDefault("vault.quorum_percent", 51)
	viper.SetDefault("chain.enabled", false)
	viper.SetDefault("chain.chain_id", 1)
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
