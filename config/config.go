package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "IMPORTER_CONFIG_FILE"

type topics struct {
	ImportedProducts   string `mapstructure:"imported_products"`
	CategoryCountGroup string `mapstructure:"category_count_group"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
}

type telegram struct {
	Enabled      bool    `mapstructure:"enabled"`
	BotToken     string  `mapstructure:"bot_token"`
	AdminChatIDs []int64 `mapstructure:"admin_chat_ids"`
}

type importing struct {
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	Broker         broker     `mapstructure:"broker"`
	Telegram       telegram   `mapstructure:"telegram"`
	Import         importing  `mapstructure:"import"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		ImportedProducts=%q
		CategoryCountGroup=%q

	Telegram:
	Enabled=%v
	AdminChatIDs=%v

	Import:
	MaxUploadBytes=%d

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.SQLDB,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.ImportedProducts,
		c.Broker.Topics.CategoryCountGroup,
		c.Telegram.Enabled,
		c.Telegram.AdminChatIDs,
		c.Import.MaxUploadBytes,
	)
}
