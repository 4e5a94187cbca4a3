package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/sevenong/nft-marketplace/internal/log"
	"go.uber.org/zap"
	"math/big"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env       string
	Network   string
	Index     string
	Debug     bool
	LogPath   string
	SentryDsn string

	ApiPort    string
	HealthPort string

	AmqpUri string

	IpfsHosts       []string
	IpfsTimeout     int
	MetadataRetries int

	Market        MarketConfig
	ElasticSearch ElasticSearchConfig
	Aws           AwsConfig
}

type MarketConfig struct {
	Address    string
	Admin      string
	FeePercent uint

	CollectionContract string
	CollectionName     string
	CollectionSymbol   string
}

type AwsConfig struct {
	AccessKey string
	SecretKey string
	Region    string
}

type ElasticSearchConfig struct {
	Hosts            []string
	Sniff            bool
	HealthCheck      bool
	Debug            bool
	Username         string
	Password         string
	MappingDir       string
	BulkPersistCount int
	Refresh          string
	Aws              bool
}

var ipfsHosts = []string{
	"https://gateway.pinata.cloud",
	"https://cloudflare-ipfs.com",
	"https://gateway.ipfs.io",
}

func Init(app string) {
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Unable to init config")
	}

	initLogger(app)
}

func initLogger(app string) {
	log.NewLogger(fmt.Sprintf("%s/%s.log", Get().LogPath, app), Get().Debug, Get().SentryDsn)
}

func Get() *Config {
	return &Config{
		Env:             getString("ENV", ""),
		Network:         getString("NETWORK", "sevenong"),
		Index:           getString("INDEX_NAME", "market"),
		Debug:           getBool("DEBUG", false),
		LogPath:         getString("LOG_PATH", "."),
		SentryDsn:       getString("SENTRY_DSN", ""),
		ApiPort:         getString("API_PORT", "8080"),
		HealthPort:      getString("HEALTH_PORT", "8081"),
		AmqpUri:         getString("AMQP_URI", ""),
		IpfsHosts:       getSlice("IPFS_HOSTS", ipfsHosts, ","),
		IpfsTimeout:     getInt("IPFS_TIMEOUT", 10),
		MetadataRetries: getInt("METADATA_RETRIES", 3),
		Market: MarketConfig{
			Address:            getString("MARKET_ADDRESS", "0x00000000000000000000000000000000004d6b74"),
			Admin:              getString("MARKET_ADMIN", ""),
			FeePercent:         getUint("MARKET_FEE_PERCENT", 2),
			CollectionContract: getString("COLLECTION_CONTRACT", "0x0000000000000000000000000000000000007049"),
			CollectionName:     getString("COLLECTION_NAME", "7ONG COLLECTION"),
			CollectionSymbol:   getString("COLLECTION_SYMBOL", "7ONG"),
		},
		Aws: AwsConfig{
			AccessKey: getString("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getString("AWS_SECRET_KEY_ID", ""),
			Region:    getString("AWS_REGION", ""),
		},
		ElasticSearch: ElasticSearchConfig{
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:            getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck:      getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:            getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:         getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:         getString("ELASTIC_SEARCH_PASSWORD", ""),
			MappingDir:       getString("ELASTIC_SEARCH_MAPPING_DIR", "/data/mappings"),
			BulkPersistCount: getInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 100),
			Refresh:          getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
			Aws:              getBool("ELASTIC_SEARCH_AWS", false),
		},
	}
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	valStr := getString(key, "")
	val, _, err := big.ParseFloat(valStr, 10, 0, big.ToNearestEven)
	if err != nil {
		return defaultValue
	}

	intVal, _ := val.Int64()
	return int(intVal)
}

func getUint(key string, defaultValue uint) uint {
	return uint(getInt(key, int(defaultValue)))
}

func getBool(key string, defaultValue bool) bool {
	valStr := getString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getSlice(key string, defaultVal []string, sep string) []string {
	valStr := getString(key, "")
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, sep)
}
