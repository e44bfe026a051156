package cmd

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	GeoAPIBaseURL           string
	RedisAddr               string
	KafkaHost               string
	KafkaStatusChangedTopic string
	PhotoStorageDir         string
}
