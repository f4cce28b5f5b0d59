package domain

type Config struct {
	DBPath         string `mapstructure:"dbPath"`
	SongCollection string `mapstructure:"songCollection"`
	MpvSocket      string `mapstructure:"mpvSocket"`
	UserAgent      string `mapstructure:"userAgent"`
	LogLevel       string `mapstructure:"logLevel"`
	MetricsAddr    string `mapstructure:"metricsAddr"`
	HistoryLimit   int    `mapstructure:"historyLimit"`
}
