package config

const (
	defaultConfigPath       = "~/.config/arenavision/config.toml"
	legacyConfigPath        = "~/.config/arenavision_linux/arenavision_linux.ini"
	defaultVideoPlayer      = "mpv"
	defaultColdStartTime    = 15
	defaultStreamPort       = "3908"
	defaultP2PPort          = "8908"
	defaultHelperBinary     = "sp-sc-auth"
	defaultMaxWaitCycles    = 4
	defaultProbeAddress     = "8.8.8.8:53"
	defaultStopGraceSeconds = 3
	defaultAgendaURL        = "http://arenavision.in/agenda"
	defaultChannelURLPrefix = "http://arenavision.in/av"
	defaultUserAgent        = "Arenavision for Linux Launcher v0.1"
	defaultMaxEvents        = 10
	defaultRequestTimeout   = 20
	defaultLogFormat        = "console"
	defaultLogLevel         = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Settings: Settings{
			VideoPlayer:   defaultVideoPlayer,
			ColdStartTime: defaultColdStartTime,
			StreamPort:    defaultStreamPort,
			P2PPort:       defaultP2PPort,
		},
		Helper: Helper{
			Binary:           defaultHelperBinary,
			MaxWaitCycles:    defaultMaxWaitCycles,
			ProbeAddress:     defaultProbeAddress,
			StopGraceSeconds: defaultStopGraceSeconds,
		},
		Schedule: Schedule{
			AgendaURL:        defaultAgendaURL,
			ChannelURLPrefix: defaultChannelURLPrefix,
			UserAgent:        defaultUserAgent,
			MaxEvents:        defaultMaxEvents,
			RequestTimeout:   defaultRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
