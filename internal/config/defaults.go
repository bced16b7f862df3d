package config

const (
	defaultDataDir               = "~/.local/share/ytharvest"
	defaultLogDir                = "~/.local/share/ytharvest/logs"
	defaultAPIBind               = "127.0.0.1:7823"
	defaultYouTubeBaseURL        = "https://www.googleapis.com/youtube/v3"
	defaultYouTubeTimeout        = 15
	defaultMaxCommentsPerVideo   = 100
	defaultPlaylistPageSize      = 50
	defaultCommentThreadPageSize = 100
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultLogRetentionDays      = 60
	defaultNotifyRequestTimeout  = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		YouTube: YouTube{
			BaseURL:               defaultYouTubeBaseURL,
			RequestTimeout:        defaultYouTubeTimeout,
			MaxCommentsPerVideo:   defaultMaxCommentsPerVideo,
			PlaylistPageSize:      defaultPlaylistPageSize,
			CommentThreadPageSize: defaultCommentThreadPageSize,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Collect:        true,
			Warehouse:      true,
			Errors:         true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
