package youtube

// Wire types for the YouTube Data API v3. Statistics counts arrive as
// decimal strings; conversion to integers happens in the records package.

type channelListResponse struct {
	Items []channelResource `json:"items"`
}

type channelResource struct {
	ID             string                `json:"id"`
	Snippet        channelSnippet        `json:"snippet"`
	Statistics     channelStatistics     `json:"statistics"`
	ContentDetails channelContentDetails `json:"contentDetails"`
}

type channelSnippet struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
	Country     string `json:"country"`
}

type channelStatistics struct {
	ViewCount       string `json:"viewCount"`
	SubscriberCount string `json:"subscriberCount"`
	VideoCount      string `json:"videoCount"`
}

type channelContentDetails struct {
	RelatedPlaylists struct {
		Uploads string `json:"uploads"`
	} `json:"relatedPlaylists"`
}

type playlistItemsResponse struct {
	Items         []playlistItem `json:"items"`
	NextPageToken string         `json:"nextPageToken"`
	PageInfo      pageInfo       `json:"pageInfo"`
}

type playlistItem struct {
	ContentDetails struct {
		VideoID string `json:"videoId"`
	} `json:"contentDetails"`
}

type pageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

type videoListResponse struct {
	Items []videoResource `json:"items"`
}

type videoResource struct {
	ID             string              `json:"id"`
	Snippet        videoSnippet        `json:"snippet"`
	Statistics     videoStatistics     `json:"statistics"`
	ContentDetails videoContentDetails `json:"contentDetails"`
}

type videoSnippet struct {
	ChannelID   string `json:"channelId"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
}

type videoStatistics struct {
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	CommentCount string `json:"commentCount"`
}

type videoContentDetails struct {
	Duration string `json:"duration"` // ISO 8601, e.g. PT1H2M3S
}

type commentThreadsResponse struct {
	Items         []commentThread `json:"items"`
	NextPageToken string          `json:"nextPageToken"`
}

type commentThread struct {
	ID      string `json:"id"`
	Snippet struct {
		TopLevelComment struct {
			Snippet commentSnippet `json:"snippet"`
		} `json:"topLevelComment"`
	} `json:"snippet"`
}

type commentSnippet struct {
	AuthorDisplayName string `json:"authorDisplayName"`
	TextDisplay       string `json:"textDisplay"`
	PublishedAt       string `json:"publishedAt"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// Channel is the harvested view of a channel resource.
type Channel struct {
	ID                string
	Title             string
	Description       string
	Country           string
	SubscriberCount   string
	VideoCount        string
	ViewCount         string
	UploadsPlaylistID string
}

// Video is the harvested view of a video resource. PublishedAt and Duration
// keep the wire encoding (RFC3339 timestamp, ISO 8601 duration).
type Video struct {
	ID           string
	ChannelID    string
	Title        string
	PublishedAt  string
	ViewCount    string
	LikeCount    string
	CommentCount string
	Duration     string
}

// Comment is a single top-level comment on a video.
type Comment struct {
	ID          string
	VideoID     string
	Author      string
	Text        string
	PublishedAt string
}
