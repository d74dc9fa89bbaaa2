package video

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const resultsPerPage = 50

// Candidate is a video reference taken from a listing call, before its
// full details are fetched.
type Candidate struct {
	VideoID     string
	PublishedAt string
	Position    int64
}

// PlaylistInfo identifies the playlist a run is reading from.
type PlaylistInfo struct {
	Title        string
	ChannelTitle string
}

// Client wraps the YouTube Data API v3 surface used by the video runs.
// Listing and lookup calls are retried with exponential backoff.
type Client struct {
	svc           *youtube.Service
	categoryCache map[string]string
}

// NewClient builds an API-key authenticated client.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &APIError{Op: "client init", Err: err}
	}
	return &Client{
		svc:           svc,
		categoryCache: make(map[string]string),
	}, nil
}

func retryCall(ctx context.Context, fn func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 2 * time.Second
	policy.MaxInterval = 5 * time.Second
	return backoff.Retry(fn, backoff.WithContext(backoff.WithMaxRetries(policy, 2), ctx))
}

// ChannelVideos lists the most recent uploads of a channel, newest
// first, up to maxResults.
func (c *Client) ChannelVideos(ctx context.Context, channelID string, maxResults int64) ([]Candidate, error) {
	return c.searchVideos(ctx, maxResults, func(call *youtube.SearchListCall) *youtube.SearchListCall {
		return call.ChannelId(channelID)
	})
}

// SearchVideos lists videos matching a search keyword, sorted oldest
// first, up to maxResults.
func (c *Client) SearchVideos(ctx context.Context, keyword string, maxResults int64) ([]Candidate, error) {
	items, err := c.searchVideos(ctx, maxResults, func(call *youtube.SearchListCall) *youtube.SearchListCall {
		return call.Q(keyword)
	})
	if err != nil {
		return nil, err
	}
	sortCandidatesByDate(items, false)
	return items, nil
}

func (c *Client) searchVideos(ctx context.Context, maxResults int64,
	scope func(*youtube.SearchListCall) *youtube.SearchListCall) ([]Candidate, error) {

	var candidates []Candidate
	pageToken := ""
	for int64(len(candidates)) < maxResults {
		pageSize := maxResults - int64(len(candidates))
		if pageSize > resultsPerPage {
			pageSize = resultsPerPage
		}

		var resp *youtube.SearchListResponse
		err := retryCall(ctx, func() error {
			var err error
			resp, err = scope(c.svc.Search.List([]string{"snippet", "id"})).
				Order("date").
				Type("video").
				MaxResults(pageSize).
				PageToken(pageToken).
				Context(ctx).
				Do()
			return err
		})
		if err != nil {
			return nil, &APIError{Op: "search", Err: err}
		}

		for _, item := range resp.Items {
			if item.Id == nil || item.Id.VideoId == "" {
				continue
			}
			candidates = append(candidates, Candidate{
				VideoID:     item.Id.VideoId,
				PublishedAt: item.Snippet.PublishedAt,
			})
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	sortCandidatesByDate(candidates, true)
	if int64(len(candidates)) > maxResults {
		candidates = candidates[:maxResults]
	}
	return candidates, nil
}

// PlaylistVideos lists the entries of a playlist ordered by sortMode,
// up to maxResults.
func (c *Client) PlaylistVideos(ctx context.Context, playlistID, sortMode string, maxResults int64) ([]Candidate, error) {
	var candidates []Candidate
	pageToken := ""
	for int64(len(candidates)) < maxResults {
		pageSize := maxResults - int64(len(candidates))
		if pageSize > resultsPerPage {
			pageSize = resultsPerPage
		}

		var resp *youtube.PlaylistItemListResponse
		err := retryCall(ctx, func() error {
			var err error
			resp, err = c.svc.PlaylistItems.List([]string{"snippet"}).
				PlaylistId(playlistID).
				MaxResults(pageSize).
				PageToken(pageToken).
				Context(ctx).
				Do()
			return err
		})
		if err != nil {
			return nil, &APIError{Op: "playlist items", Err: err}
		}

		for _, item := range resp.Items {
			if item.Snippet == nil || item.Snippet.ResourceId == nil {
				continue
			}
			candidates = append(candidates, Candidate{
				VideoID:     item.Snippet.ResourceId.VideoId,
				PublishedAt: item.Snippet.PublishedAt,
				Position:    item.Snippet.Position,
			})
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	SortPlaylist(candidates, sortMode)
	if int64(len(candidates)) > maxResults {
		candidates = candidates[:maxResults]
	}
	return candidates, nil
}

// PlaylistDetails fetches the playlist's own title and owner.
func (c *Client) PlaylistDetails(ctx context.Context, playlistID string) (*PlaylistInfo, error) {
	var resp *youtube.PlaylistListResponse
	err := retryCall(ctx, func() error {
		var err error
		resp, err = c.svc.Playlists.List([]string{"snippet"}).
			Id(playlistID).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, &APIError{Op: "playlist lookup", Err: err}
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, nil
	}
	return &PlaylistInfo{
		Title:        resp.Items[0].Snippet.Title,
		ChannelTitle: resp.Items[0].Snippet.ChannelTitle,
	}, nil
}

// VideoDetails fetches full snippets for the given IDs, issuing lookups
// in chunks of 50.
func (c *Client) VideoDetails(ctx context.Context, videoIDs []string) (map[string]*youtube.Video, error) {
	details := make(map[string]*youtube.Video, len(videoIDs))
	for start := 0; start < len(videoIDs); start += resultsPerPage {
		end := start + resultsPerPage
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		chunk := videoIDs[start:end]

		var resp *youtube.VideoListResponse
		err := retryCall(ctx, func() error {
			var err error
			resp, err = c.svc.Videos.List([]string{"snippet", "contentDetails", "liveStreamingDetails"}).
				Id(strings.Join(chunk, ",")).
				Context(ctx).
				Do()
			return err
		})
		if err != nil {
			return nil, &APIError{Op: "video details", Err: err}
		}
		for _, item := range resp.Items {
			details[item.Id] = item
		}
	}
	return details, nil
}

// CategoryName resolves a category ID to its title. Results are cached
// for the lifetime of the client; failures degrade to "Unknown".
func (c *Client) CategoryName(ctx context.Context, categoryID string) string {
	if name, ok := c.categoryCache[categoryID]; ok {
		return name
	}

	var resp *youtube.VideoCategoryListResponse
	err := retryCall(ctx, func() error {
		var err error
		resp, err = c.svc.VideoCategories.List([]string{"snippet"}).
			RegionCode("US").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return "Unknown"
	}

	name := "Unknown"
	for _, cat := range resp.Items {
		c.categoryCache[cat.Id] = cat.Snippet.Title
		if cat.Id == categoryID {
			name = cat.Snippet.Title
		}
	}
	return name
}

// ChannelThumbnail returns the channel's default thumbnail URL, or an
// empty string when it cannot be fetched.
func (c *Client) ChannelThumbnail(ctx context.Context, channelID string) string {
	var resp *youtube.ChannelListResponse
	err := retryCall(ctx, func() error {
		var err error
		resp, err = c.svc.Channels.List([]string{"snippet"}).
			Id(channelID).
			Context(ctx).
			Do()
		return err
	})
	if err != nil || len(resp.Items) == 0 {
		return ""
	}
	snippet := resp.Items[0].Snippet
	if snippet == nil || snippet.Thumbnails == nil || snippet.Thumbnails.Default == nil {
		return ""
	}
	return snippet.Thumbnails.Default.Url
}
