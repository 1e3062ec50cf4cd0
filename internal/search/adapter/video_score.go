package adapter

import (
	"slices"
	"strings"
	"time"

	"github.com/neuraseek/neuraseek/internal/search/client"
)

// scoreVideo sums the weighted relevance components for one candidate. It is
// a pure function of its inputs; a nil channel simply zeroes the channel
// components, so scoring never aborts for one bad candidate.
func scoreVideo(item *client.VideoItem, channel *client.ChannelInfo, terms []string, now time.Time) float64 {
	score := titleRelevance(item.Title, terms)

	if channel != nil {
		if channel.Linked {
			score += 10
		}
		score += subscriberTier(channel.SubscriberCount)
		score += brandMatch(channel, terms)
	}

	score += viewTier(item.ViewCount)
	score += engagementRatio(item.ViewCount, item.LikeCount, item.CommentCount)
	score += ageBonus(item.PublishedAt, now)

	return score
}

// titleRelevance awards 2 points per distinct query term found in the
// title, capped at 8.
func titleRelevance(title string, terms []string) float64 {
	title = strings.ToLower(title)
	score := 0.0
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += 2
		}
	}
	return min(score, 8)
}

// subscriberTier is the channel-authority step function.
func subscriberTier(subscribers int64) float64 {
	switch {
	case subscribers > 10_000_000:
		return 15
	case subscribers > 1_000_000:
		return 12
	case subscribers > 100_000:
		return 8
	case subscribers > 10_000:
		return 4
	default:
		return 0
	}
}

// brandMatch awards 10 points per query term matching the channel's display
// title and per "official"/"verified" token among its brand keywords, capped
// at 20, plus 5 when the channel carries content-ownership metadata.
func brandMatch(channel *client.ChannelInfo, terms []string) float64 {
	channelTitle := strings.ToLower(channel.Title)

	matches := 0
	for _, term := range terms {
		if strings.Contains(channelTitle, term) {
			matches++
		}
	}
	for _, token := range []string{"official", "verified"} {
		if slices.Contains(channel.BrandKeywords, token) {
			matches++
		}
	}

	score := min(float64(matches)*10, 20)
	if channel.HasContentOwner {
		score += 5
	}
	return score
}

// viewTier is the popularity step function.
func viewTier(views int64) float64 {
	switch {
	case views > 10_000_000:
		return 6
	case views > 1_000_000:
		return 4
	case views > 100_000:
		return 2
	default:
		return 0
	}
}

// engagementRatio scores (likes+comments)/views scaled by 1000, capped at 6.
func engagementRatio(views, likes, comments int64) float64 {
	if views <= 0 {
		return 0
	}
	return min(float64(likes+comments)/float64(views)*1000, 6)
}

// ageBonus rewards videos that have stood the test of time over brand-new
// uploads.
func ageBonus(publishedAt time.Time, now time.Time) float64 {
	if publishedAt.IsZero() || publishedAt.After(now) {
		return 0
	}

	days := now.Sub(publishedAt).Hours() / 24
	switch {
	case days > 365:
		return 5
	case days > 180:
		return 4
	case days > 90:
		return 3
	case days > 30:
		return 2
	case days > 7:
		return 1
	default:
		return 0
	}
}
