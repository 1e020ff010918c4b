package platform

import (
	"regexp"
	"strings"

	"github.com/armii/platform-admin/pkg/entities"
)

type seed struct {
	id   string
	name string
}

var defaultSeeds = []seed{
	{"instagram", "Instagram"},
	{"whatsapp-business", "WhatsApp Business"},
	{"linkedin", "LinkedIn"},
	{"facebook", "Facebook"},
	{"youtube", "YouTube"},
	{"gmail", "Gmail"},
	{"twitter", "Twitter"},
	{"telegram", "Telegram"},
	{"tiktok", "TikTok"},
	{"snapchat", "Snapchat"},
	{"pinterest", "Pinterest"},
}

// DefaultPlatforms is the seed set every new store starts with. Ids are
// well-known slugs equal to the platform type.
func DefaultPlatforms() []entities.Platform {
	platforms := make([]entities.Platform, 0, len(defaultSeeds))
	for _, s := range defaultSeeds {
		platforms = append(platforms, entities.Platform{
			ID:     s.id,
			Name:   s.name,
			Type:   s.id,
			Status: entities.StatusActive,
		})
	}
	return platforms
}

// PredefinedPlatforms lists the names offered when adding a platform.
var PredefinedPlatforms = []string{
	// Social & community
	"Instagram", "WhatsApp", "WhatsApp Business", "Facebook", "Twitter", "X", "Telegram", "TikTok", "Snapchat", "Pinterest", "Threads", "Mastodon", "Bluesky", "Reddit", "Quora", "Twitch", "YouTube", "Vimeo", "Dailymotion",
	// Messaging & collaboration
	"Discord", "Slack", "Zoom", "Skype", "Microsoft Teams", "Google Meet", "Signal", "WeChat", "Line", "Viber",
	// Email
	"Google", "Gmail", "Outlook", "Yahoo Mail", "iCloud Mail",
	// Productivity & docs
	"Notion", "Evernote", "Confluence", "Jira", "Asana", "Trello", "ClickUp", "Monday.com",
	// Cloud storage
	"Google Drive", "OneDrive", "Dropbox", "Box", "iCloud Drive",
	// Dev & knowledge
	"GitHub", "GitLab", "Bitbucket", "Stack Overflow",
	// CMS / publishing
	"WordPress", "Medium", "Blogger", "Ghost", "Substack",
	// Commerce & CRM
	"Shopify", "WooCommerce", "Magento", "Salesforce", "HubSpot", "Zoho CRM",
	// Payments
	"Stripe", "PayPal", "Razorpay", "Square",
	// Marketing & analytics
	"Google Ads", "Facebook Ads", "LinkedIn Ads", "Instagram Ads", "Google Analytics", "Mixpanel", "Amplitude", "Hotjar", "Intercom", "Zendesk", "Freshdesk", "ServiceNow",
	// Browsers
	"Chrome", "Safari", "Firefox", "Edge", "Opera", "Brave",
	// Media & music
	"Spotify", "SoundCloud", "Apple Music",
}

// canonicalNames maps common misspellings of a lowercased query to the catalog name.
var canonicalNames = map[string]string{
	"whatsappbusiness": "WhatsApp Business",
	"google drive":     "Google Drive",
	"onedrive":         "OneDrive",
}

var typeOverrides = map[string]string{
	"WhatsApp Business": "whatsapp-business",
	"WhatsApp":          "whatsapp",
}

var whitespace = regexp.MustCompile(`\s+`)

// TypeSlug derives the platform type from its name: lowercase with all
// whitespace removed, except for the names in typeOverrides.
func TypeSlug(name string) string {
	name = strings.TrimSpace(name)
	if t, ok := typeOverrides[name]; ok {
		return t
	}
	return whitespace.ReplaceAllString(strings.ToLower(name), "")
}

// CanonicalName resolves a search query to a catalog name, or "" when the
// query is neither a known misspelling nor an exact (case-insensitive) match.
func CanonicalName(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ""
	}
	if name, ok := canonicalNames[q]; ok {
		return name
	}
	for _, name := range PredefinedPlatforms {
		if strings.ToLower(name) == q {
			return name
		}
	}
	return ""
}

var labels = func() map[string]string {
	m := make(map[string]string, len(defaultSeeds))
	for _, s := range defaultSeeds {
		m[s.id] = s.name
	}
	return m
}()

// Label returns the display name of a default platform type, or the type itself.
func Label(platformType string) string {
	if l, ok := labels[platformType]; ok {
		return l
	}
	return platformType
}
