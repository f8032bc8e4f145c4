package preview

import (
	"fmt"
	"net/url"
	"strings"
)

// RelayURL rewrites a Discord webhook URL so it points at the relay instead:
// the scheme and host are replaced with the relay's base URL while the
// /api/webhooks/{id}/{token} path is kept. Clients can swap the URL in any
// existing integration and get splitting for free.
func RelayURL(base, webhookURL string) (string, error) {
	hook, err := url.Parse(strings.TrimSpace(webhookURL))
	if err != nil {
		return "", fmt.Errorf("parse webhook URL: %w", err)
	}
	idx := strings.Index(hook.Path, "/api/webhooks/")
	if idx < 0 {
		return "", fmt.Errorf("not a Discord webhook URL: %s", webhookURL)
	}

	relay, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("parse relay base URL: %w", err)
	}
	if relay.Scheme == "" || relay.Host == "" {
		return "", fmt.Errorf("relay base URL must include scheme and host: %s", base)
	}
	relay.Path = strings.TrimSuffix(relay.Path, "/") + hook.Path[idx:]
	return relay.String(), nil
}

// CurlCommand returns a ready-to-paste curl invocation posting Markdown
// content to the given relay URL.
func CurlCommand(relayURL string) string {
	return fmt.Sprintf(`curl -X POST %s -H 'Content-Type: application/json' -d '{"content":"your **markdown** here"}'`, relayURL)
}
