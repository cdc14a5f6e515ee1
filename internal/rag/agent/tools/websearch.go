package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ichef/ChefAPI/internal/config"
	"github.com/ichef/ChefAPI/internal/customHttpClient"
	"github.com/ichef/ChefAPI/pkg/logger_i"
)

// DuckDuckGoSearch queries the lite endpoint over the shared pooled client.
// The result is an untrusted text summary, the agent consumes it verbatim
// as an observation - no schema, no further parsing.
type DuckDuckGoSearch struct {
	client   *http.Client
	endpoint string
	logger   *logger_i.Logger
}

func NewDuckDuckGoSearch() *DuckDuckGoSearch {
	return &DuckDuckGoSearch{
		client:   customHttpClient.GetPooledClient(),
		endpoint: config.SearchEndpoint,
		logger:   logger_i.NewLogger("WebSearch"),
	}
}

const maxSearchResultLength = 2000

var tagPattern = regexp.MustCompile(`<[^>]*>`)
var spacePattern = regexp.MustCompile(`\s+`)

func (d *DuckDuckGoSearch) Search(ctx context.Context, query string) (string, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Error("Web search request failed", "error", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("web search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	summary := stripHTML(string(body))
	if summary == "" {
		return "Nenhum resultado encontrado na web.", nil
	}
	return truncateOnRuneBoundary(summary, maxSearchResultLength), nil
}

// truncateOnRuneBoundary cuts s to at most limit bytes without splitting a
// multibyte rune.
func truncateOnRuneBoundary(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func stripHTML(page string) string {
	text := tagPattern.ReplaceAllString(page, " ")
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}
