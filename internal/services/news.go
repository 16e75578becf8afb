package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const newsAPIURL = "https://eventregistry.org/api/v1/article/getArticles"

var newsHTTPClient = &http.Client{Timeout: 10 * time.Second}

// NewsArticle mirrors the article shape the clients render on the
// Travellers' News page.
type NewsArticle struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Source      NewsSource `json:"source"`
	PublishedAt string     `json:"publishedAt"`
	URLToImage  string     `json:"urlToImage"`
	URL         string     `json:"url"`
	Category    string     `json:"category"`
}

type NewsSource struct {
	Name string `json:"name"`
}

const fallbackNewsImage = "https://images.unsplash.com/photo-1469854523086-cc02fe5d8800?q=80&w=800&auto=format&fit=crop"

// Curated fallback served when the news API is unconfigured or unreachable.
var mockNewsArticles = []NewsArticle{
	{
		ID:          1,
		Title:       "Digital Nomad Visas: The 2024 Guide",
		Description: "Japan, South Korea, and Italy have newly launched visas for remote workers. Here's what you need to know about income requirements and application processes.",
		Source:      NewsSource{Name: "Nomad Weekly"},
		URLToImage:  "https://images.unsplash.com/photo-1522202176988-66273c2fd55f?q=80&w=800&auto=format&fit=crop",
		URL:         "#",
		Category:    "Policy",
	},
	{
		ID:          2,
		Title:       "Hidden Gems of The Balkans",
		Description: "Why Albania and Montenegro are becoming the top budget-friendly alternatives to Greece and Croatia this summer.",
		Source:      NewsSource{Name: "Wanderlust Mag"},
		URLToImage:  "https://images.unsplash.com/photo-1569388330292-7a6a84116c7b?q=80&w=800&auto=format&fit=crop",
		URL:         "#",
		Category:    "Destinations",
	},
	{
		ID:          3,
		Title:       "Sustainable Travel: New Carbon Laws",
		Description: "European Union implements stricter carbon taxes on short-haul flights. How this affects your summer Eurotrip budget.",
		Source:      NewsSource{Name: "EcoTravel"},
		URLToImage:  "https://images.unsplash.com/photo-1500382017468-9049fed747ef?q=80&w=800&auto=format&fit=crop",
		URL:         "#",
		Category:    "Sustainability",
	},
	{
		ID:          4,
		Title:       "Best Solo Travel Hostels 2024",
		Description: "A curated list of the most social and safe hostels in Southeast Asia for first-time solo travellers.",
		Source:      NewsSource{Name: "Solo Planet"},
		URLToImage:  "https://images.unsplash.com/photo-1555854877-bab0e564b8d5?q=80&w=800&auto=format&fit=crop",
		URL:         "#",
		Category:    "Tips",
	},
	{
		ID:          5,
		Title:       "Airline Mistake Fares: How to Spot Them",
		Description: "A glitch in the system allowed travellers to book round-trip flights to New Zealand for $300. Here is how to catch the next one.",
		Source:      NewsSource{Name: "FlySmart"},
		URLToImage:  "https://images.unsplash.com/photo-1436491865332-7a61a109cc05?q=80&w=800&auto=format&fit=crop",
		URL:         "#",
		Category:    "Hacks",
	},
}

// mockNewsAges gives each curated article a recent relative timestamp.
var mockNewsAges = []time.Duration{
	2 * time.Hour,
	5 * time.Hour,
	24 * time.Hour,
	25 * time.Hour,
	48 * time.Hour,
}

// MockNewsArticles filters the curated fallback list by category.
func MockNewsArticles(category string) []NewsArticle {
	now := time.Now()
	var out []NewsArticle
	for i, a := range mockNewsArticles {
		if category != "All" && category != "" && a.Category != category {
			continue
		}
		a.PublishedAt = now.Add(-mockNewsAges[i%len(mockNewsAges)]).Format(time.RFC3339)
		out = append(out, a)
	}
	return out
}

// NewsKeywords expands a category into the keyword set sent to the article
// search API. Phrases are chosen to match consumer travel coverage.
func NewsKeywords(category string) []string {
	keywords := []string{"travel advice", "best destinations", "travel tips", "backpacking", "hidden gems", "solo travel"}
	if category == "All" || category == "" {
		return keywords
	}
	keywords = append(keywords, strings.ToLower(category))
	switch category {
	case "Policy":
		keywords = append(keywords, "visa", "travel restrictions")
	case "Sustainability":
		keywords = append(keywords, "eco-friendly travel", "carbon footprint")
	case "Hacks":
		keywords = append(keywords, "cheap flights", "travel hacks")
	}
	return keywords
}

type newsAPIResponse struct {
	Articles struct {
		Results []struct {
			Title    string `json:"title"`
			Body     string `json:"body"`
			DateTime string `json:"dateTime"`
			Date     string `json:"date"`
			Image    string `json:"image"`
			URL      string `json:"url"`
			Source   struct {
				Title string `json:"title"`
			} `json:"source"`
		} `json:"results"`
	} `json:"articles"`
}

// DecodeNewsArticles parses an Event Registry getArticles response body into
// the client-facing article shape.
func DecodeNewsArticles(data []byte, category string) ([]NewsArticle, error) {
	var resp newsAPIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	displayCategory := category
	if category == "All" || category == "" {
		displayCategory = "General"
	}
	articles := make([]NewsArticle, 0, len(resp.Articles.Results))
	for i, r := range resp.Articles.Results {
		description := r.Body
		// Truncate on runes so a multibyte character never gets split.
		if runes := []rune(description); len(runes) > 200 {
			description = string(runes[:200]) + "..."
		}
		sourceName := r.Source.Title
		if sourceName == "" {
			sourceName = "Unknown Source"
		}
		publishedAt := r.DateTime
		if publishedAt == "" {
			publishedAt = r.Date
		}
		image := r.Image
		if image == "" {
			image = fallbackNewsImage
		}
		articles = append(articles, NewsArticle{
			ID:          i,
			Title:       r.Title,
			Description: description,
			Source:      NewsSource{Name: sourceName},
			PublishedAt: publishedAt,
			URLToImage:  image,
			URL:         r.URL,
			Category:    displayCategory,
		})
	}
	return articles, nil
}

// FetchTravelNews returns travel articles for a category, consulting the
// Redis cache first, then the Event Registry API, and falling back to the
// curated mock list when the API key is missing or the call fails.
func FetchTravelNews(ctx context.Context, category string) ([]NewsArticle, error) {
	if category == "" {
		category = "All"
	}

	if RedisClient != nil {
		if cached, err := GetCachedNewsArticles(ctx, category); err == nil {
			return cached, nil
		}
	}

	apiKey := os.Getenv("NEWS_API_KEY")
	if apiKey == "" {
		log.Warn().Msg("NEWS_API_KEY not set, serving mock travel news")
		return MockNewsArticles(category), nil
	}

	requestBody := map[string]interface{}{
		"action":            "getArticles",
		"keyword":           NewsKeywords(category),
		"keywordOper":       "or",
		"lang":              "eng",
		"articlesPage":      1,
		"articlesCount":     12,
		"articlesSortBy":    "date",
		"articlesSortByAsc": false,
		"apiKey":            apiKey,
		"resultType":        "articles",
		"articlesArgs": map[string]interface{}{
			"image":              true,
			"domainContributors": false,
		},
	}

	payload, err := json.Marshal(requestBody)
	if err != nil {
		return MockNewsArticles(category), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, newsAPIURL, bytes.NewReader(payload))
	if err != nil {
		return MockNewsArticles(category), nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := newsHTTPClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch travel news, serving mock data")
		return MockNewsArticles(category), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("news API returned non-200, serving mock data")
		return MockNewsArticles(category), nil
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return MockNewsArticles(category), nil
	}

	articles, err := DecodeNewsArticles(buf.Bytes(), category)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode news API response, serving mock data")
		return MockNewsArticles(category), nil
	}

	if RedisClient != nil {
		if err := CacheNewsArticles(ctx, category, articles); err != nil {
			log.Warn().Err(err).Msg(fmt.Sprintf("failed to cache news articles for category %s", category))
		}
	}

	return articles, nil
}
