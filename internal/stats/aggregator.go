// Package stats derives dashboard statistics from the link and click stores.
package stats

import (
	"context"
	"sort"
	"time"

	"github.com/clicklens/clicklens/internal/shortener"
)

// dailyWindow is the number of calendar days covered by the click trend,
// today included.
const dailyWindow = 7

// recentLimit is the number of entries in the recent activity feed.
const recentLimit = 10

// deletedTitle is the placeholder for clicks whose owning link is gone.
const deletedTitle = "Deleted URL"

// noTopCountry is the sentinel when no clicks have been recorded yet.
const noTopCountry = "None"

// DailyCount is one day of the click trend. Date is rendered as MM-DD, the
// format the dashboard charts.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CountryCount is one country's share of all clicks.
type CountryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// RecentClick is one click enriched with the owning link's title.
type RecentClick struct {
	ID        string    `json:"id"`
	URLID     string    `json:"urlId"`
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip"`
	Country   string    `json:"country"`
	UserAgent string    `json:"userAgent,omitempty"`
	URLTitle  string    `json:"urlTitle"`
}

// Snapshot is the full set of derived dashboard statistics. It is recomputed
// from scratch on every request and holds no state between calls.
type Snapshot struct {
	TotalClicks  int            `json:"totalClicks"`
	UniqueURLs   int            `json:"uniqueUrls"`
	TopCountry   string         `json:"topCountry"`
	DailyClicks  []DailyCount   `json:"dailyClicks"`
	CountryStats []CountryCount `json:"countryStats"`
	RecentClicks []RecentClick  `json:"recentClicks"`
}

// Aggregator computes statistics snapshots over the current contents of the
// link and click repositories.
type Aggregator struct {
	links  shortener.LinkRepository
	clicks shortener.ClickRepository
	now    func() time.Time
}

// NewAggregator creates a new analytics aggregator.
func NewAggregator(links shortener.LinkRepository, clicks shortener.ClickRepository) *Aggregator {
	return &Aggregator{
		links:  links,
		clicks: clicks,
		now:    time.Now,
	}
}

// NewAggregatorAt creates an aggregator with a fixed clock, for tests.
func NewAggregatorAt(
	links shortener.LinkRepository, clicks shortener.ClickRepository, now func() time.Time,
) *Aggregator {
	return &Aggregator{
		links:  links,
		clicks: clicks,
		now:    now,
	}
}

// Compute scans both stores and derives a full snapshot.
func (a *Aggregator) Compute(ctx context.Context) (*Snapshot, error) {
	links, err := a.links.List(ctx)
	if err != nil {
		return nil, err
	}

	clicks, err := a.clicks.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	countryStats := a.countryStats(clicks)

	topCountry := noTopCountry
	if len(countryStats) > 0 {
		topCountry = countryStats[0].Name
	}

	return &Snapshot{
		TotalClicks:  len(clicks),
		UniqueURLs:   len(links),
		TopCountry:   topCountry,
		DailyClicks:  a.dailyClicks(clicks),
		CountryStats: countryStats,
		RecentClicks: a.recentClicks(links, clicks),
	}, nil
}

// dailyClicks buckets clicks into the last 7 UTC calendar days, today
// included, oldest first. Days with no clicks still appear with count 0.
func (a *Aggregator) dailyClicks(clicks []*shortener.ClickEvent) []DailyCount {
	today := a.now().UTC().Truncate(24 * time.Hour)

	counts := make(map[string]int, dailyWindow)
	days := make([]string, 0, dailyWindow)

	for i := dailyWindow - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format(time.DateOnly)
		days = append(days, day)
		counts[day] = 0
	}

	for _, click := range clicks {
		day := click.Timestamp.UTC().Format(time.DateOnly)
		if _, ok := counts[day]; ok {
			counts[day]++
		}
	}

	daily := make([]DailyCount, 0, dailyWindow)

	for _, day := range days {
		daily = append(daily, DailyCount{
			Date:  day[5:], // MM-DD
			Count: counts[day],
		})
	}

	return daily
}

// countryStats counts clicks per country label, sorted by count descending.
// Equal counts are ordered by name ascending so the result is stable.
func (a *Aggregator) countryStats(clicks []*shortener.ClickEvent) []CountryCount {
	counts := make(map[string]int)

	for _, click := range clicks {
		country := click.Country
		if country == "" {
			country = "Unknown"
		}

		counts[country]++
	}

	countries := make([]CountryCount, 0, len(counts))

	for name, value := range counts {
		countries = append(countries, CountryCount{Name: name, Value: value})
	}

	sort.Slice(countries, func(i, j int) bool {
		if countries[i].Value != countries[j].Value {
			return countries[i].Value > countries[j].Value
		}

		return countries[i].Name < countries[j].Name
	})

	return countries
}

// recentClicks returns the 10 most recent clicks, newest first, each
// enriched with its owning link's title. A click whose owner is gone gets a
// placeholder title instead of failing the aggregation.
func (a *Aggregator) recentClicks(
	links []*shortener.ShortLink, clicks []*shortener.ClickEvent,
) []RecentClick {
	titles := make(map[string]string, len(links))

	for _, link := range links {
		titles[link.ID] = link.Title
	}

	ordered := make([]*shortener.ClickEvent, len(clicks))
	copy(ordered, clicks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.After(ordered[j].Timestamp)
	})

	if len(ordered) > recentLimit {
		ordered = ordered[:recentLimit]
	}

	recent := make([]RecentClick, 0, len(ordered))

	for _, click := range ordered {
		title, ok := titles[click.URLID]
		if !ok {
			title = deletedTitle
		}

		recent = append(recent, RecentClick{
			ID:        click.ID,
			URLID:     click.URLID,
			Timestamp: click.Timestamp,
			IP:        click.IP,
			Country:   click.Country,
			UserAgent: click.UserAgent,
			URLTitle:  title,
		})
	}

	return recent
}
