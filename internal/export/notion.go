package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"fdehunt-engine/internal/domain"
)

const (
	notionPagesURL = "https://api.notion.com/v1/pages"
	notionVersion  = "2022-06-28"
)

// NotionClient pushes jobs into a Notion database, one page per job.
type NotionClient struct {
	hc         *http.Client
	token      string
	databaseID string
	pagesURL   string
}

func NewNotionClient(token, databaseID string) *NotionClient {
	return &NotionClient{
		hc:         &http.Client{Timeout: 20 * time.Second},
		token:      token,
		databaseID: databaseID,
		pagesURL:   notionPagesURL,
	}
}

// SyncJobs creates one page per job and returns how many landed plus the
// first error seen. Individual failures do not stop the sync; the caller
// treats the whole thing as best-effort.
func (c *NotionClient) SyncJobs(ctx context.Context, jobs []domain.Job, scrapedAt time.Time) (int, error) {
	var firstErr error
	added := 0
	for _, j := range jobs {
		if err := c.createPage(ctx, j, scrapedAt); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			log.Printf("[notion] company=%q role=%q err=%v", j.CompanyName, j.RoleName, err)
			continue
		}
		added++
	}
	return added, firstErr
}

func (c *NotionClient) createPage(ctx context.Context, j domain.Job, scrapedAt time.Time) error {
	props := map[string]any{
		"Role Name": map[string]any{
			"title": []any{map[string]any{"text": map[string]any{"content": j.RoleName}}},
		},
		"Company":         selectProp(j.CompanyName),
		"Location":        richText(j.Location),
		"Job Link":        map[string]any{"url": j.JobLink},
		"Employment Type": selectProp(j.EmploymentType),
		"Team":            richText(j.Team),
		"Compensation":    richText(j.Compensation),
		"Scraped At": map[string]any{
			"date": map[string]any{"start": scrapedAt.Format("2006-01-02")},
		},
	}
	// only a clean date parses into a Notion date property
	if _, err := time.Parse("2006-01-02", j.PublishedDate); err == nil {
		props["Published Date"] = map[string]any{
			"date": map[string]any{"start": j.PublishedDate},
		}
	}

	body, err := json.Marshal(map[string]any{
		"parent":     map[string]any{"database_id": c.databaseID},
		"properties": props,
	})
	if err != nil {
		return fmt.Errorf("notion marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pagesURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("notion post: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return fmt.Errorf("notion status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}
	io.Copy(io.Discard, res.Body)
	return nil
}

// selectProp builds a select property. Notion select options cannot
// contain commas.
func selectProp(s string) map[string]any {
	return map[string]any{
		"select": map[string]any{"name": strings.ReplaceAll(s, ",", " ")},
	}
}

func richText(s string) map[string]any {
	if s == "" {
		return map[string]any{"rich_text": []any{}}
	}
	return map[string]any{
		"rich_text": []any{map[string]any{"text": map[string]any{"content": s}}},
	}
}
