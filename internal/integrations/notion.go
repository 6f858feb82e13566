package integrations

import (
	"context"
	"fmt"
	"log"
	"strings"

	"petrocore-backend/internal/chatbot"

	"github.com/jomei/notionapi"
)

// NotionKnowledgeSource hydrates knowledge-base response overrides from a
// Notion database at startup. The content team maintains localized marketing
// copy there; each row carries a Topic title, a Language select, and a
// Response rich-text body. When Notion is unreachable the built-in copy
// stands, so this source is strictly best effort.
type NotionKnowledgeSource struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
}

// NewNotionKnowledgeSource creates a source over an integration token and the
// knowledge database ID.
func NewNotionKnowledgeSource(token, databaseID string) *NotionKnowledgeSource {
	return &NotionKnowledgeSource{
		client:     notionapi.NewClient(notionapi.Token(token)),
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

// LoadOverrides queries the Notion database and applies every well-formed row
// to the store. Malformed rows are logged and skipped. Returns the number of
// overrides applied.
func (n *NotionKnowledgeSource) LoadOverrides(ctx context.Context, store *chatbot.KnowledgeStore) (int, error) {
	applied := 0
	var cursor notionapi.Cursor
	for {
		resp, err := n.client.Database.Query(ctx, n.databaseID, &notionapi.DatabaseQueryRequest{
			StartCursor: cursor,
		})
		if err != nil {
			return applied, fmt.Errorf("failed to query Notion knowledge database: %w", err)
		}

		for _, page := range resp.Results {
			topic, lang, text, ok := parseKnowledgePage(page)
			if !ok {
				log.Printf("WARN [NotionKnowledgeSource] Skipping malformed page %s", page.ID)
				continue
			}
			if store.SetOverride(topic, lang, text) {
				applied++
			} else {
				log.Printf("WARN [NotionKnowledgeSource] Page %s references unknown topic %q", page.ID, topic)
			}
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}
	return applied, nil
}

// parseKnowledgePage extracts (topic, language, response) from a database row.
func parseKnowledgePage(page notionapi.Page) (string, chatbot.Language, string, bool) {
	var topic, langName, text string

	if prop, ok := page.Properties["Topic"].(*notionapi.TitleProperty); ok {
		topic = richTextToString(prop.Title)
	}
	if prop, ok := page.Properties["Language"].(*notionapi.SelectProperty); ok {
		langName = prop.Select.Name
	}
	if prop, ok := page.Properties["Response"].(*notionapi.RichTextProperty); ok {
		text = richTextToString(prop.RichText)
	}

	lang := chatbot.Language(strings.ToLower(strings.TrimSpace(langName)))
	if topic == "" || text == "" || !lang.IsValid() {
		return "", "", "", false
	}
	return topic, lang, text, true
}

func richTextToString(parts []notionapi.RichText) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part.PlainText)
	}
	return strings.TrimSpace(b.String())
}
