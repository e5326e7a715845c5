package webhook

import (
	"encoding/json"
	"fmt"
)

// NotionWebhookParser normalizes Notion webhook payloads. Notion delivers a
// "property updated" shape carrying property_value directly and a "page
// updated" shape carrying nested properties; payloads are best-effort, so
// every lookup degrades to a sentinel instead of failing.
type NotionWebhookParser struct{}

func NewNotionParser() *NotionWebhookParser {
	return &NotionWebhookParser{}
}

// ParseEvent decodes a raw delivery body and summarizes it.
func (p *NotionWebhookParser) ParseEvent(body []byte, statusProperty string) (Summary, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Summary{}, fmt.Errorf("failed to parse webhook payload: %w", err)
	}
	return p.Summarize(payload, statusProperty), nil
}

// Summarize extracts the canonical {eventType, taskId, status} triple.
// Each field walks its known payload shapes in order and falls back to a
// sentinel when none match. statusProperty is the user-configured name of
// the board property that carries task status.
func (p *NotionWebhookParser) Summarize(payload map[string]interface{}, statusProperty string) Summary {
	s := Summary{
		EventType: UnknownEventType,
		TaskID:    NotAvailable,
		Status:    NotAvailable,
	}
	if payload == nil {
		return s
	}

	// Event type: top-level "type", else nested "event.type".
	if t := stringField(payload, "type"); t != "" {
		s.EventType = t
	} else if event, ok := mapField(payload, "event"); ok {
		if t := stringField(event, "type"); t != "" {
			s.EventType = t
		}
	}

	data, hasData := mapField(payload, "data")
	var page map[string]interface{}
	hasPage := false
	if hasData {
		page, hasPage = mapField(data, "page")
	}

	// Task id: "entity.id", else "data.page.id". No bare data-level fallback:
	// a payload carrying only a properties bag keeps the "n/a" id even when a
	// status is still resolvable below.
	if entity, ok := mapField(payload, "entity"); ok {
		if id := stringField(entity, "id"); id != "" {
			s.TaskID = id
		}
	}
	if s.TaskID == NotAvailable && hasPage {
		if id := stringField(page, "id"); id != "" {
			s.TaskID = id
		}
	}

	// Status, in strict priority order: the configured property under
	// "property_value", then the typed property under "data.page.properties",
	// then a scan of "data.properties" for any status-shaped property. The
	// scan tolerates boards where the status property was renamed away from
	// the configured name.
	if pv, ok := mapField(payload, "property_value"); ok {
		if prop, ok := mapField(pv, statusProperty); ok {
			if name := stringField(prop, "name"); name != "" {
				s.Status = name
			}
		}
	}
	if s.Status == NotAvailable && hasPage {
		if props, ok := mapField(page, "properties"); ok {
			if prop, ok := mapField(props, statusProperty); ok {
				if status, ok := mapField(prop, "status"); ok {
					if name := stringField(status, "name"); name != "" {
						s.Status = name
					}
				}
			}
		}
	}
	if s.Status == NotAvailable && hasData {
		if props, ok := mapField(data, "properties"); ok {
			s.Status = scanStatusProperty(props)
		}
	}

	return s
}

// scanStatusProperty finds any property shaped {type: "status", status: {name}}.
func scanStatusProperty(props map[string]interface{}) string {
	for _, raw := range props {
		prop, ok := raw.(map[string]interface{})
		if !ok || stringField(prop, "type") != "status" {
			continue
		}
		status, ok := mapField(prop, "status")
		if !ok {
			continue
		}
		if name := stringField(status, "name"); name != "" {
			return name
		}
	}
	return NotAvailable
}

func mapField(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	v, ok := m[key].(map[string]interface{})
	return v, ok
}

func stringField(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}
