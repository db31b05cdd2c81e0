package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// deliver sends ev to all configured targets.
// Errors are logged but do not affect the caller.
func (n *Notifier) deliver(ev *Event) {
	for _, wh := range n.webhooks {
		url := wh.URL()
		if url == "" {
			continue
		}

		var err error
		switch wh.Type {
		case "slack":
			err = n.sendSlack(url, ev)
		case "teams":
			err = n.sendTeams(url, ev)
		case "http":
			err = n.sendHTTP(url, ev)
		default:
			slog.Warn("notify: unknown webhook type, skipping", "type", wh.Type)
			continue
		}

		if err != nil {
			slog.Error("notify: webhook delivery failed",
				"type", wh.Type,
				"event", ev.ID,
				"err", err,
			)
		} else {
			slog.Debug("notify: webhook delivered",
				"type", wh.Type,
				"event", ev.ID,
				"id", ev.Resource.ID,
			)
		}
	}
}

func (n *Notifier) sendSlack(url string, ev *Event) error {
	body, err := json.Marshal(map[string]string{"text": summary(ev)})
	if err != nil {
		return fmt.Errorf("encode slack body: %w", err)
	}
	return n.post(url, body)
}

func (n *Notifier) sendTeams(url string, ev *Event) error {
	payload := map[string]interface{}{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"themeColor": typeColor(ev.Type),
		"summary":    summary(ev),
		"title":      fmt.Sprintf("resourcesvc: resource %d %s", ev.Resource.ID, ev.Type),
		"text":       summary(ev),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode teams body: %w", err)
	}
	return n.post(url, body)
}

func (n *Notifier) sendHTTP(url string, ev *Event) error {
	body, err := json.Marshal(map[string]interface{}{"event": ev})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return n.post(url, body)
}

func (n *Notifier) post(url string, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}

func summary(ev *Event) string {
	return fmt.Sprintf("*resource %d %s* (%d payload bytes)", ev.Resource.ID, ev.Type, len(ev.Resource.Payload))
}

func typeColor(t string) string {
	if t == "created" {
		return "2EB67D"
	}
	return "00D4FF"
}
