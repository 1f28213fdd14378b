package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
)

const timeFormat = time.RFC3339Nano

// EncodeLogCursor creates an opaque, URL-safe token for the given log position.
func EncodeLogCursor(c domain.LogCursor) string {
	tokenStr := fmt.Sprintf("%s|%s", c.Timestamp.UTC().Format(timeFormat), c.LogID)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeLogCursor parses a token produced by EncodeLogCursor.
func DecodeLogCursor(token string) (domain.LogCursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return domain.LogCursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	ts, id, ok := strings.Cut(string(decodedBytes), "|")
	if !ok || id == "" {
		return domain.LogCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}
	at, err := time.Parse(timeFormat, ts)
	if err != nil {
		return domain.LogCursor{}, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}
	return domain.LogCursor{Timestamp: at, LogID: id}, nil
}

// NextLogCursor returns the token for the page after logs, or "" when the page was not full.
func NextLogCursor(logs []domain.TableLog, limit int) string {
	if limit <= 0 || len(logs) < limit {
		return ""
	}
	last := logs[len(logs)-1]
	return EncodeLogCursor(domain.LogCursor{Timestamp: last.Timestamp, LogID: last.LogID})
}
