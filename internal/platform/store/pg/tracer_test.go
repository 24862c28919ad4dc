package pg

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"paporium/internal/platform/logger"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	in := "SELECT item.id\n\tFROM   item\r\n WHERE item.id = $1 "
	if got := compact(in); got != "SELECT item.id FROM item WHERE item.id = $1" {
		t.Fatalf("compact = %q", got)
	}
}

func TestTracerLevels(t *testing.T) {
	var buf bytes.Buffer
	root := zerolog.New(&buf).Level(zerolog.ErrorLevel)
	tr := Tracer(root)

	ctx := logger.WithRequest(context.Background(), "req-7")
	tr.OnQuery(ctx, QueryEvent{SQL: "SELECT 1", Args: []any{1, 2}, ElapsedUS: 1500})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT pg_sleep(1)", ElapsedUS: 1_000_000, Slow: true})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT nope", Err: errors.New("undefined column")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"level":"debug"`) || !strings.Contains(lines[0], `"request_id":"req-7"`) || !strings.Contains(lines[0], `"args":2`) {
		t.Fatalf("unexpected debug line %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"warn"`) || !strings.Contains(lines[1], `"slow":true`) {
		t.Fatalf("unexpected slow line %s", lines[1])
	}
	if !strings.Contains(lines[2], `"level":"warn"`) || !strings.Contains(lines[2], "undefined column") {
		t.Fatalf("unexpected error line %s", lines[2])
	}
}
