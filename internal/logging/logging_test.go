package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestComponentField(t *testing.T) {
	var buf bytes.Buffer
	log := Component(NewWithWriter(&buf, "debug", false), "sweeper")
	log.Info().Msg("tick")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if line["component"] != "sweeper" || line["message"] != "tick" {
		t.Fatalf("unexpected line: %v", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", false)
	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info written at warn level: %q", buf.String())
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "loud", false)
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) || bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
