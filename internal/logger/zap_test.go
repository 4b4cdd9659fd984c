package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		"verbose":  zapcore.DebugLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Fatalf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewCore_Formats(t *testing.T) {
	t.Parallel()

	var jsonBuf, consoleBuf bytes.Buffer
	zap.New(newCore(zapcore.InfoLevel, FormatJSON, zapcore.AddSync(&jsonBuf))).Sugar().
		Infow("dataset_ingested", "dataset_id", "ds-1")
	zap.New(newCore(zapcore.InfoLevel, FormatConsole, zapcore.AddSync(&consoleBuf))).Sugar().
		Debugw("filtered_out")

	var entry map[string]any
	if err := json.Unmarshal(jsonBuf.Bytes(), &entry); err != nil {
		t.Fatalf("json output not decodable: %v (%q)", err, jsonBuf.String())
	}
	if entry["msg"] != "dataset_ingested" || entry["dataset_id"] != "ds-1" {
		t.Fatalf("entry = %v", entry)
	}
	if strings.Contains(consoleBuf.String(), "filtered_out") {
		t.Fatalf("debug entry written at info level")
	}
}
