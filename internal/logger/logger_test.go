package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

// --- ParseLevel のテスト ---

// TestParseLevel_KnownLevels は既知のレベル文字列を変換することをテストする。
func TestParseLevel_KnownLevels(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q): 期待 %v, 結果: %v", input, want, got)
		}
	}
}

// TestParseLevel_CaseInsensitive は大文字小文字を区別しないことをテストする。
func TestParseLevel_CaseInsensitive(t *testing.T) {
	if got := ParseLevel("DEBUG"); got != slog.LevelDebug {
		t.Errorf("期待: %v, 結果: %v", slog.LevelDebug, got)
	}
}

// TestParseLevel_UnknownDefaultsToInfo は未知の文字列でinfoを返すことをテストする。
func TestParseLevel_UnknownDefaultsToInfo(t *testing.T) {
	if got := ParseLevel("verbose"); got != slog.LevelInfo {
		t.Errorf("期待: %v, 結果: %v", slog.LevelInfo, got)
	}
}

// --- Setup のテスト ---

// TestSetup_OutputsJSON はJSON形式でログを出力することをテストする。
func TestSetup_OutputsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf, slog.LevelInfo)

	log.Info("テストメッセージ", slog.String("key", "value"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("出力はJSONであるべき: %v", err)
	}
	if entry["msg"] != "テストメッセージ" {
		t.Errorf("msg: 期待 %q, 結果: %v", "テストメッセージ", entry["msg"])
	}
	if entry["key"] != "value" {
		t.Errorf("key: 期待 %q, 結果: %v", "value", entry["key"])
	}
}

// TestSetup_LevelFiltering は指定レベル未満のログを出力しないことをテストする。
func TestSetup_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf, slog.LevelWarn)

	log.Info("出力されないはず")
	if buf.Len() != 0 {
		t.Errorf("infoログはwarnレベルで抑制されるべき, 出力: %s", buf.String())
	}

	log.Warn("出力されるはず")
	if buf.Len() == 0 {
		t.Error("warnログは出力されるべき")
	}
}
