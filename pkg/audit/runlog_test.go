package audit

import (
	"context"
	"testing"
)

func TestRunLogger_NilSafety(t *testing.T) {
	t.Run("writerがnilでもLogが落ちないこと", func(t *testing.T) {
		logger := NewRunLogger(nil, "", "run_test")
		logger.Log(context.Background(), "00_brief", map[string]string{"title": "t"})
	})

	t.Run("ロガー自体がnilでも落ちないこと", func(t *testing.T) {
		var logger *RunLogger
		logger.Log(context.Background(), "00_brief", nil)
	})
}

func TestNewRunLogger_DefaultDir(t *testing.T) {
	logger := NewRunLogger(nil, "", "run_abc")
	if logger.runDir != "logs/run_abc" {
		t.Errorf("期待値 logs/run_abc, 実際の値 %s", logger.runDir)
	}
}
