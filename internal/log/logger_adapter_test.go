package log

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestFormatterForSelectsByName(t *testing.T) {
	if _, ok := formatterFor("json").(*logrus.JSONFormatter); !ok {
		t.Fatalf("formatterFor(json) = %T, want *logrus.JSONFormatter", formatterFor("json"))
	}
	if _, ok := formatterFor("text").(*logrus.TextFormatter); !ok {
		t.Fatalf("formatterFor(text) = %T, want *logrus.TextFormatter", formatterFor("text"))
	}
	if _, ok := formatterFor("").(*logrus.TextFormatter); !ok {
		t.Fatalf("formatterFor(\"\") = %T, want *logrus.TextFormatter", formatterFor(""))
	}
}

func TestInitByConfigDefaultsToInfoOnBadLevel(t *testing.T) {
	cfg := &LoggerConfig{Level: "not-a-level", Format: "text"}
	if err := initByConfig(cfg); err != nil {
		t.Fatalf("initByConfig: %v", err)
	}
	if logger == nil {
		t.Fatal("expected a logger to be installed")
	}
	if !logger.IsInfoEnabled() || logger.IsDebugEnabled() {
		t.Fatal("expected an unparsable level to fall back to info")
	}
}
