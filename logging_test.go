package taglib_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/jpalus/taglib"
)

func TestSetLoggerAndLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	custom := slog.New(slog.NewTextHandler(&buf, nil))

	taglib.SetLogger(custom)
	defer taglib.SetLogger(nil)

	if taglib.Logger() != custom {
		t.Error("expected Logger() to return the installed custom sink")
	}

	taglib.Logger().Warn("test message")

	if !bytes.Contains(buf.Bytes(), []byte("test message")) {
		t.Errorf("expected log output to contain the message, got %q", buf.String())
	}
}

func TestSetLoggerNilRestoresDefault(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	taglib.SetLogger(custom)

	taglib.SetLogger(nil)

	if taglib.Logger() == custom {
		t.Error("expected SetLogger(nil) to replace the custom sink")
	}

	if taglib.Logger() == nil {
		t.Error("expected a non-nil default sink")
	}
}
