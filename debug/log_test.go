package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogWritesCategorizedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	if err := Enable(path); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	defer Disable()

	Log("nav", "cursor=%d", 3)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "cursor=3") {
		t.Errorf("log missing message, got %q", out)
	}
	if !strings.Contains(out, "cat=nav") {
		t.Errorf("log missing category, got %q", out)
	}
}

func TestLogDisabledIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := Enable(path); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	Disable()

	// must not panic with no file
	Log("seq", "ignored %d", 1)
	LogEvery(1, "seq", "ignored")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "ignored") {
		t.Errorf("disabled log wrote %q", data)
	}
}

func TestLogEveryThrottles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := Enable(path); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	defer Disable()

	for i := 1; i <= 7; i++ {
		LogEvery(3, "seq", "advance %d", i)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if got := strings.Count(out, "cat=seq"); got != 2 {
		t.Errorf("lines written = %d, expected 2\n%s", got, out)
	}
	if !strings.Contains(out, "advance 3") || !strings.Contains(out, "advance 6") {
		t.Errorf("expected the 3rd and 6th calls, got %q", out)
	}
	if !strings.Contains(out, "count=6") {
		t.Errorf("missing count attr, got %q", out)
	}
}
