package main

// Notes:
// - runMain: we test dispatch and exit codes end to end with the sample
//   documents in the repository testdata directory.
// - Commands read CFP_* variables, so tests that rely on a clean
//   environment clear CFP_CONFIG and do not run in parallel.

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/alnah/go-cfp"
)

// Absolute so tests that change directory still find them.
var (
	sampleEN = testdataPath("cfp.en.md")
	sampleDE = testdataPath("cfp.de.md")
)

func testdataPath(name string) string {
	path, err := filepath.Abs(filepath.Join("..", "..", "testdata", name))
	if err != nil {
		panic(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"CFP_CONFIG", "CFP_LANG", "CFP_ADDR", "CFP_SOURCE_DE", "CFP_SOURCE_EN", "CFP_ASSET_PATH"} {
		t.Setenv(name, "")
	}
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	env, stdout, stderr := newTestEnv()
	code := runMain(context.Background(), append([]string{"cfp"}, args...), env)
	return code, stdout.String(), stderr.String()
}

func TestRunMain_Dispatch(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{"no command", nil, ExitUsage, "", "Usage: cfp"},
		{"unknown command", []string{"convert"}, ExitUsage, "", "Unknown command: convert"},
		{"version", []string{"version"}, ExitSuccess, "cfp dev", ""},
		{"help", []string{"help", "serve"}, ExitSuccess, "Usage: cfp serve", ""},
		{"command help flag", []string{"extract", "--help"}, ExitSuccess, "", "Usage: cfp extract"},
		{"bad flag", []string{"render", "--pdf"}, ExitUsage, "", "invalid arguments"},
		{"bad format", []string{"extract", "--format", "xml", "-s", sampleEN, "-l", "en"}, ExitUsage, "", "invalid output format"},
		{"unsupported language", []string{"extract", "--lang", "fr"}, ExitUsage, "", "unsupported language"},
		{"missing source", []string{"extract", "--lang", "en"}, ExitUsage, "", "CFP_SOURCE_EN"},
		{"source with all", []string{"render", "--lang", "all", "-s", sampleEN}, ExitUsage, "", "--source needs a single --lang"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stdout, tt.wantOut) {
				t.Errorf("stdout = %q, want to contain %q", stdout, tt.wantOut)
			}
			if !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want to contain %q", stderr, tt.wantErr)
			}
		})
	}
}

func TestRunExtract(t *testing.T) {
	clearEnv(t)

	t.Run("yaml", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "extract", "--lang", "en", "--source", sampleEN)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		for _, want := range []string{"lang: en", "What does editing mean when everyone publishes?", "Editorial practice"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("yaml output missing %q:\n%s", want, stdout)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "extract", "-l", "de", "-s", sampleDE, "-f", "json")
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}

		var doc cfp.Document
		if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, stdout)
		}
		if doc.Lang != cfp.LangDE || doc.Sections.Quote != "Wem gehört der Text?" {
			t.Errorf("document = %+v", doc)
		}
		if len(doc.Facts) == 0 {
			t.Error("facts should be extracted")
		}
	})

	t.Run("source from environment", func(t *testing.T) {
		t.Setenv("CFP_SOURCE_EN", sampleEN)
		t.Setenv("CFP_LANG", "en")

		code, stdout, stderr := runCLI(t, "extract")
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		if !strings.Contains(stdout, "lang: en") {
			t.Errorf("output = %s", stdout)
		}
	})

	t.Run("unavailable source", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.md")

		code, stdout, stderr := runCLI(t, "extract", "-l", "en", "-s", missing, "-q")
		if code != ExitIO {
			t.Errorf("exit code = %d, want %d", code, ExitIO)
		}
		if stdout != "" {
			t.Errorf("stdout = %q, want nothing on failure", stdout)
		}
		if !strings.Contains(stderr, "content could not be loaded") {
			t.Errorf("stderr = %q", stderr)
		}
	})
}

func TestRunRender(t *testing.T) {
	clearEnv(t)

	t.Run("all languages", func(t *testing.T) {
		t.Setenv("CFP_SOURCE_DE", sampleDE)
		t.Setenv("CFP_SOURCE_EN", sampleEN)
		out := filepath.Join(t.TempDir(), "site")

		code, stdout, stderr := runCLI(t, "render", "--lang", "all", "-o", out)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}

		for _, lang := range []string{"de", "en"} {
			path := filepath.Join(out, "index."+lang+".html")
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading %s: %v", path, err)
			}
			if !strings.Contains(string(data), `lang="`+lang+`"`) {
				t.Errorf("%s missing lang attribute", path)
			}
			if !strings.Contains(stdout, "Created "+path) {
				t.Errorf("stdout missing %s: %q", path, stdout)
			}
		}
	})

	t.Run("failed language does not stop others", func(t *testing.T) {
		t.Setenv("CFP_SOURCE_DE", filepath.Join(t.TempDir(), "missing.md"))
		t.Setenv("CFP_SOURCE_EN", sampleEN)
		out := t.TempDir()

		code, _, _ := runCLI(t, "render", "--lang", "all", "-o", out, "-q")
		if code != ExitIO {
			t.Errorf("exit code = %d, want %d", code, ExitIO)
		}
		if _, err := os.Stat(filepath.Join(out, "index.en.html")); err != nil {
			t.Errorf("index.en.html should be written: %v", err)
		}
		if _, err := os.Stat(filepath.Join(out, "index.de.html")); !os.IsNotExist(err) {
			t.Errorf("index.de.html should not exist, stat error = %v", err)
		}
	})
}

func TestRunExport(t *testing.T) {
	clearEnv(t)
	t.Setenv("CFP_SOURCE_DE", sampleDE)
	t.Setenv("CFP_SOURCE_EN", sampleEN)

	t.Run("explicit output gets extension", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "cfp")

		code, stdout, stderr := runCLI(t, "export", "-o", out)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		if !strings.Contains(stdout, out+".xlsx") {
			t.Errorf("stdout = %q", stdout)
		}

		f, err := excelize.OpenFile(out + ".xlsx")
		if err != nil {
			t.Fatalf("OpenFile() error = %v", err)
		}
		defer func() { _ = f.Close() }()

		rows, err := f.GetRows("Overview")
		if err != nil {
			t.Fatalf("GetRows() error = %v", err)
		}
		if len(rows) != 3 {
			t.Errorf("overview rows = %d, want header + de + en", len(rows))
		}
	})

	t.Run("dated default name", func(t *testing.T) {
		t.Chdir(t.TempDir())

		code, _, stderr := runCLI(t, "export", "--lang", "en", "-q")
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		if _, err := os.Stat("cfp-20261014.xlsx"); err != nil {
			t.Errorf("default workbook not written: %v", err)
		}
	})
}
