package benchmarks

import (
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"golang.org/x/tools/txtar"
	"znkr.io/semdiff"
)

type testdata struct {
	name string
	x, y string
}

func loadTestdata(t testing.TB) []testdata {
	t.Helper()
	testFiles, err := filepath.Glob("testdata/*.test")
	if err != nil {
		t.Fatalf("Failed to read testdata: %v", err)
	}
	var tests []testdata
	for _, filename := range testFiles {
		ar, err := txtar.ParseFile(filename)
		if err != nil {
			t.Fatalf("failed to parse test case: %v", err)
		}
		name := strings.TrimPrefix(filename, "testdata/")
		test := testdata{
			name: name,
		}

		for _, f := range ar.Files {
			switch f.Name {
			case "x":
				test.x = string(f.Data)
			case "y":
				test.y = string(f.Data)
			default:
				t.Fatalf("unknown file in archive: %v", f)
			}
		}
		tests = append(tests, test)
	}
	return tests
}

// changed returns the number of edits that aren't equalities and the number of runes they cover.
func changed(es []semdiff.Edit) (edits, runes int) {
	for _, e := range es {
		if e.Op != semdiff.Equal {
			edits++
			runes += utf8.RuneCountInString(e.Text)
		}
	}
	return edits, runes
}

func TestImpls(t *testing.T) {
	tests := append(loadTestdata(t),
		testdata{name: "empty"},
		testdata{name: "insert-only", y: "abc\n"},
		testdata{name: "delete-only", x: "abc\n"},
		testdata{name: "identical", x: "abc\n", y: "abc\n"},
		testdata{name: "identical-multi-byte", x: "Grüße\n", y: "Grüße\n"},
		testdata{name: "no-newline", x: "ab\nc", y: "a\nbc"},
		testdata{name: "escapes", x: `a\nb` + "\n", y: "a\n\\b\n"},
	)
	for _, impl := range Impls {
		t.Run("impl="+impl.Name, func(t *testing.T) {
			for _, td := range tests {
				es := impl.Diff(td.x, td.y)
				if got := semdiff.Source(es); got != td.x {
					t.Errorf("%s: Source(...) = %q, want %q", td.name, got, td.x)
				}
				if got := semdiff.Target(es); got != td.y {
					t.Errorf("%s: Target(...) = %q, want %q", td.name, got, td.y)
				}
				for i := 1; i < len(es); i++ {
					if es[i-1].Op == es[i].Op {
						t.Errorf("%s: edits %d and %d have the same op: %v, %v", td.name, i-1, i, es[i-1], es[i])
					}
				}
			}
		})
	}
}

func TestHunkStart(t *testing.T) {
	tests := []struct {
		header string
		want   int
	}{
		{"@@ -1,3 +1,4 @@", 0},
		{"@@ -7,6 +7,6 @@", 6},
		{"@@ -0,0 +1,3 @@", 0},
		{"@@ -4,0 +5,2 @@", 4},
		{"@@ -5 +5 @@", 4},
	}
	for _, tt := range tests {
		got, err := hunkStart(tt.header)
		if err != nil {
			t.Errorf("hunkStart(%q) failed: %v", tt.header, err)
			continue
		}
		if got != tt.want {
			t.Errorf("hunkStart(%q) = %d, want %d", tt.header, got, tt.want)
		}
	}
	if _, err := hunkStart("@@ +1,3 @@"); err == nil {
		t.Errorf("hunkStart(...) succeeded for a malformed header")
	}
}

func BenchmarkDiffs(b *testing.B) {
	for _, impl := range Impls {
		b.Run("impl="+impl.Name, func(b *testing.B) {
			for _, td := range loadTestdata(b) {
				b.Run("name="+td.name, func(b *testing.B) {
					for b.Loop() {
						_ = impl.Diff(td.x, td.y)
					}
					b.StopTimer()

					edits, runes := changed(impl.Diff(td.x, td.y))
					b.ReportMetric(float64(edits), "edits")
					b.ReportMetric(float64(runes), "runes")
				})
			}
		})
	}
}
