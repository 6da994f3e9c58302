package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// parseDirectives extracts EXPECTED lines, optional ARGS, and the program
// from a conformance file. Directives must precede the program.
func parseDirectives(content string) (expected string, args []string, code string) {
	lines := strings.Split(content, "\n")
	var expectedLines []string
	codeStart := len(lines)

	for i, line := range lines {
		if strings.HasPrefix(line, "# EXPECTED: ") {
			expectedLines = append(expectedLines, line[len("# EXPECTED: "):])
		} else if strings.HasPrefix(line, "# EXPECTED:") {
			expectedLines = append(expectedLines, line[len("# EXPECTED:"):])
		} else if strings.HasPrefix(line, "# ARGS:") {
			args = strings.Fields(line[len("# ARGS:"):])
		} else {
			codeStart = i
			break
		}
	}

	expected = strings.Join(expectedLines, "\n")
	code = strings.Join(lines[codeStart:], "\n")
	return expected, args, code
}

func TestConformance(t *testing.T) {
	absDir, err := filepath.Abs("../../tests/conformance")
	if err != nil {
		t.Fatalf("Failed to resolve conformance dir: %v", err)
	}

	testFiles, err := filepath.Glob(filepath.Join(absDir, "*.rc"))
	if err != nil {
		t.Fatalf("Failed to list conformance dir: %v", err)
	}
	if len(testFiles) == 0 {
		t.Fatal("No conformance test files found")
	}

	for _, testFile := range testFiles {
		testName := strings.TrimSuffix(filepath.Base(testFile), ".rc")

		t.Run(testName, func(t *testing.T) {
			content, err := os.ReadFile(testFile)
			if err != nil {
				t.Fatalf("Failed to read test file: %v", err)
			}

			expected, args, code := parseDirectives(string(content))

			var out, errOut strings.Builder
			exitCode := run(append([]string{"regcalc"}, args...), strings.NewReader(code), &out, &errOut)

			actual := strings.TrimRight(out.String(), "\n")
			if exitCode != 0 || actual != expected {
				t.Errorf("Output mismatch (exit=%d, stderr=%q)\n  Expected: %q\n  Actual:   %q", exitCode, errOut.String(), expected, actual)
			}
		})
	}
}
