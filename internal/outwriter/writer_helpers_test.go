package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		expected string
	}{
		{
			name: "simple object",
			data: map[string]any{
				"registration": "G-XLEA",
				"count":        42,
			},
			expected: `{
  "count": 42,
  "registration": "G-XLEA"
}
`,
		},
		{
			name: "array",
			data: []string{"A388", "B744", "C172"},
			expected: `[
  "A388",
  "B744",
  "C172"
]
`,
		},
		{
			name:     "string",
			data:     "N12AB",
			expected: `"N12AB"` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeJSON(&buf, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteJSONError(t *testing.T) {
	// Test with a value that can't be marshaled to JSON
	invalidData := make(chan int)
	var buf bytes.Buffer
	err := writeJSON(&buf, invalidData)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		rows     [][]string
		expected string
	}{
		{
			name:   "simple csv",
			header: []string{"registration", "count", "location"},
			rows: [][]string{
				{"G-XLEA", "3", "LHR"},
				{"N12AB", "1", "SFO"},
			},
			expected: "registration,count,location\nG-XLEA,3,LHR\nN12AB,1,SFO\n",
		},
		{
			name:     "empty rows",
			header:   []string{"col1", "col2"},
			rows:     [][]string{},
			expected: "col1,col2\n",
		},
		{
			name:   "values with commas",
			header: []string{"registration", "location"},
			rows: [][]string{
				{"N12AB", "SFO, Runway 28L"},
			},
			expected: "registration,location\nN12AB,\"SFO, Runway 28L\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeCSVWithHeader(&buf, tt.header, func(w *csv.Writer) error {
				for _, row := range tt.rows {
					if err := w.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteCSVWithHeaderError(t *testing.T) {
	// Test CSV writer error propagation
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"col"}, func(w *csv.Writer) error {
		// Simulate an error in row writing
		return assert.AnError
	})
	require.Error(t, err)
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFileStdout(t *testing.T) {
	// Test writing to stdout (empty string means stdout)
	called := false
	err := writeWithFile("", func(w io.Writer) error {
		called = true
		_, err := w.Write([]byte("test"))
		return err
	}, "Test message")

	require.NoError(t, err)
	assert.True(t, called, "Writer function should have been called")
}

func TestWriteWithFileActualFile(t *testing.T) {
	// Create a temporary file for testing
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.txt")

	// Test writing to an actual file
	testContent := "test content"
	err := writeWithFile(tmpFile, func(w io.Writer) error {
		_, err := w.Write([]byte(testContent))
		return err
	}, "Test message")

	require.NoError(t, err)

	// Verify file content
	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, string(content))
}

func TestWriteWithFileError(t *testing.T) {
	// Test error propagation from writer function
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.txt")

	err := writeWithFile(tmpFile, func(w io.Writer) error {
		return assert.AnError
	}, "Test message")

	require.Error(t, err)
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFileInvalidPath(t *testing.T) {
	// Test with an invalid file path (should fail on file open)
	err := writeWithFile("/nonexistent/path/file.txt", func(w io.Writer) error {
		return nil
	}, "Test message")

	require.Error(t, err)
}

func TestWriteJSONIntegration(t *testing.T) {
	// Test full integration: write JSON to file using helpers
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.json")

	testData := map[string]any{
		"registration": "D-AIMA",
		"count":        123,
	}

	err := writeWithFile(tmpFile, func(w io.Writer) error {
		return writeJSON(w, testData)
	}, "Wrote JSON")

	require.NoError(t, err)

	// Read and verify
	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	var result map[string]any
	err = json.Unmarshal(content, &result)
	require.NoError(t, err)

	assert.Equal(t, "D-AIMA", result["registration"])
	assert.Equal(t, float64(123), result["count"]) // JSON numbers are float64
}

func TestWriteCSVIntegration(t *testing.T) {
	// Test full integration: write CSV to file using helpers
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.csv")

	header := []string{"value", "count"}
	rows := [][]string{
		{"A388", "95"},
		{"B744", "87"},
	}

	err := writeWithFile(tmpFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, row := range rows {
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")

	require.NoError(t, err)

	// Read and verify
	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Equal(t, 3, len(lines)) // header + 2 rows
	assert.Equal(t, "value,count", lines[0])
	assert.Equal(t, "A388,95", lines[1])
	assert.Equal(t, "B744,87", lines[2])
}

func TestFormatWhen(t *testing.T) {
	at := time.Date(2025, time.March, 14, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-14 15:30", formatWhen(at, &contract.Config{}))
	assert.Equal(t, "2025-03-15 00:30", formatWhen(at, &contract.Config{Location: time.FixedZone("JST", 9*3600)}))
	assert.Equal(t, "-", formatWhen(time.Time{}, &contract.Config{}))
}

func TestSectionTitle(t *testing.T) {
	assert.Equal(t, "Overview", sectionTitle(&contract.Config{}, "🛫", "Overview"))
	assert.Equal(t, "🛫 Overview", sectionTitle(&contract.Config{UseEmojis: true}, "🛫", "Overview"))
}

func TestGetMaxTableTextWidth(t *testing.T) {
	assert.Equal(t, 10, GetMaxTableTextWidth(&contract.Config{Width: 40}))
	assert.Equal(t, 20, GetMaxTableTextWidth(&contract.Config{Width: 100}))
	assert.Equal(t, 40, GetMaxTableTextWidth(&contract.Config{Width: 400}))
}
