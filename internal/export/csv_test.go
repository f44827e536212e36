package export

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tmrerrors "github.com/balkashynov/tmr/internal/errors"
	"github.com/balkashynov/tmr/internal/models"
)

func sample() []models.Activity {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	done := models.NewCompleted(models.TypeBug, "fix parser", start, start.Add(30*time.Minute))
	done.ID = 1
	running := models.NewActive(models.TypeMeeting, `sync, "weekly"`, start.Add(time.Hour))
	running.ID = 2
	return []models.Activity{done, running}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample(), ","))

	assert.Equal(t,
		"id,start_time,end_time,activity_type,status,description\n"+
			"1,2024-01-15 09:00:00,2024-01-15 09:30:00,BUG,COMPLETED,fix parser\n"+
			"2,2024-01-15 10:00:00,,MEETING,ACTIVE,\"sync, \"\"weekly\"\"\"\n",
		buf.String())
}

func TestWriteCSVCustomDelimiter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()[:1], ";"))

	assert.Equal(t,
		"id;start_time;end_time;activity_type;status;description\n"+
			"1;2024-01-15 09:00:00;2024-01-15 09:30:00;BUG;COMPLETED;fix parser\n",
		buf.String())
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "a|b", want: `"a|b"`},
		{in: `say "hi"`, want: `"say ""hi"""`},
		{in: "two\nlines", want: "\"two\nlines\""},
		{in: "cr\rhere", want: "\"cr\rhere\""},
		{in: "a,b", want: "a,b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, escape(tt.in, "|"))
		})
	}
}

func TestWriteCSVRejectsEmptyDelimiter(t *testing.T) {
	err := WriteCSV(&bytes.Buffer{}, nil, "")
	assert.ErrorIs(t, err, tmrerrors.ErrInvalidArgument)
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 1, 15, 17, 4, 5, 0, time.UTC)

	name := FileName(now)
	assert.Regexp(t, regexp.MustCompile(`^activities_20240115_170405_[0-9a-f]{8}\.csv$`), name)
	assert.NotEqual(t, name, FileName(now))
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := WriteFile(dir, sample(), ",", time.Now())
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BUG,COMPLETED,fix parser")
}
