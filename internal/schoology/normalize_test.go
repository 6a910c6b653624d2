package schoology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      RawEvent
		expected Event
	}{
		{
			name: "entities decoded and body stripped",
			raw: RawEvent{
				TitleText:    "Math &amp; Science",
				Start:        "2025-10-06 09:00:00",
				ContentTitle: "Algebra",
				Body:         "<p>Bring calculator &amp; ruler</p>",
				EType:        "assignment",
			},
			expected: Event{
				Title:       "Math & Science",
				Start:       time.Date(2025, 10, 6, 9, 0, 0, 0, time.Local),
				Course:      "Algebra",
				Type:        "assignment",
				Description: "Bring calculator & ruler",
			},
		},
		{
			name: "empty body yields empty description",
			raw: RawEvent{
				TitleText:    "Field Trip",
				Start:        "2025-10-07 08:30:00",
				ContentTitle: "Homeroom",
				EType:        "event",
			},
			expected: Event{
				Title:  "Field Trip",
				Start:  time.Date(2025, 10, 7, 8, 30, 0, 0, time.Local),
				Course: "Homeroom",
				Type:   "event",
			},
		},
		{
			name: "whitespace-only body yields empty description",
			raw: RawEvent{
				TitleText:    "Quiz",
				Start:        "2025-10-08 10:00:00",
				ContentTitle: "History",
				Body:         "   \n  ",
				EType:        "assessment",
			},
			expected: Event{
				Title:  "Quiz",
				Start:  time.Date(2025, 10, 8, 10, 0, 0, 0, time.Local),
				Course: "History",
				Type:   "assessment",
			},
		},
		{
			name: "block elements become line breaks",
			raw: RawEvent{
				TitleText:    "Project",
				Start:        "2025-10-09 13:00:00",
				ContentTitle: "Science",
				Body:         "<p>Part one</p><p>Part two</p>",
				EType:        "assignment",
			},
			expected: Event{
				Title:       "Project",
				Start:       time.Date(2025, 10, 9, 13, 0, 0, 0, time.Local),
				Course:      "Science",
				Type:        "assignment",
				Description: "Part one\nPart two",
			},
		},
		{
			name: "line break tags split text",
			raw: RawEvent{
				TitleText:    "Homework",
				Start:        "2025-10-10 15:00:00",
				ContentTitle: "English",
				Body:         "Read chapter 4<br>Answer questions 1-5",
				EType:        "assignment",
			},
			expected: Event{
				Title:       "Homework",
				Start:       time.Date(2025, 10, 10, 15, 0, 0, 0, time.Local),
				Course:      "English",
				Type:        "assignment",
				Description: "Read chapter 4\nAnswer questions 1-5",
			},
		},
		{
			name: "entities in title and course",
			raw: RawEvent{
				TitleText:    "Q&amp;A Session",
				Start:        "2025-10-11 11:00:00",
				ContentTitle: "Math &amp; Logic",
				EType:        "event",
			},
			expected: Event{
				Title:  "Q&A Session",
				Start:  time.Date(2025, 10, 11, 11, 0, 0, 0, time.Local),
				Course: "Math & Logic",
				Type:   "event",
			},
		},
		{
			name: "double-encoded entities fully decoded",
			raw: RawEvent{
				TitleText:    "Bake Sale",
				Start:        "2025-10-12 12:00:00",
				ContentTitle: "PTA",
				Body:         "<p>Tom &amp;amp; Jerry themed</p>",
				EType:        "event",
			},
			expected: Event{
				Title:       "Bake Sale",
				Start:       time.Date(2025, 10, 12, 12, 0, 0, 0, time.Local),
				Course:      "PTA",
				Type:        "event",
				Description: "Tom & Jerry themed",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected.Title, got.Title)
			assert.True(t, got.Start.Equal(tt.expected.Start), "start = %v, want %v", got.Start, tt.expected.Start)
			assert.Equal(t, tt.expected.Course, got.Course)
			assert.Equal(t, tt.expected.Type, got.Type)
			assert.Equal(t, tt.expected.Description, got.Description)
		})
	}
}

// Encoded angle brackets are data, not markup. Stripping first and decoding
// second must leave them as literal text instead of treating them as tags.
func TestNormalizeStripsBeforeDecoding(t *testing.T) {
	got, err := Normalize(RawEvent{
		TitleText:    "Essay",
		Start:        "2025-10-06 09:00:00",
		ContentTitle: "English",
		Body:         "Use &lt;b&gt;bold&lt;/b&gt; sparingly",
		EType:        "assignment",
	})
	require.NoError(t, err)
	assert.Equal(t, "Use <b>bold</b> sparingly", got.Description)
}

func TestNormalizeMalformedStart(t *testing.T) {
	tests := []struct {
		name  string
		start string
	}{
		{name: "wrong format", start: "10/06/2025 9:00 AM"},
		{name: "date only", start: "2025-10-06"},
		{name: "empty", start: ""},
		{name: "garbage", start: "not a time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(RawEvent{
				TitleText: "Broken",
				Start:     tt.start,
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "malformed start time")
		})
	}
}
