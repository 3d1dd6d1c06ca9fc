package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hm(h, m int8) TimeUnit { return TimeUnit{Structured: TimeStructured{Kind: HM, Hour: h, Minute: m}} }

func TestFindTime(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      TimeUnit
		wantStart int
		wantEnd   int
	}{
		{"hour minute", "18:11", hm(18, 11), 0, 5},
		{"single digit hour", "3:03", hm(3, 3), 0, 4},
		{"single digit minute", "0:1", hm(0, 1), 0, 3},
		{"hour only", "18", TimeUnit{Structured: TimeStructured{Kind: H, Hour: 18}}, 0, 2},
		{"leading space", " 4:01", hm(4, 1), 1, 5},
		{"trailing spaces", " 23:59  ", hm(23, 59), 1, 6},
		{"two leading spaces", "  4:01", hm(4, 1), 3, 7},
		{"junk before", " iaksjdk 13:30", hm(13, 30), 9, 14},
		{"location after", "8:15 @ Annankatu 13", hm(8, 15), 0, 4},
		{"junk date before", "ab123.23. 14:13 @ Taajamankatu 5", hm(14, 13), 10, 15},
		{"junk date hour only", "ab123.23. 8 @ Taajamankatu 5", TimeUnit{Structured: TimeStructured{Kind: H, Hour: 8}}, 10, 11},
		{"comma", ", 11:00, A769", hm(11, 0), 2, 7},
		{"at sign", "@16:45", hm(16, 45), 1, 6},
		{"dash splits", "-3", TimeUnit{Structured: TimeStructured{Kind: H, Hour: 3}}, 1, 2},
		{"overflowing hour skipped", "128 7", TimeUnit{Structured: TimeStructured{Kind: H, Hour: 7}}, 4, 5},
		{"out of range lexes", "99:99", hm(99, 99), 0, 5},
		{"seconds a", "19:59:00", TimeUnit{Structured: TimeStructured{Kind: HMS, Hour: 19, Minute: 59}}, 0, 8},
		{"seconds b", "11:09:59", TimeUnit{Structured: TimeStructured{Kind: HMS, Hour: 11, Minute: 9, Second: 59}}, 0, 8},
		{"seconds c", "8:0:1", TimeUnit{Structured: TimeStructured{Kind: HMS, Hour: 8, Second: 1}}, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, start, end, ok := FindTime(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestFindTime_NoMatch(t *testing.T) {
	for _, input := range []string{"", " ", "@ Memory Plaza", ", Temppeliaukion Kirkko", "noon", "1.5"} {
		t.Run(input, func(t *testing.T) {
			_, _, _, ok := FindTime(input)
			assert.False(t, ok)
		})
	}
}

func TestParseTimeStructured(t *testing.T) {
	tests := []struct {
		input string
		want  TimeStructured
		ok    bool
	}{
		{"7", TimeStructured{Kind: H, Hour: 7}, true},
		{"7:", TimeStructured{Kind: H, Hour: 7}, true},
		{"7::30", TimeStructured{Kind: H, Hour: 7}, true},
		{"7:15:", TimeStructured{Kind: HM, Hour: 7, Minute: 15}, true},
		{"1:2:3:4", TimeStructured{Kind: HMS, Hour: 1, Minute: 2, Second: 3}, true},
		{"+7", TimeStructured{Kind: H, Hour: 7}, true},
		{"7:x", TimeStructured{}, false},
		{":30", TimeStructured{}, false},
		{"", TimeStructured{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseTimeStructured(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
