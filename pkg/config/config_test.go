package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{
			name:  "string duration",
			input: `"90s"`,
			want:  90 * time.Second,
		},
		{
			name:  "compound string duration",
			input: `"1h30m"`,
			want:  90 * time.Minute,
		},
		{
			name:  "numeric nanoseconds",
			input: `60000000000`,
			want:  time.Minute,
		},
		{
			name:    "invalid string",
			input:   `"soon"`,
			wantErr: true,
		},
		{
			name:    "wrong type",
			input:   `true`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDurationRoundTrip(t *testing.T) {
	d := Duration(45 * time.Second)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"45s"`, string(data))

	var back Duration

	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

type testConfig struct {
	Name     string   `json:"name"`
	Interval Duration `json:"interval"`
}

var errMissingName = errors.New("name is required")

func (c *testConfig) Validate() error {
	if c.Name == "" {
		return errMissingName
	}

	if c.Interval == 0 {
		c.Interval = Duration(30 * time.Second)
	}

	return nil
}

func TestLoadAndValidate(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file with defaults applied", func(t *testing.T) {
		path := filepath.Join(dir, "valid.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"tower"}`), 0o600))

		var cfg testConfig

		require.NoError(t, LoadAndValidate(path, &cfg))
		assert.Equal(t, "tower", cfg.Name)
		assert.Equal(t, Duration(30*time.Second), cfg.Interval)
	})

	t.Run("validation failure propagates", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"interval":"10s"}`), 0o600))

		var cfg testConfig

		err := LoadAndValidate(path, &cfg)
		assert.ErrorIs(t, err, errMissingName)
	})

	t.Run("missing file", func(t *testing.T) {
		var cfg testConfig

		err := LoadAndValidate(filepath.Join(dir, "nope.json"), &cfg)
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":`), 0o600))

		var cfg testConfig

		err := LoadFile(path, &cfg)
		assert.Error(t, err)
	})
}
