package config

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	require.Equal(t, "data/businesses_plus.csv", c.SourcePath("business"))
	require.Equal(t, "/tmp/violations", c.DatasetPath("violation"))
	require.Equal(t, 20, c.HighRiskLimit)
	require.EqualValues(t, 60, c.LowScoreThreshold)
}

func TestRegisterFlags(t *testing.T) {
	c := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c.RegisterFlags(fs)

	err := fs.Parse([]string{
		"-source-dir", "/srv/in",
		"-inspection-csv", "/abs/insp.csv",
		"-business-dataset", "/data/biz",
		"-f", "csv",
		"-low-score", "70",
		"-parallelism", "3",
	})
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	require.Equal(t, "/srv/in/violations_plus.csv", c.SourcePath("violation"))
	require.Equal(t, "/abs/insp.csv", c.SourcePath("inspection"))
	require.Equal(t, "/data/biz", c.DatasetPath("business"))
	require.Equal(t, FormatCSV, c.Format)
	require.EqualValues(t, 70, c.LowScoreThreshold)
	require.Equal(t, 3, c.Parallelism)
}

func TestRegisterFlagsRejectsBadScore(t *testing.T) {
	c := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c.RegisterFlags(fs)

	require.Error(t, fs.Parse([]string{"-low-score", "sixty"}))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad format", func(c *Config) { c.Format = "xml" }, `unsupported format "xml"`},
		{"negative limit", func(c *Config) { c.HighRiskLimit = -1 }, "-high-risk-limit must be non-negative"},
		{"zero parallelism", func(c *Config) { c.Parallelism = 0 }, "-parallelism must be at least 1"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, `unsupported log level "loud"`},
		{"missing dataset", func(c *Config) { c.Datasets["violation"] = "" }, "missing dataset directory for violation"},
		{"missing source", func(c *Config) { delete(c.Sources, "business") }, "missing source file for business"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}
