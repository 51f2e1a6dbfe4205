package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/soulful-academy/chakra-report/internal/models"
)

func TestVersionCmd(t *testing.T) {
	oldVersion := Version
	oldBuildTime := BuildTime
	oldGitCommit := GitCommit
	defer func() {
		Version = oldVersion
		BuildTime = oldBuildTime
		GitCommit = oldGitCommit
	}()

	Version = "1.2.3"
	BuildTime = "2026-01-01"
	GitCommit = "abcdef"

	output := captureOutput(func() {
		rootCmd.SetArgs([]string{"version"})
		rootCmd.Execute()
	})

	assert.Contains(t, output, "chakra-report 1.2.3")
	assert.Contains(t, output, "Built: 2026-01-01")
	assert.Contains(t, output, "Commit: abcdef")

	BuildTime = "unknown"
	GitCommit = "unknown"
	output = captureOutput(func() {
		rootCmd.SetArgs([]string{"version"})
		rootCmd.Execute()
	})
	assert.Contains(t, output, "chakra-report 1.2.3")
	assert.NotContains(t, output, "Built:")
	assert.NotContains(t, output, "Commit:")
}

func TestRenderCmd_WritesPDF(t *testing.T) {
	dir := setupRenderEnv(t)

	rec := models.NewRecord("Asha")
	rec.CoachName = "Mira"
	rec.SetStatus(models.ChakraHeart, models.StatusBlocked)
	input := writeRecordFile(t, dir, rec)
	outDir := filepath.Join(dir, "out")

	var err error
	output := captureOutput(func() {
		rootCmd.SetArgs([]string{"render", "--input", input, "--variant", "aura", "--out", outDir})
		err = rootCmd.Execute()
	})
	require.NoError(t, err, output)

	path := filepath.Join(outDir, "Asha_aura_chakra_report.pdf")
	assert.Contains(t, output, "Report saved to "+path)

	raw, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestRenderCmd_EmailNotConfiguredWarns(t *testing.T) {
	dir := setupRenderEnv(t)
	input := writeRecordFile(t, dir, models.NewRecord("Asha"))

	var err error
	output := captureOutput(func() {
		rootCmd.SetArgs([]string{"render", "--input", input, "--out", dir, "--email-to", "asha@example.com"})
		err = rootCmd.Execute()
	})
	require.NoError(t, err, output)

	assert.FileExists(t, filepath.Join(dir, "Asha_chakra_report.pdf"))
	assert.Contains(t, output, "Warning: ")
	assert.NotContains(t, output, "Report emailed to")
}

func TestRenderCmd_HalfEmailCredentialsStillWritesPDF(t *testing.T) {
	dir := setupRenderEnv(t)
	t.Setenv("CHAKRA_EMAIL_USER", "coach@example.com")
	input := writeRecordFile(t, dir, models.NewRecord("Asha"))

	var err error
	output := captureOutput(func() {
		rootCmd.SetArgs([]string{"render", "--input", input, "--out", dir, "--email-to", "asha@example.com"})
		err = rootCmd.Execute()
	})
	require.NoError(t, err, output)

	assert.FileExists(t, filepath.Join(dir, "Asha_chakra_report.pdf"))
	assert.Contains(t, output, "Warning: ")
	assert.NotContains(t, output, "Report emailed to")
}

func TestRenderCmd_Errors(t *testing.T) {
	dir := setupRenderEnv(t)

	blank := writeRecordFile(t, dir, models.NewRecord(""))
	valid := writeRecordFile(t, filepath.Join(dir, "valid"), models.NewRecord("Asha"))
	garbled := filepath.Join(dir, "garbled.yaml")
	require.NoError(t, os.WriteFile(garbled, []byte("client_name: [unterminated"), 0o644))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "blank client name",
			args: []string{"render", "--input", blank, "--out", dir},
			want: "please enter client name",
		},
		{
			name: "unknown variant",
			args: []string{"render", "--input", valid, "--variant", "tarot", "--out", dir},
			want: "unknown report variant",
		},
		{
			name: "bad recipient",
			args: []string{"render", "--input", valid, "--out", filepath.Join(dir, "never"), "--email-to", "not an address"},
			want: "invalid recipient",
		},
		{
			name: "missing input file",
			args: []string{"render", "--input", filepath.Join(dir, "nope.yaml"), "--out", dir},
			want: "read record",
		},
		{
			name: "undecodable input",
			args: []string{"render", "--input", garbled, "--out", dir},
			want: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			var err error
			captureOutput(func() {
				rootCmd.SetArgs(tt.args)
				err = rootCmd.Execute()
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.NoDirExists(t, filepath.Join(dir, "never"))
}

func TestRenderCmd_BadConfig(t *testing.T) {
	dir := setupRenderEnv(t)
	t.Setenv("CHAKRA_SMTP_PORT", "70000")
	input := writeRecordFile(t, dir, models.NewRecord("Asha"))

	var err error
	captureOutput(func() {
		rootCmd.SetArgs([]string{"render", "--input", input, "--out", dir})
		err = rootCmd.Execute()
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHAKRA_SMTP_PORT")
}

func TestReadRecord_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "record.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"client_name":"Asha","coach_name":"Mira","chakras":{"Root (Muladhara)":{"status":"Slightly Weak"}}}`), 0o644))

	rec, err := readRecord(path)
	require.NoError(t, err)
	assert.Equal(t, "Asha", rec.ClientName)
	assert.Equal(t, "Mira", rec.CoachName)
	assert.Equal(t, models.StatusWeak, rec.Chakras[models.ChakraRoot].Status)
}

// setupRenderEnv isolates a render run from the network and the caller's
// environment. The logo path points at an existing file so no download is
// attempted.
func setupRenderEnv(t *testing.T) string {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	dir := t.TempDir()
	logoPath := filepath.Join(dir, "logo.jpg")
	require.NoError(t, os.WriteFile(logoPath, []byte("not an image"), 0o644))

	t.Setenv("CHAKRA_LOGO_PATH", logoPath)
	t.Setenv("CHAKRA_LOG_FORMAT", "json")
	t.Setenv("CHAKRA_LOG_LEVEL", "error")
	t.Setenv("CHAKRA_VARIANT", "")
	t.Setenv("CHAKRA_SMTP_PORT", "")
	t.Setenv("CHAKRA_EMAIL_USER", "")
	t.Setenv("CHAKRA_EMAIL_PASSWORD", "")
	return dir
}

func writeRecordFile(t *testing.T, dir string, rec *models.Record) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	raw, err := yaml.Marshal(rec)
	require.NoError(t, err)
	path := filepath.Join(dir, "record.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func resetFlags() {
	inputFile = ""
	variantName = ""
	outputDir = ""
	emailTo = ""
	emailSubj = ""
	emailBody = ""
	listenAddr = ""
}

func captureOutput(f func()) string {
	oldStdout := os.Stdout
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()

	f()

	w.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr
	return <-done
}
