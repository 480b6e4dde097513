package holidays

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"cloudeng.io/logging/ctxlog"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultURL is where the published holiday list lives.
const DefaultURL = "https://raw.githubusercontent.com/lululau/lucal/main/holidays.json"

// Summary describes a downloaded holiday list.
type Summary struct {
	Count   int
	MinYear int
	MaxYear int
}

type downloadProgressMsg struct {
	bytesDownloaded int64
	totalBytes      int64
	speed           float64
}

type downloadCompleteMsg struct {
	fileSize int64
	modTime  time.Time
	filePath string
	summary  *Summary
	err      error
}

type downloadModel struct {
	url        string
	destPath   string
	downloaded int64
	total      int64
	speed      float64
	done       bool
	err        error
	fileSize   int64
	modTime    time.Time
	filePath   string
	summary    *Summary
	progressCh chan downloadProgressMsg
	completeCh chan downloadCompleteMsg
	waitingKey bool // Whether we're waiting for user to press a key after completion
}

func newDownloadModel(url, destPath string) downloadModel {
	return downloadModel{
		url:        url,
		destPath:   destPath,
		progressCh: make(chan downloadProgressMsg, 10),
		completeCh: make(chan downloadCompleteMsg, 1),
	}
}

func (m downloadModel) Init() tea.Cmd {
	return tea.Batch(
		m.startDownload,
		m.listenProgress,
	)
}

func (m downloadModel) listenProgress() tea.Msg {
	select {
	case msg := <-m.progressCh:
		return msg
	case msg := <-m.completeCh:
		return msg
	}
}

func (m downloadModel) startDownload() tea.Msg {
	if err := os.MkdirAll(filepath.Dir(m.destPath), 0o755); err != nil {
		m.completeCh <- downloadCompleteMsg{err: fmt.Errorf("failed to create directory: %w", err)}
		return nil
	}
	go func() {
		m.completeCh <- m.fetch()
	}()
	return nil
}

// fetch writes the list next to the cache file and renames it into place so
// a failed download never truncates a good cache.
func (m downloadModel) fetch() downloadCompleteMsg {
	resp, err := http.Get(m.url)
	if err != nil {
		return downloadCompleteMsg{err: fmt.Errorf("failed to start download: %w", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return downloadCompleteMsg{err: fmt.Errorf("HTTP %s", resp.Status)}
	}

	tmp, err := os.CreateTemp(filepath.Dir(m.destPath), "holidays-*.json")
	if err != nil {
		return downloadCompleteMsg{err: fmt.Errorf("failed to create file: %w", err)}
	}
	defer os.Remove(tmp.Name())

	var downloaded atomic.Int64
	stop := make(chan struct{})
	go m.reportProgress(&downloaded, resp.ContentLength, stop)

	_, err = io.Copy(tmp, io.TeeReader(resp.Body, &progressWriter{
		onWrite: func(n int) { downloaded.Add(int64(n)) },
	}))
	close(stop)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return downloadCompleteMsg{err: fmt.Errorf("failed to write file: %w", err)}
	}
	if err := os.Rename(tmp.Name(), m.destPath); err != nil {
		return downloadCompleteMsg{err: fmt.Errorf("failed to replace cache: %w", err)}
	}

	info, err := os.Stat(m.destPath)
	if err != nil {
		return downloadCompleteMsg{err: fmt.Errorf("failed to stat file: %w", err)}
	}
	// An unreadable list is still saved; the summary is just omitted.
	summary, _ := summarize(m.destPath)
	return downloadCompleteMsg{
		fileSize: info.Size(),
		modTime:  info.ModTime(),
		filePath: m.destPath,
		summary:  summary,
	}
}

func (m downloadModel) reportProgress(downloaded *atomic.Int64, total int64, stop <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	start := time.Now()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		n := downloaded.Load()
		if n == 0 {
			continue
		}
		select {
		case m.progressCh <- downloadProgressMsg{
			bytesDownloaded: n,
			totalBytes:      total,
			speed:           float64(n) / time.Since(start).Seconds(),
		}:
		default:
		}
	}
}

type progressWriter struct {
	onWrite func(int)
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	if pw.onWrite != nil {
		pw.onWrite(len(p))
	}
	return len(p), nil
}

func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.waitingKey {
			// After completion, any key press will quit
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case downloadCompleteMsg:
		m.done = true
		m.err = msg.err
		m.fileSize = msg.fileSize
		m.modTime = msg.modTime
		m.filePath = msg.filePath
		m.summary = msg.summary
		m.waitingKey = true
		// Don't quit immediately, wait for user to see the message and press a key
		return m, nil
	case downloadProgressMsg:
		m.downloaded = msg.bytesDownloaded
		m.total = msg.totalBytes
		m.speed = msg.speed
		return m, m.listenProgress
	}

	return m, nil
}

func (m downloadModel) View() string {
	if m.done {
		if m.err != nil {
			var sb strings.Builder
			fmt.Fprintf(&sb, "Download failed\n\nError: %v\n\n", m.err)
			sb.WriteString("You can fetch the holiday list by hand:\n")
			fmt.Fprintf(&sb, "1. Download %s\n", m.url)
			fmt.Fprintf(&sb, "2. Save it as %s\n", m.destPath)
			sb.WriteString("3. Create the directory first if it does not exist\n\n")
			sb.WriteString("Press any key to exit...\n")
			return sb.String()
		}
		sizeStr := formatBytes(m.fileSize)
		timeStr := m.modTime.Format("2006-01-02 15:04:05")
		successMsg := fmt.Sprintf("Download complete\n\nSize: %s\nUpdated: %s\nSaved to: %s\n", sizeStr, timeStr, m.filePath)
		if m.summary != nil {
			successMsg += fmt.Sprintf("\nHolidays: %d (%d - %d)\n", m.summary.Count, m.summary.MinYear, m.summary.MaxYear)
		}
		successMsg += "\nPress any key to exit...\n"
		return successMsg
	}

	// Custom progress bar
	const barWidth = 50
	var progressBar string
	var percent float64
	var progressInfo string

	if m.total > 0 {
		percent = float64(m.downloaded) / float64(m.total)
		if percent > 1.0 {
			percent = 1.0
		}
		filled := int(percent * barWidth)
		empty := barWidth - filled
		progressBar = strings.Repeat("█", filled) + strings.Repeat("░", empty)
		speedStr := formatSpeed(m.speed)
		downloadedStr := formatBytes(m.downloaded)
		totalStr := formatBytes(m.total)
		progressInfo = fmt.Sprintf("%s / %s  %s  %.1f%%", downloadedStr, totalStr, speedStr, percent*100)
	} else {
		// Unknown total size
		progressBar = strings.Repeat("░", barWidth)
		downloadedStr := formatBytes(m.downloaded)
		if m.speed > 0 {
			speedStr := formatSpeed(m.speed)
			progressInfo = fmt.Sprintf("%s  %s", downloadedStr, speedStr)
		} else {
			progressInfo = downloadedStr
		}
	}

	return fmt.Sprintf("Downloading holiday list...\n\n[%s]\n%s\n\nCtrl+C to cancel\n", progressBar, progressInfo)
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatSpeed(speed float64) string {
	return fmt.Sprintf("%s/s", formatBytes(int64(speed)))
}

// summarize parses a downloaded list and reports what it holds.
func summarize(filePath string) (*Summary, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	set, err := Decode(data)
	if err != nil && set.Len() == 0 {
		return nil, err
	}
	minYear, maxYear, ok := set.YearSpan()
	if !ok {
		return nil, fmt.Errorf("no holidays found")
	}
	return &Summary{Count: set.Len(), MinYear: minYear, MaxYear: maxYear}, nil
}

// sourceURL falls back to DefaultURL when no list is configured.
func sourceURL(configured string) string {
	if configured = strings.TrimSpace(configured); configured != "" {
		return configured
	}
	return DefaultURL
}

// DownloadHolidays fetches the holiday list from url into the cache file,
// showing progress in the terminal.
func DownloadHolidays(ctx context.Context, url string) error {
	url = sourceURL(url)
	cachePath, err := GetCachePath()
	if err != nil {
		return err
	}

	ctxlog.Logger(ctx).Debug("downloading holidays", "url", url, "dest", cachePath)
	p := tea.NewProgram(newDownloadModel(url, cachePath), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(downloadModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
