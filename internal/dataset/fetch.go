package dataset

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"freight-insights-go/internal/logger"
)

var httpClient = &http.Client{
	Timeout: 12 * time.Second,
}

// Fetch downloads a remote dataset to a temp file, retrying transient
// failures with exponential backoff. The caller removes the file when done.
func Fetch(url string) (string, error) {
	log := logger.New().WithComponent("dataset.fetch").WithField("url", url)
	log.Info("downloading remote dataset")

	tmp, err := os.CreateTemp("", "freight-dataset-*")
	if err != nil {
		return "", fmt.Errorf("temp file: %w", err)
	}

	operation := func() error {
		resp, err := httpClient.Get(url)
		if err != nil {
			log.WithError(err).Warn("download attempt failed")
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			err := fmt.Errorf("server error: %s", resp.Status)
			log.WithError(err).Warn("download attempt failed")
			return err
		}
		if resp.StatusCode != http.StatusOK {
			// client errors will not improve on retry
			return backoff.Permanent(fmt.Errorf("unexpected status: %s", resp.Status))
		}
		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			return backoff.Permanent(err)
		}
		if err := tmp.Truncate(0); err != nil {
			return backoff.Permanent(err)
		}
		if _, err := io.Copy(tmp, resp.Body); err != nil {
			log.WithError(err).Warn("download body copy failed")
			return err
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 45 * time.Second
	if err := backoff.Retry(operation, policy); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	log.WithField("local_path", tmp.Name()).Info("dataset downloaded")
	return tmp.Name(), nil
}
